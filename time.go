package thet

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// Time scans SQLite timestamp columns that may hold either unixtime integers
// or text datetimes, depending on which tool wrote the index. Derived from
// https://github.com/mattn/go-sqlite3/issues/190#issuecomment-343341834f
type Time time.Time

func (t *Time) Scan(v interface{}) error {
	switch which := v.(type) {
	case int64:
		*t = Time(time.Unix(which, 0))
		return nil
	case int:
		*t = Time(time.Unix(int64(which), 0))
		return nil
	case []byte:
		vt, err := time.Parse("2006-01-02 15:04:05", string(which))
		if err != nil {
			return err
		}
		*t = Time(vt)
		return nil
	}

	return fmt.Errorf("No appropriate type could be found to decode %v", v)
}

// Value stores Time as unixtime, the more compact of the two representations
// Scan accepts.
func (t Time) Value() (driver.Value, error) {
	return time.Time(t).Unix(), nil
}
