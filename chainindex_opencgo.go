//go:build cgo

package thet

// If cgo is enabled, we will use the mattn cgo sqlite3 driver. It is faster
// than the modernc sqlite driver.

import (
	"strings"

	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3"
)

const whichSQLiteDriver = "sqlite3"

// OpenChainIndex opens the chain index at path, creating the file if it does
// not yet exist.
func OpenChainIndex(path string) (*ChainIndex, error) {
	ci := &ChainIndex{}

	// URI filenames have to begin with 'file:'; see
	// https://www.sqlite.org/c3ref/open.html . It seems that sqlite3 permitted
	// URI filenames without the file: prefix, but that is not standard.
	if !strings.HasPrefix(path, "file:") {
		path = "file:" + path
	}

	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, err
	}
	ci.DB = db

	// A freshly created index has no metadata yet; ignore any error
	metadata := &ChainMetadata{}
	if err := ci.DB.Get(metadata, "SELECT * FROM Metadata LIMIT 1"); err == nil {
		ci.Metadata = metadata
	}

	return ci, nil
}
