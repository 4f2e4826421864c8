package thet

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/carbocation/pfx"
	"github.com/jmoiron/sqlx"
)

// ChainIndex is a SQLite-backed record of the states an MCMC run accepted,
// one row per recorded iteration. The sampler owns the chain; this type only
// persists it so downstream summarization tools can read it back without
// rerunning the sampler.
type ChainIndex struct {
	DB       *sqlx.DB
	Metadata *ChainMetadata
}

// ChainMetadata conforms to the rows of the SQLite table "Metadata" in a
// chain index and can be parsed with sqlx.
type ChainMetadata struct {
	NumPopulations    int  `db:"num_populations"`
	NumSegments       int  `db:"num_segments"`
	IndexCreationTime Time `db:"index_creation_time"`
}

// ChainRecord conforms to the rows of the SQLite table "Chain". The
// population-fraction vector is stored as a zstd-compressed little-endian
// float64 blob; use DecodePopulationFractions to restore it.
type ChainRecord struct {
	Iteration           int     `db:"iteration"`
	DoMetropolisStep    bool    `db:"do_metropolis_step"`
	Concentration       float64 `db:"concentration"`
	AveragedPloidy      float64 `db:"averaged_ploidy"`
	PopulationFractions []byte  `db:"population_fractions"`
}

const chainIndexSchema = `
CREATE TABLE IF NOT EXISTS Metadata (
	num_populations INTEGER NOT NULL,
	num_segments INTEGER NOT NULL,
	index_creation_time INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS Chain (
	iteration INTEGER PRIMARY KEY,
	do_metropolis_step INTEGER NOT NULL,
	concentration REAL NOT NULL,
	averaged_ploidy REAL NOT NULL,
	population_fractions BLOB NOT NULL
);
`

// CreateChainIndex creates a new chain index at path and stamps its metadata.
// The file may then be appended to with AppendState and reopened later with
// OpenChainIndex.
func CreateChainIndex(path string, numPopulations, numSegments int) (*ChainIndex, error) {
	if numPopulations < 2 {
		return nil, pfx.Err(&ValidationError{msg: "number of populations must be at least 2 (at least one variant and one normal)"})
	}
	if numSegments < 1 {
		return nil, pfx.Err(&ValidationError{msg: "chain index must cover at least one segment"})
	}

	ci, err := OpenChainIndex(path)
	if err != nil {
		return nil, pfx.Err(err)
	}

	if _, err := ci.DB.Exec(chainIndexSchema); err != nil {
		ci.Close()
		return nil, pfx.Err(err)
	}

	ci.Metadata = &ChainMetadata{
		NumPopulations:    numPopulations,
		NumSegments:       numSegments,
		IndexCreationTime: Time(time.Now()),
	}
	if _, err := ci.DB.Exec("INSERT INTO Metadata (num_populations, num_segments, index_creation_time) VALUES (?, ?, ?)",
		ci.Metadata.NumPopulations, ci.Metadata.NumSegments, ci.Metadata.IndexCreationTime); err != nil {
		ci.Close()
		return nil, pfx.Err(err)
	}

	return ci, nil
}

func (c *ChainIndex) Close() error {
	return c.DB.Close()
}

// AppendState records state as the accepted sample for iteration, deriving
// the averaged ploidy against data.
func (c *ChainIndex) AppendState(iteration int, state *TumorHeterogeneityState, data *TumorHeterogeneityData) error {
	if c.Metadata != nil {
		if state.NumPopulations() != c.Metadata.NumPopulations {
			return pfx.Err(fmt.Errorf("state has %d populations, chain index expects %d", state.NumPopulations(), c.Metadata.NumPopulations))
		}
		if state.NumSegments() != c.Metadata.NumSegments {
			return pfx.Err(fmt.Errorf("state has %d segments, chain index expects %d", state.NumSegments(), c.Metadata.NumSegments))
		}
	}

	fractions := make([]float64, state.NumPopulations())
	for i := range fractions {
		fractions[i] = state.PopulationFraction(i)
	}

	_, err := c.DB.Exec("INSERT INTO Chain (iteration, do_metropolis_step, concentration, averaged_ploidy, population_fractions) VALUES (?, ?, ?, ?, ?)",
		iteration,
		state.DoMetropolisStep(),
		state.Concentration(),
		state.CalculatePopulationAndGenomicAveragedPloidy(data),
		encodePopulationFractions(fractions))
	if err != nil {
		return pfx.Err(err)
	}
	return nil
}

// Records returns every recorded iteration in chain order.
func (c *ChainIndex) Records() ([]ChainRecord, error) {
	rows, err := c.DB.Queryx("SELECT * FROM Chain ORDER BY iteration ASC")
	if err != nil {
		return nil, pfx.Err(err)
	}
	defer rows.Close()

	var records []ChainRecord
	var record ChainRecord
	for rows.Next() {
		if err := rows.StructScan(&record); err != nil {
			return nil, pfx.Err(err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, pfx.Err(err)
	}

	return records, nil
}

// DecodePopulationFractions restores the population-fraction vector stored in
// record.
func DecodePopulationFractions(record ChainRecord) ([]float64, error) {
	raw, err := DecompressZStandard(nil, record.PopulationFractions)
	if err != nil {
		return nil, pfx.Err(err)
	}
	if len(raw)%8 != 0 {
		return nil, pfx.Err(fmt.Errorf("population-fraction blob has %d bytes; expected a multiple of 8", len(raw)))
	}

	fractions := make([]float64, len(raw)/8)
	for i := range fractions {
		fractions[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[8*i:]))
	}
	return fractions, nil
}

func encodePopulationFractions(fractions []float64) []byte {
	raw := make([]byte, 8*len(fractions))
	for i, f := range fractions {
		binary.LittleEndian.PutUint64(raw[8*i:], math.Float64bits(f))
	}
	return CompressZStandard(nil, raw)
}

// WhichSQLiteDriver reports the SQLite driver this build records chains with.
func WhichSQLiteDriver() string {
	return whichSQLiteDriver
}
