// Package genomedb reads the genome-side metadata a run needs before any
// base is decoded: which species/sequences exist and where their blocks'
// boundaries fall, so internal/blockindex can build the lookup table that
// drives the scan. Mirrors internal/blockstore/duckdbstore's DuckDB
// conventions but stores small scalar rows instead of Arrow-encoded
// blocks, since block boundaries are metadata, not per-base predictions.
package genomedb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// DB wraps the genome metadata database.
type DB struct {
	db *sql.DB
}

// Open opens or creates the genome metadata database at path.
func Open(path string) (*DB, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create genome db directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open genome db: %w", err)
	}

	d := &DB{db: db}
	if err := d.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure genome db schema: %w", err)
	}
	return d, nil
}

func (d *DB) ensureSchema() error {
	_, err := d.db.Exec(`CREATE TABLE IF NOT EXISTS blocks (
		ordinal BIGINT,
		species VARCHAR,
		sequence VARCHAR,
		block_start BIGINT,
		block_end BIGINT,
		PRIMARY KEY (ordinal)
	)`)
	return err
}

func (d *DB) Close() error { return d.db.Close() }

// PutBlockMeta records one block's species/sequence/boundary, keeping
// ordinal as the original scan order so ListBlocks can hand
// blockindex.Build its parallel slices back in the order it requires
// (grouped contiguously by species then sequence).
func (d *DB) PutBlockMeta(ordinal int64, species, sequence string, start, end uint64) error {
	_, err := d.db.Exec(
		`INSERT OR REPLACE INTO blocks (ordinal, species, sequence, block_start, block_end) VALUES (?, ?, ?, ?, ?)`,
		ordinal, species, sequence, start, end)
	return err
}

// ListBlocks returns every recorded block in ordinal order, as the
// parallel slices blockindex.Build expects.
func (d *DB) ListBlocks() (species, sequences []string, startEnds [][2]uint64, err error) {
	rows, err := d.db.Query(`SELECT species, sequence, block_start, block_end FROM blocks ORDER BY ordinal`)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list blocks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sp, seq string
		var start, end uint64
		if err := rows.Scan(&sp, &seq, &start, &end); err != nil {
			return nil, nil, nil, fmt.Errorf("scan block row: %w", err)
		}
		species = append(species, sp)
		sequences = append(sequences, seq)
		startEnds = append(startEnds, [2]uint64{start, end})
	}
	return species, sequences, startEnds, rows.Err()
}
