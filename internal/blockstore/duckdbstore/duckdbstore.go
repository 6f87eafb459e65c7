// Package duckdbstore backs blockstore.Store with a DuckDB table: each
// block's per-base predictions are serialized once as an Arrow IPC-framed
// record batch and stored as a single BLOB, so a block round-trips with
// one row read instead of one row per base.
package duckdbstore

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"
	_ "github.com/marcboeker/go-duckdb"

	"github.com/TonyBolger/HelixerPost/internal/blockstore"
	"github.com/TonyBolger/HelixerPost/internal/penalty"
	"github.com/TonyBolger/HelixerPost/internal/window"
)

// schema is the Arrow layout of one stored block: one row per base, twelve
// float64 columns covering the class, phase and base channels.
var schema = arrow.NewSchema([]arrow.Field{
	{Name: "class_intergenic", Type: arrow.PrimitiveTypes.Float64},
	{Name: "class_utr", Type: arrow.PrimitiveTypes.Float64},
	{Name: "class_coding", Type: arrow.PrimitiveTypes.Float64},
	{Name: "class_intron", Type: arrow.PrimitiveTypes.Float64},
	{Name: "phase_noncoding", Type: arrow.PrimitiveTypes.Float64},
	{Name: "phase_0", Type: arrow.PrimitiveTypes.Float64},
	{Name: "phase_1", Type: arrow.PrimitiveTypes.Float64},
	{Name: "phase_2", Type: arrow.PrimitiveTypes.Float64},
	{Name: "base_c", Type: arrow.PrimitiveTypes.Float64},
	{Name: "base_a", Type: arrow.PrimitiveTypes.Float64},
	{Name: "base_t", Type: arrow.PrimitiveTypes.Float64},
	{Name: "base_g", Type: arrow.PrimitiveTypes.Float64},
}, nil)

// Store persists prediction blocks in a DuckDB database, one BLOB column
// per block holding an Arrow IPC stream.
type Store struct {
	db   *sql.DB
	pool memory.Allocator
}

var _ blockstore.Store = (*Store)(nil)

// Open opens or creates a DuckDB database at path (empty string for an
// in-memory database) and ensures the blocks table exists.
func Open(path string) (*Store, error) {
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create block store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb block store: %w", err)
	}

	s := &Store{db: db, pool: memory.NewGoAllocator()}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure block store schema: %w", err)
	}
	return s, nil
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS blocks (
		species VARCHAR,
		sequence VARCHAR,
		block_id BIGINT,
		reverse BOOLEAN,
		data BLOB,
		PRIMARY KEY (species, sequence, block_id, reverse)
	)`)
	return err
}

func (s *Store) Close() error { return s.db.Close() }

// PutBlock serializes entries into one Arrow IPC record batch and upserts
// it as a single BLOB row.
func (s *Store) PutBlock(ctx context.Context, key blockstore.BlockKey, entries []window.Entry) error {
	data, err := encodeBlock(s.pool, entries)
	if err != nil {
		return fmt.Errorf("encode block: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO blocks (species, sequence, block_id, reverse, data) VALUES (?, ?, ?, ?, ?)`,
		key.Species, key.Sequence, key.BlockID, key.Reverse, data)
	return err
}

// GetBlock reads back the entries stored under key.
func (s *Store) GetBlock(ctx context.Context, key blockstore.BlockKey) ([]window.Entry, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT data FROM blocks WHERE species = ? AND sequence = ? AND block_id = ? AND reverse = ?`,
		key.Species, key.Sequence, key.BlockID, key.Reverse)

	var data []byte
	if err := row.Scan(&data); err != nil {
		return nil, fmt.Errorf("read block %+v: %w", key, err)
	}
	return decodeBlock(s.pool, data)
}

func encodeBlock(pool memory.Allocator, entries []window.Entry) ([]byte, error) {
	b := array.NewRecordBuilder(pool, schema)
	defer b.Release()

	for _, e := range entries {
		b.Field(0).(*array.Float64Builder).Append(e.Class.Intergenic)
		b.Field(1).(*array.Float64Builder).Append(e.Class.UTR)
		b.Field(2).(*array.Float64Builder).Append(e.Class.Coding)
		b.Field(3).(*array.Float64Builder).Append(e.Class.Intron)
		b.Field(4).(*array.Float64Builder).Append(e.Phase.NonCoding)
		b.Field(5).(*array.Float64Builder).Append(e.Phase.Phase0)
		b.Field(6).(*array.Float64Builder).Append(e.Phase.Phase1)
		b.Field(7).(*array.Float64Builder).Append(e.Phase.Phase2)
		b.Field(8).(*array.Float64Builder).Append(e.Base.C)
		b.Field(9).(*array.Float64Builder).Append(e.Base.A)
		b.Field(10).(*array.Float64Builder).Append(e.Base.T)
		b.Field(11).(*array.Float64Builder).Append(e.Base.G)
	}

	rec := b.NewRecord()
	defer rec.Release()

	var buf bytes.Buffer
	w, err := ipc.NewWriter(&buf, ipc.WithSchema(schema), ipc.WithAllocator(pool))
	if err != nil {
		return nil, err
	}
	if err := w.Write(rec); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeBlock(pool memory.Allocator, data []byte) ([]window.Entry, error) {
	r, err := ipc.NewReader(bytes.NewReader(data), ipc.WithSchema(schema), ipc.WithAllocator(pool))
	if err != nil {
		return nil, err
	}
	defer r.Release()

	var entries []window.Entry
	for r.Next() {
		rec := r.Record()
		n := int(rec.NumRows())
		col := func(i int) *array.Float64 { return rec.Column(i).(*array.Float64) }
		c0, c1, c2, c3 := col(0), col(1), col(2), col(3)
		p0, p1, p2, p3 := col(4), col(5), col(6), col(7)
		bc, ba, bt, bg := col(8), col(9), col(10), col(11)

		for i := 0; i < n; i++ {
			entries = append(entries, window.Entry{
				Class: penalty.ClassProb{Intergenic: c0.Value(i), UTR: c1.Value(i), Coding: c2.Value(i), Intron: c3.Value(i)},
				Phase: penalty.PhaseProb{NonCoding: p0.Value(i), Phase0: p1.Value(i), Phase1: p2.Value(i), Phase2: p3.Value(i)},
				Base:  penalty.BaseProb{C: bc.Value(i), A: ba.Value(i), T: bt.Value(i), G: bg.Value(i)},
			})
		}
	}
	return entries, r.Err()
}
