// Package blockstore defines the block-level persistence interface for a
// sequence-strand's per-base model output: what a concrete backing store
// (see duckdbstore) must implement to serve window.Stream scans without
// holding a whole genome's predictions in memory at once.
package blockstore

import (
	"context"

	"github.com/TonyBolger/HelixerPost/internal/window"
)

// BlockKey identifies one (species, sequence, block, strand) unit of
// stored per-base predictions.
type BlockKey struct {
	Species  string
	Sequence string
	BlockID  int
	Reverse  bool
}

// Store persists and retrieves per-base prediction blocks.
type Store interface {
	// PutBlock writes entries (in strand-scan order) under key, replacing
	// anything already stored there.
	PutBlock(ctx context.Context, key BlockKey, entries []window.Entry) error

	// GetBlock reads back the entries stored under key.
	GetBlock(ctx context.Context, key BlockKey) ([]window.Entry, error)

	Close() error
}
