package pipeline

import (
	"context"

	"github.com/TonyBolger/HelixerPost/internal/blockindex"
	"github.com/TonyBolger/HelixerPost/internal/blockstore"
	"github.com/TonyBolger/HelixerPost/internal/window"
)

// blockStream adapts a sequence-strand's ordered blocks, read one at a
// time from a blockstore.Store, into a window.Stream. It never holds more
// than one block's entries in memory at once.
type blockStream struct {
	ctx      context.Context
	store    blockstore.Store
	species  string
	sequence string
	reverse  bool
	blockIDs []blockindex.BlockID

	bi      int
	entries []window.Entry
	ei      int
	err     error
}

func newBlockStream(ctx context.Context, store blockstore.Store, species, sequence string, reverse bool, blockIDs []blockindex.BlockID) *blockStream {
	return &blockStream{ctx: ctx, store: store, species: species, sequence: sequence, reverse: reverse, blockIDs: blockIDs}
}

// Next implements window.Stream. Once a GetBlock call fails, the stream
// reports exhaustion and records the error for the caller to pick up via
// Err after the scan loop ends.
func (s *blockStream) Next() (window.Entry, bool) {
	for s.ei >= len(s.entries) {
		if s.err != nil || s.bi >= len(s.blockIDs) {
			return window.Entry{}, false
		}

		key := blockstore.BlockKey{Species: s.species, Sequence: s.sequence, BlockID: int(s.blockIDs[s.bi]), Reverse: s.reverse}
		entries, err := s.store.GetBlock(s.ctx, key)
		s.bi++
		if err != nil {
			s.err = err
			return window.Entry{}, false
		}

		s.entries = entries
		s.ei = 0
	}

	e := s.entries[s.ei]
	s.ei++
	return e, true
}

func (s *blockStream) Err() error { return s.err }
