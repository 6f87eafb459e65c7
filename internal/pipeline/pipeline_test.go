package pipeline

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TonyBolger/HelixerPost/internal/blockindex"
	"github.com/TonyBolger/HelixerPost/internal/blockstore"
	"github.com/TonyBolger/HelixerPost/internal/penalty"
	"github.com/TonyBolger/HelixerPost/internal/window"
)

// fakeStore is an in-memory blockstore.Store for pipeline tests.
type fakeStore struct {
	mu     sync.Mutex
	blocks map[blockstore.BlockKey][]window.Entry
}

func newFakeStore() *fakeStore {
	return &fakeStore{blocks: map[blockstore.BlockKey][]window.Entry{}}
}

func (s *fakeStore) PutBlock(_ context.Context, key blockstore.BlockKey, entries []window.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[key] = entries
	return nil
}

func (s *fakeStore) GetBlock(_ context.Context, key blockstore.BlockKey) ([]window.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blocks[key], nil
}

func (s *fakeStore) Close() error { return nil }

func uniformBase() penalty.BaseProb {
	return penalty.BaseProb{C: 0.25, A: 0.25, T: 0.25, G: 0.25}
}

func intergenicEntry() window.Entry {
	return window.Entry{
		Base:  uniformBase(),
		Class: penalty.ClassProb{Intergenic: 0.94, UTR: 0.02, Coding: 0.02, Intron: 0.02},
		Phase: penalty.PhaseProb{NonCoding: 0.94, Phase0: 0.02, Phase1: 0.02, Phase2: 0.02},
	}
}

func repeat(e window.Entry, n int) []window.Entry {
	out := make([]window.Entry, n)
	for i := range out {
		out[i] = e
	}
	return out
}

func TestProcessItemPureIntergenicYieldsNoRecords(t *testing.T) {
	store := newFakeStore()
	species, sequence := "sp1", "chr1"

	all := repeat(intergenicEntry(), 40)
	half := len(all) / 2
	require.NoError(t, store.PutBlock(context.Background(), blockstore.BlockKey{Species: species, Sequence: sequence, BlockID: 0}, all[:half]))
	require.NoError(t, store.PutBlock(context.Background(), blockstore.BlockKey{Species: species, Sequence: sequence, BlockID: 1}, all[half:]))

	item := WorkItem{
		Seq:      0,
		Species:  species,
		Sequence: blockindex.Sequence{Name: sequence, Length: uint64(len(all))},
		FwdBlocks: []blockindex.BlockID{0, 1},
	}

	p := NewProcessor(store, DefaultConfig())
	recs, err := p.ProcessItem(context.Background(), item)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRateItemWithNilReferenceStoreIsPerfectlyDiagonalOnRefAxes(t *testing.T) {
	store := newFakeStore()
	species, sequence := "sp1", "chr1"

	entries := repeat(intergenicEntry(), 40)
	require.NoError(t, store.PutBlock(context.Background(), blockstore.BlockKey{Species: species, Sequence: sequence, BlockID: 0}, entries))

	item := WorkItem{
		Seq:       0,
		Species:   species,
		Sequence:  blockindex.Sequence{Name: sequence, Length: uint64(len(entries))},
		FwdBlocks: []blockindex.BlockID{0},
	}

	p := NewProcessor(store, DefaultConfig())
	rating, err := p.RateItem(context.Background(), item, nil)
	require.NoError(t, err)

	assert.Equal(t, uint64(0), rating.RefMLClass.FalsePositive(0))
	assert.Equal(t, uint64(0), rating.RefMLClass.FalseNegative(0))
}

func TestParallelProcessThenOrderedCollectRestoresSequenceOrder(t *testing.T) {
	store := newFakeStore()
	species := "sp1"

	items := make(chan WorkItem, 3)
	for i, name := range []string{"chrC", "chrA", "chrB"} {
		entries := repeat(intergenicEntry(), 40)
		key := blockstore.BlockKey{Species: species, Sequence: name, BlockID: 0}
		require.NoError(t, store.PutBlock(context.Background(), key, entries))
		items <- WorkItem{
			Seq:       i,
			Species:   species,
			Sequence:  blockindex.Sequence{Name: name, Length: uint64(len(entries))},
			FwdBlocks: []blockindex.BlockID{0},
		}
	}
	close(items)

	p := NewProcessor(store, DefaultConfig())
	results := p.ParallelProcess(context.Background(), items, 2)

	var order []int
	err := OrderedCollect(results, func(r WorkResult) error {
		order = append(order, r.Seq)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, order)
}
