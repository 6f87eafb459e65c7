package duckdbstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TonyBolger/HelixerPost/internal/blockstore"
	"github.com/TonyBolger/HelixerPost/internal/penalty"
	"github.com/TonyBolger/HelixerPost/internal/window"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleEntries() []window.Entry {
	return []window.Entry{
		{
			Class: penalty.ClassProb{Intergenic: 0.9, UTR: 0.05, Coding: 0.03, Intron: 0.02},
			Phase: penalty.PhaseProb{NonCoding: 0.9, Phase0: 0.05, Phase1: 0.03, Phase2: 0.02},
			Base:  penalty.BaseProb{C: 0.25, A: 0.25, T: 0.25, G: 0.25},
		},
		{
			Class: penalty.ClassProb{Intergenic: 0.02, UTR: 0.03, Coding: 0.9, Intron: 0.05},
			Phase: penalty.PhaseProb{NonCoding: 0.02, Phase0: 0.9, Phase1: 0.05, Phase2: 0.03},
			Base:  penalty.BaseProb{C: 0.05, A: 0.9, T: 0.03, G: 0.02},
		},
	}
}

func TestPutBlockThenGetBlockRoundTrips(t *testing.T) {
	s := openInMemory(t)
	key := blockstore.BlockKey{Species: "sp1", Sequence: "chr1", BlockID: 0, Reverse: false}
	entries := sampleEntries()

	require.NoError(t, s.PutBlock(context.Background(), key, entries))

	got, err := s.GetBlock(context.Background(), key)
	require.NoError(t, err)
	require.Len(t, got, len(entries))
	assert.InDelta(t, entries[0].Class.Intergenic, got[0].Class.Intergenic, 1e-9)
	assert.InDelta(t, entries[1].Phase.Phase0, got[1].Phase.Phase0, 1e-9)
	assert.InDelta(t, entries[1].Base.A, got[1].Base.A, 1e-9)
}

func TestPutBlockReplacesExistingData(t *testing.T) {
	s := openInMemory(t)
	key := blockstore.BlockKey{Species: "sp1", Sequence: "chr1", BlockID: 0, Reverse: false}

	require.NoError(t, s.PutBlock(context.Background(), key, sampleEntries()))
	require.NoError(t, s.PutBlock(context.Background(), key, sampleEntries()[:1]))

	got, err := s.GetBlock(context.Background(), key)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestGetBlockDistinguishesStrandAndBlockID(t *testing.T) {
	s := openInMemory(t)
	fwdKey := blockstore.BlockKey{Species: "sp1", Sequence: "chr1", BlockID: 0, Reverse: false}
	revKey := blockstore.BlockKey{Species: "sp1", Sequence: "chr1", BlockID: 0, Reverse: true}

	require.NoError(t, s.PutBlock(context.Background(), fwdKey, sampleEntries()))

	_, err := s.GetBlock(context.Background(), revKey)
	assert.Error(t, err)
}

func TestGetBlockMissingKeyErrors(t *testing.T) {
	s := openInMemory(t)
	_, err := s.GetBlock(context.Background(), blockstore.BlockKey{Species: "none", Sequence: "none", BlockID: 99})
	assert.Error(t, err)
}
