package blockindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSingleSequenceFwdAndRevBlocks(t *testing.T) {
	species := []string{"sp1", "sp1", "sp1", "sp1"}
	sequences := []string{"chr1", "chr1", "chr1", "chr1"}
	startEnds := [][2]uint64{
		{0, 50}, {50, 100}, // forward blocks
		{100, 50}, {50, 0}, // reverse blocks (end<start), scanned backwards
	}

	idx, err := Build(species, sequences, startEnds)
	require.NoError(t, err)
	require.Len(t, idx.AllSpecies(), 1)
	require.Len(t, idx.AllSequences(), 1)

	seq, ok := idx.SequenceByName(idx.AllSpecies()[0].ID, "chr1")
	require.True(t, ok)
	assert.Equal(t, uint64(100), seq.Length)

	fwd, rev := idx.BlocksForSequence(seq.ID)
	require.Len(t, fwd, 2)
	require.Len(t, rev, 2)

	s0, e0 := idx.BlockRange(fwd[0])
	assert.Equal(t, uint64(0), s0)
	assert.Equal(t, uint64(50), e0)
	s1, e1 := idx.BlockRange(fwd[1])
	assert.Equal(t, uint64(50), s1)
	assert.Equal(t, uint64(100), e1)
}

func TestBuildRejectsGapBetweenBlocks(t *testing.T) {
	species := []string{"sp1", "sp1", "sp1", "sp1"}
	sequences := []string{"chr1", "chr1", "chr1", "chr1"}
	startEnds := [][2]uint64{
		{0, 40}, {50, 100}, // forward blocks, gap 40..50
		{100, 50}, {50, 0}, // contiguous reverse blocks
	}
	_, err := Build(species, sequences, startEnds)
	require.Error(t, err)
}

func TestBuildRejectsZeroLengthBlock(t *testing.T) {
	species := []string{"sp1"}
	sequences := []string{"chr1"}
	startEnds := [][2]uint64{{10, 10}}
	_, err := Build(species, sequences, startEnds)
	require.Error(t, err)
}

func TestBuildRejectsDuplicateBlockStart(t *testing.T) {
	species := []string{"sp1", "sp1"}
	sequences := []string{"chr1", "chr1"}
	startEnds := [][2]uint64{{0, 50}, {0, 100}}
	_, err := Build(species, sequences, startEnds)
	require.Error(t, err)
}

func TestBuildGroupsMultipleSpeciesAndSequences(t *testing.T) {
	species := []string{"sp1", "sp1", "sp1", "sp1", "sp2", "sp2"}
	sequences := []string{"chr1", "chr1", "chr2", "chr2", "chr1", "chr1"}
	startEnds := [][2]uint64{{0, 10}, {10, 0}, {0, 20}, {20, 0}, {0, 30}, {30, 0}}
	idx, err := Build(species, sequences, startEnds)
	require.NoError(t, err)
	assert.Len(t, idx.AllSpecies(), 2)
	assert.Len(t, idx.AllSequences(), 3)

	sp1, _ := idx.SpeciesByName("sp1")
	assert.Len(t, idx.SequencesForSpecies(sp1.ID), 2)
}
