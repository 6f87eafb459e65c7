package genomedb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInMemory(t *testing.T) *DB {
	t.Helper()
	d, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { d.Close() })
	return d
}

func TestListBlocksRoundTripsInOrdinalOrder(t *testing.T) {
	d := openInMemory(t)

	require.NoError(t, d.PutBlockMeta(0, "sp1", "chr1", 0, 50))
	require.NoError(t, d.PutBlockMeta(1, "sp1", "chr1", 50, 100))
	require.NoError(t, d.PutBlockMeta(2, "sp1", "chr2", 0, 30))

	species, sequences, startEnds, err := d.ListBlocks()
	require.NoError(t, err)
	require.Len(t, species, 3)
	assert.Equal(t, []string{"sp1", "sp1", "sp1"}, species)
	assert.Equal(t, []string{"chr1", "chr1", "chr2"}, sequences)
	assert.Equal(t, [][2]uint64{{0, 50}, {50, 100}, {0, 30}}, startEnds)
}

func TestListBlocksEmptyDatabase(t *testing.T) {
	d := openInMemory(t)
	species, sequences, startEnds, err := d.ListBlocks()
	require.NoError(t, err)
	assert.Empty(t, species)
	assert.Empty(t, sequences)
	assert.Empty(t, startEnds)
}
