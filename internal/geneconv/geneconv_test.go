package geneconv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TonyBolger/HelixerPost/internal/gff"
	"github.com/TonyBolger/HelixerPost/internal/hmm"
)

func TestGeneNameFormat(t *testing.T) {
	assert.Equal(t, "arabidopsis_Chr1_000007", GeneName("arabidopsis", "Chr1", 7))
}

// TestConvertGenesSingleExonNoIntron mirrors the ATG...TAA single-exon
// layout: one UTR5 region, one Coding region, one UTR3 region, no introns,
// adjacent so they merge into a single exon.
func TestConvertGenesSingleExonNoIntron(t *testing.T) {
	gene := hmm.Gene{
		CodingLength: 96,
		Regions: []hmm.Region{
			{Start: 0, End: 9, Label: hmm.LabelUTR5},
			{Start: 9, End: 105, Label: hmm.LabelCoding},
			{Start: 105, End: 115, Label: hmm.LabelUTR3},
		},
	}
	geneIdx := 0
	recs := ConvertGenes([]hmm.Gene{gene}, "species", "seq1", "helixerpost", false, 1000, 5000, 1, &geneIdx)
	require.NotEmpty(t, recs)
	assert.Equal(t, 1, geneIdx)

	var exonCount, cdsCount, geneCount int
	for _, r := range recs {
		switch r.Feature {
		case gff.FeatureExon:
			exonCount++
		case gff.FeatureCDS:
			cdsCount++
		case gff.FeatureGene:
			geneCount++
			assert.Equal(t, uint64(1001), r.Start) // position(1000) + 0 + 1
			assert.Equal(t, uint64(1115), r.End)    // position(1000) + 115
		}
	}
	assert.Equal(t, 1, geneCount)
	assert.Equal(t, 1, cdsCount)
	assert.Equal(t, 1, exonCount, "UTR5+Coding+UTR3 are contiguous and must merge into one exon")
}

func TestConvertGenesSkipsShortCodingLength(t *testing.T) {
	gene := hmm.Gene{
		CodingLength: 10,
		Regions: []hmm.Region{
			{Start: 0, End: 10, Label: hmm.LabelCoding},
		},
	}
	geneIdx := 0
	recs := ConvertGenes([]hmm.Gene{gene}, "species", "seq1", "helixerpost", false, 0, 100, 30, &geneIdx)
	assert.Empty(t, recs)
	assert.Equal(t, 0, geneIdx)
}

func TestConvertGenesReverseStrandFlipsCoordinates(t *testing.T) {
	gene := hmm.Gene{
		CodingLength: 9,
		Regions: []hmm.Region{
			{Start: 0, End: 9, Label: hmm.LabelCoding},
		},
	}
	geneIdx := 0
	recs := ConvertGenes([]hmm.Gene{gene}, "species", "seq1", "helixerpost", true, 0, 100, 1, &geneIdx)
	require.NotEmpty(t, recs)
	for _, r := range recs {
		if r.Feature == gff.FeatureGene {
			// forward would have been [1,9]; reverse flips against seqLen 100.
			assert.Equal(t, uint64(92), r.Start)
			assert.Equal(t, uint64(100), r.End)
			require.NotNil(t, r.Strand)
			assert.Equal(t, gff.Reverse, *r.Strand)
		}
	}
}
