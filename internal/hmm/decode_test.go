package hmm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TonyBolger/HelixerPost/internal/hmmconfig"
	"github.com/TonyBolger/HelixerPost/internal/penalty"
	"github.com/TonyBolger/HelixerPost/internal/window"
)

func uniformBase() penalty.BaseProb {
	return penalty.BaseProb{C: 0.25, A: 0.25, T: 0.25, G: 0.25}
}

func confidentBase(want byte) penalty.BaseProb {
	b := penalty.BaseProb{C: 0.02, A: 0.02, T: 0.02, G: 0.02}
	switch want {
	case 'C':
		b.C = 0.94
	case 'A':
		b.A = 0.94
	case 'T':
		b.T = 0.94
	case 'G':
		b.G = 0.94
	}
	return b
}

func intergenicEntry() window.Entry {
	return window.Entry{
		Base:  uniformBase(),
		Class: penalty.ClassProb{Intergenic: 0.94, UTR: 0.02, Coding: 0.02, Intron: 0.02},
		Phase: penalty.PhaseProb{NonCoding: 0.94, Phase0: 0.02, Phase1: 0.02, Phase2: 0.02},
	}
}

// codingEntry builds one base of a confidently-called coding region; phase
// selects which of the three reading-frame phases is dominant at this base.
func codingEntry(base byte, phase int) window.Entry {
	p := penalty.PhaseProb{NonCoding: 0.02, Phase0: 0.02, Phase1: 0.02, Phase2: 0.02}
	switch phase {
	case 0:
		p.Phase0 = 0.94
	case 1:
		p.Phase1 = 0.94
	case 2:
		p.Phase2 = 0.94
	}
	return window.Entry{
		Base:  confidentBase(base),
		Class: penalty.ClassProb{Intergenic: 0.03, UTR: 0.03, Coding: 0.91, Intron: 0.03},
		Phase: p,
	}
}

func buildContext(entries []window.Entry) *Context {
	span := window.Span{Entries: entries, StartPos: 0}
	return NewContext(span, penalty.Default())
}

func TestDecodePureIntergenicStaysInOneRegion(t *testing.T) {
	entries := make([]window.Entry, 20)
	for i := range entries {
		entries[i] = intergenicEntry()
	}
	ctx := buildContext(entries)
	sol, err := Solve(hmmconfig.Default(), ctx)
	require.NoError(t, err)

	regions := sol.TraceRegions()
	require.Len(t, regions, 1)
	assert.Equal(t, LabelIntergenic, regions[0].Label)
	assert.Equal(t, 0, regions[0].Start)
	assert.Equal(t, 20, regions[0].End)
	assert.Empty(t, SplitGenes(regions))
}

// TestDecodeSingleExonGeneNoIntron lays out a confident ATG...TAA ORF
// flanked by intergenic sequence with no introns, and checks that the
// decoder recovers exactly one gene with the whole start+body+stop run
// collapsed into a single Coding region.
func TestDecodeSingleExonGeneNoIntron(t *testing.T) {
	var entries []window.Entry

	// 9 bases of flanking intergenic sequence.
	for i := 0; i < 9; i++ {
		entries = append(entries, intergenicEntry())
	}

	// Start codon ATG at offsets 0,1,2 of the reading frame (phase 0,2,1 —
	// matching the 0→2→1 cycle emission.go's state-to-phase mapping expects).
	entries = append(entries, codingEntry('A', 0), codingEntry('T', 2), codingEntry('G', 1))

	// 90 bases of uneventful coding sequence, cycling phase 0,2,1.
	frame := []byte{'C', 'C', 'C'}
	phaseCycle := []int{0, 2, 1}
	for i := 0; i < 90; i++ {
		entries = append(entries, codingEntry(frame[i%3], phaseCycle[i%3]))
	}

	// Stop codon TAA, continuing the same phase cycle.
	entries = append(entries, codingEntry('T', 0), codingEntry('A', 2), codingEntry('A', 1))

	// 10 bases of trailing intergenic sequence.
	for i := 0; i < 10; i++ {
		entries = append(entries, intergenicEntry())
	}

	ctx := buildContext(entries)
	sol, err := Solve(hmmconfig.Default(), ctx)
	require.NoError(t, err)

	regions := sol.TraceRegions()
	require.NotEmpty(t, regions)

	// Regions must tile [0, N) exactly with no gaps or overlaps.
	assert.Equal(t, 0, regions[0].Start)
	for i := 1; i < len(regions); i++ {
		assert.Equal(t, regions[i-1].End, regions[i].Start)
	}
	assert.Equal(t, ctx.N, regions[len(regions)-1].End)

	genes := SplitGenes(regions)
	require.Len(t, genes, 1)
	assert.Equal(t, 96, genes[0].CodingLength)
}

func TestDecodeReportsMaxEvalsExceeded(t *testing.T) {
	entries := make([]window.Entry, 200)
	for i := range entries {
		entries[i] = intergenicEntry()
	}
	ctx := buildContext(entries)
	cfg := hmmconfig.Default()
	cfg.MaxEvals = 1
	_, err := Solve(cfg, ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_EVALS")
}
