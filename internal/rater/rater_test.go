package rater

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TonyBolger/HelixerPost/internal/hmm"
	"github.com/TonyBolger/HelixerPost/internal/penalty"
)

func TestConfusionMatrixPerfectDiagonal(t *testing.T) {
	var m ConfusionMatrix
	for i := 0; i < 4; i++ {
		m.Increment(i, i)
	}
	for i := 0; i < 4; i++ {
		assert.Equal(t, uint64(1), m.TruePositive(i))
		assert.Equal(t, uint64(0), m.FalsePositive(i))
		assert.Equal(t, uint64(0), m.FalseNegative(i))
	}
}

func TestConfusionMatrixFalsePositives(t *testing.T) {
	var m ConfusionMatrix
	for ref := 0; ref < 4; ref++ {
		m.Increment(ref, 1) // every reference class predicted as class 1
	}
	assert.Equal(t, uint64(1), m.TruePositive(1))
	assert.Equal(t, uint64(3), m.FalsePositive(1))
	assert.Equal(t, uint64(0), m.FalseNegative(1))
}

func TestRateRegionsCodingPhaseCyclesZeroTwoOne(t *testing.T) {
	sr := NewSequenceRater(9)
	regions := []hmm.Region{{Start: 0, End: 9, Label: hmm.LabelCoding}}
	sr.RateRegions(0, regions, false)
	want := []Annotation{
		CodingPhase0, CodingPhase2, CodingPhase1,
		CodingPhase0, CodingPhase2, CodingPhase1,
		CodingPhase0, CodingPhase2, CodingPhase1,
	}
	assert.Equal(t, want, sr.annotation)
}

func TestRateRegionsPhaseCycleDoesNotResetBetweenNonCodingGaps(t *testing.T) {
	sr := NewSequenceRater(9)
	regions := []hmm.Region{
		{Start: 0, End: 3, Label: hmm.LabelCoding},
		{Start: 3, End: 5, Label: hmm.LabelIntron},
		{Start: 5, End: 9, Label: hmm.LabelCoding},
	}
	sr.RateRegions(0, regions, false)
	want := []Annotation{
		CodingPhase0, CodingPhase2, CodingPhase1,
		Intron, Intron,
		CodingPhase0, CodingPhase2, CodingPhase1, CodingPhase0,
	}
	assert.Equal(t, want, sr.annotation)
}

func TestRateRegionsFilteredMarksFiltered(t *testing.T) {
	sr := NewSequenceRater(5)
	regions := []hmm.Region{{Start: 0, End: 5, Label: hmm.LabelCoding}}
	sr.RateRegions(0, regions, true)
	for _, a := range sr.annotation {
		assert.Equal(t, Filtered, a)
	}
}

type fixedComparisonStream struct {
	items []Comparison
	idx   int
}

func (s *fixedComparisonStream) Next() (Comparison, bool) {
	if s.idx >= len(s.items) {
		return Comparison{}, false
	}
	c := s.items[s.idx]
	s.idx++
	return c, true
}

func TestCalculateStatsCountsOutsideWindowOnlyWhenRefIsGenic(t *testing.T) {
	sr := NewSequenceRater(2) // both bases stay OutsideWindow
	stream := &fixedComparisonStream{items: []Comparison{
		{ // reference says intergenic: should not count toward lost-genic tallies
			RefClass: penalty.ClassProb{Intergenic: 0.9, UTR: 0.05, Coding: 0.03, Intron: 0.02},
			RefPhase: penalty.PhaseProb{NonCoding: 0.9, Phase0: 0.05, Phase1: 0.03, Phase2: 0.02},
			MLClass:  penalty.ClassProb{Intergenic: 0.9, UTR: 0.05, Coding: 0.03, Intron: 0.02},
			MLPhase:  penalty.PhaseProb{NonCoding: 0.9, Phase0: 0.05, Phase1: 0.03, Phase2: 0.02},
		},
		{ // reference says coding: should count
			RefClass: penalty.ClassProb{Intergenic: 0.02, UTR: 0.03, Coding: 0.9, Intron: 0.05},
			RefPhase: penalty.PhaseProb{NonCoding: 0.02, Phase0: 0.9, Phase1: 0.05, Phase2: 0.03},
			MLClass:  penalty.ClassProb{Intergenic: 0.02, UTR: 0.03, Coding: 0.9, Intron: 0.05},
			MLPhase:  penalty.PhaseProb{NonCoding: 0.02, Phase0: 0.9, Phase1: 0.05, Phase2: 0.03},
		},
	}}
	rating := sr.CalculateStats(stream)
	assert.Equal(t, uint64(1), rating.OutsideWindowCount)
	assert.Equal(t, uint64(0), rating.FilteredCount)
}
