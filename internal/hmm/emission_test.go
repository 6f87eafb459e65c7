package hmm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TonyBolger/HelixerPost/internal/penalty"
)

func TestEmissionPenaltyPicksMatchingChannel(t *testing.T) {
	class := penalty.ClassPenalty{Intergenic: 1, UTR: 2, Coding: 3, Intron: 4}
	fused := penalty.FusedPenalty{Intergenic: 10, UTR: 20, CodingPh0: 30, CodingPh1: 31, CodingPh2: 32, Intron: 40}

	cases := []struct {
		state State
		want  float64
	}{
		{State{Intergenic, NoIntron}, class.Intergenic},
		{State{UTR5, NoIntron}, class.UTR},
		{State{UTR3, NoIntron}, class.UTR},
		{State{Coding0, NoIntron}, fused.CodingPh0},
		{State{Start0, NoIntron}, fused.CodingPh0},
		{State{Stop0T, NoIntron}, fused.CodingPh0},
		{State{Coding1, NoIntron}, fused.CodingPh2},
		{State{Start1, NoIntron}, fused.CodingPh2},
		{State{Stop1TA, NoIntron}, fused.CodingPh2},
		{State{Stop1TG, NoIntron}, fused.CodingPh2},
		{State{Coding2, NoIntron}, fused.CodingPh1},
		{State{Start2, NoIntron}, fused.CodingPh1},
		{State{Stop2, NoIntron}, fused.CodingPh1},
		{State{Coding0, U2GTAG}, class.Intron},
		{State{UTR5, U2GTAGDSS}, class.Intron},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, EmissionPenalty(c.state, class, fused), "%v", c.state)
	}
}
