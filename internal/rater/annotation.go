package rater

import "github.com/TonyBolger/HelixerPost/internal/penalty"

// Annotation is the reconstructed per-base label: either a diagnostic
// state (no reference coverage, or a filtered-out call) or one of the
// six genic/intergenic/intron/coding-phase roles an HMM trace assigns.
type Annotation uint8

const (
	OutsideWindow Annotation = iota
	Filtered
	Intergenic
	UTR
	CodingPhase0
	CodingPhase1
	CodingPhase2
	Intron
)

func (a Annotation) String() string {
	switch a {
	case OutsideWindow:
		return "OutsideWindow"
	case Filtered:
		return "Filtered"
	case Intergenic:
		return "Intergenic"
	case UTR:
		return "UTR"
	case CodingPhase0:
		return "CodingPhase0"
	case CodingPhase1:
		return "CodingPhase1"
	case CodingPhase2:
		return "CodingPhase2"
	case Intron:
		return "Intron"
	default:
		return "?Annotation"
	}
}

// classIdx maps an Annotation onto the 4-way class confusion axis
// (Intergenic=0, UTR=1, Coding=2, Intron=3); anything without a real
// class call (OutsideWindow, Filtered) is folded into Intergenic.
func (a Annotation) classIdx() int {
	switch a {
	case UTR:
		return 1
	case CodingPhase0, CodingPhase1, CodingPhase2:
		return 2
	case Intron:
		return 3
	default:
		return 0
	}
}

// phaseIdx maps an Annotation onto the 4-way phase confusion axis
// (NonCoding=0, Phase0=1, Phase1=2, Phase2=3).
func (a Annotation) phaseIdx() int {
	switch a {
	case CodingPhase0:
		return 1
	case CodingPhase1:
		return 2
	case CodingPhase2:
		return 3
	default:
		return 0
	}
}

// classArgmaxIdx returns the 4-way class axis index of whichever symbol
// carries the most probability mass (Intergenic=0, UTR=1, Coding=2,
// Intron=3).
func classArgmaxIdx(c penalty.ClassProb) int {
	best, idx := c.Intergenic, 0
	if c.UTR > best {
		best, idx = c.UTR, 1
	}
	if c.Coding > best {
		best, idx = c.Coding, 2
	}
	if c.Intron > best {
		best, idx = c.Intron, 3
	}
	return idx
}

// phaseArgmaxIdx returns the 4-way phase axis index of whichever symbol
// carries the most probability mass (NonCoding=0, Phase0=1, Phase1=2,
// Phase2=3).
func phaseArgmaxIdx(p penalty.PhaseProb) int {
	best, idx := p.NonCoding, 0
	if p.Phase0 > best {
		best, idx = p.Phase0, 1
	}
	if p.Phase1 > best {
		best, idx = p.Phase1, 2
	}
	if p.Phase2 > best {
		best, idx = p.Phase2, 3
	}
	return idx
}
