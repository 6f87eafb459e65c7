package hmm

import "github.com/TonyBolger/HelixerPost/internal/penalty"

// EmissionPenalty returns the per-base cost of state s emitting the base
// at a position whose class/fused penalties are given. Any intron state
// (DSS or body) is scored purely against the class-level intron penalty;
// otherwise the primary picks out the matching class/fused channel.
func EmissionPenalty(s State, class penalty.ClassPenalty, fused penalty.FusedPenalty) float64 {
	if s.Intron != NoIntron {
		return class.Intron
	}
	switch s.Primary {
	case Intergenic:
		return class.Intergenic
	case UTR5, UTR3:
		return class.UTR
	case Coding0, Start0, Stop0T:
		return fused.CodingPh0
	case Coding1, Start1, Stop1TA, Stop1TG:
		return fused.CodingPh2
	case Coding2, Start2, Stop2:
		return fused.CodingPh1
	default:
		return 0
	}
}
