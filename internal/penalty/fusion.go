package penalty

// FusionConfig collects the tunables for the class+phase fusion step.
// Retain is the fraction of the rescaled phase channel kept verbatim; the
// remainder is diluted toward a uniform three-way split of the class
// channel's own coding mass, to keep an unusually confident (and possibly
// miscalibrated) phase head from dominating a transition the class channel
// itself is unsure about (reference value: 0.20).
type FusionConfig struct {
	Retain     float64
	PhaseFloor float64
}

// Default returns the reference fusion configuration from the tunable
// constants table.
func Default() FusionConfig {
	return FusionConfig{Retain: 0.20, PhaseFloor: PhaseFloor}
}

// Fuse rescales the phase channel onto the class channel's coding mass c,
// blends the result toward the dilution target t = c split evenly across
// the three phases, then applies the standard floor/-log2/min-subtract
// transform to the resulting six-way joint distribution.
func Fuse(cfg FusionConfig, class ClassProb, phase PhaseProb) FusedPenalty {
	codingMass := class.Coding
	phaseCodingMass := phase.CodingMass()

	var ph0, ph1, ph2 float64
	if phaseCodingMass > 0 {
		scale := codingMass / phaseCodingMass
		ph0 = phase.Phase0 * scale
		ph1 = phase.Phase1 * scale
		ph2 = phase.Phase2 * scale
	} else {
		// No phase-coding signal at all: spread the class channel's coding
		// mass evenly across the three phases rather than leaving it unowned.
		ph0, ph1, ph2 = codingMass/3, codingMass/3, codingMass/3
	}

	target := codingMass / 3
	retain := cfg.Retain
	ph0 = retain*ph0 + (1-retain)*target
	ph1 = retain*ph1 + (1-retain)*target
	ph2 = retain*ph2 + (1-retain)*target

	raw := [6]float64{class.Intergenic, class.UTR, ph0, ph1, ph2, class.Intron}
	return transformFused(raw)
}
