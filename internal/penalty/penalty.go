// Package penalty converts model probabilities into additive penalties
// and fuses the class and phase channels into one joint distribution.
package penalty

import "math"

// ClassFloor, PhaseFloor, BaseFloor and FusedFloor bound the minimum
// probability mass any channel is allowed before taking -log2. Without a
// floor a zero-probability symbol produces +Inf and poisons every
// downstream sum.
const (
	ClassFloor = 1e-9
	PhaseFloor = 1e-9
	BaseFloor  = 1e-9
	FusedFloor = 1e-9
)

// ClassProb holds the model's per-base class distribution.
type ClassProb struct {
	Intergenic float64
	UTR        float64
	Coding     float64
	Intron     float64
}

// Genic returns the probability mass assigned to any non-intergenic class.
func (c ClassProb) Genic() float64 { return 1 - c.Intergenic }

// PhaseProb holds the model's per-base coding-phase distribution.
type PhaseProb struct {
	NonCoding float64
	Phase0    float64
	Phase1    float64
	Phase2    float64
}

// CodingMass returns the probability mass assigned to any coding phase.
func (p PhaseProb) CodingMass() float64 { return p.Phase0 + p.Phase1 + p.Phase2 }

// BaseProb holds the model's per-base one-hot(-ish) nucleotide distribution.
type BaseProb struct {
	C, A, T, G float64
}

// ClassPenalty is the -log2, min-subtracted transform of ClassProb.
type ClassPenalty struct {
	Intergenic float64
	UTR        float64
	Coding     float64
	Intron     float64
}

// PhasePenalty is the -log2, min-subtracted transform of PhaseProb.
type PhasePenalty struct {
	NonCoding float64
	Phase0    float64
	Phase1    float64
	Phase2    float64
}

// BasePenalty is the -log2, min-subtracted transform of BaseProb.
type BasePenalty struct {
	C, A, T, G float64
}

// Base returns the called base for this penalty vector: whichever
// component transformed to (approximately) zero cost.
func (b BasePenalty) Base() byte {
	best, bestPen := byte('N'), math.Inf(1)
	for base, pen := range map[byte]float64{'C': b.C, 'A': b.A, 'T': b.T, 'G': b.G} {
		if pen < bestPen {
			best, bestPen = base, pen
		}
	}
	return best
}

// FusedPenalty is the six-way class+phase joint penalty vector consumed by
// the HMM emission table: intergenic, UTR (either side), and three coding
// phases, plus intron.
type FusedPenalty struct {
	Intergenic float64
	UTR        float64
	CodingPh0  float64
	CodingPh1  float64
	CodingPh2  float64
	Intron     float64
}

func transform4(p [4]float64, floor float64) [4]float64 {
	var q [4]float64
	min := math.Inf(1)
	for i, v := range p {
		if v < floor {
			v = floor
		}
		q[i] = -math.Log2(v)
		if q[i] < min {
			min = q[i]
		}
	}
	for i := range q {
		q[i] -= min
	}
	return q
}

// TransformClass converts a ClassProb into a ClassPenalty.
func TransformClass(p ClassProb) ClassPenalty {
	q := transform4([4]float64{p.Intergenic, p.UTR, p.Coding, p.Intron}, ClassFloor)
	return ClassPenalty{Intergenic: q[0], UTR: q[1], Coding: q[2], Intron: q[3]}
}

// TransformPhase converts a PhaseProb into a PhasePenalty, using floor for
// the probability floor (callers may pass a tighter floor than PhaseFloor,
// per spec's optional 0.5 variant).
func TransformPhase(p PhaseProb, floor float64) PhasePenalty {
	q := transform4([4]float64{p.NonCoding, p.Phase0, p.Phase1, p.Phase2}, floor)
	return PhasePenalty{NonCoding: q[0], Phase0: q[1], Phase1: q[2], Phase2: q[3]}
}

// TransformBase converts a BaseProb into a BasePenalty.
func TransformBase(p BaseProb) BasePenalty {
	q := transform4([4]float64{p.C, p.A, p.T, p.G}, BaseFloor)
	return BasePenalty{C: q[0], A: q[1], T: q[2], G: q[3]}
}

func transformFused(v [6]float64) FusedPenalty {
	min := math.Inf(1)
	for i, x := range v {
		if x < FusedFloor {
			x = FusedFloor
		}
		v[i] = -math.Log2(x)
		if v[i] < min {
			min = v[i]
		}
	}
	for i := range v {
		v[i] -= min
	}
	return FusedPenalty{Intergenic: v[0], UTR: v[1], CodingPh0: v[2], CodingPh1: v[3], CodingPh2: v[4], Intron: v[5]}
}
