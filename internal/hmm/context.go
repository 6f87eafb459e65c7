package hmm

import (
	"github.com/TonyBolger/HelixerPost/internal/penalty"
	"github.com/TonyBolger/HelixerPost/internal/window"
)

// Context owns the per-base penalty vectors for one decoded window: the
// class, fused and base penalties, plus the raw base probabilities needed
// by the "internal stop read-through" risk scoring. It is built once per
// window and lives until the solution has been traced into Regions.
type Context struct {
	Class []penalty.ClassPenalty
	Fused []penalty.FusedPenalty
	Base  []penalty.BasePenalty
	Prob  []penalty.BaseProb
	N     int
}

// NewContext computes per-base penalty vectors from a scanned window span.
// Fusion applies no separate phase floor (FusionConfig.PhaseFloor is not
// read by penalty.Fuse); the fused six-way vector is floored at FusedFloor.
func NewContext(span window.Span, fcfg penalty.FusionConfig) *Context {
	n := span.Len()
	ctx := &Context{
		Class: make([]penalty.ClassPenalty, n),
		Fused: make([]penalty.FusedPenalty, n),
		Base:  make([]penalty.BasePenalty, n),
		Prob:  make([]penalty.BaseProb, n),
		N:     n,
	}
	for i, e := range span.Entries {
		ctx.Class[i] = penalty.TransformClass(e.Class)
		ctx.Fused[i] = penalty.Fuse(fcfg, e.Class, e.Phase)
		ctx.Base[i] = penalty.TransformBase(e.Base)
		ctx.Prob[i] = e.Base
	}
	return ctx
}

// basePenaltyAt returns the base penalty at absolute position pos, and
// whether pos lies within the window.
func (c *Context) basePenaltyAt(pos int) (penalty.BasePenalty, bool) {
	if pos < 0 || pos >= c.N {
		return penalty.BasePenalty{}, false
	}
	return c.Base[pos], true
}

// baseProbAt returns the raw base probability at absolute position pos.
func (c *Context) baseProbAt(pos int) (penalty.BaseProb, bool) {
	if pos < 0 || pos >= c.N {
		return penalty.BaseProb{}, false
	}
	return c.Prob[pos], true
}

// EmissionSum sums the per-base emission cost of state s occupying
// [start, end).
func (c *Context) EmissionSum(s State, start, end int) float64 {
	var total float64
	for p := start; p < end; p++ {
		total += EmissionPenalty(s, c.Class[p], c.Fused[p])
	}
	return total
}
