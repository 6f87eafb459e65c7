package hmm

import (
	"github.com/TonyBolger/HelixerPost/internal/hmmconfig"
)

// Successor is one candidate step out of a state at a given position: the
// next state, the [start,end) span it will occupy, and the extra
// (non-emission) transition penalty incurred.
type Successor struct {
	Next         State
	Start, End   int
	ExtraPenalty float64
}

// successorsFor enumerates every candidate step from state s positioned
// at pos (i.e. s's next unconsumed base is ctx position pos), dropping
// any that would run past the window end.
func successorsFor(cfg hmmconfig.Config, ctx *Context, s State, pos int) []Successor {
	var out []Successor
	add := func(next State, length int, extra float64) {
		end := pos + length
		if end > ctx.N {
			return
		}
		out = append(out, Successor{Next: next, Start: pos, End: end, ExtraPenalty: extra})
	}

	if s.Intron != NoIntron {
		appendIntronSuccessors(cfg, ctx, s, pos, add)
		return out
	}

	switch s.Primary {
	case Intergenic:
		add(State{Intergenic, NoIntron}, 1, 0)
		add(State{UTR5, NoIntron}, 1, 0)
		add(State{Start0, NoIntron}, 1, startPenalty(ctx, pos, 'A', cfg.StartWeight))

	case UTR5:
		add(State{UTR5, NoIntron}, 1, 0)
		add(State{Start0, NoIntron}, 1, startPenalty(ctx, pos, 'A', cfg.StartWeight))
		appendIntronEntry(cfg, ctx, UTR5, cfg.CanSpliceUTR5, pos, add)

	case Start0:
		add(State{Start1, NoIntron}, 1, startPenalty(ctx, pos, 'T', cfg.StartWeight))
		appendIntronEntry(cfg, ctx, Start0, cfg.CanSpliceStart, pos, add)

	case Start1:
		add(State{Start2, NoIntron}, 1, startPenalty(ctx, pos, 'G', cfg.StartWeight))
		appendIntronEntry(cfg, ctx, Start1, cfg.CanSpliceStart, pos, add)

	case Start2:
		add(State{Coding0, NoIntron}, 1, 0)
		appendIntronEntry(cfg, ctx, Coding2, cfg.CanSpliceStartCoding, pos, add)

	case Coding0:
		add(State{Coding1, NoIntron}, 1, 0)
		appendIntronEntry(cfg, ctx, Coding0, cfg.CanSpliceCoding, pos, add)

	case Coding1:
		add(State{Coding2, NoIntron}, 1, 0)
		appendIntronEntry(cfg, ctx, Coding1, cfg.CanSpliceCoding, pos, add)

	case Coding2:
		forbid := cfg.ForbidInternalStop && readsAsStopFrom(ctx, pos)
		if !forbid {
			add(State{Coding0, NoIntron}, 1, stopReadThroughRisk(ctx, pos, 'T', cfg.StopWeight))
		}
		add(State{Stop0T, NoIntron}, 1, stopPenalty(ctx, pos, 'T', cfg.StopWeight))
		appendIntronEntry(cfg, ctx, Coding2, cfg.CanSpliceCoding, pos, add)

	case Stop0T:
		add(State{Stop1TA, NoIntron}, 1, stopPenalty(ctx, pos, 'A', cfg.StopWeight))
		add(State{Stop1TG, NoIntron}, 1, stopPenalty(ctx, pos, 'G', cfg.StopWeight))
		appendIntronEntry(cfg, ctx, Stop0T, cfg.CanSpliceStop, pos, add)

	case Stop1TA:
		add(State{Stop2, NoIntron}, 1, stopPenalty(ctx, pos, 'A', cfg.StopWeight))
		add(State{Stop2, NoIntron}, 1, stopPenalty(ctx, pos, 'G', cfg.StopWeight))
		forbid := cfg.ForbidInternalStop && (readsAsBase(ctx, pos, 'A') || readsAsBase(ctx, pos, 'G'))
		if !forbid {
			add(State{Coding2, NoIntron}, 1, stopReadThroughRisk(ctx, pos, 'A', cfg.StopWeight)+stopReadThroughRisk(ctx, pos, 'G', cfg.StopWeight))
		}
		appendIntronEntry(cfg, ctx, Stop1TA, cfg.CanSpliceStop, pos, add)

	case Stop1TG:
		add(State{Stop2, NoIntron}, 1, stopPenalty(ctx, pos, 'A', cfg.StopWeight))
		forbid := cfg.ForbidInternalStop && readsAsBase(ctx, pos, 'A')
		if !forbid {
			add(State{Coding2, NoIntron}, 1, stopReadThroughRisk(ctx, pos, 'A', cfg.StopWeight))
		}
		appendIntronEntry(cfg, ctx, Stop1TG, cfg.CanSpliceStop, pos, add)

	case Stop2:
		add(State{UTR3, NoIntron}, 1, 0)
		add(State{Intergenic, NoIntron}, 1, 0)
		appendIntronEntry(cfg, ctx, UTR3, cfg.CanSpliceStopUTR3, pos, add)

	case UTR3:
		add(State{UTR3, NoIntron}, 1, 0)
		add(State{Intergenic, NoIntron}, 1, 0)
		appendIntronEntry(cfg, ctx, UTR3, cfg.CanSpliceUTR3, pos, add)
	}

	return out
}

// appendIntronEntry adds the three donor-splice-site entry successors
// (one per recognised intron class) from primary at pos, if gated on.
func appendIntronEntry(cfg hmmconfig.Config, ctx *Context, primary Primary, gate bool, pos int, add func(State, int, float64)) {
	if !gate {
		return
	}
	add(State{primary, U2GTAGDSS}, hmmconfig.DSSLenU2, donorPenaltyU2GTAG(ctx, pos, cfg))
	add(State{primary, U2GCAGDSS}, hmmconfig.DSSLenU2, donorPenaltyU2GCAG(ctx, pos, cfg))
	add(State{primary, U12ATACDSS}, hmmconfig.DSSLenU12, donorPenaltyU12ATAC(ctx, pos, cfg))
}

// appendIntronSuccessors handles the two intron-interior transitions: the
// DSS gadget immediately collapsing into the intron body's self-loop, and
// the body either continuing (self-loop) or exiting back to its primary
// once the acceptor motif is scored.
func appendIntronSuccessors(cfg hmmconfig.Config, ctx *Context, s State, pos int, add func(State, int, float64)) {
	if s.Intron.IsDSS() {
		add(State{s.Primary, bodyKindOf(s.Intron)}, 1, 0)
		return
	}

	// Continue inside the intron.
	add(s, 1, 0)

	// Exit: scored against the two bases immediately upstream (the
	// acceptor dinucleotide just consumed by the preceding self-loop
	// steps), as a zero-width transition back to the primary's ordinary
	// (non-intron) state.
	exitPenalty := acceptorPenalty(ctx, pos, s.Intron, cfg)
	add(State{s.Primary, NoIntron}, 0, exitPenalty)

	// The two region-boundary gates that additionally let an intron
	// opened in one region accept straight into the next, rather than
	// returning to its own region first.
	switch s.Primary {
	case UTR5:
		if cfg.CanSpliceUTR5Start {
			add(State{Start0, NoIntron}, 1, exitPenalty+startPenalty(ctx, pos, 'A', cfg.StartWeight))
		}
	case Coding2:
		if cfg.CanSpliceCodingStop {
			add(State{Stop0T, NoIntron}, 1, exitPenalty+stopPenalty(ctx, pos, 'T', cfg.StopWeight))
		}
	}
}

func bodyKindOf(dss IntronKind) IntronKind {
	switch dss {
	case U2GTAGDSS:
		return U2GTAG
	case U2GCAGDSS:
		return U2GCAG
	case U12ATACDSS:
		return U12ATAC
	default:
		return dss
	}
}

func baseAt(p *Context, pos int, want byte) float64 {
	bp, ok := p.basePenaltyAt(pos)
	if !ok {
		return 0
	}
	switch want {
	case 'C':
		return bp.C
	case 'A':
		return bp.A
	case 'T':
		return bp.T
	case 'G':
		return bp.G
	default:
		return 0
	}
}

func probAt(p *Context, pos int, want byte) float64 {
	pr, ok := p.baseProbAt(pos)
	if !ok {
		return 0
	}
	switch want {
	case 'C':
		return pr.C
	case 'A':
		return pr.A
	case 'T':
		return pr.T
	case 'G':
		return pr.G
	default:
		return 0
	}
}

// startPenalty / stopPenalty are "commitment" costs: low when the base at
// pos truly looks like want, high otherwise. Scored against the
// -log2-transformed base penalty, the same way donor/acceptor motifs are.
func startPenalty(ctx *Context, pos int, want byte, weight float64) float64 {
	return baseAt(ctx, pos, want) * weight
}

func stopPenalty(ctx *Context, pos int, want byte, weight float64) float64 {
	return baseAt(ctx, pos, want) * weight
}

// stopReadThroughRisk is a "continuation risk" cost: it must be large
// precisely when the base really is the stop-forming base want, so it is
// scored against the raw probability, not the penalty (which would run
// backwards: near-zero whenever want is likely).
func stopReadThroughRisk(ctx *Context, pos int, want byte, weight float64) float64 {
	return probAt(ctx, pos, want) * weight
}

// readsAsBase reports whether the most likely base at pos is want.
func readsAsBase(ctx *Context, pos int, want byte) bool {
	bp, ok := ctx.basePenaltyAt(pos)
	if !ok {
		return false
	}
	return bp.Base() == want
}

// readsAsStopFrom reports whether the three bases starting at pos spell a
// stop codon under the argmax base call.
func readsAsStopFrom(ctx *Context, pos int) bool {
	b0, ok0 := ctx.basePenaltyAt(pos)
	b1, ok1 := ctx.basePenaltyAt(pos + 1)
	b2, ok2 := ctx.basePenaltyAt(pos + 2)
	if !ok0 || !ok1 || !ok2 || b0.Base() != 'T' {
		return false
	}
	switch {
	case b1.Base() == 'A' && b2.Base() == 'A':
		return true
	case b1.Base() == 'A' && b2.Base() == 'G':
		return true
	case b1.Base() == 'G' && b2.Base() == 'A':
		return true
	default:
		return false
	}
}

func donorPenaltyU2GTAG(ctx *Context, pos int, cfg hmmconfig.Config) float64 {
	return (baseAt(ctx, pos, 'G') + baseAt(ctx, pos+1, 'T')) * cfg.DonorWeight + cfg.FixedPenaltyU2GTAG
}

func donorPenaltyU2GCAG(ctx *Context, pos int, cfg hmmconfig.Config) float64 {
	return (baseAt(ctx, pos+1, 'G') + baseAt(ctx, pos+2, 'G') + baseAt(ctx, pos+3, 'C')) * cfg.DonorWeight + cfg.FixedPenaltyU2GCAG
}

var u12DonorMotif = []byte("ATATCCT")

func donorPenaltyU12ATAC(ctx *Context, pos int, cfg hmmconfig.Config) float64 {
	var sum float64
	for i, want := range u12DonorMotif {
		sum += baseAt(ctx, pos+i, want)
	}
	return sum*cfg.DonorWeight + cfg.FixedPenaltyU12ATAC
}

func acceptorPenalty(ctx *Context, pos int, kind IntronKind, cfg hmmconfig.Config) float64 {
	switch kind {
	case U2GTAG, U2GCAG:
		return (baseAt(ctx, pos-2, 'A') + baseAt(ctx, pos-1, 'G')) * cfg.AcceptorWeight
	case U12ATAC:
		return (baseAt(ctx, pos-2, 'A') + baseAt(ctx, pos-1, 'C')) * cfg.AcceptorWeight
	default:
		return 0
	}
}
