package hmm

import (
	"container/heap"

	"github.com/TonyBolger/HelixerPost/internal/herr"
	"github.com/TonyBolger/HelixerPost/internal/hmmconfig"
)

// Eval is one frontier node: the position reached, the state occupied to
// reach it, the accumulated penalty (scaled to a u64 for deterministic
// ordering), and a back-pointer to the predecessor cell.
type Eval struct {
	Pos          int
	State        State
	PrevPos      int
	PrevState    State
	HasPrev      bool
	Penalty      uint64
}

// frontier is a min-heap of *Eval ordered by (Penalty asc, Pos desc) —
// among equal-penalty evals the one further along the window wins, per
// spec's tie-break rule.
type frontier []*Eval

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].Penalty != f[j].Penalty {
		return f[i].Penalty < f[j].Penalty
	}
	return f[i].Pos > f[j].Pos
}
func (f frontier) Swap(i, j int)      { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)        { *f = append(*f, x.(*Eval)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	e := old[n-1]
	*f = old[:n-1]
	return e
}

// Solution is the decoder's output: the terminal eval and the dominance
// table needed to trace it back into Regions.
type Solution struct {
	ctx      *Context
	terminal *Eval
	best     []*Eval // flat (pos*NumStates + state.Ordinal()) -> best eval at that cell
}

// Solve runs the best-first search over ctx, starting in Intergenic at
// position 0 and terminating at ctx.N. Returns a DecodeError if MAX_EVALS
// is exceeded or no path to the end exists.
func Solve(cfg hmmconfig.Config, ctx *Context) (*Solution, error) {
	tableSize := (ctx.N + 1) * NumStates
	best := make([]*Eval, tableSize)

	cellIdx := func(pos int, s State) int { return pos*NumStates + s.Ordinal() }

	var heapData frontier
	heap.Init(&heapData)

	consider := func(e *Eval) {
		idx := cellIdx(e.Pos, e.State)
		if existing := best[idx]; existing != nil && existing.Penalty <= e.Penalty {
			return
		}
		best[idx] = e
		heap.Push(&heapData, e)
	}

	root := &Eval{Pos: 0, State: State{Intergenic, NoIntron}, Penalty: 0}
	consider(root)

	var evals uint64
	for heapData.Len() > 0 {
		e := heap.Pop(&heapData).(*Eval)

		idx := cellIdx(e.Pos, e.State)
		if best[idx] != e {
			continue // stale entry superseded by a cheaper path to the same cell
		}

		if e.Pos == ctx.N {
			return &Solution{ctx: ctx, terminal: e, best: best}, nil
		}

		evals++
		if evals > cfg.MaxEvals {
			return nil, herr.NewDecodeError("MAX_EVALS exceeded (%d): widen window thresholds or raise the cap", cfg.MaxEvals)
		}

		for _, succ := range successorsFor(cfg, ctx, e.State, e.Pos) {
			emission := ctx.EmissionSum(succ.Next, succ.Start, succ.End)
			delta := uint64((emission + succ.ExtraPenalty) * cfg.PenaltyScale)
			next := &Eval{
				Pos:       succ.End,
				State:     succ.Next,
				PrevPos:   e.Pos,
				PrevState: e.State,
				HasPrev:   true,
				Penalty:   e.Penalty + delta,
			}
			consider(next)
		}
	}

	return nil, herr.NewDecodeError("no path to window end found (length %d)", ctx.N)
}

// TerminalPenalty returns the accumulated penalty of the optimal path, as
// a float64 (undoing PENALTY_SCALE).
func (sol *Solution) TerminalPenalty(cfg hmmconfig.Config) float64 {
	return float64(sol.terminal.Penalty) / cfg.PenaltyScale
}
