package hmm

// Region is a maximal run of positions sharing one annotation label.
type Region struct {
	Start, End int
	Label      AnnotationLabel
}

func (r Region) Len() int { return r.End - r.Start }

// lookup finds the Eval stored in the dominance table for (pos, state);
// panics if absent, which would indicate a corrupted back-pointer chain.
func (sol *Solution) lookup(pos int, s State) *Eval {
	e := sol.best[pos*NumStates+s.Ordinal()]
	if e == nil {
		panic("hmm: traceback followed a back-pointer to an empty dominance cell")
	}
	return e
}

// TraceRegions walks the solution's back-pointer chain from the terminal
// eval to the root, collapsing consecutive states sharing an annotation
// label into one Region. Covers [0, N) exactly with no gaps or overlaps.
func (sol *Solution) TraceRegions() []Region {
	chain := []*Eval{sol.terminal}
	cur := sol.terminal
	for cur.HasPrev {
		cur = sol.lookup(cur.PrevPos, cur.PrevState)
		chain = append(chain, cur)
	}
	// chain is terminal..root; reverse to root..terminal.
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}

	if len(chain) < 2 {
		return nil
	}

	var regions []Region
	segStart := chain[1].PrevPos
	segEnd := chain[1].Pos
	segLabel := chain[1].State.Label()

	for i := 2; i < len(chain); i++ {
		lbl := chain[i].State.Label()
		if lbl == segLabel {
			segEnd = chain[i].Pos
			continue
		}
		regions = append(regions, Region{Start: segStart, End: segEnd, Label: segLabel})
		segStart = chain[i].PrevPos
		segEnd = chain[i].Pos
		segLabel = lbl
	}
	regions = append(regions, Region{Start: segStart, End: segEnd, Label: segLabel})
	return regions
}

// Gene is a maximal run of non-Intergenic regions.
type Gene struct {
	Regions      []Region
	CodingLength int
}

// SplitGenes groups a trace's regions into genes: every maximal run of
// non-Intergenic regions becomes one gene, with CodingLength the sum of
// its Coding sub-region lengths.
func SplitGenes(regions []Region) []Gene {
	var genes []Gene
	var current []Region
	codingLen := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		genes = append(genes, Gene{Regions: current, CodingLength: codingLen})
		current = nil
		codingLen = 0
	}

	for _, r := range regions {
		if r.Label == LabelIntergenic {
			flush()
			continue
		}
		current = append(current, r)
		if r.Label == LabelCoding {
			codingLen += r.Len()
		}
	}
	flush()
	return genes
}
