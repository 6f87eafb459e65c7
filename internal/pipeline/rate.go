package pipeline

import (
	"context"
	"fmt"

	"github.com/TonyBolger/HelixerPost/internal/blockindex"
	"github.com/TonyBolger/HelixerPost/internal/blockstore"
	"github.com/TonyBolger/HelixerPost/internal/hmm"
	"github.com/TonyBolger/HelixerPost/internal/rater"
	"github.com/TonyBolger/HelixerPost/internal/window"
)

// sliceStream replays a fully-materialized strand as a window.Stream, so
// the decoder can scan it a second time after it has already been read
// once for the raw per-base ml/ref comparison.
type sliceStream struct {
	entries []window.Entry
	i       int
}

func (s *sliceStream) Next() (window.Entry, bool) {
	if s.i >= len(s.entries) {
		return window.Entry{}, false
	}
	e := s.entries[s.i]
	s.i++
	return e, true
}

// sliceComparisonStream zips a reference and a model strand, positioned by
// index, into rater.Comparison values.
type sliceComparisonStream struct {
	ref, ml []window.Entry
	i       int
}

func (s *sliceComparisonStream) Next() (rater.Comparison, bool) {
	if s.i >= len(s.ml) || s.i >= len(s.ref) {
		return rater.Comparison{}, false
	}
	c := rater.Comparison{
		RefClass: s.ref[s.i].Class,
		RefPhase: s.ref[s.i].Phase,
		MLClass:  s.ml[s.i].Class,
		MLPhase:  s.ml[s.i].Phase,
	}
	s.i++
	return c, true
}

func readAllEntries(ctx context.Context, store blockstore.Store, species, sequence string, reverse bool, blockIDs []blockindex.BlockID) ([]window.Entry, error) {
	stream := newBlockStream(ctx, store, species, sequence, reverse, blockIDs)
	var entries []window.Entry
	for {
		e, ok := stream.Next()
		if !ok {
			break
		}
		entries = append(entries, e)
	}
	return entries, stream.Err()
}

// RateItem decodes one sequence's two strands and rates each against a
// reference store. When refStore is nil the model's own predictions serve
// as both the "ref" and "ml" channel (refxml then comes out perfectly
// diagonal and refxhp repeats mlxhp, which alone carries a decode-quality
// signal) — the natural fallback for a run with no labelled reference
// available.
func (p *Processor) RateItem(ctx context.Context, item WorkItem, refStore blockstore.Store) (rater.SequenceRating, error) {
	fwd, err := p.rateStrand(ctx, item, false, item.FwdBlocks, refStore)
	if err != nil {
		return rater.SequenceRating{}, fmt.Errorf("sequence %q forward strand: %w", item.Sequence.Name, err)
	}

	rev, err := p.rateStrand(ctx, item, true, item.RevBlocks, refStore)
	if err != nil {
		return rater.SequenceRating{}, fmt.Errorf("sequence %q reverse strand: %w", item.Sequence.Name, err)
	}

	fwd.Accumulate(rev)
	return fwd, nil
}

func (p *Processor) rateStrand(ctx context.Context, item WorkItem, reverse bool, blockIDs []blockindex.BlockID, refStore blockstore.Store) (rater.SequenceRating, error) {
	mlEntries, err := readAllEntries(ctx, p.store, item.Species, item.Sequence.Name, reverse, blockIDs)
	if err != nil {
		return rater.SequenceRating{}, err
	}

	effectiveRefStore := refStore
	if effectiveRefStore == nil {
		effectiveRefStore = p.store
	}
	refEntries, err := readAllEntries(ctx, effectiveRefStore, item.Species, item.Sequence.Name, reverse, blockIDs)
	if err != nil {
		return rater.SequenceRating{}, err
	}

	sr := rater.NewSequenceRater(len(mlEntries))

	scanner, ok := window.New(&sliceStream{entries: mlEntries}, p.cfg.Window)
	if ok {
		for {
			span, ok := scanner.Next()
			if !ok {
				break
			}
			decCtx := hmm.NewContext(span, p.cfg.Fusion)
			sol, err := hmm.Solve(p.cfg.HMM, decCtx)
			if err != nil {
				return rater.SequenceRating{}, fmt.Errorf("decode span at %d: %w", span.StartPos, err)
			}
			regions := sol.TraceRegions()
			// Stamp the whole trace (intergenic included), then restamp each
			// gene so its phase cycle starts fresh and a gene below the
			// minimum coding length reads as Filtered.
			sr.RateRegions(span.StartPos, regions, false)
			for _, gene := range hmm.SplitGenes(regions) {
				sr.RateRegions(span.StartPos, gene.Regions, gene.CodingLength < p.cfg.MinCodingLength)
			}
		}
	}

	return sr.CalculateStats(&sliceComparisonStream{ref: refEntries, ml: mlEntries}), nil
}
