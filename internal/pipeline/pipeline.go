// Package pipeline runs the window-scan/decode/convert chain across a
// genome's sequences: sequential within one sequence-strand, embarrassingly
// parallel across sequences, with a bounded worker pool and an
// ordered-collect stage adapted from the teacher's variant-annotation
// pipeline.
package pipeline

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/TonyBolger/HelixerPost/internal/blockindex"
	"github.com/TonyBolger/HelixerPost/internal/blockstore"
	"github.com/TonyBolger/HelixerPost/internal/geneconv"
	"github.com/TonyBolger/HelixerPost/internal/gff"
	"github.com/TonyBolger/HelixerPost/internal/hmm"
	"github.com/TonyBolger/HelixerPost/internal/hmmconfig"
	"github.com/TonyBolger/HelixerPost/internal/penalty"
	"github.com/TonyBolger/HelixerPost/internal/window"
)

// Config collects the tunables a Processor needs to turn blocks into GFF
// records.
type Config struct {
	HMM             hmmconfig.Config
	Window          window.Params
	Fusion          penalty.FusionConfig
	MinCodingLength int
	Source          string
}

// DefaultConfig returns the reference tunable set.
func DefaultConfig() Config {
	return Config{
		HMM:             hmmconfig.Default(),
		Window:          window.Default(),
		Fusion:          penalty.Default(),
		MinCodingLength: 1,
		Source:          "helixerpost",
	}
}

// WorkItem is one sequence's worth of work: both strands are decoded
// within a single item so the sequence's gene-index counter never has to
// cross a goroutine boundary, while different sequences still run in
// parallel.
type WorkItem struct {
	Seq       int
	Species   string
	Sequence  blockindex.Sequence
	FwdBlocks []blockindex.BlockID
	RevBlocks []blockindex.BlockID
}

// WorkResult holds one sequence's emitted records, in forward-then-reverse
// strand order.
type WorkResult struct {
	Seq     int
	Item    WorkItem
	Records []gff.Record
	Err     error
}

// Processor decodes genes from a block store's entries according to Config.
type Processor struct {
	store blockstore.Store
	cfg   Config
}

// NewProcessor builds a Processor reading blocks from store.
func NewProcessor(store blockstore.Store, cfg Config) *Processor {
	return &Processor{store: store, cfg: cfg}
}

// BuildWorkItems turns an index's sequences into one WorkItem per sequence,
// numbered in index order for use with OrderedCollect.
func BuildWorkItems(species string, idx *blockindex.Index) []WorkItem {
	seqs := idx.AllSequences()
	items := make([]WorkItem, 0, len(seqs))
	for i, seq := range seqs {
		fwd, rev := idx.BlocksForSequence(seq.ID)
		items = append(items, WorkItem{Seq: i, Species: species, Sequence: seq, FwdBlocks: fwd, RevBlocks: rev})
	}
	return items
}

// ProcessItem decodes one sequence's forward then reverse strand, emitting
// GFF records with gene numbering shared across both strands.
func (p *Processor) ProcessItem(ctx context.Context, item WorkItem) ([]gff.Record, error) {
	geneIdx := 0

	fwdRecs, err := p.processStrand(ctx, item, false, item.FwdBlocks, &geneIdx)
	if err != nil {
		return nil, fmt.Errorf("sequence %q forward strand: %w", item.Sequence.Name, err)
	}

	revRecs, err := p.processStrand(ctx, item, true, item.RevBlocks, &geneIdx)
	if err != nil {
		return nil, fmt.Errorf("sequence %q reverse strand: %w", item.Sequence.Name, err)
	}

	return append(fwdRecs, revRecs...), nil
}

func (p *Processor) processStrand(ctx context.Context, item WorkItem, reverse bool, blockIDs []blockindex.BlockID, geneIdx *int) ([]gff.Record, error) {
	stream := newBlockStream(ctx, p.store, item.Species, item.Sequence.Name, reverse, blockIDs)

	scanner, ok := window.New(stream, p.cfg.Window)
	if !ok {
		return nil, stream.Err()
	}

	var records []gff.Record
	for {
		span, ok := scanner.Next()
		if !ok {
			break
		}

		decCtx := hmm.NewContext(span, p.cfg.Fusion)
		sol, err := hmm.Solve(p.cfg.HMM, decCtx)
		if err != nil {
			return nil, fmt.Errorf("decode span at %d: %w", span.StartPos, err)
		}

		regions := sol.TraceRegions()
		genes := hmm.SplitGenes(regions)

		recs := geneconv.ConvertGenes(genes, item.Species, item.Sequence.Name, p.cfg.Source,
			reverse, span.StartPos, item.Sequence.Length, p.cfg.MinCodingLength, geneIdx)
		records = append(records, recs...)
	}

	if err := stream.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// ParallelProcess decodes items using a pool of workers. Results arrive on
// the returned channel in completion order, not sequence order; use
// OrderedCollect to restore ordering. If workers is 0, runtime.NumCPU() is
// used.
func (p *Processor) ParallelProcess(ctx context.Context, items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				recs, err := p.ProcessItem(ctx, item)
				results <- WorkResult{Seq: item.Seq, Item: item, Records: recs, Err: err}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order,
// buffering out-of-order results until their turn comes. Blocks until the
// results channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	return OrderedCollectWithProgress(results, 0, nil, fn)
}

// OrderedCollectWithProgress is like OrderedCollect but periodically calls
// progress with the number of sequences processed so far. If interval is 0
// or progress is nil, no progress reporting is done.
func OrderedCollectWithProgress(results <-chan WorkResult, interval time.Duration, progress func(int), fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	var ticker *time.Ticker
	var tickC <-chan time.Time
	if interval > 0 && progress != nil {
		ticker = time.NewTicker(interval)
		tickC = ticker.C
		defer ticker.Stop()
	}

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				for range results {
				}
				return err
			}
		}

		if tickC != nil {
			select {
			case <-tickC:
				progress(nextSeq)
			default:
			}
		}
	}

	return nil
}
