package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TonyBolger/HelixerPost/internal/blockindex"
	"github.com/TonyBolger/HelixerPost/internal/blockstore"
	"github.com/TonyBolger/HelixerPost/internal/blockstore/duckdbstore"
	"github.com/TonyBolger/HelixerPost/internal/genomedb"
	"github.com/TonyBolger/HelixerPost/internal/pipeline"
	"github.com/TonyBolger/HelixerPost/internal/rater"
)

func newRateCmd() *cobra.Command {
	var referencePath string

	cmd := &cobra.Command{
		Use:   "rate <genome.db> <predictions.db>",
		Short: "Report confusion-matrix quality stats without writing a GFF3 file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRate(args[0], args[1], referencePath)
		},
	}

	cmd.Flags().StringVar(&referencePath, "reference", "", "optional predictions database holding reference labels (default: rate against the model's own calls)")

	return cmd
}

func runRate(genomePath, predictionsPath, referencePath string) error {
	genome, err := genomedb.Open(genomePath)
	if err != nil {
		return newUsageError("open genome database %q: %w", genomePath, err)
	}
	defer genome.Close()

	speciesList, sequences, startEnds, err := genome.ListBlocks()
	if err != nil {
		return fmt.Errorf("read genome block metadata: %w", err)
	}
	if len(speciesList) == 0 {
		return newUsageError("genome database %q has no recorded blocks", genomePath)
	}

	idx, err := blockindex.Build(speciesList, sequences, startEnds)
	if err != nil {
		return fmt.Errorf("build block index: %w", err)
	}

	store, err := duckdbstore.Open(predictionsPath)
	if err != nil {
		return newUsageError("open predictions database %q: %w", predictionsPath, err)
	}
	defer store.Close()

	var refStore blockstore.Store
	if referencePath != "" {
		refDB, err := duckdbstore.Open(referencePath)
		if err != nil {
			return newUsageError("open reference database %q: %w", referencePath, err)
		}
		defer refDB.Close()
		refStore = refDB
	}

	proc := pipeline.NewProcessor(store, pipelineConfigFromViper(pipeline.DefaultConfig()))
	items := pipeline.BuildWorkItems(speciesList[0], idx)

	var total rater.SequenceRating
	for _, item := range items {
		rating, err := proc.RateItem(context.Background(), item, refStore)
		if err != nil {
			return fmt.Errorf("rate sequence %q: %w", item.Sequence.Name, err)
		}
		total.Accumulate(rating)
	}

	printRating(os.Stdout, total)
	return nil
}

func printRating(w io.Writer, r rater.SequenceRating) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "matrix\trollup\tprecision\trecall\tf1")

	row := func(label, rollup string, p, rec, f1 float64) {
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%.4f\n", label, rollup, p, rec, f1)
	}

	for _, m := range []struct {
		label string
		cm    rater.ConfusionMatrix
	}{
		{"ref-vs-ml class", r.RefMLClass},
		{"ref-vs-hp class", r.RefHPClass},
		{"ml-vs-hp class", r.MLHPClass},
	} {
		p, rec, f1 := m.cm.SubgenicPrecisionRecallF1()
		row(m.label, "subgenic", p, rec, f1)
		p, rec, f1 = m.cm.GenicPrecisionRecallF1()
		row(m.label, "genic", p, rec, f1)
	}

	for _, m := range []struct {
		label string
		cm    rater.ConfusionMatrix
	}{
		{"ref-vs-ml phase", r.RefMLPhase},
		{"ref-vs-hp phase", r.RefHPPhase},
		{"ml-vs-hp phase", r.MLHPPhase},
	} {
		p, rec, f1 := m.cm.CodingPhasePrecisionRecallF1()
		row(m.label, "coding-phase", p, rec, f1)
	}

	tw.Flush()

	fmt.Fprintf(w, "\nreference-genic bases lost to window filtering: %d\n", r.OutsideWindowCount)
	fmt.Fprintf(w, "reference-genic bases lost to short-ORF filtering: %d\n", r.FilteredCount)
}
