package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/TonyBolger/HelixerPost/internal/blockindex"
	"github.com/TonyBolger/HelixerPost/internal/blockstore/duckdbstore"
	"github.com/TonyBolger/HelixerPost/internal/genomedb"
	"github.com/TonyBolger/HelixerPost/internal/gff"
	"github.com/TonyBolger/HelixerPost/internal/logging"
	"github.com/TonyBolger/HelixerPost/internal/pipeline"
)

func newAnnotateCmd() *cobra.Command {
	var (
		windowSize      int
		edgeThreshold   float64
		peakThreshold   float64
		minCodingLength int
		workers         int
		species         string
	)

	cmd := &cobra.Command{
		Use:   "annotate <genome.db> <predictions.db> <gff_out>",
		Short: "Decode predictions into a GFF3 file",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := pipelineConfigFromViper(pipeline.DefaultConfig())
			if cmd.Flags().Changed("window-size") {
				cfg.Window.WindowSize = windowSize
			}
			if cmd.Flags().Changed("edge-threshold") {
				cfg.Window.EdgeThreshold = edgeThreshold
			}
			if cmd.Flags().Changed("peak-threshold") {
				cfg.Window.PeakThreshold = peakThreshold
			}
			if cmd.Flags().Changed("min-coding-length") {
				cfg.MinCodingLength = minCodingLength
			}

			return runAnnotate(args[0], args[1], args[2], species, workers, cfg)
		},
	}

	def := pipeline.DefaultConfig()
	cmd.Flags().IntVar(&windowSize, "window-size", def.Window.WindowSize, "sliding window size, in bases")
	cmd.Flags().Float64Var(&edgeThreshold, "edge-threshold", def.Window.EdgeThreshold, "genic-mass fraction to open/close a scan window")
	cmd.Flags().Float64Var(&peakThreshold, "peak-threshold", def.Window.PeakThreshold, "peak genic-mass fraction required to keep a span")
	cmd.Flags().IntVar(&minCodingLength, "min-coding-length", def.MinCodingLength, "minimum coding length (bases) for a gene to be emitted")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker pool size (0 = runtime.NumCPU())")
	cmd.Flags().StringVar(&species, "species", "", "species name recorded in the GFF3 header and gene IDs")

	return cmd
}

func runAnnotate(genomePath, predictionsPath, gffOutPath, species string, workers int, cfg pipeline.Config) error {
	logger, err := logging.New(verbose)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

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

	out, err := os.Create(gffOutPath)
	if err != nil {
		return newUsageError("create output file %q: %w", gffOutPath, err)
	}
	defer out.Close()

	if species == "" {
		species = speciesList[0]
	}

	writer := gff.NewWriter(out)
	if err := writer.WriteGlobalHeader(species, ""); err != nil {
		return fmt.Errorf("write GFF header: %w", err)
	}

	proc := pipeline.NewProcessor(store, cfg)
	items := pipeline.BuildWorkItems(species, idx)

	queue := make(chan pipeline.WorkItem, len(items))
	for _, item := range items {
		queue <- item
	}
	close(queue)

	results := proc.ParallelProcess(context.Background(), queue, workers)

	var firstErr error
	genes := 0
	err = pipeline.OrderedCollect(results, func(r pipeline.WorkResult) error {
		if r.Err != nil {
			logger.Sugar().Warnf("sequence %q: %v", r.Item.Sequence.Name, r.Err)
			firstErr = r.Err
			return nil
		}
		if err := writer.WriteRegionHeader(r.Item.Sequence.Name, r.Item.Sequence.Length); err != nil {
			return fmt.Errorf("write region header for %q: %w", r.Item.Sequence.Name, err)
		}
		if err := writer.WriteRecords(r.Records); err != nil {
			return fmt.Errorf("write records for %q: %w", r.Item.Sequence.Name, err)
		}
		genes += len(r.Records)
		return nil
	})
	if err != nil {
		return err
	}
	if firstErr != nil {
		return fmt.Errorf("one or more sequences failed to decode: %w", firstErr)
	}

	if err := writer.Flush(); err != nil {
		return fmt.Errorf("flush GFF output: %w", err)
	}

	logger.Sugar().Infof("wrote %d records across %d sequences", genes, len(items))
	return nil
}
