// Package geneconv converts an HMM trace's genes into GFF3 records: one
// gene/mRNA wrapper plus CDS/UTR feature lines and the exon records that
// group them.
package geneconv

import (
	"fmt"

	"github.com/TonyBolger/HelixerPost/internal/gff"
	"github.com/TonyBolger/HelixerPost/internal/hmm"
)

// convertRegions turns one gene's non-intergenic, non-intron regions into
// CDS/five_prime_UTR/three_prime_UTR feature records. position is the
// window's 0-based offset into the sequence; coordinates are converted
// from half-open [start,end) to 1-based inclusive GFF coordinates.
func convertRegions(regions []hmm.Region, sequence, source string, strand *gff.Strand, position int, geneName string) []gff.Record {
	var utr5Idx, cdsIdx, utr3Idx int
	var codingOffset uint64
	var recs []gff.Record

	for _, r := range regions {
		var feature gff.Feature
		var attributes string
		emit := true

		switch r.Label {
		case hmm.LabelIntergenic, hmm.LabelIntron:
			emit = false
		case hmm.LabelUTR5:
			utr5Idx++
			feature = gff.FeatureFivePrimeUTR
			attributes = fmt.Sprintf("ID=%s.1.five_prime_UTR.%d;Parent=%s.1", geneName, utr5Idx, geneName)
		case hmm.LabelCoding:
			cdsIdx++
			feature = gff.FeatureCDS
			attributes = fmt.Sprintf("ID=%s.1.CDS.%d;Parent=%s.1", geneName, cdsIdx, geneName)
		case hmm.LabelUTR3:
			utr3Idx++
			feature = gff.FeatureThreePrimeUTR
			attributes = fmt.Sprintf("ID=%s.1.three_prime_UTR.%d;Parent=%s.1", geneName, utr3Idx, geneName)
		}
		if !emit {
			continue
		}

		start := uint64(r.Start + position + 1)
		end := uint64(r.End + position)

		rec := gff.Record{
			Sequence:   sequence,
			Source:     source,
			Feature:    feature,
			Start:      start,
			End:        end,
			Strand:     strand,
			Attributes: attributes,
		}
		if r.Label == hmm.LabelCoding {
			phase := gff.PhaseFromOffset(codingOffset)
			rec.Phase = &phase
			codingOffset += uint64(r.Len())
		}
		recs = append(recs, rec)
	}
	return recs
}

// aggregate wraps a gene's feature records with a gene record, an mRNA
// record, and the exon records that group them: consecutive features
// merge into one exon iff prev.End+1 >= next.Start, matching the rule
// that adjacent/overlapping coding and UTR features belong to one exon.
func aggregate(recs []gff.Record, sequence, source string, strand *gff.Strand, geneName string) []gff.Record {
	if len(recs) == 0 {
		return nil
	}

	transcriptStart := recs[0].Start
	transcriptEnd := recs[0].End
	type exonRange struct{ start, end uint64 }
	var exonRanges []exonRange
	var curStart, curEnd uint64
	haveExon := false

	for _, r := range recs {
		if r.End > transcriptEnd {
			transcriptEnd = r.End
		}
		if haveExon && curEnd+1 < r.Start {
			exonRanges = append(exonRanges, exonRange{curStart, curEnd})
			haveExon = false
		}
		if !haveExon {
			curStart = r.Start
			haveExon = true
		}
		curEnd = r.End
	}
	if haveExon {
		exonRanges = append(exonRanges, exonRange{curStart, curEnd})
	}

	out := make([]gff.Record, 0, 2+len(recs)*2)
	out = append(out, gff.Record{
		Sequence: sequence, Source: source, Feature: gff.FeatureGene,
		Start: transcriptStart, End: transcriptEnd, Strand: strand,
		Attributes: fmt.Sprintf("ID=%s", geneName),
	})
	out = append(out, gff.Record{
		Sequence: sequence, Source: source, Feature: gff.FeatureMRNA,
		Start: transcriptStart, End: transcriptEnd, Strand: strand,
		Attributes: fmt.Sprintf("ID=%s.1;Parent=%s", geneName, geneName),
	})

	exonIdx := 0
	var curExonEnd uint64
	haveCurExonEnd := false
	rangeIdx := 0
	for _, r := range recs {
		if !haveCurExonEnd || curExonEnd < r.Start {
			er := exonRanges[rangeIdx]
			rangeIdx++
			exonIdx++
			out = append(out, gff.Record{
				Sequence: sequence, Source: source, Feature: gff.FeatureExon,
				Start: er.start, End: er.end, Strand: strand,
				Attributes: fmt.Sprintf("ID=%s.1.exon.%d;Parent=%s.1", geneName, exonIdx, geneName),
			})
			curExonEnd = er.end
			haveCurExonEnd = true
		}
		out = append(out, r)
	}
	return out
}

// GeneName formats the "{species}_{sequence}_{idx:06}" gene identifier.
func GeneName(species, sequence string, idx int) string {
	return fmt.Sprintf("%s_%s_%06d", species, sequence, idx)
}

// ConvertGenes turns a trace's genes into ordered GFF3 records, skipping
// any gene whose coding length falls below minCodingLength. Everything is
// generated as forward strand; when rev is true every record is flipped
// onto the reverse strand afterward via gff.Record.SwapStrand, matching
// the "generate forward, then flip" convention. geneIdx is both read and
// advanced so callers can number genes contiguously across calls (e.g.
// across the strands of one sequence).
func ConvertGenes(genes []hmm.Gene, species, sequence, source string, rev bool, position int, sequenceLength uint64, minCodingLength int, geneIdx *int) []gff.Record {
	forward := gff.Forward
	strand := &forward

	var all []gff.Record
	for _, gene := range genes {
		if gene.CodingLength < minCodingLength {
			continue
		}
		geneName := GeneName(species, sequence, *geneIdx)
		recs := convertRegions(gene.Regions, sequence, source, strand, position, geneName)
		recs = aggregate(recs, sequence, source, strand, geneName)
		all = append(all, recs...)
		*geneIdx++
	}

	if rev {
		for i := range all {
			all[i].SwapStrand(sequenceLength)
		}
	}
	return all
}
