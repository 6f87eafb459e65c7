// Package gff defines GFF3 record types and a streaming writer, following
// the version 3.2.1 column layout.
package gff

import (
	"bufio"
	"fmt"
	"io"
)

// Feature is a GFF3 feature type, restricted to the ones this pipeline
// emits.
type Feature uint8

const (
	FeatureGene Feature = iota
	FeatureMRNA
	FeatureExon
	FeatureFivePrimeUTR
	FeatureCDS
	FeatureThreePrimeUTR
)

func (f Feature) String() string {
	switch f {
	case FeatureGene:
		return "gene"
	case FeatureMRNA:
		return "mRNA"
	case FeatureExon:
		return "exon"
	case FeatureFivePrimeUTR:
		return "five_prime_UTR"
	case FeatureCDS:
		return "CDS"
	case FeatureThreePrimeUTR:
		return "three_prime_UTR"
	default:
		return "?feature"
	}
}

// Strand is a GFF3 feature's strand column.
type Strand uint8

const (
	Forward Strand = iota
	Reverse
)

// FromReverse returns Reverse when rev is true, Forward otherwise.
func FromReverse(rev bool) Strand {
	if rev {
		return Reverse
	}
	return Forward
}

// Other returns the opposite strand.
func (s Strand) Other() Strand {
	if s == Forward {
		return Reverse
	}
	return Forward
}

func (s Strand) String() string {
	if s == Reverse {
		return "-"
	}
	return "+"
}

// Phase is a CDS feature's reading-frame phase: the number of bases at the
// start of this feature that must be removed to reach its first codon
// boundary.
type Phase uint8

const (
	Phase0 Phase = iota
	Phase1
	Phase2
)

// PhaseFromOffset converts a "bases already consumed by this CDS run"
// offset into a GFF phase, following the "phase counts bases left to
// read" convention: offset%3 of {0,1,2} maps to phase {0,2,1}.
func PhaseFromOffset(offset uint64) Phase {
	switch offset % 3 {
	case 0:
		return Phase0
	case 1:
		return Phase2
	case 2:
		return Phase1
	default:
		panic("gff: offset%3 produced an impossible remainder")
	}
}

func (p Phase) String() string {
	switch p {
	case Phase0:
		return "0"
	case Phase1:
		return "1"
	case Phase2:
		return "2"
	default:
		return "?phase"
	}
}

// Record is one GFF3 line. Score/Strand/Phase are pointers so their
// "." (absent) rendering is distinguishable from a real zero value.
type Record struct {
	Sequence   string
	Source     string
	Feature    Feature
	Start, End uint64 // 1-based inclusive
	Score      *float32
	Strand     *Strand
	Phase      *Phase
	Attributes string
}

// SwapStrand flips a forward-generated record onto the reverse strand of
// a sequence of the given length: new_end = 1+len-start, new_start =
// 1+len-end, and the strand (if set) is flipped. Must run after every
// record for a sequence has been generated as if it were forward strand.
func (r *Record) SwapStrand(seqLen uint64) {
	start, end := r.Start, r.End
	r.End = 1 + seqLen - start
	r.Start = 1 + seqLen - end
	if r.Strand != nil {
		other := r.Strand.Other()
		r.Strand = &other
	}
}

const Version = "3.2.1"

// Writer emits GFF3 text to an underlying io.Writer.
type Writer struct {
	w *bufio.Writer
}

// NewWriter wraps w in a buffered GFF3 writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: bufio.NewWriter(w)}
}

// WriteGlobalHeader writes the file-level "##gff-version" pragma plus the
// optional species name and model checksum comment.
func (gw *Writer) WriteGlobalHeader(species string, modelMD5Sum string) error {
	if _, err := fmt.Fprintf(gw.w, "##gff-version %s\n", Version); err != nil {
		return err
	}
	if species != "" {
		if _, err := fmt.Fprintf(gw.w, "##species %s\n", species); err != nil {
			return err
		}
	}
	if modelMD5Sum != "" {
		if _, err := fmt.Fprintf(gw.w, "# %s\n", modelMD5Sum); err != nil {
			return err
		}
	}
	return nil
}

// WriteRegionHeader writes the "##sequence-region" pragma for one
// sequence; sequence coordinates always start at 1.
func (gw *Writer) WriteRegionHeader(sequenceName string, sequenceLength uint64) error {
	_, err := fmt.Fprintf(gw.w, "##sequence-region %s 1 %d\n", sequenceName, sequenceLength)
	return err
}

// WriteRecord writes one GFF3 data line.
func (gw *Writer) WriteRecord(r Record) error {
	score, strand, phase := ".", ".", "."
	if r.Score != nil {
		score = fmt.Sprintf("%v", *r.Score)
	}
	if r.Strand != nil {
		strand = r.Strand.String()
	}
	if r.Phase != nil {
		phase = r.Phase.String()
	}
	_, err := fmt.Fprintf(gw.w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\t%s\t%s\n",
		r.Sequence, r.Source, r.Feature, r.Start, r.End, score, strand, phase, r.Attributes)
	return err
}

// WriteRecords writes each record in order.
func (gw *Writer) WriteRecords(recs []Record) error {
	for _, r := range recs {
		if err := gw.WriteRecord(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying buffered writer.
func (gw *Writer) Flush() error { return gw.w.Flush() }
