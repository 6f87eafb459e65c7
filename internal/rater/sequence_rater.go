package rater

import "github.com/TonyBolger/HelixerPost/internal/hmm"

// SequenceRater reconstructs one sequence-strand's per-base Annotation
// array from the genes an HMM trace produced (or from the window spans a
// too-short/filtered run skipped), defaulting every base to OutsideWindow
// until a region claims it.
type SequenceRater struct {
	annotation []Annotation
}

// NewSequenceRater allocates an all-OutsideWindow annotation track for a
// sequence of the given length.
func NewSequenceRater(seqLength int) *SequenceRater {
	annotation := make([]Annotation, seqLength)
	for i := range annotation {
		annotation[i] = OutsideWindow
	}
	return &SequenceRater{annotation: annotation}
}

// RateRegions stamps one gene's (or one filtered span's) regions into the
// annotation track. startOffset is the window's absolute position in the
// sequence. When filtered is true every base in every region is marked
// Filtered (the HMM solved this window but its genes were all below the
// minimum coding length, or the caller chose not to trust the call).
// Otherwise coding regions are stamped with a phase that cycles
// 0 -> 2 -> 1 -> 0 ... one base at a time, starting fresh at CodingPhase0
// for every call (the cycle persists across a gene's regions, but not
// across separate genes/calls).
func (sr *SequenceRater) RateRegions(startOffset int, regions []hmm.Region, filtered bool) {
	if filtered {
		for _, r := range regions {
			for pos := r.Start + startOffset; pos < r.End+startOffset; pos++ {
				sr.annotation[pos] = Filtered
			}
		}
		return
	}

	codingAnnotation := CodingPhase0
	for _, r := range regions {
		if r.Label != hmm.LabelCoding {
			var a Annotation
			switch r.Label {
			case hmm.LabelIntergenic:
				a = Intergenic
			case hmm.LabelUTR5, hmm.LabelUTR3:
				a = UTR
			case hmm.LabelIntron:
				a = Intron
			}
			for pos := r.Start + startOffset; pos < r.End+startOffset; pos++ {
				sr.annotation[pos] = a
			}
			continue
		}

		for pos := r.Start + startOffset; pos < r.End+startOffset; pos++ {
			sr.annotation[pos] = codingAnnotation
			switch codingAnnotation {
			case CodingPhase0:
				codingAnnotation = CodingPhase2
			case CodingPhase1:
				codingAnnotation = CodingPhase0
			case CodingPhase2:
				codingAnnotation = CodingPhase1
			}
		}
	}
}

// CalculateStats rates the reconstructed annotation track against a
// reference/ML comparison stream and returns the accumulated confusion
// matrices.
func (sr *SequenceRater) CalculateStats(stream ComparisonStream) SequenceRating {
	var rating SequenceRating
	rating.rate(stream, sr.annotation)
	return rating
}
