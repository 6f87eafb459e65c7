package rater

import "github.com/TonyBolger/HelixerPost/internal/penalty"

// Comparison is one base's reference and ML-predicted class/phase
// distributions, zipped together with the reconstructed HMM-post
// annotation during rating.
type Comparison struct {
	RefClass penalty.ClassProb
	RefPhase penalty.PhaseProb
	MLClass  penalty.ClassProb
	MLPhase  penalty.PhaseProb
}

// ComparisonStream is a pull iterator over one sequence-strand's aligned
// reference/ML predictions, in step with a SequenceRater's annotation
// track.
type ComparisonStream interface {
	Next() (Comparison, bool)
}

// SequenceRating holds the six confusion matrices (reference-vs-ML,
// reference-vs-HMM-post, ML-vs-HMM-post, each for class and phase) plus
// the count of truly-genic reference bases this run lost to being outside
// any scanned window or filtered out as too short.
type SequenceRating struct {
	RefMLClass  ConfusionMatrix
	RefMLPhase  ConfusionMatrix
	RefHPClass  ConfusionMatrix
	RefHPPhase  ConfusionMatrix
	MLHPClass   ConfusionMatrix
	MLHPPhase   ConfusionMatrix
	OutsideWindowCount uint64
	FilteredCount      uint64
}

// Accumulate adds another rating's counts into this one.
func (r *SequenceRating) Accumulate(other SequenceRating) {
	r.RefMLClass.Accumulate(other.RefMLClass)
	r.RefMLPhase.Accumulate(other.RefMLPhase)
	r.RefHPClass.Accumulate(other.RefHPClass)
	r.RefHPPhase.Accumulate(other.RefHPPhase)
	r.MLHPClass.Accumulate(other.MLHPClass)
	r.MLHPPhase.Accumulate(other.MLHPPhase)
	r.OutsideWindowCount += other.OutsideWindowCount
	r.FilteredCount += other.FilteredCount
}

func (r *SequenceRating) rate(stream ComparisonStream, annotation []Annotation) {
	for _, a := range annotation {
		cmp, ok := stream.Next()
		if !ok {
			break
		}

		refClassIdx := classArgmaxIdx(cmp.RefClass)
		refPhaseIdx := phaseArgmaxIdx(cmp.RefPhase)
		mlClassIdx := classArgmaxIdx(cmp.MLClass)
		mlPhaseIdx := phaseArgmaxIdx(cmp.MLPhase)
		hpClassIdx := a.classIdx()
		hpPhaseIdx := a.phaseIdx()

		r.RefMLClass.Increment(refClassIdx, mlClassIdx)
		r.RefMLPhase.Increment(refPhaseIdx, mlPhaseIdx)
		r.RefHPClass.Increment(refClassIdx, hpClassIdx)
		r.RefHPPhase.Increment(refPhaseIdx, hpPhaseIdx)
		r.MLHPClass.Increment(mlClassIdx, hpClassIdx)
		r.MLHPPhase.Increment(mlPhaseIdx, hpPhaseIdx)

		if refClassIdx != 0 {
			switch a {
			case OutsideWindow:
				r.OutsideWindowCount++
			case Filtered:
				r.FilteredCount++
			}
		}
	}
}

// SubgenicPrecisionRecallF1 rolls a class matrix's Coding (2) and Intron
// (3) true/false positives/negatives together: "subgenic" structure
// inside a transcript body.
func (m ConfusionMatrix) SubgenicPrecisionRecallF1() (precision, recall, f1 float64) {
	tp := m.TruePositive(2) + m.TruePositive(3)
	fp := m.FalsePositive(2) + m.FalsePositive(3)
	fn := m.FalseNegative(2) + m.FalseNegative(3)
	return calcPrecisionRecallF1(tp, fp, fn)
}

// GenicPrecisionRecallF1 rolls UTR (1) in on top of the subgenic roll-up:
// anything that is not Intergenic (0).
func (m ConfusionMatrix) GenicPrecisionRecallF1() (precision, recall, f1 float64) {
	tp := m.TruePositive(1) + m.TruePositive(2) + m.TruePositive(3)
	fp := m.FalsePositive(1) + m.FalsePositive(2) + m.FalsePositive(3)
	fn := m.FalseNegative(1) + m.FalseNegative(2) + m.FalseNegative(3)
	return calcPrecisionRecallF1(tp, fp, fn)
}

// CodingPhasePrecisionRecallF1 rolls a phase matrix's three coding phases
// (1,2,3) together, leaving NonCoding (0) out.
func (m ConfusionMatrix) CodingPhasePrecisionRecallF1() (precision, recall, f1 float64) {
	tp := m.TruePositive(1) + m.TruePositive(2) + m.TruePositive(3)
	fp := m.FalsePositive(1) + m.FalsePositive(2) + m.FalsePositive(3)
	fn := m.FalseNegative(1) + m.FalseNegative(2) + m.FalseNegative(3)
	return calcPrecisionRecallF1(tp, fp, fn)
}
