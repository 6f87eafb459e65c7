// Package rater reconstructs a per-base annotation label from an HMM
// trace's genes and accumulates reference/ML/HMM-post confusion matrices
// over it.
package rater

// ConfusionMatrix is a 4x4 class/phase confusion matrix: rows are the
// reference (or left-hand) axis, columns the prediction (or right-hand)
// axis.
type ConfusionMatrix struct {
	count [4][4]uint64
}

// Increment records one observation: reference index refIdx, predicted
// index predIdx.
func (m *ConfusionMatrix) Increment(refIdx, predIdx int) {
	m.count[refIdx][predIdx]++
}

// Accumulate adds another matrix's counts into this one.
func (m *ConfusionMatrix) Accumulate(other ConfusionMatrix) {
	for r := 0; r < 4; r++ {
		for p := 0; p < 4; p++ {
			m.count[r][p] += other.count[r][p]
		}
	}
}

// TruePositive returns the diagonal count for idx.
func (m ConfusionMatrix) TruePositive(idx int) uint64 { return m.count[idx][idx] }

// FalsePositive returns the column sum for idx excluding the diagonal.
func (m ConfusionMatrix) FalsePositive(idx int) uint64 {
	var fp uint64
	for r := 0; r < 4; r++ {
		if r == idx {
			continue
		}
		fp += m.count[r][idx]
	}
	return fp
}

// FalseNegative returns the row sum for idx excluding the diagonal.
func (m ConfusionMatrix) FalseNegative(idx int) uint64 {
	var fn uint64
	for p := 0; p < 4; p++ {
		if p == idx {
			continue
		}
		fn += m.count[idx][p]
	}
	return fn
}

// calcPrecisionRecallF1 computes the standard ratios from raw counts;
// returns NaN components when a denominator is zero, same as the
// floating-point division that produces them.
func calcPrecisionRecallF1(tp, fp, fn uint64) (precision, recall, f1 float64) {
	tpf, fpf, fnf := float64(tp), float64(fp), float64(fn)
	precision = tpf / (tpf + fpf)
	recall = tpf / (tpf + fnf)
	f1 = (2 * tpf) / (2*tpf + fpf + fnf)
	return
}

// PrecisionRecallF1 returns (precision, recall, F1) for class/phase idx.
func (m ConfusionMatrix) PrecisionRecallF1(idx int) (precision, recall, f1 float64) {
	return calcPrecisionRecallF1(m.TruePositive(idx), m.FalsePositive(idx), m.FalseNegative(idx))
}
