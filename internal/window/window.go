// Package window implements the sliding-window genic-region scanner: it
// turns a per-base stream of class/phase/base probabilities into disjoint,
// monotonically increasing spans of likely genic sequence.
package window

import "github.com/TonyBolger/HelixerPost/internal/penalty"

// Scale is the fixed-point multiplier applied to genic mass before it is
// accumulated as an integer running sum, avoiding float drift over long
// windows.
const Scale = 1_000_000.0

// Entry is one base's worth of model output, as consumed by the scanner.
type Entry struct {
	Base  penalty.BaseProb
	Class penalty.ClassProb
	Phase penalty.PhaseProb
}

// Stream is a pull iterator over a sequence-strand's per-base predictions.
// Returns ok=false once exhausted.
type Stream interface {
	Next() (Entry, bool)
}

// Params holds the scanner's tunables.
type Params struct {
	WindowSize    int
	EdgeThreshold float64
	PeakThreshold float64
}

// Default returns the reference scanner configuration.
func Default() Params {
	return Params{WindowSize: 9, EdgeThreshold: 0.5, PeakThreshold: 0.5}
}

// ring is a fixed-capacity FIFO of Entry values, backing the sliding window.
type ring struct {
	buf   []Entry
	head  int
	count int
}

func newRing(capacity int) *ring {
	return &ring{buf: make([]Entry, capacity)}
}

func (r *ring) len() int { return r.count }

func (r *ring) pushBack(e Entry) {
	idx := (r.head + r.count) % len(r.buf)
	r.buf[idx] = e
	r.count++
}

func (r *ring) popFront() Entry {
	e := r.buf[r.head]
	r.head = (r.head + 1) % len(r.buf)
	r.count--
	return e
}

// each calls fn for every buffered entry, front to back.
func (r *ring) each(fn func(Entry)) {
	for i := 0; i < r.count; i++ {
		fn(r.buf[(r.head+i)%len(r.buf)])
	}
}

// slidingWindow maintains a fixed-size FIFO plus a running integer sum of
// genic mass across the buffered entries.
type slidingWindow struct {
	stream   Stream
	size     int
	total    uint64
	window   *ring
	position int
	exhausted bool
}

func newSlidingWindow(stream Stream, size int) *slidingWindow {
	w := &slidingWindow{stream: stream, size: size, window: newRing(size)}
	w.fill()
	return w
}

func (w *slidingWindow) fill() {
	for w.window.len() < w.size {
		if !w.push() {
			return
		}
	}
}

func (w *slidingWindow) push() bool {
	e, ok := w.stream.Next()
	if !ok {
		w.exhausted = true
		return false
	}
	w.total += uint64(e.Class.Genic() * Scale)
	w.window.pushBack(e)
	return true
}

func (w *slidingWindow) pop() Entry {
	e := w.window.popFront()
	w.total -= uint64(e.Class.Genic() * Scale)
	w.position++
	return e
}

func (w *slidingWindow) full() bool { return w.window.len() == w.size }

// Span is one emitted genic region: the buffered entries, the running
// total at each accumulated position, the 0-based start position, and the
// peak running total observed (normalized back to a [0,1] probability).
type Span struct {
	Entries    []Entry
	Totals     []uint64
	StartPos   int
	PeakMass   float64
}

func (s Span) Len() int { return len(s.Entries) }

// Scanner implements the threshold scan over a Stream, yielding Spans
// whose peak genic mass clears PeakThreshold.
type Scanner struct {
	w             *slidingWindow
	edgeThreshold uint64
	peakThreshold uint64
	peakScale     float64
}

// New constructs a Scanner; returns ok=false if the stream cannot even
// fill one window (shorter-than-window sequences produce zero spans).
func New(stream Stream, p Params) (*Scanner, bool) {
	w := newSlidingWindow(stream, p.WindowSize)
	if !w.full() {
		return nil, false
	}
	edge := uint64(p.EdgeThreshold * Scale * float64(p.WindowSize))
	peak := uint64(p.PeakThreshold * Scale * float64(p.WindowSize))
	return &Scanner{w: w, edgeThreshold: edge, peakThreshold: peak, peakScale: 1.0 / (Scale * float64(p.WindowSize))}, true
}

// scanForStart slides the window forward, discarding sub-threshold bases,
// until the window total clears the edge threshold or the stream is
// exhausted mid-window.
func (s *Scanner) scanForStart() bool {
	for s.w.full() && s.w.total < s.edgeThreshold {
		s.w.pop()
		s.w.push()
	}
	return s.w.full()
}

// accumulateAboveThreshold must only be called once scanForStart has
// confirmed the window is past threshold; it is a programmer error to call
// it otherwise.
func (s *Scanner) accumulateAboveThreshold() Span {
	if !s.w.full() || s.w.total < s.edgeThreshold {
		panic("window: accumulateAboveThreshold called with window not past threshold")
	}

	var accum []Entry
	var totals []uint64
	position := s.w.position
	var peak uint64

	for s.w.full() && s.w.total >= s.edgeThreshold {
		total := s.w.total
		totals = append(totals, total)
		if total > peak {
			peak = total
		}
		accum = append(accum, s.w.pop())
		s.w.push()
	}

	s.w.window.each(func(e Entry) { accum = append(accum, e) })

	if s.w.full() {
		// The window is still full after the loop above only when the
		// very last pushed base is what crossed below threshold; its
		// trailing copy must be trimmed back off accum.
		accum = accum[:len(accum)-1]
	}

	return Span{Entries: accum, Totals: totals, StartPos: position, PeakMass: float64(peak)}
}

// Next returns the next peak-qualifying span, or ok=false once the
// underlying stream is exhausted.
func (s *Scanner) Next() (Span, bool) {
	for {
		if !s.scanForStart() {
			return Span{}, false
		}
		span := s.accumulateAboveThreshold()
		if uint64(span.PeakMass) >= s.peakThreshold {
			span.PeakMass = span.PeakMass * s.peakScale
			return span, true
		}
	}
}
