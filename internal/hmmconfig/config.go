// Package hmmconfig collects the tunable tunable weights and gates for the
// HMM state graph and decoder, separated from package hmm so the CLI's
// config subcommand can load/save them without importing the solver.
package hmmconfig

// Config holds every documented HMM tunable. Reference values come from
// spec's tunable-constants table; Default returns them.
type Config struct {
	StartWeight float64
	StopWeight  float64

	DonorWeight    float64
	AcceptorWeight float64

	FixedPenaltyU2GTAG  float64
	FixedPenaltyU2GCAG  float64
	FixedPenaltyU12ATAC float64

	// CanSplice* gate whether an intron of any recognised class may open
	// in the named region. The five region gates (UTR5, Start, Coding,
	// Stop, UTR3) gate ordinary intron entry within that region. The four
	// boundary-named gates additionally let an intron accepted at a
	// region boundary skip straight into the next region instead of
	// returning to its own: UTR5Start and CodingStop gate an extra
	// acceptor branch out of a UTR5/Coding intron into the next region's
	// first state, while StartCoding and StopUTR3 gate intron entry at
	// the boundary state itself (the first base already committed to the
	// next region). See transitions.go and DESIGN.md.
	CanSpliceUTR5       bool
	CanSpliceUTR5Start  bool
	CanSpliceStart      bool
	CanSpliceStartCoding bool
	CanSpliceCoding     bool
	CanSpliceCodingStop bool
	CanSpliceStop       bool
	CanSpliceStopUTR3   bool
	CanSpliceUTR3       bool

	// ForbidInternalStop switches the Open Question behaviour from "lower
	// cost, not forbidden" (false, the reference default) to strict: a
	// coding triplet that reads as a stop codon can never be treated as
	// an ordinary codon.
	ForbidInternalStop bool

	PenaltyScale float64
	MaxEvals     uint64
}

// Default returns the reference HMM configuration.
func Default() Config {
	return Config{
		StartWeight:         1000,
		StopWeight:          1000,
		DonorWeight:         1.0,
		AcceptorWeight:      1.0,
		FixedPenaltyU2GTAG:  0,
		FixedPenaltyU2GCAG:  0,
		FixedPenaltyU12ATAC: 0,
		CanSpliceUTR5:        true,
		CanSpliceUTR5Start:   true,
		CanSpliceStart:       true,
		CanSpliceStartCoding: true,
		CanSpliceCoding:      true,
		CanSpliceCodingStop:  true,
		CanSpliceStop:        true,
		CanSpliceStopUTR3:    true,
		CanSpliceUTR3:        true,
		ForbidInternalStop:   false,
		PenaltyScale:         1e6,
		MaxEvals:             1e8,
	}
}

// DSS base counts: the donor-splice-site gadget consumes this many bases
// in a single atomic step before the intron body's one-base self-loop
// takes over.
const (
	DSSLenU2  = 49
	DSSLenU12 = 29
)
