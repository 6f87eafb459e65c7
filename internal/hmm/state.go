// Package hmm implements the 73-state prediction HMM: the state graph,
// per-state emission penalties, transition penalties, and the best-first
// Dijkstra-style decoder that turns a window of per-base penalties into a
// labelled segmentation.
package hmm

import "github.com/TonyBolger/HelixerPost/internal/hmmconfig"

// Primary is the biological role a state plays, independent of whether it
// currently sits inside an intron.
type Primary uint8

const (
	Intergenic Primary = iota
	UTR5
	Start0
	Start1
	Start2
	Coding0
	Coding1
	Coding2
	Stop0T
	Stop1TA
	Stop1TG
	Stop2
	UTR3
	numPrimaries
)

func (p Primary) String() string {
	switch p {
	case Intergenic:
		return "Intergenic"
	case UTR5:
		return "UTR5"
	case Start0:
		return "Start0"
	case Start1:
		return "Start1"
	case Start2:
		return "Start2"
	case Coding0:
		return "Coding0"
	case Coding1:
		return "Coding1"
	case Coding2:
		return "Coding2"
	case Stop0T:
		return "Stop0T"
	case Stop1TA:
		return "Stop1TA"
	case Stop1TG:
		return "Stop1TG"
	case Stop2:
		return "Stop2"
	case UTR3:
		return "UTR3"
	default:
		return "?Primary"
	}
}

// IntronKind distinguishes "not in an intron" from the donor-splice-site
// gadget and intron-body state of each of the three recognised splice
// classes.
type IntronKind uint8

const (
	NoIntron IntronKind = iota
	U2GTAGDSS
	U2GTAG
	U2GCAGDSS
	U2GCAG
	U12ATACDSS
	U12ATAC
	numIntronKinds
)

func (k IntronKind) String() string {
	switch k {
	case NoIntron:
		return "None"
	case U2GTAGDSS:
		return "U2-GT-AG-DSS"
	case U2GTAG:
		return "U2-GT-AG"
	case U2GCAGDSS:
		return "U2-GC-AG-DSS"
	case U2GCAG:
		return "U2-GC-AG"
	case U12ATACDSS:
		return "U12-AT-AC-DSS"
	case U12ATAC:
		return "U12-AT-AC"
	default:
		return "?IntronKind"
	}
}

// IsDSS reports whether this intron kind is an atomic donor-splice-site
// entry gadget (consuming its full motif length in one step).
func (k IntronKind) IsDSS() bool {
	return k == U2GTAGDSS || k == U2GCAGDSS || k == U12ATACDSS
}

// intronCapable lists the 10 primaries that may host a non-None intron
// kind. Start2 and Stop2 complete their codon in one base and so cannot
// host an intron; Intergenic never does either.
var intronCapable = map[Primary]bool{
	UTR5: true, Start0: true, Start1: true,
	Coding0: true, Coding1: true, Coding2: true,
	Stop0T: true, Stop1TA: true, Stop1TG: true,
	UTR3: true,
}

// State is one of the 73 graph nodes: a primary role crossed with an
// intron kind, restricted to the valid combinations.
type State struct {
	Primary Primary
	Intron  IntronKind
}

// NumStates is the total valid (primary, intron) combination count: the
// 3 intron-incapable primaries (each with only NoIntron) plus the 10
// intron-capable primaries (each with all 7 kinds) = 3 + 70 = 73.
const NumStates = 73

var (
	ordinalOf   = map[State]int{}
	stateOfOrd  [NumStates]State
)

func init() {
	ord := 0
	for p := Primary(0); p < numPrimaries; p++ {
		if intronCapable[p] {
			for k := IntronKind(0); k < numIntronKinds; k++ {
				s := State{p, k}
				ordinalOf[s] = ord
				stateOfOrd[ord] = s
				ord++
			}
		} else {
			s := State{p, NoIntron}
			ordinalOf[s] = ord
			stateOfOrd[ord] = s
			ord++
		}
	}
	if ord != NumStates {
		panic("hmm: state ordinal table did not produce 73 states")
	}
}

// Ordinal returns the dense array index for a state, usable directly as a
// dominance-table row offset.
func (s State) Ordinal() int { return ordinalOf[s] }

// StateByOrdinal is the inverse of Ordinal.
func StateByOrdinal(ord int) State { return stateOfOrd[ord] }

// AnnotationLabel is the coarse biological label a region of the trace is
// tagged with; several HMM states collapse to the same label.
type AnnotationLabel uint8

const (
	LabelIntergenic AnnotationLabel = iota
	LabelUTR5
	LabelCoding
	LabelIntron
	LabelUTR3
)

func (l AnnotationLabel) String() string {
	switch l {
	case LabelIntergenic:
		return "Intergenic"
	case LabelUTR5:
		return "UTR5"
	case LabelCoding:
		return "Coding"
	case LabelIntron:
		return "Intron"
	case LabelUTR3:
		return "UTR3"
	default:
		return "?Label"
	}
}

// Label returns the annotation label for a state: any non-None intron
// kind is always Intron regardless of primary; otherwise the primary
// determines the label.
func (s State) Label() AnnotationLabel {
	if s.Intron != NoIntron {
		return LabelIntron
	}
	switch s.Primary {
	case Intergenic:
		return LabelIntergenic
	case UTR5:
		return LabelUTR5
	case UTR3:
		return LabelUTR3
	default:
		return LabelCoding
	}
}

// BaseCount is the number of bases a single step through this state
// consumes: 1 for ordinary states, the donor motif length for DSS states.
func (s State) BaseCount() int {
	switch s.Intron {
	case U2GTAGDSS, U2GCAGDSS:
		return hmmconfig.DSSLenU2
	case U12ATACDSS:
		return hmmconfig.DSSLenU12
	default:
		return 1
	}
}
