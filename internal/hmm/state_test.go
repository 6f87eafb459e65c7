package hmm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateOrdinalsAreDenseAndRoundTrip(t *testing.T) {
	seen := make(map[int]State)
	for p := Primary(0); p < numPrimaries; p++ {
		kinds := []IntronKind{NoIntron}
		if intronCapable[p] {
			kinds = []IntronKind{NoIntron, U2GTAGDSS, U2GTAG, U2GCAGDSS, U2GCAG, U12ATACDSS, U12ATAC}
		}
		for _, k := range kinds {
			s := State{p, k}
			ord := s.Ordinal()
			require.GreaterOrEqual(t, ord, 0)
			require.Less(t, ord, NumStates)
			if prev, ok := seen[ord]; ok {
				t.Fatalf("ordinal %d assigned to both %v and %v", ord, prev, s)
			}
			seen[ord] = s
			assert.Equal(t, s, StateByOrdinal(ord))
		}
	}
	assert.Len(t, seen, NumStates)
}

func TestIntronIncapablePrimariesRejectNonNoneKinds(t *testing.T) {
	for _, p := range []Primary{Start2, Stop2, Intergenic} {
		assert.False(t, intronCapable[p], "%v should not be intron-capable", p)
	}
}

func TestLabelCollapsesIntronRegardlessOfPrimary(t *testing.T) {
	assert.Equal(t, LabelIntron, State{Coding1, U2GTAG}.Label())
	assert.Equal(t, LabelIntron, State{UTR5, U12ATACDSS}.Label())
}

func TestLabelMapsPrimariesToCoarseRoles(t *testing.T) {
	assert.Equal(t, LabelIntergenic, State{Intergenic, NoIntron}.Label())
	assert.Equal(t, LabelUTR5, State{UTR5, NoIntron}.Label())
	assert.Equal(t, LabelUTR3, State{UTR3, NoIntron}.Label())
	for _, p := range []Primary{Start0, Start1, Start2, Coding0, Coding1, Coding2, Stop0T, Stop1TA, Stop1TG, Stop2} {
		assert.Equal(t, LabelCoding, State{p, NoIntron}.Label(), "%v", p)
	}
}

func TestBaseCountMatchesDSSMotifLength(t *testing.T) {
	assert.Equal(t, 1, State{Coding0, NoIntron}.BaseCount())
	assert.Equal(t, 49, State{Coding0, U2GTAGDSS}.BaseCount())
	assert.Equal(t, 49, State{UTR5, U2GCAGDSS}.BaseCount())
	assert.Equal(t, 29, State{Stop0T, U12ATACDSS}.BaseCount())
	assert.Equal(t, 1, State{Coding1, U2GTAG}.BaseCount())
}
