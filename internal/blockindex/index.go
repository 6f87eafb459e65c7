// Package blockindex builds the species/sequence/block index over a
// genome's flattened (species, sequence, block-start, block-end) tuples,
// validating fwd/rev block contiguity per sequence along the way.
package blockindex

import (
	"sort"

	"github.com/TonyBolger/HelixerPost/internal/herr"
)

type SpeciesID int
type SequenceID int
type BlockID int

// Species is one distinct species encountered while building the index.
type Species struct {
	Name string
	ID   SpeciesID
}

// Sequence is one distinct (species, sequence-name) pair; Length is filled
// in once every block belonging to it has been accounted for.
type Sequence struct {
	Name      string
	ID        SequenceID
	SpeciesID SpeciesID
	Length    uint64
}

// blockOffset is a block's half-open [Start, End) position range on its
// sequence's forward strand, as recorded in the genome's raw block table.
// A fwd-strand block has Start<End; a rev-strand block is recorded
// End<Start (it was produced by scanning that sequence backwards), and a
// zero-length block (Start==End) is a build error.
type blockOffset struct {
	Start, End uint64
}

// Index is the built species/sequence/block lookup table.
type Index struct {
	species        []Species
	speciesNameIdx map[string]SpeciesID

	sequences        []Sequence
	sequenceNameIdx   []map[string]SequenceID // by SpeciesID
	speciesSequences  [][]SequenceID          // by SpeciesID

	blockOffsets []blockOffset

	sequenceBlocksFwd [][]BlockID // by SequenceID
	sequenceBlocksRev [][]BlockID // by SequenceID
}

// Build constructs an Index from the genome's parallel (species-name,
// sequence-name, (start,end)) slices, which must all be the same length
// and grouped contiguously by species then by sequence (as they are read
// off disk). Returns a herr.IndexError on any structural problem: a
// duplicate block boundary, a zero-length block, a forward/reverse block
// count mismatch, a contiguity gap, or block ranges not meeting at zero.
func Build(allSpecies, allSequences []string, allStartEnds [][2]uint64) (*Index, error) {
	if len(allSpecies) != len(allSequences) || len(allSpecies) != len(allStartEnds) {
		return nil, herr.NewIndexError("species/sequence/block-range slice length mismatch: %d/%d/%d",
			len(allSpecies), len(allSequences), len(allStartEnds))
	}

	idx := &Index{speciesNameIdx: map[string]SpeciesID{}}

	var fwdTrees, revTrees []map[uint64]BlockID
	var lastSpecies, lastSequence string
	haveSpecies, haveSequence := false, false
	var speciesID SpeciesID
	var sequenceID SequenceID

	for i := range allSpecies {
		speciesName := allSpecies[i]
		sequenceName := allSequences[i]
		start, end := allStartEnds[i][0], allStartEnds[i][1]

		if !haveSpecies || lastSpecies != speciesName {
			speciesID = SpeciesID(len(idx.species))
			idx.species = append(idx.species, Species{Name: speciesName, ID: speciesID})
			idx.speciesNameIdx[speciesName] = speciesID

			idx.sequenceNameIdx = append(idx.sequenceNameIdx, map[string]SequenceID{})
			idx.speciesSequences = append(idx.speciesSequences, nil)

			lastSpecies = speciesName
			haveSpecies = true
			haveSequence = false
		}

		if !haveSequence || lastSequence != sequenceName {
			sequenceID = SequenceID(len(idx.sequences))
			idx.sequences = append(idx.sequences, Sequence{Name: sequenceName, ID: sequenceID, SpeciesID: speciesID})

			idx.sequenceNameIdx[speciesID][sequenceName] = sequenceID
			idx.speciesSequences[speciesID] = append(idx.speciesSequences[speciesID], sequenceID)

			fwdTrees = append(fwdTrees, map[uint64]BlockID{})
			revTrees = append(revTrees, map[uint64]BlockID{})

			lastSequence = sequenceName
			haveSequence = true
		}

		blockID := BlockID(len(idx.blockOffsets))
		idx.blockOffsets = append(idx.blockOffsets, blockOffset{Start: start, End: end})

		switch {
		case start < end:
			if prev, dup := fwdTrees[sequenceID][start]; dup {
				return nil, herr.NewIndexError("block start %d at index %d already occurred at index %d", start, blockID, prev)
			}
			fwdTrees[sequenceID][start] = blockID
		case start > end:
			if prev, dup := revTrees[sequenceID][end]; dup {
				return nil, herr.NewIndexError("block end %d at index %d already occurred at index %d", end, blockID, prev)
			}
			revTrees[sequenceID][end] = blockID
		default:
			return nil, herr.NewIndexError("zero-length block at index %d", blockID)
		}
	}

	for seqIdx := range idx.sequences {
		fwd := sortedBlockIDs(fwdTrees[seqIdx], false)
		rev := sortedBlockIDs(revTrees[seqIdx], true)

		if len(fwd) != len(rev) {
			return nil, herr.NewIndexError("sequence %q: forward/reverse block count mismatch (%d vs %d); perhaps using filtered data",
				idx.sequences[seqIdx].Name, len(fwd), len(rev))
		}

		fwdStart, fwdEnd, err := checkContiguity(fwd, idx.blockOffsets)
		if err != nil {
			return nil, err
		}
		revStart, revEnd, err := checkContiguity(rev, idx.blockOffsets)
		if err != nil {
			return nil, err
		}

		if fwdStart != 0 {
			return nil, herr.NewIndexError("sequence %q: forward blocks do not start at offset zero; perhaps using filtered data", idx.sequences[seqIdx].Name)
		}
		if revEnd != 0 {
			return nil, herr.NewIndexError("sequence %q: reverse blocks do not end at offset zero; perhaps using filtered data", idx.sequences[seqIdx].Name)
		}
		if fwdEnd != revStart {
			return nil, herr.NewIndexError("sequence %q: forward/reverse max offset mismatch (%d vs %d); perhaps using filtered data",
				idx.sequences[seqIdx].Name, fwdEnd, revStart)
		}

		idx.sequenceBlocksFwd = append(idx.sequenceBlocksFwd, fwd)
		idx.sequenceBlocksRev = append(idx.sequenceBlocksRev, rev)
		idx.sequences[seqIdx].Length = fwdEnd
	}

	return idx, nil
}

// sortedBlockIDs flattens a start/end-keyed block map into ascending
// (or, if rev, descending) BlockID order by key.
func sortedBlockIDs(tree map[uint64]BlockID, rev bool) []BlockID {
	keys := make([]uint64, 0, len(tree))
	for k := range tree {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if rev {
			return keys[i] > keys[j]
		}
		return keys[i] < keys[j]
	})
	out := make([]BlockID, len(keys))
	for i, k := range keys {
		out[i] = tree[k]
	}
	return out
}

// checkContiguity verifies each block in order picks up exactly where the
// previous one left off, and returns the overall (start, end) span. An
// empty block list spans (0, 0).
func checkContiguity(blockIDs []BlockID, offsets []blockOffset) (start, end uint64, err error) {
	var prevEnd uint64
	havePrev := false
	for _, id := range blockIDs {
		o := offsets[id]
		if havePrev && o.Start != prevEnd {
			return 0, 0, herr.NewIndexError("gap between blocks %d and %d at index %d", prevEnd, o.Start, id)
		}
		prevEnd = o.End
		havePrev = true
	}
	if len(blockIDs) == 0 {
		return 0, 0, nil
	}
	return offsets[blockIDs[0]].Start, offsets[blockIDs[len(blockIDs)-1]].End, nil
}

func (idx *Index) AllSpecies() []Species { return idx.species }

func (idx *Index) SpeciesByName(name string) (Species, bool) {
	id, ok := idx.speciesNameIdx[name]
	if !ok {
		return Species{}, false
	}
	return idx.species[id], true
}

func (idx *Index) AllSequences() []Sequence { return idx.sequences }

func (idx *Index) SequenceByID(id SequenceID) Sequence { return idx.sequences[id] }

func (idx *Index) SequencesForSpecies(id SpeciesID) []SequenceID { return idx.speciesSequences[id] }

func (idx *Index) SequenceByName(species SpeciesID, name string) (Sequence, bool) {
	id, ok := idx.sequenceNameIdx[species][name]
	if !ok {
		return Sequence{}, false
	}
	return idx.sequences[id], true
}

// BlockRange returns the half-open [start, end) range of a block as it
// sits on its sequence's forward strand.
func (idx *Index) BlockRange(id BlockID) (start, end uint64) {
	o := idx.blockOffsets[id]
	return o.Start, o.End
}

// BlocksForSequence returns a sequence's blocks in forward- and
// reverse-strand scan order.
func (idx *Index) BlocksForSequence(id SequenceID) (fwd, rev []BlockID) {
	return idx.sequenceBlocksFwd[id], idx.sequenceBlocksRev[id]
}
