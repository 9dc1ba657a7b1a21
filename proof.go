package talon

import "github.com/gordian-engine/talon/thash"

// Proof is a compact SPV inclusion proof:
// the target leaf's own digest,
// followed by one sibling digest per level walking upward,
// through the zero-padding levels if the populated region
// is shallower than the configured depth.
// A proof always has exactly Depth()+1 entries.
type Proof []thash.Digest

// GenerateProof returns the compact inclusion proof
// for the leaf at the given index.
//
// GenerateProof returns [ErrStale] if the leaves changed since the
// last rebuild, or a [LeafRangeError] for an unpopulated index.
func (t *Tree) GenerateProof(index int) (Proof, error) {
	pairs, err := t.pathPairs(index)
	if err != nil {
		return nil, err
	}

	proof := make(Proof, 0, len(pairs)+1)
	proof = append(proof, t.levels[0][index])

	// At each level, keep only the child that is not on the path.
	idx := index
	for _, p := range pairs {
		if idx&1 == 0 {
			proof = append(proof, p.Right)
		} else {
			proof = append(proof, p.Left)
		}
		idx >>= 1
	}

	return proof, nil
}

// VerifyProof recomputes the root digest that the given proof
// commits the leaf at index to.
//
// Starting from the claimed leaf digest at proof[0],
// each subsequent entry is folded in as the left or right sibling
// depending on the parity of the index at that level.
//
// VerifyProof is a pure function usable by a party holding only
// the index, the proof, and the hash primitive;
// it never fails on mismatch.
// The caller decides pass or fail by comparing the returned digest
// against a trusted root.
func VerifyProof(h thash.Hasher, index int, proof Proof) thash.Digest {
	if len(proof) == 0 {
		return thash.Digest{}
	}

	acc := proof[0]
	idx := index
	for _, sib := range proof[1:] {
		if idx&1 == 0 {
			acc = h.Compress(acc, sib)
		} else {
			acc = h.Compress(sib, acc)
		}
		idx >>= 1
	}

	return acc
}
