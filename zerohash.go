package talon

import "github.com/gordian-engine/talon/thash"

// zeroTable returns the depth+1 digests of entirely empty subtrees,
// one per level: index 0 is the all-zero leaf digest,
// and index i is the root of an empty subtree of height i,
// i.e. Compress applied to two copies of the entry below it.
//
// The table doubles as the empty-tree root chain
// (the root of an empty tree is the entry at index depth)
// and as padding material when the populated region
// is shallower than the configured depth.
// It is computed once per tree instance and never mutated.
func zeroTable(depth int, h thash.Hasher) []thash.Digest {
	zeros := make([]thash.Digest, depth+1)

	// zeros[0] is the zero value of Digest: the 32-zero-byte seed.
	for i := 1; i <= depth; i++ {
		zeros[i] = h.Compress(zeros[i-1], zeros[i-1])
	}

	return zeros
}
