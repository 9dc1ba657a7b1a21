package talon_test

import (
	"testing"

	"github.com/gordian-engine/talon"
	"github.com/gordian-engine/talon/internal/ttest"
	"github.com/gordian-engine/talon/thash"
	"github.com/gordian-engine/talon/thash/tsha256"
	"github.com/stretchr/testify/require"
)

func TestVerifyProof_roundTrip(t *testing.T) {
	t.Parallel()

	h := tsha256.Hasher{}

	for _, tc := range []struct {
		depth, leaves int
	}{
		{depth: 1, leaves: 1},
		{depth: 1, leaves: 2},
		{depth: 2, leaves: 3},
		{depth: 2, leaves: 4},
		{depth: 5, leaves: 1},
		{depth: 5, leaves: 20},
		{depth: 5, leaves: 32},
		{depth: 32, leaves: 6},
	} {
		tree, err := talon.NewTree(tc.depth, h)
		require.NoError(t, err)

		require.NoError(t, tree.LoadLeaves(
			ttest.RandomLeavesForTest(t, tc.leaves, 24),
		))
		tree.Rebuild()

		for idx := range tc.leaves {
			proof, err := tree.GenerateProof(idx)
			require.NoError(t, err)
			require.Len(t, proof, tc.depth+1,
				"depth %d, %d leaves, index %d", tc.depth, tc.leaves, idx)

			require.Equal(t, tree.Root(), talon.VerifyProof(h, idx, proof),
				"depth %d, %d leaves, index %d", tc.depth, tc.leaves, idx)
		}
	}
}

func TestVerifyProof_leafHashFirst(t *testing.T) {
	t.Parallel()

	h := tsha256.Hasher{}

	tree, err := talon.NewTree(3, h)
	require.NoError(t, err)

	require.NoError(t, tree.LoadLeaves([][]byte{
		[]byte("zero"),
		[]byte("one"),
		[]byte("two"),
	}))
	tree.Rebuild()

	proof, err := tree.GenerateProof(2)
	require.NoError(t, err)

	// The first entry is the target leaf's own digest,
	// and the second is its immediate sibling (a zero pad here).
	require.Equal(t, h.Leaf([]byte("two")), proof[0])
	require.Equal(t, thash.Digest{}, proof[1])
}

func TestVerifyProof_tampering(t *testing.T) {
	t.Parallel()

	h := tsha256.Hasher{}
	rng := ttest.RandForTest(t)

	tree, err := talon.NewTree(5, h)
	require.NoError(t, err)

	require.NoError(t, tree.LoadLeaves(ttest.RandomLeavesForTest(t, 7, 48)))
	tree.Rebuild()
	root := tree.Root()

	for range 64 {
		idx := rng.IntN(7)

		proof, err := tree.GenerateProof(idx)
		require.NoError(t, err)

		entry := rng.IntN(len(proof))
		bit := rng.IntN(8 * thash.DigestSize)
		proof[entry][bit/8] ^= 1 << (bit % 8)

		require.NotEqual(t, root, talon.VerifyProof(h, idx, proof),
			"flipped bit %d of entry %d for index %d", bit, entry, idx)
	}
}

func TestVerifyProof_empty(t *testing.T) {
	t.Parallel()

	require.Equal(t, thash.Digest{}, talon.VerifyProof(tsha256.Hasher{}, 0, nil))
}

func TestGenerateProof_outOfRange(t *testing.T) {
	t.Parallel()

	tree, err := talon.NewTree(2, tsha256.Hasher{})
	require.NoError(t, err)

	require.NoError(t, tree.LoadLeaves(ttest.RandomLeavesForTest(t, 3, 8)))
	tree.Rebuild()

	for _, idx := range []int{-1, 3, 4} {
		_, err := tree.GenerateProof(idx)
		require.ErrorAs(t, err, &talon.LeafRangeError{}, "index %d", idx)
	}
}

func TestGenerateProof_paddedSiblingsAreZeroChain(t *testing.T) {
	t.Parallel()

	h := tsha256.Hasher{}

	tree, err := talon.NewTree(4, h)
	require.NoError(t, err)

	require.NoError(t, tree.LoadLeaves([][]byte{
		[]byte("only"),
		[]byte("pair"),
	}))
	tree.Rebuild()

	proof, err := tree.GenerateProof(0)
	require.NoError(t, err)
	require.Len(t, proof, 5)

	// Above the two populated leaves,
	// every sibling is the empty subtree at that level.
	z := thash.Digest{}
	z1 := h.Compress(z, z)
	z2 := h.Compress(z1, z1)
	z3 := h.Compress(z2, z2)

	require.Equal(t, h.Leaf([]byte("pair")), proof[1])
	require.Equal(t, z1, proof[2])
	require.Equal(t, z2, proof[3])
	require.Equal(t, z3, proof[4])
}
