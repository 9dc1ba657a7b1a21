package thashtest

import (
	"testing"

	"github.com/gordian-engine/talon/thash"
	"github.com/stretchr/testify/require"
)

type HasherFactory func() thash.Hasher

// TestHasherCompliance asserts the properties that the tree engine
// assumes about any [thash.Hasher] implementation.
func TestHasherCompliance(t *testing.T, f HasherFactory) {
	t.Run("leaf is deterministic", func(t *testing.T) {
		t.Parallel()

		h := f()

		d1 := h.Leaf([]byte("deterministic_data"))
		d2 := h.Leaf([]byte("deterministic_data"))

		require.Equal(t, d1, d2)
	})

	t.Run("leaf respects input", func(t *testing.T) {
		t.Parallel()

		h := f()

		require.NotEqual(t, h.Leaf([]byte("input_1")), h.Leaf([]byte("input_2")))
	})

	t.Run("compress is deterministic", func(t *testing.T) {
		t.Parallel()

		h := f()

		left := h.Leaf([]byte("left"))
		right := h.Leaf([]byte("right"))

		require.Equal(t, h.Compress(left, right), h.Compress(left, right))
	})

	t.Run("compress respects child order", func(t *testing.T) {
		t.Parallel()

		h := f()

		left := h.Leaf([]byte("left"))
		right := h.Leaf([]byte("right"))

		require.NotEqual(t, h.Compress(left, right), h.Compress(right, left))
	})

	t.Run("leaf and compress are domain separated", func(t *testing.T) {
		t.Parallel()

		h := f()

		// A leaf whose raw value happens to be two concatenated digests
		// must not collide with the compression of those digests.
		left := h.Leaf([]byte("left"))
		right := h.Leaf([]byte("right"))

		concat := make([]byte, 0, 2*thash.DigestSize)
		concat = append(concat, left[:]...)
		concat = append(concat, right[:]...)

		require.NotEqual(t, h.Compress(left, right), h.Leaf(concat))
	})
}
