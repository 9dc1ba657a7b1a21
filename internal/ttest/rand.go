package ttest

import (
	"crypto/sha256"
	"fmt"
	"math/rand/v2"
	"testing"
)

// RandomDataForTest returns a byte slice of size sz
// containing pseudorandom data, derived from a seed based on the test name,
// so that failures reproduce without plumbing seeds around.
func RandomDataForTest(t *testing.T, sz int) []byte {
	// Sha256 happens to be the right size for the chacha8 seed,
	// and this fits well anyway since that means
	// we are not limited by the length of any particular test name.
	seed := sha256.Sum256([]byte(t.Name()))
	chacha := rand.NewChaCha8(seed)

	out := make([]byte, sz)

	if _, err := chacha.Read(out); err != nil {
		panic(err)
	}

	return out
}

// RandomLeavesForTest returns n distinct pseudorandom leaf values
// of size sz each, seeded like [RandomDataForTest].
func RandomLeavesForTest(t *testing.T, n, sz int) [][]byte {
	seed := sha256.Sum256([]byte(t.Name()))
	chacha := rand.NewChaCha8(seed)

	leaves := make([][]byte, n)
	for i := range leaves {
		leaves[i] = make([]byte, sz)
		if _, err := chacha.Read(leaves[i]); err != nil {
			panic(err)
		}
		// Stamp the index so values are distinct even at tiny sizes.
		copy(leaves[i], fmt.Sprintf("%d_", i))
	}

	return leaves
}

// RandForTest returns a pseudorandom source seeded from the test name.
func RandForTest(t *testing.T) *rand.Rand {
	seed := sha256.Sum256([]byte(t.Name()))
	return rand.New(rand.NewChaCha8(seed))
}
