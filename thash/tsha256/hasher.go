package tsha256

import (
	"crypto/sha256"

	"github.com/gordian-engine/talon/thash"
)

// Prefixes written before leaf and node input,
// so a leaf digest can never collide with an internal node digest.
var (
	leafPrefix = []byte("L.")
	nodePrefix = []byte("N.")
)

// Hasher is a [thash.Hasher] backed by SHA-256.
type Hasher struct{}

func (Hasher) Leaf(in []byte) thash.Digest {
	h := sha256.New()
	_, _ = h.Write(leafPrefix)
	_, _ = h.Write(in)

	var d thash.Digest
	h.Sum(d[:0])
	return d
}

func (Hasher) Compress(left, right thash.Digest) thash.Digest {
	h := sha256.New()
	_, _ = h.Write(nodePrefix)
	_, _ = h.Write(left[:])
	_, _ = h.Write(right[:])

	var d thash.Digest
	h.Sum(d[:0])
	return d
}
