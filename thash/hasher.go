package thash

// DigestSize is the fixed size, in bytes, of every digest in a tree.
const DigestSize = 32

// Digest is the fixed-size output of a [Hasher].
type Digest [DigestSize]byte

// Hasher is the user-defined hash primitive for a Merkle tree.
// The tree passes raw leaf data to the Leaf method to create a leaf digest,
// and it passes pairs of child digests to the Compress method
// to derive parent digests.
//
// Implementations must be deterministic,
// and they must be stateless or otherwise safe to call concurrently,
// as a single Hasher value may be shared across trees and verifiers.
//
// A production Hasher should domain-separate Leaf and Compress inputs,
// so that a leaf digest cannot be confused with an internal node digest.
// See the tsha256 package for the default implementation.
type Hasher interface {
	Leaf(in []byte) Digest
	Compress(left, right Digest) Digest
}
