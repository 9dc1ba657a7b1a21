package talon

import (
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/gordian-engine/talon/thash"
)

// ErrAlreadyVerified is returned from [*PartialTree.AddLeaf]
// when the leaf at the given index was already verified
// with the same value.
var ErrAlreadyVerified = errors.New("already verified leaf at given index")

// ErrIncorrectLeafData is returned from [*PartialTree.AddLeaf]
// when the leaf value does not match the digest the proof claims,
// or does not match a previously verified value at the same index.
var ErrIncorrectLeafData = errors.New("leaf data did not match expected digest")

// ErrRootMismatch is returned from [*PartialTree.AddLeaf]
// when the proof folds to a digest other than the trusted root.
var ErrRootMismatch = errors.New("proof does not recompute to trusted root")

// ErrProofLength is returned from [*PartialTree.AddLeaf]
// when the proof does not have exactly depth+1 entries.
var ErrProofLength = errors.New("proof length does not match tree depth")

// PartialTreeConfig contains all the details for [NewPartialTree].
type PartialTreeConfig struct {
	// Shape of the committed tree.
	Depth     int
	LeafCount int

	// The trusted root that every added leaf must prove against.
	Root thash.Digest

	Hasher thash.Hasher
}

// PartialTree accumulates leaves that have been proven
// against a trusted root, one leaf at a time.
//
// It is the verifier-side counterpart of a fully built [Tree]:
// a party holding only the tree shape and root can confirm
// individual leaves as their values and proofs arrive,
// without ever holding the whole leaf set.
type PartialTree struct {
	depth  int
	root   thash.Digest
	hasher thash.Hasher

	// Which leaf indices have been verified.
	haveLeaves *bitset.BitSet

	// Verified leaf digests, indexed by leaf position.
	// Entries are only meaningful where haveLeaves is set.
	leafHashes []thash.Digest
}

// NewPartialTree returns an empty accumulator for the tree shape
// and trusted root in cfg.
//
// NewPartialTree returns a [DepthError] or [CapacityError]
// if the configured shape is not one a [Tree] could have produced.
func NewPartialTree(cfg PartialTreeConfig) (*PartialTree, error) {
	if cfg.Depth < 1 || cfg.Depth > MaxDepth {
		return nil, DepthError{Depth: cfg.Depth}
	}
	if cfg.LeafCount > 1<<cfg.Depth {
		return nil, CapacityError{Count: cfg.LeafCount, Depth: cfg.Depth}
	}
	if cfg.LeafCount <= 0 {
		panic(fmt.Errorf(
			"BUG: LeafCount must be positive (got %d)", cfg.LeafCount,
		))
	}
	if cfg.Hasher == nil {
		panic(errors.New("BUG: hasher must not be nil"))
	}

	return &PartialTree{
		depth:  cfg.Depth,
		root:   cfg.Root,
		hasher: cfg.Hasher,

		haveLeaves: bitset.MustNew(uint(cfg.LeafCount)),
		leafHashes: make([]thash.Digest, cfg.LeafCount),
	}, nil
}

// AddLeaf confirms that the given leaf value at the given index
// matches the given proof and the trusted root, and records it.
//
// A repeated add of an already verified leaf returns
// [ErrAlreadyVerified]; a repeated add with different data returns
// [ErrIncorrectLeafData]. Neither modifies the accumulator.
func (t *PartialTree) AddLeaf(index int, value []byte, proof Proof) error {
	if index < 0 || index >= len(t.leafHashes) {
		return LeafRangeError{Index: index, Count: len(t.leafHashes)}
	}

	leafHash := t.hasher.Leaf(value)

	if t.haveLeaves.Test(uint(index)) {
		if t.leafHashes[index] != leafHash {
			return ErrIncorrectLeafData
		}
		return ErrAlreadyVerified
	}

	if len(proof) != t.depth+1 {
		return ErrProofLength
	}

	// The proof's claimed leaf digest must be the digest of the value;
	// otherwise the fold could prove a different leaf entirely.
	if proof[0] != leafHash {
		return ErrIncorrectLeafData
	}

	if VerifyProof(t.hasher, index, proof) != t.root {
		return ErrRootMismatch
	}

	t.leafHashes[index] = leafHash
	t.haveLeaves.Set(uint(index))
	return nil
}

// HasLeaf reports whether the leaf at the given index
// has already been verified via [*PartialTree.AddLeaf].
// HasLeaf reports false if index is out of bounds.
func (t *PartialTree) HasLeaf(index int) bool {
	if index < 0 {
		return false
	}
	return t.haveLeaves.Test(uint(index))
}

// LeafHash returns the verified digest of the leaf at the given index,
// and whether that leaf has been verified yet.
func (t *PartialTree) LeafHash(index int) (thash.Digest, bool) {
	if !t.HasLeaf(index) {
		return thash.Digest{}, false
	}
	return t.leafHashes[index], true
}

// Complete reports whether every leaf has been verified.
func (t *PartialTree) Complete() bool {
	return t.haveLeaves.Count() == uint(len(t.leafHashes))
}

// Root returns the trusted root the accumulator was configured with.
func (t *PartialTree) Root() thash.Digest {
	return t.root
}
