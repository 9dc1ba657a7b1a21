package talon

import (
	"errors"
	"math/bits"

	"github.com/gordian-engine/talon/thash"
)

// MaxDepth is the largest supported tree depth.
// A depth-32 tree has a capacity of 2^32 leaves.
const MaxDepth = 32

// Leaf is one populated leaf of a [Tree].
type Leaf struct {
	// Position of the leaf within the leaf sequence, zero-based.
	Index int

	// The raw value the leaf commits to.
	Value []byte

	// Hash is the digest of Value, as produced by the tree's hasher.
	Hash thash.Digest
}

// Tree is a fixed-depth binary Merkle tree.
//
// The populated leaves form an "inner tree"
// sized to the smallest power of two that holds them,
// with any shortfall padded by the zero digest.
// When the inner tree is shallower than the configured depth,
// an "outer" chain of compressions against empty-subtree digests
// extends the inner root up to the full depth.
//
// The internal structure is stored as an arena of digests per level,
// addressed by (level, index); every rebuild discards and
// reconstructs the whole arena.
type Tree struct {
	depth  int
	hasher thash.Hasher

	leaves []Leaf

	// Inner tree levels, bottom-up.
	// levels[0] is the leaf digest row,
	// padded with the zero digest to a power-of-two width;
	// levels[k][j] = Compress(levels[k-1][2j], levels[k-1][2j+1]).
	// The last level holds the single inner root.
	levels [][]thash.Digest

	// Outer padding chain:
	// outer[i] is the running top after i+1 padding steps.
	// Empty when the inner tree already reaches the configured depth.
	outer []thash.Digest

	// Empty-subtree digest per level; see zeroTable.
	zeros []thash.Digest

	root thash.Digest

	// Set when the leaf sequence changed without a rebuild.
	stale bool
}

// NewTree returns an empty tree of the given depth,
// using h for all leaf hashing and node compression.
//
// NewTree returns a [DepthError] if depth is outside [1, MaxDepth].
// The root of an empty tree is the empty-subtree digest
// at the configured depth.
func NewTree(depth int, h thash.Hasher) (*Tree, error) {
	if depth < 1 || depth > MaxDepth {
		return nil, DepthError{Depth: depth}
	}
	if h == nil {
		panic(errors.New("BUG: hasher must not be nil"))
	}

	zeros := zeroTable(depth, h)

	return &Tree{
		depth:  depth,
		hasher: h,

		zeros: zeros,
		root:  zeros[depth],
	}, nil
}

// Depth returns the configured depth of the tree.
func (t *Tree) Depth() int {
	return t.depth
}

// LeafCount returns the number of populated leaves.
func (t *Tree) LeafCount() int {
	return len(t.leaves)
}

// Root returns the current root digest.
// The root always reflects the most recent rebuild;
// it is the empty-tree root before any leaves have been built.
func (t *Tree) Root() thash.Digest {
	return t.root
}

// Leaf returns the populated leaf at the given index.
func (t *Tree) Leaf(index int) (Leaf, error) {
	if index < 0 || index >= len(t.leaves) {
		return Leaf{}, LeafRangeError{Index: index, Count: len(t.leaves)}
	}
	return t.leaves[index], nil
}

// LoadLeaves replaces the entire leaf sequence,
// hashing each value through the tree's hasher.
//
// LoadLeaves does not rebuild the internal structure;
// call [*Tree.Rebuild] afterwards to produce a valid root.
// Until then, path and proof queries return [ErrStale].
//
// The tree retains the given value slices without copying;
// the caller must not modify them afterwards.
//
// LoadLeaves returns a [CapacityError], without modifying the tree,
// if the value count exceeds the tree's capacity.
func (t *Tree) LoadLeaves(values [][]byte) error {
	if len(values) > t.capacity() {
		return CapacityError{Count: len(values), Depth: t.depth}
	}

	leaves := make([]Leaf, len(values))
	for i, v := range values {
		leaves[i] = Leaf{
			Index: i,
			Value: v,
			Hash:  t.hasher.Leaf(v),
		}
	}

	t.leaves = leaves
	t.levels = nil
	t.outer = nil
	t.stale = true

	return nil
}

// Rebuild reconstructs the entire internal structure
// from the current leaf sequence and commits the new root.
// No node survives from one rebuild to the next.
//
// Rebuilding an empty tree resets the root to the empty-tree root.
func (t *Tree) Rebuild() {
	if len(t.leaves) == 0 {
		t.levels = nil
		t.outer = nil
		t.root = t.zeros[t.depth]
		t.stale = false
		return
	}

	innerWidth := nextPowerOfTwo(len(t.leaves))
	innerHeight := bits.TrailingZeros(uint(innerWidth))

	levels := make([][]thash.Digest, innerHeight+1)

	// Leaf row first. Positions past the populated leaves
	// keep the zero digest, matching the empty-subtree chain,
	// so a partially populated tree has the same root
	// as a full tree whose remaining leaves are zero.
	row := make([]thash.Digest, innerWidth)
	for i, lf := range t.leaves {
		row[i] = lf.Hash
	}
	levels[0] = row

	// Pair up adjacent nodes level by level until one remains.
	for k := 1; k <= innerHeight; k++ {
		prev := levels[k-1]
		cur := make([]thash.Digest, len(prev)/2)
		for j := range cur {
			cur[j] = t.hasher.Compress(prev[2*j], prev[2*j+1])
		}
		levels[k] = cur
	}

	// Extend the inner root to the configured depth,
	// combining with the empty-subtree digest at each level.
	top := levels[innerHeight][0]
	var outer []thash.Digest
	if innerHeight < t.depth {
		outer = make([]thash.Digest, 0, t.depth-innerHeight)
		for level := innerHeight; level < t.depth; level++ {
			top = t.hasher.Compress(top, t.zeros[level])
			outer = append(outer, top)
		}
	}

	t.levels = levels
	t.outer = outer
	t.root = top
	t.stale = false
}

// UpdateLeaf replaces the value of the leaf at the given index
// and reruns the full construction over all leaves.
// Cost is linear in the leaf count;
// there is no incremental update path.
//
// UpdateLeaf returns a [LeafRangeError], without modifying the tree,
// if the index is outside the populated leaf sequence.
func (t *Tree) UpdateLeaf(index int, value []byte) error {
	if index < 0 || index >= len(t.leaves) {
		return LeafRangeError{Index: index, Count: len(t.leaves)}
	}

	t.leaves[index].Value = value
	t.leaves[index].Hash = t.hasher.Leaf(value)

	t.Rebuild()
	return nil
}

func (t *Tree) capacity() int {
	return 1 << t.depth
}

// innerHeight is the height of the inner tree built at the last rebuild.
// Only valid when levels is non-nil.
func (t *Tree) innerHeight() int {
	return len(t.levels) - 1
}

func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}
