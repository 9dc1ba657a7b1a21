package talon

import "github.com/gordian-engine/talon/thash"

// SiblingPair holds both child digests at one position on a path,
// in tree order: Left is the left child and Right is the right child.
type SiblingPair struct {
	Left, Right thash.Digest
}

// HashPath is the ordered sequence of sibling pairs
// from the root down to a target leaf's level.
// Index 0 holds the two children of the root;
// the last entry holds the target leaf and its immediate sibling.
//
// Unlike a compact [Proof], a hash path reveals both children
// at every level, letting a verifier recompute every intermediate
// digest on the path rather than trusting a flat sibling list.
type HashPath []SiblingPair

// HashPath returns the path of sibling pairs for the leaf at index,
// ordered root to leaf. The path always has exactly Depth() pairs;
// levels above the populated region pair the running top
// with an empty-subtree digest.
//
// HashPath returns [ErrStale] if the leaves changed since the last
// rebuild, or a [LeafRangeError] for an unpopulated index.
func (t *Tree) HashPath(index int) (HashPath, error) {
	pairs, err := t.pathPairs(index)
	if err != nil {
		return nil, err
	}

	// pathPairs is ordered bottom-up; the hash path is served top-down.
	path := make(HashPath, len(pairs))
	for i, p := range pairs {
		path[len(path)-1-i] = p
	}
	return path, nil
}

// pathPairs is the single traversal shared by
// [*Tree.HashPath] and [*Tree.GenerateProof].
// It returns both children at every position on the path
// from the leaf at index up to the root, ordered bottom-up:
// pairs[k] holds the two children of the path node at level k+1.
func (t *Tree) pathPairs(index int) ([]SiblingPair, error) {
	if t.stale {
		return nil, ErrStale
	}
	if index < 0 || index >= len(t.leaves) {
		return nil, LeafRangeError{Index: index, Count: len(t.leaves)}
	}

	pairs := make([]SiblingPair, 0, t.depth)

	// Inner tree: the path position at level k is index >> k,
	// and the pair is that position rounded down to even, plus its sibling.
	innerHeight := t.innerHeight()
	for k := 0; k < innerHeight; k++ {
		row := t.levels[k]
		pos := index >> k
		pairs = append(pairs, SiblingPair{
			Left:  row[pos&^1],
			Right: row[pos|1],
		})
	}

	// Outer chain: the running top is always the left child,
	// paired with the empty subtree at the same level.
	top := t.levels[innerHeight][0]
	for i, level := 0, innerHeight; level < t.depth; i, level = i+1, level+1 {
		pairs = append(pairs, SiblingPair{Left: top, Right: t.zeros[level]})
		top = t.outer[i]
	}

	return pairs, nil
}
