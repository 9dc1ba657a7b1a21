// Package talon implements a fixed-depth binary Merkle hash tree
// supporting bulk leaf loads, single-leaf updates with full root
// recomputation, authentication-path retrieval,
// and compact SPV inclusion proofs with standalone verification.
//
// A [Tree] is created with a fixed depth in [1, MaxDepth],
// which fixes its capacity at 2^depth leaves for the life of the instance.
// Trees populated with fewer leaves than their capacity
// are padded with precomputed empty-subtree digests,
// so the root always commits to the full configured depth.
//
// The hash primitive is injected through [thash.Hasher];
// the tsha256 package provides the default SHA-256 implementation.
//
// A Tree is not safe for concurrent use.
// Callers sharing a tree across goroutines must serialize access externally.
package talon
