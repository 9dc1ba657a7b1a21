// Package tshard commits erasure-coded shards of a data blob
// into a fixed-depth Merkle tree.
//
// Commit splits a blob into Reed-Solomon data and parity shards
// and commits every shard as a tree leaf,
// so any individual shard can be proven against the single root.
// Recover rebuilds the blob from a subset of shards
// and refuses to return data whose shards
// do not recommit to the trusted root.
package tshard
