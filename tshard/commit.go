package tshard

import (
	"fmt"
	"log/slog"
	"math/bits"

	"github.com/gordian-engine/talon"
	"github.com/gordian-engine/talon/thash"
	"github.com/klauspost/reedsolomon"
)

// CommitConfig is the configuration for [Commit].
type CommitConfig struct {
	// Desired maximum size of each data shard, in bytes.
	// The actual shard size may be slightly smaller
	// when the data does not divide evenly.
	MaxShardSize int

	// ParityRatio indicates the desired ratio of
	// parity shards to data shards.
	// For example, ParityRatio=0.25 means there will be
	// one parity shard for every four data shards.
	// The parity count is rounded down
	// if the ratio does not result in a whole number.
	ParityRatio float32

	// Depth of the commitment tree.
	// Zero means the smallest depth that holds every shard.
	// A larger depth pads the tree with empty subtrees,
	// which lets differently sized blobs share one tree shape.
	Depth int

	// How to hash shards and nodes in the commitment tree.
	Hasher thash.Hasher
}

// Commitment is the value returned by [Commit].
type Commitment struct {
	// The number of data and parity shards.
	NumData, NumParity int

	// The depth of the commitment tree,
	// needed to size proofs during recovery.
	Depth int

	// Root is the tree root committing to every shard.
	Root thash.Digest

	// The data and parity shards, aligned with leaf indices.
	Shards [][]byte

	// Proofs is aligned one-to-one with Shards;
	// Proofs[i] proves Shards[i] against Root.
	Proofs []talon.Proof
}

// Commit erasure-codes data and commits the resulting shards
// as the leaves of a fixed-depth Merkle tree.
func Commit(log *slog.Logger, data []byte, cfg CommitConfig) (Commitment, error) {
	if cfg.MaxShardSize <= 0 {
		panic(fmt.Errorf(
			"BUG: MaxShardSize must be positive (got %d)", cfg.MaxShardSize,
		))
	}
	if cfg.ParityRatio < 0 {
		panic(fmt.Errorf(
			"BUG: ParityRatio must be non-negative (got %g)", cfg.ParityRatio,
		))
	}
	if len(data) == 0 {
		return Commitment{}, fmt.Errorf("cannot commit empty data")
	}

	nData := (len(data) + cfg.MaxShardSize - 1) / cfg.MaxShardSize
	nParity := int(cfg.ParityRatio * float32(nData))
	total := nData + nParity

	depth, err := commitmentDepth(cfg.Depth, total)
	if err != nil {
		return Commitment{}, err
	}

	enc, err := reedsolomon.New(
		nData, nParity,
		reedsolomon.WithAutoGoroutines(cfg.MaxShardSize),
	)
	if err != nil {
		return Commitment{}, fmt.Errorf(
			"failed to build Reed-Solomon encoder: %w", err,
		)
	}

	shards, err := enc.Split(data)
	if err != nil {
		return Commitment{}, fmt.Errorf(
			"failed to split data into shards: %w", err,
		)
	}

	if err := enc.Encode(shards); err != nil {
		return Commitment{}, fmt.Errorf(
			"failed to erasure-code shards: %w", err,
		)
	}

	// Now that the data is erasure-coded, we can build the tree.
	tree, err := talon.NewTree(depth, cfg.Hasher)
	if err != nil {
		return Commitment{}, err
	}
	if err := tree.LoadLeaves(shards); err != nil {
		return Commitment{}, err
	}
	tree.Rebuild()

	proofs := make([]talon.Proof, total)
	for i := range proofs {
		p, err := tree.GenerateProof(i)
		if err != nil {
			return Commitment{}, fmt.Errorf(
				"failed to generate proof for shard %d: %w", i, err,
			)
		}
		proofs[i] = p
	}

	log.Debug(
		"committed shards",
		"data", nData,
		"parity", nParity,
		"depth", depth,
		"shard_size", len(shards[0]),
	)

	return Commitment{
		NumData:   nData,
		NumParity: nParity,

		Depth: depth,
		Root:  tree.Root(),

		Shards: shards,
		Proofs: proofs,
	}, nil
}

// commitmentDepth resolves the configured depth against
// the smallest depth holding total shards.
func commitmentDepth(configured, total int) (int, error) {
	minDepth := bits.Len(uint(total - 1))
	if minDepth == 0 {
		minDepth = 1
	}

	if configured == 0 {
		return minDepth, nil
	}
	if configured < minDepth || configured > talon.MaxDepth {
		return 0, fmt.Errorf(
			"depth %d cannot hold %d shards (need %d to %d)",
			configured, total, minDepth, talon.MaxDepth,
		)
	}
	return configured, nil
}
