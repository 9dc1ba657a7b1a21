package tshard

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"

	"github.com/gordian-engine/talon"
	"github.com/gordian-engine/talon/thash"
	"github.com/klauspost/reedsolomon"
)

// ErrRootMismatch is returned from [Recover] when the reconstructed
// shard set does not recommit to the trusted root,
// indicating corrupt or substituted shards.
var ErrRootMismatch = errors.New("reconstructed shards do not recommit to trusted root")

// RecoverConfig is the configuration for [Recover].
// The shape fields must match the [Commitment] being recovered,
// and Root must come from a trusted source.
type RecoverConfig struct {
	NumData, NumParity int

	// The length of the original data, in bytes.
	// Required because shards are padded to a uniform size.
	DataLen int

	// The depth of the commitment tree.
	Depth int

	// The trusted commitment root.
	Root thash.Digest

	Hasher thash.Hasher
}

// Recover reconstructs the original data from the given shards.
// The shards slice must have NumData+NumParity entries,
// with nil entries for missing shards;
// at least NumData shards must be present.
//
// Before returning data, Recover recommits the full reconstructed
// shard set and compares the recomputed root against cfg.Root,
// returning [ErrRootMismatch] if any shard was corrupted.
func Recover(log *slog.Logger, cfg RecoverConfig, shards [][]byte) ([]byte, error) {
	total := cfg.NumData + cfg.NumParity
	if len(shards) != total {
		return nil, fmt.Errorf(
			"expected %d shard slots (including missing), got %d",
			total, len(shards),
		)
	}

	var missing int
	for _, s := range shards {
		if s == nil {
			missing++
		}
	}

	enc, err := reedsolomon.New(cfg.NumData, cfg.NumParity)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to build Reed-Solomon encoder: %w", err,
		)
	}

	if err := enc.Reconstruct(shards); err != nil {
		return nil, fmt.Errorf(
			"failed to reconstruct shards: %w", err,
		)
	}

	// Reed-Solomon reconstruction is only as good as its inputs,
	// so recommit the full shard set against the trusted root
	// before handing any data back.
	tree, err := talon.NewTree(cfg.Depth, cfg.Hasher)
	if err != nil {
		return nil, err
	}
	if err := tree.LoadLeaves(shards); err != nil {
		return nil, err
	}
	tree.Rebuild()

	if tree.Root() != cfg.Root {
		return nil, ErrRootMismatch
	}

	var buf bytes.Buffer
	buf.Grow(cfg.DataLen)
	if err := enc.Join(&buf, shards, cfg.DataLen); err != nil {
		return nil, fmt.Errorf(
			"failed to join reconstructed shards: %w", err,
		)
	}

	log.Debug(
		"recovered data from shards",
		"missing", missing,
		"bytes", cfg.DataLen,
	)

	return buf.Bytes(), nil
}
