package tshard_test

import (
	"testing"

	"github.com/gordian-engine/talon"
	"github.com/gordian-engine/talon/internal/ttest"
	"github.com/gordian-engine/talon/thash/tsha256"
	"github.com/gordian-engine/talon/tshard"
	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/require"
)

func TestCommit_shardsProveAgainstRoot(t *testing.T) {
	t.Parallel()

	log := slogt.New(t)
	h := tsha256.Hasher{}

	data := ttest.RandomDataForTest(t, 10_000)

	cm, err := tshard.Commit(log, data, tshard.CommitConfig{
		MaxShardSize: 1024,
		ParityRatio:  0.5,
		Hasher:       h,
	})
	require.NoError(t, err)

	require.Equal(t, 10, cm.NumData)
	require.Equal(t, 5, cm.NumParity)
	require.Len(t, cm.Shards, 15)
	require.Len(t, cm.Proofs, 15)

	// 15 shards need a depth-4 tree.
	require.Equal(t, 4, cm.Depth)

	for i, p := range cm.Proofs {
		require.Len(t, p, cm.Depth+1, "shard %d", i)
		require.Equal(t, cm.Root, talon.VerifyProof(h, i, p), "shard %d", i)
	}
}

func TestCommit_explicitDepthPads(t *testing.T) {
	t.Parallel()

	log := slogt.New(t)
	data := ttest.RandomDataForTest(t, 500)

	cm, err := tshard.Commit(log, data, tshard.CommitConfig{
		MaxShardSize: 256,
		ParityRatio:  0,
		Depth:        8,
		Hasher:       tsha256.Hasher{},
	})
	require.NoError(t, err)

	require.Equal(t, 8, cm.Depth)
	for i, p := range cm.Proofs {
		require.Len(t, p, 9, "shard %d", i)
	}
}

func TestCommit_depthTooSmall(t *testing.T) {
	t.Parallel()

	log := slogt.New(t)
	data := ttest.RandomDataForTest(t, 4096)

	_, err := tshard.Commit(log, data, tshard.CommitConfig{
		MaxShardSize: 256,
		ParityRatio:  0,
		Depth:        2,
		Hasher:       tsha256.Hasher{},
	})
	require.Error(t, err)
}

func TestRecover_withMissingShards(t *testing.T) {
	t.Parallel()

	log := slogt.New(t)
	h := tsha256.Hasher{}

	data := ttest.RandomDataForTest(t, 8_000)

	cm, err := tshard.Commit(log, data, tshard.CommitConfig{
		MaxShardSize: 1024,
		ParityRatio:  0.5,
		Hasher:       h,
	})
	require.NoError(t, err)

	// Drop as many shards as there are parity shards.
	require.Equal(t, 4, cm.NumParity)
	shards := make([][]byte, len(cm.Shards))
	copy(shards, cm.Shards)
	shards[0] = nil
	shards[3] = nil
	shards[9] = nil
	shards[11] = nil

	got, err := tshard.Recover(log, tshard.RecoverConfig{
		NumData:   cm.NumData,
		NumParity: cm.NumParity,
		DataLen:   len(data),
		Depth:     cm.Depth,
		Root:      cm.Root,
		Hasher:    h,
	}, shards)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestRecover_corruptShard(t *testing.T) {
	t.Parallel()

	log := slogt.New(t)
	h := tsha256.Hasher{}

	data := ttest.RandomDataForTest(t, 8_000)

	cm, err := tshard.Commit(log, data, tshard.CommitConfig{
		MaxShardSize: 1024,
		ParityRatio:  0.5,
		Hasher:       h,
	})
	require.NoError(t, err)

	// Drop one shard and corrupt another.
	// Reed-Solomon reconstruction then produces a consistent
	// but wrong shard set, which only the root check catches.
	shards := make([][]byte, len(cm.Shards))
	for i, s := range cm.Shards {
		shards[i] = append([]byte(nil), s...)
	}
	shards[2] = nil
	shards[5][0] ^= 0xff

	_, err = tshard.Recover(log, tshard.RecoverConfig{
		NumData:   cm.NumData,
		NumParity: cm.NumParity,
		DataLen:   len(data),
		Depth:     cm.Depth,
		Root:      cm.Root,
		Hasher:    h,
	}, shards)
	require.ErrorIs(t, err, tshard.ErrRootMismatch)
}

func TestRecover_wrongShardCount(t *testing.T) {
	t.Parallel()

	log := slogt.New(t)

	_, err := tshard.Recover(log, tshard.RecoverConfig{
		NumData:   4,
		NumParity: 2,
		DataLen:   100,
		Depth:     3,
		Hasher:    tsha256.Hasher{},
	}, make([][]byte, 5))
	require.Error(t, err)
}
