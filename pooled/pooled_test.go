// Copyright (c) 2024-2026 The random123 authors.
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package pooled

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ctrprf/random123/threefry"
)

func TestReaderFillsArbitraryLengths(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	prf, err := threefry.New4[uint32]([4]uint32{1, 2, 3, 4}, threefry.DefaultRounds)
	is.NoError(err)
	r, err := NewReader[uint32](prf, WithShards[uint32](1))
	is.NoError(err)

	for _, n := range []int{0, 1, 3, 4, 7, 16, 1000} {
		buf := make([]byte, n)
		read, err := r.Read(buf)
		is.NoError(err)
		is.Equal(n, read)
	}
}

func TestReaderInvalidShardsRejected(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	prf, err := threefry.New4[uint32]([4]uint32{0, 0, 0, 0}, threefry.DefaultRounds)
	is.NoError(err)
	_, err = NewReader[uint32](prf, WithShards[uint32](0))
	is.ErrorIs(err, ErrInvalidShards)
}

func TestReaderInvalidCounterBitsRejected(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	prf, err := threefry.New4[uint32]([4]uint32{0, 0, 0, 0}, threefry.DefaultRounds)
	is.NoError(err)
	_, err = NewReader[uint32](prf, WithCounterBits[uint32](0))
	is.ErrorIs(err, ErrInvalidCounterBits)
}

// TestReaderSurvivesExhaustion forces a shard's counter space to exhaust
// quickly and verifies Read keeps producing output without error.
func TestReaderSurvivesExhaustion(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	prf, err := threefry.New4[uint32]([4]uint32{0, 0, 0, 0}, threefry.DefaultRounds)
	is.NoError(err)
	r, err := NewReader[uint32](prf, WithShards[uint32](1), WithCounterBits[uint32](3))
	is.NoError(err)

	buf := make([]byte, 4*1024)
	n, err := r.Read(buf)
	is.NoError(err)
	is.Equal(len(buf), n)
}

func TestReaderConcurrentUse(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	prf, err := threefry.New4[uint32]([4]uint32{9, 9, 9, 9}, threefry.DefaultRounds)
	is.NoError(err)
	r, err := NewReader[uint32](prf, WithShards[uint32](4))
	is.NoError(err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			buf := make([]byte, 256)
			n, err := r.Read(buf)
			assert.NoError(t, err)
			assert.Equal(t, len(buf), n)
		}()
	}
	wg.Wait()
}

func TestReaderNoDuplicateBlocksAcrossShards(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	prf, err := threefry.New4[uint32]([4]uint32{5, 5, 5, 5}, threefry.DefaultRounds)
	is.NoError(err)
	r, err := NewReader[uint32](prf, WithShards[uint32](8))
	is.NoError(err)

	seen := make(map[string]struct{})
	for i := 0; i < 2000; i++ {
		buf := make([]byte, 16)
		_, err := r.Read(buf)
		is.NoError(err)
		_, dup := seen[string(buf)]
		is.False(dup, "distinct shards/instances must not repeat a 16-byte block this quickly")
		seen[string(buf)] = struct{}{}
	}
}
