// Copyright (c) 2024-2026 The random123 authors.
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package pooled adapts a counter-based engine into a high-throughput
// io.Reader: a bank of sync.Pool-backed engine instances, sharded to
// reduce contention under concurrent use, in the same shape as
// x/crypto/ctrdrbg's pool of AES-CTR-DRBG instances.
//
// Unlike a DRBG pool, a counter-based stream has no entropy to fall back
// on for separating concurrently-created instances: two engines built from
// the same key and base counter produce identical output. So instead of
// ctrdrbg's per-shard pool (which relies on fresh OS entropy to keep
// concurrently-created instances distinct), every engine this package ever
// constructs is assigned a unique, monotonically increasing base-counter
// value from one shared counter, regardless of which shard's pool asked
// for it. Sharding here is purely a contention-reduction technique, not a
// partition of the counter space. There is no key rotation: a counter-based
// stream's security model, if any, lives entirely in its key, which this
// package never touches after construction.
package pooled

import (
	"encoding/binary"
	"fmt"
	mrand "math/rand/v2"
	"sync"
	"sync/atomic"

	"github.com/ctrprf/random123/engine"
	"github.com/ctrprf/random123/word"
)

// Reader is a concurrency-safe io.Reader backed by a pool of counter-based
// engines sharing one PRF key.
type Reader[W word.Word] struct {
	pools     []*sync.Pool
	newEngine func() *engine.Engine[W]
	wordBytes int
}

// NewReader builds a pooled Reader around an already-keyed PRF. Each
// engine instance NewReader creates (eagerly, one per shard at
// construction, and again whenever a shard's counter space is exhausted)
// gets a fresh, never-reused base counter, so concurrently active engines
// never overlap.
func NewReader[W word.Word](prf engine.Prf[W], opts ...Option[W]) (*Reader[W], error) {
	c, err := resolve[W](opts)
	if err != nil {
		return nil, err
	}

	n := prf.N()
	var nextBase atomic.Uint64
	newEngine := func() *engine.Engine[W] {
		id := nextBase.Add(1) - 1
		base := make([]W, n)
		base[0] = W(id)
		e, err := engine.NewFromPrf[W](prf, c.counterBits, base)
		if err != nil {
			panic(fmt.Sprintf("pooled: engine init failed: %v", err))
		}
		return e
	}

	pools := make([]*sync.Pool, c.shards)
	for i := range pools {
		pools[i] = &sync.Pool{New: func() interface{} { return newEngine() }}

		// Eagerly construct and release one instance per shard so that a
		// misconfigured PRF or counter-bit reservation panics here, during
		// NewReader, rather than on the first concurrent Read.
		item := pools[i].Get()
		pools[i].Put(item)
	}

	return &Reader[W]{
		pools:     pools,
		newEngine: newEngine,
		wordBytes: int(word.Width[W]() / 8),
	}, nil
}

// Read fills b with pseudo-random bytes drawn from one shard's engine,
// chosen via a fast non-cryptographic shard selector. It implements
// io.Reader and is safe for concurrent use. Read never returns an error:
// a shard that exhausts its counter space is seamlessly replaced with a
// freshly counter-assigned engine mid-read.
func (r *Reader[W]) Read(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, nil
	}

	shard := 0
	if len(r.pools) > 1 {
		shard = mrand.IntN(len(r.pools))
	}
	e := r.pools[shard].Get().(*engine.Engine[W])

	var scratch [8]byte
	offset := 0
	for offset < len(b) {
		v, err := e.Next()
		if err != nil {
			e = r.newEngine()
			v, err = e.Next()
			if err != nil {
				// Cannot happen: a freshly constructed engine always has an
				// unexhausted counter space.
				panic(fmt.Sprintf("pooled: freshly constructed engine reported: %v", err))
			}
		}
		putWordBytes(scratch[:r.wordBytes], v)
		offset += copy(b[offset:], scratch[:r.wordBytes])
	}

	r.pools[shard].Put(e)
	return offset, nil
}

func putWordBytes[W word.Word](dst []byte, v W) {
	switch word.Width[W]() {
	case 32:
		binary.LittleEndian.PutUint32(dst, uint32(v))
	default:
		binary.LittleEndian.PutUint64(dst, uint64(v))
	}
}
