// Copyright (c) 2024-2026 The random123 authors.
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package engine adapts a fixed-domain pseudo-random function (threefry or
// philox) into an unbounded, seekable stream of words: a counter-based
// engine in the Salmon-Moraes-Dror-Shaw sense. The engine owns a base
// counter and a sequence counter; each PRF invocation produces a full block
// of N words, which the engine buffers and drains one word at a time,
// calling the PRF again only when the buffer runs dry.
package engine

import (
	"fmt"

	"github.com/holiman/uint256"

	"github.com/ctrprf/random123/word"
)

// Engine is a counter-based pseudo-random stream built on top of a Prf[W].
// Its entire observable state is the PRF's key, the base counter, the
// sequence counter and the buffer index; two engines constructed or
// advanced to the same state produce identical future output. The
// in-memory word buffer is a performance cache, not part of that state: it
// is never compared or serialized, and is always safe to regenerate lazily
// from (key, base, sequence counter).
type Engine[W word.Word] struct {
	prf         Prf[W]
	n           int
	counterBits uint
	base        []W

	seq      uint256.Int
	idx      int
	buf      []W
	bufValid bool
}

// newEngine is the common constructor path: prf is already keyed.
func newEngine[W word.Word](prf Prf[W], counterBits uint, baseCounter []W) (*Engine[W], error) {
	n := prf.N()
	total := uint(n) * word.Width[W]()
	if counterBits == 0 || counterBits > total {
		return nil, fmt.Errorf("%w: %w", ErrOutOfRange, ErrInvalidCounterBits)
	}

	base := make([]W, n)
	if baseCounter != nil {
		if len(baseCounter) != n {
			return nil, fmt.Errorf("%w: base counter: %w", ErrOutOfRange, ErrWrongLength)
		}
		copy(base, baseCounter)
	}
	if mask := reservedMaskWords[W](n, counterBits); !elementwiseDisjoint(base, mask) {
		return nil, fmt.Errorf("%w: %w", ErrOutOfRange, ErrBaseCounterOverlapsReserved)
	}

	return &Engine[W]{
		prf:         prf,
		n:           n,
		counterBits: counterBits,
		base:        base,
		buf:         make([]W, n),
	}, nil
}

func elementwiseDisjoint[W word.Word](a, mask []W) bool {
	for i := range a {
		if a[i]&mask[i] != 0 {
			return false
		}
	}
	return true
}

// NewFromPrf builds an engine around an already-keyed PRF.
func NewFromPrf[W word.Word](prf Prf[W], counterBits uint, baseCounter []W) (*Engine[W], error) {
	return newEngine[W](prf, counterBits, baseCounter)
}

// NewFromKey builds an engine by rekeying prf with the given key tuple.
func NewFromKey[W word.Word](prf Prf[W], key []W, counterBits uint, baseCounter []W) (*Engine[W], error) {
	keyed, err := prf.WithKey(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOutOfRange, err)
	}
	return newEngine[W](keyed, counterBits, baseCounter)
}

// NewSeeded builds an engine by rekeying prf with a key tuple holding seed
// in its lowest word and zero elsewhere. This is the convenience path for
// callers who want a single scalar seed rather than a full key tuple.
func NewSeeded[W word.Word](prf Prf[W], seed uint64, counterBits uint, baseCounter []W) (*Engine[W], error) {
	key := make([]W, prf.KeyLen())
	key[0] = W(seed)
	return NewFromKey[W](prf, key, counterBits, baseCounter)
}

// N returns the PRF's domain/range element count.
func (e *Engine[W]) N() int { return e.n }

// CounterBits returns the number of high bits of the domain reserved for
// the sequence counter.
func (e *Engine[W]) CounterBits() uint { return e.counterBits }

// Key returns a copy of the engine's PRF key.
func (e *Engine[W]) Key() []W { return e.prf.Key() }

// BaseCounter returns a copy of the engine's base counter.
func (e *Engine[W]) BaseCounter() []W {
	out := make([]W, e.n)
	copy(out, e.base)
	return out
}

// SequenceCounter returns the engine's current sequence counter value.
func (e *Engine[W]) SequenceCounter() *uint256.Int {
	return new(uint256.Int).Set(&e.seq)
}

// BufferIndex returns the number of words already drawn from the current
// block, in [0, N). A freshly constructed or restarted engine reports 0
// with no block yet generated; the first call to Next regenerates it.
func (e *Engine[W]) BufferIndex() int { return e.idx }

// Exhausted reports whether the engine has produced every word its counter
// space can address. A 256-bit counter space (CounterBits spanning the
// whole of a 4x64 domain) never reports exhausted: its limit of 2^256
// blocks is not representable in the sequence counter and not reachable,
// so it is treated as unbounded. Any narrower counter space reports
// exhausted once its 2^CounterBits blocks are used up.
func (e *Engine[W]) Exhausted() bool {
	return !e.bufValid && e.idx == 0 && seqAtLimit(&e.seq, e.counterBits)
}

// Next draws the next word from the stream, regenerating the underlying
// block when the buffer is empty. Amortized O(1); O(PRF) on a block
// boundary.
func (e *Engine[W]) Next() (W, error) {
	if !e.bufValid {
		if seqAtLimit(&e.seq, e.counterBits) {
			var zero W
			return zero, ErrExhausted
		}
		input := packInput[W](e.base, &e.seq, e.counterBits)
		copy(e.buf, e.prf.Apply(input))
		e.bufValid = true
	}

	v := e.buf[e.idx]
	e.idx++
	if e.idx == e.n {
		e.seq.AddUint64(&e.seq, 1)
		e.idx = 0
		e.bufValid = false
	}
	return v, nil
}

// Discard advances the stream by steps words without returning them, in
// O(1) regardless of steps: it recomputes the (sequence counter, buffer
// index) pair algebraically instead of looping. If the target position
// lands beyond the counter space, Discard still succeeds; the engine is
// left Exhausted and the next Next call fails.
func (e *Engine[W]) Discard(steps *uint256.Int) {
	n := uint64(e.n)
	pos := new(uint256.Int).Mul(&e.seq, uint256.NewInt(n))
	pos.AddUint64(pos, uint64(e.idx))
	pos.Add(pos, steps)

	var newSeq, rem uint256.Int
	newSeq.DivMod(pos, uint256.NewInt(n), &rem)

	e.seq.Set(&newSeq)
	e.idx = int(rem.Uint64())
	if seqAtLimit(&newSeq, e.counterBits) {
		// Past the end there is no block to index into; a zero index keeps
		// the engine reporting Exhausted and serializable.
		e.idx = 0
	}
	e.bufValid = false
}

// DiscardUint64 is a convenience wrapper around Discard for step counts
// that fit in a uint64.
func (e *Engine[W]) DiscardUint64(steps uint64) {
	e.Discard(uint256.NewInt(steps))
}

// Restart resets the sequence counter and buffer to their initial state
// while keeping the PRF key, counter-bit reservation and base counter
// unchanged.
func (e *Engine[W]) Restart() {
	e.seq = uint256.Int{}
	e.idx = 0
	e.bufValid = false
}

// WithBaseCounter returns a new engine sharing this one's PRF and
// counter-bit reservation but with a different base counter and a reset
// sequence counter and buffer.
func (e *Engine[W]) WithBaseCounter(baseCounter []W) (*Engine[W], error) {
	return newEngine[W](e.prf, e.counterBits, baseCounter)
}

// Equal reports whether e and other would produce the same future output:
// same PRF key, base counter, sequence counter and buffer index. Buffered
// block contents are a pure function of those fields and are not compared.
func (e *Engine[W]) Equal(other *Engine[W]) bool {
	if other == nil || e.n != other.n || e.counterBits != other.counterBits || e.idx != other.idx {
		return false
	}
	if !e.seq.Eq(&other.seq) {
		return false
	}
	if !wordsEqual(e.base, other.base) {
		return false
	}
	return wordsEqual(e.prf.Key(), other.prf.Key())
}

func wordsEqual[W word.Word](a, b []W) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
