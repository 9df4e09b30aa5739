// Copyright (c) 2024-2026 The random123 authors.
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package threefry implements the Threefry family of counter-based
// pseudo-random functions from the Salmon-Moraes-Dror-Shaw construction
// ("Parallel Random Numbers -- As Easy as 1, 2, 3", SC'11): an add-rotate-xor
// block mixer keyed by a fixed-width tuple, with a lightweight key schedule
// and no S-boxes or table lookups.
//
// Two element counts are supported, each as its own generic type over the
// word width: Threefry2[W] and Threefry4[W], for W in {uint32, uint64}. Both
// satisfy the narrow Prf[W] interface the engine package depends on, so
// neither this package nor philox needs to import the other.
package threefry

import (
	"errors"
	"fmt"

	"github.com/ctrprf/random123/engine"
	"github.com/ctrprf/random123/word"
)

// ErrReservedKeyBits is returned by WithKey when the supplied key has
// nonzero bits in the top, engine-reserved portion of its highest-index
// word.
var ErrReservedKeyBits = errors.New("threefry: reserved key bits are nonzero")

// ErrWrongLength is returned by WithKey when the supplied key slice does
// not have the exact length the PRF variant requires. Apply does not return
// it: a wrong-length domain makes Apply panic.
var ErrWrongLength = errors.New("threefry: wrong tuple length")

const parity32 = uint32(0x1BD11BDA)
const parity64 = uint64(0x1BD11BDAA9FC1A22)

// rotation tables, indexed by round mod 8. Reproduced exactly from the
// Random123 reference tables; bit-exactness here is the entire point of the
// package, not a style choice.
var rot2x32 = [8]uint{13, 15, 26, 6, 17, 29, 16, 24}
var rot2x64 = [8]uint{16, 42, 12, 31, 16, 32, 24, 21}
var rot4x32 = [8][2]uint{{10, 26}, {11, 21}, {13, 27}, {23, 5}, {6, 20}, {17, 11}, {25, 10}, {18, 20}}
var rot4x64 = [8][2]uint{{14, 16}, {52, 57}, {23, 40}, {5, 37}, {25, 33}, {46, 12}, {58, 22}, {32, 32}}

func parityOf[W word.Word]() W {
	switch word.Width[W]() {
	case 32:
		return W(parity32)
	default:
		return W(parity64)
	}
}

func rot2[W word.Word](round int) uint {
	if word.Width[W]() == 32 {
		return rot2x32[round%8]
	}
	return rot2x64[round%8]
}

func rot4[W word.Word](round int) (uint, uint) {
	var r [2]uint
	if word.Width[W]() == 32 {
		r = rot4x32[round%8]
	} else {
		r = rot4x64[round%8]
	}
	return r[0], r[1]
}

// DefaultRounds is the spec-default round count for every Threefry variant.
const DefaultRounds = 20

var (
	_ engine.Prf[uint32] = Threefry2[uint32]{}
	_ engine.Prf[uint64] = Threefry2[uint64]{}
	_ engine.Prf[uint32] = Threefry4[uint32]{}
	_ engine.Prf[uint64] = Threefry4[uint64]{}
)

// Threefry2 is the 2-word Threefry PRF over word type W. Its key and domain
// are both 2-tuples of W.
type Threefry2[W word.Word] struct {
	key    [2]W
	rounds int
}

// New2 constructs a Threefry2 with the given key and round count. rounds <=
// 0 selects DefaultRounds. The key's reserved top bits (see
// word.KeyReservedMask) must be zero.
func New2[W word.Word](key [2]W, rounds int) (Threefry2[W], error) {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	if key[1]&word.KeyReservedMask[W](2) != 0 {
		return Threefry2[W]{}, fmt.Errorf("threefry2: %w", ErrReservedKeyBits)
	}
	return Threefry2[W]{key: key, rounds: rounds}, nil
}

// N returns the domain/range element count: 2.
func (Threefry2[W]) N() int { return 2 }

// KeyLen returns the key tuple length: 2.
func (Threefry2[W]) KeyLen() int { return 2 }

// Rounds returns the configured round count.
func (t Threefry2[W]) Rounds() int { return t.rounds }

// Key returns a copy of the current key.
func (t Threefry2[W]) Key() []W { return []W{t.key[0], t.key[1]} }

// WithKey returns a copy of t with the given key, validated against the
// reserved-bit mask.
func (t Threefry2[W]) WithKey(key []W) (engine.Prf[W], error) {
	if len(key) != 2 {
		return nil, fmt.Errorf("threefry2: %w", ErrWrongLength)
	}
	next, err := New2[W]([2]W{key[0], key[1]}, t.rounds)
	if err != nil {
		return nil, err
	}
	return next, nil
}

// Block applies the PRF to a fixed [2]W input, returning a fixed [2]W
// output. This is the allocation-free entry point used by the engine.
func (t Threefry2[W]) Block(in [2]W) [2]W {
	var ks [3]W
	ks[2] = parityOf[W]()
	for i := 0; i < 2; i++ {
		ks[i] = t.key[i]
		ks[2] ^= t.key[i]
	}

	x0, x1 := in[0]+ks[0], in[1]+ks[1]
	for d := 0; d < t.rounds; d++ {
		r := rot2[W](d)
		x0 += x1
		x1 = word.RotL(x1, r)
		x1 ^= x0
		if d%4 == 3 {
			s := W(d/4 + 1)
			x0 += ks[int(s)%3]
			x1 += ks[(int(s)+1)%3] + s
		}
	}
	return [2]W{x0, x1}
}

// Apply implements engine.Prf[W]: a slice-based wrapper around Block.
// domain must have length 2; the returned slice is freshly allocated.
func (t Threefry2[W]) Apply(domain []W) []W {
	if len(domain) != 2 {
		panic("threefry2: Apply requires a 2-word domain")
	}
	out := t.Block([2]W{domain[0], domain[1]})
	return []W{out[0], out[1]}
}

// Threefry4 is the 4-word Threefry PRF over word type W. Its key and domain
// are both 4-tuples of W.
type Threefry4[W word.Word] struct {
	key    [4]W
	rounds int
}

// New4 constructs a Threefry4 with the given key and round count. rounds <=
// 0 selects DefaultRounds.
func New4[W word.Word](key [4]W, rounds int) (Threefry4[W], error) {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	if key[3]&word.KeyReservedMask[W](4) != 0 {
		return Threefry4[W]{}, fmt.Errorf("threefry4: %w", ErrReservedKeyBits)
	}
	return Threefry4[W]{key: key, rounds: rounds}, nil
}

// N returns the domain/range element count: 4.
func (Threefry4[W]) N() int { return 4 }

// KeyLen returns the key tuple length: 4.
func (Threefry4[W]) KeyLen() int { return 4 }

// Rounds returns the configured round count.
func (t Threefry4[W]) Rounds() int { return t.rounds }

// Key returns a copy of the current key.
func (t Threefry4[W]) Key() []W { return []W{t.key[0], t.key[1], t.key[2], t.key[3]} }

// WithKey returns a copy of t with the given key, validated against the
// reserved-bit mask.
func (t Threefry4[W]) WithKey(key []W) (engine.Prf[W], error) {
	if len(key) != 4 {
		return nil, fmt.Errorf("threefry4: %w", ErrWrongLength)
	}
	next, err := New4[W]([4]W{key[0], key[1], key[2], key[3]}, t.rounds)
	if err != nil {
		return nil, err
	}
	return next, nil
}

// Block applies the PRF to a fixed [4]W input, returning a fixed [4]W
// output.
//
// The odd-indexed words are swapped after each round's mix step, which
// reproduces the reference implementation's alternating (0,1)/(2,3) and
// (0,3)/(2,1) pairing without hand-duplicating the round body; after every
// fourth round the swap count is even, so the array is back in its logical
// order exactly when the key-schedule injection needs it to be.
func (t Threefry4[W]) Block(in [4]W) [4]W {
	var ks [5]W
	ks[4] = parityOf[W]()
	for i := 0; i < 4; i++ {
		ks[i] = t.key[i]
		ks[4] ^= t.key[i]
	}

	x := [4]W{in[0] + ks[0], in[1] + ks[1], in[2] + ks[2], in[3] + ks[3]}
	for d := 0; d < t.rounds; d++ {
		r0, r1 := rot4[W](d)
		x[0] += x[1]
		x[1] = word.RotL(x[1], r0)
		x[1] ^= x[0]
		x[2] += x[3]
		x[3] = word.RotL(x[3], r1)
		x[3] ^= x[2]
		x[1], x[3] = x[3], x[1]

		if d%4 == 3 {
			s := W(d/4 + 1)
			x[0] += ks[int(s)%5]
			x[1] += ks[(int(s)+1)%5]
			x[2] += ks[(int(s)+2)%5]
			x[3] += ks[(int(s)+3)%5] + s
		}
	}
	return x
}

// Apply implements engine.Prf[W]. domain must have length 4.
func (t Threefry4[W]) Apply(domain []W) []W {
	if len(domain) != 4 {
		panic("threefry4: Apply requires a 4-word domain")
	}
	out := t.Block([4]W{domain[0], domain[1], domain[2], domain[3]})
	return []W{out[0], out[1], out[2], out[3]}
}
