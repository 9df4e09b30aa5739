// Copyright (c) 2024-2026 The random123 authors.
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package philox implements the Philox family of counter-based
// pseudo-random functions from the Salmon-Moraes-Dror-Shaw construction
// ("Parallel Random Numbers -- As Easy as 1, 2, 3", SC'11): a wide-multiply
// mixer keyed by a fixed-width tuple half the size of its domain, with a
// Weyl-sequence key bump applied after every round.
package philox

import (
	"errors"
	"fmt"

	"github.com/ctrprf/random123/engine"
	"github.com/ctrprf/random123/word"
)

// ErrReservedKeyBits is returned by WithKey when the supplied key has
// nonzero bits in the top, engine-reserved portion of its highest-index
// word.
var ErrReservedKeyBits = errors.New("philox: reserved key bits are nonzero")

// ErrWrongLength is returned by WithKey when the supplied key slice does
// not have the exact length the PRF variant requires. Apply does not return
// it: a wrong-length domain makes Apply panic.
var ErrWrongLength = errors.New("philox: wrong tuple length")

// DefaultRounds is the spec-default round count for every Philox variant.
const DefaultRounds = 10

type constants[W word.Word] struct {
	m0, m1 W
	c0, c1 W
}

func constantsFor[W word.Word](n int) constants[W] {
	switch word.Width[W]() {
	case 32:
		if n == 2 {
			return constants[W]{m0: W(0xD256D193), c0: W(0x9E3779B9)}
		}
		return constants[W]{m0: W(0xD2511F53), m1: W(0xCD9E8D57), c0: W(0x9E3779B9), c1: W(0xBB67AE85)}
	default:
		if n == 2 {
			return constants[W]{m0: W(0xD2B74407B1CE6E93), c0: W(0x9E3779B97F4A7C15)}
		}
		return constants[W]{m0: W(0xD2E7470EE14C6C93), m1: W(0xCA5A826395121157), c0: W(0x9E3779B97F4A7C15), c1: W(0xBB67AE8584CAA73B)}
	}
}

// Philox2 is the 2-word Philox PRF over word type W. Its domain is a
// 2-tuple of W and its key is a 1-tuple of W.
type Philox2[W word.Word] struct {
	key    [1]W
	rounds int
}

var (
	_ engine.Prf[uint32] = Philox2[uint32]{}
	_ engine.Prf[uint64] = Philox2[uint64]{}
	_ engine.Prf[uint32] = Philox4[uint32]{}
	_ engine.Prf[uint64] = Philox4[uint64]{}
)

// New2 constructs a Philox2 with the given key and round count. rounds <= 0
// selects DefaultRounds.
func New2[W word.Word](key [1]W, rounds int) (Philox2[W], error) {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	if key[0]&word.KeyReservedMask[W](2) != 0 {
		return Philox2[W]{}, fmt.Errorf("philox2: %w", ErrReservedKeyBits)
	}
	return Philox2[W]{key: key, rounds: rounds}, nil
}

// N returns the domain/range element count: 2.
func (Philox2[W]) N() int { return 2 }

// KeyLen returns the key tuple length: 1.
func (Philox2[W]) KeyLen() int { return 1 }

// Rounds returns the configured round count.
func (p Philox2[W]) Rounds() int { return p.rounds }

// Key returns a copy of the current key.
func (p Philox2[W]) Key() []W { return []W{p.key[0]} }

// WithKey returns a copy of p with the given key, validated against the
// reserved-bit mask.
func (p Philox2[W]) WithKey(key []W) (engine.Prf[W], error) {
	if len(key) != 1 {
		return nil, fmt.Errorf("philox2: %w", ErrWrongLength)
	}
	next, err := New2[W]([1]W{key[0]}, p.rounds)
	if err != nil {
		return nil, err
	}
	return next, nil
}

// Block applies the PRF to a fixed [2]W input, returning a fixed [2]W
// output.
func (p Philox2[W]) Block(in [2]W) [2]W {
	c := constantsFor[W](2)
	l, r := in[0], in[1]
	k0 := p.key[0]
	for i := 0; i < p.rounds; i++ {
		hi, lo := word.MulHiLo(c.m0, l)
		l, r = hi^r^k0, lo
		k0 += c.c0
	}
	return [2]W{l, r}
}

// Apply implements engine.Prf[W]. domain must have length 2.
func (p Philox2[W]) Apply(domain []W) []W {
	if len(domain) != 2 {
		panic("philox2: Apply requires a 2-word domain")
	}
	out := p.Block([2]W{domain[0], domain[1]})
	return []W{out[0], out[1]}
}

// Philox4 is the 4-word Philox PRF over word type W. Its domain is a
// 4-tuple of W and its key is a 2-tuple of W.
type Philox4[W word.Word] struct {
	key    [2]W
	rounds int
}

// New4 constructs a Philox4 with the given key and round count. rounds <= 0
// selects DefaultRounds.
func New4[W word.Word](key [2]W, rounds int) (Philox4[W], error) {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	if key[1]&word.KeyReservedMask[W](4) != 0 {
		return Philox4[W]{}, fmt.Errorf("philox4: %w", ErrReservedKeyBits)
	}
	return Philox4[W]{key: key, rounds: rounds}, nil
}

// N returns the domain/range element count: 4.
func (Philox4[W]) N() int { return 4 }

// KeyLen returns the key tuple length: 2.
func (Philox4[W]) KeyLen() int { return 2 }

// Rounds returns the configured round count.
func (p Philox4[W]) Rounds() int { return p.rounds }

// Key returns a copy of the current key.
func (p Philox4[W]) Key() []W { return []W{p.key[0], p.key[1]} }

// WithKey returns a copy of p with the given key, validated against the
// reserved-bit mask.
func (p Philox4[W]) WithKey(key []W) (engine.Prf[W], error) {
	if len(key) != 2 {
		return nil, fmt.Errorf("philox4: %w", ErrWrongLength)
	}
	next, err := New4[W]([2]W{key[0], key[1]}, p.rounds)
	if err != nil {
		return nil, err
	}
	return next, nil
}

// Block applies the PRF to a fixed [4]W input, returning a fixed [4]W
// output.
func (p Philox4[W]) Block(in [4]W) [4]W {
	c := constantsFor[W](4)
	x0, x1, x2, x3 := in[0], in[1], in[2], in[3]
	k0, k1 := p.key[0], p.key[1]
	for i := 0; i < p.rounds; i++ {
		hi0, lo0 := word.MulHiLo(c.m0, x0)
		hi1, lo1 := word.MulHiLo(c.m1, x2)
		x0, x1, x2, x3 = hi1^x1^k0, lo1, hi0^x3^k1, lo0
		k0 += c.c0
		k1 += c.c1
	}
	return [4]W{x0, x1, x2, x3}
}

// Apply implements engine.Prf[W]. domain must have length 4.
func (p Philox4[W]) Apply(domain []W) []W {
	if len(domain) != 4 {
		panic("philox4: Apply requires a 4-word domain")
	}
	out := p.Block([4]W{domain[0], domain[1], domain[2], domain[3]})
	return []W{out[0], out[1], out[2], out[3]}
}
