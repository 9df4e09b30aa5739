// Copyright (c) 2024-2026 The random123 authors.
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package engine

import (
	"github.com/holiman/uint256"

	"github.com/ctrprf/random123/word"
)

// totalBits returns the full domain width in bits: N words of width bits(W).
func totalBits[W word.Word](n int) uint {
	return uint(n) * word.Width[W]()
}

// domainToInt folds a little-endian (word 0 is least significant) domain
// tuple into a single fixed-width integer. The domain never exceeds 256
// bits for any (N, W) pair the package supports (N <= 4, W <= 64), so a
// uint256 always has room.
func domainToInt[W word.Word](words []W) *uint256.Int {
	z := new(uint256.Int)
	width := word.Width[W]()
	var term uint256.Int
	for i := len(words) - 1; i >= 0; i-- {
		z.Lsh(z, width)
		term.SetUint64(uint64(words[i]))
		z.Or(z, &term)
	}
	return z
}

// intToDomain is the inverse of domainToInt: it splits z into n little-endian
// words of width bits(W).
func intToDomain[W word.Word](z *uint256.Int, n int) []W {
	width := word.Width[W]()
	mask := new(uint256.Int).Lsh(uint256.NewInt(1), width)
	mask.Sub(mask, uint256.NewInt(1))

	cur := new(uint256.Int).Set(z)
	out := make([]W, n)
	var masked uint256.Int
	for i := 0; i < n; i++ {
		masked.And(cur, mask)
		out[i] = W(masked.Uint64())
		cur.Rsh(cur, width)
	}
	return out
}

// allOnes returns the all-ones pattern spanning the domain's full bit width.
func allOnes[W word.Word](n int) *uint256.Int {
	bits := totalBits[W](n)
	if bits >= 256 {
		return new(uint256.Int).Not(new(uint256.Int))
	}
	v := new(uint256.Int).Lsh(uint256.NewInt(1), bits)
	return v.Sub(v, uint256.NewInt(1))
}

// reservedMaskInt returns the bit pattern, spanning the domain's full width,
// with exactly the top counterBits bits set. This is the region the
// sequence counter occupies and the base counter must leave at zero.
func reservedMaskInt[W word.Word](n int, counterBits uint) *uint256.Int {
	bits := totalBits[W](n)
	low := bits - counterBits
	full := allOnes[W](n)
	if low == 0 {
		return full
	}
	lowMask := new(uint256.Int).Lsh(uint256.NewInt(1), low)
	lowMask.Sub(lowMask, uint256.NewInt(1))
	return new(uint256.Int).Xor(full, lowMask)
}

// reservedMaskWords is reservedMaskInt split back into domain words, for
// validating a caller-supplied base counter against the reserved region.
func reservedMaskWords[W word.Word](n int, counterBits uint) []W {
	return intToDomain[W](reservedMaskInt[W](n, counterBits), n)
}

// packInput combines a base counter with a sequence counter value into the
// PRF input domain: the sequence counter occupies the top counterBits bits,
// shifted above the base counter's untouched low bits.
func packInput[W word.Word](base []W, seq *uint256.Int, counterBits uint) []W {
	n := len(base)
	shift := totalBits[W](n) - counterBits
	shifted := new(uint256.Int).Lsh(seq, shift)
	combined := new(uint256.Int).Or(domainToInt(base), shifted)
	return intToDomain[W](combined, n)
}

// seqAtLimit reports whether seq has reached 2^counterBits, the exclusive
// upper bound on the sequence counter. When counterBits is 256 (the full
// width of a 4x64 domain) the limit is 2^256, which a uint256 cannot
// represent; seqAtLimit treats that case as unreachable instead of wrapping
// to zero.
func seqAtLimit(seq *uint256.Int, counterBits uint) bool {
	if counterBits >= 256 {
		return false
	}
	limit := new(uint256.Int).Lsh(uint256.NewInt(1), counterBits)
	return seq.Cmp(limit) >= 0
}
