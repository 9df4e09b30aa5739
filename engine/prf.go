// Copyright (c) 2024-2026 The random123 authors.
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package engine

import "github.com/ctrprf/random123/word"

// Prf is the narrow contract the counter-based engine needs from a
// pseudo-random function. threefry.Threefry2[W]/Threefry4[W] and
// philox.Philox2[W]/Philox4[W] all satisfy it, and neither of those packages
// imports the other: each depends only on word and engine, so a caller can
// link in just the PRF family it needs.
type Prf[W word.Word] interface {
	// N returns the domain/range element count (2 or 4).
	N() int

	// KeyLen returns the key tuple length (N for threefry, N/2 for philox).
	KeyLen() int

	// Apply evaluates the PRF on a domain block of length N, returning a
	// freshly allocated range block of length N. Apply is pure: it never
	// mutates domain and always returns the same output for the same
	// (key, domain) pair.
	Apply(domain []W) []W

	// Key returns a copy of the current key.
	Key() []W

	// WithKey returns a copy of the PRF with a new key, validated against
	// the engine's reserved-bit requirement. The original is unchanged.
	WithKey(key []W) (Prf[W], error)
}
