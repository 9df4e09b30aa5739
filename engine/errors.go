// Copyright (c) 2024-2026 The random123 authors.
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package engine

import "errors"

// ErrOutOfRange is the sentinel error *kind* wrapping every construction
// failure rooted in a caller-supplied value being outside the range the
// engine can accept: a wrong-length tuple, a base counter overlapping the
// reserved counter region, an invalid CounterBits, or a PRF rejecting a key
// for its own reserved-bit reasons. Callers that only care whether
// construction failed because of bad input, not which of those four things
// was wrong, can check `errors.Is(err, ErrOutOfRange)`.
var ErrOutOfRange = errors.New("engine: value out of range")

// ErrWrongLength is returned when a caller-supplied base counter does not
// match the PRF's domain length. A key of the wrong length is rejected by the
// PRF's own WithKey, with that PRF package's ErrWrongLength wrapped in
// ErrOutOfRange.
var ErrWrongLength = errors.New("engine: wrong tuple length")

// ErrBaseCounterOverlapsReserved is returned when a caller-supplied base
// counter has nonzero bits inside the region CounterBits reserves for the
// sequence counter.
var ErrBaseCounterOverlapsReserved = errors.New("engine: base counter overlaps the reserved counter region")

// ErrInvalidCounterBits is returned when CounterBits is zero or exceeds the
// domain's total bit width.
var ErrInvalidCounterBits = errors.New("engine: counter bits out of range")

// ErrExhausted is returned by Next once the engine has produced
// every word its counter space can address.
var ErrExhausted = errors.New("engine: counter space exhausted")

// ErrMalformedStream is returned by UnmarshalText when the serialized
// representation is not well-formed.
var ErrMalformedStream = errors.New("engine: malformed serialized stream")
