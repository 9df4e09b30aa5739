// Copyright (c) 2024-2026 The random123 authors.
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

// Package random123 is the construction surface for counter-based
// pseudo-random engines built on the Threefry and Philox families. It
// wires word.Word, the threefry and philox packages, and engine.Engine
// together behind a small functional-options API, the way a caller would
// actually want to build one: pick a variant, supply a key or seed, and
// get back a ready-to-draw engine.
package random123

import (
	"errors"
	"fmt"

	"github.com/ctrprf/random123/engine"
	"github.com/ctrprf/random123/philox"
	"github.com/ctrprf/random123/threefry"
	"github.com/ctrprf/random123/word"
)

// DefaultCounterBits is the counter-bit reservation used when no
// WithCounterBits option is given. It mirrors the spec's own scalar-seed
// example (threefry-4x32, CounterBits=32): room for 2^32 blocks per stream,
// while leaving the lower words of the domain (and, for 64-bit words, the
// low half of the highest word) free for a caller-assigned base counter
// (e.g. a shard or thread index). With 32-bit words the whole highest word
// is reserved.
const DefaultCounterBits = 32

var (
	// ErrMissingKeyOrSeed is returned when neither WithKey nor WithSeed was
	// supplied to a constructor.
	ErrMissingKeyOrSeed = errors.New("random123: exactly one of WithKey or WithSeed is required")

	// ErrConflictingKeyAndSeed is returned when both WithKey and WithSeed
	// were supplied to the same constructor call.
	ErrConflictingKeyAndSeed = errors.New("random123: WithKey and WithSeed are mutually exclusive")
)

// Option configures a counter-based engine constructor.
type Option[W word.Word] func(*configOptions[W])

type configOptions[W word.Word] struct {
	key         []W
	haveKey     bool
	seed        uint64
	haveSeed    bool
	baseCounter []W
	rounds      int
	counterBits uint
}

// WithKey sets the full PRF key tuple. Its length must match the variant's
// KeyLen (N for threefry, N/2 for philox).
func WithKey[W word.Word](key []W) Option[W] {
	return func(c *configOptions[W]) {
		c.key = key
		c.haveKey = true
	}
}

// WithSeed sets a single scalar seed, placed in the lowest key word with
// the rest of the key zeroed. Mutually exclusive with WithKey.
func WithSeed[W word.Word](seed uint64) Option[W] {
	return func(c *configOptions[W]) {
		c.seed = seed
		c.haveSeed = true
	}
}

// WithBaseCounter sets the engine's base counter, whose reserved top
// CounterBits must be left zero. Defaults to all zero.
func WithBaseCounter[W word.Word](baseCounter []W) Option[W] {
	return func(c *configOptions[W]) {
		c.baseCounter = baseCounter
	}
}

// WithRounds overrides the PRF's round count. Zero or omitted selects the
// variant's own default (threefry.DefaultRounds or philox.DefaultRounds).
// Only the New<Family><N>x<W>Engine wrappers apply it; NewEngine keeps the
// round count of the PRF it is given.
func WithRounds[W word.Word](rounds int) Option[W] {
	return func(c *configOptions[W]) {
		c.rounds = rounds
	}
}

// WithCounterBits overrides the number of high domain bits reserved for the
// sequence counter. Defaults to DefaultCounterBits.
func WithCounterBits[W word.Word](bits uint) Option[W] {
	return func(c *configOptions[W]) {
		c.counterBits = bits
	}
}

func resolve[W word.Word](defaultCounterBits uint, opts []Option[W]) (*configOptions[W], error) {
	c := &configOptions[W]{counterBits: defaultCounterBits}
	for _, opt := range opts {
		opt(c)
	}
	if c.haveKey && c.haveSeed {
		return nil, ErrConflictingKeyAndSeed
	}
	if !c.haveKey && !c.haveSeed {
		return nil, ErrMissingKeyOrSeed
	}
	return c, nil
}

// roundsOf extracts a WithRounds override, if any, without running full
// validation: the convenience wrappers need the round count before they can
// construct the placeholder-keyed PRF that NewEngine then rekeys, so this
// peek happens ahead of (and independently from) NewEngine's own resolve.
func roundsOf[W word.Word](opts []Option[W]) int {
	c := &configOptions[W]{}
	for _, opt := range opts {
		opt(c)
	}
	return c.rounds
}

func build[W word.Word](prf engine.Prf[W], c *configOptions[W]) (*engine.Engine[W], error) {
	if c.haveSeed {
		return engine.NewSeeded[W](prf, c.seed, c.counterBits, c.baseCounter)
	}
	return engine.NewFromKey[W](prf, c.key, c.counterBits, c.baseCounter)
}

// NewEngine builds an engine directly from an already-constructed PRF,
// reserving counterBits high domain bits for the sequence counter unless a
// WithCounterBits option overrides it. It is the single constructor every
// New<Family><N>x<W>Engine convenience wrapper delegates to, generalizing
// the teacher's buildRuntimeConfig validate-then-freeze step from a nanoid
// alphabet/length pair onto a PRF/key/counter-bits triple.
func NewEngine[W word.Word](prf engine.Prf[W], counterBits int, opts ...Option[W]) (*engine.Engine[W], error) {
	c, err := resolve[W](uint(counterBits), opts)
	if err != nil {
		return nil, err
	}
	return build[W](prf, c)
}

// NewThreefry2x32Engine builds an engine over Threefry2[uint32].
func NewThreefry2x32Engine(opts ...Option[uint32]) (*engine.Engine[uint32], error) {
	prf, err := threefry.New2[uint32]([2]uint32{}, roundsOf(opts))
	if err != nil {
		return nil, fmt.Errorf("random123: %w", err)
	}
	return NewEngine[uint32](prf, DefaultCounterBits, opts...)
}

// NewThreefry4x32Engine builds an engine over Threefry4[uint32].
func NewThreefry4x32Engine(opts ...Option[uint32]) (*engine.Engine[uint32], error) {
	prf, err := threefry.New4[uint32]([4]uint32{}, roundsOf(opts))
	if err != nil {
		return nil, fmt.Errorf("random123: %w", err)
	}
	return NewEngine[uint32](prf, DefaultCounterBits, opts...)
}

// NewThreefry2x64Engine builds an engine over Threefry2[uint64].
func NewThreefry2x64Engine(opts ...Option[uint64]) (*engine.Engine[uint64], error) {
	prf, err := threefry.New2[uint64]([2]uint64{}, roundsOf(opts))
	if err != nil {
		return nil, fmt.Errorf("random123: %w", err)
	}
	return NewEngine[uint64](prf, DefaultCounterBits, opts...)
}

// NewThreefry4x64Engine builds an engine over Threefry4[uint64].
func NewThreefry4x64Engine(opts ...Option[uint64]) (*engine.Engine[uint64], error) {
	prf, err := threefry.New4[uint64]([4]uint64{}, roundsOf(opts))
	if err != nil {
		return nil, fmt.Errorf("random123: %w", err)
	}
	return NewEngine[uint64](prf, DefaultCounterBits, opts...)
}

// NewPhilox2x32Engine builds an engine over Philox2[uint32].
func NewPhilox2x32Engine(opts ...Option[uint32]) (*engine.Engine[uint32], error) {
	prf, err := philox.New2[uint32]([1]uint32{}, roundsOf(opts))
	if err != nil {
		return nil, fmt.Errorf("random123: %w", err)
	}
	return NewEngine[uint32](prf, DefaultCounterBits, opts...)
}

// NewPhilox4x32Engine builds an engine over Philox4[uint32].
func NewPhilox4x32Engine(opts ...Option[uint32]) (*engine.Engine[uint32], error) {
	prf, err := philox.New4[uint32]([2]uint32{}, roundsOf(opts))
	if err != nil {
		return nil, fmt.Errorf("random123: %w", err)
	}
	return NewEngine[uint32](prf, DefaultCounterBits, opts...)
}

// NewPhilox2x64Engine builds an engine over Philox2[uint64].
func NewPhilox2x64Engine(opts ...Option[uint64]) (*engine.Engine[uint64], error) {
	prf, err := philox.New2[uint64]([1]uint64{}, roundsOf(opts))
	if err != nil {
		return nil, fmt.Errorf("random123: %w", err)
	}
	return NewEngine[uint64](prf, DefaultCounterBits, opts...)
}

// NewPhilox4x64Engine builds an engine over Philox4[uint64].
func NewPhilox4x64Engine(opts ...Option[uint64]) (*engine.Engine[uint64], error) {
	prf, err := philox.New4[uint64]([2]uint64{}, roundsOf(opts))
	if err != nil {
		return nil, fmt.Errorf("random123: %w", err)
	}
	return NewEngine[uint64](prf, DefaultCounterBits, opts...)
}

// Must panics if err is non-nil and otherwise returns e. It simplifies
// initializing package-level engines from a fixed seed at startup.
func Must[W word.Word](e *engine.Engine[W], err error) *engine.Engine[W] {
	if err != nil {
		panic(err)
	}
	return e
}

// MustEngine panics if err is non-nil and otherwise returns e. It is the
// NewEngine-specific counterpart to Must, mirroring the teacher's
// Must/MustWithLength pair: one wraps the general constructor, the other
// the convenience path.
func MustEngine[W word.Word](e *engine.Engine[W], err error) *engine.Engine[W] {
	if err != nil {
		panic(err)
	}
	return e
}
