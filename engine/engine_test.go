// Copyright (c) 2024-2026 The random123 authors.
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package engine

import (
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"

	"github.com/ctrprf/random123/threefry"
)

func newThreefry4x32(t *testing.T) Prf[uint32] {
	t.Helper()
	prf, err := threefry.New4[uint32]([4]uint32{0, 0, 0, 0}, threefry.DefaultRounds)
	assert.NoError(t, err)
	return prf
}

// TestEngineScenarioC reproduces the spec's scalar-seed scenario: with
// CounterBits=32 and an all-zero base counter, the first four draws equal
// PRF(key, {0,0,0,0}) and the fifth draw equals the first word of
// PRF(key, {0,0,0,1}).
func TestEngineScenarioC(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	prf, err := threefry.New4[uint32]([4]uint32{1, 0, 0, 0}, threefry.DefaultRounds)
	is.NoError(err)

	e, err := NewFromPrf[uint32](prf, 32, nil)
	is.NoError(err)

	block0 := prf.Apply([]uint32{0, 0, 0, 0})
	for i := 0; i < 4; i++ {
		v, err := e.Next()
		is.NoError(err)
		is.Equal(block0[i], v)
	}

	block1 := prf.Apply([]uint32{0, 0, 0, 1})
	v, err := e.Next()
	is.NoError(err)
	is.Equal(block1[0], v)
}

// TestEngineDiscardEquivalence is testable property 4: discarding d words is
// equivalent to drawing and dropping d words one at a time.
func TestEngineDiscardEquivalence(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	prf1 := newThreefry4x32(t)
	e1, err := NewFromPrf[uint32](prf1, 40, []uint32{0, 0, 0, 0})
	is.NoError(err)

	prf2 := newThreefry4x32(t)
	e2, err := NewFromPrf[uint32](prf2, 40, []uint32{0, 0, 0, 0})
	is.NoError(err)

	const d = 10_007
	for i := 0; i < d; i++ {
		_, err := e1.Next()
		is.NoError(err)
	}
	e2.DiscardUint64(d)

	is.True(e1.Equal(e2), "stepwise draws and a single discard must reach the same state")

	for i := 0; i < 5; i++ {
		a, errA := e1.Next()
		b, errB := e2.Next()
		is.NoError(errA)
		is.NoError(errB)
		is.Equal(a, b)
	}
}

// TestEngineSerializationRoundTrip is testable property 6.
func TestEngineSerializationRoundTrip(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	prf := newThreefry4x32(t)
	e, err := NewFromPrf[uint32](prf, 40, []uint32{0, 0, 0, 0})
	is.NoError(err)

	for i := 0; i < 7; i++ {
		_, err := e.Next()
		is.NoError(err)
	}

	text, err := e.MarshalText()
	is.NoError(err)

	restoredPrf := newThreefry4x32(t)
	restored, err := NewFromPrf[uint32](restoredPrf, 40, nil)
	is.NoError(err)
	is.NoError(restored.UnmarshalText(text))

	is.True(e.Equal(restored))

	for i := 0; i < 5; i++ {
		a, errA := e.Next()
		b, errB := restored.Next()
		is.NoError(errA)
		is.NoError(errB)
		is.Equal(a, b)
	}
}

// TestEngineReservedBaseCounterRejected is testable property 7.
func TestEngineReservedBaseCounterRejected(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	prf := newThreefry4x32(t)
	_, err := NewFromPrf[uint32](prf, 32, []uint32{0, 0, 0, 1})
	is.ErrorIs(err, ErrBaseCounterOverlapsReserved)
	is.ErrorIs(err, ErrOutOfRange, "reserved-bit overlap must be classifiable as the OutOfRange kind")

	_, err = NewFromPrf[uint32](prf, 32, []uint32{0, 0, 1, 0})
	is.NoError(err, "a base counter word below the reserved region is fine")
}

// TestEngineErrOutOfRangeCoversEveryConstructionFailure checks that every
// documented construction failure path (wrong-length base counter, invalid
// CounterBits, reserved-bit overlap, and a PRF rejecting a key for its own
// reserved-bit reasons) is classifiable via errors.Is(err, ErrOutOfRange).
func TestEngineErrOutOfRangeCoversEveryConstructionFailure(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	prf := newThreefry4x32(t)

	_, err := NewFromPrf[uint32](prf, 32, []uint32{0, 0, 0})
	is.ErrorIs(err, ErrOutOfRange)
	is.ErrorIs(err, ErrWrongLength)

	_, err = NewFromPrf[uint32](prf, 0, nil)
	is.ErrorIs(err, ErrOutOfRange)
	is.ErrorIs(err, ErrInvalidCounterBits)

	_, err = NewFromPrf[uint32](prf, 32, []uint32{0, 0, 0, 1})
	is.ErrorIs(err, ErrOutOfRange)
	is.ErrorIs(err, ErrBaseCounterOverlapsReserved)

	_, err = NewFromKey[uint32](prf, []uint32{0, 0, 0, 1 << 30}, 32, nil)
	is.ErrorIs(err, ErrOutOfRange)
}

// TestEngineExhaustion is testable property 8: an engine with a small
// counter space produces exactly N*2^CounterBits words, then fails.
func TestEngineExhaustion(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	prf, err := threefry.New2[uint32]([2]uint32{0, 0}, threefry.DefaultRounds)
	is.NoError(err)

	const counterBits = 3 // 2 * 2^3 = 16 total words
	e, err := NewFromPrf[uint32](prf, counterBits, nil)
	is.NoError(err)

	for i := 0; i < 16; i++ {
		_, err := e.Next()
		is.NoErrorf(err, "draw %d should succeed", i)
	}

	is.True(e.Exhausted())
	_, err = e.Next()
	is.ErrorIs(err, ErrExhausted)
}

// TestEngineDiscardPastExhaustionSucceeds matches the spec's documented
// deviation: Discard never fails, even when it lands past the counter
// space's end; only a subsequent Next call observes the exhaustion.
func TestEngineDiscardPastExhaustionSucceeds(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	prf, err := threefry.New2[uint32]([2]uint32{0, 0}, threefry.DefaultRounds)
	is.NoError(err)

	const counterBits = 3
	e, err := NewFromPrf[uint32](prf, counterBits, nil)
	is.NoError(err)

	is.NotPanics(func() { e.DiscardUint64(1_000_000) })
	is.True(e.Exhausted())
	_, err = e.Next()
	is.ErrorIs(err, ErrExhausted)
}

// TestEngineRestart verifies Restart returns an engine to its fresh state
// while preserving key, counter-bit reservation and base counter.
func TestEngineRestart(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	prf := newThreefry4x32(t)
	e, err := NewFromPrf[uint32](prf, 40, []uint32{0, 0, 0, 0})
	is.NoError(err)

	fresh, err := NewFromPrf[uint32](newThreefry4x32(t), 40, []uint32{0, 0, 0, 0})
	is.NoError(err)

	for i := 0; i < 50; i++ {
		_, err := e.Next()
		is.NoError(err)
	}
	e.Restart()
	is.True(e.Equal(fresh))
}

// TestEngineSeededKeyPlacement verifies NewSeeded places the scalar seed in
// the lowest key word and zeros the rest.
func TestEngineSeededKeyPlacement(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	prf := newThreefry4x32(t)
	e, err := NewSeeded[uint32](prf, 7, 32, nil)
	is.NoError(err)
	is.Equal([]uint32{7, 0, 0, 0}, e.Key())
}

// TestEngineDiscardZeroIsNoop confirms discarding zero words leaves state
// untouched.
func TestEngineDiscardZeroIsNoop(t *testing.T) {
	t.Parallel()
	is := assert.New(t)

	prf := newThreefry4x32(t)
	e, err := NewFromPrf[uint32](prf, 40, nil)
	is.NoError(err)

	for i := 0; i < 3; i++ {
		_, err := e.Next()
		is.NoError(err)
	}
	before, err := e.MarshalText()
	is.NoError(err)
	e.Discard(uint256.NewInt(0))
	after, err := e.MarshalText()
	is.NoError(err)
	is.Equal(before, after)
}
