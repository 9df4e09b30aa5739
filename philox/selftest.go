// Copyright (c) 2024-2026 The random123 authors.
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package philox

import (
	"fmt"

	"github.com/ctrprf/random123/word"
)

// SelfTest re-derives the bundled Random123 reference vector for
// philox-4x32, R=10, key={0,0}, input={0,0,0,0}, and cross-checks every
// other variant's Apply against its own Block on an arbitrary input for
// internal consistency. It is never run automatically; callers that want a
// runtime bit-exactness check call it explicitly.
//
// Only the 4x32 vector above is checked against an independently known
// answer; reference vectors for the other three variants are not bundled
// here, so their check is limited to Apply/Block agreement rather than a
// numeric known-answer comparison.
func SelfTest() error {
	kat, err := New4[uint32]([2]uint32{0, 0}, 10)
	if err != nil {
		return fmt.Errorf("philox: selftest: %w", err)
	}
	want := [4]uint32{0x6627E8D5, 0xE169C58D, 0xBC57AC4C, 0x9B00DBD8}
	got := kat.Block([4]uint32{0, 0, 0, 0})
	if got != want {
		return fmt.Errorf("philox4x32: selftest mismatch: got %x, want %x", got, want)
	}

	p2x32, err := New2[uint32]([1]uint32{7}, 0)
	if err != nil {
		return fmt.Errorf("philox: selftest: %w", err)
	}
	if err := check2(p2x32, [2]uint32{5, 6}, "philox2x32"); err != nil {
		return err
	}

	p2x64, err := New2[uint64]([1]uint64{7}, 0)
	if err != nil {
		return fmt.Errorf("philox: selftest: %w", err)
	}
	if err := check2(p2x64, [2]uint64{5, 6}, "philox2x64"); err != nil {
		return err
	}

	p4x64, err := New4[uint64]([2]uint64{7, 8}, 0)
	if err != nil {
		return fmt.Errorf("philox: selftest: %w", err)
	}
	if err := check4(p4x64, [4]uint64{5, 6, 7, 8}, "philox4x64"); err != nil {
		return err
	}
	return nil
}

func check2[W word.Word](prf Philox2[W], in [2]W, name string) error {
	block := prf.Block(in)
	applied := prf.Apply([]W{in[0], in[1]})
	if applied[0] != block[0] || applied[1] != block[1] {
		return fmt.Errorf("%s: selftest: Apply disagrees with Block", name)
	}
	return nil
}

func check4[W word.Word](prf Philox4[W], in [4]W, name string) error {
	block := prf.Block(in)
	applied := prf.Apply([]W{in[0], in[1], in[2], in[3]})
	for i := range block {
		if applied[i] != block[i] {
			return fmt.Errorf("%s: selftest: Apply disagrees with Block", name)
		}
	}
	return nil
}
