// Copyright (c) 2024-2026 The random123 authors.
//
// This source code is licensed under the Apache 2.0 License found in the
// LICENSE file in the root directory of this source tree.

package philox

import "testing"

func BenchmarkPhilox2x32Apply(b *testing.B) {
	b.ReportAllocs()
	prf, err := New2[uint32]([1]uint32{1}, DefaultRounds)
	if err != nil {
		b.Fatalf("failed to construct prf: %v", err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = prf.Apply([]uint32{uint32(i), uint32(i + 1)})
	}
}

func BenchmarkPhilox4x32Apply(b *testing.B) {
	b.ReportAllocs()
	prf, err := New4[uint32]([2]uint32{1, 2}, DefaultRounds)
	if err != nil {
		b.Fatalf("failed to construct prf: %v", err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = prf.Apply([]uint32{uint32(i), uint32(i + 1), uint32(i + 2), uint32(i + 3)})
	}
}

func BenchmarkPhilox2x64Apply(b *testing.B) {
	b.ReportAllocs()
	prf, err := New2[uint64]([1]uint64{1}, DefaultRounds)
	if err != nil {
		b.Fatalf("failed to construct prf: %v", err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = prf.Apply([]uint64{uint64(i), uint64(i + 1)})
	}
}

func BenchmarkPhilox4x64Apply(b *testing.B) {
	b.ReportAllocs()
	prf, err := New4[uint64]([2]uint64{1, 2}, DefaultRounds)
	if err != nil {
		b.Fatalf("failed to construct prf: %v", err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = prf.Apply([]uint64{uint64(i), uint64(i + 1), uint64(i + 2), uint64(i + 3)})
	}
}
