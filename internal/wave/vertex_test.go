// SPDX-License-Identifier: MIT
package wave

import (
	"testing"
)

func TestBuildLayout(t *testing.T) {
	var b VertexBuilder
	amps := []float32{0.1, -0.2, 0.3, -0.4}

	v := b.Build(amps)
	if len(v) != 4*len(amps) {
		t.Fatalf("len = %d, want %d", len(v), 4*len(amps))
	}

	wantX := []float32{-1, -0.5, 0, 0.5}
	for i := range amps {
		seg := v[i*FloatsPerPoint : (i+1)*FloatsPerPoint]
		if seg[0] != wantX[i] || seg[2] != wantX[i] {
			t.Errorf("point %d x = (%f, %f), want %f", i, seg[0], seg[2], wantX[i])
		}
		if seg[1] != 0 {
			t.Errorf("point %d bottom y = %f, want 0", i, seg[1])
		}
		if seg[3] != amps[i] {
			t.Errorf("point %d top y = %f, want %f", i, seg[3], amps[i])
		}
	}
}

func TestBuildOddPointCountUsesIntegerHalf(t *testing.T) {
	var b VertexBuilder
	// M=5 -> M/2 = 2, x = i/2 - 1.
	v := b.Build(make([]float32, 5))

	want := []float32{-1, -0.5, 0, 0.5, 1}
	for i, x := range want {
		if v[i*FloatsPerPoint] != x {
			t.Errorf("point %d x = %f, want %f", i, v[i*FloatsPerPoint], x)
		}
	}
}

func TestBuildSinglePoint(t *testing.T) {
	var b VertexBuilder
	v := b.Build([]float32{0.5})
	if v[0] != -1 || v[3] != 0.5 {
		t.Errorf("single point = %v", v)
	}
}

func TestBuildIdempotent(t *testing.T) {
	var b VertexBuilder
	amps := []float32{0.25, 0.5, 0.75, 1, -1, 0}

	first := append([]float32(nil), b.Build(amps)...)
	second := b.Build(amps)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("float %d differs between builds: %f != %f", i, first[i], second[i])
		}
	}
}

func TestBuildReusesStorage(t *testing.T) {
	var b VertexBuilder
	amps := make([]float32, 100)

	first := b.Build(amps)
	second := b.Build(amps)
	if &first[0] != &second[0] {
		t.Error("storage should be reused for an unchanged point count")
	}

	third := b.Build(make([]float32, 50))
	if len(third) != 200 || b.Len() != 200 {
		t.Errorf("len after resize = %d, want 200", len(third))
	}

	allocs := testing.AllocsPerRun(100, func() {
		_ = b.Build(amps[:50])
	})
	if allocs > 0 {
		t.Errorf("Expected zero allocations for an unchanged point count, got %.1f", allocs)
	}
}
