// SPDX-License-Identifier: MIT
package utils

import (
	"math"
	"os"
	"testing"
)

const (
	testSize       = 1024
	testSampleRate = 44100
	testFrequency  = 440.0 // A4 note
)

var testPeaked []float32

func TestMain(m *testing.M) {
	testPeaked = make([]float32, testSize)

	// A "hill" with its top at testSize/4.
	for i := range testPeaked {
		testPeaked[i] = float32(math.Exp(-0.01 * math.Pow(float64(i-testSize/4), 2)))
	}

	os.Exit(m.Run())
}

func TestGenerateComplexWave16(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		sampleRate float64
	}{
		{"Standard", 1024, 44100},
		{"Small", 16, 8000},
		{"Large", 8192, 96000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GenerateComplexWave16(tt.size, tt.sampleRate)

			if len(result) != tt.size {
				t.Errorf("GenerateComplexWave16() buffer size = %d, want %d", len(result), tt.size)
			}

			hasNonZero := false
			for _, v := range result {
				if v != 0 {
					hasNonZero = true
					break
				}
			}
			if !hasNonZero {
				t.Errorf("GenerateComplexWave16() produced all zeros")
			}
		})
	}
}

func TestGenerateSineWave16(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		sampleRate float64
		frequency  float64
	}{
		{"A4 Note", 1024, 44100, 440.0},
		{"Middle C", 1024, 44100, 261.63},
		{"High Sample Rate", 1024, 192000, 440.0},
		{"Low Sample Rate", 1024, 8000, 440.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := GenerateSineWave16(tt.size, tt.sampleRate, tt.frequency)

			if len(result) != tt.size {
				t.Errorf("GenerateSineWave16() buffer size = %d, want %d", len(result), tt.size)
			}

			samplesPerCycle := tt.sampleRate / tt.frequency
			if samplesPerCycle > 2 && float64(tt.size) > samplesPerCycle {
				crossCount := 0
				for i := 1; i < tt.size; i++ {
					if (result[i-1] < 0 && result[i] >= 0) ||
						(result[i-1] >= 0 && result[i] < 0) {
						crossCount++
					}
				}

				// Two crossings per cycle, 20% margin for phase alignment.
				expectedCrossings := float64(tt.size) / (samplesPerCycle / 2)
				tolerance := 0.2 * expectedCrossings

				if math.Abs(float64(crossCount)-expectedCrossings) > tolerance {
					t.Errorf("GenerateSineWave16() zero crossings = %d, expected approximately %.1f±%.1f",
						crossCount, expectedCrossings, tolerance)
				}
			}

			for _, v := range result {
				if math.Abs(float64(v)) > math.MaxInt16*0.9+1 {
					t.Fatalf("sample %d exceeds 90%% of full scale", v)
				}
			}
		})
	}
}

func TestInterleave(t *testing.T) {
	left := []int16{1, 2, 3}
	right := []int16{-1, -2, -3}

	got := Interleave(left, right)
	want := []int16{1, -1, 2, -2, 3, -3}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %d, want %d", i, got[i], want[i])
		}
	}

	if Interleave() != nil {
		t.Error("Interleave() with no channels should be nil")
	}
}

func TestFindPeakIndex(t *testing.T) {
	tests := []struct {
		name     string
		values   []float32
		start    int
		end      int
		expected int
	}{
		{"Full Range", testPeaked, 0, testSize - 1, testSize / 4},
		{"Partial Range Start", testPeaked, testSize / 8, testSize - 1, testSize / 4},
		{"Partial Range End", testPeaked, 0, testSize / 3, testSize / 4},
		{"Negative Start", testPeaked, -10, testSize - 1, testSize / 4},
		{"Out of Range End", testPeaked, 0, testSize * 2, testSize / 4},
		{"Empty Slice", []float32{}, 0, 10, 0},
		{"Single Value", []float32{1.0}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := FindPeakIndex(tt.values, tt.start, tt.end); result != tt.expected {
				t.Errorf("FindPeakIndex() = %d, want %d", result, tt.expected)
			}
		})
	}

	allocs := testing.AllocsPerRun(100, func() {
		FindPeakIndex(testPeaked, 0, len(testPeaked)-1)
	})
	if allocs > 0 {
		t.Errorf("FindPeakIndex allocated memory: got %.1f allocs, want 0", allocs)
	}
}

func BenchmarkGenerateSineWave16(b *testing.B) {
	benchmarks := []struct {
		name string
		size int
	}{
		{"Small", 64},
		{"Standard", 1024},
		{"Large", 8192},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			b.ReportAllocs()
			b.ResetTimer()

			for b.Loop() {
				GenerateSineWave16(bm.size, testSampleRate, testFrequency)
			}
		})
	}
}
