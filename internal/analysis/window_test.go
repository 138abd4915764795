// SPDX-License-Identifier: MIT
package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWindowFunc(t *testing.T) {
	tests := []struct {
		name    string
		want    WindowFunc
		wantErr bool
	}{
		{"hann", Hann, false},
		{"Hanning", Hann, false},
		{"BLACKMAN", Blackman, false},
		{"blackmannuttall", BlackmanNuttall, false},
		{" hamming ", Hamming, false},
		{"nuttall", Nuttall, false},
		{"triangle", Hann, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseWindowFunc(tt.name)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestWindowFuncString(t *testing.T) {
	assert.Equal(t, "lanczos", Lanczos.String())
	assert.Equal(t, "WindowFunc(42)", WindowFunc(42).String())
}

func TestApplyWindow(t *testing.T) {
	for _, w := range []WindowFunc{BartlettHann, Blackman, BlackmanNuttall, Hann, Hamming, Lanczos, Nuttall, WindowFunc(99)} {
		t.Run(w.String(), func(t *testing.T) {
			coeffs := make([]float64, 64)
			applyWindow(coeffs, w)
			for i, c := range coeffs {
				if c < -1e-9 || c > 1+1e-9 {
					t.Errorf("coefficient %d = %f out of [0, 1]", i, c)
				}
			}
			// Every window tapers towards the frame edges.
			assert.Less(t, coeffs[0], coeffs[32])
		})
	}
}
