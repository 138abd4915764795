// SPDX-License-Identifier: MIT
package app

// TraceWindow returns the leading len(samples)/divisor samples. When that is
// fewer than need, the samples a reducer requires for the current point
// count, the whole track is returned instead.
func TraceWindow(samples []int16, divisor, need int) []int16 {
	n := len(samples)
	if divisor > 1 && n/divisor >= need {
		n /= divisor
	}
	return samples[:n]
}
