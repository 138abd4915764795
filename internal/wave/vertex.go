// SPDX-License-Identifier: MIT
package wave

// Vertex layout shared with the GPU side.
const (
	CoordsPerVertex  = 2                                   // x, y
	VerticesPerPoint = 2                                   // Bottom anchor and sample height.
	FloatsPerPoint   = CoordsPerVertex * VerticesPerPoint // 4
)

// VertexBuilder lays out reduced amplitudes as vertical line segments. Its
// storage is reallocated only when the point count changes.
type VertexBuilder struct {
	buf []float32
}

// Build returns 4*len(amplitudes) floats: for point i, the segment (x,0)-(x,a[i])
// with x = i/(M/2) - 1. M/2 is an integer division, so for odd M the step is
// 1/floor(M/2) and the last point lands exactly on x = 1.
//
// The returned slice aliases the builder's storage and is overwritten by the next
// call.
func (b *VertexBuilder) Build(amplitudes []float32) []float32 {
	m := len(amplitudes)
	if len(b.buf) != m*FloatsPerPoint {
		b.buf = make([]float32, m*FloatsPerPoint)
	}

	half := float32(m / 2)
	if half == 0 {
		// A single point would divide by zero; pin it to the left edge.
		half = 1
	}

	for i, a := range amplitudes {
		x := float32(i)/half - 1
		v := b.buf[i*FloatsPerPoint : (i+1)*FloatsPerPoint]
		v[0], v[1] = x, 0
		v[2], v[3] = x, a
	}
	return b.buf
}

// Len returns the number of floats held by the builder.
func (b *VertexBuilder) Len() int {
	return len(b.buf)
}
