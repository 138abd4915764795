// SPDX-License-Identifier: MIT
package render

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/mock"
)

// countingDevice records every call that touches GPU objects.
type countingDevice struct {
	next        uint32
	live        map[uint32]string // Live object name -> kind.
	genBuffers  int
	genArrays   int
	deletes     int
	allocations []int // Bytes per AllocateBuffer call.
	uploads     [][]float32
	draws       []int // Vertex count per DrawLines call.
	widths      []float32
	color       mgl32.Vec3
	transform   mgl32.Mat4
	depthOff    bool
	programs    int
}

func newCountingDevice() *countingDevice {
	return &countingDevice{live: make(map[uint32]string)}
}

func (d *countingDevice) gen(kind string) uint32 {
	d.next++
	d.live[d.next] = kind
	return d.next
}

func (d *countingDevice) del(name uint32) {
	if name == 0 {
		return
	}
	delete(d.live, name)
	d.deletes++
}

func (d *countingDevice) CompileShader(ShaderKind, string) (uint32, error) { return d.gen("shader"), nil }
func (d *countingDevice) DeleteShader(s uint32)                         { d.del(s) }
func (d *countingDevice) LinkProgram(uint32, uint32) (uint32, error) {
	d.programs++
	return d.gen("program"), nil
}
func (d *countingDevice) UseProgram(uint32)                          {}
func (d *countingDevice) DeleteProgram(p uint32)                     { d.del(p) }
func (d *countingDevice) AttribLocation(uint32, string) int32         { return 0 }
func (d *countingDevice) UniformLocation(_ uint32, name string) int32 { return int32(len(name)) }
func (d *countingDevice) Uniform1f(_ int32, v float32)               { d.widths = append(d.widths, v) }
func (d *countingDevice) Uniform3f(_ int32, v mgl32.Vec3)             { d.color = v }
func (d *countingDevice) UniformMatrix4(_ int32, m mgl32.Mat4)        { d.transform = m }
func (d *countingDevice) DisableDepth()                              { d.depthOff = true }
func (d *countingDevice) GenBuffer() uint32 {
	d.genBuffers++
	return d.gen("buffer")
}
func (d *countingDevice) DeleteBuffer(b uint32) { d.del(b) }
func (d *countingDevice) GenVertexArray() uint32 {
	d.genArrays++
	return d.gen("array")
}
func (d *countingDevice) DeleteVertexArray(v uint32)            { d.del(v) }
func (d *countingDevice) AllocateBuffer(_ uint32, sizeBytes int) { d.allocations = append(d.allocations, sizeBytes) }
func (d *countingDevice) UploadBuffer(_ uint32, data []float32) {
	d.uploads = append(d.uploads, append([]float32(nil), data...))
}
func (d *countingDevice) BindVertexLayout(uint32, uint32, int32, int) {}
func (d *countingDevice) DrawLines(_ uint32, vertices int)           { d.draws = append(d.draws, vertices) }

// liveKinds counts live objects per kind.
func (d *countingDevice) liveKinds() map[string]int {
	out := make(map[string]int)
	for _, k := range d.live {
		out[k]++
	}
	return out
}

// mockDevice is used where call expectations matter more than counts.
type mockDevice struct {
	mock.Mock
}

func (m *mockDevice) CompileShader(kind ShaderKind, source string) (uint32, error) {
	args := m.Called(kind, source)
	return args.Get(0).(uint32), args.Error(1)
}
func (m *mockDevice) DeleteShader(s uint32) { m.Called(s) }
func (m *mockDevice) LinkProgram(vs, fs uint32) (uint32, error) {
	args := m.Called(vs, fs)
	return args.Get(0).(uint32), args.Error(1)
}
func (m *mockDevice) UseProgram(p uint32)    { m.Called(p) }
func (m *mockDevice) DeleteProgram(p uint32) { m.Called(p) }
func (m *mockDevice) AttribLocation(p uint32, name string) int32 {
	return int32(m.Called(p, name).Int(0))
}
func (m *mockDevice) UniformLocation(p uint32, name string) int32 {
	return int32(m.Called(p, name).Int(0))
}
func (m *mockDevice) Uniform1f(loc int32, v float32)         { m.Called(loc, v) }
func (m *mockDevice) Uniform3f(loc int32, v mgl32.Vec3)      { m.Called(loc, v) }
func (m *mockDevice) UniformMatrix4(loc int32, v mgl32.Mat4) { m.Called(loc, v) }
func (m *mockDevice) DisableDepth()                          { m.Called() }
func (m *mockDevice) GenBuffer() uint32                      { return m.Called().Get(0).(uint32) }
func (m *mockDevice) DeleteBuffer(b uint32)                  { m.Called(b) }
func (m *mockDevice) GenVertexArray() uint32                 { return m.Called().Get(0).(uint32) }
func (m *mockDevice) DeleteVertexArray(v uint32)             { m.Called(v) }
func (m *mockDevice) AllocateBuffer(b uint32, size int)      { m.Called(b, size) }
func (m *mockDevice) UploadBuffer(b uint32, data []float32)  { m.Called(b, data) }
func (m *mockDevice) BindVertexLayout(vao, b uint32, attrib int32, components int) {
	m.Called(vao, b, attrib, components)
}
func (m *mockDevice) DrawLines(vao uint32, vertices int) { m.Called(vao, vertices) }
