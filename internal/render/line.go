// SPDX-License-Identifier: MIT
package render

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"soundsystem/internal/log"
	"soundsystem/internal/wave"
)

const floatSize = 4 // bytes

// Default uniform values.
var (
	DefaultColor = mgl32.Vec3{0.63671875, 0.76953125, 0.22265625}
	DefaultWidth = float32(540)
)

// Reducer turns raw samples into per-point amplitudes. Both wave.Reducer and
// analysis.SpectrumReducer satisfy it.
type Reducer interface {
	Reduce(dst []float32, samples []int16, points int) ([]float32, error)
	MinSamples(points int) int
}

// Options configures the line program.
type Options struct {
	Color     mgl32.Vec3
	Width     float32    // Surface width in pixels, used by the colour ramp.
	Transform mgl32.Mat4 // Applied to every vertex.
}

// DefaultOptions returns the stock colour, a 540px ramp and no transform.
func DefaultOptions() Options {
	return Options{
		Color:     DefaultColor,
		Width:     DefaultWidth,
		Transform: mgl32.Ident4(),
	}
}

// gpuState tracks which GPU objects exist. It is either uninitialized or
// allocated; there is never more than one live buffer/array pair.
type gpuState interface {
	isGPUState()
}

type uninitialized struct{}

type allocated struct {
	vbo, vao uint32
	floats   int // Storage size the buffer was allocated for.
}

func (uninitialized) isGPUState() {}
func (allocated) isGPUState()     {}

// Line owns the trace's program, vertex buffer and vertex array. It must be
// created, fed and drawn on the goroutine that owns the GL context.
type Line struct {
	dev       Device
	reducer   Reducer
	program   uint32
	attrib    int32
	widthLoc  int32
	state     gpuState
	builder   wave.VertexBuilder
	amps      []float32 // Reducer output, reused between calls.
	vertices  []float32 // Latest vertex data, aliases builder storage.
	dirty     bool      // vertices have not been uploaded yet.
	closed    bool
	uploads   int
	allocates int
}

// NewLine compiles and links the line program once, sets its uniforms and
// disables depth testing. Shader and link failures are returned wrapped in
// ErrShaderCompile and ErrLink; nothing is retried afterwards.
func NewLine(dev Device, reducer Reducer, opts Options) (*Line, error) {
	program, err := buildProgram(dev)
	if err != nil {
		return nil, err
	}

	dev.UseProgram(program)
	dev.DisableDepth()

	l := &Line{
		dev:      dev,
		reducer:  reducer,
		program:  program,
		attrib:   dev.AttribLocation(program, attribPosition),
		widthLoc: dev.UniformLocation(program, uniformWidth),
		state:    uninitialized{},
	}
	dev.Uniform3f(dev.UniformLocation(program, uniformColor), opts.Color)
	dev.Uniform1f(l.widthLoc, opts.Width)
	dev.UniformMatrix4(dev.UniformLocation(program, uniformTransform), opts.Transform)

	log.Debugf("Line: program %d ready (attrib %d)", program, l.attrib)
	return l, nil
}

func buildProgram(dev Device) (uint32, error) {
	vs, err := dev.CompileShader(VertexShader, vertexShaderSource)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrShaderCompile, VertexShader, err)
	}
	defer dev.DeleteShader(vs)

	fs, err := dev.CompileShader(FragmentShader, fragmentShaderSource)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrShaderCompile, FragmentShader, err)
	}
	defer dev.DeleteShader(fs)

	program, err := dev.LinkProgram(vs, fs)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrLink, err)
	}
	return program, nil
}

// DrawData reduces samples to points amplitudes and stages the resulting
// vertices for the next Draw. Calling it again with the same input produces
// the same vertices. On error the previously staged data is kept.
func (l *Line) DrawData(samples []int16, points int) error {
	if l.closed {
		return ErrClosed
	}
	amps, err := l.reducer.Reduce(l.amps, samples, points)
	if err != nil {
		return err
	}
	l.amps = amps
	l.vertices = l.builder.Build(amps)
	l.dirty = true
	return nil
}

// Draw uploads pending vertex data if any and issues one line-list draw. It is
// a no-op before the first DrawData and after Close.
func (l *Line) Draw() {
	if l.closed || len(l.vertices) == 0 {
		return
	}

	switch s := l.state.(type) {
	case uninitialized:
		l.state = l.allocate(len(l.vertices))
	case allocated:
		if s.floats != len(l.vertices) {
			l.release()
			l.state = l.allocate(len(l.vertices))
		}
	}

	gpu := l.state.(allocated)
	if l.dirty {
		l.dev.UploadBuffer(gpu.vbo, l.vertices)
		l.dirty = false
		l.uploads++
	}

	l.dev.UseProgram(l.program)
	l.dev.DrawLines(gpu.vao, gpu.floats/wave.CoordsPerVertex)
}

func (l *Line) allocate(floats int) allocated {
	log.Debugf("Line: allocating vertex buffer for %d floats", floats)
	gpu := allocated{
		vbo:    l.dev.GenBuffer(),
		vao:    l.dev.GenVertexArray(),
		floats: floats,
	}
	l.dev.AllocateBuffer(gpu.vbo, floats*floatSize)
	l.dev.BindVertexLayout(gpu.vao, gpu.vbo, l.attrib, wave.CoordsPerVertex)
	l.allocates++
	return gpu
}

// release destroys the buffer/array pair if one exists.
func (l *Line) release() {
	if gpu, ok := l.state.(allocated); ok {
		l.dev.DeleteBuffer(gpu.vbo)
		l.dev.DeleteVertexArray(gpu.vao)
	}
	l.state = uninitialized{}
}

// Resize updates the width used by the colour ramp.
func (l *Line) Resize(width float32) {
	if l.closed || width <= 0 {
		return
	}
	l.dev.UseProgram(l.program)
	l.dev.Uniform1f(l.widthLoc, width)
}

// MinSamples returns the fewest samples DrawData accepts for points.
func (l *Line) MinSamples(points int) int {
	return l.reducer.MinSamples(points)
}

// VertexCount returns the number of vertices the next Draw will submit.
func (l *Line) VertexCount() int {
	return len(l.vertices) / wave.CoordsPerVertex
}

// Stats reports how many times the vertex buffer was allocated and uploaded.
func (l *Line) Stats() (allocations, uploads int) {
	return l.allocates, l.uploads
}

// Close destroys every GPU object owned by the line. It is safe to call more
// than once.
func (l *Line) Close() {
	if l.closed {
		return
	}
	l.closed = true
	l.release()
	l.dev.DeleteProgram(l.program)
	l.vertices = nil
	log.Debugf("Line: closed program %d", l.program)
}
