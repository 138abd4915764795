// SPDX-License-Identifier: MIT
/*
Package render draws a reduced sample trace as a list of vertical line segments.

All GPU work goes through Device so the buffer lifecycle can be exercised
without a GL context; internal/render/gles provides the production device.
Every Device call must happen on the goroutine that owns the GL context.
*/
package render

import "github.com/go-gl/mathgl/mgl32"

// ShaderKind selects the pipeline stage a shader is compiled for.
type ShaderKind int

const (
	VertexShader ShaderKind = iota
	FragmentShader
)

func (k ShaderKind) String() string {
	if k == FragmentShader {
		return "fragment"
	}
	return "vertex"
}

// Device is the subset of a GLES 3 context used by Line. Handles are the raw
// GL object names; 0 means "no object".
type Device interface {
	CompileShader(kind ShaderKind, source string) (uint32, error)
	DeleteShader(shader uint32)
	LinkProgram(vertex, fragment uint32) (uint32, error)
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	AttribLocation(program uint32, name string) int32
	UniformLocation(program uint32, name string) int32
	Uniform1f(location int32, v float32)
	Uniform3f(location int32, v mgl32.Vec3)
	UniformMatrix4(location int32, m mgl32.Mat4)

	// DisableDepth turns off depth testing and depth writes.
	DisableDepth()

	GenBuffer() uint32
	DeleteBuffer(buffer uint32)
	GenVertexArray() uint32
	DeleteVertexArray(vao uint32)

	// AllocateBuffer reserves sizeBytes of storage for buffer without data.
	AllocateBuffer(buffer uint32, sizeBytes int)
	// UploadBuffer overwrites buffer from offset 0.
	UploadBuffer(buffer uint32, data []float32)
	// BindVertexLayout records in vao that attrib reads tightly packed
	// components-wide float vectors from buffer.
	BindVertexLayout(vao, buffer uint32, attrib int32, components int)
	// DrawLines draws vertices as a line list from vao.
	DrawLines(vao uint32, vertices int)
}
