// SPDX-License-Identifier: MIT
//
// Package gles implements render.Device on an OpenGL ES 3 context through
// go-gl. A context must be current on the calling OS thread before New is
// called, and every method must be called from that thread.
package gles

import (
	"errors"
	"fmt"
	"strings"

	gl "github.com/go-gl/gl/v3.1/gles2"
	"github.com/go-gl/mathgl/mgl32"

	"soundsystem/internal/log"
	"soundsystem/internal/render"
)

// Device issues GL calls directly.
type Device struct {
	clearColor mgl32.Vec4
}

var _ render.Device = (*Device)(nil)

// New loads the GL function pointers for the current context.
func New() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("gles: init: %w", err)
	}
	log.Infof("GLES: %s (%s)", gl.GoStr(gl.GetString(gl.VERSION)), gl.GoStr(gl.GetString(gl.RENDERER)))
	return &Device{clearColor: mgl32.Vec4{0, 0, 0, 1}}, nil
}

func (d *Device) CompileShader(kind render.ShaderKind, source string) (uint32, error) {
	shaderType := uint32(gl.VERTEX_SHADER)
	if kind == render.FragmentShader {
		shaderType = gl.FRAGMENT_SHADER
	}

	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(infoLog))
		gl.DeleteShader(shader)
		return 0, errors.New(strings.TrimRight(infoLog, "\x00"))
	}
	return shader, nil
}

func (d *Device) DeleteShader(shader uint32) {
	if shader != 0 {
		gl.DeleteShader(shader)
	}
}

func (d *Device) LinkProgram(vertex, fragment uint32) (uint32, error) {
	program := gl.CreateProgram()
	gl.AttachShader(program, vertex)
	gl.AttachShader(program, fragment)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(infoLog))
		gl.DeleteProgram(program)
		return 0, errors.New(strings.TrimRight(infoLog, "\x00"))
	}

	gl.DetachShader(program, vertex)
	gl.DetachShader(program, fragment)
	return program, nil
}

func (d *Device) UseProgram(program uint32) { gl.UseProgram(program) }

func (d *Device) DeleteProgram(program uint32) {
	if program != 0 {
		gl.DeleteProgram(program)
	}
}

func (d *Device) AttribLocation(program uint32, name string) int32 {
	return gl.GetAttribLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) Uniform1f(location int32, v float32) { gl.Uniform1f(location, v) }

func (d *Device) Uniform3f(location int32, v mgl32.Vec3) { gl.Uniform3f(location, v[0], v[1], v[2]) }

func (d *Device) UniformMatrix4(location int32, m mgl32.Mat4) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) DisableDepth() {
	gl.Disable(gl.DEPTH_TEST)
	gl.DepthMask(false)
}

func (d *Device) GenBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

// DeleteBuffer ignores the zero name, matching glIsBuffer guarding.
func (d *Device) DeleteBuffer(buffer uint32) {
	if buffer != 0 {
		gl.DeleteBuffers(1, &buffer)
	}
}

func (d *Device) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *Device) DeleteVertexArray(vao uint32) {
	if vao != 0 {
		gl.DeleteVertexArrays(1, &vao)
	}
}

func (d *Device) AllocateBuffer(buffer uint32, sizeBytes int) {
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.BufferData(gl.ARRAY_BUFFER, sizeBytes, nil, gl.STATIC_DRAW)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (d *Device) UploadBuffer(buffer uint32, data []float32) {
	if len(data) == 0 {
		return
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(data)*4, gl.Ptr(&data[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (d *Device) BindVertexLayout(vao, buffer uint32, attrib int32, components int) {
	gl.BindVertexArray(vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, buffer)
	gl.VertexAttribPointer(uint32(attrib), int32(components), gl.FLOAT, false, int32(components*4), gl.PtrOffset(0))
	gl.EnableVertexAttribArray(uint32(attrib))
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (d *Device) DrawLines(vao uint32, vertices int) {
	gl.BindVertexArray(vao)
	gl.DrawArrays(gl.LINES, 0, int32(vertices))
	gl.BindVertexArray(0)
}

// SetClearColor changes the colour used by Clear.
func (d *Device) SetClearColor(c mgl32.Vec4) {
	d.clearColor = c
}

// Clear resets the viewport to the framebuffer size and clears it.
func (d *Device) Clear(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(d.clearColor[0], d.clearColor[1], d.clearColor[2], d.clearColor[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}
