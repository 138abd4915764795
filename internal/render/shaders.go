// SPDX-License-Identifier: MIT
package render

const vertexShaderSource = `
attribute vec4 vPosition;
uniform mat4 u_transform;
void main() {
  gl_Position = u_transform * vPosition;
}`

// The red channel ramps with the fragment's x position across the surface.
const fragmentShaderSource = `
precision mediump float;
uniform vec3 vColor;
uniform float width;
void main() {
  float red = vColor.r * gl_FragCoord.x / width;
  gl_FragColor = vec4(red, vColor.g, vColor.b, 1.0);
}`

// Attribute and uniform names used by the sources above.
const (
	attribPosition   = "vPosition"
	uniformColor     = "vColor"
	uniformWidth     = "width"
	uniformTransform = "u_transform"
)
