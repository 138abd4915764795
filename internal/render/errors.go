// SPDX-License-Identifier: MIT
package render

import "errors"

var (
	ErrShaderCompile = errors.New("render: shader compilation failed")
	ErrLink          = errors.New("render: program link failed")
	ErrClosed        = errors.New("render: line is closed")
)
