//go:build !nogpu

package gpu

import _ "embed"

// Embedded WGSL shader sources, compiled through naga at pipeline
// creation time.

//go:embed shaders/colormatrix.wgsl
var colorMatrixShaderSource string

// GetColorMatrixShaderSource returns the WGSL source for the color
// matrix kernel.
func GetColorMatrixShaderSource() string {
	return colorMatrixShaderSource
}
