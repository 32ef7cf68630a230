// Package scene provides the entity tree, per-kind behaviors and particles
// that make up the globe view.
package scene

import "github.com/Faultbox/neowatch/pkg/math"

// Mesh is an uploaded set of vertex buffers.
type Mesh interface {
	Draw()
}

// Texture is a texture handle that may resolve after it is first drawn.
type Texture interface {
	// Ready reports whether the image has been uploaded.
	Ready() bool
	Bind(unit uint32)
}

// Pass selects the render state a draw call needs.
type Pass int

const (
	PassOpaque Pass = iota
	// PassAdditive blends with one/one and skips depth writes.
	PassAdditive
	// PassSky draws back faces behind everything else.
	PassSky
)

// DrawCall carries everything a shader needs for one mesh draw.
// Model and Normal are only valid for the duration of the Draw call.
type DrawCall struct {
	Name       string
	Pass       Pass
	Model      math.Matrix[float32]
	Normal     math.Matrix[float32]
	Mesh       Mesh
	Texture    Texture // nil or not Ready falls back to vertex color
	Color      [4]float32
	Brightness float32
}

// UseTexture reports whether the texture should be sampled.
func (c *DrawCall) UseTexture() bool {
	return c.Texture != nil && c.Texture.Ready()
}

// Drawer issues draw calls.
type Drawer interface {
	Draw(c *DrawCall)
}
