// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// EntityVertexShader transforms meshes for the entity, particle and sky passes.
//
//go:embed entity.vert
var EntityVertexShader string

// EntityFragmentShader shades with a single point light, an optional texture
// and a per-entity color modifier.
//
//go:embed entity.frag
var EntityFragmentShader string

// HUDVertexShader places screen-space quads.
//
//go:embed hud.vert
var HUDVertexShader string

// HUDFragmentShader samples the HUD text atlas.
//
//go:embed hud.frag
var HUDFragmentShader string
