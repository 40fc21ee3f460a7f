// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SceneVertexShader transforms scene vertices by the projection-view matrix.
//
//go:embed scene.vert
var SceneVertexShader string

// SceneFragmentShader shades scene fragments from the colormap or a flat color.
//
//go:embed scene.frag
var SceneFragmentShader string

// OverlayVertexShader places screen-space overlay quads.
//
//go:embed overlay.vert
var OverlayVertexShader string

// OverlayFragmentShader samples the overlay texture.
//
//go:embed overlay.frag
var OverlayFragmentShader string
