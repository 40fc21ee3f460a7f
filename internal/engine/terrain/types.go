// Package terrain builds block and heightmap meshes for the viewer scenes.
package terrain

import "github.com/go-gl/mathgl/mgl32"

// Mesh holds flat vertex/index buffers ready for GPU upload.
type Mesh struct {
	Positions []float32 // xyz per vertex
	TexCoords []float32 // uv per vertex, empty when untextured
	Indices   []uint32
	Bounds    Bounds
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Textured reports whether every vertex has a texture coordinate.
func (m *Mesh) Textured() bool {
	return len(m.TexCoords) > 0 && len(m.TexCoords)/2 == m.VertexCount()
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent along each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

func emptyBounds() Bounds {
	return Bounds{
		Min: mgl32.Vec3{1e10, 1e10, 1e10},
		Max: mgl32.Vec3{-1e10, -1e10, -1e10},
	}
}

func (b *Bounds) extend(x, y, z float32) {
	b.Min = mgl32.Vec3{min(b.Min[0], x), min(b.Min[1], y), min(b.Min[2], z)}
	b.Max = mgl32.Vec3{max(b.Max[0], x), max(b.Max[1], y), max(b.Max[2], z)}
}

// Heightmap is a read-only grid of heights indexed [x][z].
type Heightmap struct {
	Altitudes [][]float32
	Width     int // Samples along X
	Depth     int // Samples along Z
	Scale     float32
}
