package terrain

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBuildSurfaceMesh(t *testing.T) {
	hm := &Heightmap{
		Altitudes: [][]float32{{0, 1, 2}, {3, 4, 5}, {6, 7, 8}},
		Width:     3,
		Depth:     3,
	}
	m := BuildSurfaceMesh(hm)

	if m.VertexCount() != 9 {
		t.Errorf("vertex count = %d, want 9", m.VertexCount())
	}
	if m.TriangleCount() != 8 {
		t.Errorf("triangle count = %d, want 8", m.TriangleCount())
	}
	if !m.Textured() {
		t.Fatal("surface mesh should be textured")
	}

	// Vertex (x=2, z=1) is index 1*3+2
	i := 5
	pos := mgl32.Vec3{m.Positions[i*3], m.Positions[i*3+1], m.Positions[i*3+2]}
	if pos != (mgl32.Vec3{2, 7, 1}) {
		t.Errorf("vertex %d = %v, want (2, 7, 1)", i, pos)
	}
	if u, v := m.TexCoords[i*2], m.TexCoords[i*2+1]; u != 1 || v != 0.5 {
		t.Errorf("uv %d = (%v, %v), want (1, 0.5)", i, u, v)
	}

	if m.Bounds.Min != (mgl32.Vec3{0, 0, 0}) || m.Bounds.Max != (mgl32.Vec3{2, 8, 2}) {
		t.Errorf("bounds = %+v", m.Bounds)
	}
}

func TestSurfaceTrianglesFaceUp(t *testing.T) {
	hm := &Heightmap{Altitudes: [][]float32{{0, 0}, {0, 0}}, Width: 2, Depth: 2}
	m := BuildSurfaceMesh(hm)

	for tri := 0; tri < m.TriangleCount(); tri++ {
		var v [3]mgl32.Vec3
		for k := range 3 {
			idx := m.Indices[tri*3+k]
			v[k] = mgl32.Vec3{m.Positions[idx*3], m.Positions[idx*3+1], m.Positions[idx*3+2]}
		}
		n := v[1].Sub(v[0]).Cross(v[2].Sub(v[0]))
		if n.Y() <= 0 {
			t.Errorf("triangle %d normal %v points down", tri, n)
		}
	}
}

func TestBuildSurfaceMeshDegenerate(t *testing.T) {
	if m := BuildSurfaceMesh(&Heightmap{}); len(m.Indices) != 0 {
		t.Error("empty heightmap should produce no indices")
	}

	row := &Heightmap{Altitudes: [][]float32{{1}, {2}, {3}}, Width: 3, Depth: 1}
	m := BuildSurfaceMesh(row)
	if m.VertexCount() != 3 || len(m.Indices) != 0 {
		t.Errorf("single row: %d vertices, %d indices; want 3, 0", m.VertexCount(), len(m.Indices))
	}
}
