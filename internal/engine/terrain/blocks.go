package terrain

// Face identifies one side of a unit block.
type Face int

const (
	FacePosZ Face = iota
	FaceNegZ
	FacePosY
	FaceNegY
	FacePosX
	FaceNegX
)

// Faces lists every face in emission order.
var Faces = [6]Face{FacePosZ, FaceNegZ, FacePosY, FaceNegY, FacePosX, FaceNegX}

var faceNames = [6]string{"+z", "-z", "+y", "-y", "+x", "-x"}

func (f Face) String() string {
	if f < 0 || int(f) >= len(faceNames) {
		return "invalid"
	}
	return faceNames[f]
}

// faceOffsets points from a block to the neighbor that can hide each face.
var faceOffsets = [6][3]int{
	{0, 0, 1},
	{0, 0, -1},
	{0, 1, 0},
	{0, -1, 0},
	{1, 0, 0},
	{-1, 0, 0},
}

// Offset returns the grid step toward the neighbor across f.
func (f Face) Offset() (dx, dy, dz int) {
	o := faceOffsets[f]
	return o[0], o[1], o[2]
}

// faceCorners holds the four corners of each face, counter-clockwise when
// seen from outside the block, so back-face culling keeps them.
var faceCorners = [6][4][3]float32{
	{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}},
	{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}},
	{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}},
	{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}},
	{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}},
	{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}},
}

// quadIndices splits a face into two triangles.
var quadIndices = [6]uint32{0, 1, 2, 2, 3, 0}

const halfExtent = 0.5

// Occluder answers whether a grid cell holds a block that hides its neighbors' faces.
type Occluder interface {
	Solid(x, y, z int) bool
}

// UVFunc picks the texture rectangle for one face of the block at (x, y, z).
// Corners map counter-clockwise to (u0,v0) (u1,v0) (u1,v1) (u0,v1).
type UVFunc func(x, y, z int, f Face) (u0, v0, u1, v1 float32)

// Builder accumulates unit blocks into a single mesh.
type Builder struct {
	// UV, when set, gives every vertex a texture coordinate.
	UV UVFunc

	positions []float32
	texCoords []float32
	indices   []uint32
	faces     int
	bounds    Bounds
}

// NewBuilder creates a builder; uv may be nil for untextured meshes.
func NewBuilder(uv UVFunc) *Builder {
	b := &Builder{UV: uv}
	b.Reset()
	return b
}

// Reset discards everything built so far. Meshes returned earlier keep their data.
func (b *Builder) Reset() {
	b.positions = nil
	b.texCoords = nil
	b.indices = nil
	b.faces = 0
	b.bounds = emptyBounds()
}

// Grow preallocates room for n more faces.
func (b *Builder) Grow(n int) {
	b.positions = growFloats(b.positions, n*12)
	if b.UV != nil {
		b.texCoords = growFloats(b.texCoords, n*8)
	}
	if cap(b.indices)-len(b.indices) < n*6 {
		idx := make([]uint32, len(b.indices), len(b.indices)+n*6)
		copy(idx, b.indices)
		b.indices = idx
	}
}

func growFloats(s []float32, n int) []float32 {
	if cap(s)-len(s) >= n {
		return s
	}
	out := make([]float32, len(s), len(s)+n)
	copy(out, s)
	return out
}

// VisibleFaces returns the faces of the block at (x, y, z) that no solid
// neighbor hides. A nil occluder hides nothing.
func VisibleFaces(x, y, z int, occ Occluder) []Face {
	visible := make([]Face, 0, len(Faces))
	for _, f := range Faces {
		if occ != nil {
			dx, dy, dz := f.Offset()
			if occ.Solid(x+dx, y+dy, z+dz) {
				continue
			}
		}
		visible = append(visible, f)
	}
	return visible
}

// AddBlock emits the visible faces of the unit block centered at (x, y, z)
// and returns how many were emitted.
func (b *Builder) AddBlock(x, y, z int, occ Occluder) int {
	visible := VisibleFaces(x, y, z, occ)
	for _, f := range visible {
		b.addFace(x, y, z, f)
	}
	return len(visible)
}

// AddColumn stacks blocks from y = 0 up to and including height.
func (b *Builder) AddColumn(x, z, height int, occ Occluder) int {
	n := 0
	for y := 0; y <= height; y++ {
		n += b.AddBlock(x, y, z, occ)
	}
	return n
}

func (b *Builder) addFace(x, y, z int, f Face) {
	base := uint32(len(b.positions) / 3)
	cx, cy, cz := float32(x), float32(y), float32(z)

	for _, c := range faceCorners[f] {
		px := cx + c[0]*halfExtent
		py := cy + c[1]*halfExtent
		pz := cz + c[2]*halfExtent
		b.positions = append(b.positions, px, py, pz)
		b.bounds.extend(px, py, pz)
	}

	if b.UV != nil {
		u0, v0, u1, v1 := b.UV(x, y, z, f)
		b.texCoords = append(b.texCoords, u0, v0, u1, v0, u1, v1, u0, v1)
	}

	for _, i := range quadIndices {
		b.indices = append(b.indices, base+i)
	}
	b.faces++
}

// FaceCount returns the number of faces emitted since the last Reset.
func (b *Builder) FaceCount() int {
	return b.faces
}

// Mesh returns the accumulated buffers.
func (b *Builder) Mesh() *Mesh {
	m := &Mesh{
		Positions: b.positions,
		TexCoords: b.texCoords,
		Indices:   b.indices,
		Bounds:    b.bounds,
	}
	if b.faces == 0 {
		m.Bounds = Bounds{}
	}
	return m
}

// BuildCubeField fills a size^3 grid of unit cubes with every face emitted.
func BuildCubeField(size int) *Mesh {
	b := NewBuilder(nil)
	b.Grow(size * size * size * len(Faces))
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			for z := 0; z < size; z++ {
				b.AddBlock(x, y, z, nil)
			}
		}
	}
	return b.Mesh()
}

// BuildBlocks meshes every column of grid with neighbor face culling,
// texturing each block from the colormap cell above it.
func BuildBlocks(grid *ColumnGrid) *Mesh {
	b := NewBuilder(grid.ColormapUV)
	for x := 0; x < grid.Width; x++ {
		for z := 0; z < grid.Depth; z++ {
			h, _ := grid.Height(x, z)
			b.AddColumn(x, z, h, grid)
		}
	}
	return b.Mesh()
}
