package terrain

// ColumnGrid is a voxel terrain stored as solid columns: the column at
// (x, z) fills y = 0..height. A negative height leaves the column empty.
type ColumnGrid struct {
	Heights [][]int // [x][z]
	Width   int
	Depth   int
}

// NewColumnGrid creates an empty width x depth grid.
func NewColumnGrid(width, depth int) *ColumnGrid {
	heights := make([][]int, width)
	for x := range width {
		heights[x] = make([]int, depth)
		for z := range depth {
			heights[x][z] = -1
		}
	}
	return &ColumnGrid{Heights: heights, Width: width, Depth: depth}
}

// Height returns the column height; ok is false outside the grid.
func (g *ColumnGrid) Height(x, z int) (h int, ok bool) {
	if x < 0 || z < 0 || x >= g.Width || z >= g.Depth {
		return 0, false
	}
	return g.Heights[x][z], true
}

// Set assigns a column height. Out-of-grid writes are ignored.
func (g *ColumnGrid) Set(x, z, h int) {
	if x < 0 || z < 0 || x >= g.Width || z >= g.Depth {
		return
	}
	g.Heights[x][z] = h
}

// Solid reports whether (x, y, z) is inside a filled column. Cells outside
// the grid count as empty, so faces on the grid border are always emitted.
func (g *ColumnGrid) Solid(x, y, z int) bool {
	h, ok := g.Height(x, z)
	return ok && y >= 0 && y <= h
}

// MaxHeight returns the tallest column, or -1 for an empty grid.
func (g *ColumnGrid) MaxHeight() int {
	top := -1
	for x := range g.Width {
		for z := range g.Depth {
			top = max(top, g.Heights[x][z])
		}
	}
	return top
}

// ColormapUV maps every face of a block onto the colormap texel of its column.
func (g *ColumnGrid) ColormapUV(x, _, z int, _ Face) (u0, v0, u1, v1 float32) {
	u := (float32(x) + 0.5) / float32(max(g.Width, 1))
	v := (float32(z) + 0.5) / float32(max(g.Depth, 1))
	return u, v, u, v
}
