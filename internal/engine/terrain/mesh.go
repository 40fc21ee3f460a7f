package terrain

// BuildSurfaceMesh creates a smooth landscape with one vertex per height
// sample. UVs span the whole grid so a colormap of any size covers it.
func BuildSurfaceMesh(hm *Heightmap) *Mesh {
	if hm.Width == 0 || hm.Depth == 0 {
		return &Mesh{}
	}

	count := hm.Width * hm.Depth
	positions := make([]float32, 0, count*3)
	texCoords := make([]float32, 0, count*2)
	bounds := emptyBounds()

	du := float32(max(hm.Width-1, 1))
	dv := float32(max(hm.Depth-1, 1))

	// Vertex (x, z) lives at index z*Width + x
	for z := range hm.Depth {
		for x := range hm.Width {
			y := hm.Altitudes[x][z]
			positions = append(positions, float32(x), y, float32(z))
			texCoords = append(texCoords, float32(x)/du, float32(z)/dv)
			bounds.extend(float32(x), y, float32(z))
		}
	}

	cells := max(hm.Width-1, 0) * max(hm.Depth-1, 0)
	indices := make([]uint32, 0, cells*6)
	w := uint32(hm.Width)
	for z := 0; z < hm.Depth-1; z++ {
		for x := 0; x < hm.Width-1; x++ {
			v00 := uint32(z)*w + uint32(x)
			v10 := v00 + 1
			v01 := v00 + w
			v11 := v01 + 1
			// Counter-clockwise seen from above
			indices = append(indices,
				v00, v01, v10,
				v10, v01, v11,
			)
		}
	}

	return &Mesh{
		Positions: positions,
		TexCoords: texCoords,
		Indices:   indices,
		Bounds:    bounds,
	}
}
