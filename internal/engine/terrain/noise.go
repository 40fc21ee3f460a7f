package terrain

import (
	"image"
	"image/color"

	"github.com/ojrac/opensimplex-go"
)

// NoiseConfig parameterizes layered simplex noise.
type NoiseConfig struct {
	Seed        int64
	Scale       float32 // Feature size in samples
	Octaves     int
	Lacunarity  float32
	Persistence float32
}

// DefaultNoise returns rolling hills suitable for a 128 sample field.
func DefaultNoise(seed int64) NoiseConfig {
	return NoiseConfig{
		Seed:        seed,
		Scale:       48,
		Octaves:     4,
		Lacunarity:  2,
		Persistence: 0.5,
	}
}

// NoiseField returns a width x depth grid of fractal noise in [0, 1], indexed [x][z].
func NoiseField(cfg NoiseConfig, width, depth int) [][]float32 {
	noise := opensimplex.New32(cfg.Seed)
	octaves := max(cfg.Octaves, 1)
	scale := cfg.Scale
	if scale <= 0 {
		scale = 1
	}

	// Sum of amplitudes, used to bring the result back into [-1, 1]
	var norm float32
	amp := float32(1)
	for range octaves {
		norm += amp
		amp *= cfg.Persistence
	}

	field := make([][]float32, width)
	for x := range width {
		field[x] = make([]float32, depth)
		for z := range depth {
			var v float32
			fx, fz := float32(x)/scale, float32(z)/scale
			amp := float32(1)
			for range octaves {
				v += noise.Eval2(fx, fz) * amp
				fx *= cfg.Lacunarity
				fz *= cfg.Lacunarity
				amp *= cfg.Persistence
			}
			field[x][z] = clampf((v/norm+1)/2, 0, 1)
		}
	}
	return field
}

// GenerateColumns builds a procedural block terrain with columns up to maxHeight.
func GenerateColumns(cfg NoiseConfig, width, depth, maxHeight int) *ColumnGrid {
	field := NoiseField(cfg, width, depth)
	grid := NewColumnGrid(width, depth)
	for x := range width {
		for z := range depth {
			grid.Heights[x][z] = int(field[x][z] * float32(maxHeight))
		}
	}
	return grid
}

// paletteBands colors elevation fractions from sea level to peaks.
var paletteBands = []struct {
	top float32
	c   color.RGBA
}{
	{0.30, color.RGBA{R: 38, G: 84, B: 160, A: 255}},   // water
	{0.36, color.RGBA{R: 214, G: 196, B: 140, A: 255}}, // sand
	{0.62, color.RGBA{R: 80, G: 150, B: 60, A: 255}},   // grass
	{0.82, color.RGBA{R: 120, G: 110, B: 100, A: 255}}, // rock
	{1.01, color.RGBA{R: 240, G: 240, B: 245, A: 255}}, // snow
}

// Palette returns the color for an elevation fraction in [0, 1].
func Palette(v float32) color.RGBA {
	for _, band := range paletteBands {
		if v < band.top {
			return band.c
		}
	}
	return paletteBands[len(paletteBands)-1].c
}

// Colormap paints a field of [0, 1] values with Palette, one pixel per sample.
func Colormap(field [][]float32) *image.RGBA {
	width := len(field)
	depth := 0
	if width > 0 {
		depth = len(field[0])
	}
	img := image.NewRGBA(image.Rect(0, 0, width, depth))
	for x := range width {
		for z := range depth {
			img.SetRGBA(x, z, Palette(field[x][z]))
		}
	}
	return img
}

// Colormap paints the grid by relative column height.
func (g *ColumnGrid) Colormap() *image.RGBA {
	top := float32(max(g.MaxHeight(), 1))
	field := make([][]float32, g.Width)
	for x := range g.Width {
		field[x] = make([]float32, g.Depth)
		for z := range g.Depth {
			field[x][z] = float32(max(g.Heights[x][z], 0)) / top
		}
	}
	return Colormap(field)
}

// HeightImage encodes a field of [0, 1] values as a grayscale heightmap.
func HeightImage(field [][]float32) *image.Gray {
	width := len(field)
	depth := 0
	if width > 0 {
		depth = len(field[0])
	}
	img := image.NewGray(image.Rect(0, 0, width, depth))
	for x := range width {
		for z := range depth {
			img.SetGray(x, z, color.Gray{Y: uint8(field[x][z]*255 + 0.5)})
		}
	}
	return img
}
