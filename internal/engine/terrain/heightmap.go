package terrain

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

// Channel selects which pixel component encodes elevation.
type Channel int

const (
	ChannelRed Channel = iota
	ChannelGreen
	ChannelBlue
	ChannelAlpha
	ChannelLuma
)

// ParseChannel maps a config name to a Channel.
func ParseChannel(name string) (Channel, error) {
	switch strings.ToLower(name) {
	case "", "r", "red":
		return ChannelRed, nil
	case "g", "green":
		return ChannelGreen, nil
	case "b", "blue":
		return ChannelBlue, nil
	case "a", "alpha":
		return ChannelAlpha, nil
	case "l", "luma", "gray":
		return ChannelLuma, nil
	}
	return 0, fmt.Errorf("unknown height channel %q", name)
}

// sample returns the chosen channel as a value in [0, 1]. Components are
// read unpremultiplied so translucent pixels keep their full color height.
func (ch Channel) sample(c color.Color) float32 {
	n := color.NRGBA64Model.Convert(c).(color.NRGBA64)
	var v uint32
	switch ch {
	case ChannelGreen:
		v = uint32(n.G)
	case ChannelBlue:
		v = uint32(n.B)
	case ChannelAlpha:
		v = uint32(n.A)
	case ChannelLuma:
		// Same weights as color.Gray16Model
		v = (19595*uint32(n.R) + 38470*uint32(n.G) + 7471*uint32(n.B) + 1<<15) >> 16
	default:
		v = uint32(n.R)
	}
	return float32(v) / 0xffff
}

// DecodeHeightmap reads one channel of img into a height grid. Image X maps
// to grid X and image Y to grid Z; heights are channel/max * scale.
func DecodeHeightmap(img image.Image, ch Channel, scale float32) *Heightmap {
	bounds := img.Bounds()
	width, depth := bounds.Dx(), bounds.Dy()

	altitudes := make([][]float32, width)
	for x := range width {
		altitudes[x] = make([]float32, depth)
		for z := range depth {
			altitudes[x][z] = ch.sample(img.At(bounds.Min.X+x, bounds.Min.Y+z)) * scale
		}
	}

	return &Heightmap{
		Altitudes: altitudes,
		Width:     width,
		Depth:     depth,
		Scale:     scale,
	}
}

// At returns the height sample at (x, z), or 0 outside the grid.
func (h *Heightmap) At(x, z int) float32 {
	if x < 0 || z < 0 || x >= h.Width || z >= h.Depth {
		return 0
	}
	return h.Altitudes[x][z]
}

// HeightAt returns the bilinearly interpolated height at a world position,
// clamping to the grid edge.
func (h *Heightmap) HeightAt(worldX, worldZ float32) float32 {
	if h.Width == 0 || h.Depth == 0 {
		return 0
	}
	if h.Width == 1 || h.Depth == 1 {
		return h.At(clampi(int(worldX), 0, h.Width-1), clampi(int(worldZ), 0, h.Depth-1))
	}

	x := clampi(int(worldX), 0, h.Width-2)
	z := clampi(int(worldZ), 0, h.Depth-2)
	fx := clampf(worldX-float32(x), 0, 1)
	fz := clampf(worldZ-float32(z), 0, 1)

	near := h.At(x, z)*(1-fx) + h.At(x+1, z)*fx
	far := h.At(x, z+1)*(1-fx) + h.At(x+1, z+1)*fx
	return near*(1-fz) + far*fz
}

// Columns quantizes the heights into a voxel column grid, one block per
// step world units of elevation.
func (h *Heightmap) Columns(step float32) *ColumnGrid {
	if step <= 0 {
		step = 1
	}
	grid := NewColumnGrid(h.Width, h.Depth)
	for x := range h.Width {
		for z := range h.Depth {
			grid.Heights[x][z] = int(h.Altitudes[x][z] / step)
		}
	}
	return grid
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
