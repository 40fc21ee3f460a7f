// Package text rasterizes overlay text into RGBA images.
package text

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

// Line is one row of overlay text.
type Line struct {
	Text      string
	Color     color.RGBA
	Highlight bool // Draw a selection bar behind the row
}

// Style controls panel layout.
type Style struct {
	Padding    int
	Background color.RGBA
	Highlight  color.RGBA
	Foreground color.RGBA // Used for lines with a zero Color
}

// DefaultStyle is a translucent dark panel with light text.
var DefaultStyle = Style{
	Padding:    6,
	Background: color.RGBA{R: 10, G: 10, B: 14, A: 170},
	Highlight:  color.RGBA{R: 60, G: 90, B: 160, A: 220},
	Foreground: color.RGBA{R: 230, G: 230, B: 230, A: 255},
}

// Face renders text with a fixed-size TrueType face.
type Face struct {
	face       font.Face
	ascent     int
	lineHeight int
}

// NewFace loads the bundled Go Mono font at size points (72 DPI).
func NewFace(size float64) (*Face, error) {
	return NewFaceFromTTF(gomono.TTF, size)
}

// NewFaceFromTTF parses a TrueType font at size points.
func NewFaceFromTTF(ttf []byte, size float64) (*Face, error) {
	f, err := truetype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parsing font: %w", err)
	}
	face := truetype.NewFace(f, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	m := face.Metrics()
	return &Face{
		face:       face,
		ascent:     m.Ascent.Ceil(),
		lineHeight: (m.Ascent + m.Descent).Ceil() + 2,
	}, nil
}

// LineHeight returns the pixel height of one row.
func (f *Face) LineHeight() int {
	return f.lineHeight
}

// Measure returns the pixel width of s.
func (f *Face) Measure(s string) int {
	return font.MeasureString(f.face, s).Ceil()
}

// Render draws lines onto a new panel image sized to fit them.
func (f *Face) Render(lines []Line, style Style) *image.RGBA {
	width := 0
	for _, l := range lines {
		width = max(width, f.Measure(l.Text))
	}
	pad := style.Padding
	w := width + pad*2
	h := len(lines)*f.lineHeight + pad*2
	if len(lines) == 0 {
		w, h = 1, 1
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(style.Background), image.Point{}, draw.Src)

	d := &font.Drawer{Dst: img, Face: f.face}
	for i, l := range lines {
		top := pad + i*f.lineHeight
		if l.Highlight {
			bar := image.Rect(0, top, w, top+f.lineHeight)
			draw.Draw(img, bar, image.NewUniform(style.Highlight), image.Point{}, draw.Src)
		}

		c := l.Color
		if c == (color.RGBA{}) {
			c = style.Foreground
		}
		d.Src = image.NewUniform(c)
		d.Dot = fixed.P(pad, top+f.ascent+1)
		d.DrawString(l.Text)
	}
	return img
}

// RowAt maps a y offset inside a panel rendered with style to a line index,
// or -1 when y falls in the padding.
func (f *Face) RowAt(y int, count int, style Style) int {
	y -= style.Padding
	if y < 0 {
		return -1
	}
	row := y / f.lineHeight
	if row >= count {
		return -1
	}
	return row
}
