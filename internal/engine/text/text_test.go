package text

import (
	"image/color"
	"testing"
)

func newTestFace(t *testing.T) *Face {
	t.Helper()
	f, err := NewFace(14)
	if err != nil {
		t.Fatalf("NewFace: %v", err)
	}
	return f
}

func TestMeasure(t *testing.T) {
	f := newTestFace(t)
	if f.Measure("") != 0 {
		t.Error("empty string should have zero width")
	}
	short, long := f.Measure("fps"), f.Measure("fps: 60")
	if short <= 0 || long <= short {
		t.Errorf("widths: %d, %d", short, long)
	}
	// Monospaced
	if f.Measure("iiii") != f.Measure("WWWW") {
		t.Error("Go Mono glyphs should share one advance")
	}
}

func TestRenderSizesPanel(t *testing.T) {
	f := newTestFace(t)
	lines := []Line{{Text: "yaw: 0.00"}, {Text: "pitch: 0.00"}}
	img := f.Render(lines, DefaultStyle)

	b := img.Bounds()
	wantW := f.Measure("pitch: 0.00") + 2*DefaultStyle.Padding
	wantH := 2*f.LineHeight() + 2*DefaultStyle.Padding
	if b.Dx() != wantW || b.Dy() != wantH {
		t.Errorf("panel = %dx%d, want %dx%d", b.Dx(), b.Dy(), wantW, wantH)
	}

	// Corners are background, some pixel is text colored
	if img.RGBAAt(0, 0) != DefaultStyle.Background {
		t.Errorf("corner = %v, want background", img.RGBAAt(0, 0))
	}
	found := false
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i] > 150 && img.Pix[i+1] > 150 {
			found = true
			break
		}
	}
	if !found {
		t.Error("no glyph pixels were drawn")
	}
}

func TestRenderHighlight(t *testing.T) {
	f := newTestFace(t)
	red := color.RGBA{R: 255, A: 255}
	img := f.Render([]Line{{Text: "a"}, {Text: "b", Highlight: true, Color: red}}, DefaultStyle)

	y := DefaultStyle.Padding + f.LineHeight() + 1
	if img.RGBAAt(0, y) != DefaultStyle.Highlight {
		t.Errorf("highlight row edge = %v, want %v", img.RGBAAt(0, y), DefaultStyle.Highlight)
	}
}

func TestRenderEmpty(t *testing.T) {
	f := newTestFace(t)
	if b := f.Render(nil, DefaultStyle).Bounds(); b.Dx() != 1 || b.Dy() != 1 {
		t.Errorf("empty panel = %v, want 1x1", b)
	}
}

func TestRowAt(t *testing.T) {
	f := newTestFace(t)
	pad, lh := DefaultStyle.Padding, f.LineHeight()

	tests := []struct {
		y, want int
	}{
		{0, -1},
		{pad, 0},
		{pad + lh - 1, 0},
		{pad + lh, 1},
		{pad + 3*lh, -1},
	}
	for _, tt := range tests {
		if got := f.RowAt(tt.y, 3, DefaultStyle); got != tt.want {
			t.Errorf("RowAt(%d) = %d, want %d", tt.y, got, tt.want)
		}
	}
}

func TestBadFont(t *testing.T) {
	if _, err := NewFaceFromTTF([]byte("nope"), 12); err == nil {
		t.Error("expected parse error")
	}
}
