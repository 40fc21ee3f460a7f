package terrain

import "testing"

func TestNoiseFieldRangeAndDeterminism(t *testing.T) {
	cfg := DefaultNoise(42)
	a := NoiseField(cfg, 32, 24)
	b := NoiseField(cfg, 32, 24)

	if len(a) != 32 || len(a[0]) != 24 {
		t.Fatalf("field size = %dx%d, want 32x24", len(a), len(a[0]))
	}

	var lo, hi float32 = 1, 0
	for x := range a {
		for z := range a[x] {
			v := a[x][z]
			if v < 0 || v > 1 {
				t.Fatalf("sample (%d,%d) = %v outside [0,1]", x, z, v)
			}
			if v != b[x][z] {
				t.Fatalf("same seed produced different samples at (%d,%d)", x, z)
			}
			lo, hi = min(lo, v), max(hi, v)
		}
	}
	if hi-lo < 0.05 {
		t.Errorf("field is nearly flat: [%v, %v]", lo, hi)
	}
}

func TestGenerateColumns(t *testing.T) {
	grid := GenerateColumns(DefaultNoise(1), 16, 16, 10)
	if grid.Width != 16 || grid.Depth != 16 {
		t.Fatalf("grid size = %dx%d", grid.Width, grid.Depth)
	}
	for x := range 16 {
		for z := range 16 {
			if h := grid.Heights[x][z]; h < 0 || h > 10 {
				t.Fatalf("column (%d,%d) height %d outside [0,10]", x, z, h)
			}
		}
	}
}

func TestPaletteBands(t *testing.T) {
	water, snow := Palette(0), Palette(1)
	if water == snow {
		t.Error("lowest and highest elevations share a color")
	}
	if Palette(2) != snow {
		t.Error("values above 1 should use the top band")
	}
}

func TestColormapAndHeightImage(t *testing.T) {
	field := [][]float32{{0, 1}, {0.5, 0.25}, {1, 0}}

	cm := Colormap(field)
	if b := cm.Bounds(); b.Dx() != 3 || b.Dy() != 2 {
		t.Fatalf("colormap size = %v", b)
	}
	if cm.RGBAAt(0, 1) != Palette(1) {
		t.Errorf("colormap (0,1) = %v, want %v", cm.RGBAAt(0, 1), Palette(1))
	}

	hi := HeightImage(field)
	if hi.GrayAt(0, 1).Y != 255 || hi.GrayAt(0, 0).Y != 0 || hi.GrayAt(1, 0).Y != 128 {
		t.Errorf("unexpected gray levels %v %v %v", hi.GrayAt(0, 1), hi.GrayAt(0, 0), hi.GrayAt(1, 0))
	}

	// Encoding then decoding keeps the field within one gray step
	hm := DecodeHeightmap(hi, ChannelLuma, 1)
	if abs(hm.At(1, 1)-0.25) > 1.0/255 {
		t.Errorf("round trip (1,1) = %v, want ~0.25", hm.At(1, 1))
	}
}

func TestColumnGridColormap(t *testing.T) {
	grid := NewColumnGrid(2, 1)
	grid.Set(0, 0, 0)
	grid.Set(1, 0, 8)
	cm := grid.Colormap()
	if cm.RGBAAt(0, 0) != Palette(0) || cm.RGBAAt(1, 0) != Palette(1) {
		t.Errorf("colormap = %v %v", cm.RGBAAt(0, 0), cm.RGBAAt(1, 0))
	}
}
