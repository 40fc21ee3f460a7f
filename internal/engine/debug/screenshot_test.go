package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFlipPixels(t *testing.T) {
	// 1x3: bottom row red, middle green, top blue (GL order)
	pixels := []byte{
		255, 0, 0, 255,
		0, 255, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipPixels(pixels, 1, 3)
	if err != nil {
		t.Fatalf("FlipPixels: %v", err)
	}

	if got := img.RGBAAt(0, 0); got.B != 255 {
		t.Errorf("top row should be blue, got %v", got)
	}
	if got := img.RGBAAt(0, 2); got.R != 255 {
		t.Errorf("bottom row should be red, got %v", got)
	}
}

func TestFlipPixelsSizeMismatch(t *testing.T) {
	if _, err := FlipPixels(make([]byte, 10), 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
	if _, err := FlipPixels(nil, 0, 0); err == nil {
		t.Error("expected error for empty framebuffer")
	}
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "blockfield")
	sc.now = func() time.Time { return time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC) }

	pixels := make([]byte, 4*2*2)
	for i := range pixels {
		pixels[i] = 200
	}

	path, err := sc.CaptureFromPixels(pixels, 2, 2)
	if err != nil {
		t.Fatalf("CaptureFromPixels: %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "blockfield_2024-05-01_12-30-00") {
		t.Errorf("unexpected filename %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open capture: %v", err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode capture: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 2 || b.Dy() != 2 {
		t.Errorf("expected 2x2 image, got %v", b)
	}
}
