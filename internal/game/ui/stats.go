// Package ui builds the overlay panels: the stats readout and the map selector.
package ui

import (
	"fmt"
	"image/color"
	"runtime"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/blockfield/internal/engine/text"
)

var (
	colorGood = color.RGBA{R: 80, G: 255, B: 80, A: 255}
	colorWarn = color.RGBA{R: 255, G: 255, B: 80, A: 255}
	colorBad  = color.RGBA{R: 255, G: 80, B: 80, A: 255}
	colorDim  = color.RGBA{R: 150, G: 150, B: 150, A: 255}
)

// FPSCounter averages the frame rate over fixed windows.
type FPSCounter struct {
	Window float64 // Seconds per averaging window

	fps       float64
	frameTime float64 // ms
	elapsed   float64
	frames    int
}

// NewFPSCounter returns a counter that refreshes every half second.
func NewFPSCounter() *FPSCounter {
	return &FPSCounter{Window: 0.5}
}

// Update records one frame. Returns true when a new average is available.
func (c *FPSCounter) Update(deltaMs float64) bool {
	c.frameTime = deltaMs
	c.frames++
	c.elapsed += deltaMs / 1000.0

	if c.elapsed < c.Window || c.elapsed <= 0 {
		return false
	}
	c.fps = float64(c.frames) / c.elapsed
	c.frames = 0
	c.elapsed = 0
	return true
}

// FPS returns the last completed average.
func (c *FPSCounter) FPS() float64 { return c.fps }

// FrameTime returns the most recent frame time in milliseconds.
func (c *FPSCounter) FrameTime() float64 { return c.frameTime }

// Stats is the runtime readout toggled with the stats key.
type Stats struct {
	Enabled bool

	Yaw, Pitch  float32
	Eye, Center mgl32.Vec3
	Scene       string
	Triangles   int
	Target      string // Block under the crosshair, if any
	Pending     string // Map currently loading, if any
	PointerHint bool   // Show how to capture the pointer

	fps           *FPSCounter
	memStats      runtime.MemStats
	memUpdateTime float64
	ShowMemory    bool
}

// NewStats creates the readout.
func NewStats(enabled bool) *Stats {
	return &Stats{
		Enabled: enabled,
		fps:     NewFPSCounter(),
	}
}

// Update advances frame timing. deltaMs is the frame time in milliseconds.
func (s *Stats) Update(deltaMs float64) {
	s.fps.Update(deltaMs)

	if !s.ShowMemory {
		return
	}
	// Update memory stats every 2 seconds
	s.memUpdateTime += deltaMs / 1000.0
	if s.memUpdateTime >= 2.0 {
		runtime.ReadMemStats(&s.memStats)
		s.memUpdateTime = 0
	}
}

// FPS returns the current averaged frame rate.
func (s *Stats) FPS() float64 {
	return s.fps.FPS()
}

// Lines renders the readout as text rows.
func (s *Stats) Lines() []text.Line {
	fps := s.fps.FPS()
	fpsColor := colorGood
	if fps < 30 {
		fpsColor = colorBad
	} else if fps < 60 {
		fpsColor = colorWarn
	}

	lines := []text.Line{
		{Text: fmt.Sprintf("FPS: %.0f (%.2f ms)", fps, s.fps.FrameTime()), Color: fpsColor},
		{Text: fmt.Sprintf("Yaw: %.2f", s.Yaw)},
		{Text: fmt.Sprintf("Pitch: %.2f", s.Pitch)},
		{Text: "Eye: " + formatVec(s.Eye)},
		{Text: "Center: " + formatVec(s.Center)},
		{Text: "Scene: " + s.Scene},
		{Text: fmt.Sprintf("Triangles: %d", s.Triangles)},
	}
	if s.Target != "" {
		lines = append(lines, text.Line{Text: "Target: " + s.Target})
	}
	if s.Pending != "" {
		lines = append(lines, text.Line{Text: "Loading " + s.Pending + "...", Color: colorWarn})
	}
	if s.ShowMemory {
		lines = append(lines,
			text.Line{Text: "Alloc: " + formatBytes(int64(s.memStats.Alloc)), Color: colorDim},
			text.Line{Text: fmt.Sprintf("GC: %d", s.memStats.NumGC), Color: colorDim},
		)
	}
	if s.PointerHint {
		lines = append(lines, text.Line{Text: "Press L or Space to look around", Color: colorDim})
	}
	return lines
}

func formatVec(v mgl32.Vec3) string {
	return fmt.Sprintf("%.2f, %.2f, %.2f", v.X(), v.Y(), v.Z())
}

// formatBytes formats byte count to human readable string.
func formatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
