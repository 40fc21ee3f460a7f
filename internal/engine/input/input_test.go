package input

import (
	"testing"

	"github.com/veandco/go-sdl2/sdl"
)

func TestMousePositionTracksMotionAndClicks(t *testing.T) {
	in := New()

	in.handle(&sdl.MouseMotionEvent{Type: sdl.MOUSEMOTION, X: 40, Y: 25, XRel: 3, YRel: -2})
	if x, y := in.MousePosition(); x != 40 || y != 25 {
		t.Errorf("after motion: got (%d, %d), want (40, 25)", x, y)
	}
	if dx, dy := in.PointerDelta(); dx != 3 || dy != -2 {
		t.Errorf("delta: got (%v, %v), want (3, -2)", dx, dy)
	}

	in.handle(&sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, X: 7, Y: 9, Button: sdl.BUTTON_LEFT})
	if x, y := in.MousePosition(); x != 7 || y != 9 {
		t.Errorf("after click: got (%d, %d), want (7, 9)", x, y)
	}
	evs := in.Events()
	if len(evs) != 2 || evs[1].Type != EventMouseDown {
		t.Fatalf("events: got %+v", evs)
	}
}

func TestFocusLostReleasesKeys(t *testing.T) {
	in := New()
	in.handle(&sdl.KeyboardEvent{Type: sdl.KEYDOWN, Keysym: sdl.Keysym{Scancode: sdl.SCANCODE_W}})
	if !in.Controls().Forward {
		t.Fatal("W should be held")
	}
	in.handle(&sdl.WindowEvent{Type: sdl.WINDOWEVENT, Event: sdl.WINDOWEVENT_FOCUS_LOST})
	if in.Controls().Forward {
		t.Error("focus loss should clear held keys")
	}
}
