// Package input handles SDL2 input events.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/blockfield/internal/engine/camera"
)

// Event types for game use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    sdl.Scancode
	Width  int
	Height int
	MouseX int
	MouseY int
	Button uint8
}

// Input tracks per-frame events, held keys and relative pointer motion.
type Input struct {
	events []Event
	held   map[sdl.Scancode]bool
	dx, dy float32
	mx, my int
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		held:   make(map[sdl.Scancode]bool),
	}
}

// Update polls SDL events and converts them to game events.
// Returns true if the game should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.dx, i.dy = 0, 0

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		if i.handle(event) {
			return true
		}
	}
	return false
}

func (i *Input) handle(event sdl.Event) bool {
	switch e := event.(type) {
	case *sdl.QuitEvent:
		i.events = append(i.events, Event{Type: EventQuit})
		return true

	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_RESIZED || e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {
			i.events = append(i.events, Event{
				Type:   EventWindowResize,
				Width:  int(e.Data1),
				Height: int(e.Data2),
			})
		}
		if e.Event == sdl.WINDOWEVENT_FOCUS_LOST {
			// Key-up events are not delivered to unfocused windows
			clear(i.held)
		}

	case *sdl.KeyboardEvent:
		if e.Type == sdl.KEYDOWN {
			i.held[e.Keysym.Scancode] = true
			if e.Repeat != 0 {
				break
			}
			i.events = append(i.events, Event{
				Type: EventKeyDown,
				Key:  e.Keysym.Scancode,
			})
		} else if e.Type == sdl.KEYUP {
			delete(i.held, e.Keysym.Scancode)
			i.events = append(i.events, Event{
				Type: EventKeyUp,
				Key:  e.Keysym.Scancode,
			})
		}

	case *sdl.MouseMotionEvent:
		i.dx += float32(e.XRel)
		i.dy += float32(e.YRel)
		i.mx, i.my = int(e.X), int(e.Y)
		i.events = append(i.events, Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
		})

	case *sdl.MouseButtonEvent:
		t := EventMouseUp
		if e.Type == sdl.MOUSEBUTTONDOWN {
			t = EventMouseDown
		}
		i.mx, i.my = int(e.X), int(e.Y)
		i.events = append(i.events, Event{
			Type:   t,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			Button: e.Button,
		})
	}
	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// MousePosition returns the last known cursor position in window coordinates.
func (i *Input) MousePosition() (x, y int) {
	return i.mx, i.my
}

// PointerDelta returns the pointer motion accumulated during the last Update.
func (i *Input) PointerDelta() (dx, dy float32) {
	return i.dx, i.dy
}

// Controls maps held W/A/S/D to camera movement.
func (i *Input) Controls() camera.Controls {
	return camera.Controls{
		Forward: i.held[sdl.SCANCODE_W],
		Back:    i.held[sdl.SCANCODE_S],
		Left:    i.held[sdl.SCANCODE_A],
		Right:   i.held[sdl.SCANCODE_D],
	}
}
