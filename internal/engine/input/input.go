// Package input handles SDL2 keyboard input for the windowed front end.
package input

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/midgard-props/internal/engine/keys"
)

// EventType is the kind of a processed input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
)

// Event represents a processed input event.
type Event struct {
	Type   EventType
	Key    string
	Width  int
	Height int
}

// Input polls SDL events once per frame and keeps per-frame key edges.
type Input struct {
	events []Event
	keys   *keys.State
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]Event, 0, 16),
		keys:   keys.New(),
	}
}

// Update polls SDL events and converts them to events and key edges.
// Returns true if the application should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]
	i.keys.BeginFrame()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, Event{Type: EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, Event{
					Type:   EventWindowResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			name := keys.Normalize(sdl.GetScancodeName(e.Keysym.Scancode))
			if e.Type == sdl.KEYDOWN {
				// OS key repeat is not a new press
				if e.Repeat != 0 {
					continue
				}
				i.keys.Down(name)
				i.events = append(i.events, Event{Type: EventKeyDown, Key: name})
			} else if e.Type == sdl.KEYUP {
				i.keys.Up(name)
				i.events = append(i.events, Event{Type: EventKeyUp, Key: name})
			}
		}
	}

	return false
}

// Events returns the events from the last Update.
func (i *Input) Events() []Event {
	return i.events
}

// WasPressedThisFrame reports whether the named key went down during the last Update.
func (i *Input) WasPressedThisFrame(name string) bool {
	return i.keys.WasPressedThisFrame(name)
}

// IsHeld reports whether the named key is currently down.
func (i *Input) IsHeld(name string) bool {
	return i.keys.IsHeld(name)
}
