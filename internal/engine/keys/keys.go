// Package keys tracks per-frame key edges by key name, independent of the
// device the keys come from.
package keys

import (
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// State records which keys are held and which went down this frame.
type State struct {
	held    mapset.Set[string]
	pressed mapset.Set[string]
}

// New creates an empty key state.
func New() *State {
	return &State{
		held:    mapset.New[string](),
		pressed: mapset.New[string](),
	}
}

// BeginFrame forgets the previous frame's edges. Held keys stay held.
func (s *State) BeginFrame() {
	s.pressed = mapset.New[string]()
}

// Down records a key going down. Repeated downs while held are not edges.
func (s *State) Down(name string) {
	name = Normalize(name)
	if s.held.Has(name) {
		return
	}
	s.held.Put(name)
	s.pressed.Put(name)
}

// Up records a key release.
func (s *State) Up(name string) {
	s.held.Remove(Normalize(name))
}

// Tap records a press whose release is not observable, as on a terminal.
// Every tap is an edge.
func (s *State) Tap(name string) {
	name = Normalize(name)
	s.pressed.Put(name)
}

// WasPressedThisFrame reports whether name went down since BeginFrame.
func (s *State) WasPressedThisFrame(name string) bool {
	return s.pressed.Has(Normalize(name))
}

// IsHeld reports whether name is currently down.
func (s *State) IsHeld(name string) bool {
	return s.held.Has(Normalize(name))
}

// Pressed returns the keys that went down this frame, in no particular order.
func (s *State) Pressed() []string {
	out := make([]string, 0, s.pressed.Size())
	s.pressed.Each(func(name string) {
		out = append(out, name)
	})
	return out
}

var aliases = map[string]string{
	" ":      "SPACE",
	"ESC":    "ESCAPE",
	"RETURN": "ENTER",
	"\r":     "ENTER",
	"\n":     "ENTER",
}

// Normalize maps a key name to its canonical upper-case form.
func Normalize(name string) string {
	if alias, ok := aliases[name]; ok {
		return alias
	}
	upper := strings.ToUpper(strings.TrimSpace(name))
	if alias, ok := aliases[upper]; ok {
		return alias
	}
	return upper
}
