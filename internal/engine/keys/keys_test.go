package keys

import (
	"sort"
	"testing"
)

func TestDownIsEdgeOnce(t *testing.T) {
	s := New()

	s.BeginFrame()
	s.Down("e")
	if !s.WasPressedThisFrame("E") {
		t.Fatal("expected E pressed on the first frame")
	}

	// still held, OS key repeat
	s.BeginFrame()
	s.Down("E")
	if s.WasPressedThisFrame("E") {
		t.Error("held key should not produce another edge")
	}
	if !s.IsHeld("e") {
		t.Error("expected E to be held")
	}

	s.BeginFrame()
	s.Up("E")
	s.Down("E")
	if !s.WasPressedThisFrame("E") {
		t.Error("expected a new edge after release")
	}
}

func TestTapAlwaysEdges(t *testing.T) {
	s := New()

	for i := 0; i < 3; i++ {
		s.BeginFrame()
		s.Tap("q")
		if !s.WasPressedThisFrame("Q") {
			t.Fatalf("frame %d: expected tap to register", i)
		}
		if s.IsHeld("Q") {
			t.Fatalf("frame %d: taps are never held", i)
		}
	}

	s.BeginFrame()
	if s.WasPressedThisFrame("Q") {
		t.Error("tap should not survive into the next frame")
	}
}

func TestPressed(t *testing.T) {
	s := New()
	s.BeginFrame()
	s.Down("w")
	s.Tap("e")

	got := s.Pressed()
	sort.Strings(got)
	if len(got) != 2 || got[0] != "E" || got[1] != "W" {
		t.Errorf("Pressed() = %v, want [E W]", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"e":      "E",
		" E ":    "E",
		" ":      "SPACE",
		"space":  "SPACE",
		"esc":    "ESCAPE",
		"Return": "ENTER",
		"\r":     "ENTER",
		"F1":     "F1",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
