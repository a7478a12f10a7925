package prop

import (
	"errors"
	"testing"
)

func TestStateToggle(t *testing.T) {
	if StateClosed.Toggle() != StateOpen {
		t.Error("closed should toggle to open")
	}
	if StateOpen.Toggle() != StateClosed {
		t.Error("open should toggle to closed")
	}
}

func TestStateString(t *testing.T) {
	tests := map[State]string{
		StateClosed: "closed",
		StateOpen:   "open",
		State(9):    "unknown",
	}
	for s, want := range tests {
		if got := s.String(); got != want {
			t.Errorf("State(%d).String() = %q, want %q", s, got, want)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"pivot", HingePivot},
		{"", HingePivot},
		{"hinge", HingeOffset},
		{"offset", HingeOffset},
		{"side_aware", HingeSideAware},
		{"Side-Aware", HingeSideAware},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil {
			t.Errorf("ParseMode(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if back, _ := ParseMode(got.String()); back != got {
			t.Errorf("ParseMode(%v.String()) = %v", got, back)
		}
	}

	if _, err := ParseMode("sliding"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for unknown mode, got %v", err)
	}
}

func TestProximityFollowsLastEvent(t *testing.T) {
	p := NewProximity("Player")
	a := &player{tag: "Player"}
	b := &player{tag: "Player"}

	if p.Enter("Monster", a) {
		t.Error("wrong tag should be ignored")
	}
	if p.InRange() {
		t.Fatal("expected out of range")
	}

	p.Enter("Player", a)
	p.Enter("Player", b)
	if p.Actor() != Actor(b) {
		t.Error("expected the most recent actor to be remembered")
	}

	p.Exit("Player", a)
	if p.InRange() {
		t.Error("exit clears the flag whichever actor left")
	}
	if p.Actor() != Actor(b) {
		t.Error("exit of another actor keeps the remembered reference")
	}

	p.Exit("Player", b)
	if p.Actor() != nil {
		t.Error("exit of the remembered actor clears the reference")
	}
}
