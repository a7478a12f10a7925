package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestCalculateDirection(t *testing.T) {
	tests := []struct {
		dx, dz float32
		want   Direction
	}{
		{0, 1, DirN},
		{1, 1, DirNE},
		{1, 0, DirE},
		{1, -1, DirSE},
		{0, -1, DirS},
		{-1, -1, DirSW},
		{-1, 0, DirW},
		{-1, 1, DirNW},
		{0.1, 1, DirN},
	}

	for _, tt := range tests {
		if got := CalculateDirection(tt.dx, tt.dz); got != tt.want {
			t.Errorf("CalculateDirection(%v, %v) = %v, want %v", tt.dx, tt.dz, got, tt.want)
		}
	}
}

func TestDirectionString(t *testing.T) {
	if DirSW.String() != "SW" {
		t.Errorf("DirSW.String() = %q", DirSW.String())
	}
	if Direction(12).String() != "?" {
		t.Errorf("out of range direction = %q", Direction(12).String())
	}
}

func TestParseDirection(t *testing.T) {
	for d := DirN; d <= DirNW; d++ {
		got, ok := ParseDirection(d.String())
		if !ok || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, ok)
		}
	}
	if _, ok := ParseDirection("up"); ok {
		t.Error("expected unknown name to be rejected")
	}
}

func TestUpdateWithVelocity(t *testing.T) {
	c := NewCharacter("hero", "Player", mgl32.Vec3{0, 0, 0}, 2)

	c.UpdateWithVelocity(0, 1, 0.5)
	if got := c.Position(); got.Sub(mgl32.Vec3{0, 0, 1}).Len() > 1e-5 {
		t.Errorf("position = %v, want (0,0,1)", got)
	}
	if !c.IsMoving || c.Direction != DirN {
		t.Errorf("moving=%v dir=%v, want moving north", c.IsMoving, c.Direction)
	}

	// Diagonal input is normalized to the same speed.
	c.SetPosition(mgl32.Vec3{})
	c.UpdateWithVelocity(1, 1, 1)
	if d := c.Position().Len(); d < 1.99 || d > 2.01 {
		t.Errorf("diagonal distance = %v, want 2", d)
	}

	c.UpdateWithVelocity(0, 0, 1)
	if c.IsMoving {
		t.Error("zero velocity should stop the character")
	}
}

func TestManager(t *testing.T) {
	m := NewManager()

	hero := NewCharacter("hero", "Player", mgl32.Vec3{}, 3)
	cat := NewCharacter("cat", "Pet", mgl32.Vec3{}, 1)
	m.SetPlayer(hero)
	m.Add(cat)

	if m.Count() != 2 {
		t.Fatalf("Count() = %d, want 2", m.Count())
	}
	if hero.ID == 0 || cat.ID == 0 || hero.ID == cat.ID {
		t.Errorf("expected distinct IDs, got %d and %d", hero.ID, cat.ID)
	}
	if m.Player() != hero {
		t.Error("Player() should return hero")
	}
	if all := m.All(); all[0] != hero || all[1] != cat {
		t.Error("All() should be ordered by ID")
	}

	m.Remove(hero.ID)
	if m.Player() != nil {
		t.Error("removing the player should clear Player()")
	}
	if m.Get(cat.ID) != cat {
		t.Error("Get() should return cat")
	}
}
