package world

import (
	"github.com/Faultbox/midgard-props/internal/game/entity"
)

// Binding maps a key name to a ground-plane direction.
type Binding struct {
	Key    string
	VX, VZ float32
}

// DefaultBindings move on the XZ plane with WASD and the arrow keys.
var DefaultBindings = []Binding{
	{"W", 0, 1}, {"UP", 0, 1},
	{"S", 0, -1}, {"DOWN", 0, -1},
	{"A", -1, 0}, {"LEFT", -1, 0},
	{"D", 1, 0}, {"RIGHT", 1, 0},
}

// MovementController turns key state into character movement.
type MovementController struct {
	character *entity.Character
	bindings  []Binding
}

// NewMovementController creates a movement controller with DefaultBindings.
func NewMovementController(character *entity.Character) *MovementController {
	return &MovementController{
		character: character,
		bindings:  DefaultBindings,
	}
}

// SetCharacter sets the character to control.
func (mc *MovementController) SetCharacter(character *entity.Character) {
	mc.character = character
}

// Character returns the controlled character.
func (mc *MovementController) Character() *entity.Character {
	return mc.character
}

// Velocity sums the directions of every active key.
func (mc *MovementController) Velocity(active func(key string) bool) (vx, vz float32) {
	for _, b := range mc.bindings {
		if active(b.Key) {
			vx += b.VX
			vz += b.VZ
		}
	}
	return vx, vz
}

// Update moves the character for dt seconds using the active keys.
// Returns true if the character moved.
func (mc *MovementController) Update(active func(key string) bool, dt float64) bool {
	if mc.character == nil {
		return false
	}
	vx, vz := mc.Velocity(active)
	mc.character.UpdateWithVelocity(vx, vz, dt)
	return mc.character.IsMoving
}
