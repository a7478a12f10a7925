package entity

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// Direction is an 8-way compass heading. North is +Z, east is +X.
type Direction int

const (
	DirN Direction = iota
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
)

var directionNames = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "?"
	}
	return directionNames[d]
}

// ParseDirection is the inverse of String.
func ParseDirection(s string) (Direction, bool) {
	for i, name := range directionNames {
		if name == s {
			return Direction(i), true
		}
	}
	return DirN, false
}

// Character is a movable actor that props can sense.
type Character struct {
	ID   uint32
	Name string

	tag      string
	position mgl32.Vec3

	// Movement state
	IsMoving  bool
	Direction Direction
	MoveSpeed float32 // Units per second
}

// NewCharacter creates a character with the given trigger tag at pos.
func NewCharacter(name, tag string, pos mgl32.Vec3, speed float32) *Character {
	return &Character{
		Name:      name,
		tag:       tag,
		position:  pos,
		Direction: DirN,
		MoveSpeed: speed,
	}
}

// Tag returns the tag trigger volumes match against.
func (c *Character) Tag() string {
	return c.tag
}

// Position returns the character's world position.
func (c *Character) Position() mgl32.Vec3 {
	return c.position
}

// SetPosition sets the character's world position.
func (c *Character) SetPosition(pos mgl32.Vec3) {
	c.position = pos
}

// UpdateWithVelocity moves the character on the ground plane.
// vx, vz are velocity components (normalized -1 to 1), dt is in seconds.
func (c *Character) UpdateWithVelocity(vx, vz float32, dt float64) {
	speed := sqrtf32(vx*vx + vz*vz)
	if speed < 0.01 || dt <= 0 {
		c.IsMoving = false
		return
	}
	if speed > 1 {
		vx /= speed
		vz /= speed
	}

	moveAmount := c.MoveSpeed * float32(dt)
	c.position[0] += vx * moveAmount
	c.position[2] += vz * moveAmount
	c.IsMoving = true

	c.Direction = CalculateDirection(vx, vz)
}

// CalculateDirection converts a movement delta to a compass direction.
func CalculateDirection(dx, dz float32) Direction {
	// angle=0 is +Z, increasing toward +X
	angle := gomath.Atan2(float64(dx), float64(dz))
	if angle < 0 {
		angle += 2 * gomath.Pi
	}

	// Eight sectors of 45 degrees, each centred on its heading
	sector := int((angle + gomath.Pi/8) / (gomath.Pi / 4))
	if sector >= 8 {
		sector = 0
	}
	return Direction(sector)
}

func sqrtf32(x float32) float32 {
	return float32(gomath.Sqrt(float64(x)))
}
