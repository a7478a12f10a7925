package prop

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-props/pkg/geom"
)

// Panel is the rigid body a controller swings: a door leaf or a chest lid.
// HingeOffset is the vector from the panel origin to its hinge axis, in the
// panel's local frame.
type Panel struct {
	Position    mgl32.Vec3
	Rotation    mgl32.Quat
	HingeOffset mgl32.Vec3
}

// NewPanel creates a panel at position with the given orientation.
func NewPanel(position mgl32.Vec3, rotation mgl32.Quat, hingeOffset mgl32.Vec3) *Panel {
	return &Panel{
		Position:    position,
		Rotation:    rotation.Normalize(),
		HingeOffset: hingeOffset,
	}
}

// Hinge returns the hinge point in world space.
func (p *Panel) Hinge() mgl32.Vec3 {
	return geom.PivotWorld(p.Position, p.Rotation, p.HingeOffset)
}

// Forward returns the panel's forward axis in world space.
func (p *Panel) Forward() mgl32.Vec3 {
	return geom.ForwardOf(p.Rotation)
}

// SwingTo rotates the panel toward target by fraction t of the remaining arc,
// keeping the hinge point fixed in world space.
func (p *Panel) SwingTo(target mgl32.Quat, t float32) {
	p.swingAbout(p.HingeOffset, target, t)
}

// swingAbout moves the origin to the pivot, rotates, and moves it back by the
// same local offset expressed in the new orientation.
func (p *Panel) swingAbout(offset mgl32.Vec3, target mgl32.Quat, t float32) {
	pivot := geom.PivotWorld(p.Position, p.Rotation, offset)
	p.Rotation = geom.Slerp(p.Rotation, target, t)
	p.Position = pivot.Sub(p.Rotation.Rotate(offset))
}

// HingeOffsetFromWorld converts an external hinge point given in world space
// into the local offset a Panel expects.
func HingeOffsetFromWorld(p *Panel, hinge mgl32.Vec3) mgl32.Vec3 {
	return geom.PivotLocal(p.Position, p.Rotation, hinge)
}
