// Package geom provides the rotation helpers the prop controllers are built on.
// Vectors and quaternions are mathgl's mgl32 types.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Local axes of a panel. Forward is +Z.
var (
	AxisX   = mgl32.Vec3{1, 0, 0}
	AxisY   = mgl32.Vec3{0, 1, 0}
	AxisZ   = mgl32.Vec3{0, 0, 1}
	Forward = AxisZ
)

// nlerpThreshold is the cosine above which slerp falls back to normalized lerp.
const nlerpThreshold = 0.9995

// AxisAngle returns a rotation of degrees about axis. The axis does not have to
// be normalized; a zero axis yields the identity.
func AxisAngle(axis mgl32.Vec3, degrees float32) mgl32.Quat {
	if axis.Len() == 0 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatRotate(mgl32.DegToRad(degrees), axis.Normalize())
}

// Euler builds a rotation from angles in degrees, applied about Z, then X,
// then Y.
func Euler(x, y, z float32) mgl32.Quat {
	qx := AxisAngle(AxisX, x)
	qy := AxisAngle(AxisY, y)
	qz := AxisAngle(AxisZ, z)
	return qy.Mul(qx).Mul(qz).Normalize()
}

// Slerp interpolates from a toward b along the shortest arc.
// t is clamped to [0, 1], so t >= 1 lands exactly on b.
func Slerp(a, b mgl32.Quat, t float32) mgl32.Quat {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b.Normalize()
	}

	// q and -q encode the same orientation; pick the one on a's hemisphere
	if a.Dot(b) < 0 {
		b = b.Scale(-1)
	}

	if a.Normalize().Dot(b.Normalize()) > nlerpThreshold {
		return mgl32.QuatNlerp(a, b, t)
	}
	return mgl32.QuatSlerp(a, b, t).Normalize()
}

// Angle returns the angular distance between two orientations in degrees,
// in the range [0, 180].
func Angle(a, b mgl32.Quat) float32 {
	r := a.Normalize().Conjugate().Mul(b.Normalize())
	v := float64(r.V.Len())
	w := math.Abs(float64(r.W))
	return float32(2 * math.Atan2(v, w) * 180 / math.Pi)
}

// ForwardOf returns the forward axis of an orientation in world space.
func ForwardOf(q mgl32.Quat) mgl32.Vec3 {
	return q.Rotate(Forward)
}

// Side returns +1 when v points along axis and -1 when it points against it.
// A zero projection resolves to +1.
func Side(axis, v mgl32.Vec3) float32 {
	if axis.Dot(v) < 0 {
		return -1
	}
	return 1
}

// PivotWorld returns the world position of a point given in the local frame
// of a body at position with the given orientation.
func PivotWorld(position mgl32.Vec3, rotation mgl32.Quat, local mgl32.Vec3) mgl32.Vec3 {
	return position.Add(rotation.Rotate(local))
}

// PivotLocal is the inverse of PivotWorld: it expresses a world point in the
// local frame of a body.
func PivotLocal(position mgl32.Vec3, rotation mgl32.Quat, world mgl32.Vec3) mgl32.Vec3 {
	return rotation.Normalize().Conjugate().Rotate(world.Sub(position))
}

// Finite reports whether every component of v is a finite number.
func Finite(v mgl32.Vec3) bool {
	for _, c := range v {
		f := float64(c)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return false
		}
	}
	return true
}
