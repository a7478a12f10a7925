package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func TestAxisAngle(t *testing.T) {
	// 90 degrees around Y
	q := AxisAngle(mgl32.Vec3{0, 2, 0}, 90)

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))
	if !near(q.W, expectedW, 0.001) {
		t.Errorf("AxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if !near(q.V[1], expectedY, 0.001) {
		t.Errorf("AxisAngle Y: expected %v, got %v", expectedY, q.V[1])
	}
}

func TestAxisAngleZeroAxis(t *testing.T) {
	q := AxisAngle(mgl32.Vec3{}, 45)
	if q != mgl32.QuatIdent() {
		t.Errorf("zero axis should give identity, got %v", q)
	}
}

func TestEulerSingleAxis(t *testing.T) {
	tests := []struct {
		name    string
		q       mgl32.Quat
		axis    mgl32.Vec3
		degrees float32
	}{
		{"yaw", Euler(0, 90, 0), AxisY, 90},
		{"pitch", Euler(-270, 0, 0), AxisX, -270},
		{"roll", Euler(0, 0, 30), AxisZ, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := AxisAngle(tt.axis, tt.degrees)
			if a := Angle(tt.q, want); a > 0.01 {
				t.Errorf("Euler differs from axis-angle by %v degrees", a)
			}
		})
	}
}

func TestSlerpEndpoints(t *testing.T) {
	q1 := mgl32.QuatIdent()
	q2 := AxisAngle(AxisY, 90)

	if a := Angle(Slerp(q1, q2, 0), q1); a > 0.01 {
		t.Errorf("Slerp at t=0 should equal q1, off by %v", a)
	}
	if a := Angle(Slerp(q1, q2, 1), q2); a > 0.01 {
		t.Errorf("Slerp at t=1 should equal q2, off by %v", a)
	}
	if a := Angle(Slerp(q1, q2, 5), q2); a > 0.01 {
		t.Errorf("Slerp with t>1 should clamp to q2, off by %v", a)
	}
	if a := Angle(Slerp(q1, q2, -1), q1); a > 0.01 {
		t.Errorf("Slerp with t<0 should clamp to q1, off by %v", a)
	}
}

func TestSlerpHalfway(t *testing.T) {
	q1 := mgl32.QuatIdent()
	q2 := AxisAngle(AxisY, 90)

	mid := Slerp(q1, q2, 0.5)
	if a := Angle(mid, AxisAngle(AxisY, 45)); a > 0.05 {
		t.Errorf("Slerp at t=0.5 should be 45 degrees, off by %v", a)
	}
}

func TestSlerpShortestArc(t *testing.T) {
	// -270 about X is the same orientation as +90 about X, reached the short way
	q1 := mgl32.QuatIdent()
	q2 := AxisAngle(AxisX, -270)

	mid := Slerp(q1, q2, 0.5)
	if a := Angle(q1, mid); !near(a, 45, 0.05) {
		t.Errorf("expected 45 degrees after half a step, got %v", a)
	}
	if a := Angle(mid, AxisAngle(AxisX, 45)); a > 0.05 {
		t.Errorf("expected rotation toward +X, off by %v", a)
	}
}

func TestAngle(t *testing.T) {
	tests := []struct {
		a, b mgl32.Quat
		want float32
	}{
		{mgl32.QuatIdent(), mgl32.QuatIdent(), 0},
		{mgl32.QuatIdent(), AxisAngle(AxisY, 90), 90},
		{AxisAngle(AxisY, 30), AxisAngle(AxisY, -30), 60},
		{mgl32.QuatIdent(), AxisAngle(AxisX, 270), 90},
		{mgl32.QuatIdent(), AxisAngle(AxisZ, 180), 180},
	}

	for _, tt := range tests {
		if got := Angle(tt.a, tt.b); !near(got, tt.want, 0.01) {
			t.Errorf("Angle(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSide(t *testing.T) {
	tests := []struct {
		name string
		v    mgl32.Vec3
		want float32
	}{
		{"front", mgl32.Vec3{0, 0, 3}, 1},
		{"behind", mgl32.Vec3{0, 0, -3}, -1},
		{"in plane", mgl32.Vec3{2, 1, 0}, 1},
		{"zero", mgl32.Vec3{}, 1},
	}

	for _, tt := range tests {
		if got := Side(Forward, tt.v); got != tt.want {
			t.Errorf("%s: Side() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestPivotRoundTrip(t *testing.T) {
	pos := mgl32.Vec3{3, 0, -2}
	rot := Euler(10, 70, 0)
	local := mgl32.Vec3{-0.5, 0, 0.1}

	world := PivotWorld(pos, rot, local)
	back := PivotLocal(pos, rot, world)
	if back.Sub(local).Len() > 1e-5 {
		t.Errorf("PivotLocal(PivotWorld(p)) = %v, want %v", back, local)
	}
}

func TestForwardOf(t *testing.T) {
	f := ForwardOf(AxisAngle(AxisY, 90))
	if f.Sub(mgl32.Vec3{1, 0, 0}).Len() > 1e-5 {
		t.Errorf("forward after +90 yaw = %v, want +X", f)
	}
}

func TestFinite(t *testing.T) {
	if !Finite(mgl32.Vec3{1, 2, 3}) {
		t.Error("expected finite vector")
	}
	nan := float32(math.NaN())
	if Finite(mgl32.Vec3{0, nan, 0}) {
		t.Error("NaN component should not be finite")
	}
	inf := float32(math.Inf(1))
	if Finite(mgl32.Vec3{inf, 0, 0}) {
		t.Error("Inf component should not be finite")
	}
}
