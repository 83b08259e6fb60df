package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	Up      = mgl64.Vec3{0, 1, 0}
	Right   = mgl64.Vec3{1, 0, 0}
	Forward = mgl64.Vec3{0, 0, 1}
)

// LerpVec3 moves a toward b by fraction t.
func LerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// SmoothingFactor converts an exponential smoothing rate (1/s) into the
// fraction of the remaining distance covered in dt seconds.
func SmoothingFactor(rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-rate*dt)
}

// NormalizeDegrees wraps an angle into [0, 360).
func NormalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// SignedDegrees wraps an angle into [-180, 180).
func SignedDegrees(deg float64) float64 {
	deg = NormalizeDegrees(deg)
	if deg >= 180 {
		deg -= 360
	}
	return deg
}

// LookRotation returns the head orientation for a yaw around +Y followed by
// a pitch around the local +X axis. Positive pitch looks down.
func LookRotation(yawDeg, pitchDeg float64) mgl64.Quat {
	yaw := mgl64.QuatRotate(mgl64.DegToRad(yawDeg), Up)
	pitch := mgl64.QuatRotate(mgl64.DegToRad(pitchDeg), Right)
	return yaw.Mul(pitch)
}

// YawRotation is a rotation about the vertical axis.
func YawRotation(yawDeg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(yawDeg), Up)
}

// Flatten drops the vertical component of v.
func Flatten(v mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X(), 0, v.Z()}
}

// PlanarDistance is the distance between a and b on the floor plane.
func PlanarDistance(a, b mgl64.Vec3) float64 {
	return math.Hypot(a.X()-b.X(), a.Z()-b.Z())
}

// SafeNormalize returns v scaled to unit length, or the zero vector when v
// is too short to have a direction.
func SafeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l < 1e-9 {
		return mgl64.Vec3{}
	}
	return v.Mul(1 / l)
}

// YawOf returns the heading of q in degrees: the angle from +Z toward +X of
// q's forward vector projected on the floor.
func YawOf(q mgl64.Quat) float64 {
	f := q.Rotate(Forward)
	if math.Abs(f.X()) < 1e-12 && math.Abs(f.Z()) < 1e-12 {
		return 0
	}
	return mgl64.RadToDeg(math.Atan2(f.X(), f.Z()))
}
