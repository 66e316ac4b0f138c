package geom

import "math"

// Vec3 is a 3D vector/point in world units (Y up).
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

func (v Vec3) Dot(other Vec3) float64 {
	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3{
		X: v.Y*other.Z - v.Z*other.Y,
		Y: v.Z*other.X - v.X*other.Z,
		Z: v.X*other.Y - v.Y*other.X,
	}
}

func (v Vec3) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Normalize returns the unit vector; the zero vector normalizes to itself.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / l, Y: v.Y / l, Z: v.Z / l}
}

func (v Vec3) DistanceTo(other Vec3) float64 {
	return v.Sub(other).Length()
}

// DistanceToXZ is the horizontal distance, ignoring Y.
func (v Vec3) DistanceToXZ(other Vec3) float64 {
	return math.Hypot(v.X-other.X, v.Z-other.Z)
}

// RotateY rotates the vector about the Y axis by angle radians (counter-clockwise
// seen from +Y, matching a camera yaw).
func (v Vec3) RotateY(angle float64) Vec3 {
	s, c := math.Sin(angle), math.Cos(angle)
	return Vec3{
		X: c*v.X + s*v.Z,
		Y: v.Y,
		Z: -s*v.X + c*v.Z,
	}
}

// RotateX rotates the vector about the X axis by angle radians.
func (v Vec3) RotateX(angle float64) Vec3 {
	s, c := math.Sin(angle), math.Cos(angle)
	return Vec3{
		X: v.X,
		Y: c*v.Y - s*v.Z,
		Z: s*v.Y + c*v.Z,
	}
}

// RotateZ rotates the vector about the Z axis by angle radians.
func (v Vec3) RotateZ(angle float64) Vec3 {
	s, c := math.Sin(angle), math.Cos(angle)
	return Vec3{
		X: c*v.X - s*v.Y,
		Y: s*v.X + c*v.Y,
		Z: v.Z,
	}
}

// RotateYXZ applies a camera-style euler rotation (yaw about Y, then pitch about X,
// then roll about Z, extrinsic order Z, X, Y) to the vector.
func (v Vec3) RotateYXZ(yaw, pitch, roll float64) Vec3 {
	return v.RotateZ(roll).RotateX(pitch).RotateY(yaw)
}

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Damp moves current toward target with frame-rate independent exponential decay.
// lambda is the decay rate per second; larger is snappier.
func Damp(current, target, lambda, dt float64) float64 {
	return target + (current-target)*math.Exp(-lambda*dt)
}
