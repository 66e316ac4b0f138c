package geom

import "math"

// Box3 is an axis-aligned bounding box. The empty box has Min > Max so that the
// first expansion snaps to the expanding point.
type Box3 struct {
	Min, Max Vec3
}

// EmptyBox returns a box that contains nothing; ExpandByPoint on it yields a
// degenerate box at the point.
func EmptyBox() Box3 {
	inf := math.Inf(1)
	return Box3{
		Min: Vec3{X: inf, Y: inf, Z: inf},
		Max: Vec3{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether the box contains no volume (never expanded).
func (b Box3) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

func (b Box3) ExpandByPoint(p Vec3) Box3 {
	return Box3{
		Min: Vec3{X: math.Min(b.Min.X, p.X), Y: math.Min(b.Min.Y, p.Y), Z: math.Min(b.Min.Z, p.Z)},
		Max: Vec3{X: math.Max(b.Max.X, p.X), Y: math.Max(b.Max.Y, p.Y), Z: math.Max(b.Max.Z, p.Z)},
	}
}

func (b Box3) Union(other Box3) Box3 {
	if other.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return other
	}
	return b.ExpandByPoint(other.Min).ExpandByPoint(other.Max)
}

func (b Box3) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

func (b Box3) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// InsetXZ shrinks the box horizontally by margin on each side. Y is untouched.
// Used to keep the camera off the outer walls.
func (b Box3) InsetXZ(margin float64) Box3 {
	b.Min.X += margin
	b.Min.Z += margin
	b.Max.X -= margin
	b.Max.Z -= margin
	return b
}

// ClampXZ clamps the point's horizontal components into the box, inclusive.
func (b Box3) ClampXZ(p Vec3) Vec3 {
	p.X = Clamp(p.X, b.Min.X, b.Max.X)
	p.Z = Clamp(p.Z, b.Min.Z, b.Max.Z)
	return p
}
