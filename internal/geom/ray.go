package geom

import "math"

const rayEpsilon = 1e-9

// Triangle is three world-space vertices.
type Triangle [3]Vec3

// Ray is an origin plus a unit direction.
type Ray struct {
	Origin, Dir Vec3
}

// Down returns a ray pointing straight down from origin.
func Down(origin Vec3) Ray {
	return Ray{Origin: origin, Dir: Vec3{Y: -1}}
}

// IntersectTriangle runs the Moller-Trumbore test and returns the hit distance
// along the ray, or ok=false when the ray misses or the triangle is behind it.
func (r Ray) IntersectTriangle(t Triangle) (dist float64, ok bool) {
	e1 := t[1].Sub(t[0])
	e2 := t[2].Sub(t[0])
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1.0 / det
	s := r.Origin.Sub(t[0])
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	d := e2.Dot(q) * inv
	if d <= rayEpsilon {
		return 0, false
	}
	return d, true
}

// IntersectAny reports whether the ray hits any triangle in the slice within
// maxDist. Used for the floor presence probe, where only hit/miss matters.
func (r Ray) IntersectAny(tris []Triangle, maxDist float64) bool {
	for _, t := range tris {
		if d, ok := r.IntersectTriangle(t); ok && d <= maxDist {
			return true
		}
	}
	return false
}

// IntersectBox is a slab test against an AABB. Returns the entry distance along
// the ray, or ok=false on a miss.
func (r Ray) IntersectBox(b Box3) (dist float64, ok bool) {
	tMin, tMax := 0.0, math.Inf(1)
	origin := [3]float64{r.Origin.X, r.Origin.Y, r.Origin.Z}
	dir := [3]float64{r.Dir.X, r.Dir.Y, r.Dir.Z}
	lo := [3]float64{b.Min.X, b.Min.Y, b.Min.Z}
	hi := [3]float64{b.Max.X, b.Max.Y, b.Max.Z}
	for i := 0; i < 3; i++ {
		if math.Abs(dir[i]) < rayEpsilon {
			if origin[i] < lo[i] || origin[i] > hi[i] {
				return 0, false
			}
			continue
		}
		inv := 1.0 / dir[i]
		t0 := (lo[i] - origin[i]) * inv
		t1 := (hi[i] - origin[i]) * inv
		if inv < 0 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return 0, false
		}
	}
	return tMin, true
}
