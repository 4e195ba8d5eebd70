package physics

import rl "github.com/gen2brain/raylib-go/raylib"

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: absf(size.X) / 2, Y: absf(size.Y) / 2, Z: absf(size.Z) / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

func (a AABB) Contains(p rl.Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

// IntersectRay runs a slab test against the box. direction must be normalized.
// It returns the entry distance (exit distance when the origin is inside) and the face normal.
func (a AABB) IntersectRay(origin, direction rl.Vector3, maxDistance float32) (float32, rl.Vector3, bool) {
	tmin := float32(-1e30)
	tmax := float32(1e30)

	o := [3]float32{origin.X, origin.Y, origin.Z}
	d := [3]float32{direction.X, direction.Y, direction.Z}
	lo := [3]float32{a.Min.X, a.Min.Y, a.Min.Z}
	hi := [3]float32{a.Max.X, a.Max.Y, a.Max.Z}

	for i := 0; i < 3; i++ {
		if d[i] == 0 {
			if o[i] < lo[i] || o[i] > hi[i] {
				return 0, rl.Vector3{}, false
			}
			continue
		}
		t1 := (lo[i] - o[i]) / d[i]
		t2 := (hi[i] - o[i]) / d[i]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return 0, rl.Vector3{}, false
		}
	}

	if tmax < 0 {
		return 0, rl.Vector3{}, false
	}
	t := tmin
	if t < 0 {
		t = tmax
	}
	if t > maxDistance {
		return 0, rl.Vector3{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	return t, a.faceNormal(point), true
}

// faceNormal picks the face the point lies on, closest face wins.
func (a AABB) faceNormal(p rl.Vector3) rl.Vector3 {
	best := absf(p.X - a.Min.X)
	normal := rl.Vector3{X: -1}
	candidates := []struct {
		dist   float32
		normal rl.Vector3
	}{
		{absf(p.X - a.Max.X), rl.Vector3{X: 1}},
		{absf(p.Y - a.Min.Y), rl.Vector3{Y: -1}},
		{absf(p.Y - a.Max.Y), rl.Vector3{Y: 1}},
		{absf(p.Z - a.Min.Z), rl.Vector3{Z: -1}},
		{absf(p.Z - a.Max.Z), rl.Vector3{Z: 1}},
	}
	for _, c := range candidates {
		if c.dist < best {
			best = c.dist
			normal = c.normal
		}
	}
	return normal
}
