package physics

import (
	"math"
	"propfield/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OBB represents an Oriented Bounding Box
type OBB struct {
	Center   rl.Vector3    // World-space center
	HalfSize rl.Vector3    // Half-extents along local axes
	Axes     [3]rl.Vector3 // Local X, Y, Z axes (rotated)
}

// NewOBB creates an OBB from center, size, and euler rotation (degrees)
func NewOBB(center, size, rotation rl.Vector3) OBB {
	rotMatrix := engine.RotationMatrix(rotation)

	axes := [3]rl.Vector3{
		rl.Vector3Normalize(rl.Vector3{X: rotMatrix.M0, Y: rotMatrix.M1, Z: rotMatrix.M2}),
		rl.Vector3Normalize(rl.Vector3{X: rotMatrix.M4, Y: rotMatrix.M5, Z: rotMatrix.M6}),
		rl.Vector3Normalize(rl.Vector3{X: rotMatrix.M8, Y: rotMatrix.M9, Z: rotMatrix.M10}),
	}

	return OBB{
		Center:   center,
		HalfSize: rl.Vector3{X: absf(size.X) / 2, Y: absf(size.Y) / 2, Z: absf(size.Z) / 2},
		Axes:     axes,
	}
}

// toLocal expresses a world point relative to the box center in the box axes.
func (o OBB) toLocal(p rl.Vector3) rl.Vector3 {
	d := rl.Vector3Subtract(p, o.Center)
	return rl.Vector3{
		X: rl.Vector3DotProduct(d, o.Axes[0]),
		Y: rl.Vector3DotProduct(d, o.Axes[1]),
		Z: rl.Vector3DotProduct(d, o.Axes[2]),
	}
}

// toLocalDir rotates a world direction into the box axes.
func (o OBB) toLocalDir(v rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: rl.Vector3DotProduct(v, o.Axes[0]),
		Y: rl.Vector3DotProduct(v, o.Axes[1]),
		Z: rl.Vector3DotProduct(v, o.Axes[2]),
	}
}

// toWorldDir rotates a local direction back to world space.
func (o OBB) toWorldDir(v rl.Vector3) rl.Vector3 {
	out := rl.Vector3Scale(o.Axes[0], v.X)
	out = rl.Vector3Add(out, rl.Vector3Scale(o.Axes[1], v.Y))
	return rl.Vector3Add(out, rl.Vector3Scale(o.Axes[2], v.Z))
}

// localBounds is the box in its own frame.
func (o OBB) localBounds() AABB {
	return AABB{Min: rl.Vector3Negate(o.HalfSize), Max: o.HalfSize}
}

// IntersectRay casts a world-space ray against the box.
func (o OBB) IntersectRay(origin, direction rl.Vector3, maxDistance float32) (float32, rl.Vector3, bool) {
	t, localNormal, ok := o.localBounds().IntersectRay(o.toLocal(origin), o.toLocalDir(direction), maxDistance)
	if !ok {
		return 0, rl.Vector3{}, false
	}
	return t, o.toWorldDir(localNormal), true
}

// IntersectsOBB tests if two OBBs intersect using the Separating Axis Theorem
func (a OBB) IntersectsOBB(b OBB) bool {
	t := rl.Vector3Subtract(b.Center, a.Center)

	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, a.Axes[i], t) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		if !overlapOnAxis(a, b, b.Axes[i], t) {
			return false
		}
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			axis := rl.Vector3CrossProduct(a.Axes[i], b.Axes[j])
			if rl.Vector3Length(axis) < 0.0001 {
				continue // parallel edges
			}
			if !overlapOnAxis(a, b, rl.Vector3Normalize(axis), t) {
				return false
			}
		}
	}
	return true
}

func projectedRadius(o OBB, axis rl.Vector3) float32 {
	return o.HalfSize.X*absf(rl.Vector3DotProduct(o.Axes[0], axis)) +
		o.HalfSize.Y*absf(rl.Vector3DotProduct(o.Axes[1], axis)) +
		o.HalfSize.Z*absf(rl.Vector3DotProduct(o.Axes[2], axis))
}

// overlapOnAxis checks if two OBBs overlap when projected onto a given axis
func overlapOnAxis(a, b OBB, axis, t rl.Vector3) bool {
	distance := absf(rl.Vector3DotProduct(t, axis))
	return distance <= projectedRadius(a, axis)+projectedRadius(b, axis)
}

// ResolveOBB returns the minimum translation vector to push 'a' out of 'b'
// Returns zero vector if no overlap
func (a OBB) ResolveOBB(b OBB) rl.Vector3 {
	if !a.IntersectsOBB(b) {
		return rl.Vector3Zero()
	}

	t := rl.Vector3Subtract(b.Center, a.Center)
	minPenetration := float32(math.MaxFloat32)
	var mtv rl.Vector3

	testAxis := func(axis rl.Vector3) {
		if rl.Vector3Length(axis) < 0.0001 {
			return
		}
		axis = rl.Vector3Normalize(axis)

		dist := rl.Vector3DotProduct(t, axis)
		penetration := projectedRadius(a, axis) + projectedRadius(b, axis) - absf(dist)

		if penetration < minPenetration {
			minPenetration = penetration
			// Push in the direction away from B
			if dist < 0 {
				mtv = rl.Vector3Scale(axis, penetration)
			} else {
				mtv = rl.Vector3Scale(axis, -penetration)
			}
		}
	}

	for i := 0; i < 3; i++ {
		testAxis(a.Axes[i])
	}
	for i := 0; i < 3; i++ {
		testAxis(b.Axes[i])
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			testAxis(rl.Vector3CrossProduct(a.Axes[i], b.Axes[j]))
		}
	}

	return mtv
}

// ClosestPointOnOBB returns the closest point on or inside the OBB to the given point
func ClosestPointOnOBB(o OBB, point rl.Vector3) rl.Vector3 {
	local := o.toLocal(point)
	clamped := rl.Vector3{
		X: clampf(local.X, -o.HalfSize.X, o.HalfSize.X),
		Y: clampf(local.Y, -o.HalfSize.Y, o.HalfSize.Y),
		Z: clampf(local.Z, -o.HalfSize.Z, o.HalfSize.Z),
	}
	return rl.Vector3Add(o.Center, o.toWorldDir(clamped))
}

// SphereContact returns the contact normal (pointing from box to sphere) and penetration depth.
// A sphere whose center is already inside the box is pushed out through the nearest face.
func (o OBB) SphereContact(center rl.Vector3, radius float32) (rl.Vector3, float32, bool) {
	local := o.toLocal(center)
	inside := absf(local.X) <= o.HalfSize.X &&
		absf(local.Y) <= o.HalfSize.Y &&
		absf(local.Z) <= o.HalfSize.Z

	if !inside {
		closest := ClosestPointOnOBB(o, center)
		diff := rl.Vector3Subtract(center, closest)
		dist := rl.Vector3Length(diff)
		if dist >= radius || dist < 0.00001 {
			return rl.Vector3{}, 0, false
		}
		return rl.Vector3Scale(diff, 1/dist), radius - dist, true
	}

	// Nearest face wins
	faces := [3]struct {
		half, coord float32
	}{
		{o.HalfSize.X, local.X},
		{o.HalfSize.Y, local.Y},
		{o.HalfSize.Z, local.Z},
	}
	axis := 0
	depth := float32(math.MaxFloat32)
	for i, f := range faces {
		if d := f.half - absf(f.coord); d < depth {
			depth = d
			axis = i
		}
	}
	normal := o.Axes[axis]
	if faces[axis].coord < 0 {
		normal = rl.Vector3Negate(normal)
	}
	return normal, depth + radius, true
}

// NewOBBFromBox creates an OBB from center, size, rotation, and scale
func NewOBBFromBox(center, size, rotation, scale rl.Vector3) OBB {
	scaledSize := rl.Vector3{
		X: size.X * scale.X,
		Y: size.Y * scale.Y,
		Z: size.Z * scale.Z,
	}
	return NewOBB(center, scaledSize, rotation)
}
