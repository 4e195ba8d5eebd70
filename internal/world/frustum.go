package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum represents the 6 planes of a view frustum for culling
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane represents a plane in 3D space (ax + by + cz + d = 0)
type Plane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum extracts frustum planes from view and projection matrices
// using the Gribb/Hartmann method.
func ExtractFrustum(view, proj rl.Matrix) Frustum {
	vp := rl.MatrixMultiply(view, proj)

	// Rows of the combined matrix (raylib stores column-major M0..M15)
	row := func(i int) (float32, float32, float32, float32) {
		switch i {
		case 0:
			return vp.M0, vp.M4, vp.M8, vp.M12
		case 1:
			return vp.M1, vp.M5, vp.M9, vp.M13
		case 2:
			return vp.M2, vp.M6, vp.M10, vp.M14
		default:
			return vp.M3, vp.M7, vp.M11, vp.M15
		}
	}
	wx, wy, wz, ww := row(3)
	plane := func(r int, sign float32) Plane {
		x, y, z, d := row(r)
		return normalizePlane(Plane{
			normal:   rl.Vector3{X: wx + sign*x, Y: wy + sign*y, Z: wz + sign*z},
			distance: ww + sign*d,
		})
	}

	var f Frustum
	f.planes[0] = plane(0, 1)  // left
	f.planes[1] = plane(0, -1) // right
	f.planes[2] = plane(1, 1)  // bottom
	f.planes[3] = plane(1, -1) // top
	f.planes[4] = plane(2, 1)  // near
	f.planes[5] = plane(2, -1) // far
	return f
}

// normalizePlane normalizes a plane equation
func normalizePlane(p Plane) Plane {
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return Plane{
		normal:   rl.Vector3Scale(p.normal, 1.0/length),
		distance: p.distance / length,
	}
}

// ContainsSphere tests if a sphere is inside or intersects the frustum
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for i := 0; i < 6; i++ {
		dist := rl.Vector3DotProduct(f.planes[i].normal, center) + f.planes[i].distance
		if dist < -radius {
			return false
		}
	}
	return true
}

// ContainsPoint tests if a point is inside the frustum
func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	for i := 0; i < 6; i++ {
		dist := rl.Vector3DotProduct(f.planes[i].normal, point) + f.planes[i].distance
		if dist < 0 {
			return false
		}
	}
	return true
}
