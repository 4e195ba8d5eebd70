package physics

import (
	"math"
	"propfield/internal/components"
	"propfield/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type RaycastHit struct {
	GameObject *engine.GameObject
	Point      rl.Vector3
	Normal     rl.Vector3
	Distance   float32
}

// Raycast checks every registered body and returns the closest hit.
func (p *PhysicsWorld) Raycast(origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	all := make([]*engine.GameObject, 0, len(p.Objects)+len(p.Statics))
	all = append(all, p.Objects...)
	all = append(all, p.Statics...)
	return RaycastObjects(all, origin, direction, maxDistance)
}

// RaycastObjects tests a ray against the colliders of objs. Inactive objects are skipped.
func RaycastObjects(objs []*engine.GameObject, origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	if isZero(direction) {
		return RaycastHit{}, false
	}
	direction = rl.Vector3Normalize(direction)

	var closestHit RaycastHit
	closestHit.Distance = maxDistance
	hit := false

	for _, obj := range objs {
		if !obj.Active {
			continue
		}
		if box := engine.GetComponent[*components.BoxCollider](obj); box != nil {
			if hitInfo, ok := raycastBox(origin, direction, obj, box, maxDistance); ok && hitInfo.Distance <= closestHit.Distance {
				closestHit = hitInfo
				closestHit.GameObject = obj
				hit = true
			}
		}
		if sphere := engine.GetComponent[*components.SphereCollider](obj); sphere != nil {
			if hitInfo, ok := raycastSphere(origin, direction, sphere, maxDistance); ok && hitInfo.Distance <= closestHit.Distance {
				closestHit = hitInfo
				closestHit.GameObject = obj
				hit = true
			}
		}
	}

	return closestHit, hit
}

func raycastBox(origin, direction rl.Vector3, obj *engine.GameObject, box *components.BoxCollider, maxDistance float32) (RaycastHit, bool) {
	t, normal, ok := colliderOBB(obj, box).IntersectRay(origin, direction, maxDistance)
	if !ok {
		return RaycastHit{}, false
	}
	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

func raycastSphere(origin, direction rl.Vector3, sphere *components.SphereCollider, maxDistance float32) (RaycastHit, bool) {
	center := sphere.GetCenter()
	radius := sphere.Radius

	oc := rl.Vector3Subtract(origin, center)
	b := 2.0 * rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - radius*radius

	discriminant := b*b - 4*c
	if discriminant < 0 {
		return RaycastHit{}, false
	}

	sqrtD := float32(math.Sqrt(float64(discriminant)))
	t := (-b - sqrtD) / 2
	if t < 0 {
		t = (-b + sqrtD) / 2
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := rl.Vector3Normalize(rl.Vector3Subtract(point, center))

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}
