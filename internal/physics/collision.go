package physics

import (
	"propfield/internal/components"
	"propfield/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// Closing speeds below this are treated as resting contact (no bounce).
	restingSpeed float32 = 0.5
	// Impacts faster than this wake a sleeping body.
	wakeSpeed float32 = 0.5
)

// colliderOBB builds the world-space box for a BoxCollider.
func colliderOBB(obj *engine.GameObject, box *components.BoxCollider) OBB {
	return NewOBBFromBox(box.GetCenter(), box.Size, obj.WorldRotation(), obj.WorldScale())
}

// contact describes an overlap between two bodies. Normal points from b to a.
type contact struct {
	normal      rl.Vector3
	penetration float32
}

// findContact runs the narrow phase for any supported collider pair.
func findContact(a, b *engine.GameObject) (contact, bool) {
	sphereA := engine.GetComponent[*components.SphereCollider](a)
	sphereB := engine.GetComponent[*components.SphereCollider](b)
	boxA := engine.GetComponent[*components.BoxCollider](a)
	boxB := engine.GetComponent[*components.BoxCollider](b)

	switch {
	case sphereA != nil && sphereB != nil:
		diff := rl.Vector3Subtract(sphereA.GetCenter(), sphereB.GetCenter())
		dist := rl.Vector3Length(diff)
		minDist := sphereA.Radius + sphereB.Radius
		if dist >= minDist {
			return contact{}, false
		}
		normal := rl.Vector3{Y: 1}
		if dist > 0.0001 {
			normal = rl.Vector3Scale(diff, 1/dist)
		}
		return contact{normal: normal, penetration: minDist - dist}, true

	case sphereA != nil && boxB != nil:
		normal, depth, ok := colliderOBB(b, boxB).SphereContact(sphereA.GetCenter(), sphereA.Radius)
		return contact{normal: normal, penetration: depth}, ok

	case boxA != nil && sphereB != nil:
		normal, depth, ok := colliderOBB(a, boxA).SphereContact(sphereB.GetCenter(), sphereB.Radius)
		return contact{normal: rl.Vector3Negate(normal), penetration: depth}, ok

	case boxA != nil && boxB != nil:
		pushOut := colliderOBB(a, boxA).ResolveOBB(colliderOBB(b, boxB))
		depth := rl.Vector3Length(pushOut)
		if depth < 0.0001 {
			return contact{}, false
		}
		return contact{normal: rl.Vector3Scale(pushOut, 1/depth), penetration: depth}, true
	}
	return contact{}, false
}

// restitution returns the bounce factor for a contact closing at velAlongNormal (negative).
func restitution(velAlongNormal, bouncinessA, bouncinessB float32) float32 {
	if -velAlongNormal < restingSpeed {
		return 0
	}
	return (bouncinessA + bouncinessB) / 2
}

// resolveCollision handles collision between two dynamic rigidbodies
func (p *PhysicsWorld) resolveCollision(a, b *engine.GameObject) {
	rbA := engine.GetComponent[*components.Rigidbody](a)
	rbB := engine.GetComponent[*components.Rigidbody](b)
	if rbA == nil || rbB == nil {
		return
	}

	// Skip if both objects are sleeping
	if rbA.IsSleeping && rbB.IsSleeping {
		return
	}

	c, ok := findContact(a, b)
	if !ok {
		return
	}

	relVel := rl.Vector3Subtract(rbA.Velocity, rbB.Velocity)
	velAlongNormal := rl.Vector3DotProduct(relVel, c.normal)

	// A sleeping body only wakes for a real impact; otherwise it acts as an immovable support.
	if rbA.IsSleeping && -velAlongNormal > wakeSpeed {
		rbA.Wake()
	}
	if rbB.IsSleeping && -velAlongNormal > wakeSpeed {
		rbB.Wake()
	}

	invA, invB := 1/rbA.Mass, 1/rbB.Mass
	if rbA.IsSleeping {
		invA = 0
	}
	if rbB.IsSleeping {
		invB = 0
	}
	invSum := invA + invB
	if invSum == 0 {
		return
	}

	// Split the push based on mass ratio
	a.Transform.Position = rl.Vector3Add(a.Transform.Position, rl.Vector3Scale(c.normal, c.penetration*invA/invSum))
	b.Transform.Position = rl.Vector3Subtract(b.Transform.Position, rl.Vector3Scale(c.normal, c.penetration*invB/invSum))

	// Only resolve if objects are moving toward each other
	if velAlongNormal >= 0 {
		return
	}

	e := restitution(velAlongNormal, rbA.Bounciness, rbB.Bounciness)
	j := -(1 + e) * velAlongNormal / invSum

	impulse := rl.Vector3Scale(c.normal, j)
	rbA.Velocity = rl.Vector3Add(rbA.Velocity, rl.Vector3Scale(impulse, invA))
	rbB.Velocity = rl.Vector3Subtract(rbB.Velocity, rl.Vector3Scale(impulse, invB))

	// Tangential friction
	friction := (rbA.Friction + rbB.Friction) / 2
	applyFriction(rbA, c.normal, friction)
	applyFriction(rbB, c.normal, friction)

	// Spheres roll off each other
	if sphere := engine.GetComponent[*components.SphereCollider](a); sphere != nil && invA > 0 {
		addRollTorque(rbA, rl.Vector3Negate(c.normal), sphere.Radius, impulse)
	}
	if sphere := engine.GetComponent[*components.SphereCollider](b); sphere != nil && invB > 0 {
		addRollTorque(rbB, c.normal, sphere.Radius, rl.Vector3Negate(impulse))
	}

	// Boxes spin from hits away from their center
	boxA := engine.GetComponent[*components.BoxCollider](a)
	boxB := engine.GetComponent[*components.BoxCollider](b)
	if boxA == nil && boxB == nil {
		return
	}
	point := contactPoint(a, b, c.normal)
	if boxA != nil && invA > 0 {
		addContactTorque(rbA, rl.Vector3Subtract(point, boxA.GetCenter()), impulse)
	}
	if boxB != nil && invB > 0 {
		addContactTorque(rbB, rl.Vector3Subtract(point, boxB.GetCenter()), rl.Vector3Negate(impulse))
	}
}

// contactPoint estimates where a and b touch. normal points from b to a.
// A sphere's surface point is exact; two boxes fall back to the midpoint of
// their centers.
func contactPoint(a, b *engine.GameObject, normal rl.Vector3) rl.Vector3 {
	if sphere := engine.GetComponent[*components.SphereCollider](b); sphere != nil {
		return rl.Vector3Add(sphere.GetCenter(), rl.Vector3Scale(normal, sphere.Radius))
	}
	if sphere := engine.GetComponent[*components.SphereCollider](a); sphere != nil {
		return rl.Vector3Subtract(sphere.GetCenter(), rl.Vector3Scale(normal, sphere.Radius))
	}
	return rl.Vector3Lerp(colliderCenter(a), colliderCenter(b), 0.5)
}

// resolveStaticCollision handles dynamic object colliding with static object
func (p *PhysicsWorld) resolveStaticCollision(obj, static *engine.GameObject) {
	rb := engine.GetComponent[*components.Rigidbody](obj)
	if rb == nil || rb.IsSleeping {
		return
	}

	c, ok := findContact(obj, static)
	if !ok {
		return
	}

	// Push fully out (static doesn't move)
	obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, rl.Vector3Scale(c.normal, c.penetration))

	velAlongNormal := rl.Vector3DotProduct(rb.Velocity, c.normal)
	if velAlongNormal >= 0 {
		return
	}

	e := restitution(velAlongNormal, rb.Bounciness, rb.Bounciness)
	impulse := rl.Vector3Scale(c.normal, -(1+e)*velAlongNormal)
	rb.Velocity = rl.Vector3Add(rb.Velocity, impulse)

	applyFriction(rb, c.normal, rb.Friction)

	if sphere := engine.GetComponent[*components.SphereCollider](obj); sphere != nil {
		addRollTorque(rb, rl.Vector3Negate(c.normal), sphere.Radius, impulse)
	}

	// Friction on angular velocity when on ground
	if c.normal.Y > 0.5 {
		rb.AngularVelocity.X *= (1 - rb.Friction*0.5)
		rb.AngularVelocity.Z *= (1 - rb.Friction*0.5)
	}
}

// applyFriction scales down the velocity component tangential to the contact normal.
func applyFriction(rb *components.Rigidbody, normal rl.Vector3, friction float32) {
	vn := rl.Vector3Scale(normal, rl.Vector3DotProduct(rb.Velocity, normal))
	vt := rl.Vector3Subtract(rb.Velocity, vn)
	rb.Velocity = rl.Vector3Add(vn, rl.Vector3Scale(vt, 1-clampf(friction, 0, 1)))
}

// addRollTorque spins a sphere from an impulse applied at its surface in direction toContact.
func addRollTorque(rb *components.Rigidbody, toContact rl.Vector3, radius float32, impulse rl.Vector3) {
	addContactTorque(rb, rl.Vector3Scale(toContact, radius), impulse)
}

// addContactTorque spins rb from an impulse applied at lever from its center.
func addContactTorque(rb *components.Rigidbody, lever, impulse rl.Vector3) {
	const torqueScale = 30.0
	torque := cross(lever, impulse)
	if isZero(torque) {
		return
	}
	rb.AngularVelocity = rl.Vector3Add(rb.AngularVelocity, rl.Vector3Scale(torque, torqueScale/rb.Mass))
}
