package physics

import (
	"math"
	"testing"

	"propfield/internal/components"
	"propfield/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var gravity = rl.Vector3{Y: -9.81}

func newFloor() *engine.GameObject {
	floor := engine.NewGameObject("Floor")
	floor.Transform.Position = rl.Vector3{Y: -3.2}
	floor.AddComponent(components.NewBoxCollider(rl.Vector3{X: 10, Y: 5, Z: 10}))
	return floor
}

func newSphere(radius, mass float32, pos rl.Vector3) *engine.GameObject {
	s := engine.NewGameObject("Sphere")
	s.Transform.Position = pos
	s.AddComponent(components.NewSphereCollider(radius))
	s.AddComponent(components.NewRigidbody(mass))
	return s
}

func newBox(size rl.Vector3, mass float32, pos rl.Vector3) *engine.GameObject {
	b := engine.NewGameObject("Box")
	b.Transform.Position = pos
	b.AddComponent(components.NewBoxCollider(size))
	b.AddComponent(components.NewRigidbody(mass))
	return b
}

func simulate(p *PhysicsWorld, seconds float32) {
	for t := float32(0); t < seconds; t += 1.0 / 60.0 {
		p.Step(1.0 / 60.0)
	}
}

func near(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func TestSphereComesToRestOnFloor(t *testing.T) {
	p := NewPhysicsWorld(gravity)
	p.AddMesh(newFloor())
	sphere := newSphere(0.05, 5, rl.Vector3{Y: 1})
	p.AddMesh(sphere)

	simulate(p, 5)

	// Floor top is at -0.7
	if y := sphere.Transform.Position.Y; !near(y, -0.65, 0.02) {
		t.Errorf("Expected sphere resting at y=-0.65, got %f", y)
	}
	if rb := engine.GetComponent[*components.Rigidbody](sphere); !rb.IsSleeping {
		t.Error("Resting sphere should be asleep")
	}
}

func TestBoxComesToRestOnFloor(t *testing.T) {
	p := NewPhysicsWorld(gravity)
	p.AddMesh(newFloor())
	box := newBox(rl.Vector3{X: 0.3, Y: 0.2, Z: 0.3}, 1, rl.Vector3{Y: 0.5})
	p.AddMesh(box)

	simulate(p, 5)

	if y := box.Transform.Position.Y; !near(y, -0.6, 0.02) {
		t.Errorf("Expected box resting at y=-0.6, got %f", y)
	}
}

func TestAddMeshIsIdempotent(t *testing.T) {
	p := NewPhysicsWorld(gravity)
	box := newBox(rl.Vector3{X: 1, Y: 1, Z: 1}, 1, rl.Vector3{})

	p.AddMesh(box)
	p.AddMesh(box)

	if p.DynamicObjectCount() != 1 {
		t.Errorf("Expected 1 dynamic body, got %d", p.DynamicObjectCount())
	}
}

func TestAddMeshSortsStaticAndDynamic(t *testing.T) {
	p := NewPhysicsWorld(gravity)
	p.AddMesh(newFloor())
	p.AddMesh(newSphere(0.1, 1, rl.Vector3{}))
	p.AddMesh(engine.NewGameObject("NoCollider"))

	if len(p.Statics) != 1 {
		t.Errorf("Expected 1 static, got %d", len(p.Statics))
	}
	if len(p.Objects) != 1 {
		t.Errorf("Expected 1 dynamic, got %d", len(p.Objects))
	}
}

func TestAddSceneRegistersOnlyColliders(t *testing.T) {
	p := NewPhysicsWorld(gravity)
	root := engine.NewGameObject("Root")
	visual := engine.NewGameObject("Visual")
	proxy := newBox(rl.Vector3{X: 1, Y: 1, Z: 1}, 1, rl.Vector3{})
	root.AddChild(visual)
	root.AddChild(proxy)

	p.AddScene(root)

	if !p.Registered(proxy) {
		t.Error("Proxy with collider should be registered")
	}
	if p.Registered(visual) || p.Registered(root) {
		t.Error("Objects without colliders should not be registered")
	}
}

func TestSetMeshPositionClearsVelocity(t *testing.T) {
	p := NewPhysicsWorld(gravity)
	box := newBox(rl.Vector3{X: 1, Y: 1, Z: 1}, 1, rl.Vector3{})
	p.AddMesh(box)
	rb := engine.GetComponent[*components.Rigidbody](box)
	rb.Velocity = rl.Vector3{X: 3}
	rb.IsSleeping = true

	target := rl.Vector3{X: 1, Y: 2, Z: 3}
	p.SetMeshPosition(box, target)

	if box.Transform.Position != target {
		t.Errorf("Expected position %v, got %v", target, box.Transform.Position)
	}
	if rb.Velocity != (rl.Vector3{}) {
		t.Errorf("Expected zero velocity, got %v", rb.Velocity)
	}
	if rb.IsSleeping {
		t.Error("SetMeshPosition should wake the body")
	}
}

func TestSetMeshVelocityIgnoresUnregistered(t *testing.T) {
	p := NewPhysicsWorld(gravity)
	sphere := newSphere(0.05, 5, rl.Vector3{})

	p.SetMeshVelocity(sphere, rl.Vector3{X: 10})
	if rb := engine.GetComponent[*components.Rigidbody](sphere); rb.Velocity != (rl.Vector3{}) {
		t.Error("Unregistered object should not be touched")
	}

	p.AddMesh(sphere)
	p.SetMeshVelocity(sphere, rl.Vector3{X: 10})
	if rb := engine.GetComponent[*components.Rigidbody](sphere); rb.Velocity.X != 10 {
		t.Errorf("Expected velocity X=10, got %f", rb.Velocity.X)
	}
}

func TestProjectileTravelsAtSetVelocity(t *testing.T) {
	p := NewPhysicsWorld(rl.Vector3{})
	sphere := newSphere(0.05, 5, rl.Vector3{})
	p.AddMesh(sphere)
	p.SetMeshVelocity(sphere, rl.Vector3{Z: -10})

	for i := 0; i < 12; i++ {
		p.Step(FixedTimestep)
	}

	if z := sphere.Transform.Position.Z; !near(z, -1, 0.01) {
		t.Errorf("Expected z=-1 after 0.1s at 10 u/s, got %f", z)
	}
}

func TestStepClampsLongFrames(t *testing.T) {
	p := NewPhysicsWorld(rl.Vector3{})
	sphere := newSphere(0.05, 5, rl.Vector3{})
	p.AddMesh(sphere)
	p.SetMeshVelocity(sphere, rl.Vector3{X: 1})

	p.Step(10)

	limit := FixedTimestep*MaxSubsteps + 0.001
	if x := sphere.Transform.Position.X; x > limit || x <= 0 {
		t.Errorf("Expected at most %d substeps (x <= %f), got x=%f", MaxSubsteps, limit, x)
	}
}

func TestKillPlaneRetiresBodies(t *testing.T) {
	p := NewPhysicsWorld(gravity)
	sphere := newSphere(0.05, 5, rl.Vector3{Y: -49.99})
	p.AddMesh(sphere)
	p.SetMeshVelocity(sphere, rl.Vector3{Y: -10})

	p.Step(1.0 / 30.0)

	if p.DynamicObjectCount() != 0 {
		t.Errorf("Expected fallen body removed, got %d bodies", p.DynamicObjectCount())
	}
	if sphere.Active {
		t.Error("Fallen body should be inactive")
	}
	if p.Registered(sphere) {
		t.Error("Fallen body should be unregistered")
	}
}

func TestSpheresSeparate(t *testing.T) {
	p := NewPhysicsWorld(rl.Vector3{})
	a := newSphere(0.5, 1, rl.Vector3{X: -0.4})
	b := newSphere(0.5, 1, rl.Vector3{X: 0.4})
	p.AddMesh(a)
	p.AddMesh(b)

	p.Step(FixedTimestep)

	if d := rl.Vector3Distance(a.Transform.Position, b.Transform.Position); d < 0.999 {
		t.Errorf("Expected spheres pushed to distance 1, got %f", d)
	}
}

func TestOffCenterHitSpinsBox(t *testing.T) {
	p := NewPhysicsWorld(rl.Vector3{})
	box := newBox(rl.Vector3{X: 0.3, Y: 0.4, Z: 0.3}, 1, rl.Vector3{})
	// Grazing the -X face above the box's center
	sphere := newSphere(0.05, 5, rl.Vector3{X: -0.19, Y: 0.15})
	p.AddMesh(box)
	p.AddMesh(sphere)
	p.SetMeshVelocity(sphere, rl.Vector3{X: 2})

	p.Step(FixedTimestep)

	rb := engine.GetComponent[*components.Rigidbody](box)
	if rb.AngularVelocity.Z >= 0 {
		t.Errorf("Expected negative spin about Z, got %v", rb.AngularVelocity)
	}
	if !near(rb.AngularVelocity.X, 0, 1e-4) || !near(rb.AngularVelocity.Y, 0, 1e-4) {
		t.Errorf("Expected spin only about Z, got %v", rb.AngularVelocity)
	}

	p.Step(FixedTimestep)
	if box.Transform.Rotation.Z >= 0 {
		t.Errorf("Expected the box to tip, rotation %v", box.Transform.Rotation)
	}
}

func TestCenteredHitDoesNotSpinBox(t *testing.T) {
	p := NewPhysicsWorld(rl.Vector3{})
	box := newBox(rl.Vector3{X: 0.3, Y: 0.4, Z: 0.3}, 1, rl.Vector3{})
	sphere := newSphere(0.05, 5, rl.Vector3{X: -0.19})
	p.AddMesh(box)
	p.AddMesh(sphere)
	p.SetMeshVelocity(sphere, rl.Vector3{X: 2})

	p.Step(FixedTimestep)

	rb := engine.GetComponent[*components.Rigidbody](box)
	if rb.Velocity.X <= 0 {
		t.Fatalf("Expected the box pushed along +X, got %v", rb.Velocity)
	}
	if rb.AngularVelocity != (rl.Vector3{}) {
		t.Errorf("Expected no spin from a centered hit, got %v", rb.AngularVelocity)
	}
}

func TestRemoveObject(t *testing.T) {
	p := NewPhysicsWorld(gravity)
	floor := newFloor()
	sphere := newSphere(0.05, 5, rl.Vector3{Y: 1})
	p.AddMesh(floor)
	p.AddMesh(sphere)

	p.RemoveObject(floor)
	if len(p.Statics) != 0 || p.Registered(floor) {
		t.Error("RemoveObject should unregister statics")
	}

	p.RemoveObject(sphere)
	if p.DynamicObjectCount() != 0 || p.Registered(sphere) {
		t.Error("RemoveObject should unregister dynamic bodies")
	}
	p.RemoveObject(sphere) // already gone
}

func TestRaycastClosestHit(t *testing.T) {
	p := NewPhysicsWorld(gravity)
	near1 := newBox(rl.Vector3{X: 1, Y: 1, Z: 1}, 1, rl.Vector3{Z: -3})
	far := newBox(rl.Vector3{X: 1, Y: 1, Z: 1}, 1, rl.Vector3{Z: -6})
	p.AddMesh(far)
	p.AddMesh(near1)

	hit, ok := p.Raycast(rl.Vector3{}, rl.Vector3{Z: -1}, 100)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if hit.GameObject != near1 {
		t.Errorf("Expected nearest box hit, got %s", hit.GameObject.Name)
	}
	if !near(hit.Distance, 2.5, 0.001) {
		t.Errorf("Expected distance 2.5, got %f", hit.Distance)
	}
	if hit.Normal != (rl.Vector3{Z: 1}) {
		t.Errorf("Expected +Z normal, got %v", hit.Normal)
	}
}

func TestRaycastMiss(t *testing.T) {
	p := NewPhysicsWorld(gravity)
	p.AddMesh(newBox(rl.Vector3{X: 1, Y: 1, Z: 1}, 1, rl.Vector3{Z: -3}))

	if _, ok := p.Raycast(rl.Vector3{}, rl.Vector3{Z: 1}, 100); ok {
		t.Error("Ray pointing away should miss")
	}
	if _, ok := p.Raycast(rl.Vector3{}, rl.Vector3{Z: -1}, 2); ok {
		t.Error("Box beyond max distance should miss")
	}
	if _, ok := p.Raycast(rl.Vector3{}, rl.Vector3{}, 100); ok {
		t.Error("Zero direction should miss")
	}
}

func TestRaycastRotatedBox(t *testing.T) {
	box := newBox(rl.Vector3{X: 2, Y: 0.2, Z: 0.2}, 1, rl.Vector3{Z: -3})
	box.Transform.Rotation = rl.Vector3{Y: 90}

	// Rotated 90 degrees the long axis lies along Z, so the near face is at z=-2.
	hit, ok := RaycastObjects([]*engine.GameObject{box}, rl.Vector3{}, rl.Vector3{Z: -1}, 100)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if !near(hit.Distance, 2, 0.001) {
		t.Errorf("Expected distance 2, got %f", hit.Distance)
	}
}

func TestRaycastSphere(t *testing.T) {
	sphere := newSphere(0.5, 1, rl.Vector3{X: 4})

	hit, ok := RaycastObjects([]*engine.GameObject{sphere}, rl.Vector3{}, rl.Vector3{X: 1}, 100)
	if !ok {
		t.Fatal("Expected a hit")
	}
	if !near(hit.Distance, 3.5, 0.001) {
		t.Errorf("Expected distance 3.5, got %f", hit.Distance)
	}
}

func TestOBBSphereContactFromInside(t *testing.T) {
	obb := NewOBB(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2}, rl.Vector3{})

	normal, depth, ok := obb.SphereContact(rl.Vector3{Y: 0.9}, 0.05)
	if !ok {
		t.Fatal("Expected contact for center inside box")
	}
	if !near(normal.Y, 1, 0.0001) {
		t.Errorf("Expected +Y normal, got %v", normal)
	}
	if !near(depth, 0.15, 0.0001) {
		t.Errorf("Expected depth 0.15, got %f", depth)
	}
}

func TestAABBIntersectRayFromInside(t *testing.T) {
	box := NewAABBFromCenter(rl.Vector3{}, rl.Vector3{X: 2, Y: 2, Z: 2})

	dist, _, ok := box.IntersectRay(rl.Vector3{}, rl.Vector3{X: 1}, 10)
	if !ok || !near(dist, 1, 0.0001) {
		t.Errorf("Expected exit distance 1, got %f (ok=%v)", dist, ok)
	}
	if !box.Contains(rl.Vector3{X: 0.5}) {
		t.Error("Contains should accept interior point")
	}
}
