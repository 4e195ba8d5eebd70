package physics

import (
	"log"
	"math"
	"propfield/internal/components"
	"propfield/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// FixedTimestep is the simulation substep. Frames are split into whole substeps.
	FixedTimestep float32 = 1.0 / 120.0
	// MaxSubsteps caps catch-up work after a long frame.
	MaxSubsteps = 8
	// DefaultKillY is the height below which dynamic bodies are retired.
	DefaultKillY float32 = -50
)

// Spatial grid cell size - objects within same or neighboring cells are checked
const CellSize = 1.0

// Cell key for spatial hashing
type CellKey struct {
	X, Y, Z int
}

func posToCell(pos rl.Vector3) CellKey {
	return CellKey{
		X: int(math.Floor(float64(pos.X / CellSize))),
		Y: int(math.Floor(float64(pos.Y / CellSize))),
		Z: int(math.Floor(float64(pos.Z / CellSize))),
	}
}

// PhysicsWorld owns the motion state of every registered object.
// Objects with a collider and a Rigidbody are dynamic; a collider alone makes a static body.
type PhysicsWorld struct {
	Gravity rl.Vector3
	KillY   float32
	Objects []*engine.GameObject // dynamic rigidbodies
	Statics []*engine.GameObject // no rigidbody (floor)

	registered  map[*engine.GameObject]bool
	grid        map[CellKey][]*engine.GameObject
	accumulator float32
}

func NewPhysicsWorld(gravity rl.Vector3) *PhysicsWorld {
	return &PhysicsWorld{
		Gravity:    gravity,
		KillY:      DefaultKillY,
		Objects:    make([]*engine.GameObject, 0),
		Statics:    make([]*engine.GameObject, 0),
		registered: make(map[*engine.GameObject]bool),
		grid:       make(map[CellKey][]*engine.GameObject),
	}
}

func hasCollider(g *engine.GameObject) bool {
	return engine.HasComponent[*components.BoxCollider](g) || engine.HasComponent[*components.SphereCollider](g)
}

// AddScene registers root and every descendant that carries a collider.
func (p *PhysicsWorld) AddScene(root *engine.GameObject) {
	root.Walk(func(g *engine.GameObject) {
		if hasCollider(g) {
			p.AddMesh(g)
		}
	})
}

// AddMesh registers a single object. Objects without a collider and objects
// that are already registered are ignored.
func (p *PhysicsWorld) AddMesh(g *engine.GameObject) {
	if p.registered[g] || !hasCollider(g) {
		return
	}
	p.registered[g] = true
	if engine.HasComponent[*components.Rigidbody](g) {
		p.Objects = append(p.Objects, g)
	} else {
		p.Statics = append(p.Statics, g)
	}
}

// SetMeshPosition teleports a registered object and clears its velocity.
func (p *PhysicsWorld) SetMeshPosition(g *engine.GameObject, position rl.Vector3) {
	if !p.registered[g] {
		return
	}
	g.Transform.Position = position
	if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil {
		rb.Stop()
		rb.Wake()
	}
}

// SetMeshVelocity sets the linear velocity of a registered dynamic object.
func (p *PhysicsWorld) SetMeshVelocity(g *engine.GameObject, velocity rl.Vector3) {
	if !p.registered[g] {
		return
	}
	if rb := engine.GetComponent[*components.Rigidbody](g); rb != nil {
		rb.Velocity = velocity
		rb.Wake()
	}
}

func (p *PhysicsWorld) Registered(g *engine.GameObject) bool {
	return p.registered[g]
}

func (p *PhysicsWorld) RemoveObject(g *engine.GameObject) {
	if !p.registered[g] {
		return
	}
	delete(p.registered, g)
	p.Objects = removeFrom(p.Objects, g)
	p.Statics = removeFrom(p.Statics, g)
}

func removeFrom(list []*engine.GameObject, g *engine.GameObject) []*engine.GameObject {
	for i, obj := range list {
		if obj == g {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// DynamicObjectCount returns the number of dynamic physics objects
func (p *PhysicsWorld) DynamicObjectCount() int {
	return len(p.Objects)
}

// Step advances the simulation by deltaTime using fixed substeps.
func (p *PhysicsWorld) Step(deltaTime float32) {
	if deltaTime <= 0 {
		return
	}
	p.accumulator += deltaTime
	if limit := FixedTimestep * MaxSubsteps; p.accumulator > limit {
		p.accumulator = limit
	}
	for p.accumulator >= FixedTimestep {
		p.step(FixedTimestep)
		p.accumulator -= FixedTimestep
	}
}

func (p *PhysicsWorld) step(dt float32) {
	// 1. Integrate
	for _, obj := range p.Objects {
		rb := engine.GetComponent[*components.Rigidbody](obj)
		if rb == nil || rb.IsSleeping {
			continue
		}

		if rb.UseGravity {
			rb.Velocity = rl.Vector3Add(rb.Velocity, rl.Vector3Scale(p.Gravity, dt))
		}

		obj.Transform.Position = rl.Vector3Add(obj.Transform.Position, rl.Vector3Scale(rb.Velocity, dt))
		obj.Transform.Rotation = rl.Vector3Add(obj.Transform.Rotation, rl.Vector3Scale(rb.AngularVelocity, dt))

		// Time-based so it's framerate independent
		damping := float32(1.0) - (1.0-rb.AngularDamping)*dt*60
		if damping < 0 {
			damping = 0
		}
		rb.AngularVelocity = rl.Vector3Scale(rb.AngularVelocity, damping)
	}

	p.retireFallen()

	// 2. Broad-phase: spatial hashing, then narrow-phase per candidate pair
	p.rebuildGrid()
	checked := make(map[[2]uint64]bool)
	for _, obj := range p.Objects {
		for _, other := range p.getNeighborObjects(obj) {
			if obj == other {
				continue
			}
			key := [2]uint64{obj.UID, other.UID}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if checked[key] {
				continue
			}
			checked[key] = true
			if !looseBounds(obj).Intersects(looseBounds(other)) {
				continue
			}
			p.resolveCollision(obj, other)
		}
	}

	// 3. Dynamic vs static
	for _, obj := range p.Objects {
		bounds := looseBounds(obj)
		for _, static := range p.Statics {
			if !bounds.Intersects(looseBounds(static)) {
				continue
			}
			p.resolveStaticCollision(obj, static)
		}
	}

	// 4. Sleep bodies that came to rest
	for _, obj := range p.Objects {
		if rb := engine.GetComponent[*components.Rigidbody](obj); rb != nil {
			rb.TrySleep(dt)
		}
	}
}

// retireFallen deactivates and unregisters dynamic bodies below KillY.
func (p *PhysicsWorld) retireFallen() {
	kept := p.Objects[:0]
	for _, obj := range p.Objects {
		if obj.Transform.Position.Y < p.KillY {
			obj.Active = false
			delete(p.registered, obj)
			log.Printf("Physics: %s fell below %.0f, removed", obj.Name, p.KillY)
			continue
		}
		kept = append(kept, obj)
	}
	p.Objects = kept
}

// rebuildGrid clears and repopulates the spatial hash grid. Large boxes are
// inserted into every cell their bounds touch.
func (p *PhysicsWorld) rebuildGrid() {
	for k := range p.grid {
		delete(p.grid, k)
	}
	for _, obj := range p.Objects {
		lo, hi := cellRange(obj)
		for x := lo.X; x <= hi.X; x++ {
			for y := lo.Y; y <= hi.Y; y++ {
				for z := lo.Z; z <= hi.Z; z++ {
					key := CellKey{x, y, z}
					p.grid[key] = append(p.grid[key], obj)
				}
			}
		}
	}
}

func cellRange(obj *engine.GameObject) (CellKey, CellKey) {
	b := looseBounds(obj)
	return posToCell(b.Min), posToCell(b.Max)
}

// looseBounds is the axis-aligned cube around obj's bounding sphere. It holds
// the collider at any rotation.
func looseBounds(obj *engine.GameObject) AABB {
	d := boundingRadius(obj) * 2
	return NewAABBFromCenter(colliderCenter(obj), rl.Vector3{X: d, Y: d, Z: d})
}

func colliderCenter(obj *engine.GameObject) rl.Vector3 {
	if sphere := engine.GetComponent[*components.SphereCollider](obj); sphere != nil {
		return sphere.GetCenter()
	}
	if box := engine.GetComponent[*components.BoxCollider](obj); box != nil {
		return box.GetCenter()
	}
	return obj.Transform.Position
}

func boundingRadius(obj *engine.GameObject) float32 {
	if sphere := engine.GetComponent[*components.SphereCollider](obj); sphere != nil {
		return sphere.Radius
	}
	if box := engine.GetComponent[*components.BoxCollider](obj); box != nil {
		return rl.Vector3Length(box.GetWorldSize()) * 0.5
	}
	return 0.5
}

// getNeighborObjects returns all objects sharing a cell with obj or its neighbors
func (p *PhysicsWorld) getNeighborObjects(obj *engine.GameObject) []*engine.GameObject {
	lo, hi := cellRange(obj)
	seen := make(map[*engine.GameObject]bool)
	var neighbors []*engine.GameObject
	for x := lo.X - 1; x <= hi.X+1; x++ {
		for y := lo.Y - 1; y <= hi.Y+1; y++ {
			for z := lo.Z - 1; z <= hi.Z+1; z++ {
				for _, other := range p.grid[CellKey{x, y, z}] {
					if !seen[other] {
						seen[other] = true
						neighbors = append(neighbors, other)
					}
				}
			}
		}
	}
	return neighbors
}
