package world

import (
	"fmt"
	"math/rand"
	"propfield/internal/components"
	"propfield/internal/config"
	"propfield/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Spawner launches a sphere at whatever the pointer ray hits.
type Spawner struct {
	// OnSpawn fires after a sphere is added to the scene and the dynamics.
	OnSpawn engine.EventWithArg[*engine.GameObject]

	world    *World
	cfg      config.Spawner
	rng      *rand.Rand
	count    int
	model    rl.Model
	hasModel bool
}

func NewSpawner(w *World, cfg config.Spawner, rng *rand.Rand) *Spawner {
	return &Spawner{world: w, cfg: cfg, rng: rng}
}

// Count returns how many spheres have been spawned.
func (s *Spawner) Count() int {
	return s.count
}

// Fire casts ray into the scene. On a hit it spawns a sphere SpawnDistance
// along forward from cameraPos, moving toward the hit point at Speed.
// Returns nil when the ray hits nothing.
func (s *Spawner) Fire(ray rl.Ray, cameraPos, forward rl.Vector3) *engine.GameObject {
	hit, ok := s.world.Raycast(ray, s.cfg.MaxRayLength)
	if !ok {
		return nil
	}

	spawnPos := rl.Vector3Add(cameraPos, rl.Vector3Scale(forward, s.cfg.SpawnDistance))
	velocity := LaunchVelocity(spawnPos, hit.Point, s.cfg.Speed)

	sphere := s.newSphere(spawnPos)
	s.world.Scene.AddGameObject(sphere)
	sphere.Start()

	s.world.Dynamics.AddScene(sphere)
	s.world.Dynamics.SetMeshVelocity(sphere, velocity)

	s.OnSpawn.Invoke(sphere)
	return sphere
}

// LaunchVelocity aims from spawn to target at the given speed. Coincident points give zero velocity.
func LaunchVelocity(spawn, target rl.Vector3, speed float32) rl.Vector3 {
	dir := rl.Vector3Subtract(target, spawn)
	if rl.Vector3Length(dir) < 1e-6 {
		return rl.Vector3{}
	}
	return rl.Vector3Scale(rl.Vector3Normalize(dir), speed)
}

func (s *Spawner) newSphere(pos rl.Vector3) *engine.GameObject {
	s.count++
	sphere := engine.NewGameObject(fmt.Sprintf("Sphere_%d", s.count))
	sphere.Tags = []string{TagProjectile}
	sphere.Transform.Position = pos

	if !s.hasModel {
		s.model = s.world.Meshes.Sphere(s.cfg.Radius)
		s.hasModel = true
	}
	renderer := components.NewSharedModelRenderer(s.model, s.randomColor())
	renderer.BoundsRadius = s.cfg.Radius
	sphere.AddComponent(renderer)
	sphere.AddComponent(components.NewSphereCollider(s.cfg.Radius))
	sphere.AddComponent(components.NewRigidbody(s.cfg.Mass))

	return sphere
}

func (s *Spawner) randomColor() rl.Color {
	v := s.rng.Uint32()
	return rl.Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func (s *Spawner) Unload() {
	if s.hasModel {
		rl.UnloadModel(s.model)
		s.hasModel = false
	}
}
