package world

import (
	"fmt"
	"log"
	"math/rand"
	"propfield/internal/assets"
	"propfield/internal/components"
	"propfield/internal/config"
	"propfield/internal/engine"
	"propfield/internal/physics"
	"propfield/internal/placement"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Dynamics is the rigid-body simulation the world registers bodies with.
type Dynamics interface {
	AddScene(root *engine.GameObject)
	AddMesh(obj *engine.GameObject)
	SetMeshPosition(obj *engine.GameObject, position rl.Vector3)
	SetMeshVelocity(obj *engine.GameObject, velocity rl.Vector3)
	RemoveObject(obj *engine.GameObject)
	Step(deltaTime float32)
}

const (
	TagProp       = "prop"
	TagProxy      = "proxy"
	TagProjectile = "projectile"
)

type World struct {
	Scene    *engine.Scene
	Config   config.Config
	Dynamics Dynamics
	Meshes   MeshFactory
	Spawner  *Spawner

	Floor *engine.GameObject
	Sun   *engine.GameObject
	// PropRoot parents every prop visual. It stays at the origin.
	PropRoot *engine.GameObject
	Props    []PropPair

	// LoadErr is set when the prop model failed to load; the scene runs without props.
	LoadErr error
	// PlacementErr is set when fewer props than requested could be placed.
	PlacementErr error

	rng      *rand.Rand
	template Template
	hasModel bool
}

func New(cfg config.Config, dynamics Dynamics, meshes MeshFactory, rng *rand.Rand) *World {
	w := &World{
		Scene:    engine.NewScene("Main"),
		Config:   cfg,
		Dynamics: dynamics,
		Meshes:   meshes,
		rng:      rng,
	}
	w.Spawner = NewSpawner(w, cfg.Spawner, rng)
	return w
}

// Build creates the light, the floor and the prop field, then registers
// every collider with the dynamics. A model that fails to load leaves a
// scene with only the floor.
func (w *World) Build() {
	w.createSun()
	w.createFloor()

	template, err := w.Meshes.Model(w.Config.Scene.ModelPath)
	if err != nil {
		w.LoadErr = err
		log.Printf("World: error loading model %q: %v", w.Config.Scene.ModelPath, err)
	} else {
		w.template = template
		w.hasModel = true
		w.createProps()
	}

	for _, root := range w.Scene.Roots() {
		w.Dynamics.AddScene(root)
	}
	for _, pair := range w.Props {
		w.Dynamics.AddMesh(pair.Proxy)
		w.Dynamics.SetMeshPosition(pair.Proxy, pair.Proxy.Transform.Position)
	}

	w.Scene.Start()
	log.Printf("World: built %d props (%d objects)", len(w.Props), len(w.Scene.GameObjects))
}

func (w *World) createSun() {
	w.Sun = engine.NewGameObject("Sun")
	w.Sun.Transform.Position = w.Config.Scene.LightPosition
	light := components.NewDirectionalLight(w.Config.Scene.LightPosition)
	light.Intensity = w.Config.Scene.LightIntensity
	w.Sun.AddComponent(light)
	w.Scene.AddGameObject(w.Sun)
}

func (w *World) createFloor() {
	size := w.Config.Scene.FloorSize
	w.Floor = engine.NewGameObject("Floor")
	w.Floor.Transform.Position = rl.Vector3{Y: w.Config.Scene.FloorY}

	renderer := components.NewModelRenderer(w.Meshes.Box(size), rl.White)
	renderer.BoundsRadius = rl.Vector3Length(size) / 2
	w.Floor.AddComponent(renderer)
	w.Floor.AddComponent(components.NewBoxCollider(size))

	w.Scene.AddGameObject(w.Floor)
}

// PropSize returns the scaled bounds of the prop model.
func (w *World) PropSize() rl.Vector3 {
	return rl.Vector3Scale(assets.BoundsSize(w.template.Bounds), w.Config.Scene.PropScale)
}

func (w *World) createProps() {
	sc := w.Config.Scene
	area := placement.Rect{MinX: sc.AreaMinX, MinZ: sc.AreaMinZ, Width: sc.AreaWidth, Depth: sc.AreaDepth}

	points, err := placement.Scatter(w.rng, area, sc.PropCount, sc.MinSeparation, sc.MaxAttempts)
	if err != nil {
		w.PlacementErr = err
		log.Printf("World: %v", err)
	}

	size := w.PropSize()
	proxySize := rl.Vector3{X: size.X * sc.ProxyInflation, Y: size.Y, Z: size.Z * sc.ProxyInflation}
	radius := originRadius(w.template.Bounds)

	w.PropRoot = engine.NewGameObject("Props")
	w.Scene.AddGameObject(w.PropRoot)

	for i, p := range points {
		pos := rl.Vector3{X: p.X, Y: size.Y / 2, Z: p.Z}

		visual := engine.NewGameObject(fmt.Sprintf("Prop_%d", i))
		visual.Tags = []string{TagProp}
		visual.Transform.Position = pos
		visual.Transform.Scale = rl.Vector3{X: sc.PropScale, Y: sc.PropScale, Z: sc.PropScale}
		renderer := components.NewSharedModelRenderer(w.template.Model, rl.White)
		renderer.BoundsRadius = radius
		visual.AddComponent(renderer)

		proxy := engine.NewGameObject(fmt.Sprintf("PropProxy_%d", i))
		proxy.Tags = []string{TagProxy}
		proxy.Visible = false
		proxy.Transform.Position = pos
		proxy.AddComponent(components.NewBoxCollider(proxySize))
		proxy.AddComponent(components.NewRigidbody(sc.ProxyMass))

		w.Scene.AddGameObject(proxy)
		w.Scene.AddGameObject(visual)
		w.PropRoot.AddChild(visual)
		w.Props = append(w.Props, PropPair{Visual: visual, Proxy: proxy})
	}
}

// originRadius is the radius of the smallest origin-centred sphere holding b.
func originRadius(b rl.BoundingBox) float32 {
	return max(rl.Vector3Length(b.Min), rl.Vector3Length(b.Max))
}

// HasModel reports whether the prop model loaded.
func (w *World) HasModel() bool {
	return w.hasModel
}

// Raycast returns the closest collider hit among active scene objects.
func (w *World) Raycast(ray rl.Ray, maxDistance float32) (physics.RaycastHit, bool) {
	return physics.RaycastObjects(w.Scene.GameObjects, ray.Position, ray.Direction, maxDistance)
}

// PruneProjectiles removes inactive spheres from the scene and the dynamics
// and returns how many were removed.
func (w *World) PruneProjectiles() int {
	removed := 0
	for _, g := range w.Scene.FindByTag(TagProjectile) {
		if !g.Active {
			w.Dynamics.RemoveObject(g)
			w.Scene.RemoveGameObject(g)
			removed++
		}
	}
	return removed
}

// Update advances component logic.
func (w *World) Update(deltaTime float32) {
	w.Scene.Update(deltaTime)
}

// Light returns the scene's directional light.
func (w *World) Light() *components.DirectionalLight {
	if w.Sun == nil {
		return nil
	}
	return engine.GetComponent[*components.DirectionalLight](w.Sun)
}

// ownedRenderers returns the renderers whose model the world created itself.
// Shared models belong to the template, the spawner or the asset cache.
func (w *World) ownedRenderers() []*components.ModelRenderer {
	var owned []*components.ModelRenderer
	for _, g := range w.Scene.GameObjects {
		if mr := engine.GetComponent[*components.ModelRenderer](g); mr != nil && !mr.Shared() {
			owned = append(owned, mr)
		}
	}
	return owned
}

// Unload releases meshes created by the world.
func (w *World) Unload() {
	for _, mr := range w.ownedRenderers() {
		mr.Unload()
	}
	w.Spawner.Unload()
}
