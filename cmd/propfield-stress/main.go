// Headless stress test: builds the prop field, fires volleys of spheres and
// times the physics step as the body count grows.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"time"

	"propfield/internal/config"
	"propfield/internal/physics"
	"propfield/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	seed := flag.Int64("seed", 42, "placement and aim seed")
	frames := flag.Int("frames", 120, "frames simulated per volley")
	flag.Parse()

	// Test various volley sizes
	volleys := []int{10, 50, 100, 250, 500}

	for _, count := range volleys {
		runVolley(*seed, count, *frames)
	}
}

func runVolley(seed int64, count, frames int) {
	cfg := config.Default()
	rng := rand.New(rand.NewSource(seed))

	phys := physics.NewPhysicsWorld(cfg.Physics.Gravity)
	phys.KillY = cfg.Physics.KillY

	// Same footprint as the stock GLB at 0.1 scale
	meshes := world.HeadlessMeshes{Bounds: rl.BoundingBox{
		Min: rl.Vector3{X: -1, Y: -2, Z: -1},
		Max: rl.Vector3{X: 1, Y: 2, Z: 1},
	}}
	w := world.New(cfg, phys, meshes, rng)
	w.Build()

	eye := cfg.Camera.Position
	sc := cfg.Scene
	for i := 0; i < count; i++ {
		target := rl.Vector3{
			X: sc.AreaMinX + rng.Float32()*sc.AreaWidth,
			Y: 0,
			Z: sc.AreaMinZ + rng.Float32()*sc.AreaDepth,
		}
		dir := rl.Vector3Normalize(rl.Vector3Subtract(target, eye))
		w.Spawner.Fire(rl.Ray{Position: eye, Direction: dir}, eye, dir)
	}

	const dt = float32(1.0 / 60.0)
	start := time.Now()
	var worst time.Duration
	for f := 0; f < frames; f++ {
		frameStart := time.Now()
		phys.Step(dt)
		w.SyncProps()
		w.PruneProjectiles()
		worst = max(worst, time.Since(frameStart))
	}
	elapsed := time.Since(start)

	avgMs := float64(elapsed.Microseconds()) / 1000.0 / float64(frames)
	fmt.Printf("%4d spheres | %4d bodies left | avg %.3f ms | worst %.3f ms\n",
		w.Spawner.Count(), phys.DynamicObjectCount(), avgMs, float64(worst.Microseconds())/1000.0)
}
