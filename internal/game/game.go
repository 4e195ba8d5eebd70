package game

import (
	"log"
	"math/rand"
	"propfield/internal/assets"
	"propfield/internal/camera"
	"propfield/internal/config"
	"propfield/internal/engine"
	"propfield/internal/physics"
	"propfield/internal/world"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Surface is the drawing target that follows the window size.
type Surface interface {
	SetSize(width, height int)
}

type Game struct {
	Config   config.Config
	World    *world.World
	Physics  *physics.PhysicsWorld
	Camera   *camera.Orbit
	Renderer *world.Renderer
	Surface  Surface
	HUD      *HUD

	lastSpawn engine.Ref

	// Debug timing (ms)
	updateMs float64
	shadowMs float64
	drawMs   float64
}

// New wires the scene together without touching the window. Call Setup
// (or Run) before updating.
func New(cfg config.Config, rng *rand.Rand) *Game {
	phys := physics.NewPhysicsWorld(cfg.Physics.Gravity)
	phys.KillY = cfg.Physics.KillY

	cc := cfg.Camera
	renderer := world.NewRenderer()
	g := &Game{
		Config:   cfg,
		Physics:  phys,
		Camera:   camera.NewOrbit(cc.Position, cc.Target, cc.Fovy, cc.Near, cc.Far),
		Renderer: renderer,
		Surface:  renderer,
		HUD:      NewHUD(),
	}
	g.Camera.EnableZoom = cc.EnableZoom
	g.World = world.New(cfg, phys, nil, rng)
	return g
}

// Setup builds the world with the given mesh source and sizes the view.
func (g *Game) Setup(meshes world.MeshFactory, width, height int) {
	g.World.Meshes = meshes
	g.World.Spawner.OnSpawn.AddListener(func(sphere *engine.GameObject) {
		g.lastSpawn = engine.RefTo(sphere)
	})
	g.World.Build()
	g.Resize(width, height)
}

func (g *Game) Run() {
	flags := uint32(rl.FlagWindowResizable | rl.FlagWindowHighdpi)
	if g.Config.Window.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(g.Config.Window.Width), int32(g.Config.Window.Height), g.Config.Window.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(120)

	// Initialize GPU resources after the OpenGL context is created
	assets.Init()
	defer assets.Unload()

	floor := g.Config.Scene.FloorSize
	g.Renderer.Initialize(max(floor.X, floor.Z))
	defer g.Renderer.Unload()

	g.Setup(world.RaylibMeshes{Shader: g.Renderer.Shader}, rl.GetRenderWidth(), rl.GetRenderHeight())
	defer g.World.Unload()
	g.Renderer.SetLight(g.World.Light())

	initHUDStyle()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

// Resize keeps the projection and the drawing surface in step with the window.
// Non-positive sizes, as reported while minimized, are ignored.
func (g *Game) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	g.Camera.Resize(width, height)
	if g.Surface != nil {
		g.Surface.SetSize(width, height)
	}
}

// PointerDown fires a sphere at whatever lies under pos. pos is in pixels of
// a width x height view. Returns the new sphere, or nil when nothing was hit.
func (g *Game) PointerDown(pos rl.Vector2, width, height int) *engine.GameObject {
	ray := g.Camera.ScreenRay(pos.X, pos.Y, width, height)
	return g.World.Spawner.Fire(ray, g.Camera.Position(), g.Camera.Forward())
}

// Tick advances the camera animation, the simulation and the visual sync.
func (g *Game) Tick(deltaTime float32) {
	g.Camera.Update(deltaTime)
	g.World.Update(deltaTime)
	g.Physics.Step(deltaTime)
	g.World.SyncProps()
	g.World.PruneProjectiles()
}

func (g *Game) Update() {
	updateStart := time.Now()
	deltaTime := rl.GetFrameTime()

	if rl.IsWindowResized() {
		g.Resize(rl.GetRenderWidth(), rl.GetRenderHeight())
	}

	if rl.IsKeyPressed(rl.KeyF1) {
		g.HUD.Visible = !g.HUD.Visible
	}
	if rl.IsKeyPressed(rl.KeyF2) {
		g.HUD.ShowShadowMap = !g.HUD.ShowShadowMap
	}

	mouse := rl.GetMousePosition()
	overHUD := g.HUD.Contains(mouse)
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) && !overHUD {
		g.PointerDown(mouse, rl.GetScreenWidth(), rl.GetScreenHeight())
	}
	if !overHUD {
		g.Camera.HandleInput(rl.GetScreenHeight())
	}

	g.Tick(deltaTime)

	g.updateMs = float64(time.Since(updateStart).Microseconds()) / 1000.0
}

func (g *Game) Draw() {
	shadowStart := time.Now()
	g.Renderer.DrawShadowMap(g.World.Scene.GameObjects)
	g.shadowMs = float64(time.Since(shadowStart).Microseconds()) / 1000.0

	rl.BeginDrawing()
	rl.ClearBackground(g.Config.BackgroundColor())

	drawStart := time.Now()
	rl.BeginMode3D(g.Camera.Raylib())
	frustum := world.ExtractFrustum(g.Camera.ViewMatrix(), g.Camera.ProjectionMatrix())
	g.Renderer.DrawWithShadows(g.Camera.Position(), frustum, g.World.Scene.GameObjects)
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	if action := g.HUD.Draw(g.Stats(), g.Renderer.ShadowMap.Depth); action.ResetView {
		g.Camera.ResetHome(g.Config.Camera.HomeEase)
	} else if action.ToggleZoom {
		g.Camera.EnableZoom = !g.Camera.EnableZoom
		log.Printf("Game: zoom enabled=%v", g.Camera.EnableZoom)
	}
	rl.EndDrawing()
}

// Stats collects the numbers the HUD shows.
func (g *Game) Stats() Stats {
	s := Stats{
		Props:    len(g.World.Props),
		Spheres:  len(g.World.Scene.FindByTag(world.TagProjectile)),
		Bodies:   g.Physics.DynamicObjectCount(),
		Drawn:    g.Renderer.Drawn,
		Culled:   g.Renderer.Culled,
		UpdateMs: g.updateMs,
		ShadowMs: g.shadowMs,
		DrawMs:   g.drawMs,
		Zoom:     g.Camera.EnableZoom,
	}
	if last := g.lastSpawn.Get(g.World.Scene); last != nil {
		s.LastSpawn = last.Name
	}
	if g.World.LoadErr != nil {
		s.ModelStatus = "model failed: " + g.World.LoadErr.Error()
	} else if g.World.PlacementErr != nil {
		s.ModelStatus = "placement: " + g.World.PlacementErr.Error()
	} else {
		s.ModelStatus = "model ok"
	}
	return s
}
