package game

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"propfield/internal/assets"
	"propfield/internal/config"
	"propfield/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type fakeMeshes struct {
	err error
}

func (f fakeMeshes) Box(size rl.Vector3) rl.Model   { return rl.Model{} }
func (f fakeMeshes) Sphere(radius float32) rl.Model { return rl.Model{} }
func (f fakeMeshes) Model(path string) (world.Template, error) {
	if f.err != nil {
		return world.Template{}, f.err
	}
	return world.Template{Bounds: rl.BoundingBox{
		Min: rl.Vector3{X: -1, Y: -2, Z: -1},
		Max: rl.Vector3{X: 1, Y: 2, Z: 1},
	}}, nil
}

type fakeSurface struct {
	width, height int
	calls         int
}

func (s *fakeSurface) SetSize(width, height int) {
	s.width, s.height = width, height
	s.calls++
}

func newTestGame(t *testing.T, cfg config.Config, meshes fakeMeshes) (*Game, *fakeSurface) {
	t.Helper()
	g := New(cfg, rand.New(rand.NewSource(7)))
	surface := &fakeSurface{}
	g.Surface = surface
	g.Setup(meshes, 1280, 720)
	return g, surface
}

func TestSetupSizesView(t *testing.T) {
	g, surface := newTestGame(t, config.Default(), fakeMeshes{})

	if surface.width != 1280 || surface.height != 720 {
		t.Errorf("Expected surface 1280x720, got %dx%d", surface.width, surface.height)
	}
	if math.Abs(float64(g.Camera.Aspect-1280.0/720.0)) > 1e-5 {
		t.Errorf("Expected aspect %f, got %f", 1280.0/720.0, g.Camera.Aspect)
	}
	if len(g.World.Props) != 50 {
		t.Errorf("Expected 50 props, got %d", len(g.World.Props))
	}
}

func TestResize(t *testing.T) {
	g, surface := newTestGame(t, config.Default(), fakeMeshes{})

	g.Resize(800, 400)
	if g.Camera.Aspect != 2 {
		t.Errorf("Expected aspect 2, got %f", g.Camera.Aspect)
	}
	if surface.width != 800 || surface.height != 400 {
		t.Errorf("Expected surface 800x400, got %dx%d", surface.width, surface.height)
	}

	calls := surface.calls
	g.Resize(800, 0)
	if g.Camera.Aspect != 2 || surface.calls != calls {
		t.Error("Zero height should be ignored")
	}
}

func TestPointerDownMiss(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.PropCount = 0
	g, _ := newTestGame(t, cfg, fakeMeshes{})
	before := len(g.World.Scene.GameObjects)

	// Top edge of the view points above the horizon
	if sphere := g.PointerDown(rl.Vector2{X: 640, Y: 0}, 1280, 720); sphere != nil {
		t.Errorf("Expected no sphere, got %s", sphere.Name)
	}
	if len(g.World.Scene.GameObjects) != before {
		t.Error("Miss should not change the scene")
	}
	if g.Physics.DynamicObjectCount() != 0 {
		t.Errorf("Expected no bodies, got %d", g.Physics.DynamicObjectCount())
	}
}

func TestPointerDownHit(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.PropCount = 0
	g, _ := newTestGame(t, cfg, fakeMeshes{})

	sphere := g.PointerDown(rl.Vector2{X: 640, Y: 360}, 1280, 720)
	if sphere == nil {
		t.Fatal("Expected a sphere")
	}

	want := rl.Vector3Add(g.Camera.Position(), rl.Vector3Scale(g.Camera.Forward(), 2))
	if rl.Vector3Distance(sphere.Transform.Position, want) > 1e-4 {
		t.Errorf("Expected spawn at %v, got %v", want, sphere.Transform.Position)
	}
	if g.Physics.DynamicObjectCount() != 1 {
		t.Errorf("Expected 1 body, got %d", g.Physics.DynamicObjectCount())
	}
	if s := g.Stats(); s.Spheres != 1 || s.LastSpawn != sphere.Name {
		t.Errorf("Expected stats to show the new sphere, got %+v", s)
	}
}

func TestTickMovesSphere(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.PropCount = 0
	g, _ := newTestGame(t, cfg, fakeMeshes{})

	sphere := g.PointerDown(rl.Vector2{X: 640, Y: 360}, 1280, 720)
	start := sphere.Transform.Position
	g.Tick(1.0 / 60.0)

	if rl.Vector3Distance(start, sphere.Transform.Position) < 0.05 {
		t.Errorf("Expected sphere to move, still at %v", sphere.Transform.Position)
	}
}

func TestMissingModelKeepsRunning(t *testing.T) {
	g, _ := newTestGame(t, config.Default(), fakeMeshes{err: assets.ErrModelNotFound})

	if len(g.World.Props) != 0 {
		t.Errorf("Expected no props, got %d", len(g.World.Props))
	}
	if s := g.Stats(); !strings.HasPrefix(s.ModelStatus, "model failed") {
		t.Errorf("Expected a model failure status, got %q", s.ModelStatus)
	}

	if g.PointerDown(rl.Vector2{X: 640, Y: 360}, 1280, 720) == nil {
		t.Error("Floor should still be clickable")
	}
	g.Tick(1.0 / 60.0)
}

func TestHUDContains(t *testing.T) {
	h := NewHUD()

	if !h.Contains(rl.Vector2{X: 20, Y: 20}) {
		t.Error("Expected point inside the panel")
	}
	if h.Contains(rl.Vector2{X: 600, Y: 400}) {
		t.Error("Expected point outside the panel")
	}

	h.Visible = false
	if h.Contains(rl.Vector2{X: 20, Y: 20}) {
		t.Error("Hidden HUD should not capture clicks")
	}
}

func TestStatsLines(t *testing.T) {
	s := Stats{Props: 3, Spheres: 2, ModelStatus: "model ok"}
	lines := s.Lines()

	if lines[0] != "Props: 3  Spheres: 2" {
		t.Errorf("Unexpected first line %q", lines[0])
	}
	if lines[len(lines)-1] != "model ok" {
		t.Errorf("Expected status last, got %q", lines[len(lines)-1])
	}

	s.LastSpawn = "Sphere_1"
	if got := s.Lines(); got[len(got)-1] != "Last: Sphere_1" {
		t.Errorf("Expected last spawn line, got %q", got[len(got)-1])
	}
}

func TestStatsForgetsPrunedSphere(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.PropCount = 0
	g, _ := newTestGame(t, cfg, fakeMeshes{})

	sphere := g.PointerDown(rl.Vector2{X: 640, Y: 360}, 1280, 720)
	sphere.Active = false
	g.World.PruneProjectiles()

	if s := g.Stats(); s.LastSpawn != "" || s.Spheres != 0 {
		t.Errorf("Expected pruned sphere to drop out of stats, got %+v", s)
	}
}
