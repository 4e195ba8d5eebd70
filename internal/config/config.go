// Package config holds the tunable scene parameters. Default reproduces the
// stock scene; a JSON file may override any subset of fields.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"propfield/internal/assets"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// DefaultPath is where the entry point looks for a config file when -config is not given.
const DefaultPath = "config/propfield.json"

// MaxPropCount bounds scene.propCount.
const MaxPropCount = 10000

var ErrInvalid = errors.New("invalid config")

type Window struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Title  string `json:"title"`
	MSAA   bool   `json:"msaa"`
}

type Scene struct {
	Background     string     `json:"background"`
	ModelPath      string     `json:"modelPath"`
	PropCount      int        `json:"propCount"`
	PropScale      float32    `json:"propScale"`
	MinSeparation  float32    `json:"minSeparation"`
	MaxAttempts    int        `json:"maxAttempts"`
	AreaMinX       float32    `json:"areaMinX"`
	AreaMinZ       float32    `json:"areaMinZ"`
	AreaWidth      float32    `json:"areaWidth"`
	AreaDepth      float32    `json:"areaDepth"`
	ProxyInflation float32    `json:"proxyInflation"`
	ProxyMass      float32    `json:"proxyMass"`
	FloorSize      rl.Vector3 `json:"floorSize"`
	FloorY         float32    `json:"floorY"`
	LightPosition  rl.Vector3 `json:"lightPosition"`
	LightIntensity float32    `json:"lightIntensity"`
}

type Camera struct {
	Position   rl.Vector3 `json:"position"`
	Target     rl.Vector3 `json:"target"`
	Fovy       float32    `json:"fovy"`
	Near       float32    `json:"near"`
	Far        float32    `json:"far"`
	EnableZoom bool       `json:"enableZoom"`
	HomeEase   float32    `json:"homeEaseSeconds"`
}

type Spawner struct {
	Radius        float32 `json:"radius"`
	Mass          float32 `json:"mass"`
	Speed         float32 `json:"speed"`
	SpawnDistance float32 `json:"spawnDistance"`
	MaxRayLength  float32 `json:"maxRayLength"`
}

type Physics struct {
	Gravity rl.Vector3 `json:"gravity"`
	KillY   float32    `json:"killY"`
}

type Config struct {
	Window  Window  `json:"window"`
	Scene   Scene   `json:"scene"`
	Camera  Camera  `json:"camera"`
	Spawner Spawner `json:"spawner"`
	Physics Physics `json:"physics"`
	// Seed for prop placement; 0 picks a time-based seed.
	Seed int64 `json:"seed"`
}

// Default returns the stock scene configuration.
func Default() Config {
	return Config{
		Window: Window{
			Width:  1280,
			Height: 720,
			Title:  "propfield",
			MSAA:   true,
		},
		Scene: Scene{
			Background:     "#bfd1e5",
			ModelPath:      "assets/models/textured_mesh.glb",
			PropCount:      50,
			PropScale:      0.1,
			MinSeparation:  0.5,
			MaxAttempts:    1000,
			AreaMinX:       -4,
			AreaMinZ:       -6,
			AreaWidth:      8,
			AreaDepth:      8,
			ProxyInflation: 1.5,
			ProxyMass:      1,
			FloorSize:      rl.Vector3{X: 10, Y: 5, Z: 10},
			FloorY:         -3.2,
			LightPosition:  rl.Vector3{X: 5, Y: 5, Z: 5},
			LightIntensity: 1,
		},
		Camera: Camera{
			Position: rl.Vector3{X: -1, Y: 1.5, Z: 2},
			Target:   rl.Vector3{X: 0, Y: 0.5, Z: 0},
			Fovy:     50,
			Near:     0.1,
			Far:      100,
			HomeEase: 0.6,
		},
		Spawner: Spawner{
			Radius:        0.05,
			Mass:          5,
			Speed:         10,
			SpawnDistance: 2,
			MaxRayLength:  100,
		},
		Physics: Physics{
			Gravity: rl.Vector3{Y: -9.81},
			KillY:   -50,
		},
	}
}

// Load reads a JSON config over the defaults. A missing file yields Default().
func Load(path string) (Config, error) {
	cfg, err := LoadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// LoadFile is Load for a path the user asked for by name, so a missing file
// is reported as an error wrapping os.ErrNotExist.
func LoadFile(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate rejects values the scene cannot run with.
func (c Config) Validate() error {
	var problems []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			problems = append(problems, fmt.Errorf(format, args...))
		}
	}

	check(c.Window.Width > 0 && c.Window.Height > 0, "window size %dx%d", c.Window.Width, c.Window.Height)
	_, colorErr := assets.ParseColor(c.Scene.Background)
	check(colorErr == nil, "background %q", c.Scene.Background)
	check(c.Scene.PropCount >= 0 && c.Scene.PropCount <= MaxPropCount, "propCount %d", c.Scene.PropCount)
	check(c.Scene.PropScale > 0, "propScale %g", c.Scene.PropScale)
	check(c.Scene.MinSeparation >= 0, "minSeparation %g", c.Scene.MinSeparation)
	check(c.Scene.MaxAttempts > 0, "maxAttempts %d", c.Scene.MaxAttempts)
	check(c.Scene.AreaWidth > 0 && c.Scene.AreaDepth > 0, "area %gx%g", c.Scene.AreaWidth, c.Scene.AreaDepth)
	check(c.Scene.ProxyInflation > 0, "proxyInflation %g", c.Scene.ProxyInflation)
	check(c.Scene.ProxyMass > 0, "proxyMass %g", c.Scene.ProxyMass)
	check(c.Camera.Fovy > 0 && c.Camera.Fovy < 180, "fovy %g", c.Camera.Fovy)
	check(c.Camera.Near > 0 && c.Camera.Far > c.Camera.Near, "clip planes %g..%g", c.Camera.Near, c.Camera.Far)
	check(c.Camera.HomeEase >= 0, "homeEaseSeconds %g", c.Camera.HomeEase)
	check(c.Spawner.Radius > 0, "spawner radius %g", c.Spawner.Radius)
	check(c.Spawner.Mass > 0, "spawner mass %g", c.Spawner.Mass)
	check(c.Spawner.Speed > 0, "spawner speed %g", c.Spawner.Speed)
	check(c.Spawner.SpawnDistance >= 0, "spawnDistance %g", c.Spawner.SpawnDistance)
	check(c.Spawner.MaxRayLength > 0, "maxRayLength %g", c.Spawner.MaxRayLength)

	if len(problems) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(problems...))
	}
	return nil
}

// BackgroundColor returns the parsed background color, white if unparsable.
func (c Config) BackgroundColor() rl.Color {
	col, err := assets.ParseColor(c.Scene.Background)
	if err != nil {
		return rl.White
	}
	return col
}
