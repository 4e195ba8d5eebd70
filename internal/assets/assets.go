package assets

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	ErrModelNotFound = errors.New("model file not found")
	ErrModelInvalid  = errors.New("model failed to load")
	ErrInvalidColor  = errors.New("invalid color")
)

var manager *Manager

type Manager struct {
	models map[string]rl.Model
}

// Color name mapping for config files
var colorByName = map[string]rl.Color{
	"Red":       rl.Red,
	"Blue":      rl.Blue,
	"Green":     rl.Green,
	"Purple":    rl.Purple,
	"Orange":    rl.Orange,
	"Yellow":    rl.Yellow,
	"Gold":      rl.Gold,
	"White":     rl.White,
	"Gray":      rl.Gray,
	"LightGray": rl.LightGray,
	"DarkGray":  rl.DarkGray,
	"Black":     rl.Black,
	"Pink":      rl.Pink,
	"Maroon":    rl.Maroon,
	"Brown":     rl.Brown,
	"Beige":     rl.Beige,
	"SkyBlue":   rl.SkyBlue,
	"DarkBlue":  rl.DarkBlue,
	"Lime":      rl.Lime,
	"DarkGreen": rl.DarkGreen,
}

// ParseColor accepts "#rrggbb", "#rrggbbaa" or a color name.
func ParseColor(s string) (rl.Color, error) {
	if c, ok := colorByName[s]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return rl.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return rl.Color{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return rl.Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

func Init() {
	manager = &Manager{
		models: make(map[string]rl.Model),
	}
}

// LoadModel loads a model once and returns the cached copy afterwards.
// Callers share the returned model and must not unload it.
func LoadModel(path string) (rl.Model, error) {
	if manager == nil {
		Init()
	}

	if model, exists := manager.models[path]; exists {
		return model, nil
	}

	if !rl.FileExists(path) {
		return rl.Model{}, fmt.Errorf("%w: %s", ErrModelNotFound, path)
	}

	model := rl.LoadModel(path)
	if !rl.IsModelValid(model) || model.MeshCount == 0 {
		if model.MeshCount > 0 {
			rl.UnloadModel(model)
		}
		return rl.Model{}, fmt.Errorf("%w: %s", ErrModelInvalid, path)
	}

	manager.models[path] = model
	return model, nil
}

// ModelBounds returns the model's bounding box in model space.
func ModelBounds(model rl.Model) rl.BoundingBox {
	return rl.GetModelBoundingBox(model)
}

// BoundsSize returns the extent of a bounding box.
func BoundsSize(b rl.BoundingBox) rl.Vector3 {
	return rl.Vector3Subtract(b.Max, b.Min)
}

func Unload() {
	if manager == nil {
		return
	}

	for _, model := range manager.models {
		rl.UnloadModel(model)
	}

	manager.models = make(map[string]rl.Model)
}
