package game

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme colors - indigo dark
var (
	colorBgDark        = rl.NewColor(10, 10, 15, 255)
	colorBgPanel       = rl.NewColor(18, 18, 24, 220)
	colorBgElement     = rl.NewColor(28, 28, 38, 255)
	colorBgHover       = rl.NewColor(38, 38, 52, 255)
	colorAccent        = rl.NewColor(108, 99, 255, 255)
	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorWarning       = rl.NewColor(250, 180, 90, 255)
)

const (
	hudX              = 10
	hudY              = 10
	hudWidth          = 260
	hudLineH          = 18
	hudButtonH        = 24
	shadowPreviewSize = 256
)

// Stats is one frame's worth of numbers for the overlay.
type Stats struct {
	Props, Spheres, Bodies int
	Drawn, Culled          int

	UpdateMs, ShadowMs, DrawMs float64

	ModelStatus string
	LastSpawn   string
	Zoom        bool
}

// Lines formats the stats panel text.
func (s Stats) Lines() []string {
	lines := []string{
		fmt.Sprintf("Props: %d  Spheres: %d", s.Props, s.Spheres),
		fmt.Sprintf("Bodies: %d", s.Bodies),
		fmt.Sprintf("Drawn: %d  Culled: %d", s.Drawn, s.Culled),
		fmt.Sprintf("Update:  %.2f ms", s.UpdateMs),
		fmt.Sprintf("Shadows: %.2f ms", s.ShadowMs),
		fmt.Sprintf("Draw:    %.2f ms", s.DrawMs),
		fmt.Sprintf("Total:   %.2f ms", s.UpdateMs+s.ShadowMs+s.DrawMs),
		s.ModelStatus,
	}
	if s.LastSpawn != "" {
		lines = append(lines, "Last: "+s.LastSpawn)
	}
	return lines
}

// HUDAction reports which control was clicked this frame.
type HUDAction struct {
	ResetView  bool
	ToggleZoom bool
}

// HUD is the F1 overlay: stats, a reset-view button and a zoom toggle.
type HUD struct {
	Visible       bool
	ShowShadowMap bool
	bounds        rl.Rectangle
}

func NewHUD() *HUD {
	h := &HUD{Visible: true}
	h.layout(Stats{})
	return h
}

func (h *HUD) layout(s Stats) {
	lines := len(s.Lines()) + 1 // FPS row
	height := float32(lines*hudLineH + 2*hudButtonH + 30)
	h.bounds = rl.Rectangle{X: hudX, Y: hudY, Width: hudWidth, Height: height}
}

// Contains reports whether pos lies on the visible panel. Clicks there
// belong to the HUD and do not reach the scene.
func (h *HUD) Contains(pos rl.Vector2) bool {
	return h.Visible && rl.CheckCollisionPointRec(pos, h.bounds)
}

func (h *HUD) Draw(s Stats, shadowMap rl.Texture2D) HUDAction {
	var action HUDAction
	if h.ShowShadowMap {
		drawShadowPreview(shadowMap)
	}
	if !h.Visible {
		rl.DrawText("F1: stats", hudX, hudY, 16, colorTextSecondary)
		return action
	}

	h.layout(s)
	rl.DrawRectangleRec(h.bounds, colorBgPanel)
	rl.DrawRectangleLinesEx(h.bounds, 1, colorAccent)

	x := h.bounds.X + 10
	y := h.bounds.Y + 8
	w := h.bounds.Width - 20

	rl.DrawFPS(int32(x), int32(y))
	y += hudLineH
	for _, line := range s.Lines() {
		if line == s.ModelStatus && line != "model ok" {
			rl.DrawText(line, int32(x), int32(y), 14, colorWarning)
		} else {
			gui.Label(rl.Rectangle{X: x, Y: y, Width: w, Height: hudLineH}, line)
		}
		y += hudLineH
	}

	y += 6
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: hudButtonH}, "Reset view") {
		action.ResetView = true
	}
	y += hudButtonH + 6
	zoom := gui.CheckBox(rl.Rectangle{X: x, Y: y + 4, Width: 16, Height: 16}, "Wheel zoom", s.Zoom)
	if zoom != s.Zoom {
		action.ToggleZoom = true
	}
	return action
}

func drawShadowPreview(depth rl.Texture2D) {
	screenW := int32(rl.GetScreenWidth())
	rl.DrawTexturePro(
		depth,
		rl.Rectangle{X: 0, Y: 0, Width: float32(depth.Width), Height: float32(-depth.Height)},
		rl.Rectangle{X: float32(screenW - shadowPreviewSize - 10), Y: 10, Width: shadowPreviewSize, Height: shadowPreviewSize},
		rl.Vector2{X: 0, Y: 0},
		0,
		rl.White,
	)
	rl.DrawRectangleLines(screenW-shadowPreviewSize-10, 10, shadowPreviewSize, shadowPreviewSize, colorAccent)
	rl.DrawText("Shadow Map", screenW-shadowPreviewSize-10, shadowPreviewSize+15, 16, colorAccent)
}

// initHUDStyle applies the indigo dark theme to raygui controls.
func initHUDStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 14)
}
