package components

import (
	"propfield/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type ModelRenderer struct {
	engine.BaseComponent
	Model rl.Model
	Color rl.Color
	// BoundsRadius is the model-space bounding sphere radius used for culling. Zero disables culling.
	BoundsRadius float32
	shared       bool // true if the model is owned elsewhere and Unload leaves it alone
}

func NewModelRenderer(model rl.Model, color rl.Color) *ModelRenderer {
	return &ModelRenderer{
		Model: model,
		Color: color,
	}
}

// NewSharedModelRenderer draws a model owned elsewhere (the asset cache or a template).
// Clones share GPU buffers and only differ in their transform.
func NewSharedModelRenderer(model rl.Model, color rl.Color) *ModelRenderer {
	return &ModelRenderer{
		Model:  model,
		Color:  color,
		shared: true,
	}
}

// Shared reports whether Unload leaves the model alone.
func (m *ModelRenderer) Shared() bool {
	return m.shared
}

// WorldMatrix combines scale -> rotate -> translate for the owning object.
func (m *ModelRenderer) WorldMatrix() rl.Matrix {
	g := m.GetGameObject()
	scale := g.WorldScale()
	pos := g.WorldPosition()
	scaleMatrix := rl.MatrixScale(scale.X, scale.Y, scale.Z)
	rotMatrix := engine.RotationMatrix(g.WorldRotation())
	transMatrix := rl.MatrixTranslate(pos.X, pos.Y, pos.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(scaleMatrix, rotMatrix), transMatrix)
}

// Drawable reports whether the renderer's object should be drawn this frame.
func (m *ModelRenderer) Drawable() bool {
	g := m.GetGameObject()
	return g != nil && g.Active && g.Visible
}

func (m *ModelRenderer) Draw() {
	if !m.Drawable() {
		return
	}
	m.Model.Transform = m.WorldMatrix()
	rl.DrawModel(m.Model, rl.Vector3Zero(), 1.0, m.Color)
}

func (m *ModelRenderer) Unload() {
	if !m.shared {
		rl.UnloadModel(m.Model)
	}
}
