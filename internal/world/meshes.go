package world

import (
	"propfield/internal/assets"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Template is a loaded model plus its model-space bounds. Clones share it.
type Template struct {
	Model  rl.Model
	Bounds rl.BoundingBox
}

// MeshFactory creates the GPU resources the world needs.
type MeshFactory interface {
	Box(size rl.Vector3) rl.Model
	Sphere(radius float32) rl.Model
	Model(path string) (Template, error)
}

// RaylibMeshes builds meshes with raylib and assigns the lighting shader to every material.
type RaylibMeshes struct {
	Shader rl.Shader
}

func (m RaylibMeshes) Box(size rl.Vector3) rl.Model {
	model := rl.LoadModelFromMesh(rl.GenMeshCube(size.X, size.Y, size.Z))
	m.applyShader(&model)
	return model
}

func (m RaylibMeshes) Sphere(radius float32) rl.Model {
	model := rl.LoadModelFromMesh(rl.GenMeshSphere(radius, 16, 16))
	m.applyShader(&model)
	return model
}

func (m RaylibMeshes) Model(path string) (Template, error) {
	model, err := assets.LoadModel(path)
	if err != nil {
		return Template{}, err
	}
	m.applyShader(&model)
	return Template{Model: model, Bounds: assets.ModelBounds(model)}, nil
}

func (m RaylibMeshes) applyShader(model *rl.Model) {
	if model.MaterialCount == 0 || m.Shader.ID == 0 {
		return
	}
	materials := unsafe.Slice(model.Materials, model.MaterialCount)
	for i := range materials {
		materials[i].Shader = m.Shader
	}
}

// HeadlessMeshes hands out empty models so the scene can be built and
// simulated without a window. Model always succeeds with Bounds.
type HeadlessMeshes struct {
	Bounds rl.BoundingBox
}

func (HeadlessMeshes) Box(size rl.Vector3) rl.Model   { return rl.Model{} }
func (HeadlessMeshes) Sphere(radius float32) rl.Model { return rl.Model{} }

func (m HeadlessMeshes) Model(path string) (Template, error) {
	return Template{Bounds: m.Bounds}, nil
}
