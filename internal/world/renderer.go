package world

import (
	"propfield/internal/components"
	"propfield/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const ShadowMapResolution = 2048

const (
	ShadowNear float32 = 1.0
	ShadowFar  float32 = 60.0
)

type Renderer struct {
	Shader      rl.Shader
	ShadowMap   rl.RenderTexture2D
	Light       *components.DirectionalLight
	LightCamera rl.Camera3D
	MatLightVP  rl.Matrix
	areaSize    float32
	width       int32
	height      int32

	// Drawn and Culled count objects in the last main pass.
	Drawn  int
	Culled int
}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Initialize loads the lighting shader and the shadow map. areaSize is the
// width of the region the shadow camera must cover.
func (r *Renderer) Initialize(areaSize float32) {
	r.areaSize = areaSize
	r.Shader = rl.LoadShader("assets/shaders/lighting.vs", "assets/shaders/lighting.fs")
	r.ShadowMap = loadShadowmapRenderTexture(ShadowMapResolution, ShadowMapResolution)
}

// SetSize records the framebuffer size the main pass renders into.
func (r *Renderer) SetSize(width, height int) {
	r.width, r.height = int32(width), int32(height)
}

// Size returns the last size passed to SetSize.
func (r *Renderer) Size() (int, int) {
	return int(r.width), int(r.height)
}

func (r *Renderer) SetLight(light *components.DirectionalLight) {
	r.Light = light
	r.updateLightCamera()
	r.updateShaderUniforms()
}

func (r *Renderer) updateLightCamera() {
	if r.Light == nil {
		return
	}
	r.LightCamera = r.Light.GetLightCamera(r.areaSize)
}

func (r *Renderer) updateShaderUniforms() {
	if r.Light == nil {
		return
	}

	lightDirLoc := rl.GetShaderLocation(r.Shader, "lightDir")
	rl.SetShaderValue(r.Shader, lightDirLoc, []float32{r.Light.Direction.X, r.Light.Direction.Y, r.Light.Direction.Z}, rl.ShaderUniformVec3)

	lightColorLoc := rl.GetShaderLocation(r.Shader, "lightColor")
	rl.SetShaderValue(r.Shader, lightColorLoc, r.Light.GetColorFloat(), rl.ShaderUniformVec4)

	ambientLoc := rl.GetShaderLocation(r.Shader, "ambient")
	rl.SetShaderValue(r.Shader, ambientLoc, r.Light.GetAmbientFloat(), rl.ShaderUniformVec4)
}

func (r *Renderer) DrawShadowMap(gameObjects []*engine.GameObject) {
	rl.BeginTextureMode(r.ShadowMap)
	rl.ClearBackground(rl.White)

	rl.BeginMode3D(r.LightCamera)

	halfSize := r.LightCamera.Fovy / 2.0
	shadowProj := rl.MatrixOrtho(
		-halfSize, halfSize,
		-halfSize, halfSize,
		ShadowNear, ShadowFar,
	)
	rl.SetMatrixProjection(shadowProj)

	lightView := rl.GetMatrixModelview()
	lightProj := rl.GetMatrixProjection()

	rl.SetCullFace(0)
	for _, g := range gameObjects {
		if renderer := engine.GetComponent[*components.ModelRenderer](g); renderer != nil {
			renderer.Draw()
		}
	}
	rl.SetCullFace(1)

	rl.EndMode3D()
	rl.EndTextureMode()

	if r.width > 0 && r.height > 0 {
		rl.Viewport(0, 0, r.width, r.height)
	} else {
		rl.Viewport(0, 0, int32(rl.GetRenderWidth()), int32(rl.GetRenderHeight()))
	}

	r.MatLightVP = rl.MatrixMultiply(lightView, lightProj)
}

// DrawWithShadows draws every visible renderer inside the camera frustum.
func (r *Renderer) DrawWithShadows(cameraPos rl.Vector3, frustum Frustum, gameObjects []*engine.GameObject) {
	viewPosLoc := rl.GetShaderLocation(r.Shader, "viewPos")
	rl.SetShaderValue(r.Shader, viewPosLoc, []float32{cameraPos.X, cameraPos.Y, cameraPos.Z}, rl.ShaderUniformVec3)

	lightVPLoc := rl.GetShaderLocation(r.Shader, "matLightVP")
	rl.SetShaderValueMatrix(r.Shader, lightVPLoc, r.MatLightVP)

	shadowMapLoc := rl.GetShaderLocation(r.Shader, "shadowMap")
	rl.EnableShader(r.Shader.ID)

	textureSlot := int32(10)
	rl.ActiveTextureSlot(textureSlot)
	rl.EnableTexture(r.ShadowMap.Depth.ID)
	rl.SetUniform(shadowMapLoc, []int32{textureSlot}, int32(rl.ShaderUniformInt), 1)

	r.Drawn, r.Culled = 0, 0
	for _, renderer := range VisibleRenderers(frustum, gameObjects) {
		renderer.Draw()
		r.Drawn++
	}
	r.Culled = countDrawable(gameObjects) - r.Drawn
}

// VisibleRenderers returns the drawable renderers whose bounding sphere touches the frustum.
func VisibleRenderers(frustum Frustum, gameObjects []*engine.GameObject) []*components.ModelRenderer {
	var out []*components.ModelRenderer
	for _, g := range gameObjects {
		renderer := engine.GetComponent[*components.ModelRenderer](g)
		if renderer == nil || !renderer.Drawable() {
			continue
		}
		if renderer.BoundsRadius > 0 {
			scale := g.WorldScale()
			radius := renderer.BoundsRadius * max(scale.X, scale.Y, scale.Z)
			if !frustum.ContainsSphere(g.WorldPosition(), radius) {
				continue
			}
		}
		out = append(out, renderer)
	}
	return out
}

func countDrawable(gameObjects []*engine.GameObject) int {
	n := 0
	for _, g := range gameObjects {
		if renderer := engine.GetComponent[*components.ModelRenderer](g); renderer != nil && renderer.Drawable() {
			n++
		}
	}
	return n
}

func (r *Renderer) Unload() {
	rl.UnloadShader(r.Shader)
	rl.UnloadRenderTexture(r.ShadowMap)
}

func loadShadowmapRenderTexture(width, height int32) rl.RenderTexture2D {
	target := rl.RenderTexture2D{}

	target.ID = rl.LoadFramebuffer()
	target.Texture.Width = width
	target.Texture.Height = height

	if target.ID > 0 {
		rl.EnableFramebuffer(target.ID)

		target.Depth.ID = rl.LoadTextureDepth(width, height, false)
		target.Depth.Width = width
		target.Depth.Height = height
		target.Depth.Format = 19
		target.Depth.Mipmaps = 1

		rl.FramebufferAttach(target.ID, target.Depth.ID, rl.AttachmentDepth, rl.AttachmentTexture2d, 0)

		rl.DisableFramebuffer()
	}

	return target
}
