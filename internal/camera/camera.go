package camera

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const (
	minPitch = -math.Pi/2 + 0.01
	maxPitch = math.Pi/2 - 0.01
)

// Orbit is a perspective camera that circles a target point. Yaw and pitch
// are in radians; pitch is the elevation above the target's horizontal plane.
type Orbit struct {
	Target   rl.Vector3
	Distance float32
	Yaw      float32
	Pitch    float32

	Fovy   float32 // degrees
	Near   float32
	Far    float32
	Aspect float32

	EnableZoom  bool
	MinDistance float32
	MaxDistance float32
	ZoomSpeed   float32

	homeYaw, homePitch, homeDistance float32
	homeTween                        *homeTween
}

type homeTween struct {
	yaw, pitch, distance *gween.Tween
}

// NewOrbit creates a camera at position looking at target. The starting pose
// becomes the home pose restored by ResetHome.
func NewOrbit(position, target rl.Vector3, fovy, near, far float32) *Orbit {
	offset := rl.Vector3Subtract(position, target)
	distance := rl.Vector3Length(offset)
	if distance < 0.0001 {
		distance = 1
		offset = rl.Vector3{Z: 1}
	}

	c := &Orbit{
		Target:      target,
		Distance:    distance,
		Yaw:         float32(math.Atan2(float64(offset.X), float64(offset.Z))),
		Pitch:       float32(math.Asin(float64(offset.Y / distance))),
		Fovy:        fovy,
		Near:        near,
		Far:         far,
		Aspect:      1,
		MinDistance: 0.5,
		MaxDistance: 20,
		ZoomSpeed:   0.1,
	}
	c.homeYaw, c.homePitch, c.homeDistance = c.Yaw, c.Pitch, c.Distance
	return c
}

// Position returns the camera position in world space.
func (c *Orbit) Position() rl.Vector3 {
	cosPitch := float32(math.Cos(float64(c.Pitch)))
	return rl.Vector3{
		X: c.Target.X + c.Distance*cosPitch*float32(math.Sin(float64(c.Yaw))),
		Y: c.Target.Y + c.Distance*float32(math.Sin(float64(c.Pitch))),
		Z: c.Target.Z + c.Distance*cosPitch*float32(math.Cos(float64(c.Yaw))),
	}
}

// Forward returns the unit view direction.
func (c *Orbit) Forward() rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3Subtract(c.Target, c.Position()))
}

func (c *Orbit) ViewMatrix() rl.Matrix {
	return rl.MatrixLookAt(c.Position(), c.Target, rl.Vector3{Y: 1})
}

func (c *Orbit) ProjectionMatrix() rl.Matrix {
	return rl.MatrixPerspective(c.Fovy*rl.Deg2rad, c.Aspect, c.Near, c.Far)
}

// Resize updates the aspect ratio. A zero height is ignored.
func (c *Orbit) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// ScreenRay builds a world-space picking ray through the pixel (px, py) of a
// width x height surface. The ray starts at the camera position.
func (c *Orbit) ScreenRay(px, py float32, width, height int) rl.Ray {
	ndc := rl.Vector3{
		X: px/float32(width)*2 - 1,
		Y: -(py/float32(height))*2 + 1,
		Z: 1,
	}
	far := rl.Vector3Unproject(ndc, c.ProjectionMatrix(), c.ViewMatrix())
	origin := c.Position()
	return rl.Ray{
		Position:  origin,
		Direction: rl.Vector3Normalize(rl.Vector3Subtract(far, origin)),
	}
}

// Rotate orbits the camera by a pointer drag of (dx, dy) pixels. A drag the
// full height of the screen is one full turn.
func (c *Orbit) Rotate(dx, dy float32, screenHeight int) {
	if screenHeight <= 0 {
		return
	}
	c.homeTween = nil
	turn := 2 * math.Pi / float32(screenHeight)
	c.Yaw -= dx * turn
	c.Pitch += dy * turn
	c.Pitch = clamp(c.Pitch, minPitch, maxPitch)
}

// Zoom moves the camera toward the target by wheel steps. Ignored unless EnableZoom is set.
func (c *Orbit) Zoom(wheel float32) {
	if !c.EnableZoom || wheel == 0 {
		return
	}
	c.Distance = clamp(c.Distance*(1-wheel*c.ZoomSpeed), c.MinDistance, c.MaxDistance)
}

// ResetHome eases the camera back to its starting pose over duration seconds.
func (c *Orbit) ResetHome(duration float32) {
	// Take the short way around
	yaw := c.Yaw
	for yaw-c.homeYaw > math.Pi {
		yaw -= 2 * math.Pi
	}
	for yaw-c.homeYaw < -math.Pi {
		yaw += 2 * math.Pi
	}
	c.Yaw = yaw

	c.homeTween = &homeTween{
		yaw:      gween.New(c.Yaw, c.homeYaw, duration, ease.OutCubic),
		pitch:    gween.New(c.Pitch, c.homePitch, duration, ease.OutCubic),
		distance: gween.New(c.Distance, c.homeDistance, duration, ease.OutCubic),
	}
}

// Animating reports whether a ResetHome is in progress.
func (c *Orbit) Animating() bool {
	return c.homeTween != nil
}

// Update advances any running home animation.
func (c *Orbit) Update(deltaTime float32) {
	if c.homeTween == nil {
		return
	}
	yaw, done := c.homeTween.yaw.Update(deltaTime)
	pitch, _ := c.homeTween.pitch.Update(deltaTime)
	distance, _ := c.homeTween.distance.Update(deltaTime)
	c.Yaw, c.Pitch, c.Distance = yaw, pitch, distance
	if done {
		c.homeTween = nil
	}
}

// HandleInput applies mouse drag and wheel input for this frame.
func (c *Orbit) HandleInput(screenHeight int) {
	if rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		delta := rl.GetMouseDelta()
		if delta.X != 0 || delta.Y != 0 {
			c.Rotate(delta.X, delta.Y, screenHeight)
		}
	}
	c.Zoom(rl.GetMouseWheelMove())
}

func (c *Orbit) Raylib() rl.Camera3D {
	return rl.Camera3D{
		Position:   c.Position(),
		Target:     c.Target,
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.Fovy,
		Projection: rl.CameraPerspective,
	}
}

func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
