package components

import (
	"propfield/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Sleep thresholds
const (
	SleepVelocityThreshold = 0.05 // units/sec - below this, object might sleep
	SleepAngularThreshold  = 1.0  // deg/sec - below this, object might sleep
	SleepTimeThreshold     = 0.5  // seconds of low velocity before sleeping
)

type Rigidbody struct {
	engine.BaseComponent
	Velocity        rl.Vector3
	AngularVelocity rl.Vector3 // degrees per second on each axis
	Mass            float32
	Bounciness      float32 // 0 = no bounce, 1 = perfect bounce
	Friction        float32 // 0 = ice, 1 = stops immediately
	AngularDamping  float32 // how fast rotation slows down
	UseGravity      bool

	// Sleep state - sleeping objects skip physics simulation
	IsSleeping bool
	sleepTimer float32 // time spent below velocity threshold
	CanSleep   bool
}

// NewRigidbody returns a dynamic body of the given mass. Non-positive masses fall back to 1.
func NewRigidbody(mass float32) *Rigidbody {
	if mass <= 0 {
		mass = 1
	}
	return &Rigidbody{
		Mass:           mass,
		Bounciness:     0.3,
		Friction:       0.2,
		AngularDamping: 0.98,
		UseGravity:     true,
		CanSleep:       true,
	}
}

// Wake forces the rigidbody out of sleep state
func (r *Rigidbody) Wake() {
	r.IsSleeping = false
	r.sleepTimer = 0
}

// Stop zeroes linear and angular velocity.
func (r *Rigidbody) Stop() {
	r.Velocity = rl.Vector3{}
	r.AngularVelocity = rl.Vector3{}
}

// TrySleep checks if the rigidbody should go to sleep based on velocity
func (r *Rigidbody) TrySleep(deltaTime float32) {
	if !r.CanSleep || r.IsSleeping {
		return
	}

	speed := rl.Vector3Length(r.Velocity)
	angSpeed := rl.Vector3Length(r.AngularVelocity)

	if speed < SleepVelocityThreshold && angSpeed < SleepAngularThreshold {
		r.sleepTimer += deltaTime
		if r.sleepTimer >= SleepTimeThreshold {
			r.IsSleeping = true
			r.Stop()
		}
	} else {
		r.sleepTimer = 0
	}
}
