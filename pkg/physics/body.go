package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-kanyonbird/pkg/config"
)

// Body is the kinematic handle the flight core holds for the bird. The core
// reads position and velocity, appends forces and writes back the clamped
// velocity; integration belongs to whoever implements Body.
type Body interface {
	Position() mgl64.Vec3
	Velocity() mgl64.Vec3
	SetVelocity(v mgl64.Vec3)
	AddForce(f mgl64.Vec3)
}

// RigidBody is a point-mass Body with a force accumulator, uniform gravity
// along Y and linear drag.
type RigidBody struct {
	Mass    float64
	Gravity float64
	Drag    float64

	position mgl64.Vec3
	velocity mgl64.Vec3
	force    mgl64.Vec3
}

// NewRigidBody creates a body at the configured start position, at rest.
func NewRigidBody(cfg config.BodyConfig) *RigidBody {
	return &RigidBody{
		Mass:     cfg.Mass,
		Gravity:  cfg.Gravity,
		Drag:     cfg.Drag,
		position: mgl64.Vec3(cfg.Start),
	}
}

// Position returns the current position.
func (b *RigidBody) Position() mgl64.Vec3 { return b.position }

// SetPosition teleports the body.
func (b *RigidBody) SetPosition(p mgl64.Vec3) { b.position = p }

// Velocity returns the current velocity.
func (b *RigidBody) Velocity() mgl64.Vec3 { return b.velocity }

// SetVelocity overwrites the velocity.
func (b *RigidBody) SetVelocity(v mgl64.Vec3) { b.velocity = v }

// AddForce appends f to this step's accumulator.
func (b *RigidBody) AddForce(f mgl64.Vec3) { b.force = b.force.Add(f) }

// AccumulatedForce returns the forces added since the last Integrate.
func (b *RigidBody) AccumulatedForce() mgl64.Vec3 { return b.force }

// Integrate advances the body by dt using semi-implicit Euler and clears the
// force accumulator.
func (b *RigidBody) Integrate(dt float64) {
	accel := b.force.Mul(1 / b.Mass)
	accel[AxisVertical] += b.Gravity

	b.velocity = b.velocity.Add(accel.Mul(dt))
	if b.Drag > 0 {
		b.velocity = b.velocity.Mul(1 / (1 + b.Drag*dt))
	}

	b.position = b.position.Add(b.velocity.Mul(dt))
	b.force = mgl64.Vec3{}
}
