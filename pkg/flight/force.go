// Package flight turns wing flaps into forces on the bird and runs the
// per-tick flight controller.
package flight

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-kanyonbird/pkg/config"
	"github.com/opd-ai/go-kanyonbird/pkg/physics"
	"github.com/opd-ai/go-kanyonbird/pkg/wing"
)

// ForceModel converts flap magnitude into forces.
type ForceModel struct {
	LiftPerFlap          float64
	ForwardMotionPerFlap float64
	LateralMotionPerFlap float64
	SoftCeiling          float64
	HamperFactor         float64
}

// NewForceModel builds a ForceModel from the flight configuration.
func NewForceModel(cfg config.FlightConfig) ForceModel {
	return ForceModel{
		LiftPerFlap:          cfg.LiftPerFlap,
		ForwardMotionPerFlap: cfg.ForwardMotionPerFlap,
		LateralMotionPerFlap: cfg.LateralMotionPerFlap,
		SoftCeiling:          cfg.VerticalSoftCeiling,
		HamperFactor:         cfg.VerticalSoftCeilingHamperFactor,
	}
}

// Hamper scales an upward force by the hamper factor when the body is above
// the soft ceiling.
func (m ForceModel) Hamper(lift, altitude float64) float64 {
	if altitude > m.SoftCeiling {
		return lift * m.HamperFactor
	}
	return lift
}

// FlapForces returns the lift/forward force and the lateral force produced by
// one flap. Both wings lift and push forward the same way; only the lateral
// direction depends on which wing flapped.
func (m ForceModel) FlapForces(flap wing.Flap, dt, altitude float64) (thrust, lateral mgl64.Vec3) {
	lift := m.Hamper(flap.MagnitudePercent*m.LiftPerFlap*dt, altitude)
	forward := flap.MagnitudePercent * m.ForwardMotionPerFlap * dt

	thrust = mgl64.Vec3{0, lift, forward}
	lateral = physics.Lateral(flap.Side.LateralSign() * flap.MagnitudePercent * m.LateralMotionPerFlap * dt)
	return thrust, lateral
}
