package physics

import "github.com/go-gl/mathgl/mgl64"

// ClampVelocity bounds vertical speed to [-maxVertical, maxVertical] and
// forward speed to [0, maxForward]. The bird never flies backwards. Lateral
// speed is left alone.
func ClampVelocity(v mgl64.Vec3, maxForward, maxVertical float64) mgl64.Vec3 {
	return mgl64.Vec3{
		v[AxisLateral],
		mgl64.Clamp(v[AxisVertical], -maxVertical, maxVertical),
		mgl64.Clamp(v[AxisForward], 0, maxForward),
	}
}
