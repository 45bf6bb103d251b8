// pkg/physics/vector.go
package physics

import "github.com/go-gl/mathgl/mgl64"

// Axis indices into mgl64.Vec3. X runs laterally (positive is right of
// travel), Y is up, Z is the direction of travel.
const (
	AxisLateral  = 0
	AxisVertical = 1
	AxisForward  = 2
)

// Lateral returns a vector along the lateral axis.
func Lateral(x float64) mgl64.Vec3 {
	return mgl64.Vec3{x, 0, 0}
}

// Vertical returns a vector along the vertical axis.
func Vertical(y float64) mgl64.Vec3 {
	return mgl64.Vec3{0, y, 0}
}

// Forward returns a vector along the travel axis.
func Forward(z float64) mgl64.Vec3 {
	return mgl64.Vec3{0, 0, z}
}

// Altitude returns the vertical component of a position.
func Altitude(p mgl64.Vec3) float64 {
	return p[AxisVertical]
}

// LengthSquared returns magnitude squared (optimization for comparisons)
func LengthSquared(v mgl64.Vec3) float64 {
	return v.Dot(v)
}
