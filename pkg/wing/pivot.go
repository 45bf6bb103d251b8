package wing

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Pivot is the displayed rotation of a wing model. It trails the target angle
// and is purely cosmetic; flap detection never reads it.
type Pivot struct {
	Angle float64
	// The left wing model hangs on the other side of its pivot, so it is
	// driven with the negated angle.
	Mirrored bool
}

// NewPivot returns a level pivot for the given wing.
func NewPivot(side Side) Pivot {
	return Pivot{Mirrored: side == Left}
}

// Animate eases the pivot toward target by smoothness*dt of the remaining
// arc and returns the updated pivot.
func (p Pivot) Animate(target, smoothness, dt float64) Pivot {
	if p.Mirrored {
		target = -target
	}
	p.Angle = LerpAngle(p.Angle, target, smoothness*dt)
	return p
}

// LerpAngle interpolates between two angles in degrees along the shortest arc.
// t is clamped to [0, 1].
func LerpAngle(from, to, t float64) float64 {
	delta := math.Mod(to-from, 360)
	if delta < 0 {
		delta += 360
	}
	if delta > 180 {
		delta -= 360
	}
	return from + delta*mgl64.Clamp(t, 0, 1)
}
