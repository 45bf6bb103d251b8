// Package wing turns per-wing stick input into wing angles and detects flaps.
package wing

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-kanyonbird/pkg/config"
)

// Axes is one wing's pair of normalized inputs, each in [-1, 1].
type Axes struct {
	Horizontal float64
	Vertical   float64
}

// Clamped returns a with both components limited to [-1, 1].
func (a Axes) Clamped() Axes {
	return Axes{
		Horizontal: mgl64.Clamp(a.Horizontal, -1, 1),
		Vertical:   mgl64.Clamp(a.Vertical, -1, 1),
	}
}

// Mapper converts stick input into a wing angle in degrees.
type Mapper struct {
	HorizontalDeadzone float64
	VerticalDeadzone   float64
	MinAngle           float64
	MaxAngle           float64
}

// NewMapper builds a Mapper from the flight configuration.
func NewMapper(cfg config.FlightConfig) Mapper {
	return Mapper{
		HorizontalDeadzone: cfg.HorizontalDeadzone,
		VerticalDeadzone:   cfg.VerticalDeadzone,
		MinAngle:           cfg.MinWingAngle,
		MaxAngle:           cfg.MaxWingAngle,
	}
}

// Angle maps the axes to a wing angle.
//
// Only positive horizontal input beyond the deadzone counts as horizontal
// input: with both sticks pushed outward the angle follows the stick
// direction, atan2(v, h). Otherwise vertical input beyond the deadzone snaps
// the wing to the top or bottom of its sweep, and anything else levels it.
func (m Mapper) Angle(a Axes) float64 {
	a = a.Clamped()

	if a.Horizontal > m.HorizontalDeadzone {
		deg := mgl64.RadToDeg(math.Atan2(a.Vertical, a.Horizontal))
		return mgl64.Clamp(deg, m.MinAngle, m.MaxAngle)
	}

	if a.Vertical <= -m.VerticalDeadzone || a.Vertical >= m.VerticalDeadzone {
		if a.Vertical < 0 {
			return m.MinAngle
		}
		return m.MaxAngle
	}

	return 0
}
