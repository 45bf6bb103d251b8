package input

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-kanyonbird/pkg/wing"
)

// Stick axes read from a gamepad.
type GamepadAxis int

const (
	LeftStickX GamepadAxis = iota
	LeftStickY
	RightStickX
	RightStickY
)

// GamepadSource reads one stick per wing. Horizontal is positive away from
// the body on both sides, so the left stick's X is inverted. Vertical is
// positive with the stick pushed up.
type GamepadSource struct {
	// Axis returns the raw reading of a stick axis in [-1, 1], with Y
	// positive when the stick is pulled down.
	Axis func(axis GamepadAxis) float64
}

// NewGamepadSource registers the first usable gamepad under name with engo.
// It fails when no gamepad is connected or the platform has none.
func NewGamepadSource(name string) (*GamepadSource, error) {
	if err := engo.Input.RegisterGamepad(name); err != nil {
		return nil, err
	}
	return &GamepadSource{
		Axis: func(axis GamepadAxis) float64 {
			pad := engo.Input.Gamepad(name)
			if pad == nil {
				return 0
			}
			switch axis {
			case LeftStickX:
				return float64(pad.LeftX.Value())
			case LeftStickY:
				return float64(pad.LeftY.Value())
			case RightStickX:
				return float64(pad.RightX.Value())
			case RightStickY:
				return float64(pad.RightY.Value())
			}
			return 0
		},
	}, nil
}

// Sample implements Source.
func (g *GamepadSource) Sample() (left, right wing.Axes) {
	left = wing.Axes{
		Horizontal: -g.Axis(LeftStickX),
		Vertical:   -g.Axis(LeftStickY),
	}.Clamped()
	right = wing.Axes{
		Horizontal: g.Axis(RightStickX),
		Vertical:   -g.Axis(RightStickY),
	}.Clamped()
	return left, right
}
