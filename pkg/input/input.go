// Package input samples per-wing stick axes for the flight controller. Analog
// and keyboard sources are merged so either can fly the bird.
package input

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-kanyonbird/pkg/wing"
)

// Source produces one pair of wing axes per tick.
type Source interface {
	Sample() (left, right wing.Axes)
}

// SourceFunc adapts a function to Source.
type SourceFunc func() (left, right wing.Axes)

// Sample calls f.
func (f SourceFunc) Sample() (left, right wing.Axes) {
	return f()
}

// Neutral is a Source with both sticks centred.
var Neutral Source = SourceFunc(func() (wing.Axes, wing.Axes) {
	return wing.Axes{}, wing.Axes{}
})

// Merge combines an analog reading with a keyboard reading. The keyboard only
// contributes to the vertical axis.
func Merge(analog, keyboard wing.Axes) wing.Axes {
	return wing.Axes{
		Horizontal: mgl64.Clamp(analog.Horizontal, -1, 1),
		Vertical:   mgl64.Clamp(analog.Vertical+keyboard.Vertical, -1, 1),
	}
}

// MergedSource samples Analog and Keyboard and merges them per wing. A nil
// source reads as centred.
type MergedSource struct {
	Analog   Source
	Keyboard Source
}

// Sample implements Source.
func (m MergedSource) Sample() (left, right wing.Axes) {
	al, ar := sample(m.Analog)
	kl, kr := sample(m.Keyboard)
	return Merge(al, kl), Merge(ar, kr)
}

func sample(s Source) (wing.Axes, wing.Axes) {
	if s == nil {
		return wing.Axes{}, wing.Axes{}
	}
	return s.Sample()
}
