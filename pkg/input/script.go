package input

import (
	"errors"
	"fmt"

	"github.com/opd-ai/go-kanyonbird/pkg/wing"
)

// Frame holds a pair of axes for a number of ticks.
type Frame struct {
	Left  wing.Axes
	Right wing.Axes
	Ticks int
}

// ScriptedSource replays frames in a loop. It drives headless runs and tests.
type ScriptedSource struct {
	frames []Frame
	frame  int
	tick   int
}

// NewScriptedSource returns a source replaying frames. Every frame must last
// at least one tick.
func NewScriptedSource(frames ...Frame) (*ScriptedSource, error) {
	if len(frames) == 0 {
		return nil, errors.New("script needs at least one frame")
	}
	for i, f := range frames {
		if f.Ticks < 1 {
			return nil, fmt.Errorf("frame %d: ticks must be positive, got %d", i, f.Ticks)
		}
	}
	return &ScriptedSource{frames: frames}, nil
}

// FlapScript builds a symmetric flapping pattern: both sticks held outward at
// horizontal, up at +amplitude for half the period, then down at -amplitude.
func FlapScript(period int, horizontal, amplitude float64) (*ScriptedSource, error) {
	if period < 2 {
		return nil, fmt.Errorf("flap period must be at least 2 ticks, got %d", period)
	}
	up := wing.Axes{Horizontal: horizontal, Vertical: amplitude}
	down := wing.Axes{Horizontal: horizontal, Vertical: -amplitude}
	return NewScriptedSource(
		Frame{Left: up, Right: up, Ticks: period / 2},
		Frame{Left: down, Right: down, Ticks: period - period/2},
	)
}

// Sample implements Source.
func (s *ScriptedSource) Sample() (left, right wing.Axes) {
	f := s.frames[s.frame]
	s.tick++
	if s.tick >= f.Ticks {
		s.tick = 0
		s.frame = (s.frame + 1) % len(s.frames)
	}
	return f.Left, f.Right
}

// Reset rewinds to the first frame.
func (s *ScriptedSource) Reset() {
	s.frame, s.tick = 0, 0
}
