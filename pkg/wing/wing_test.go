package wing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-kanyonbird/pkg/config"
)

const wingRange = 150.0

func defaultMapper() Mapper {
	return NewMapper(config.DefaultConfig().Flight)
}

func deg(y, x float64) float64 {
	return math.Atan2(y, x) * 180 / math.Pi
}

func TestMapperAngle_HorizontalBranch_FollowsStick(t *testing.T) {
	tests := []struct {
		name string
		axes Axes
	}{
		{"up and out", Axes{Horizontal: 0.5, Vertical: 0.8}},
		{"down and out", Axes{Horizontal: 0.5, Vertical: -0.8}},
		{"straight out", Axes{Horizontal: 1, Vertical: 0}},
		{"barely past deadzone", Axes{Horizontal: 0.41, Vertical: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			want := deg(tt.axes.Vertical, tt.axes.Horizontal)
			assert.InDelta(t, want, defaultMapper().Angle(tt.axes), 1e-9)
		})
	}
}

func TestMapperAngle_HorizontalBranch_IgnoresDeadzoneValues(t *testing.T) {
	axes := Axes{Horizontal: 0.9, Vertical: -0.3}
	want := deg(-0.3, 0.9)

	for _, dz := range [][2]float64{{0, 0}, {0.4, 0.2}, {0.8, 0.95}} {
		m := Mapper{HorizontalDeadzone: dz[0], VerticalDeadzone: dz[1], MinAngle: -75, MaxAngle: 75}
		assert.InDelta(t, want, m.Angle(axes), 1e-9)
	}
}

func TestMapperAngle_VerticalOnly_SnapsToExtremes(t *testing.T) {
	m := defaultMapper()

	tests := []struct {
		name string
		axes Axes
		want float64
	}{
		{"full up", Axes{Vertical: 1}, 75},
		{"at deadzone up", Axes{Vertical: 0.2}, 75},
		{"full down", Axes{Vertical: -1}, -75},
		{"at deadzone down", Axes{Vertical: -0.2}, -75},
		{"horizontal at deadzone is ignored", Axes{Horizontal: 0.4, Vertical: 0.5}, 75},
		{"negative horizontal is ignored", Axes{Horizontal: -1, Vertical: -0.6}, -75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Angle(tt.axes))
		})
	}
}

func TestMapperAngle_InsideDeadzones_Level(t *testing.T) {
	m := defaultMapper()

	for _, axes := range []Axes{
		{},
		{Horizontal: 0.39, Vertical: 0.19},
		{Horizontal: -0.9, Vertical: -0.19},
		{Horizontal: 0.4, Vertical: 0},
	} {
		assert.Equal(t, 0.0, m.Angle(axes), "axes %+v", axes)
	}
}

func TestMapperAngle_StaysWithinWingRange(t *testing.T) {
	m := Mapper{HorizontalDeadzone: 0, VerticalDeadzone: 0.2, MinAngle: -60, MaxAngle: 60}

	assert.Equal(t, 60.0, m.Angle(Axes{Horizontal: 0.1, Vertical: 1}))
	assert.Equal(t, -60.0, m.Angle(Axes{Horizontal: 0.1, Vertical: -1}))
}

func TestAxesClamped(t *testing.T) {
	assert.Equal(t, Axes{Horizontal: 1, Vertical: -1}, Axes{Horizontal: 3, Vertical: -2}.Clamped())
	assert.Equal(t, Axes{Horizontal: 0.3, Vertical: 0.2}, Axes{Horizontal: 0.3, Vertical: 0.2}.Clamped())
}

func TestSide(t *testing.T) {
	assert.Equal(t, "left", Left.String())
	assert.Equal(t, "right", Right.String())
	assert.Equal(t, "unknown", Side(7).String())
	assert.Equal(t, 1.0, Left.LateralSign())
	assert.Equal(t, -1.0, Right.LateralSign())
}

func TestDetectFlap_OnlyDownwardMovement(t *testing.T) {
	tests := []struct {
		name     string
		previous float64
		current  float64
		flap     bool
		percent  float64
	}{
		{"rising", 0, 58, false, 0},
		{"still", 40, 40, false, 0},
		{"full stroke", 75, -75, true, 100},
		{"half stroke", 75, 0, true, 50},
		{"small dip", 10, 8.5, true, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flap, ok := DetectFlap(Right, tt.previous, tt.current, wingRange)
			require.Equal(t, tt.flap, ok)
			if ok {
				assert.Equal(t, Right, flap.Side)
				assert.InDelta(t, tt.percent, flap.MagnitudePercent, 1e-9)
			}
		})
	}
}

func TestStateAdvance_FlapScenario(t *testing.T) {
	m := defaultMapper()
	s := State{}

	s, _, ok := s.Advance(Left, m.Angle(Axes{Horizontal: 0.5, Vertical: 0.8}), wingRange)
	assert.False(t, ok, "rising stroke must not flap")
	assert.InDelta(t, 58.0, s.Current, 0.01)
	assert.Equal(t, 0.0, s.Previous)

	next, flap, ok := s.Advance(Left, m.Angle(Axes{Horizontal: 0.5, Vertical: -0.8}), wingRange)
	require.True(t, ok)
	assert.InDelta(t, -58.0, next.Current, 0.01)
	assert.Equal(t, s.Current, next.Previous)
	assert.Equal(t, Left, flap.Side)
	assert.InDelta(t, 116.0/150.0*100, flap.MagnitudePercent, 0.02)

	// the receiver is a value; advancing does not mutate it
	assert.InDelta(t, 58.0, s.Current, 0.01)
}

func TestLerpAngle(t *testing.T) {
	tests := []struct {
		name         string
		from, to, tt float64
		want         float64
	}{
		{"halfway", 0, 60, 0.5, 30},
		{"t clamped high", 0, 60, 3, 60},
		{"t clamped low", 10, 60, -1, 10},
		{"shortest arc across zero", 350, 10, 0.5, 360},
		{"shortest arc backwards", 10, 350, 0.5, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, LerpAngle(tc.from, tc.to, tc.tt), 1e-9)
		})
	}
}

func TestPivotAnimate(t *testing.T) {
	right := NewPivot(Right)
	left := NewPivot(Left)

	right = right.Animate(60, 10, 0.05)
	left = left.Animate(60, 10, 0.05)

	assert.InDelta(t, 30, right.Angle, 1e-9)
	assert.InDelta(t, -30, left.Angle, 1e-9, "left pivot is mirrored")

	for i := 0; i < 200; i++ {
		right = right.Animate(60, 10, 0.016)
	}
	assert.InDelta(t, 60, right.Angle, 1e-6)
}
