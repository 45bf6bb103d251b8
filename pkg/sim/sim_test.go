package sim

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-kanyonbird/pkg/config"
	"github.com/opd-ai/go-kanyonbird/pkg/event"
	"github.com/opd-ai/go-kanyonbird/pkg/flight"
	"github.com/opd-ai/go-kanyonbird/pkg/input"
	"github.com/opd-ai/go-kanyonbird/pkg/logging"
	"github.com/opd-ai/go-kanyonbird/pkg/physics"
	"github.com/opd-ai/go-kanyonbird/pkg/wing"
)

func sphereAt(x, y, z float64) physics.Sphere {
	return physics.Sphere{Center: mgl64.Vec3{x, y, z}, Radius: 1.5}
}

func TestCourse_Contacts(t *testing.T) {
	course := NewCourse(config.DefaultConfig().Course)

	tests := []struct {
		name    string
		sphere  physics.Sphere
		contact string
		target  bool
	}{
		{"open air", sphereAt(0, 40, 0), "", false},
		{"skimming the floor", sphereAt(0, 0.5, 100), "floor", false},
		{"right wall", sphereAt(59, 40, 100), "right wall", false},
		{"left wall", sphereAt(-59, 40, 100), "left wall", false},
		{"inside scenery", sphereAt(-45, 10, 1230), "pride-rock", false},
		{"reaching the target", sphereAt(0, 40, 2999), "target", true},
		{"target wins over wall", sphereAt(59.5, 40, 3001), "target", true},
		{"far above open sky", sphereAt(0, 5000, 500), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := course.FirstContact(tt.sphere)
			if tt.contact == "" {
				assert.False(t, ok, "unexpected contact with %s", c.Name)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tt.contact, c.Name)
			assert.Equal(t, tt.target, c.IsTarget())
			assert.True(t, c.Collided)
		})
	}
}

func TestCourse_CeilingAndTags(t *testing.T) {
	cfg := config.DefaultConfig().Course
	cfg.Ceiling = 100
	cfg.Obstacles = []config.BoxConfig{
		{Name: "untagged", Min: [3]float64{0, 0, 500}, Max: [3]float64{10, 10, 510}},
		{Name: "bonus", Tag: TagTarget, Min: [3]float64{0, 50, 800}, Max: [3]float64{5, 55, 805}},
	}
	course := NewCourse(cfg)

	c, ok := course.FirstContact(sphereAt(0, 99.5, 10))
	require.True(t, ok)
	assert.Equal(t, "ceiling", c.Name)

	c, ok = course.FirstContact(sphereAt(5, 5, 505))
	require.True(t, ok)
	assert.Equal(t, TagScenery, c.Tag)

	c, ok = course.FirstContact(sphereAt(2, 52, 802))
	require.True(t, ok)
	assert.True(t, c.IsTarget())

	assert.Len(t, course.Contacts(sphereAt(59.5, 99.5, 10)), 2, "wall and ceiling")
	assert.Len(t, course.Obstacles(), 7)
	assert.Equal(t, "target", course.Obstacles()[0].Name)
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Session.TickRate = 60
	return cfg
}

func TestNewSession_RejectsInvalidConfig(t *testing.T) {
	_, err := NewSession(nil, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg := testConfig()
	cfg.Body.Mass = 0
	_, err = NewSession(cfg, nil)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestSession_FallsToFloor(t *testing.T) {
	cfg := testConfig()
	cfg.Body.Start = [3]float64{0, 5, 0}

	var buf bytes.Buffer
	logger := logging.NewLoggerWithWriter(&buf, logging.ParseLevel("info"))
	s, err := NewSession(cfg, input.Neutral, WithLogger(logger), WithSessionID("fall"))
	require.NoError(t, err)

	var gameOver int
	s.Bird.Controller.OnGameOver(func() { gameOver++ })

	res, err := s.Run(context.Background(), 600)
	require.NoError(t, err)

	assert.Equal(t, StatusEnded, res.Status)
	assert.Equal(t, flight.OutcomeGameOver, res.Outcome)
	assert.Equal(t, "floor", res.Contact)
	assert.False(t, res.TimedOut)
	assert.Less(t, res.Ticks, uint64(600))
	assert.InDelta(t, float64(res.Ticks)/60, res.Elapsed, 1e-9)
	assert.Equal(t, 1, gameOver)
	assert.Equal(t, "fall", res.SessionID)

	out := buf.String()
	assert.Contains(t, out, "session started")
	assert.Contains(t, out, `"outcome":"game_over"`)
	assert.Contains(t, out, `"session_id":"fall"`)
}

func TestSession_ReachesTarget(t *testing.T) {
	cfg := testConfig()
	cfg.Body.Start = [3]float64{0, 40, 2995}

	s, err := NewSession(cfg, input.Neutral)
	require.NoError(t, err)
	s.Bird.Body.SetVelocity(physics.Forward(20))

	var ended []*event.SessionEvent
	s.EventBus.Subscribe(event.SessionEnded, func(e event.Event) {
		ended = append(ended, e.(*event.SessionEvent))
		assert.Equal(t, StatusEnded, s.Status(), "handlers may read the session")
	})
	victory := 0
	s.Bird.Controller.OnVictory(func() { victory++ })

	res, err := s.Run(context.Background(), 600)
	require.NoError(t, err)

	assert.Equal(t, flight.OutcomeVictory, res.Outcome)
	assert.Equal(t, "target", res.Contact)
	assert.Greater(t, res.Distance, 0.0)
	assert.Equal(t, 1, victory)
	require.Len(t, ended, 1)
	assert.Equal(t, res.Ticks, ended[0].Tick)

	assert.False(t, s.Step(), "an ended session does not tick")
	assert.Equal(t, res, s.Result())

	assert.False(t, res.StartedAt.IsZero())
	assert.False(t, res.EndedAt.Before(res.StartedAt))
}

func TestSession_ResultTimestamps(t *testing.T) {
	s, err := NewSession(testConfig(), input.Neutral)
	require.NoError(t, err)

	res := s.Result()
	assert.True(t, res.StartedAt.IsZero())
	assert.True(t, res.EndedAt.IsZero())

	require.NoError(t, s.Start())
	res = s.Result()
	assert.False(t, res.StartedAt.IsZero())
	assert.True(t, res.EndedAt.IsZero(), "still running")

	res, err = s.Run(context.Background(), 5)
	require.NoError(t, err)
	assert.False(t, res.EndedAt.IsZero())
	assert.False(t, res.EndedAt.Before(res.StartedAt))
}

func TestSession_StepUsesExactTimeStep(t *testing.T) {
	cfg := testConfig()
	cfg.Body.Gravity = -10
	cfg.Body.Drag = 0

	s, err := NewSession(cfg, input.Neutral)
	require.NoError(t, err)
	require.NoError(t, s.Start())

	dt := s.TimeStep()
	require.NotEqual(t, dt, float64(float32(dt)), "1/60 is not representable as float32")

	require.True(t, s.Step())
	assert.Equal(t, -10*dt, s.Bird.Body.Velocity()[physics.AxisVertical])
	assert.Equal(t, 40+(-10*dt)*dt, s.Position()[physics.AxisVertical])
	assert.Equal(t, dt, s.Result().Elapsed)
}

func TestSession_TimesOut(t *testing.T) {
	cfg := testConfig()
	cfg.Body.Gravity = 0

	s, err := NewSession(cfg, input.Neutral)
	require.NoError(t, err)

	res, err := s.Run(context.Background(), 10)
	require.NoError(t, err)
	assert.True(t, res.TimedOut)
	assert.Equal(t, StatusEnded, res.Status)
	assert.Equal(t, flight.OutcomeNone, res.Outcome)
	assert.Equal(t, uint64(10), res.Ticks)
	assert.Equal(t, mgl64.Vec3{0, 40, 0}, s.Position())
}

func TestSession_Lifecycle(t *testing.T) {
	s, err := NewSession(testConfig(), input.Neutral)
	require.NoError(t, err)

	var kinds []event.Type
	record := func(e event.Event) { kinds = append(kinds, e.GetType()) }
	for _, k := range []event.Type{event.SessionStarted, event.SessionPaused, event.SessionResumed} {
		s.EventBus.Subscribe(k, record)
	}

	assert.Equal(t, StatusWaiting, s.Status())
	assert.False(t, s.Step(), "waiting sessions do not tick")
	assert.ErrorIs(t, s.Pause(), ErrInvalidTransition)

	require.NoError(t, s.Start())
	assert.ErrorIs(t, s.Start(), ErrInvalidTransition)
	assert.True(t, s.Step())

	require.NoError(t, s.TogglePause())
	assert.Equal(t, StatusPaused, s.Status())
	before := s.Position()
	assert.False(t, s.Step())
	assert.Equal(t, before, s.Position(), "paused time is frozen")

	require.NoError(t, s.TogglePause())
	assert.Equal(t, StatusActive, s.Status())
	assert.ErrorIs(t, s.Resume(), ErrInvalidTransition)

	assert.Equal(t, uint64(1), s.Ticks())
	assert.Equal(t, []event.Type{event.SessionStarted, event.SessionPaused, event.SessionResumed}, kinds)
}

func TestSession_RunHonoursCancellation(t *testing.T) {
	cfg := testConfig()
	cfg.Body.Gravity = 0
	s, err := NewSession(cfg, input.Neutral)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Run(ctx, 0)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Equal(t, StatusActive, res.Status)
	assert.Equal(t, uint64(0), res.Ticks)
}

func TestSession_RunWaitsWhilePaused(t *testing.T) {
	cfg := testConfig()
	cfg.Body.Gravity = 0
	s, err := NewSession(cfg, input.Neutral)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	require.NoError(t, s.Pause())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		time.Sleep(20 * time.Millisecond)
		assert.NoError(t, s.Resume())
	}()

	res, err := s.Run(context.Background(), 5)
	wg.Wait()
	require.NoError(t, err)
	assert.True(t, res.TimedOut)
	assert.Equal(t, uint64(5), res.Ticks)
}

func TestSession_RunPausedUntilDeadline(t *testing.T) {
	s, err := NewSession(testConfig(), input.Neutral)
	require.NoError(t, err)
	require.NoError(t, s.Start())
	require.NoError(t, s.Pause())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	res, err := s.Run(ctx, 0)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, StatusPaused, res.Status)
}

func TestSession_Realtime(t *testing.T) {
	cfg := testConfig()
	cfg.Body.Gravity = 0
	cfg.Session.TickRate = 1000
	cfg.Session.Realtime = true

	s, err := NewSession(cfg, input.Neutral)
	require.NoError(t, err)

	start := time.Now()
	res, err := s.Run(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), res.Ticks)
	assert.GreaterOrEqual(t, time.Since(start), 4*time.Millisecond)
}

func TestFlightSystem_RemoveStopsBird(t *testing.T) {
	s, err := NewSession(testConfig(), input.Neutral)
	require.NoError(t, err)

	s.system.Remove(s.Bird.BasicEntity)
	assert.Equal(t, flight.OutcomeNone, s.system.Step(1.0/60))
	assert.Equal(t, mgl64.Vec3{0, 40, 0}, s.Bird.Body.Position())
}

func TestFlightSystem_FlappingClimbs(t *testing.T) {
	cfg := testConfig()
	src, err := input.FlapScript(10, 0.5, 0.8)
	require.NoError(t, err)

	s, err := NewSession(cfg, src)
	require.NoError(t, err)
	require.NoError(t, s.Start())

	for i := 0; i < 120; i++ {
		s.Step()
	}

	pos := s.Position()
	assert.Greater(t, pos[physics.AxisForward], 0.0, "flapping pushes forward")
	assert.Greater(t, pos[physics.AxisVertical], 40.0, "flapping outweighs gravity")
	assert.InDelta(t, 0, pos[physics.AxisLateral], 1e-9, "symmetric flaps cancel sideways")
	assert.Equal(t, flight.ModeNormal, s.Bird.Controller.Mode())
}

func TestFlightSystem_VelocityBoundedAfterIntegration(t *testing.T) {
	cfg := testConfig()
	s, err := NewSession(cfg, input.Neutral)
	require.NoError(t, err)

	s.Bird.Body.SetVelocity(mgl64.Vec3{0, cfg.Flight.MaxVerticalSpeed, cfg.Flight.MaxForwardSpeed})
	s.Bird.Body.AddForce(mgl64.Vec3{0, 1e4, 1e4})
	s.system.Step(s.TimeStep())

	v := s.Bird.Body.Velocity()
	assert.Equal(t, cfg.Flight.MaxVerticalSpeed, v[physics.AxisVertical])
	assert.Equal(t, cfg.Flight.MaxForwardSpeed, v[physics.AxisForward])
}

func TestFlightSystem_AlternatingFlapsStayBounded(t *testing.T) {
	cfg := testConfig()

	up := wing.Axes{Horizontal: 0.5, Vertical: 1}
	down := wing.Axes{Horizontal: 0.5, Vertical: -1}
	src, err := input.NewScriptedSource(
		input.Frame{Left: up, Right: up, Ticks: 1},
		input.Frame{Left: down, Right: down, Ticks: 1},
	)
	require.NoError(t, err)

	s, err := NewSession(cfg, src)
	require.NoError(t, err)

	for i := 0; i < 300; i++ {
		if s.system.Step(s.TimeStep()) != flight.OutcomeNone {
			break
		}
		v := s.Bird.Body.Velocity()
		require.LessOrEqual(t, v[physics.AxisVertical], cfg.Flight.MaxVerticalSpeed, "tick %d", i)
		require.GreaterOrEqual(t, v[physics.AxisVertical], -cfg.Flight.MaxVerticalSpeed, "tick %d", i)
		require.LessOrEqual(t, v[physics.AxisForward], cfg.Flight.MaxForwardSpeed, "tick %d", i)
		require.GreaterOrEqual(t, v[physics.AxisForward], 0.0, "tick %d", i)
	}
}
