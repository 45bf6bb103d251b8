package client

import (
	"context"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-kanyonbird/pkg/logging"
	"github.com/opd-ai/go-kanyonbird/pkg/physics"
	"github.com/opd-ai/go-kanyonbird/pkg/sim"
)

// hudInterval is how often, in seconds of frame time, the flight state is logged.
const hudInterval = 1.0

// SessionSystem feeds variable frame times into a session's fixed ticks.
type SessionSystem struct {
	session *sim.Session
	logger  *logging.Logger
	ctx     context.Context

	// PausePressed reports a pause key press this frame.
	PausePressed func() bool
	// OnEnd runs once when the session ends.
	OnEnd func(sim.Result)

	accumulator float64
	sinceHUD    float64
	ended       bool
}

// NewSessionSystem creates a system driving session.
func NewSessionSystem(session *sim.Session, logger *logging.Logger) *SessionSystem {
	return &SessionSystem{
		session: session,
		logger:  logger,
		ctx:     logging.WithSessionID(context.Background(), session.ID),
	}
}

// Remove satisfies the ecs.System interface
func (ss *SessionSystem) Remove(basic ecs.BasicEntity) {}

// Update runs as many fixed ticks as the frame time covers.
func (ss *SessionSystem) Update(dt float32) {
	if ss.ended {
		return
	}

	if ss.PausePressed != nil && ss.PausePressed() {
		if err := ss.session.TogglePause(); err != nil {
			ss.logger.Warn(ss.ctx, "pause ignored", "error", err.Error())
		}
	}

	if ss.session.Status() == sim.StatusActive {
		step := ss.session.TimeStep()
		ss.accumulator += float64(dt)
		for ss.accumulator >= step && ss.session.Step() {
			ss.accumulator -= step
		}
		ss.hud(float64(dt))
	}

	if ss.session.Status() == sim.StatusEnded {
		ss.ended = true
		res := ss.session.Result()
		ss.logger.Info(ss.ctx, "flight over",
			"outcome", res.Outcome.String(),
			"distance", res.Distance,
			"contact", res.Contact,
			"elapsed", res.Elapsed,
		)
		if ss.OnEnd != nil {
			ss.OnEnd(res)
		}
	}
}

func (ss *SessionSystem) hud(dt float64) {
	ss.sinceHUD += dt
	if ss.sinceHUD < hudInterval {
		return
	}
	ss.sinceHUD = 0

	snap := ss.session.Bird.Controller.Snapshot()
	pos := ss.session.Position()
	ss.logger.Debug(ss.ctx, "flight",
		"altitude", physics.Altitude(pos),
		"distance", snap.Distance,
		"mode", snap.Mode.String(),
		"left_wing", snap.LeftPivot.Angle,
		"right_wing", snap.RightPivot.Angle,
	)
}
