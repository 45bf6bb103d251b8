// Package sim runs a flight session: one bird, one course, fixed-step ticks
// through an ECS world until the bird reaches the target or hits something.
package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/EngoEngine/ecs"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-kanyonbird/pkg/config"
	"github.com/opd-ai/go-kanyonbird/pkg/event"
	"github.com/opd-ai/go-kanyonbird/pkg/flight"
	"github.com/opd-ai/go-kanyonbird/pkg/input"
	"github.com/opd-ai/go-kanyonbird/pkg/logging"
	"github.com/opd-ai/go-kanyonbird/pkg/physics"
)

// Status is the lifecycle state of a session.
type Status int

const (
	StatusWaiting Status = iota
	StatusActive
	StatusPaused
	StatusEnded
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusActive:
		return "active"
	case StatusPaused:
		return "paused"
	case StatusEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// ErrInvalidTransition is returned when a lifecycle call does not apply to the
// current status.
var ErrInvalidTransition = errors.New("invalid session transition")

// Result summarises a session.
type Result struct {
	SessionID string
	Status    Status
	Outcome   flight.Outcome
	Ticks     uint64
	Elapsed   float64 // simulated seconds
	Distance  float64
	TimedOut  bool
	Contact   string
	StartedAt time.Time // zero until Start
	EndedAt   time.Time // zero until the session ends
}

// Session owns the bird, the course and the ECS world that steps them.
//
// Step and Run must be driven from a single goroutine. Start, Pause, Resume
// and the read accessors may be called from any goroutine.
type Session struct {
	ID       string
	Config   *config.Config
	EventBus *event.Bus
	Bird     *Bird
	Course   *Course

	world    *ecs.World
	system   *FlightSystem
	logger   *logging.Logger
	ctx      context.Context
	timeStep float64
	wake     chan struct{}

	mu        sync.RWMutex
	status    Status
	tick      uint64
	elapsed   float64
	timedOut  bool
	outcome   flight.Outcome
	distance  float64
	position  mgl64.Vec3
	contact   string
	startTime time.Time
	endTime   time.Time
}

// Option customises a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Session) { s.logger = logger }
}

// WithEventBus publishes session and flight events on bus.
func WithEventBus(bus *event.Bus) Option {
	return func(s *Session) { s.EventBus = bus }
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(s *Session) { s.ID = id }
}

// NewSession validates cfg and builds a session in StatusWaiting.
func NewSession(cfg *config.Config, source input.Source, opts ...Option) (*Session, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", config.ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		Config:   cfg,
		timeStep: cfg.Session.TimeStep(),
		wake:     make(chan struct{}, 1),
		status:   StatusWaiting,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ID == "" {
		s.ID = logging.GenerateSessionID()
	}
	if s.EventBus == nil {
		s.EventBus = event.NewEventBus()
	}
	if s.logger == nil {
		s.logger = logging.NewNopLogger()
	}
	s.ctx = logging.WithSessionID(context.Background(), s.ID)

	body := physics.NewRigidBody(cfg.Body)
	s.Bird = &Bird{
		BasicEntity: ecs.NewBasic(),
		Body:        body,
		Radius:      cfg.Body.Radius,
		Controller: flight.NewController(cfg.Flight, body,
			flight.WithEventBus(s.EventBus),
			flight.WithLogger(s.logger),
			flight.WithContext(s.ctx),
		),
	}
	s.position = body.Position()
	s.Course = NewCourse(cfg.Course)
	s.system = NewFlightSystem(s.Bird, source, s.Course)
	s.system.FixedStep = s.timeStep

	s.world = &ecs.World{}
	s.world.AddSystem(s.system)

	return s, nil
}

// Status returns the current lifecycle state.
func (s *Session) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Ticks returns the number of ticks stepped so far.
func (s *Session) Ticks() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tick
}

// TimeStep returns the fixed tick length in seconds.
func (s *Session) TimeStep() float64 {
	return s.timeStep
}

// Start moves a waiting session to active.
func (s *Session) Start() error {
	return s.transition(StatusWaiting, StatusActive, event.SessionStarted, "session started")
}

// Pause freezes an active session. Ticks stop until Resume.
func (s *Session) Pause() error {
	return s.transition(StatusActive, StatusPaused, event.SessionPaused, "session paused")
}

// Resume continues a paused session.
func (s *Session) Resume() error {
	if err := s.transition(StatusPaused, StatusActive, event.SessionResumed, "session resumed"); err != nil {
		return err
	}
	select {
	case s.wake <- struct{}{}:
	default:
	}
	return nil
}

// TogglePause pauses an active session or resumes a paused one.
func (s *Session) TogglePause() error {
	if s.Status() == StatusPaused {
		return s.Resume()
	}
	return s.Pause()
}

func (s *Session) transition(from, to Status, kind event.Type, msg string) error {
	s.mu.Lock()
	if s.status != from {
		current := s.status
		s.mu.Unlock()
		return fmt.Errorf("%w: %s while %s", ErrInvalidTransition, to, current)
	}
	s.status = to
	if to == StatusActive && from == StatusWaiting {
		s.startTime = time.Now()
	}
	tick := s.tick
	s.mu.Unlock()

	s.logger.Info(s.ctx, msg, "tick", tick)
	s.EventBus.Publish(event.NewSessionEvent(kind, s, s.ID, tick))
	return nil
}

// Step advances an active session by one fixed tick and reports whether it
// did. The session ends as soon as the controller reports an outcome.
func (s *Session) Step() bool {
	if s.Status() != StatusActive {
		return false
	}

	s.world.Update(float32(s.timeStep))
	ctrl := s.Bird.Controller

	s.mu.Lock()
	s.tick++
	s.elapsed += s.timeStep
	s.outcome = ctrl.Outcome()
	s.distance = ctrl.TraversedDistance()
	s.position = s.Bird.Body.Position()
	if c, ok := s.system.LastContact(); ok {
		s.contact = c.Name
	}
	ended := s.outcome != flight.OutcomeNone && s.status != StatusEnded
	if ended {
		s.endLocked()
	}
	s.mu.Unlock()

	if ended {
		s.publishEnded()
	}
	return true
}

// Run starts the session if needed and steps it until it ends, ctx is
// cancelled, or maxTicks ticks have run (0 means no limit). In realtime mode
// ticks are paced by the wall clock; otherwise they run back to back.
func (s *Session) Run(ctx context.Context, maxTicks uint64) (Result, error) {
	if s.Status() == StatusWaiting {
		if err := s.Start(); err != nil {
			return s.Result(), err
		}
	}

	var tick <-chan time.Time
	if s.Config.Session.Realtime {
		ticker := time.NewTicker(time.Duration(s.timeStep * float64(time.Second)))
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		switch s.Status() {
		case StatusEnded:
			return s.Result(), nil
		case StatusPaused:
			select {
			case <-ctx.Done():
				return s.Result(), ctx.Err()
			case <-s.wake:
			}
			continue
		}

		if maxTicks > 0 && s.Ticks() >= maxTicks {
			s.timeout()
			return s.Result(), nil
		}

		if tick != nil {
			select {
			case <-ctx.Done():
				return s.Result(), ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return s.Result(), err
		}

		s.Step()
	}
}

func (s *Session) timeout() {
	s.mu.Lock()
	if s.status == StatusEnded {
		s.mu.Unlock()
		return
	}
	s.timedOut = true
	s.endLocked()
	s.mu.Unlock()

	r := s.Result()
	s.logger.Warn(s.ctx, "session timed out", "ticks", r.Ticks, "distance", r.Distance)
	s.publishEnded()
}

func (s *Session) endLocked() {
	s.status = StatusEnded
	s.endTime = time.Now()
}

func (s *Session) publishEnded() {
	s.EventBus.Publish(event.NewSessionEvent(event.SessionEnded, s, s.ID, s.Ticks()))
}

// Result reports the session state. It may be called at any time.
func (s *Session) Result() Result {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Result{
		SessionID: s.ID,
		Status:    s.status,
		Outcome:   s.outcome,
		Ticks:     s.tick,
		Elapsed:   s.elapsed,
		Distance:  s.distance,
		TimedOut:  s.timedOut,
		Contact:   s.contact,
		StartedAt: s.startTime,
		EndedAt:   s.endTime,
	}
}

// Position returns the bird's position as of the last tick.
func (s *Session) Position() mgl64.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.position
}
