package flight

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-kanyonbird/pkg/config"
	"github.com/opd-ai/go-kanyonbird/pkg/event"
	"github.com/opd-ai/go-kanyonbird/pkg/logging"
	"github.com/opd-ai/go-kanyonbird/pkg/physics"
	"github.com/opd-ai/go-kanyonbird/pkg/wing"
)

// Outcome is the terminal result of a session.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeGameOver
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeVictory:
		return "victory"
	case OutcomeGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of the controller state.
type Snapshot struct {
	Left       wing.State
	Right      wing.State
	LeftPivot  wing.Pivot
	RightPivot wing.Pivot
	Mode       DescentMode
	Distance   float64
	Outcome    Outcome
	Ticks      uint64
}

// Controller runs the flight core for one bird for one session.
//
// It is not safe for concurrent use: call Tick once per frame from a single
// goroutine. Victory and GameOver handlers run synchronously inside
// ReportContact and must not call back into the controller's mutating methods.
type Controller struct {
	cfg     config.FlightConfig
	body    physics.Body
	bus     *event.Bus
	logger  *logging.Logger
	ctx     context.Context
	mapper  wing.Mapper
	forces  ForceModel
	descent *DescentMachine

	left       wing.State
	right      wing.State
	leftPivot  wing.Pivot
	rightPivot wing.Pivot

	initialZ float64
	outcome  Outcome
	ticks    uint64
}

// Option customises a Controller.
type Option func(*Controller)

// WithEventBus publishes events on bus instead of a private one.
func WithEventBus(bus *event.Bus) Option {
	return func(c *Controller) { c.bus = bus }
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Controller) { c.logger = logger }
}

// WithContext sets the context used for log records, typically carrying a
// session ID.
func WithContext(ctx context.Context) Option {
	return func(c *Controller) { c.ctx = ctx }
}

// NewController creates a controller bound to body. The traversed distance
// baseline is the body's current Z position.
func NewController(cfg config.FlightConfig, body physics.Body, opts ...Option) *Controller {
	c := &Controller{
		cfg:        cfg,
		body:       body,
		mapper:     wing.NewMapper(cfg),
		forces:     NewForceModel(cfg),
		descent:    NewDescentMachine(cfg),
		leftPivot:  wing.NewPivot(wing.Left),
		rightPivot: wing.NewPivot(wing.Right),
		initialZ:   body.Position()[physics.AxisForward],
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.bus == nil {
		c.bus = event.NewEventBus()
	}
	if c.logger == nil {
		c.logger = logging.NewNopLogger()
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	return c
}

// EventBus returns the bus the controller publishes on.
func (c *Controller) EventBus() *event.Bus {
	return c.bus
}

// Tick advances the flight core by dt seconds: both wings are mapped, flaps
// turned into forces, fast descent stepped and the body's velocity clamped.
//
// The clamp runs before the forces added here are integrated. Callers that
// integrate after Tick should call ClampVelocity once more afterwards.
func (c *Controller) Tick(dt float64, left, right wing.Axes) {
	c.left, c.leftPivot = c.applyWing(wing.Left, c.left, c.leftPivot, left, dt)
	c.right, c.rightPivot = c.applyWing(wing.Right, c.right, c.rightPivot, right, dt)
	c.applyDescent(dt)
	c.ClampVelocity()
	c.ticks++
}

func (c *Controller) applyWing(side wing.Side, state wing.State, pivot wing.Pivot, axes wing.Axes, dt float64) (wing.State, wing.Pivot) {
	target := c.mapper.Angle(axes)
	next, flap, ok := state.Advance(side, target, c.cfg.WingRange())
	pivot = pivot.Animate(target, c.cfg.WingAnimationSmoothness, dt)

	if ok {
		thrust, lateral := c.forces.FlapForces(flap, dt, c.altitude())
		c.body.AddForce(thrust)
		c.body.AddForce(lateral)
		c.bus.Publish(event.NewFlapEvent(c, side.String(), flap.MagnitudePercent))
	}

	return next, pivot
}

func (c *Controller) applyDescent(dt float64) {
	force, tr := c.descent.Step(c.left.Current, c.right.Current, dt, c.altitude())
	if force != (mgl64.Vec3{}) {
		c.body.AddForce(force)
	}

	switch tr {
	case TransitionEntered:
		c.logger.Debug(c.ctx, "fast descent entered", "tick", c.ticks, "altitude", c.altitude())
		c.bus.Publish(event.NewDescentEvent(event.FastDescentEntered, c, force[physics.AxisVertical]))
	case TransitionExited:
		c.logger.Debug(c.ctx, "fast descent exited", "tick", c.ticks, "compensation", force[physics.AxisVertical])
		c.bus.Publish(event.NewDescentEvent(event.FastDescentExited, c, force[physics.AxisVertical]))
	}
}

// ClampVelocity limits the body's vertical and forward speed.
func (c *Controller) ClampVelocity() {
	c.body.SetVelocity(physics.ClampVelocity(c.body.Velocity(), c.cfg.MaxForwardSpeed, c.cfg.MaxVerticalSpeed))
}

func (c *Controller) altitude() float64 {
	return physics.Altitude(c.body.Position())
}

// TraversedDistance is the forward displacement since the controller was
// created.
func (c *Controller) TraversedDistance() float64 {
	return c.body.Position()[physics.AxisForward] - c.initialZ
}

// ReportContact classifies a collision. A contact with the target is a
// victory; any other contact is game over. Only the first contact of a
// session produces a signal; later ones return the existing outcome.
func (c *Controller) ReportContact(isTarget bool) Outcome {
	if c.outcome != OutcomeNone {
		return c.outcome
	}

	kind := event.GameOver
	c.outcome = OutcomeGameOver
	if isTarget {
		kind = event.Victory
		c.outcome = OutcomeVictory
	}

	distance := c.TraversedDistance()
	c.logger.Info(c.ctx, "session finished",
		"outcome", c.outcome.String(),
		"distance", distance,
		"ticks", c.ticks,
	)
	c.bus.Publish(event.NewTerminalEvent(kind, c, distance))

	return c.outcome
}

// Outcome returns the terminal result so far.
func (c *Controller) Outcome() Outcome {
	return c.outcome
}

// OnVictory registers fn to be called when the target is reached.
func (c *Controller) OnVictory(fn func()) *event.Subscription {
	return c.bus.Subscribe(event.Victory, func(event.Event) { fn() })
}

// OnGameOver registers fn to be called on a fatal contact.
func (c *Controller) OnGameOver(fn func()) *event.Subscription {
	return c.bus.Subscribe(event.GameOver, func(event.Event) { fn() })
}

// Mode returns the current fast descent mode.
func (c *Controller) Mode() DescentMode {
	return c.descent.Mode
}

// Pivots returns the displayed wing rotations.
func (c *Controller) Pivots() (left, right wing.Pivot) {
	return c.leftPivot, c.rightPivot
}

// Snapshot returns a copy of the controller state.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		Left:       c.left,
		Right:      c.right,
		LeftPivot:  c.leftPivot,
		RightPivot: c.rightPivot,
		Mode:       c.descent.Mode,
		Distance:   c.TraversedDistance(),
		Outcome:    c.outcome,
		Ticks:      c.ticks,
	}
}
