package sim

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-kanyonbird/pkg/flight"
	"github.com/opd-ai/go-kanyonbird/pkg/input"
	"github.com/opd-ai/go-kanyonbird/pkg/physics"
)

// Bird is the player entity: a rigid body driven by a flight controller.
type Bird struct {
	ecs.BasicEntity
	Body       *physics.RigidBody
	Controller *flight.Controller
	Radius     float64
}

// FlightSystem advances the bird each frame: sample input, tick the flight
// controller, integrate the body, then test the course for contacts.
type FlightSystem struct {
	// FixedStep, when positive, replaces the frame time passed to Update so
	// ticks run at full float64 precision.
	FixedStep float64

	bird    *Bird
	source  input.Source
	course  *Course
	contact *Contact
}

// NewFlightSystem creates a system flying bird through course. A nil source
// reads as centred sticks.
func NewFlightSystem(bird *Bird, source input.Source, course *Course) *FlightSystem {
	if source == nil {
		source = input.Neutral
	}
	return &FlightSystem{bird: bird, source: source, course: course}
}

// Update satisfies the ecs.System interface.
func (fs *FlightSystem) Update(dt float32) {
	if fs.FixedStep > 0 {
		fs.Step(fs.FixedStep)
		return
	}
	fs.Step(float64(dt))
}

// Remove satisfies the ecs.System interface. Removing the bird stops the
// system.
func (fs *FlightSystem) Remove(basic ecs.BasicEntity) {
	if fs.bird != nil && fs.bird.ID() == basic.ID() {
		fs.bird = nil
	}
}

// Step runs one tick of dt seconds and returns the outcome so far. Nothing
// moves once the outcome is decided.
func (fs *FlightSystem) Step(dt float64) flight.Outcome {
	if fs.bird == nil {
		return flight.OutcomeNone
	}
	ctrl := fs.bird.Controller
	if ctrl.Outcome() != flight.OutcomeNone {
		return ctrl.Outcome()
	}

	left, right := fs.source.Sample()
	ctrl.Tick(dt, left, right)
	fs.bird.Body.Integrate(dt)
	ctrl.ClampVelocity()

	if fs.course == nil {
		return flight.OutcomeNone
	}
	sphere := physics.Sphere{Center: fs.bird.Body.Position(), Radius: fs.bird.Radius}
	if c, ok := fs.course.FirstContact(sphere); ok {
		fs.contact = &c
		return ctrl.ReportContact(c.IsTarget())
	}
	return flight.OutcomeNone
}

// LastContact returns the contact that ended the session, if any.
func (fs *FlightSystem) LastContact() (Contact, bool) {
	if fs.contact == nil {
		return Contact{}, false
	}
	return *fs.contact, true
}
