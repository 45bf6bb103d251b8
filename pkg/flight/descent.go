package flight

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-kanyonbird/pkg/config"
	"github.com/opd-ai/go-kanyonbird/pkg/physics"
)

// Multiples of LiftPerFlap applied while diving and once when pulling out.
const (
	fastDescentLiftFactor  = -10.0
	compensationLiftFactor = 100.0
)

// DescentMode is the fast descent state of the bird.
type DescentMode int

const (
	ModeNormal DescentMode = iota
	ModeFastDescent
)

func (m DescentMode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeFastDescent:
		return "fast_descent"
	default:
		return "unknown"
	}
}

// Transition reports what a DescentMachine step did to the mode.
type Transition int

const (
	TransitionNone Transition = iota
	TransitionEntered
	TransitionExited
)

// DescentMachine enters fast descent while both wings are held fully up.
// During fast descent it pushes the body down every tick; on the tick the
// wings leave the top it applies a single upward compensation.
type DescentMachine struct {
	Mode DescentMode

	maxAngle  float64
	tolerance float64
	forces    ForceModel
}

// NewDescentMachine returns a machine in ModeNormal.
func NewDescentMachine(cfg config.FlightConfig) *DescentMachine {
	return &DescentMachine{
		Mode:      ModeNormal,
		maxAngle:  cfg.MaxWingAngle,
		tolerance: cfg.FastDescentTolerance,
		forces:    NewForceModel(cfg),
	}
}

func (d *DescentMachine) atMax(angle float64) bool {
	if d.tolerance == 0 {
		return angle == d.maxAngle
	}
	return math.Abs(angle-d.maxAngle) <= d.tolerance
}

// Step advances the machine with this tick's wing angles and returns the
// vertical force to apply, which is zero outside fast descent and its exit tick.
func (d *DescentMachine) Step(leftAngle, rightAngle, dt, altitude float64) (mgl64.Vec3, Transition) {
	if d.atMax(leftAngle) && d.atMax(rightAngle) {
		tr := TransitionNone
		if d.Mode == ModeNormal {
			tr = TransitionEntered
		}
		d.Mode = ModeFastDescent
		return physics.Vertical(fastDescentLiftFactor * d.forces.LiftPerFlap * dt), tr
	}

	if d.Mode == ModeFastDescent {
		d.Mode = ModeNormal
		lift := d.forces.Hamper(compensationLiftFactor*d.forces.LiftPerFlap*dt, altitude)
		return physics.Vertical(lift), TransitionExited
	}

	return mgl64.Vec3{}, TransitionNone
}
