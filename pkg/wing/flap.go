package wing

// Side identifies a wing.
type Side int

const (
	Left Side = iota
	Right
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// LateralSign is the direction a flap of this wing pushes the body along the
// lateral axis: +1 for the left wing, -1 for the right.
func (s Side) LateralSign() float64 {
	if s == Left {
		return 1
	}
	return -1
}

// State is one wing's target angle this tick and the one before it.
type State struct {
	Current  float64
	Previous float64
}

// Flap is a downward wing stroke within a single tick. MagnitudePercent is the
// share of the full wing sweep covered by the stroke.
type Flap struct {
	Side             Side
	MagnitudePercent float64
}

// DetectFlap reports a flap when the wing moved down between previous and
// current. wingRange is the full sweep, MaxWingAngle - MinWingAngle.
func DetectFlap(side Side, previous, current, wingRange float64) (Flap, bool) {
	diff := current - previous
	if diff >= 0 {
		return Flap{}, false
	}
	return Flap{Side: side, MagnitudePercent: -diff / wingRange * 100}, true
}

// Advance moves the wing to target and returns the new state together with
// the flap it produced, if any. s itself is not modified.
func (s State) Advance(side Side, target, wingRange float64) (State, Flap, bool) {
	next := State{Current: target, Previous: s.Current}
	flap, ok := DetectFlap(side, next.Previous, next.Current, wingRange)
	return next, flap, ok
}
