package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}

// Validate checks every section and returns all problems joined together.
func (c *Config) Validate() error {
	return errors.Join(
		c.Flight.Validate(),
		c.Body.Validate(),
		c.Course.Validate(),
		c.Session.Validate(),
	)
}

// Validate checks the preconditions the flight core relies on.
func (f FlightConfig) Validate() error {
	var errs []error

	if f.MinWingAngle >= f.MaxWingAngle {
		errs = append(errs, invalid("minWingAngle (%v) must be below maxWingAngle (%v)", f.MinWingAngle, f.MaxWingAngle))
	}
	if f.WingAnimationSmoothness <= 0 {
		errs = append(errs, invalid("wingAnimationSmoothness must be positive, got %v", f.WingAnimationSmoothness))
	}
	if f.HorizontalDeadzone < 0 || f.HorizontalDeadzone >= 1 {
		errs = append(errs, invalid("horizontalDeadzone must be in [0,1), got %v", f.HorizontalDeadzone))
	}
	if f.VerticalDeadzone < 0 || f.VerticalDeadzone >= 1 {
		errs = append(errs, invalid("verticalDeadzone must be in [0,1), got %v", f.VerticalDeadzone))
	}
	if f.VerticalSoftCeilingHamperFactor < 0 || f.VerticalSoftCeilingHamperFactor > 1 {
		errs = append(errs, invalid("verticalSoftCeilingHamperFactor must be in [0,1], got %v", f.VerticalSoftCeilingHamperFactor))
	}
	if f.MaxForwardSpeed <= 0 {
		errs = append(errs, invalid("maxForwardSpeed must be positive, got %v", f.MaxForwardSpeed))
	}
	if f.MaxVerticalSpeed <= 0 {
		errs = append(errs, invalid("maxVerticalSpeed must be positive, got %v", f.MaxVerticalSpeed))
	}
	if f.LiftPerFlap < 0 || f.ForwardMotionPerFlap < 0 || f.LateralMotionPerFlap < 0 {
		errs = append(errs, invalid("per-flap motion values must not be negative"))
	}
	if f.FastDescentTolerance < 0 {
		errs = append(errs, invalid("fastDescentTolerance must not be negative, got %v", f.FastDescentTolerance))
	}

	return errors.Join(errs...)
}

// Validate checks the simulated body parameters.
func (b BodyConfig) Validate() error {
	var errs []error
	if b.Mass <= 0 {
		errs = append(errs, invalid("body mass must be positive, got %v", b.Mass))
	}
	if b.Drag < 0 {
		errs = append(errs, invalid("body drag must not be negative, got %v", b.Drag))
	}
	if b.Radius <= 0 {
		errs = append(errs, invalid("body radius must be positive, got %v", b.Radius))
	}
	return errors.Join(errs...)
}

// Validate checks the course layout.
func (c CourseConfig) Validate() error {
	var errs []error
	if c.Length <= 0 {
		errs = append(errs, invalid("course length must be positive, got %v", c.Length))
	}
	if c.HalfWidth <= 0 {
		errs = append(errs, invalid("course halfWidth must be positive, got %v", c.HalfWidth))
	}
	if c.Ceiling != 0 && c.Ceiling <= c.Floor {
		errs = append(errs, invalid("course ceiling (%v) must be above floor (%v)", c.Ceiling, c.Floor))
	}
	for i, o := range c.Obstacles {
		for axis := 0; axis < 3; axis++ {
			if o.Min[axis] > o.Max[axis] {
				errs = append(errs, invalid("obstacle %d (%s): min exceeds max on axis %d", i, o.Name, axis))
				break
			}
		}
	}
	return errors.Join(errs...)
}

// Validate checks the tick driver settings.
func (s SessionConfig) Validate() error {
	var errs []error
	if s.TickRate <= 0 {
		errs = append(errs, invalid("tickRate must be positive, got %d", s.TickRate))
	}
	if s.MaxSeconds < 0 {
		errs = append(errs, invalid("maxSeconds must not be negative, got %v", s.MaxSeconds))
	}
	return errors.Join(errs...)
}
