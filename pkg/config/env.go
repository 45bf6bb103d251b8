package config

import (
	"fmt"
	"os"
	"strconv"
)

// EnvPrefix is prepended to every environment override variable.
const EnvPrefix = "KANYON_"

// ApplyEnvironmentOverrides overrides cfg fields from KANYON_* environment
// variables. Unset variables leave the field untouched; malformed values are
// reported and nothing after them is applied.
func ApplyEnvironmentOverrides(cfg *Config) error {
	floats := []struct {
		name  string
		field *float64
	}{
		{"LIFT_PER_FLAP", &cfg.Flight.LiftPerFlap},
		{"FORWARD_MOTION_PER_FLAP", &cfg.Flight.ForwardMotionPerFlap},
		{"LATERAL_MOTION_PER_FLAP", &cfg.Flight.LateralMotionPerFlap},
		{"MAX_FORWARD_SPEED", &cfg.Flight.MaxForwardSpeed},
		{"MAX_VERTICAL_SPEED", &cfg.Flight.MaxVerticalSpeed},
		{"VERTICAL_SOFT_CEILING", &cfg.Flight.VerticalSoftCeiling},
		{"SOFT_CEILING_HAMPER_FACTOR", &cfg.Flight.VerticalSoftCeilingHamperFactor},
		{"WING_ANIMATION_SMOOTHNESS", &cfg.Flight.WingAnimationSmoothness},
		{"HORIZONTAL_DEADZONE", &cfg.Flight.HorizontalDeadzone},
		{"VERTICAL_DEADZONE", &cfg.Flight.VerticalDeadzone},
		{"MIN_WING_ANGLE", &cfg.Flight.MinWingAngle},
		{"MAX_WING_ANGLE", &cfg.Flight.MaxWingAngle},
		{"FAST_DESCENT_TOLERANCE", &cfg.Flight.FastDescentTolerance},
		{"BODY_MASS", &cfg.Body.Mass},
		{"BODY_GRAVITY", &cfg.Body.Gravity},
		{"BODY_DRAG", &cfg.Body.Drag},
		{"COURSE_LENGTH", &cfg.Course.Length},
		{"MAX_SECONDS", &cfg.Session.MaxSeconds},
	}

	for _, f := range floats {
		raw, ok := os.LookupEnv(EnvPrefix + f.name)
		if !ok || raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, f.name, err)
		}
		*f.field = v
	}

	if raw := os.Getenv(EnvPrefix + "TICK_RATE"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("invalid %sTICK_RATE: %w", EnvPrefix, err)
		}
		cfg.Session.TickRate = v
	}

	if raw := os.Getenv(EnvPrefix + "REALTIME"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid %sREALTIME: %w", EnvPrefix, err)
		}
		cfg.Session.Realtime = v
	}

	return nil
}
