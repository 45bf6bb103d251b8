// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the complete configuration of a flight session.
type Config struct {
	Flight  FlightConfig  `json:"flight" yaml:"flight"`
	Body    BodyConfig    `json:"body" yaml:"body"`
	Course  CourseConfig  `json:"course" yaml:"course"`
	Session SessionConfig `json:"session" yaml:"session"`
}

// FlightConfig holds the tuning values read by the flight core. The core treats
// it as read-only and assumes it passed Validate.
type FlightConfig struct {
	// Force per percent of a full flap, scaled by elapsed time
	LiftPerFlap          float64 `json:"liftPerFlap" yaml:"liftPerFlap"`
	ForwardMotionPerFlap float64 `json:"forwardMotionPerFlap" yaml:"forwardMotionPerFlap"`
	LateralMotionPerFlap float64 `json:"lateralMotionPerFlap" yaml:"lateralMotionPerFlap"`

	MaxForwardSpeed  float64 `json:"maxForwardSpeed" yaml:"maxForwardSpeed"`
	MaxVerticalSpeed float64 `json:"maxVerticalSpeed" yaml:"maxVerticalSpeed"`

	// Above this altitude lift is multiplied by the hamper factor
	VerticalSoftCeiling             float64 `json:"verticalSoftCeiling" yaml:"verticalSoftCeiling"`
	VerticalSoftCeilingHamperFactor float64 `json:"verticalSoftCeilingHamperFactor" yaml:"verticalSoftCeilingHamperFactor"`

	WingAnimationSmoothness float64 `json:"wingAnimationSmoothness" yaml:"wingAnimationSmoothness"`

	HorizontalDeadzone float64 `json:"horizontalDeadzone" yaml:"horizontalDeadzone"`
	VerticalDeadzone   float64 `json:"verticalDeadzone" yaml:"verticalDeadzone"`

	MinWingAngle float64 `json:"minWingAngle" yaml:"minWingAngle"`
	MaxWingAngle float64 `json:"maxWingAngle" yaml:"maxWingAngle"`

	// 0 keeps exact equality for the both-wings-at-max fast descent trigger
	FastDescentTolerance float64 `json:"fastDescentTolerance" yaml:"fastDescentTolerance"`
}

// WingRange returns the full sweep of a wing in degrees.
func (f FlightConfig) WingRange() float64 {
	return f.MaxWingAngle - f.MinWingAngle
}

// BodyConfig describes the simulated rigid body that stands in for the
// engine-owned physics integrator.
type BodyConfig struct {
	Mass    float64    `json:"mass" yaml:"mass"`
	Gravity float64    `json:"gravity" yaml:"gravity"`
	Drag    float64    `json:"drag" yaml:"drag"`
	Radius  float64    `json:"radius" yaml:"radius"`
	Start   [3]float64 `json:"start" yaml:"start"`
}

// BoxConfig is an axis-aligned box in the course. Tag "target" marks the goal.
type BoxConfig struct {
	Name string     `json:"name" yaml:"name"`
	Tag  string     `json:"tag" yaml:"tag"`
	Min  [3]float64 `json:"min" yaml:"min"`
	Max  [3]float64 `json:"max" yaml:"max"`
}

// CourseConfig lays out the canyon: side walls, water surface, optional hard
// ceiling, the target at the end and any extra obstacles.
type CourseConfig struct {
	Length      float64     `json:"length" yaml:"length"`
	HalfWidth   float64     `json:"halfWidth" yaml:"halfWidth"`
	Floor       float64     `json:"floor" yaml:"floor"`
	Ceiling     float64     `json:"ceiling" yaml:"ceiling"` // 0 = open sky
	TargetDepth float64     `json:"targetDepth" yaml:"targetDepth"`
	Obstacles   []BoxConfig `json:"obstacles" yaml:"obstacles"`
}

// SessionConfig controls how the simulation harness drives ticks.
type SessionConfig struct {
	TickRate   int     `json:"tickRate" yaml:"tickRate"`
	MaxSeconds float64 `json:"maxSeconds" yaml:"maxSeconds"` // 0 = unbounded
	Realtime   bool    `json:"realtime" yaml:"realtime"`
}

// TimeStep returns the fixed elapsed time per tick in seconds.
func (s SessionConfig) TimeStep() float64 {
	if s.TickRate <= 0 {
		return 0
	}
	return 1.0 / float64(s.TickRate)
}

// MaxTicks converts MaxSeconds to a tick budget; 0 means unbounded.
func (s SessionConfig) MaxTicks() uint64 {
	if s.MaxSeconds <= 0 || s.TickRate <= 0 {
		return 0
	}
	return uint64(s.MaxSeconds * float64(s.TickRate))
}

type format int

const (
	formatJSON format = iota
	formatYAML
)

func formatFor(path string) (format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return formatJSON, nil
	case ".yaml", ".yml":
		return formatYAML, nil
	default:
		return 0, fmt.Errorf("unsupported config format %q", filepath.Ext(path))
	}
}

// LoadConfig loads a configuration from a .json or .yaml file. Missing fields
// keep their DefaultConfig values.
func LoadConfig(path string) (*Config, error) {
	return LoadConfigs(path)
}

// LoadConfigs layers several files over DefaultConfig in order; later files
// override fields set by earlier ones.
func LoadConfigs(paths ...string) (*Config, error) {
	cfg := DefaultConfig()
	for _, path := range paths {
		if err := decodeFile(cfg, path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func decodeFile(cfg *Config, path string) error {
	f, err := formatFor(path)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	switch f {
	case formatJSON:
		err = json.Unmarshal(data, cfg)
	case formatYAML:
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", filepath.Base(path), err)
	}
	return nil
}

// SaveConfig saves a configuration to a .json or .yaml file
func SaveConfig(cfg *Config, path string) error {
	f, err := formatFor(path)
	if err != nil {
		return err
	}

	data, err := Marshal(cfg, f == formatYAML)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Marshal encodes cfg as indented JSON, or YAML when asYAML is set.
func Marshal(cfg *Config, asYAML bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if asYAML {
		data, err = yaml.Marshal(cfg)
	} else {
		data, err = json.MarshalIndent(cfg, "", "  ")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Flight: FlightConfig{
			LiftPerFlap:                     60,
			ForwardMotionPerFlap:            25,
			LateralMotionPerFlap:            8,
			MaxForwardSpeed:                 60,
			MaxVerticalSpeed:                30,
			VerticalSoftCeiling:             150,
			VerticalSoftCeilingHamperFactor: 0.1,
			WingAnimationSmoothness:         10,
			HorizontalDeadzone:              0.4,
			VerticalDeadzone:                0.2,
			MinWingAngle:                    -75,
			MaxWingAngle:                    75,
			FastDescentTolerance:            0,
		},
		Body: BodyConfig{
			Mass:    1,
			Gravity: -9.81,
			Drag:    0.05,
			Radius:  1.5,
			Start:   [3]float64{0, 40, 0},
		},
		Course: CourseConfig{
			Length:      3000,
			HalfWidth:   60,
			Floor:       0,
			Ceiling:     0,
			TargetDepth: 20,
			Obstacles: []BoxConfig{
				{
					Name: "pride-rock",
					Tag:  "scenery",
					Min:  [3]float64{-60, 0, 1200},
					Max:  [3]float64{-30, 35, 1260},
				},
			},
		},
		Session: SessionConfig{
			TickRate:   60,
			MaxSeconds: 300,
			Realtime:   false,
		},
	}
}
