// Package client hosts a flight session inside an engo window.
package client

import (
	"context"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-kanyonbird/pkg/config"
	"github.com/opd-ai/go-kanyonbird/pkg/input"
	"github.com/opd-ai/go-kanyonbird/pkg/logging"
	"github.com/opd-ai/go-kanyonbird/pkg/sim"
)

// Scene is the engo scene running one session.
type Scene struct {
	cfg    *config.Config
	logger *logging.Logger
	analog input.Source

	session *sim.Session
	driver  *SessionSystem
}

// GamepadName is the name the scene registers its gamepad under.
const GamepadName = "kanyon"

// NewScene creates a scene. When analog is nil the scene looks for a gamepad
// during Setup and falls back to the keyboard alone.
func NewScene(cfg *config.Config, logger *logging.Logger, analog input.Source) *Scene {
	return &Scene{cfg: cfg, logger: logger, analog: analog}
}

// Type returns the scene type (required by Engo)
func (scene *Scene) Type() string {
	return "KanyonScene"
}

// Preload is called before the scene starts (required by Engo)
func (scene *Scene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *Scene) Setup(u engo.Updater) {
	world, ok := u.(*ecs.World)
	if !ok {
		panic("kanyon scene needs an *ecs.World updater")
	}

	if scene.analog == nil {
		scene.analog = scene.gamepad()
	}
	input.RegisterKeyboardBindings()
	source := input.MergedSource{Analog: scene.analog, Keyboard: input.NewKeyboardSource()}

	session, err := sim.NewSession(scene.cfg, source, sim.WithLogger(scene.logger))
	if err != nil {
		panic("failed to create session: " + err.Error())
	}
	scene.session = session

	scene.driver = NewSessionSystem(session, scene.logger)
	scene.driver.PausePressed = func() bool {
		return engo.Input.Button(input.Pause).JustPressed()
	}
	scene.driver.OnEnd = func(sim.Result) { engo.Exit() }
	world.AddSystem(scene.driver)

	if err := session.Start(); err != nil {
		scene.logger.Error(context.Background(), "failed to start session", err)
	}
}

// Session returns the running session, nil before Setup.
func (scene *Scene) Session() *sim.Session {
	return scene.session
}

func (scene *Scene) gamepad() input.Source {
	pad, err := input.NewGamepadSource(GamepadName)
	if err != nil {
		scene.logger.Warn(context.Background(), "no gamepad, using keyboard only", "error", err.Error())
		return nil
	}
	scene.logger.Info(context.Background(), "gamepad registered", "name", GamepadName)
	return pad
}
