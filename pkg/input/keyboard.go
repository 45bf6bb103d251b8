package input

import (
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-kanyonbird/pkg/wing"
)

// Button names registered with engo.
const (
	LeftWingUp    = "leftWingUp"
	LeftWingDown  = "leftWingDown"
	RightWingUp   = "rightWingUp"
	RightWingDown = "rightWingDown"
	Pause         = "pause"
)

// RegisterKeyboardBindings sets up the key bindings for flying. W/S move the
// left wing, I/K the right wing, P pauses.
func RegisterKeyboardBindings() {
	engo.Input.RegisterButton(LeftWingUp, engo.KeyW)
	engo.Input.RegisterButton(LeftWingDown, engo.KeyS)
	engo.Input.RegisterButton(RightWingUp, engo.KeyI)
	engo.Input.RegisterButton(RightWingDown, engo.KeyK)
	engo.Input.RegisterButton(Pause, engo.KeyP, engo.KeyEscape)
}

// KeyboardSource reads wing keys. It only ever produces vertical input.
type KeyboardSource struct {
	// Down reports whether a registered button is held.
	Down func(button string) bool
}

// NewKeyboardSource returns a source reading engo's input manager. It must
// only be sampled once engo is running.
func NewKeyboardSource() *KeyboardSource {
	return &KeyboardSource{
		Down: func(button string) bool {
			return engo.Input.Button(button).Down()
		},
	}
}

// Sample implements Source.
func (k *KeyboardSource) Sample() (left, right wing.Axes) {
	left.Vertical = k.axis(LeftWingUp, LeftWingDown)
	right.Vertical = k.axis(RightWingUp, RightWingDown)
	return left, right
}

func (k *KeyboardSource) axis(up, down string) float64 {
	var v float64
	if k.Down(up) {
		v++
	}
	if k.Down(down) {
		v--
	}
	return v
}
