package input

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/softquake/sm64bridge/internal/logger"
	"github.com/softquake/sm64bridge/pkg/sm64"
)

// Gamepad reads the first attached SDL game controller. SDL is polled,
// not event driven, so Sample never blocks; there is no background
// worker to manage.
type Gamepad struct {
	ctrl    *sdl.GameController
	started bool
}

// NewGamepad returns an unstarted gamepad source.
func NewGamepad() *Gamepad {
	return &Gamepad{}
}

// Start initializes the SDL controller subsystem and opens the first
// game controller. Returns ErrNoDevice when none is attached.
func (g *Gamepad) Start() error {
	if g.started {
		return nil
	}
	if err := sdl.InitSubSystem(sdl.INIT_JOYSTICK | sdl.INIT_GAMECONTROLLER); err != nil {
		return fmt.Errorf("initializing SDL controller subsystem: %w", err)
	}
	g.started = true

	for i := 0; i < sdl.NumJoysticks(); i++ {
		if !sdl.IsGameController(i) {
			continue
		}
		if ctrl := sdl.GameControllerOpen(i); ctrl != nil {
			g.ctrl = ctrl
			logger.Info("game controller opened", zap.String("name", ctrl.Name()))
			return nil
		}
	}
	return ErrNoDevice
}

// Stop closes the controller and shuts the subsystem down. Idempotent.
func (g *Gamepad) Stop() {
	if g.ctrl != nil {
		g.ctrl.Close()
		g.ctrl = nil
	}
	if g.started {
		sdl.QuitSubSystem(sdl.INIT_JOYSTICK | sdl.INIT_GAMECONTROLLER)
		g.started = false
	}
}

// Sample implements Source. A detached controller zeroes the inputs.
func (g *Gamepad) Sample(in *sm64.MarioInputs) {
	if g.ctrl == nil {
		return
	}
	if !g.ctrl.Attached() {
		in.Zero()
		return
	}

	sdl.GameControllerUpdate()

	in.StickX = NormalizeAxis(float32(g.ctrl.Axis(sdl.CONTROLLER_AXIS_LEFTX)), DivisorShort)
	in.StickY = NormalizeAxis(float32(g.ctrl.Axis(sdl.CONTROLLER_AXIS_LEFTY)), DivisorShort)
	in.ButtonA = g.ctrl.Button(sdl.CONTROLLER_BUTTON_A) != 0
	in.ButtonB = g.ctrl.Button(sdl.CONTROLLER_BUTTON_X) != 0
	in.ButtonZ = g.ctrl.Button(sdl.CONTROLLER_BUTTON_LEFTSHOULDER) != 0
}
