package input

import "github.com/softquake/sm64bridge/pkg/sm64"

// Keys is a snapshot of the keyboard keys the bridge cares about.
type Keys struct {
	Up, Down, Left, Right bool
	Jump                  bool // A equivalent
	Punch                 bool // B equivalent
	Crouch                bool // Z equivalent
}

// Keyboard samples a host-provided key-state map and synthesizes a
// digital stick from the direction keys. The poll function must be
// non-blocking; it runs on the tick goroutine.
type Keyboard struct {
	poll func() Keys
}

// NewKeyboard wraps a key-state poll function.
func NewKeyboard(poll func() Keys) *Keyboard {
	return &Keyboard{poll: poll}
}

// Start implements Source.
func (k *Keyboard) Start() error { return nil }

// Stop implements Source.
func (k *Keyboard) Stop() {}

// Sample implements Source.
func (k *Keyboard) Sample(in *sm64.MarioInputs) {
	keys := k.poll()

	in.StickX = digitalAxis(keys.Right, keys.Left)
	in.StickY = digitalAxis(keys.Up, keys.Down)
	in.ButtonA = keys.Jump
	in.ButtonB = keys.Punch
	in.ButtonZ = keys.Crouch
}

func digitalAxis(pos, neg bool) float32 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	default:
		return 0
	}
}
