// Package input converts heterogeneous raw input sources into the
// normalized per-tick Mario input block.
//
// Sources never block the tick: Sample must return immediately, holding
// the last known axis and button values when no fresh data arrived, and
// zeroing everything when the underlying device is gone. Background
// readers are confined to this package; the consumer drains them from
// the single tick goroutine.
package input

import (
	"errors"

	"github.com/softquake/sm64bridge/pkg/sm64"
)

// ErrNoDevice reports that a backend found no usable input device. The
// caller degrades to neutral input rather than aborting the session.
var ErrNoDevice = errors.New("no input device available")

// Source is the capability interface every backend implements.
// Start and Stop are idempotent; Stop signals any background worker to
// exit and kills child processes, but does not guarantee a synchronous
// join.
type Source interface {
	Start() error
	Stop()
	Sample(in *sm64.MarioInputs)
}

// Neutral is a Source that reports no input at all. It stands in when
// the configured backend has no device.
type Neutral struct{}

// Start implements Source.
func (Neutral) Start() error { return nil }

// Stop implements Source.
func (Neutral) Stop() {}

// Sample zeroes the stick and buttons.
func (Neutral) Sample(in *sm64.MarioInputs) {
	in.StickX = 0
	in.StickY = 0
	in.ButtonA = false
	in.ButtonB = false
	in.ButtonZ = false
}
