//go:build !linux

package bridge

import "github.com/softquake/sm64bridge/internal/input"

// evdev is Linux-only; other platforms fall back to neutral input.
func newEvdevSource(_ string) input.Source {
	return input.Neutral{}
}
