//go:build linux

package bridge

import "github.com/softquake/sm64bridge/internal/input"

func newEvdevSource(path string) input.Source {
	return input.NewEvdev(path)
}
