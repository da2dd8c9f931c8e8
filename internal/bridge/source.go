package bridge

import (
	"go.uber.org/zap"

	"github.com/softquake/sm64bridge/internal/config"
	"github.com/softquake/sm64bridge/internal/input"
	"github.com/softquake/sm64bridge/internal/logger"
)

// newSource maps the configured backend name to an input.Source.
// Unknown names degrade to neutral input with a warning.
func newSource(cfg *config.Config, opts Options) input.Source {
	switch cfg.Input.Backend {
	case "keyboard":
		poll := opts.KeyPoll
		if poll == nil {
			logger.Warn("keyboard backend selected without a key poll hook")
			poll = func() input.Keys { return input.Keys{} }
		}
		return input.NewKeyboard(poll)
	case "gamepad":
		return input.NewGamepad()
	case "evdev":
		return newEvdevSource(cfg.Input.DevicePath)
	case "reader":
		if cfg.Input.ReaderExe == "" {
			logger.Warn("reader backend selected without reader_exe")
			return input.Neutral{}
		}
		return input.NewReader(cfg.Input.ReaderExe)
	case "none", "":
		return input.Neutral{}
	default:
		logger.Warn("unknown input backend", zap.String("backend", cfg.Input.Backend))
		return input.Neutral{}
	}
}
