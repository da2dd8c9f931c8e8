package config

import "flag"

var (
	flagConfig = flag.String("config", "", "Path to config file")
	flagDebug  = flag.Bool("debug", false, "Enable debug logging")
	flagRom    = flag.String("rom", "", "Path to the ROM image")
	flagLib    = flag.String("lib", "", "Path to the native engine library")
	flagScale  = flag.Float64("scale", 0, "Engine units per host unit")
	flagInput  = flag.String("input", "", "Input backend (keyboard, gamepad, evdev, reader, none)")
	flagFollow = flag.Bool("follow", false, "Enable follow camera")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagRom != "" {
		cfg.Engine.RomPath = *flagRom
	}
	if *flagLib != "" {
		cfg.Engine.LibraryPath = *flagLib
	}
	if *flagScale > 0 {
		cfg.Engine.Scale = float32(*flagScale)
	}
	if *flagInput != "" {
		cfg.Input.Backend = *flagInput
	}
	if *flagFollow {
		cfg.Game.FollowCamera = true
	}
}
