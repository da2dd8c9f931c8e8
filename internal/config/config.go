// Package config handles bridge configuration loading and management.
package config

// Config holds all bridge settings.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Input   InputConfig   `yaml:"input"`
	Game    GameConfig    `yaml:"game"`
	Logging LoggingConfig `yaml:"logging"`
}

// EngineConfig holds the native library and ROM settings.
type EngineConfig struct {
	LibraryPath string  `yaml:"library_path"` // Path to libsm64.so / sm64.dll
	RomPath     string  `yaml:"rom_path"`     // Path to the 8 MiB US ROM image
	Scale       float32 `yaml:"scale"`        // Engine units per host unit
}

// InputConfig selects and parameterizes the controller backend.
type InputConfig struct {
	// Backend is one of: keyboard, gamepad, evdev, reader, none.
	Backend string `yaml:"backend"`

	// DevicePath is the evdev device node, e.g. /dev/input/event3.
	// Empty scans for the first usable device.
	DevicePath string `yaml:"device_path"`

	// ReaderExe is an external controller reader executable whose
	// stdout is polled for input lines.
	ReaderExe string `yaml:"reader_exe"`
}

// GameConfig holds play-session settings.
type GameConfig struct {
	FollowCamera bool `yaml:"follow_camera"`
	TickRate     int  `yaml:"tick_rate"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			LibraryPath: "libsm64.so",
			RomPath:     "baserom.us.z64",
			Scale:       50,
		},
		Input: InputConfig{
			Backend: "gamepad",
		},
		Game: GameConfig{
			FollowCamera: true,
			TickRate:     30,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
