package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Test engine defaults
	if cfg.Engine.LibraryPath != "libsm64.so" {
		t.Errorf("expected library path 'libsm64.so', got %s", cfg.Engine.LibraryPath)
	}
	if cfg.Engine.RomPath != "baserom.us.z64" {
		t.Errorf("expected rom path 'baserom.us.z64', got %s", cfg.Engine.RomPath)
	}
	if cfg.Engine.Scale != 50 {
		t.Errorf("expected scale 50, got %f", cfg.Engine.Scale)
	}

	// Test input defaults
	if cfg.Input.Backend != "gamepad" {
		t.Errorf("expected backend 'gamepad', got %s", cfg.Input.Backend)
	}
	if cfg.Input.DevicePath != "" {
		t.Errorf("expected empty device path, got %s", cfg.Input.DevicePath)
	}

	// Test game defaults
	if !cfg.Game.FollowCamera {
		t.Error("expected follow_camera to be true by default")
	}
	if cfg.Game.TickRate != 30 {
		t.Errorf("expected tick rate 30, got %d", cfg.Game.TickRate)
	}

	// Test logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
engine:
  library_path: "/opt/sm64/libsm64.so"
  rom_path: "/roms/baserom.us.z64"
  scale: 100

input:
  backend: "evdev"
  device_path: "/dev/input/event3"

game:
  follow_camera: false
  tick_rate: 30

logging:
  level: "debug"
  log_file: "bridge.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Engine.LibraryPath != "/opt/sm64/libsm64.so" {
		t.Errorf("expected library path '/opt/sm64/libsm64.so', got %s", cfg.Engine.LibraryPath)
	}
	if cfg.Engine.RomPath != "/roms/baserom.us.z64" {
		t.Errorf("expected rom path '/roms/baserom.us.z64', got %s", cfg.Engine.RomPath)
	}
	if cfg.Engine.Scale != 100 {
		t.Errorf("expected scale 100, got %f", cfg.Engine.Scale)
	}

	if cfg.Input.Backend != "evdev" {
		t.Errorf("expected backend 'evdev', got %s", cfg.Input.Backend)
	}
	if cfg.Input.DevicePath != "/dev/input/event3" {
		t.Errorf("expected device path '/dev/input/event3', got %s", cfg.Input.DevicePath)
	}

	if cfg.Game.FollowCamera {
		t.Error("expected follow_camera to be false")
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "bridge.log" {
		t.Errorf("expected log file 'bridge.log', got %s", cfg.Logging.LogFile)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	// Create temporary config file with invalid YAML
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
engine:
  scale: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Try to load - should error
	cfg := Default()
	err := loadFromFile(cfg, configPath)
	if err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	err := loadFromFile(cfg, "/nonexistent/path/config.yaml")
	if err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	// Just verify it returns a non-empty path
	// Actual path depends on OS
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}

	// Verify path is absolute
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	// Save current directory
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	// Create temp directory and change to it
	tmpDir := t.TempDir()
	os.Chdir(tmpDir)

	// No config file exists - should return empty
	path := findConfigFile()
	if path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	// Create config.yaml in current directory
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("engine:\n  scale: 100\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	// Should find it now
	path = findConfigFile()
	if path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "rom flag",
			setup: func() {
				*flagRom = "/roms/custom.z64"
			},
			verify: func(cfg *Config) {
				if cfg.Engine.RomPath != "/roms/custom.z64" {
					t.Errorf("expected rom path '/roms/custom.z64', got %s", cfg.Engine.RomPath)
				}
			},
			teardown: func() {
				*flagRom = ""
			},
		},
		{
			name: "lib flag",
			setup: func() {
				*flagLib = "/usr/local/lib/libsm64.so"
			},
			verify: func(cfg *Config) {
				if cfg.Engine.LibraryPath != "/usr/local/lib/libsm64.so" {
					t.Errorf("expected library path '/usr/local/lib/libsm64.so', got %s", cfg.Engine.LibraryPath)
				}
			},
			teardown: func() {
				*flagLib = ""
			},
		},
		{
			name: "scale flag",
			setup: func() {
				*flagScale = 200
			},
			verify: func(cfg *Config) {
				if cfg.Engine.Scale != 200 {
					t.Errorf("expected scale 200, got %f", cfg.Engine.Scale)
				}
			},
			teardown: func() {
				*flagScale = 0
			},
		},
		{
			name: "input flag",
			setup: func() {
				*flagInput = "keyboard"
			},
			verify: func(cfg *Config) {
				if cfg.Input.Backend != "keyboard" {
					t.Errorf("expected backend 'keyboard', got %s", cfg.Input.Backend)
				}
			},
			teardown: func() {
				*flagInput = ""
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Setup
			tt.setup()
			defer tt.teardown()

			// Apply flags to default config
			cfg := Default()
			applyFlags(cfg)

			// Verify
			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
engine:
  rom_path: "/roms/from-file.z64"
  scale: 75
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagScale = 100
	defer func() {
		*flagConfig = ""
		*flagScale = 0
	}()

	// Load config
	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Scale should be from flag (100), not file (75)
	if cfg.Engine.Scale != 100 {
		t.Errorf("expected scale 100 from flag, got %f", cfg.Engine.Scale)
	}

	// ROM path should be from file since no flag override
	if cfg.Engine.RomPath != "/roms/from-file.z64" {
		t.Errorf("expected rom path from file, got %s", cfg.Engine.RomPath)
	}
}
