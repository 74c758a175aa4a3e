// Package config provides configuration types and defaults for hush.
package config

import "time"

// Config holds all configuration for hush.
//
// Session timing (the 60 second hold, the 1 second tick, prompt rotation and
// hue period) is fixed by the meditation package and intentionally absent here.
type Config struct {
	UI          UIConfig          `yaml:"ui" mapstructure:"ui"`
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	LogRotation LogRotationConfig `yaml:"log_rotation" mapstructure:"log_rotation"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	FrameInterval time.Duration `yaml:"frame_interval" mapstructure:"frame_interval"` // Time between rendered frames
	Mouse         bool          `yaml:"mouse" mapstructure:"mouse"`                   // Enable mouse press/release tracking
	AltScreen     bool          `yaml:"alt_screen" mapstructure:"alt_screen"`         // Render in the alternate screen buffer
	SkipHome      bool          `yaml:"skip_home" mapstructure:"skip_home"`           // Start directly on the meditation screen
}

// PathsConfig holds file paths for logs and the event trace.
type PathsConfig struct {
	Log   string `yaml:"log" mapstructure:"log"`
	Trace string `yaml:"trace" mapstructure:"trace"` // JSONL event trace; empty disables it
}

// LogRotationConfig holds settings for log file rotation.
// Used for the TUI debug log (lumberjack-based automatic rotation).
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

// MinFrameInterval bounds the frame rate at 120 fps.
const MinFrameInterval = time.Second / 120

// FPS returns the frame rate implied by FrameInterval.
func (u UIConfig) FPS() int {
	interval := u.FrameInterval
	if interval < MinFrameInterval {
		interval = MinFrameInterval
	}
	return int(time.Second / interval)
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		UI: UIConfig{
			FrameInterval: time.Second / 30,
			Mouse:         true,
			AltScreen:     true,
			SkipHome:      false,
		},
		Paths: PathsConfig{
			Log:   ".hush/hush.log",
			Trace: "",
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}
