package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg == nil {
		t.Fatal("Default() returned nil")
	}
}

func TestDefaultUIConfig(t *testing.T) {
	cfg := Default()

	if cfg.UI.FrameInterval != time.Second/30 {
		t.Errorf("UI.FrameInterval = %v, want %v", cfg.UI.FrameInterval, time.Second/30)
	}
	if !cfg.UI.Mouse {
		t.Error("UI.Mouse = false, want true")
	}
	if !cfg.UI.AltScreen {
		t.Error("UI.AltScreen = false, want true")
	}
	if cfg.UI.SkipHome {
		t.Error("UI.SkipHome = true, want false")
	}
}

func TestDefaultPathsConfig(t *testing.T) {
	cfg := Default()

	if cfg.Paths.Log != ".hush/hush.log" {
		t.Errorf("Paths.Log = %q, want %q", cfg.Paths.Log, ".hush/hush.log")
	}
	if cfg.Paths.Trace != "" {
		t.Errorf("Paths.Trace = %q, want empty (disabled)", cfg.Paths.Trace)
	}
}

func TestDefaultLogRotationConfig(t *testing.T) {
	cfg := Default()

	if cfg.LogRotation.MaxSizeMB != 10 {
		t.Errorf("LogRotation.MaxSizeMB = %d, want 10", cfg.LogRotation.MaxSizeMB)
	}
	if cfg.LogRotation.MaxBackups != 3 {
		t.Errorf("LogRotation.MaxBackups = %d, want 3", cfg.LogRotation.MaxBackups)
	}
	if cfg.LogRotation.MaxAgeDays != 7 {
		t.Errorf("LogRotation.MaxAgeDays = %d, want 7", cfg.LogRotation.MaxAgeDays)
	}
	if !cfg.LogRotation.Compress {
		t.Error("LogRotation.Compress = false, want true")
	}
}

func TestUIConfigFPS(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		want     int
	}{
		{"30 fps", time.Second / 30, 30},
		{"60 fps", time.Second / 60, 60},
		{"10 fps", 100 * time.Millisecond, 10},
		{"zero clamps to max", 0, 120},
		{"too fast clamps to max", time.Millisecond, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := UIConfig{FrameInterval: tt.interval}
			if got := u.FPS(); got != tt.want {
				t.Errorf("FPS() = %d, want %d", got, tt.want)
			}
		})
	}
}
