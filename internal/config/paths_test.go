package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePaths(t *testing.T) {
	tmp := t.TempDir()

	tests := []struct {
		name  string
		paths PathsConfig
		want  PathsConfig
	}{
		{
			name:  "relative",
			paths: PathsConfig{Log: ".hush/hush.log", Trace: ".hush/trace.jsonl"},
			want:  PathsConfig{Log: filepath.Join(tmp, ".hush/hush.log"), Trace: filepath.Join(tmp, ".hush/trace.jsonl")},
		},
		{
			name:  "absolute unchanged",
			paths: PathsConfig{Log: "/var/log/hush.log", Trace: "/tmp/trace.jsonl"},
			want:  PathsConfig{Log: "/var/log/hush.log", Trace: "/tmp/trace.jsonl"},
		},
		{
			name:  "empty trace stays disabled",
			paths: PathsConfig{Log: "hush.log"},
			want:  PathsConfig{Log: filepath.Join(tmp, "hush.log")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePaths(tt.paths, tmp)
			if err != nil {
				t.Fatalf("ResolvePaths() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ResolvePaths() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestResolvePaths_WorkingDirectory(t *testing.T) {
	tmp := chdirTemp(t)
	wd, _ := os.Getwd()

	got, err := ResolvePaths(PathsConfig{Log: "hush.log"}, "")
	if err != nil {
		t.Fatalf("ResolvePaths() error: %v", err)
	}
	if got.Log != filepath.Join(wd, "hush.log") {
		t.Errorf("Log = %q, want under %q", got.Log, tmp)
	}
}

func TestFindProjectRoot(t *testing.T) {
	tests := []struct {
		name   string
		marker string
	}{
		{"git", ".git"},
		{"hush", ProjectConfigDir},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			if err := os.MkdirAll(filepath.Join(root, tt.marker), 0755); err != nil {
				t.Fatal(err)
			}
			nested := filepath.Join(root, "a", "b")
			if err := os.MkdirAll(nested, 0755); err != nil {
				t.Fatal(err)
			}

			if got := FindProjectRoot(nested); got != root {
				t.Errorf("FindProjectRoot() = %q, want %q", got, root)
			}
		})
	}
}

func TestFindProjectRoot_NoMarker(t *testing.T) {
	dir := t.TempDir()
	got := FindProjectRoot(dir)
	// Either the start dir or some ancestor with a marker (e.g. a developer's
	// home in a git checkout); never empty.
	if got == "" {
		t.Error("FindProjectRoot() returned empty path")
	}
}
