package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTempDir(t *testing.T) {
	dir, cleanup := TempDir(t)
	defer cleanup()

	info, err := os.Stat(dir)
	if err != nil {
		t.Fatalf("directory should exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("should be a directory")
	}
	if !strings.HasPrefix(filepath.Base(dir), "hush-test-") {
		t.Errorf("dir %q should start with hush-test-", dir)
	}
}

func TestTempDir_Cleanup(t *testing.T) {
	dir, cleanup := TempDir(t)
	WriteFile(t, dir, "test.txt", "test")

	cleanup()

	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("directory should be removed after cleanup")
	}
}

func TestWriteFile_CreatesSubdirectories(t *testing.T) {
	dir := t.TempDir()

	path := WriteFile(t, dir, "a/b/c.txt", "nested")
	if got := ReadFile(t, path); got != "nested" {
		t.Errorf("content = %q, want %q", got, "nested")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	if FileExists(t, filepath.Join(dir, "missing")) {
		t.Error("missing file reported as existing")
	}
	path := WriteFile(t, dir, "present", "")
	if !FileExists(t, path) {
		t.Error("written file reported as missing")
	}
}
