package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultDataDirXDGOverride(t *testing.T) {
	originalXDG := os.Getenv("XDG_DATA_HOME")
	t.Cleanup(func() {
		if originalXDG != "" {
			os.Setenv("XDG_DATA_HOME", originalXDG)
		} else {
			os.Unsetenv("XDG_DATA_HOME")
		}
	})
	os.Setenv("XDG_DATA_HOME", "/custom/data")
	if got := DefaultDataDir(); got != "/custom/data/vstor" {
		t.Fatalf("expected /custom/data/vstor, got %s", got)
	}
}

func TestDefaultDataDirNoHome(t *testing.T) {
	originalHome := os.Getenv("HOME")
	os.Unsetenv("HOME")
	t.Cleanup(func() {
		if originalHome != "" {
			os.Setenv("HOME", originalHome)
		}
	})
	if got := DefaultDataDir(); got != "./data" {
		t.Fatalf("expected fallback './data', got %s", got)
	}
}

func TestDefaultDataDirShape(t *testing.T) {
	got := DefaultDataDir()
	if got == "" {
		t.Fatal("DefaultDataDir should not return empty string")
	}
	if !filepath.IsAbs(got) && !strings.HasPrefix(got, "./") {
		t.Fatalf("expected absolute path or ./ prefix, got %s", got)
	}
	if got != DefaultDataDir() {
		t.Fatalf("DefaultDataDir should be consistent")
	}
}

func TestIsDir(t *testing.T) {
	if !isDir(".") {
		t.Fatalf("current directory should be a dir")
	}
	if isDir("/non/existent/path/that/does/not/exist") {
		t.Fatalf("missing path reported as dir")
	}
}
