package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/njchilds90/anchorfix/internal/config"
)

func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()
	if cmd.Use != "init" {
		t.Errorf("expected use 'init', got %q", cmd.Use)
	}
	flag := cmd.Flags().Lookup("output")
	if flag == nil {
		t.Fatal("expected output flag")
	}
	if flag.DefValue != config.DefaultConfigFile {
		t.Errorf("expected default %q, got %q", config.DefaultConfigFile, flag.DefValue)
	}
	if cmd.Flags().Lookup("force") == nil || cmd.Flags().Lookup("user") == nil {
		t.Error("expected force and user flags")
	}
}

func TestRunInitCmd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", ".anchorfix.yaml")

	out, err := runCLI(t, "", "init", "-o", path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("expected created path in output: %q", out)
	}

	f, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("generated config should load: %v", err)
	}
	if f.RandomPostFallback != "/archives/" {
		t.Errorf("fallback = %q", f.RandomPostFallback)
	}

	if _, err := runCLI(t, "", "init", "-o", path); err == nil {
		t.Error("expected error when file exists")
	}
	if _, err := runCLI(t, "", "init", "-o", path, "-f"); err != nil {
		t.Errorf("force should overwrite: %v", err)
	}
}
