package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"adpod/internal/config"
)

func TestDefaultsAreValid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, _, exists, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("expected missing config file")
	}
	if cfg.Compiler.Issuer != "Qube Cinema" {
		t.Fatalf("unexpected default issuer: %q", cfg.Compiler.Issuer)
	}
	if cfg.Compiler.Creator != "Qube Ad Pod Compiler" {
		t.Fatalf("unexpected default creator: %q", cfg.Compiler.Creator)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %q %q", cfg.Logging.Format, cfg.Logging.Level)
	}
	if !filepath.IsAbs(cfg.Paths.DataDir) {
		t.Fatalf("data dir not expanded: %q", cfg.Paths.DataDir)
	}
}

func TestLoadParsesFileAndExpandsPaths(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[paths]
data_dir = "~/pods"
output_dir = "~/pods/out"
log_dir = "~/pods/logs"

[compiler]
issuer = "Acme Cinema"

[logging]
format = "JSON"
level = "Debug"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists || resolved == "" {
		t.Fatalf("expected existing config at %q", resolved)
	}
	if cfg.Paths.DataDir != filepath.Join(home, "pods") {
		t.Fatalf("tilde not expanded: %q", cfg.Paths.DataDir)
	}
	if cfg.Compiler.Issuer != "Acme Cinema" {
		t.Fatalf("issuer not read: %q", cfg.Compiler.Issuer)
	}
	if cfg.Compiler.Creator != "Qube Ad Pod Compiler" {
		t.Fatalf("missing creator should fall back to default: %q", cfg.Compiler.Creator)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging values not normalized: %q %q", cfg.Logging.Format, cfg.Logging.Level)
	}
}

func TestLoadRejectsBadLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(path)
	if err == nil || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format error, got %v", err)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.OutputDir = filepath.Join(base, "out")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	for _, dir := range []string{cfg.Paths.DataDir, cfg.Paths.OutputDir, cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %q: %v", dir, err)
		}
	}
}

func TestCreateSample(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[compiler]") {
		t.Fatal("sample missing compiler section")
	}

	// The sample must itself load cleanly.
	if _, _, _, err := config.Load(target); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}
