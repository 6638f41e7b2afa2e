package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadEmbeddedDefault(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("AI_PROVIDER", "")
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	want := DefaultGameConfig()
	if cfg.Timing != want.Timing {
		t.Errorf("Timing = %+v, want %+v", cfg.Timing, want.Timing)
	}
	if cfg.Autoplay.CallPeriod != 120*time.Second || cfg.Autoplay.Runs != 2 {
		t.Errorf("Autoplay = %+v", cfg.Autoplay)
	}
	if cfg.Storage.DBPath != want.Storage.DBPath {
		t.Errorf("DBPath = %q, want %q", cfg.Storage.DBPath, want.Storage.DBPath)
	}
}

func TestLoadCustomPathKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("timing:\n  ticks_per_interval: 240\nautoplay:\n  runs: 5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Timing.TicksPerInterval != 240 {
		t.Errorf("TicksPerInterval = %d, want 240", cfg.Timing.TicksPerInterval)
	}
	if cfg.Timing.NeedsInterval != 120*time.Second {
		t.Errorf("NeedsInterval = %v, want default 2m0s", cfg.Timing.NeedsInterval)
	}
	if cfg.Autoplay.Runs != 5 {
		t.Errorf("Runs = %d, want 5", cfg.Autoplay.Runs)
	}
}

func TestLoadLocalConfigsDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.Mkdir("configs", 0o755); err != nil {
		t.Fatalf("Mkdir() failed: %v", err)
	}
	if err := os.WriteFile(filepath.Join("configs", "gotchi.yaml"), []byte("timing:\n  frame_rate: 4\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Timing.FrameRate != 4 {
		t.Errorf("FrameRate = %d, want 4", cfg.Timing.FrameRate)
	}
	if got := cfg.Timing.FrameInterval(); got != 250*time.Millisecond {
		t.Errorf("FrameInterval() = %v, want 250ms", got)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing custom config")
	}
}

func TestLoadBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("timing: [unclosed"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("GOOGLE_API_KEY", "g-test")
	t.Setenv("AI_PROVIDER", "Gemini")

	path := filepath.Join(t.TempDir(), "c.yaml")
	if err := os.WriteFile(path, []byte("autoplay:\n  provider: claude\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Autoplay.ClaudeAPIKey != "sk-test" || cfg.Autoplay.GeminiAPIKey != "g-test" {
		t.Errorf("keys not taken from env: %+v", cfg.Autoplay)
	}
	if cfg.Autoplay.Provider != "gemini" {
		t.Errorf("Provider = %q, want gemini", cfg.Autoplay.Provider)
	}
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := ExpandHome("~/.gotchi/gotchi.db"); got != filepath.Join(home, ".gotchi", "gotchi.db") {
		t.Errorf("ExpandHome() = %q", got)
	}
	if got := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandHome() = %q, want unchanged", got)
	}
}
