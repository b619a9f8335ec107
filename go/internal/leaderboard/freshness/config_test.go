package freshness

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "leaderboard.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, "freshness:\n  poll_interval: 60s\n  fetch_timeout: 10s\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.PollInterval != time.Minute || cfg.FetchTimeout != 10*time.Second {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.StaleAfter != 5*time.Minute || cfg.Cooldown != 500*time.Millisecond {
		t.Fatalf("unset fields should keep defaults: %+v", cfg)
	}
}

func TestLoadConfigRejectsZeroInterval(t *testing.T) {
	path := writeConfig(t, "freshness:\n  poll_interval: 0s\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected read error")
	}
}
