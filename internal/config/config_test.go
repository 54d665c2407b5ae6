package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "hanekawa.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config fixture: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
database_url = "postgres://localhost/hanekawa"
message_queue_url = "amqp://localhost"
peer_announce_interval = 900
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DatabaseURL != "postgres://localhost/hanekawa" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.PeerAnnounceInterval != 900 {
		t.Errorf("PeerAnnounceInterval = %d, want 900", cfg.PeerAnnounceInterval)
	}
	if cfg.PeerActivityTimeout != 3600 {
		t.Errorf("PeerActivityTimeout = %d, want default 3600", cfg.PeerActivityTimeout)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
database_url = "postgres://localhost/hanekawa"
message_queue_url = "amqp://localhost"
`)

	t.Setenv("HKW_DATABASE_URL", "postgres://prod/hanekawa")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DatabaseURL != "postgres://prod/hanekawa" {
		t.Errorf("DatabaseURL = %q, want env override to win", cfg.DatabaseURL)
	}
}

func TestLoadRejectsMissingRequiredFields(t *testing.T) {
	path := writeConfigFile(t, `peer_announce_interval = 900`)

	if _, err := Load(path); err == nil {
		t.Error("expected an error when database_url/message_queue_url are absent")
	}
}

func TestLoadToleratesMissingFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HKW_DATABASE_URL", "postgres://localhost/hanekawa")
	t.Setenv("HKW_MESSAGE_QUEUE_URL", "amqp://localhost")

	_, err := Load(filepath.Join(dir, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load should tolerate a missing config file: %v", err)
	}
}
