package config

import (
	"os"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port != "5001" {
		t.Fatalf("default port = %q, want 5001", cfg.Server.Port)
	}
	if cfg.Storage.DataFile != "/data/schedule.json" {
		t.Fatalf("default data file = %q", cfg.Storage.DataFile)
	}
	if cfg.Storage.BackupDir != "/data/backups" {
		t.Fatalf("default backup dir = %q", cfg.Storage.BackupDir)
	}
}

func TestLoadConfigFromEnv(t *testing.T) {
	os.Setenv("DATA_FILE", "/tmp/dm/schedule.json")
	os.Setenv("BACKUP_DIR", "/tmp/dm/backups")
	os.Setenv("REDIS_HOST", "localhost")
	os.Setenv("REDIS_PORT", "6379")
	defer func() {
		os.Unsetenv("DATA_FILE")
		os.Unsetenv("BACKUP_DIR")
		os.Unsetenv("REDIS_HOST")
		os.Unsetenv("REDIS_PORT")
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Storage.DataFile != "/tmp/dm/schedule.json" || cfg.Storage.BackupDir != "/tmp/dm/backups" {
		t.Fatalf("unexpected storage config: %+v", cfg.Storage)
	}
	if cfg.Redis.Host == "" {
		t.Fatalf("unexpected empty redis host: %+v", cfg.Redis)
	}
}
