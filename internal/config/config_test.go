package config

import (
	"os"
	"path/filepath"
	"testing"
)

var envKeys = []string{
	"JSONFIXTURE_OUTPUT",
	"JSONFIXTURE_COUNT",
	"JSONFIXTURE_SEED",
	"JSONFIXTURE_LOG_LEVEL",
	"JSONFIXTURE_PROFILES_DIR",
	"JSONFIXTURE_RUNS_DB",
}

// isolateEnv unsets every JSONFIXTURE_* variable and restores them afterwards.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		old, had := os.LookupEnv(key)
		_ = os.Unsetenv(key)
		t.Cleanup(func() {
			if had {
				_ = os.Setenv(key, old)
			} else {
				_ = os.Unsetenv(key)
			}
		})
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })
}

func TestLoad_Defaults(t *testing.T) {
	isolateEnv(t)
	chdir(t, t.TempDir())

	cfg := Load()
	if cfg.Output != "random_data.json" || cfg.Count != 1000 || cfg.Seed != 12345 {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
	if cfg.LogLevel != "info" || cfg.RunsDB != "" {
		t.Fatalf("unexpected defaults: %#v", cfg)
	}
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	isolateEnv(t)
	d := t.TempDir()
	if err := os.WriteFile(filepath.Join(d, ".env"), []byte("JSONFIXTURE_RUNS_DB=./runs.sqlite\nJSONFIXTURE_LOG_LEVEL=debug\nJSONFIXTURE_COUNT=25\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, d)

	cfg := Load()
	if cfg.RunsDB != "./runs.sqlite" {
		t.Fatalf("expected JSONFIXTURE_RUNS_DB from .env, got %q", cfg.RunsDB)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected JSONFIXTURE_LOG_LEVEL from .env, got %q", cfg.LogLevel)
	}
	if cfg.Count != 25 {
		t.Fatalf("expected JSONFIXTURE_COUNT from .env, got %d", cfg.Count)
	}
}

func TestLoad_BadNumbersFallBack(t *testing.T) {
	isolateEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("JSONFIXTURE_COUNT", "lots")
	t.Setenv("JSONFIXTURE_SEED", "-7")

	cfg := Load()
	if cfg.Count != 1000 {
		t.Fatalf("expected default count, got %d", cfg.Count)
	}
	if cfg.Seed != -7 {
		t.Fatalf("expected negative seed to be accepted, got %d", cfg.Seed)
	}
}
