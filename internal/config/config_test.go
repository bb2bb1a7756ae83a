package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setupTestConfig(t *testing.T) *Config {
	t.Helper()

	tmpDir := t.TempDir()
	cfg := DefaultConfig()
	cfg.BaseDir = tmpDir
	return cfg
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.APIURL == "" {
		t.Error("default API URL should not be empty")
	}
	if !cfg.Options.StageForReview {
		t.Error("stage_for_review should default to true")
	}
	if cfg.Options.DescriptionHandling != "append" {
		t.Errorf("unexpected default description handling: %s", cfg.Options.DescriptionHandling)
	}
}

func TestSaveAndReload(t *testing.T) {
	cfg := setupTestConfig(t)
	cfg.ProjectID = "p1"
	cfg.DatasetID = "d1"
	cfg.Options.UseProfile = true

	if err := cfg.Save(); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded := DefaultConfig()
	loaded.BaseDir = cfg.BaseDir
	if err := loaded.loadFile(); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.ProjectID != "p1" || loaded.DatasetID != "d1" {
		t.Errorf("unexpected reloaded scope: %s %s", loaded.ProjectID, loaded.DatasetID)
	}
	if !loaded.Options.UseProfile {
		t.Error("use_profile toggle was not persisted")
	}
}

func TestEnvOverrides(t *testing.T) {
	cfg := setupTestConfig(t)

	t.Setenv("MWIZ_PROJECT_ID", "env-project")
	t.Setenv("MWIZ_LLM_LOCATION", "europe-west1")
	cfg.applyEnv()

	if cfg.ProjectID != "env-project" {
		t.Errorf("project id not taken from env: %s", cfg.ProjectID)
	}
	if cfg.LLMLocation != "europe-west1" {
		t.Errorf("llm location not taken from env: %s", cfg.LLMLocation)
	}
}

func TestSetKnownKeys(t *testing.T) {
	cfg := setupTestConfig(t)

	if err := cfg.Set("project_id", "p2"); err != nil {
		t.Fatalf("failed to set project_id: %v", err)
	}
	if cfg.ProjectID != "p2" {
		t.Errorf("project_id not applied: %s", cfg.ProjectID)
	}

	if err := cfg.Set("use_profile", "true"); err != nil {
		t.Fatalf("failed to set use_profile: %v", err)
	}
	if !cfg.Options.UseProfile {
		t.Error("use_profile not applied")
	}

	if err := cfg.Set("stage_for_review", "maybe"); err == nil {
		t.Error("expected error for invalid boolean value")
	}
	if err := cfg.Set("bogus_key", "x"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestValidate(t *testing.T) {
	cfg := setupTestConfig(t)
	cfg.APIURL = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for empty API URL")
	}

	cfg = setupTestConfig(t)
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected validate error: %v", err)
	}
	if !filepath.IsAbs(cfg.BaseDir) {
		t.Errorf("base dir should be absolute after validate: %s", cfg.BaseDir)
	}
}

func TestRequireScope(t *testing.T) {
	cfg := setupTestConfig(t)

	if err := cfg.RequireTable(); err == nil {
		t.Error("expected error with no project configured")
	}

	cfg.ProjectID = "p1"
	if err := cfg.RequireDataset(); err == nil {
		t.Error("expected error with no dataset configured")
	}

	cfg.DatasetID = "d1"
	cfg.TableID = "t1"
	if err := cfg.RequireTable(); err != nil {
		t.Errorf("unexpected error with full scope: %v", err)
	}
}

func TestHistoryPath(t *testing.T) {
	cfg := setupTestConfig(t)
	want := filepath.Join(cfg.BaseDir, "history.db")
	if got := cfg.HistoryPath(); got != want {
		t.Errorf("HistoryPath() = %s; want %s", got, want)
	}
	// The base dir itself may not exist yet; HistoryPath must not create it.
	if _, err := os.Stat(filepath.Join(cfg.BaseDir, "history.db")); !os.IsNotExist(err) && err != nil {
		t.Errorf("unexpected stat error: %v", err)
	}
}
