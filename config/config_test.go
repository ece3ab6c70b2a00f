package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	data := `
http:
  addr: ":9090"
planner:
  max_hours_per_day: 6
ai:
  model: gpt-4o-mini
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("addr %q", cfg.HTTP.Addr)
	}
	if cfg.Planner.MaxHoursPerDay != 6 {
		t.Fatalf("max hours %g", cfg.Planner.MaxHoursPerDay)
	}
	if cfg.Planner.WorkingHoursPerDay != 8 {
		t.Fatalf("default working hours %g, want 8", cfg.Planner.WorkingHoursPerDay)
	}
	if cfg.AI.Model != "gpt-4o-mini" {
		t.Fatalf("ai model %q", cfg.AI.Model)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.json")
	data := `{"planner":{"granularity_cap_hours":3},"fetch":{"timeout_seconds":5}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Planner.GranularityCapHours != 3 {
		t.Fatalf("cap %g", cfg.Planner.GranularityCapHours)
	}
	if cfg.Fetch.TimeoutSeconds != 5 {
		t.Fatalf("fetch timeout %d", cfg.Fetch.TimeoutSeconds)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte("http:\n  addr: \":8080\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("TF_HTTP__ADDR", ":7070")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("addr %q, want env override", cfg.HTTP.Addr)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.toml")
	if err := os.WriteFile(path, []byte(""), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for unsupported extension")
	}
}

func TestLoadInvalidPlanner(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	if err := os.WriteFile(path, []byte("planner:\n  max_hours_per_day: -2\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected validation error")
	}
}
