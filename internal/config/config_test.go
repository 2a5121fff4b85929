package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.OutputSuffix != "_col" {
		t.Errorf("suffix: got %q, want %q", cfg.OutputSuffix, "_col")
	}
	if cfg.Params.MinWidth != 800 || cfg.Params.MaxWidth != 1200 {
		t.Errorf("default width window: got [%d,%d]", cfg.Params.MinWidth, cfg.Params.MaxWidth)
	}
	if cfg.Workers != 0 {
		t.Errorf("workers: got %d, want 0 (auto)", cfg.Workers)
	}
}

func TestLoadEmptyPathKeepsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputSuffix != "_col" || cfg.Params.TargetColumn != 1 {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadMissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.OutputSuffix != "_col" {
		t.Errorf("got %+v", cfg)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	doc := `workers: 4
skip_even_pages: true
skip_pages: [frontmatter_001]
detection:
  min_width: 700
  max_width: 1300
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 4 || !cfg.SkipEvenPages {
		t.Errorf("run options: got %+v", cfg)
	}
	if len(cfg.SkipPages) != 1 || cfg.SkipPages[0] != "frontmatter_001" {
		t.Errorf("skip pages: got %v", cfg.SkipPages)
	}
	if cfg.Params.MinWidth != 700 || cfg.Params.MaxWidth != 1300 {
		t.Errorf("overlaid widths: got [%d,%d]", cfg.Params.MinWidth, cfg.Params.MaxWidth)
	}
	// Fields the file does not mention keep their defaults.
	if cfg.Params.TargetColumn != 1 {
		t.Errorf("target column: got %d, want 1", cfg.Params.TargetColumn)
	}
	if cfg.OutputSuffix != "_col" {
		t.Errorf("suffix: got %q", cfg.OutputSuffix)
	}
}

func TestLoadBadYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("workers: [not a number\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}
