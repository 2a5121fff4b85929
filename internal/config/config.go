// Package config loads run configuration for the crop driver.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"foliocrop/internal/column"
)

// Config holds everything the batch driver needs for one run. Detection
// tunables ride along so a corpus recalibration is a config edit, not a
// rebuild.
type Config struct {
	// Params are the detection tunables; unset fields keep their defaults.
	Params column.DetectionParams `yaml:"detection"`

	// OverridesPath points at a yaml table of pre-registered crop boxes for
	// known-problematic pages. Empty means no overrides.
	OverridesPath string `yaml:"overrides_path"`

	// Workers caps the batch pool size. Zero means size from the machine.
	Workers int `yaml:"workers"`

	// SkipEvenPages drops even-numbered pages; on this corpus the target
	// column only appears on odd (recto) sides.
	SkipEvenPages bool `yaml:"skip_even_pages"`

	// SkipPages lists page identifiers to drop outright (blank pages,
	// plates, damaged scans).
	SkipPages []string `yaml:"skip_pages"`

	// OutputSuffix is appended to the source file stem for the cropped
	// output, before the extension.
	OutputSuffix string `yaml:"output_suffix"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Params:       column.DefaultParams(),
		OutputSuffix: "_col",
	}
}

// Load reads a yaml config file over the defaults. A missing file is fine;
// the defaults come back untouched.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.OutputSuffix == "" {
		cfg.OutputSuffix = "_col"
	}
	return cfg, nil
}
