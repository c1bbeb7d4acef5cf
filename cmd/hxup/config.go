package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/pthm/hxup"
	"github.com/pthm/hxup/lib/dom"
)

type fileConfig struct {
	LogLevel string          `toml:"log_level"`
	Engine   hxup.Config     `toml:"engine"`
	Variants []variantConfig `toml:"variant"`
}

// variantConfig declares an extra follow variant to report on, e.g. a modal
// feature claiming [up-modal] links.
type variantConfig struct {
	Name     string `toml:"name"`
	Selector string `toml:"selector"`
}

type cliConfig struct {
	LogLevel zerolog.Level
	Engine   hxup.Config
	Variants []variantConfig
}

func defaultCLIConfig() cliConfig {
	return cliConfig{
		LogLevel: zerolog.InfoLevel,
		Engine:   hxup.DefaultConfig(),
	}
}

// loadConfig reads a TOML config file. An empty path yields the defaults.
func loadConfig(path string) (cliConfig, error) {
	cfg := defaultCLIConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cliConfig{}, fmt.Errorf("load config (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cliConfig{}, fmt.Errorf("load config (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("log_level") {
		level, err := parseLevel(raw.LogLevel)
		if err != nil {
			return cliConfig{}, err
		}
		cfg.LogLevel = level
	}

	if meta.IsDefined("engine", "data_attribute") {
		cfg.Engine.DataAttribute = strings.TrimSpace(raw.Engine.DataAttribute)
	}
	if meta.IsDefined("engine", "field_selector") {
		cfg.Engine.FieldSelector = strings.TrimSpace(raw.Engine.FieldSelector)
	}
	if meta.IsDefined("engine", "default_selector") {
		cfg.Engine.DefaultSelector = strings.TrimSpace(raw.Engine.DefaultSelector)
	}

	cfg.Variants = raw.Variants
	if err := validateConfig(cfg); err != nil {
		return cliConfig{}, fmt.Errorf("load config (%s): %w", path, err)
	}
	return cfg, nil
}

func validateConfig(cfg cliConfig) error {
	for _, sel := range []string{cfg.Engine.FieldSelector, cfg.Engine.DefaultSelector} {
		if sel == "" {
			continue
		}
		if _, err := dom.Compile(sel); err != nil {
			return err
		}
	}

	seen := make(map[string]bool)
	for i, v := range cfg.Variants {
		if strings.TrimSpace(v.Name) == "" {
			return fmt.Errorf("variant %d: name is required", i)
		}
		if seen[v.Name] {
			return fmt.Errorf("variant %q: duplicate name", v.Name)
		}
		seen[v.Name] = true
		if _, err := dom.Compile(v.Selector); err != nil {
			return fmt.Errorf("variant %q: %w", v.Name, err)
		}
	}
	return nil
}

func parseLevel(s string) (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parse log_level: %w", err)
	}
	return level, nil
}
