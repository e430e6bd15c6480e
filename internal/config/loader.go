package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/typewriter.yaml
var defaultTypewriterYAML []byte

// DefaultTypewriterConfig returns the hard-coded typewriter configuration.
func DefaultTypewriterConfig() TypewriterConfig {
	return TypewriterConfig{
		FPS: 60,
		Reveal: RevealConfig{
			CharIntervalMS: 40,
			BlinkPeriodMS:  300,
		},
		Layout: LayoutConfig{
			MarginX: 0.05,
			MarginY: 0.10,
		},
		Prelude: PreludeConfig{
			Enabled: true,
			Steps:   51,
			FPS:     30,
			DelayMS: 1000,
		},
		Prompt: PromptConfig{
			Text:        "Press ENTER to continue",
			Cursor:      "_",
			CursorGlyph: "▌",
		},
	}
}

// LoadTypewriter loads the typewriter configuration.
// Search order: customPath -> ~/.hopper/configs/typewriter.yaml -> ./configs/typewriter.yaml -> embedded default
func LoadTypewriter(customPath string) (TypewriterConfig, error) {
	// Missing keys keep their default values
	cfg := DefaultTypewriterConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath("typewriter.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, cfg.Validate()
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/typewriter.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, cfg.Validate()
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultTypewriterYAML, &cfg); err != nil {
		return DefaultTypewriterConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hopper", "configs", filename)
}
