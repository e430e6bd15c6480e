package config

import "fmt"

// SpeedPreset represents a named typing speed.
type SpeedPreset string

const (
	SpeedRelaxed SpeedPreset = "relaxed"
	SpeedNormal  SpeedPreset = "normal"
	SpeedBrisk   SpeedPreset = "brisk"
	SpeedInstant SpeedPreset = "instant"
)

// SpeedPresets lists the presets in display order.
func SpeedPresets() []SpeedPreset {
	return []SpeedPreset{SpeedRelaxed, SpeedNormal, SpeedBrisk, SpeedInstant}
}

// ParseSpeedPreset converts a flag value to a preset.
// An empty string means "no preset" and is returned as-is.
func ParseSpeedPreset(s string) (SpeedPreset, error) {
	if s == "" {
		return "", nil
	}
	for _, p := range SpeedPresets() {
		if string(p) == s {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown speed preset %q (want relaxed, normal, brisk or instant)", s)
}

// CharIntervalForPreset returns the per-character interval for a preset.
func CharIntervalForPreset(preset SpeedPreset) int {
	switch preset {
	case SpeedRelaxed:
		return 70
	case SpeedNormal:
		return 40
	case SpeedBrisk:
		return 20
	case SpeedInstant:
		return 0
	default:
		return 40
	}
}

// ApplySpeedPreset modifies the config based on a speed preset.
// The relaxed preset matches the two-player intro pacing: slower typing,
// a shorter pause after the fade and an extra row between lines.
func ApplySpeedPreset(cfg *TypewriterConfig, preset SpeedPreset) {
	if preset == "" {
		return
	}
	cfg.Reveal.CharIntervalMS = CharIntervalForPreset(preset)

	switch preset {
	case SpeedRelaxed:
		cfg.Prelude.DelayMS = 500
		cfg.Layout.LineSpacing = 1
		cfg.Layout.MarginY = 0.07
	case SpeedNormal:
		cfg.Prelude.DelayMS = 1000
	case SpeedInstant:
		cfg.Prelude.Enabled = false
	}
}
