// Package config provides YAML-based typewriter configuration loading and
// speed presets for the revealer.
package config

import (
	"errors"
	"fmt"
)

// TypewriterConfig contains all configuration for the text revealer.
type TypewriterConfig struct {
	FPS     int           `yaml:"fps"`
	Reveal  RevealConfig  `yaml:"reveal"`
	Layout  LayoutConfig  `yaml:"layout"`
	Prelude PreludeConfig `yaml:"prelude"`
	Prompt  PromptConfig  `yaml:"prompt"`
}

// RevealConfig defines the typing timing.
type RevealConfig struct {
	CharIntervalMS int  `yaml:"char_interval_ms"` // 0 reveals everything at once
	BlinkPeriodMS  int  `yaml:"blink_period_ms"`  // Cursor/prompt toggle period
	AllowSkip      bool `yaml:"allow_skip"`       // Confirm before completion finishes the reveal
}

// LayoutConfig defines where text is placed on the surface.
type LayoutConfig struct {
	MarginX     float64 `yaml:"margin_x"`     // Fraction of screen width on each side
	MarginY     float64 `yaml:"margin_y"`     // Fraction of screen height above the text
	LineSpacing int     `yaml:"line_spacing"` // Extra rows between lines
	MaxWidth    int     `yaml:"max_width"`    // Wrap width override, 0 = derive from margins
	EastAsian   bool    `yaml:"east_asian"`   // Ambiguous-width characters take two cells
}

// PreludeConfig defines the fade-in shown before typing starts.
type PreludeConfig struct {
	Enabled bool `yaml:"enabled"`
	Steps   int  `yaml:"steps"`
	FPS     int  `yaml:"fps"`
	DelayMS int  `yaml:"delay_ms"`
}

// PromptConfig defines the continue prompt shown after completion.
type PromptConfig struct {
	Text        string `yaml:"text"`
	Cursor      string `yaml:"cursor"`       // Appended to the prompt in the "on" phase
	CursorGlyph string `yaml:"cursor_glyph"` // Typing cursor drawn after the last character
}

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid typewriter config")

// Validate checks the config for values the revealer cannot run with.
func (c TypewriterConfig) Validate() error {
	switch {
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps must be positive, got %d", ErrInvalid, c.FPS)
	case c.Reveal.CharIntervalMS < 0:
		return fmt.Errorf("%w: char_interval_ms must not be negative, got %d", ErrInvalid, c.Reveal.CharIntervalMS)
	case c.Reveal.BlinkPeriodMS <= 0:
		return fmt.Errorf("%w: blink_period_ms must be positive, got %d", ErrInvalid, c.Reveal.BlinkPeriodMS)
	case c.Layout.MarginX < 0 || c.Layout.MarginX >= 0.5:
		return fmt.Errorf("%w: margin_x must be in [0, 0.5), got %g", ErrInvalid, c.Layout.MarginX)
	case c.Layout.MarginY < 0 || c.Layout.MarginY >= 0.5:
		return fmt.Errorf("%w: margin_y must be in [0, 0.5), got %g", ErrInvalid, c.Layout.MarginY)
	case c.Layout.LineSpacing < 0 || c.Layout.MaxWidth < 0:
		return fmt.Errorf("%w: line_spacing and max_width must not be negative", ErrInvalid)
	case c.Prelude.Enabled && (c.Prelude.Steps <= 0 || c.Prelude.FPS <= 0):
		return fmt.Errorf("%w: prelude steps and fps must be positive", ErrInvalid)
	case c.Prelude.DelayMS < 0:
		return fmt.Errorf("%w: prelude delay_ms must not be negative", ErrInvalid)
	}
	return nil
}
