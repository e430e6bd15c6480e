package typewriter

import (
	"time"

	"github.com/vovakirdan/pixel-hopper/internal/config"
	"github.com/vovakirdan/pixel-hopper/internal/core"
)

// Options tunes a reveal. The zero value is not useful; start from
// DefaultOptions or OptionsFromConfig.
type Options struct {
	CharInterval time.Duration // Time to reveal one character, 0 = all at once
	BlinkPeriod  time.Duration // Cursor and prompt toggle period
	AllowSkip    bool          // Confirm before completion finishes typing instead of being ignored

	MaxWidth    int     // Wrap width, 0 = surface width minus both margins
	MarginX     float64 // Fraction of surface width left of the text
	MarginY     float64 // Fraction of surface height above the text
	LineSpacing int     // Extra units between lines
	EastAsian   bool    // Ambiguous-width characters take two cells in the default metric

	FPS int // Main loop frame rate

	Prelude   bool          // Play the fade-in before typing
	FadeSteps int           // Overlay opacity steps from opaque to transparent
	FadeFPS   int           // Frame rate during the fade
	FadeDelay time.Duration // Pause between the fade and the first typed character

	Prompt       string // Shown once the message is complete
	PromptCursor string // Appended to the prompt in its visible phase
	CursorGlyph  string // Typing cursor

	TextColor   core.Color
	CursorColor core.Color
	PromptColor core.Color

	// Backdrop, if set, draws the scene the prelude fades in over.
	Backdrop func(dst Surface, now time.Duration)
}

// DefaultOptions returns the options of the default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultTypewriterConfig())
}

// OptionsFromConfig converts a loaded configuration to reveal options.
func OptionsFromConfig(cfg config.TypewriterConfig) Options {
	return Options{
		CharInterval: time.Duration(cfg.Reveal.CharIntervalMS) * time.Millisecond,
		BlinkPeriod:  time.Duration(cfg.Reveal.BlinkPeriodMS) * time.Millisecond,
		AllowSkip:    cfg.Reveal.AllowSkip,
		MaxWidth:     cfg.Layout.MaxWidth,
		MarginX:      cfg.Layout.MarginX,
		MarginY:      cfg.Layout.MarginY,
		LineSpacing:  cfg.Layout.LineSpacing,
		EastAsian:    cfg.Layout.EastAsian,
		FPS:          cfg.FPS,
		Prelude:      cfg.Prelude.Enabled,
		FadeSteps:    cfg.Prelude.Steps,
		FadeFPS:      cfg.Prelude.FPS,
		FadeDelay:    time.Duration(cfg.Prelude.DelayMS) * time.Millisecond,
		Prompt:       cfg.Prompt.Text,
		PromptCursor: cfg.Prompt.Cursor,
		CursorGlyph:  cfg.Prompt.CursorGlyph,
		TextColor:    core.ColorBrightWhite,
		CursorColor:  core.ColorBrightWhite,
		PromptColor:  core.ColorWhite,
	}
}

// marginX returns the left margin for a surface of the given width.
func (o Options) marginX(width int) int {
	return int(float64(width) * o.MarginX)
}

// marginY returns the top margin for a surface of the given height.
func (o Options) marginY(height int) int {
	return int(float64(height) * o.MarginY)
}

// wrapWidth returns the wrap budget for a surface of the given width.
func (o Options) wrapWidth(width int) int {
	if o.MaxWidth > 0 {
		return o.MaxWidth
	}
	return width - 2*o.marginX(width)
}
