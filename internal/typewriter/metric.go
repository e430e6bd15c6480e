package typewriter

import (
	"unicode/utf8"

	"github.com/vovakirdan/pixel-hopper/internal/core"
)

// Metric measures rendered text. Implementations must be pure: the revealer
// queries them many times per frame.
type Metric interface {
	// Width returns the rendered width of text in surface units.
	Width(text string) int
	// LineHeight returns the height of one line in surface units.
	LineHeight() int
}

// CellMetric measures text in terminal cells, exactly as core.Screen
// draws it.
type CellMetric struct {
	// EastAsian treats ambiguous-width characters as double width,
	// matching terminals configured for CJK locales.
	EastAsian bool
}

// Width returns the number of terminal cells text occupies.
func (m CellMetric) Width(text string) int {
	return core.TextWidth(text, m.EastAsian)
}

// LineHeight is always one row.
func (m CellMetric) LineHeight() int {
	return 1
}

// MatchWidths makes dst draw text with the cell widths metric measures.
// Other metrics do not measure in cells and leave dst alone.
func MatchWidths(dst Surface, metric Metric) {
	if m, ok := metric.(CellMetric); ok {
		dst.SetEastAsian(m.EastAsian)
	}
}

// FixedMetric gives every character the same advance, like a monospaced
// bitmap font.
type FixedMetric struct {
	Advance int // Width of one character
	Height  int // Height of one line
}

// Width returns the character count times the advance.
func (m FixedMetric) Width(text string) int {
	return utf8.RuneCountInString(text) * m.Advance
}

// LineHeight returns the configured line height.
func (m FixedMetric) LineHeight() int {
	return m.Height
}
