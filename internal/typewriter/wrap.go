package typewriter

import (
	"strings"
	"unicode/utf8"
)

// Wrap segments msg into display lines no wider than maxWidth using greedy
// word wrap. A line accumulates words while its width stays within the
// limit; the first word that would overflow starts a new line. Paragraph
// boundaries and line breaks always start a new line, and empty segments
// produce empty lines. A single word wider than maxWidth occupies its own
// line unmodified.
//
// Spaces at wrap points are dropped, so they do not count as revealed
// characters. Wrap has no hidden state: the same inputs give the same lines.
func Wrap(msg Message, metric Metric, maxWidth int) []string {
	var lines []string
	for _, seg := range msg.segments() {
		lines = append(lines, wrapSegment(seg, metric, maxWidth)...)
	}
	return lines
}

func wrapSegment(seg string, metric Metric, maxWidth int) []string {
	var (
		lines []string
		line  string
	)
	for _, word := range strings.Split(seg, " ") {
		candidate := word
		if line != "" {
			candidate = line + " " + word
		}
		if line == "" || metric.Width(candidate) <= maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = word
	}
	return append(lines, line)
}

// TotalChars returns the number of characters across all lines.
func TotalChars(lines []string) int {
	total := 0
	for _, l := range lines {
		total += utf8.RuneCountInString(l)
	}
	return total
}

// Frame is the revealed part of a wrapped message.
type Frame struct {
	// Lines holds every line that has started revealing, the last one
	// possibly cut short.
	Lines []string
	// CursorLine and CursorCol locate the position right after the last
	// revealed character (column in characters).
	CursorLine int
	CursorCol  int
}

// Progress cuts the wrapped lines down to the first shown characters.
// Earlier lines appear in full, the line where the count runs out shows
// only its prefix and later lines are omitted.
func Progress(lines []string, shown int) Frame {
	var f Frame
	running := 0
	for i, line := range lines {
		remaining := shown - running
		if remaining <= 0 {
			break
		}
		runes := []rune(line)
		take := min(len(runes), remaining)
		f.Lines = append(f.Lines, string(runes[:take]))
		f.CursorLine = i
		f.CursorCol = take
		running += take
		if take < len(runes) {
			break
		}
	}
	return f
}
