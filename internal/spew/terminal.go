package spew

import "time"

// DefaultScrollback is the number of finished lines a Terminal keeps.
const DefaultScrollback = 200

// Terminal types generator lines out over time. Advance it with the
// current time; read Lines to draw it.
type Terminal struct {
	gen        *Generator
	scrollback int

	done    []string
	current Line
	runes   []rune
	typed   int

	// next is when the next character appears, or, once the line is fully
	// typed, when the pause after it ends.
	next time.Duration
}

// NewTerminal creates a terminal fed by gen. It starts typing at time 0.
func NewTerminal(gen *Generator, scrollback int) *Terminal {
	if scrollback <= 0 {
		scrollback = DefaultScrollback
	}
	t := &Terminal{gen: gen, scrollback: scrollback}
	t.startLine(0)
	return t
}

func (t *Terminal) startLine(at time.Duration) {
	t.current = t.gen.Next()
	t.runes = []rune(t.current.Text)
	t.typed = 0
	t.next = at + t.current.CharDelay
}

// Advance types every character due by now.
func (t *Terminal) Advance(now time.Duration) {
	for now >= t.next {
		if t.typed < len(t.runes) {
			t.typed++
			if t.typed == len(t.runes) {
				t.next += t.current.Pause
			} else {
				t.next += t.current.CharDelay
			}
			continue
		}

		// Pause over: the line scrolls into history.
		t.done = append(t.done, t.current.Text)
		if over := len(t.done) - t.scrollback; over > 0 {
			t.done = append(t.done[:0:0], t.done[over:]...)
		}
		t.startLine(t.next)
	}
}

// Lines returns the finished lines followed by the line being typed.
func (t *Terminal) Lines() []string {
	out := make([]string, 0, len(t.done)+1)
	out = append(out, t.done...)
	return append(out, string(t.runes[:t.typed]))
}

// Typing reports whether the current line still has characters to type.
func (t *Terminal) Typing() bool {
	return t.typed < len(t.runes)
}
