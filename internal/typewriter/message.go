// Package typewriter implements a typewriter-style text revealer: a message
// is word-wrapped to a width budget and revealed one character at a time,
// with a blinking cursor while typing and a blinking continue prompt once
// the whole message is visible.
//
// The package holds pure logic. Hosts supply a render surface, a metric for
// measuring text and a ticker for time and frame pacing, and either drive a
// Session frame by frame or call the blocking Reveal loop.
package typewriter

import "strings"

// Message is an ordered sequence of paragraphs. Each paragraph may contain
// embedded line breaks, which force a new line just like a paragraph
// boundary does. A Message is never modified by this package.
type Message []string

// NewMessage creates a single-paragraph message from text.
func NewMessage(text string) Message {
	return Message{text}
}

// Empty reports whether the message has no text to reveal.
func (m Message) Empty() bool {
	for _, p := range m {
		if strings.TrimSpace(p) != "" {
			return false
		}
	}
	return true
}

// segments flattens the message into its forced lines: one per paragraph,
// split further at every line break.
func (m Message) segments() []string {
	var out []string
	for _, p := range m {
		p = strings.ReplaceAll(p, "\r\n", "\n")
		out = append(out, strings.Split(p, "\n")...)
	}
	return out
}
