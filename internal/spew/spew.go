// Package spew generates an endless stream of fake terminal log lines and
// types them out over time, hacker-movie style.
package spew

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// Opening lines are typed first, in order.
var openingLines = []string{
	"[INFO] Starting secure TLS protocol...",
	"[WARN] Port 22 open – establishing SSH tunnel...",
	"[INFO] Encrypted data download complete.",
}

const (
	openingCharDelay = 30 * time.Millisecond
	openingPause     = 700 * time.Millisecond
	randomCharDelay  = 10 * time.Millisecond
	minRandomPause   = 300 * time.Millisecond
	maxRandomPause   = 1000 * time.Millisecond
)

// Line is one log line with its typing rhythm.
type Line struct {
	Text      string
	CharDelay time.Duration // Time to type each character
	Pause     time.Duration // Wait after the line before the next one starts
}

// Generator produces the log lines: the fixed opening lines, then random
// connection lines forever. The same seed gives the same stream.
type Generator struct {
	rng  *rand.Rand
	next int
}

// NewGenerator creates a generator with a deterministic seed.
func NewGenerator(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Next returns the next line.
func (g *Generator) Next() Line {
	if g.next < len(openingLines) {
		text := openingLines[g.next]
		g.next++
		return Line{Text: text, CharDelay: openingCharDelay, Pause: openingPause}
	}

	ip := fmt.Sprintf("%d.%d.%d.%d", g.rng.IntN(256), g.rng.IntN(256), g.rng.IntN(256), g.rng.IntN(256))
	size := 20 + g.rng.IntN(881)
	pause := minRandomPause + time.Duration(g.rng.Int64N(int64(maxRandomPause-minRandomPause)+1))
	return Line{
		Text:      fmt.Sprintf("[OK] Connection %s packet %dKB", ip, size),
		CharDelay: randomCharDelay,
		Pause:     pause,
	}
}
