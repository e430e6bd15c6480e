package typewriter

import (
	"context"
	"errors"
	"time"

	"github.com/vovakirdan/pixel-hopper/internal/core"
)

var (
	// ErrEmptyMessage is returned when there is nothing to reveal.
	ErrEmptyMessage = errors.New("typewriter: empty message")
	// ErrInvalidInterval is returned for a negative character interval.
	ErrInvalidInterval = errors.New("typewriter: negative character interval")
	// ErrInvalidWidth is returned when the wrap width is not positive.
	ErrInvalidWidth = errors.New("typewriter: wrap width must be positive")
	// ErrQuit is returned when the user asks to quit. It is not a failure:
	// callers are expected to terminate right away.
	ErrQuit = errors.New("typewriter: quit requested")
)

// Surface is a 2D drawing target. The revealer only writes to it.
// *core.Screen implements Surface.
type Surface interface {
	Size() (width, height int)
	Clear()
	DrawText(x, y int, text string, c core.Color)
	FillRect(r core.Rect, fill rune, c core.Color)
	Overlay(alpha float64)
	// SetEastAsian selects whether DrawText gives ambiguous-width
	// characters two cells.
	SetEastAsian(on bool)
}

// Display is a Surface that can be shown to the user.
type Display interface {
	Surface
	// Present flushes the drawn frame to the user.
	Present() error
}

// Ticker provides time and frame pacing.
type Ticker interface {
	// Now returns the monotonic time elapsed since the ticker started.
	Now() time.Duration
	// Wait blocks until the next frame boundary at the given rate.
	// It is the only point where the reveal loop yields.
	Wait(ctx context.Context, fps int) error
	// Sleep blocks for d.
	Sleep(ctx context.Context, d time.Duration) error
}

// Input reports the user's actions since the previous poll.
type Input interface {
	Poll() core.InputFrame
}

// Host bundles everything the blocking Reveal loop needs from its
// environment. It is created once by the program and passed to every call.
type Host interface {
	Display
	Ticker
	Input
}
