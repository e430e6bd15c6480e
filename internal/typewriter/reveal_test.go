package typewriter

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pixel-hopper/internal/core"
)

// fakeHost is a headless host driven by simulated time. The script
// function decides the input for each polled frame.
type fakeHost struct {
	*core.Screen
	*StepTicker

	frames  int
	polls   int
	script  func(poll int, now time.Duration) core.InputFrame
	onFrame func(h *fakeHost)
	failAt  int
}

func newFakeHost(w, h int) *fakeHost {
	return &fakeHost{
		Screen:     core.NewScreen(w, h),
		StepTicker: NewStepTicker(),
	}
}

func (h *fakeHost) Present() error {
	h.frames++
	if h.failAt > 0 && h.frames >= h.failAt {
		return errors.New("display gone")
	}
	if h.onFrame != nil {
		h.onFrame(h)
	}
	return nil
}

func (h *fakeHost) Poll() core.InputFrame {
	h.polls++
	if h.script == nil {
		return core.NewInputFrame()
	}
	return h.script(h.polls, h.Now())
}

// confirmAfter presses confirm on every frame from t onwards.
func confirmAfter(t time.Duration) func(int, time.Duration) core.InputFrame {
	return func(_ int, now time.Duration) core.InputFrame {
		if now >= t {
			return input(core.ActionConfirm)
		}
		return input()
	}
}

func TestRevealConfirmReturnsNil(t *testing.T) {
	host := newFakeHost(40, 10)
	host.script = confirmAfter(100 * ms)

	err := Reveal(context.Background(), host, NewMessage("Hi there"), CellMetric{}, testOptions())
	require.NoError(t, err)

	// 8 characters at 50ms need 400ms; the earlier confirms were ignored.
	assert.GreaterOrEqual(t, host.Now(), 400*ms)
	assert.Contains(t, host.Row(0), "Hi there")
}

func TestRevealQuitStopsRendering(t *testing.T) {
	host := newFakeHost(40, 10)
	host.script = func(poll int, _ time.Duration) core.InputFrame {
		if poll == 5 {
			return input(core.ActionQuit)
		}
		return input()
	}

	err := Reveal(context.Background(), host, NewMessage("a long message"), CellMetric{}, testOptions())
	require.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, 4, host.frames, "no frame is presented after quit")
}

func TestRevealNeverCompletesWithHugeInterval(t *testing.T) {
	opts := testOptions()
	opts.CharInterval = time.Hour

	host := newFakeHost(40, 10)
	host.script = func(poll int, _ time.Duration) core.InputFrame {
		if poll > 1000 {
			return input(core.ActionQuit)
		}
		return input(core.ActionConfirm)
	}

	err := Reveal(context.Background(), host, NewMessage("stuck"), CellMetric{}, opts)
	require.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, 1000, host.frames)
	assert.NotContains(t, host.String(), "stuck")
}

func TestRevealContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	host := newFakeHost(40, 10)
	host.onFrame = func(h *fakeHost) {
		if h.frames == 3 {
			cancel()
		}
	}

	err := Reveal(ctx, host, NewMessage("cancel me"), CellMetric{}, testOptions())
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, host.frames)
}

func TestRevealRejectsBadInput(t *testing.T) {
	host := newFakeHost(40, 10)

	err := Reveal(context.Background(), host, Message{}, CellMetric{}, testOptions())
	assert.ErrorIs(t, err, ErrEmptyMessage)

	opts := testOptions()
	opts.CharInterval = -time.Second
	err = Reveal(context.Background(), host, NewMessage("x"), CellMetric{}, opts)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	assert.Zero(t, host.frames)
}

func TestRevealPresentError(t *testing.T) {
	host := newFakeHost(40, 10)
	host.failAt = 2

	err := Reveal(context.Background(), host, NewMessage("x"), CellMetric{}, testOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "display gone")
	assert.True(t, strings.HasPrefix(err.Error(), "typewriter: present:"))
}

func TestRevealPrelude(t *testing.T) {
	opts := testOptions()
	opts.Prelude = true
	opts.FadeSteps = 51
	opts.FadeFPS = 30
	opts.FadeDelay = time.Second

	var backdrops int
	opts.Backdrop = func(dst Surface, _ time.Duration) {
		backdrops++
		dst.DrawText(0, 0, "BANNER", core.ColorYellow)
	}

	host := newFakeHost(40, 10)
	host.onFrame = func(h *fakeHost) {
		if h.frames == 1 {
			assert.NotContains(t, h.Row(0), "BANNER", "first fade step is opaque")
		}
		if h.frames == 51 {
			assert.Contains(t, h.Row(0), "BANNER", "last fade step is transparent")
		}
	}
	host.script = confirmAfter(3 * time.Second)

	err := Reveal(context.Background(), host, NewMessage("go"), CellMetric{}, opts)
	require.NoError(t, err)
	assert.Equal(t, 51, backdrops)

	// 51 frames at 30 fps plus the delay pass before typing starts.
	assert.GreaterOrEqual(t, host.Now(), 51*frameInterval(30)+time.Second)
}

func TestRevealPreludeQuit(t *testing.T) {
	opts := testOptions()
	opts.Prelude = true
	opts.FadeSteps = 51
	opts.FadeFPS = 30

	host := newFakeHost(40, 10)
	host.script = func(poll int, _ time.Duration) core.InputFrame {
		if poll == 3 {
			return input(core.ActionQuit)
		}
		return input()
	}

	err := Reveal(context.Background(), host, NewMessage("go"), CellMetric{}, opts)
	require.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, 2, host.frames)
}

func TestRevealPreludeHoldQuit(t *testing.T) {
	opts := testOptions()
	opts.Prelude = true
	opts.FadeSteps = 3
	opts.FadeFPS = 30
	opts.FadeDelay = time.Second

	fadeEnd := 3 * frameInterval(30)
	host := newFakeHost(40, 10)
	host.script = func(_ int, now time.Duration) core.InputFrame {
		if now >= fadeEnd+100*ms {
			return input(core.ActionQuit)
		}
		return input()
	}

	err := Reveal(context.Background(), host, NewMessage("go"), CellMetric{}, opts)
	require.ErrorIs(t, err, ErrQuit)
	assert.Equal(t, 3, host.frames, "no typing frame after quit")
	assert.Less(t, host.Now(), fadeEnd+opts.FadeDelay, "quit cuts the hold short")
}

func TestRevealMatchesMetricWidths(t *testing.T) {
	host := newFakeHost(20, 4)
	host.script = confirmAfter(2 * time.Second)

	err := Reveal(context.Background(), host, NewMessage("±±"), CellMetric{EastAsian: true}, testOptions())
	require.NoError(t, err)
	assert.True(t, host.EastAsian())
	assert.Equal(t, "±±", strings.TrimRight(host.Row(0), " "))
}

func TestRevealFollowsResize(t *testing.T) {
	host := newFakeHost(40, 10)
	host.onFrame = func(h *fakeHost) {
		if h.frames == 2 {
			h.Screen.Resize(6, 10)
		}
	}
	host.script = confirmAfter(2 * time.Second)

	err := Reveal(context.Background(), host, NewMessage("one two three"), CellMetric{}, testOptions())
	require.NoError(t, err)

	assert.Equal(t, "one", strings.TrimRight(host.Row(0), " "))
	assert.Equal(t, "two", strings.TrimRight(host.Row(1), " "))
	assert.Equal(t, "three", strings.TrimRight(host.Row(2), " "))
}

func TestBannerBackdrop(t *testing.T) {
	scr := core.NewScreen(30, 10)
	draw := BannerBackdrop("HOP", nil)

	draw(scr, 0)
	// y = 10/2 - int(10*0.2) = 3, x = (30-3)/2 = 13
	assert.Equal(t, "│ HOP │", strings.TrimSpace(scr.Row(3)))
	assert.Equal(t, "┌─────┐", strings.TrimSpace(scr.Row(2)))
	assert.Equal(t, core.ColorYellow, scr.GetCell(11, 2).Color)

	draw(scr, 300*ms)
	assert.Equal(t, core.ColorOrange, scr.GetCell(11, 2).Color)
}
