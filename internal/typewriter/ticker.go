package typewriter

import (
	"context"
	"time"
)

const defaultFPS = 60

// frameInterval returns the duration of one frame at fps.
func frameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = defaultFPS
	}
	return time.Second / time.Duration(fps)
}

// WallTicker paces frames against the real clock.
type WallTicker struct {
	start     time.Time
	lastFrame time.Time
}

// NewWallTicker creates a ticker whose time starts now.
func NewWallTicker() *WallTicker {
	now := time.Now()
	return &WallTicker{start: now, lastFrame: now}
}

// Now returns the time since the ticker was created.
func (t *WallTicker) Now() time.Duration {
	return time.Since(t.start)
}

// Wait sleeps until one frame interval after the previous frame boundary.
// A frame that overran its budget does not accumulate debt.
func (t *WallTicker) Wait(ctx context.Context, fps int) error {
	next := t.lastFrame.Add(frameInterval(fps))
	if now := time.Now(); next.Before(now) {
		next = now
	}
	if err := sleepCtx(ctx, time.Until(next)); err != nil {
		return err
	}
	t.lastFrame = next
	return nil
}

// Sleep blocks for d or until ctx is done.
func (t *WallTicker) Sleep(ctx context.Context, d time.Duration) error {
	if err := sleepCtx(ctx, d); err != nil {
		return err
	}
	t.lastFrame = time.Now()
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// StepTicker simulates time: every Wait advances the clock by exactly one
// frame and every Sleep by its duration, without blocking. It makes a
// reveal deterministic for snapshots and tests.
type StepTicker struct {
	now time.Duration
}

// NewStepTicker creates a simulated ticker at time zero.
func NewStepTicker() *StepTicker {
	return &StepTicker{}
}

// Now returns the simulated time.
func (t *StepTicker) Now() time.Duration {
	return t.now
}

// Wait advances the simulated time by one frame.
func (t *StepTicker) Wait(ctx context.Context, fps int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.now += frameInterval(fps)
	return nil
}

// Sleep advances the simulated time by d.
func (t *StepTicker) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d > 0 {
		t.now += d
	}
	return nil
}

// Advance moves the simulated time forward by d.
func (t *StepTicker) Advance(d time.Duration) {
	t.now += d
}
