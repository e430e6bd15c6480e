package typewriter

import (
	"context"
	"fmt"

	"github.com/vovakirdan/pixel-hopper/internal/core"
)

// FadeAlpha returns the overlay opacity for a prelude step. It runs
// linearly from fully opaque at step 0 to transparent at the last step.
func FadeAlpha(step, steps int) float64 {
	if steps <= 1 {
		return 0
	}
	if step <= 0 {
		return 1
	}
	if step >= steps-1 {
		return 0
	}
	return 1 - float64(step)/float64(steps-1)
}

// playPrelude fades the backdrop in from black and then holds it for the
// configured delay before typing starts. Quit aborts with ErrQuit at any
// point, the hold included.
func playPrelude(ctx context.Context, host Host, opts Options) error {
	for step := 0; step < opts.FadeSteps; step++ {
		if host.Poll().Has(core.ActionQuit) {
			return ErrQuit
		}

		host.Clear()
		if opts.Backdrop != nil {
			opts.Backdrop(host, host.Now())
		}
		host.Overlay(FadeAlpha(step, opts.FadeSteps))
		if err := host.Present(); err != nil {
			return fmt.Errorf("typewriter: present: %w", err)
		}
		if err := host.Wait(ctx, opts.FadeFPS); err != nil {
			return err
		}
	}

	// Hold the faded-in backdrop, one frame at a time so quit still works.
	step := frameInterval(opts.FadeFPS)
	for left := opts.FadeDelay; left > 0; left -= step {
		if host.Poll().Has(core.ActionQuit) {
			return ErrQuit
		}
		if err := host.Sleep(ctx, min(step, left)); err != nil {
			return err
		}
	}
	return nil
}
