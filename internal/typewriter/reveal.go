package typewriter

import (
	"context"
	"fmt"
)

// Reveal types msg onto the host's display and blocks until the reader
// confirms the complete message. It returns nil on confirmation, ErrQuit
// when the reader asks to quit and ctx.Err() when ctx is cancelled.
//
// Every frame polls input, advances the reveal, draws and presents, then
// yields to the host ticker. The layout is computed once and again only
// when the display size changes.
func Reveal(ctx context.Context, host Host, msg Message, metric Metric, opts Options) error {
	if msg.Empty() {
		return ErrEmptyMessage
	}
	if opts.CharInterval < 0 {
		return ErrInvalidInterval
	}

	w, h := host.Size()
	sess, err := NewSession(msg, metric, opts, w, h)
	if err != nil {
		return err
	}

	MatchWidths(host, sess.metric)
	if opts.Prelude {
		if err := playPrelude(ctx, host, opts); err != nil {
			return err
		}
	}

	sess.Begin(host.Now())
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		res := sess.Step(host.Poll(), host.Now())
		if res.Quit {
			return ErrQuit
		}
		if res.Done {
			return nil
		}

		if nw, nh := host.Size(); nw != w || nh != h {
			w, h = nw, nh
			sess.Resize(w, h)
		}

		sess.Render(host, host.Now())
		if err := host.Present(); err != nil {
			return fmt.Errorf("typewriter: present: %w", err)
		}
		if err := host.Wait(ctx, opts.FPS); err != nil {
			return err
		}
	}
}
