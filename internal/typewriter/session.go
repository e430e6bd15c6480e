package typewriter

import (
	"time"

	"github.com/vovakirdan/pixel-hopper/internal/core"
)

// Result is returned by Session.Step after each frame.
type Result struct {
	Shown    int  // Characters revealed so far
	Total    int  // Characters in the wrapped message
	Complete bool // Every character is revealed
	Done     bool // The reader confirmed a complete message
	Quit     bool // The reader asked to quit
}

// Session is one reveal of one message. It is driven by an external
// scheduler: call Begin once, then Step and Render every frame. The reveal
// count never decreases and saturates at the message length.
type Session struct {
	msg    Message
	metric Metric
	opts   Options

	width, height int
	lines         []string
	total         int

	start   time.Duration
	started bool
	shown   int
	skipped bool
	done    bool
	quit    bool
}

// NewSession validates the inputs and wraps msg for a surface of the given
// size.
func NewSession(msg Message, metric Metric, opts Options, width, height int) (*Session, error) {
	if msg.Empty() {
		return nil, ErrEmptyMessage
	}
	if opts.CharInterval < 0 {
		return nil, ErrInvalidInterval
	}
	if metric == nil {
		metric = CellMetric{EastAsian: opts.EastAsian}
	}

	s := &Session{
		msg:    msg,
		metric: metric,
		opts:   opts,
	}
	if err := s.layout(width, height); err != nil {
		return nil, err
	}
	return s, nil
}

// layout wraps the message for the given surface size.
func (s *Session) layout(width, height int) error {
	wrapWidth := s.opts.wrapWidth(width)
	if wrapWidth <= 0 {
		return ErrInvalidWidth
	}
	s.width, s.height = width, height
	s.lines = Wrap(s.msg, s.metric, wrapWidth)
	s.total = TotalChars(s.lines)
	return nil
}

// Resize re-wraps the message for a new surface size. Revealed characters
// stay revealed, except that the count is clamped to the new total.
// A size too small to wrap into keeps the previous layout.
func (s *Session) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	prevW, prevH := s.width, s.height
	if err := s.layout(width, height); err != nil {
		// Keep drawing with the old layout; the surface clips it.
		s.width, s.height = prevW, prevH
		return
	}
	s.shown = min(s.shown, s.total)
}

// Begin records the start timestamp. Step calls it implicitly on the first
// frame if the caller did not.
func (s *Session) Begin(now time.Duration) {
	s.start = now
	s.started = true
}

// elapsed returns the time since Begin.
func (s *Session) elapsed(now time.Duration) time.Duration {
	if !s.started {
		return 0
	}
	return now - s.start
}

// Step advances the reveal to time now and applies this frame's input.
// Quit always wins. Confirm finishes the session only once the complete
// message has been rendered; before that it is ignored, or finishes the
// typing when AllowSkip is set.
func (s *Session) Step(in core.InputFrame, now time.Duration) Result {
	if !s.started {
		s.Begin(now)
	}

	if in.Has(core.ActionQuit) {
		s.quit = true
		return s.result()
	}

	// Confirm counts only if the complete message was already on screen.
	wasComplete := s.Complete()
	if n := CharsToShow(s.elapsed(now), s.opts.CharInterval, s.total); n > s.shown {
		s.shown = n
	}

	if in.Has(core.ActionConfirm) {
		switch {
		case wasComplete:
			s.done = true
		case s.opts.AllowSkip && !s.Complete():
			s.shown = s.total
			s.skipped = true
		}
	}

	return s.result()
}

func (s *Session) result() Result {
	return Result{
		Shown:    s.shown,
		Total:    s.total,
		Complete: s.Complete(),
		Done:     s.done,
		Quit:     s.quit,
	}
}

// Render draws the current frame: the revealed text, the blinking cursor
// while typing and the blinking prompt once complete.
func (s *Session) Render(dst Surface, now time.Duration) {
	MatchWidths(dst, s.metric)
	dst.Clear()

	elapsed := s.elapsed(now)
	blink := BlinkOn(elapsed, s.opts.BlinkPeriod)
	x0 := s.opts.marginX(s.width)
	y0 := s.opts.marginY(s.height)
	lineStep := s.metric.LineHeight() + s.opts.LineSpacing

	frame := Progress(s.lines, s.shown)
	for i, line := range frame.Lines {
		dst.DrawText(x0, y0+i*lineStep, line, s.opts.TextColor)
	}

	if !s.Complete() {
		if blink {
			typed := ""
			if len(frame.Lines) > 0 {
				typed = frame.Lines[frame.CursorLine]
			}
			x := x0 + s.metric.Width(typed)
			dst.DrawText(x, y0+frame.CursorLine*lineStep, s.opts.CursorGlyph, s.opts.CursorColor)
		}
		return
	}

	prompt := s.opts.Prompt
	if blink {
		prompt += s.opts.PromptCursor
	}
	x := (s.width - s.metric.Width(prompt)) / 2
	y := s.height - 1 - int(float64(s.height)*0.05)
	dst.DrawText(max(x, 0), max(y, 0), prompt, s.opts.PromptColor)
}

// Lines returns the wrapped lines of the message.
func (s *Session) Lines() []string {
	return s.lines
}

// Total returns the number of characters in the wrapped message.
func (s *Session) Total() int {
	return s.total
}

// Shown returns the number of revealed characters.
func (s *Session) Shown() int {
	return s.shown
}

// Complete reports whether every character is revealed.
func (s *Session) Complete() bool {
	return s.shown >= s.total
}

// Skipped reports whether the reader skipped the typing.
func (s *Session) Skipped() bool {
	return s.skipped
}

// Done reports whether the reader confirmed the complete message.
func (s *Session) Done() bool {
	return s.done
}
