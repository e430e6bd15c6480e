// Package term runs the blocking reveal loop directly on a raw terminal,
// without a Bubble Tea program.
package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/input"
	xterm "golang.org/x/term"

	"github.com/vovakirdan/pixel-hopper/internal/core"
	"github.com/vovakirdan/pixel-hopper/internal/platform/tui"
	"github.com/vovakirdan/pixel-hopper/internal/typewriter"
)

// ErrNotTerminal is returned when the input is not a terminal.
var ErrNotTerminal = errors.New("term: input is not a terminal")

const keyBuffer = 64

// Host is a typewriter.Host on a raw terminal. Keys are read by a
// background goroutine and collected on every Poll.
type Host struct {
	*core.Screen
	*typewriter.WallTicker

	out    *bufio.Writer
	keys   chan core.Action
	reader *input.Reader
	size   func() (int, int, error)

	restore func() error
}

// Open switches the terminal to raw mode and the alternate screen.
// Call Close to restore it.
func Open(in, out *os.File) (*Host, error) {
	fd := int(in.Fd())
	if !xterm.IsTerminal(fd) {
		return nil, ErrNotTerminal
	}

	outFd := int(out.Fd())
	size := func() (int, int, error) { return xterm.GetSize(outFd) }
	w, h, err := size()
	if err != nil {
		return nil, fmt.Errorf("term: size: %w", err)
	}

	state, err := xterm.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("term: raw mode: %w", err)
	}
	restore := func() error { return xterm.Restore(fd, state) }

	host, err := newHost(in, out, w, h)
	if err != nil {
		restore() //nolint:errcheck // Already failing
		return nil, err
	}
	host.size = size
	host.restore = restore

	host.out.WriteString(ansi.SetModeAltScreenSaveCursor + ansi.HideCursor)
	if err := host.out.Flush(); err != nil {
		host.Close() //nolint:errcheck // Already failing
		return nil, fmt.Errorf("term: %w", err)
	}
	return host, nil
}

// newHost creates a host reading keys from in and drawing to out.
func newHost(in io.Reader, out io.Writer, w, h int) (*Host, error) {
	reader, err := input.NewReader(in, os.Getenv("TERM"), 0)
	if err != nil {
		return nil, fmt.Errorf("term: input: %w", err)
	}

	host := &Host{
		Screen:     core.NewScreen(w, h),
		WallTicker: typewriter.NewWallTicker(),
		out:        bufio.NewWriter(out),
		keys:       make(chan core.Action, keyBuffer),
		reader:     reader,
	}
	go host.readKeys()
	return host, nil
}

// readKeys forwards key presses until the reader fails or is canceled.
func (h *Host) readKeys() {
	for {
		events, err := h.reader.ReadEvents()
		for _, a := range keyActions(events) {
			select {
			case h.keys <- a:
			default:
				// Nobody is polling fast enough; drop the press.
			}
		}
		if err != nil {
			return
		}
	}
}

// Poll returns the keys pressed since the previous poll and follows
// terminal size changes.
func (h *Host) Poll() core.InputFrame {
	frame := core.NewInputFrame()
drain:
	for {
		select {
		case a := <-h.keys:
			frame.Set(a)
		default:
			break drain
		}
	}

	if h.size != nil {
		if w, ht, err := h.size(); err == nil {
			h.Resize(w, ht)
		}
	}
	return frame
}

// Present draws the screen from the top left corner.
func (h *Host) Present() error {
	h.out.WriteString(ansi.CursorHomePosition)
	h.out.WriteString(strings.ReplaceAll(tui.RenderScreen(h.Screen), "\n", "\r\n"))
	return h.out.Flush()
}

// Close leaves the alternate screen, stops the key reader and restores
// the terminal mode.
func (h *Host) Close() error {
	h.reader.Cancel()
	h.out.WriteString(ansi.ShowCursor + ansi.ResetModeAltScreenSaveCursor)
	err := errors.Join(h.out.Flush(), h.reader.Close())
	if h.restore != nil {
		err = errors.Join(err, h.restore())
	}
	return err
}

// keyActions maps key presses to actions. Enter and space confirm;
// q, Ctrl+C and Esc quit. Everything else, arrows and Alt combos
// included, is ignored.
func keyActions(events []input.Event) []core.Action {
	var actions []core.Action
	for _, ev := range events {
		k, ok := ev.(input.KeyPressEvent)
		if !ok {
			continue
		}
		if a := keyAction(k.Key()); a != core.ActionNone {
			actions = append(actions, a)
		}
	}
	return actions
}

func keyAction(k input.Key) core.Action {
	switch {
	case k.Mod == 0 && (k.Code == input.KeyEnter || k.Code == input.KeySpace):
		return core.ActionConfirm
	case k.Mod == input.ModCtrl && k.Code == 'j': // Line feed
		return core.ActionConfirm
	case k.Mod == 0 && k.Code == input.KeyEscape:
		return core.ActionQuit
	case k.Mod == input.ModCtrl && k.Code == 'c':
		return core.ActionQuit
	case k.Mod&^input.ModShift == 0 && k.Code == 'q':
		return core.ActionQuit
	}
	return core.ActionNone
}
