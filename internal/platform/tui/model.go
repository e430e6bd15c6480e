package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pixel-hopper/internal/core"
	"github.com/vovakirdan/pixel-hopper/internal/script"
	"github.com/vovakirdan/pixel-hopper/internal/storage"
	"github.com/vovakirdan/pixel-hopper/internal/typewriter"
)

// helpHeight is the number of rows below the screen used by the help bar.
const helpHeight = 1

type phase int

const (
	phaseFade   phase = iota // Overlay fading from opaque to transparent
	phaseHold                // Backdrop shown, waiting before typing
	phaseTyping              // Session running
)

// RevealConfig bundles what a reveal needs.
type RevealConfig struct {
	Script    *script.Script
	Options   typewriter.Options
	Metric    typewriter.Metric // Defaults to terminal cells
	Store     *storage.Store    // Optional reading history
	SessionID string            // Groups saved reads, generated if empty
	Runtime   core.RuntimeConfig
}

// RevealModel is the Bubble Tea model that types one script.
// It drives a typewriter.Session from tick messages: the fade prelude runs
// at the prelude rate, then typing runs at the main frame rate.
type RevealModel struct {
	script    *script.Script
	opts      typewriter.Options
	session   *typewriter.Session
	screen    *core.Screen
	store     *storage.Store
	sessionID string
	keys      KeyMap
	help      help.Model
	input     core.InputFrame

	clock       clock
	now         time.Duration
	phase       phase
	fadeStep    int
	holdUntil   time.Duration
	begun       bool
	typingStart time.Duration

	quitting bool
	done     bool
}

// NewRevealModel creates a reveal model for the given script.
func NewRevealModel(cfg RevealConfig) (RevealModel, error) {
	if cfg.Script == nil {
		return RevealModel{}, fmt.Errorf("tui: no script to reveal")
	}
	if cfg.Metric == nil {
		cfg.Metric = typewriter.CellMetric{EastAsian: cfg.Options.EastAsian}
	}
	if cfg.SessionID == "" {
		cfg.SessionID = storage.NewSessionID()
	}

	opts := cfg.Options
	if opts.Backdrop == nil && cfg.Script.Banner != "" {
		opts.Backdrop = typewriter.BannerBackdrop(cfg.Script.Banner, cfg.Metric)
	}

	w, h := cfg.Runtime.ScreenW, max(cfg.Runtime.ScreenH-helpHeight, 1)
	session, err := typewriter.NewSession(cfg.Script.Message(), cfg.Metric, opts, w, h)
	if err != nil {
		return RevealModel{}, fmt.Errorf("tui: %s: %w", cfg.Script.ID, err)
	}

	screen := core.NewScreen(w, h)
	typewriter.MatchWidths(screen, cfg.Metric)

	m := RevealModel{
		script:    cfg.Script,
		opts:      opts,
		session:   session,
		screen:    screen,
		store:     cfg.Store,
		sessionID: cfg.SessionID,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		input:     core.NewInputFrame(),
		phase:     phaseTyping,
	}
	if opts.Prelude && opts.FadeSteps > 0 {
		m.phase = phaseFade
	}
	return m, nil
}

// Init starts the tick loop.
func (m RevealModel) Init() tea.Cmd {
	return tickCmd(m.tickRate())
}

func (m RevealModel) tickRate() int {
	if m.phase == phaseFade {
		return m.opts.FadeFPS
	}
	return m.opts.FPS
}

// Update handles messages and updates the model state.
func (m RevealModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		w, h := msg.Width, max(msg.Height-helpHeight, 1)
		m.screen.Resize(w, h)
		m.session.Resize(w, h)
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Quit ends the program at once;
// confirm is applied on the next tick.
func (m RevealModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionConfirm:
		m.input.Set(core.ActionConfirm)
	}

	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
	}
	return m, nil
}

// handleTick advances the prelude or the session by one frame.
func (m RevealModel) handleTick(t time.Time) (tea.Model, tea.Cmd) {
	if m.quitting || m.done {
		return m, nil
	}
	m.now = m.clock.since(t)

	switch m.phase {
	case phaseFade:
		m.fadeStep++
		if m.fadeStep >= m.opts.FadeSteps {
			m.phase = phaseHold
			m.holdUntil = m.now + m.opts.FadeDelay
		}

	case phaseHold:
		if m.now >= m.holdUntil {
			m.phase = phaseTyping
		}

	case phaseTyping:
		if !m.begun {
			m.session.Begin(m.now)
			m.typingStart = m.now
			m.begun = true
		}
		res := m.session.Step(m.input, m.now)
		if res.Done {
			m.done = true
			m.saveRead()
			m.input.Clear()
			return m, tea.Quit
		}
	}

	// Input outside the typing phase is dropped.
	m.input.Clear()
	return m, tickCmd(m.tickRate())
}

// saveRead records the finished read, best effort.
func (m RevealModel) saveRead() {
	if m.store == nil {
		return
	}
	//nolint:errcheck // Best-effort save, the reveal is over regardless
	m.store.SaveRead(storage.Read{
		SessionID: m.sessionID,
		ScriptID:  m.script.ID,
		Chars:     m.session.Total(),
		Elapsed:   m.now - m.typingStart,
		Skipped:   m.session.Skipped(),
	})
}

// draw renders the current phase into the screen buffer.
func (m RevealModel) draw() {
	switch m.phase {
	case phaseFade, phaseHold:
		m.screen.Clear()
		if m.opts.Backdrop != nil {
			m.opts.Backdrop(m.screen, m.now)
		}
		if m.phase == phaseFade {
			m.screen.Overlay(typewriter.FadeAlpha(m.fadeStep, m.opts.FadeSteps))
		}
	case phaseTyping:
		m.session.Render(m.screen, m.now)
	}
}

// saveScreenshot saves the current screen to a file.
func (m RevealModel) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".hopper", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.script.ID, timestamp))

	//nolint:errcheck // Best-effort save, the reveal continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m RevealModel) View() string {
	if m.quitting || m.done {
		return ""
	}

	m.draw()

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Done reports whether the reader confirmed the complete message.
func (m RevealModel) Done() bool {
	return m.done
}

// Quitting reports whether the reader asked to quit.
func (m RevealModel) Quitting() bool {
	return m.quitting
}

// Session returns the underlying reveal session.
func (m RevealModel) Session() *typewriter.Session {
	return m.session
}

// RunReveal runs a reveal in the terminal. It returns typewriter.ErrQuit
// when the reader quits.
func RunReveal(cfg RevealConfig) error {
	model, err := NewRevealModel(cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}

	if m, ok := final.(RevealModel); ok && m.Quitting() {
		return typewriter.ErrQuit
	}
	return nil
}
