package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pixel-hopper/internal/core"
	"github.com/vovakirdan/pixel-hopper/internal/spew"
	"github.com/vovakirdan/pixel-hopper/internal/typewriter"
)

// spewBlink is the toggle period of the spew cursor.
const spewBlink = 300 * time.Millisecond

// SpewModel types an endless fake log into a scrolling green terminal.
type SpewModel struct {
	term     *spew.Terminal
	screen   *core.Screen
	keys     KeyMap
	fps      int
	clock    clock
	now      time.Duration
	quitting bool
}

// NewSpewModel creates a spew model with a deterministic seed.
func NewSpewModel(seed uint64, cfg core.RuntimeConfig) SpewModel {
	return SpewModel{
		term:   spew.NewTerminal(spew.NewGenerator(seed), 0),
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		keys:   DefaultKeyMap(),
		fps:    cfg.TickRate,
	}
}

// Init starts the tick loop.
func (m SpewModel) Init() tea.Cmd {
	return tickCmd(m.fps)
}

// Update handles messages.
func (m SpewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.keys.Action(msg) == core.ActionQuit {
			m.quitting = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
	case TickMsg:
		if m.quitting {
			return m, nil
		}
		m.now = m.clock.since(time.Time(msg))
		m.term.Advance(m.now)
		return m, tickCmd(m.fps)
	}
	return m, nil
}

// draw wraps the terminal lines to the screen and keeps the newest ones
// in view.
func (m SpewModel) draw() {
	m.screen.Clear()
	w, h := m.screen.Size()
	x0 := int(float64(w) * 0.02)
	y0 := int(float64(h) * 0.05)
	width := w - 2*x0
	rows := h - 2*y0
	if width <= 0 || rows <= 0 {
		return
	}

	var lines []string
	for _, l := range m.term.Lines() {
		lines = append(lines, typewriter.Wrap(typewriter.NewMessage(l), typewriter.CellMetric{}, width)...)
	}
	if len(lines) > rows {
		lines = lines[len(lines)-rows:]
	}

	for i, l := range lines {
		m.screen.DrawText(x0, y0+i, l, core.ColorBrightGreen)
	}

	if len(lines) > 0 && typewriter.BlinkOn(m.now, spewBlink) {
		last := len(lines) - 1
		x := x0 + typewriter.CellMetric{}.Width(lines[last])
		m.screen.DrawText(x, y0+last, "█", core.ColorGreen)
	}
}

// View renders the terminal.
func (m SpewModel) View() string {
	if m.quitting {
		return ""
	}
	m.draw()
	return RenderScreen(m.screen)
}

// RunSpew runs the spew screen until the user quits.
func RunSpew(seed uint64, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(NewSpewModel(seed, cfg), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
