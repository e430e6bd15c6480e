package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pixel-hopper/internal/storage"
)

// History layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show script list sidebar
	sidebarWidth       = 20  // Width of script list sidebar
	maxReads           = 100 // Max reads to load
)

// HistoryEntry is one script selectable in the history view.
type HistoryEntry struct {
	ID    string
	Title string
}

// HistoryKeyMap defines the key bindings for the history view.
type HistoryKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextScript key.Binding
	PrevScript key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k HistoryKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextScript, k.PrevScript, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k HistoryKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextScript, k.PrevScript},
		{k.Quit},
	}
}

// DefaultHistoryKeyMap returns default key bindings.
func DefaultHistoryKeyMap() HistoryKeyMap {
	return HistoryKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextScript: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next script"),
		),
		PrevScript: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev script"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// HistoryModel is the Bubble Tea model for browsing reading history.
type HistoryModel struct {
	scripts     []HistoryEntry
	cursor      int
	store       *storage.Store
	reads       []storage.Read
	stats       *storage.ReadStats
	table       table.Model
	help        help.Model
	keys        HistoryKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewHistoryModel creates a history model showing the given scripts.
func NewHistoryModel(store *storage.Store, scripts []HistoryEntry, width, height int) HistoryModel {
	h := help.New()
	h.ShowAll = false

	m := HistoryModel{
		scripts:     scripts,
		store:       store,
		keys:        DefaultHistoryKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	if len(m.scripts) > 0 {
		m.loadReads(m.scripts[0].ID)
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *HistoryModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Time", Width: 9},
		{Title: "Chars", Width: 6},
		{Title: "Skip", Width: 5},
		{Title: "Date", Width: 14},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	if rest := tableWidth - 32; rest > 14 {
		columns[4].Width = min(rest, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-10, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadReads loads the history of the given script.
func (m *HistoryModel) loadReads(scriptID string) {
	m.reads, m.stats = nil, nil
	if m.store != nil {
		if reads, err := m.store.RecentReads(scriptID, maxReads); err == nil {
			m.reads = reads
		}
		if stats, err := m.store.Stats(scriptID); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the loaded reads.
func (m *HistoryModel) updateTableRows() {
	rows := make([]table.Row, len(m.reads))
	for i, r := range m.reads {
		skipped := ""
		if r.Skipped {
			skipped = "yes"
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			formatElapsed(r.Elapsed),
			fmt.Sprintf("%d", r.Chars),
			skipped,
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// formatElapsed formats a read time with tenths of a second.
func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// Init initializes the history model.
func (m HistoryModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the history view.
func (m HistoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextScript):
			if len(m.scripts) > 0 {
				m.cursor = (m.cursor + 1) % len(m.scripts)
				m.loadReads(m.scripts[m.cursor].ID)
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevScript):
			if len(m.scripts) > 0 {
				m.cursor = (m.cursor - 1 + len(m.scripts)) % len(m.scripts)
				m.loadReads(m.scripts[m.cursor].ID)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the history view.
func (m HistoryModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))

	title := "READING HISTORY"
	if len(m.scripts) > 0 {
		title = fmt.Sprintf("READING HISTORY - %s", m.scripts[m.cursor].Title)
	}
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n")
	b.WriteString(centerText(m.statsLine(), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the selected script's reads.
func (m HistoryModel) statsLine() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	if m.stats == nil || m.stats.Reads == 0 {
		return style.Render("no reads yet")
	}
	line := fmt.Sprintf("%d reads · avg %s", m.stats.Reads, formatElapsed(m.stats.AvgElapsed))
	if m.stats.BestElapsed > 0 {
		line += " · best " + formatElapsed(m.stats.BestElapsed)
	}
	if m.stats.Skipped > 0 {
		line += fmt.Sprintf(" · %d skipped", m.stats.Skipped)
	}
	return style.Render(line)
}

// renderWideLayout renders the history with a sidebar for script selection.
func (m HistoryModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Scripts\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, s := range m.scripts {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + truncate(s.Title, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders script tabs above the table.
func (m HistoryModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(m.scripts))
	for i, s := range m.scripts {
		name := truncate(s.Title, 10)
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 && len(m.scripts) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.scripts[m.cursor].Title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))

	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m HistoryModel) renderTableContent() string {
	if len(m.reads) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No reads recorded yet.\nPlay a script to start the history!")
	}

	return m.table.View()
}

// Selected returns the script currently shown.
func (m HistoryModel) Selected() (HistoryEntry, bool) {
	if len(m.scripts) == 0 {
		return HistoryEntry{}, false
	}
	return m.scripts[m.cursor], true
}

// centerText centers text within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	return strings.Repeat(" ", (width-textWidth)/2) + text
}

// truncate shortens text to at most n cells, marking the cut with a dot.
func truncate(text string, n int) string {
	r := []rune(text)
	if len(r) <= n {
		return text
	}
	return string(r[:n-1]) + "."
}

// RunHistory runs the history browser.
func RunHistory(store *storage.Store, scripts []HistoryEntry, width, height int) error {
	p := tea.NewProgram(NewHistoryModel(store, scripts, width, height), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
