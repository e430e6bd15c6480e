package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pixel-hopper/internal/storage"
)

var historyScripts = []HistoryEntry{
	{ID: "solo", Title: "One Player"},
	{ID: "duo", Title: "Two Players"},
}

func historyStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	for _, r := range []storage.Read{
		{ScriptID: "solo", Chars: 120, Elapsed: 4800 * time.Millisecond},
		{ScriptID: "solo", Chars: 120, Elapsed: 1200 * time.Millisecond, Skipped: true},
	} {
		_, err := store.SaveRead(r)
		require.NoError(t, err)
	}
	return store
}

func historyUpdate(t *testing.T, m HistoryModel, msg tea.Msg) (HistoryModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	hm, ok := next.(HistoryModel)
	require.True(t, ok)
	return hm, cmd
}

func TestHistoryModelShowsReads(t *testing.T) {
	m := NewHistoryModel(historyStore(t), historyScripts, 100, 30)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "READING HISTORY - One Player")
	assert.Contains(t, view, "2 reads")
	assert.Contains(t, view, "1 skipped")
	assert.Contains(t, view, "4.8s")
	assert.Contains(t, view, "Scripts", "wide layout has a sidebar")
}

func TestHistoryModelSwitchScripts(t *testing.T) {
	m := NewHistoryModel(historyStore(t), historyScripts, 100, 30)

	m, _ = historyUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	sel, ok := m.Selected()
	require.True(t, ok)
	assert.Equal(t, "duo", sel.ID)
	assert.Contains(t, ansi.Strip(m.View()), "No reads recorded yet")

	m, _ = historyUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	sel, _ = m.Selected()
	assert.Equal(t, "solo", sel.ID)

	m, _ = historyUpdate(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	sel, _ = m.Selected()
	assert.Equal(t, "duo", sel.ID)
}

func TestHistoryModelNarrowLayout(t *testing.T) {
	m := NewHistoryModel(historyStore(t), historyScripts, 100, 30)
	m, _ = historyUpdate(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})

	view := ansi.Strip(m.View())
	assert.NotContains(t, view, "Scripts")
	assert.Contains(t, view, "One Player")
}

func TestHistoryModelWithoutStore(t *testing.T) {
	m := NewHistoryModel(nil, historyScripts, 100, 30)
	assert.Contains(t, ansi.Strip(m.View()), "no reads yet")

	m, cmd := historyUpdate(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	assert.True(t, isQuit(cmd))
	assert.Empty(t, m.View())
}

func TestHistoryModelNoScripts(t *testing.T) {
	m := NewHistoryModel(nil, nil, 80, 24)
	_, ok := m.Selected()
	assert.False(t, ok)
	assert.Contains(t, ansi.Strip(m.View()), "READING HISTORY")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Two P.", truncate("Two Players", 6))
}
