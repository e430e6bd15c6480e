package tui

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pixel-hopper/internal/core"
	"github.com/vovakirdan/pixel-hopper/internal/script"
	"github.com/vovakirdan/pixel-hopper/internal/storage"
	"github.com/vovakirdan/pixel-hopper/internal/typewriter"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func testScript(paragraphs ...string) *script.Script {
	return &script.Script{ID: "greeting", Title: "Greeting", Players: 1, Paragraphs: paragraphs}
}

func testRevealOptions() typewriter.Options {
	opts := typewriter.DefaultOptions()
	opts.CharInterval = 10 * time.Millisecond
	opts.MarginX = 0
	opts.MarginY = 0
	opts.Prelude = false
	opts.Prompt = "PRESS ENTER"
	opts.PromptCursor = "_"
	return opts
}

func newTestReveal(t *testing.T, cfg RevealConfig) RevealModel {
	t.Helper()
	if cfg.Script == nil {
		cfg.Script = testScript("Hi")
	}
	if cfg.Runtime.ScreenW == 0 {
		cfg.Runtime = core.RuntimeConfig{ScreenW: 20, ScreenH: 6, TickRate: 60}
	}
	m, err := NewRevealModel(cfg)
	require.NoError(t, err)
	return m
}

func update(t *testing.T, m RevealModel, msg tea.Msg) (RevealModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	rm, ok := next.(RevealModel)
	require.True(t, ok)
	return rm, cmd
}

func tickAt(d time.Duration) TickMsg {
	return TickMsg(epoch.Add(d))
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func enterKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyEnter}
}

func TestNewRevealModelErrors(t *testing.T) {
	_, err := NewRevealModel(RevealConfig{})
	assert.Error(t, err)

	_, err = NewRevealModel(RevealConfig{
		Script:  testScript("   "),
		Options: testRevealOptions(),
		Runtime: core.RuntimeConfig{ScreenW: 20, ScreenH: 6},
	})
	assert.ErrorIs(t, err, typewriter.ErrEmptyMessage)
}

func TestRevealModelPreludePhases(t *testing.T) {
	opts := testRevealOptions()
	opts.Prelude = true
	opts.FadeSteps = 3
	opts.FadeDelay = 100 * time.Millisecond

	m := newTestReveal(t, RevealConfig{Options: opts})
	require.Equal(t, phaseFade, m.phase)

	m, _ = update(t, m, tickAt(0))
	m, _ = update(t, m, tickAt(10*time.Millisecond))
	assert.Equal(t, phaseFade, m.phase)
	m, _ = update(t, m, tickAt(20*time.Millisecond))
	assert.Equal(t, phaseHold, m.phase)

	m, _ = update(t, m, tickAt(60*time.Millisecond))
	assert.Equal(t, phaseHold, m.phase)
	m, _ = update(t, m, tickAt(120*time.Millisecond))
	assert.Equal(t, phaseTyping, m.phase)

	// Typing starts from the first typing frame, not from the program start.
	m, _ = update(t, m, tickAt(130*time.Millisecond))
	assert.Equal(t, 0, m.Session().Shown())
	m, _ = update(t, m, tickAt(140*time.Millisecond))
	assert.Equal(t, 1, m.Session().Shown())
}

func TestRevealModelConfirmOnlyAfterComplete(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	m := newTestReveal(t, RevealConfig{
		Options:   testRevealOptions(),
		Store:     store,
		SessionID: "session-1",
	})

	m, _ = update(t, m, tickAt(0))
	m, _ = update(t, m, enterKey())
	m, cmd := update(t, m, tickAt(5*time.Millisecond))
	assert.False(t, m.Done(), "confirm during typing is ignored")
	assert.False(t, isQuit(cmd))

	m, _ = update(t, m, tickAt(20*time.Millisecond))
	require.True(t, m.Session().Complete())
	assert.Contains(t, m.View(), "PRESS ENTER")

	m, _ = update(t, m, enterKey())
	m, cmd = update(t, m, tickAt(30*time.Millisecond))
	assert.True(t, m.Done())
	assert.True(t, isQuit(cmd))
	assert.Empty(t, m.View())

	reads, err := store.RecentReads("greeting", 0)
	require.NoError(t, err)
	require.Len(t, reads, 1)
	assert.Equal(t, "session-1", reads[0].SessionID)
	assert.Equal(t, 2, reads[0].Chars)
	assert.Equal(t, 30*time.Millisecond, reads[0].Elapsed)
	assert.False(t, reads[0].Skipped)
}

func TestRevealModelSkip(t *testing.T) {
	opts := testRevealOptions()
	opts.AllowSkip = true
	m := newTestReveal(t, RevealConfig{Script: testScript("A longer line"), Options: opts})

	m, _ = update(t, m, tickAt(0))
	m, _ = update(t, m, tickAt(10*time.Millisecond))
	m, _ = update(t, m, enterKey())
	m, _ = update(t, m, tickAt(20*time.Millisecond))

	assert.True(t, m.Session().Complete())
	assert.True(t, m.Session().Skipped())
	assert.False(t, m.Done())
}

func TestRevealModelQuit(t *testing.T) {
	for _, k := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		t.Run(k.String(), func(t *testing.T) {
			m := newTestReveal(t, RevealConfig{Options: testRevealOptions()})
			m, _ = update(t, m, tickAt(0))

			m, cmd := update(t, m, k)
			assert.True(t, m.Quitting())
			assert.True(t, isQuit(cmd))
			assert.Empty(t, m.View())

			// Ticks after quitting are ignored.
			m, cmd = update(t, m, tickAt(time.Second))
			assert.Nil(t, cmd)
			assert.Equal(t, 0, m.Session().Shown())
		})
	}
}

func TestRevealModelView(t *testing.T) {
	opts := testRevealOptions()
	opts.CursorGlyph = "#"
	opts.BlinkPeriod = 0
	m := newTestReveal(t, RevealConfig{Script: testScript("Hello"), Options: opts})

	m, _ = update(t, m, tickAt(0))
	m, _ = update(t, m, tickAt(30*time.Millisecond))

	view := m.View()
	assert.Contains(t, view, "Hel#")
	assert.Contains(t, view, "continue")
	assert.Len(t, strings.Split(view, "\n"), 6, "screen rows plus the help bar")
}

func TestRevealModelWindowSize(t *testing.T) {
	m := newTestReveal(t, RevealConfig{
		Script:  testScript("one two three four"),
		Options: testRevealOptions(),
	})
	assert.Equal(t, []string{"one two three four"}, m.Session().Lines())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 9, Height: 8})
	w, h := m.screen.Size()
	assert.Equal(t, 9, w)
	assert.Equal(t, 7, h)
	assert.Equal(t, []string{"one two", "three", "four"}, m.Session().Lines())
}

func TestRevealModelBannerBackdrop(t *testing.T) {
	sc := testScript("Hi")
	sc.Banner = "HOP"
	opts := testRevealOptions()
	opts.Prelude = true
	opts.FadeSteps = 2

	m := newTestReveal(t, RevealConfig{Script: sc, Options: opts, Runtime: core.RuntimeConfig{ScreenW: 30, ScreenH: 11}})
	m, _ = update(t, m, tickAt(0))
	m, _ = update(t, m, tickAt(10*time.Millisecond))
	require.Equal(t, phaseHold, m.phase)

	assert.Contains(t, m.View(), "HOP")
}

func TestRevealModelProgram(t *testing.T) {
	opts := testRevealOptions()
	opts.CharInterval = 0
	m := newTestReveal(t, RevealConfig{
		Script:  testScript("Welcome aboard"),
		Options: opts,
		Runtime: core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60},
	})

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(40, 10))

	teatest.WaitFor(t, tm.Output(), func(out []byte) bool {
		return bytes.Contains(out, []byte("Welcome aboard")) &&
			bytes.Contains(out, []byte("PRESS ENTER"))
	}, teatest.WithDuration(5*time.Second))

	tm.Send(enterKey())

	fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	final, ok := fm.(RevealModel)
	require.True(t, ok)
	assert.True(t, final.Done())
	assert.False(t, final.Quitting())
}

func TestRevealModelProgramQuit(t *testing.T) {
	m := newTestReveal(t, RevealConfig{
		Script:  testScript("A message that takes a while to type"),
		Options: testRevealOptions(),
		Runtime: core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60},
	})

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(40, 10))
	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	fm := tm.FinalModel(t, teatest.WithFinalTimeout(5*time.Second))
	final, ok := fm.(RevealModel)
	require.True(t, ok)
	assert.True(t, final.Quitting())
	assert.False(t, final.Done())
}
