package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/pixel-hopper/internal/config"
	"github.com/vovakirdan/pixel-hopper/internal/script"
	"github.com/vovakirdan/pixel-hopper/internal/typewriter"
)

func frameOptions() typewriter.Options {
	opts := typewriter.DefaultOptions()
	opts.CharInterval = 100 * time.Millisecond
	opts.BlinkPeriod = 0
	opts.MarginX, opts.MarginY = 0, 0
	opts.CursorGlyph = "_"
	opts.Prompt = "OK"
	opts.PromptCursor = ""
	return opts
}

func TestRenderFrameTyping(t *testing.T) {
	out, err := renderFrame(typewriter.NewMessage("Hello world"), frameOptions(), 350*time.Millisecond, 20, 4)
	require.NoError(t, err)

	rows := strings.Split(out, "\n")
	require.Len(t, rows, 4)
	assert.Equal(t, "Hel_", rows[0])
	assert.Empty(t, rows[3], "no prompt while typing")
}

func TestRenderFrameComplete(t *testing.T) {
	out, err := renderFrame(typewriter.NewMessage("Hello world"), frameOptions(), time.Minute, 20, 4)
	require.NoError(t, err)

	rows := strings.Split(out, "\n")
	assert.Equal(t, "Hello world", rows[0])
	assert.Equal(t, "         OK", rows[3])
}

func TestRenderFrameEastAsian(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())
	flagEastAsian = true
	t.Cleanup(func() { flagEastAsian = false })

	cfg, err := loadSettings()
	require.NoError(t, err)
	assert.True(t, revealOptions(cfg, &script.Script{ID: "x", Paragraphs: []string{"x"}}).EastAsian)

	opts := frameOptions()
	opts.EastAsian = cfg.Layout.EastAsian
	out, err := renderFrame(typewriter.NewMessage("±± x"), opts, 200*time.Millisecond, 20, 4)
	require.NoError(t, err)
	assert.Equal(t, "±±_", strings.Split(out, "\n")[0])
}

func TestRenderFrameErrors(t *testing.T) {
	_, err := renderFrame(typewriter.NewMessage("x"), frameOptions(), 0, 0, 4)
	assert.Error(t, err)

	_, err = renderFrame(typewriter.Message{}, frameOptions(), 0, 20, 4)
	assert.ErrorIs(t, err, typewriter.ErrEmptyMessage)
}

func TestRevealOptionsPrecedence(t *testing.T) {
	cfg := config.DefaultTypewriterConfig()
	fast := &script.Script{ID: "fast", CharIntervalMS: 15, Paragraphs: []string{"x"}}
	plain := &script.Script{ID: "plain", Paragraphs: []string{"x"}}

	flagSpeed = ""
	assert.Equal(t, 15*time.Millisecond, revealOptions(cfg, fast).CharInterval)
	assert.Equal(t, 40*time.Millisecond, revealOptions(cfg, plain).CharInterval)

	flagSpeed = "brisk"
	t.Cleanup(func() { flagSpeed = "" })
	config.ApplySpeedPreset(&cfg, config.SpeedBrisk)
	assert.Equal(t, 20*time.Millisecond, revealOptions(cfg, fast).CharInterval)
}

func TestHistoryEntriesSelectedFirst(t *testing.T) {
	catalog, err := script.NewCatalog([]*script.Script{
		{ID: "duo", Title: "Two Players", Paragraphs: []string{"x"}},
		{ID: "solo", Title: "One Player", Paragraphs: []string{"x"}},
		{ID: "zed", Paragraphs: []string{"x"}},
	}, "")
	require.NoError(t, err)

	entries := historyEntries(catalog, "solo")
	require.Len(t, entries, 3)
	assert.Equal(t, "solo", entries[0].ID)
	assert.Equal(t, "duo", entries[1].ID)
	assert.Equal(t, "zed", entries[2].Title, "untitled scripts show their ID")
}
