package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/vovakirdan/pixel-hopper/internal/config"
	"github.com/vovakirdan/pixel-hopper/internal/core"
	"github.com/vovakirdan/pixel-hopper/internal/registry"
	"github.com/vovakirdan/pixel-hopper/internal/script"
	"github.com/vovakirdan/pixel-hopper/internal/typewriter"
)

// defaultScriptID is played when no script is named.
const defaultScriptID = "solo"

// loadSettings loads the typewriter config and applies the global flags.
func loadSettings() (config.TypewriterConfig, error) {
	cfg, err := config.LoadTypewriter(flagConfig)
	if err != nil {
		return cfg, err
	}

	preset, err := config.ParseSpeedPreset(flagSpeed)
	if err != nil {
		return cfg, err
	}
	config.ApplySpeedPreset(&cfg, preset)

	if flagFPS > 0 {
		cfg.FPS = flagFPS
	}
	if flagEastAsian {
		cfg.Layout.EastAsian = true
	}
	return cfg, cfg.Validate()
}

// revealOptions builds the reveal options for a script. An explicit
// --speed beats the script's own interval, which beats the config file.
func revealOptions(cfg config.TypewriterConfig, sc *script.Script) typewriter.Options {
	opts := typewriter.OptionsFromConfig(cfg)
	if flagSpeed == "" {
		opts.CharInterval = sc.CharInterval(opts.CharInterval)
	}
	return opts
}

// openCatalog loads the built-in scripts and the --scripts directory.
// Broken script files are logged and skipped.
func openCatalog() (*script.Catalog, error) {
	catalog, err := script.NewCatalog(registry.All(), flagScriptsDir)
	if catalog == nil {
		return nil, err
	}
	if err != nil {
		logger.Warn("some scripts failed to load", "dir", flagScriptsDir, "error", err)
	}
	return catalog, nil
}

// findScript returns the script named in args, or the default one.
func findScript(catalog *script.Catalog, args []string) (*script.Script, error) {
	id := defaultScriptID
	if len(args) > 0 {
		id = args[0]
	}
	sc, ok := catalog.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("unknown script %q", id)
	}
	return sc, nil
}

// runtimeConfig sizes the screen to stdout, falling back to 80x24 when it
// is not a terminal.
func runtimeConfig(fps int) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	if fps > 0 {
		cfg.TickRate = fps
	}
	return cfg
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
