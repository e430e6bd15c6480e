package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-hopper/internal/platform/term"
	"github.com/vovakirdan/pixel-hopper/internal/platform/tui"
	"github.com/vovakirdan/pixel-hopper/internal/script"
	"github.com/vovakirdan/pixel-hopper/internal/storage"
	"github.com/vovakirdan/pixel-hopper/internal/typewriter"
)

var (
	flagFile      string
	flagRaw       bool
	flagAllowSkip bool
	flagNoPrelude bool
)

var playCmd = &cobra.Command{
	Use:   "play [script]",
	Short: "Reveal a script",
	Long: `Type the given script onto the terminal. Without a script, the
one-player intro is played.

Controls:
  Enter/Space  - Continue once the text is complete
                 (with --allow-skip, finish the typing early)
  Q/Esc/Ctrl+C - Quit
  Ctrl+S       - Save a screenshot to ~/.hopper/screenshots

Speed options:
  relaxed - 70ms per character, extra line spacing
  normal  - 40ms per character
  brisk   - 20ms per character
  instant - whole text at once, no fade-in

Examples:
  hopper play
  hopper play duo
  hopper play solo --speed brisk --no-prelude
  hopper play --file ./intro.toml
  hopper play solo --raw`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagFile, "file", "", "Play a script file instead of a named script")
	playCmd.Flags().BoolVar(&flagRaw, "raw", false, "Drive the terminal directly instead of through Bubble Tea")
	playCmd.Flags().BoolVar(&flagAllowSkip, "allow-skip", false, "Let Enter finish the typing early")
	playCmd.Flags().BoolVar(&flagNoPrelude, "no-prelude", false, "Skip the fade-in")
}

func runPlay(_ *cobra.Command, args []string) {
	cfg, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}
	if flagAllowSkip {
		cfg.Reveal.AllowSkip = true
	}
	if flagNoPrelude {
		cfg.Prelude.Enabled = false
	}

	sc, err := playScript(args)
	if err != nil {
		fail("%v", err)
	}
	opts := revealOptions(cfg, sc)

	if flagRaw {
		err = playRaw(sc, opts)
	} else {
		err = playTUI(sc, opts)
	}

	// Quitting is a normal way out
	if errors.Is(err, typewriter.ErrQuit) {
		return
	}
	if err != nil {
		fail("%v", err)
	}
}

// playScript returns the --file script or the named one.
func playScript(args []string) (*script.Script, error) {
	if flagFile != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("--file and a script name are exclusive")
		}
		return script.LoadFile(flagFile)
	}

	catalog, err := openCatalog()
	if err != nil {
		return nil, err
	}
	sc, err := findScript(catalog, args)
	if err != nil {
		return nil, fmt.Errorf("%w\nRun 'hopper list' to see available scripts", err)
	}
	return sc, nil
}

func playTUI(sc *script.Script, opts typewriter.Options) error {
	// Open history storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		// Continue without storage - the reveal still works
		store = nil
	}

	runErr := tui.RunReveal(tui.RevealConfig{
		Script:  sc,
		Options: opts,
		Store:   store,
		Runtime: runtimeConfig(opts.FPS),
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}
	return runErr
}

func playRaw(sc *script.Script, opts typewriter.Options) error {
	host, err := term.Open(os.Stdin, os.Stdout)
	if err != nil {
		return err
	}

	metric := typewriter.CellMetric{EastAsian: opts.EastAsian}
	if sc.Banner != "" {
		opts.Backdrop = typewriter.BannerBackdrop(sc.Banner, metric)
	}

	// Raw mode turns Ctrl+C into a key press, handled as quit.
	revealErr := typewriter.Reveal(context.Background(), host, sc.Message(), metric, opts)
	return errors.Join(revealErr, host.Close())
}
