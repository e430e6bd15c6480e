package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-hopper/internal/core"
	"github.com/vovakirdan/pixel-hopper/internal/typewriter"
)

var (
	flagFrameAt     time.Duration
	flagFrameWidth  int
	flagFrameHeight int
)

var frameCmd = &cobra.Command{
	Use:   "frame [script]",
	Short: "Print one frame of a reveal",
	Long: `Render the frame a script shows after the given typing time and print
it as plain text. The fade-in is not part of the timeline: --at 0 is the
moment the first character is due.

Examples:
  hopper frame solo --at 400ms
  hopper frame duo --at 10s --width 60 --height 20
  hopper frame solo --at 1m --speed brisk`,
	Args: cobra.MaximumNArgs(1),
	Run:  runFrame,
}

func init() {
	frameCmd.Flags().DurationVar(&flagFrameAt, "at", 400*time.Millisecond, "Elapsed typing time")
	frameCmd.Flags().IntVar(&flagFrameWidth, "width", 80, "Screen width in cells")
	frameCmd.Flags().IntVar(&flagFrameHeight, "height", 24, "Screen height in rows")
}

func runFrame(_ *cobra.Command, args []string) {
	cfg, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}

	catalog, err := openCatalog()
	if err != nil {
		fail("%v", err)
	}
	sc, err := findScript(catalog, args)
	if err != nil {
		fail("%v", err)
	}

	out, err := renderFrame(sc.Message(), revealOptions(cfg, sc), flagFrameAt, flagFrameWidth, flagFrameHeight)
	if err != nil {
		fail("%v", err)
	}
	fmt.Println(out)
}

// renderFrame returns the frame shown at elapsed time at, with trailing
// blanks trimmed from every row.
func renderFrame(msg typewriter.Message, opts typewriter.Options, at time.Duration, width, height int) (string, error) {
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("invalid frame size %dx%d", width, height)
	}

	sess, err := typewriter.NewSession(msg, nil, opts, width, height)
	if err != nil {
		return "", err
	}
	sess.Begin(0)
	sess.Step(core.NewInputFrame(), at)

	screen := core.NewScreen(width, height)
	sess.Render(screen, at)

	rows := strings.Split(screen.String(), "\n")
	for i, r := range rows {
		rows[i] = strings.TrimRight(r, " ")
	}
	return strings.Join(rows, "\n"), nil
}
