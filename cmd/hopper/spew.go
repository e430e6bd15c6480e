package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-hopper/internal/platform/tui"
)

var flagSeed uint64

var spewCmd = &cobra.Command{
	Use:   "spew",
	Short: "Endless hacker terminal",
	Long: `Type an endless stream of fake connection logs into a green terminal.
The same seed always produces the same stream.

Controls:
  Q/Esc/Ctrl+C - Quit

Examples:
  hopper spew
  hopper spew --seed 42`,
	Args: cobra.NoArgs,
	Run:  runSpew,
}

func init() {
	spewCmd.Flags().Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
}

func runSpew(_ *cobra.Command, _ []string) {
	seed := flagSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	if err := tui.RunSpew(seed, runtimeConfig(flagFPS)); err != nil {
		fail("%v", err)
	}
}
