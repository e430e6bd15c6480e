// hopper types the Pixel Hopper intro texts onto the terminal, one character
// at a time, and waits for the reader to press Enter.
//
// Usage:
//
//	hopper list              - List available intro scripts
//	hopper play [script]     - Reveal a script in the terminal
//	hopper frame [script]    - Print the frame a script shows at a given time
//	hopper serve             - Start SSH server for remote reading
//	hopper history [script]  - Show reading history
//	hopper spew              - Endless hacker terminal
//
// Global flags:
//
//	--fps <rate>        - Set frame rate (default: from config)
//	--db <path>         - Set database path (default: ~/.hopper/history.db)
//	--config <path>     - Typewriter config YAML
//	--speed <preset>    - relaxed, normal, brisk or instant
//	--scripts <dir>     - Extra script directory (YAML/TOML)
//	--log-level <level> - debug, info, warn or error
//	--east-asian        - Ambiguous-width characters take two cells
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	// Import built-in scripts to register them
	_ "github.com/vovakirdan/pixel-hopper/internal/script/builtin"
)

var (
	// Global flags
	flagFPS        int
	flagDBPath     string
	flagConfig     string
	flagSpeed      string
	flagScriptsDir string
	flagLogLevel   string
	flagEastAsian  bool
)

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "hopper",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "hopper",
	Short: "Pixel Hopper - typewriter intros in your terminal",
	Long: `Pixel Hopper reveals its intro texts the way old games did: one
character at a time, with a blinking cursor, until you press Enter.

Available commands:
  list     - Show all available scripts
  play     - Reveal a script
  frame    - Print a single frame of a reveal
  serve    - Start SSH server for remote reading
  history  - View reading history
  spew     - Endless hacker terminal

Examples:
  hopper list
  hopper play solo
  hopper play duo --speed brisk
  hopper frame solo --at 2s
  hopper serve --ssh :2222
  hopper history solo`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		level, err := log.ParseLevel(flagLogLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
		logger.SetLevel(level)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Frame rate (0 = from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.hopper/history.db", "Path to reading history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom typewriter config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Speed preset: relaxed, normal, brisk, instant")
	rootCmd.PersistentFlags().StringVar(&flagScriptsDir, "scripts", "", "Directory with extra YAML/TOML scripts")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagEastAsian, "east-asian", false, "Draw ambiguous-width characters two cells wide (CJK terminals)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(frameCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(spewCmd)
}
