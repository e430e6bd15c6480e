package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pixel-hopper/internal/platform/tui"
	"github.com/vovakirdan/pixel-hopper/internal/script"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that reveals an intro script to every visitor.

The SSH command names the script; without one the one-player intro is
shown, and unknown names fall back to it. With --scripts, the directory is
watched and edited scripts are served to new sessions right away.
Reads are stored per-server in the history database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.hopper/host_key

Examples:
  hopper serve                           # Listen on :23234 with auto-generated key
  hopper serve --ssh :2222               # Listen on port 2222
  hopper serve --scripts ./scripts       # Serve and hot-reload extra scripts
  hopper serve --db ./history.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234
  ssh localhost -p 23234 -t duo`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) {
	tw, err := loadSettings()
	if err != nil {
		fail("%v", err)
	}

	catalog, err := openCatalog()
	if err != nil {
		fail("%v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if catalog.Dir() != "" {
		watcher, err := script.NewWatcher(catalog, script.DefaultDebounce, logger)
		if err != nil {
			fail("%v", err)
		}
		defer watcher.Close()

		go func() {
			if err := watcher.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error("script watcher stopped", "error", err)
			}
		}()
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Typewriter:  tw,
	}

	server, err := tui.NewSSHServer(cfg, catalog, logger)
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting hopper SSH server on %s\n", server.Addr())
	fmt.Println("Connect with:", connectHint(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(ctx); err != nil {
		fail("server: %v", err)
	}
}

// connectHint returns the ssh command that reaches a server listening on
// addr. Wildcard and empty hosts are reached through localhost.
func connectHint(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "ssh " + addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return fmt.Sprintf("ssh %s -p %s", host, port)
}
