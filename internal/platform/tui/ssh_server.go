package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/pixel-hopper/internal/config"
	"github.com/vovakirdan/pixel-hopper/internal/core"
	"github.com/vovakirdan/pixel-hopper/internal/script"
	"github.com/vovakirdan/pixel-hopper/internal/storage"
	"github.com/vovakirdan/pixel-hopper/internal/typewriter"
)

// DefaultScript is revealed when an SSH session names no script.
const DefaultScript = "solo"

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the host key file, generated if missing.
	// Empty means ~/.hopper/host_key.
	HostKeyPath string

	// DBPath is the path to the reading history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Typewriter is the reveal configuration every session starts from.
	Typewriter config.TypewriterConfig
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.hopper/history.db",
		IdleTimeout: 30 * time.Minute,
		Typewriter:  config.DefaultTypewriterConfig(),
	}
}

// SSHServer wraps a Wish SSH server that reveals scripts to each session.
type SSHServer struct {
	config  SSHServerConfig
	server  *ssh.Server
	catalog *script.Catalog
	store   *storage.Store
	logger  *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// Sessions pick their script from the catalog by the SSH command.
func NewSSHServer(cfg SSHServerConfig, catalog *script.Catalog, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "hopper-ssh",
		})
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		// Readers are served either way, only their history is lost.
		logger.Warn("history disabled", "db", cfg.DBPath, "error", err)
		store = nil
	}

	srv := &SSHServer{
		config:  cfg,
		catalog: catalog,
		store:   store,
		logger:  logger,
	}

	hostKey, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		srv.closeStore()
		return nil, err
	}

	// Middlewares run last to first: log, require a terminal, then reveal.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKey),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		srv.closeStore()
		return nil, fmt.Errorf("tui: create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// resolveHostKey returns the host key location, ~/.hopper/host_key when
// path is empty, and makes sure its directory exists. Wish generates the
// key on first use.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("tui: locate host key: %w", err)
		}
		path = filepath.Join(home, ".hopper", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("tui: host key directory: %w", err)
	}
	return path, nil
}

// resolveScript picks the script named by the SSH command, falling back to
// the default script.
func (s *SSHServer) resolveScript(command []string) (*script.Script, bool) {
	id := DefaultScript
	if len(command) > 0 && command[0] != "" {
		id = command[0]
	}

	sc, ok := s.catalog.Lookup(id)
	if ok {
		return sc, true
	}
	s.logger.Warn("unknown script, using default", "script", id, "default", DefaultScript)
	return s.catalog.Lookup(DefaultScript)
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	// activeterm guarantees a PTY.
	pty, _, _ := sshSession.Pty()

	sc, ok := s.resolveScript(sshSession.Command())
	if !ok {
		s.logger.Error("no script to reveal", "user", sshSession.User())
		return nil, nil
	}

	opts := typewriter.OptionsFromConfig(s.config.Typewriter)
	opts.CharInterval = sc.CharInterval(opts.CharInterval)

	model, err := NewRevealModel(RevealConfig{
		Script:  sc,
		Options: opts,
		Store:   s.store,
		Runtime: core.RuntimeConfig{
			ScreenW:  pty.Window.Width,
			ScreenH:  pty.Window.Height,
			TickRate: s.config.Typewriter.FPS,
		},
	})
	if err != nil {
		s.logger.Error("cannot start reveal", "user", sshSession.User(), "script", sc.ID, "error", err)
		return nil, nil
	}

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs the start and end of every connection.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		l := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		l.Info("session started", "command", sess.Command())
		next(sess)
		l.Info("session ended", "duration", time.Since(start).Round(time.Millisecond))
	}
}

// ListenAndServe starts the SSH server and blocks until ctx is done or the
// server fails.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("listening", "address", s.config.Address)

	served := make(chan error, 1)
	go func() {
		served <- s.server.ListenAndServe()
	}()

	select {
	case err := <-served:
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("tui: serve: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down", "reason", context.Cause(ctx))
		return s.Shutdown()
	}
}

// Shutdown stops accepting connections and waits up to 10 seconds for
// open sessions to end.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	defer s.closeStore()
	return s.server.Shutdown(ctx)
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
