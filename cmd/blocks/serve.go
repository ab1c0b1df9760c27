package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/platform/web"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server and spectator API",
	Long: `Start an SSH server that allows users to connect and play, and an
HTTP server that exposes scores and lets others watch running games.

Each SSH connection gets its own game. All users share one high-score list.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.blocks/host_key

HTTP endpoints:
  GET /api/highscores     - Top scores
  GET /api/rounds         - Recent finished rounds and totals
  GET /api/sessions       - Games currently being played
  GET /watch/:session     - Websocket stream of a game's snapshots

Examples:
  blocks serve
  blocks serve --ssh :2222 --http :8080
  blocks serve --http ""       # SSH only

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", ":8080", "HTTP address for the API and spectators (empty to disable)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog := newLogger("blocks-serve", os.Stderr)
	defer closeLog()

	be := openBackend(cfg, logger)
	defer be.Close()

	hub := web.NewHub()
	sshServer, err := tui.NewSSHServer(
		tui.SSHServerConfig{
			Address:     flagSSHAddr,
			HostKeyPath: flagHostKey,
			IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		},
		tui.SessionDeps{
			Game:      cfg,
			Scores:    be.scores,
			Rounds:    be.rounds(),
			Publisher: hub,
			Logger:    logger,
		},
	)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Starting blocks SSH server on %s\n", sshServer.Addr())
	fmt.Println("Press Ctrl+C to stop")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return sshServer.Serve(ctx) })
	if flagHTTPAddr != "" {
		var rounds web.RoundSource
		if be.store != nil {
			rounds = be.store
		}
		api := web.NewServer(hub, be.scores, rounds, logger)
		g.Go(func() error { return api.Serve(ctx, flagHTTPAddr) })
	}

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}
