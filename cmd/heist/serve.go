package main

import (
	"fmt"
	"net"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-heist/internal/games/heist"
	"github.com/vovakirdan/tui-heist/internal/games/heist/event"
	"github.com/vovakirdan/tui-heist/internal/metrics"
	"github.com/vovakirdan/tui-heist/internal/platform/tui"
)

// eventBuffer is the capacity of the queue between simulations and metrics.
const eventBuffer = 1024

var (
	flagSSHAddr     string
	flagHostKey     string
	flagMetricsAddr string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the heist SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets their own session with a mode picker menu.
Runs are stored per-server (all users share the same scoreboard).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.heist/host_key

With --metrics, simulation events and active runs are exported for
Prometheus at /metrics on that address.

Examples:
  heist serve                           # Listen on :23234 with auto-generated key
  heist serve --ssh :2222               # Listen on port 2222
  heist serve --host-key ./my_host_key  # Use specific host key
  heist serve --metrics :9090           # Export Prometheus metrics

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Prometheus metrics address (disabled if empty)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := tui.SSHServerConfig{
		Address:        flagSSHAddr,
		HostKeyPath:    flagHostKey,
		DBPath:         flagDBPath,
		MetricsAddress: flagMetricsAddr,
		IdleTimeout:    time.Duration(flagIdleTimeout) * time.Minute,
		TickRate:       flagFPS,
	}

	var rec *metrics.Recorder
	if flagMetricsAddr != "" {
		rec = metrics.NewRecorder()

		// Sessions flush their buses on their own goroutines; the sink
		// moves events to one consumer and drops them when it falls behind.
		sink := event.NewAsyncSink(eventBuffer, rec.Handle)
		defer sink.Close()
		rec.TrackDropped(sink.Dropped)
		heist.Observe(sink.Handle)
	}

	server, err := tui.NewSSHServer(cfg, logger, rec)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	fmt.Printf("Starting heist SSH server on %s\n", cfg.Address)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(cfg.Address))
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(cmd.Context())
}

// port returns the port part of a host:port address.
func port(addr string) string {
	if _, p, err := net.SplitHostPort(addr); err == nil {
		return p
	}
	return addr
}
