package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/leapdb/internal/profile"
	"github.com/leapstack-labs/leapdb/pkg/adapter"
)

// pingTimeout bounds each connection attempt when pinging all profiles.
const pingTimeout = 10 * time.Second

// NewPingCommand creates the ping command.
func NewPingCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Verify connectivity",
		Long: `Verify the configured connection end to end.

With --all, ping every saved profile concurrently and report per-profile
status. The command fails when any profile is unreachable.`,
		Example: `  leapdb ping
  leapdb ping --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if all {
				return runPingAll(cmd)
			}
			return runPing(cmd)
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Ping every saved profile")

	return cmd
}

func runPing(cmd *cobra.Command) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	start := time.Now()
	if err := cc.Adapter.Ping(cmd.Context()); err != nil {
		return err
	}
	cc.Renderer.Printf("pong (engine: %s, latency: %s)\n", cc.EngineType, time.Since(start).Round(time.Millisecond))
	return nil
}

func runPingAll(cmd *cobra.Command) error {
	cc := NewCommandContextWithoutConnection(cmd)

	store, err := openProfileStore(cc.Cfg)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	profiles, err := store.List()
	if err != nil {
		return err
	}
	if len(profiles) == 0 {
		cc.Renderer.Printf("no saved profiles\n")
		return nil
	}

	type pingResult struct {
		status  string
		latency string
	}
	results := make([]pingResult, len(profiles))

	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(8)
	for i, p := range profiles {
		g.Go(func() error {
			status, latency := pingProfile(ctx, cc.Logger, p)
			results[i] = pingResult{status: status, latency: latency}
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	rows := make([][]string, 0, len(profiles))
	for i, p := range profiles {
		if results[i].status != "ok" {
			failed++
		}
		rows = append(rows, []string{p.Name, p.Type, results[i].status, results[i].latency})
	}

	if err := cc.Renderer.Grid([]string{"NAME", "TYPE", "STATUS", "LATENCY"}, rows); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d profiles unreachable", failed, len(profiles))
	}
	return nil
}

// pingProfile connects and pings one profile within the ping timeout.
// Errors come back as the status cell rather than failing the whole run.
func pingProfile(ctx context.Context, logger *slog.Logger, p profile.Profile) (status, latency string) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	cfg := p.AdapterConfig()
	adp, err := adapter.NewAdapter(cfg, logger)
	if err != nil {
		return firstLine(err.Error()), ""
	}
	defer func() { _ = adp.Close() }()

	start := time.Now()
	if err := adp.Connect(pctx, cfg); err != nil {
		return firstLine(fmt.Sprintf("connect failed: %v", err)), ""
	}
	if err := adp.Ping(pctx); err != nil {
		return firstLine(fmt.Sprintf("ping failed: %v", err)), ""
	}
	return "ok", time.Since(start).Round(time.Millisecond).String()
}

// firstLine keeps multi-line errors from breaking the status grid.
func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
