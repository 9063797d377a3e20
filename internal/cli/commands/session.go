package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/leapdb/internal/cli/config"
	"github.com/leapstack-labs/leapdb/internal/cli/output"
	"github.com/leapstack-labs/leapdb/internal/profile"
	"github.com/leapstack-labs/leapdb/pkg/adapter"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Adapter  adapter.Adapter
	Renderer *output.Renderer

	// EngineType is the connected engine's registry name, e.g. "mysql".
	// Empty when no connection was opened.
	EngineType string
}

// NewCommandContext creates a CommandContext with a connected adapter.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cc := NewCommandContextWithoutConnection(cmd)

	adapterCfg, err := resolveAdapterConfig(cc.Cfg)
	if err != nil {
		return nil, nil, err
	}

	adp, err := adapter.NewAdapter(adapterCfg, cc.Logger)
	if err != nil {
		return nil, nil, err
	}
	if err := adp.Connect(cmd.Context(), adapterCfg); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", adapterCfg.Type, err)
	}

	cc.Adapter = adp
	cc.EngineType = adapterCfg.Type
	cleanup := func() {
		_ = adp.Close()
	}
	return cc, cleanup, nil
}

// NewCommandContextWithoutConnection creates a CommandContext without opening
// an engine session. Used by commands that work on local state only.
func NewCommandContextWithoutConnection(cmd *cobra.Command) *CommandContext {
	cfg := getConfig()
	logger := config.GetLogger(cmd.Context())
	mode := output.Mode(cfg.OutputFormat)
	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

	return &CommandContext{Cfg: cfg, Logger: logger, Renderer: r}
}

// getConfig returns the current configuration. It uses config.GetCurrentConfig()
// if available, otherwise falls back to defaults (commands constructed directly
// in tests, without the root command's PersistentPreRunE).
func getConfig() *config.Config {
	if cfg := config.GetCurrentConfig(); cfg != nil {
		return cfg
	}

	return &config.Config{
		OutputFormat: config.DefaultOutput,
		LogLevel:     config.DefaultLogLevel,
		LogFormat:    config.DefaultLogFormat,
	}
}

// openProfileStore opens the profile store at the configured path, creating
// the schema on first use.
func openProfileStore(cfg *config.Config) (*profile.Store, error) {
	path := cfg.ProfilesDB
	if path == "" {
		var err error
		path, err = profile.DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	store := profile.NewStore()
	if err := store.Open(path); err != nil {
		return nil, err
	}
	if err := store.InitSchema(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// resolveAdapterConfig decides what to connect to: the named profile when one
// is configured, the ad-hoc connection section otherwise.
func resolveAdapterConfig(cfg *config.Config) (adapter.Config, error) {
	if cfg.Profile != "" {
		store, err := openProfileStore(cfg)
		if err != nil {
			return adapter.Config{}, err
		}
		defer func() { _ = store.Close() }()

		p, err := store.GetByName(cfg.Profile)
		if err != nil {
			return adapter.Config{}, err
		}
		return p.AdapterConfig(), nil
	}

	if cfg.Connection != nil && cfg.Connection.Type != "" {
		return adapter.Config{
			Type:     cfg.Connection.Type,
			Host:     cfg.Connection.Host,
			Port:     cfg.Connection.Port,
			Username: cfg.Connection.Username,
			Password: cfg.Connection.Password,
			Database: cfg.Connection.Database,
		}, nil
	}

	return adapter.Config{}, fmt.Errorf("no connection configured\nHint: pass --profile <name>, or --type with --host/--port, or add a connection section to leapdb.yaml")
}
