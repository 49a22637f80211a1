package theme

import (
	"fmt"

	"nathanbeddoewebdev/tint/internal/config"
	"nathanbeddoewebdev/tint/internal/fetchlog"
	"nathanbeddoewebdev/tint/internal/logging"
	"nathanbeddoewebdev/tint/internal/services/auth"
	"nathanbeddoewebdev/tint/internal/theme/scheme"
	"nathanbeddoewebdev/tint/internal/theme/services"
	"nathanbeddoewebdev/tint/internal/theme/store"
	"nathanbeddoewebdev/tint/internal/token/fetch"
	"nathanbeddoewebdev/tint/internal/token/source"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// newAuthStore is replaced in tests.
var newAuthStore = auth.DefaultStore

// NewCommand returns the "theme" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Fetch and preview design-token themes",
		Long: `Fetch design tokens and derive light and dark color schemes from them.

When a fetch fails the built-in default schemes are used instead.`,
	}

	cmd.AddCommand(FetchCommand())
	cmd.AddCommand(ShowCommand())
	cmd.AddCommand(CheckCommand())
	cmd.AddCommand(HistoryCommand())

	return cmd
}

// target is a resolved token endpoint.
type target struct {
	variant string
	url     string
}

// endpoint is the keychain account for the target's access key.
func (t target) endpoint() string {
	return auth.NormalizeEndpoint(t.variant)
}

func (t target) label() string {
	if t.variant == "" {
		return t.url
	}
	return t.variant
}

// env holds what every theme command shares: config, credentials, logger and
// the fetch history.
type env struct {
	cfg    *config.Config
	keys   auth.Store
	logger *log.Logger
	repo   *fetchlog.SQLiteRepository
}

// openEnv loads config and opens the fetch history. History recording is
// best effort; a database that cannot be opened only logs a warning.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	e := &env{cfg: cfg, keys: newAuthStore(), logger: logging.FromCommand(cmd)}
	if repo, err := fetchlog.Open(); err != nil {
		e.logger.Warn("fetch history disabled", "err", err)
	} else {
		e.repo = repo
	}
	return e, nil
}

func (e *env) Close() {
	if e.repo != nil {
		e.repo.Close()
	}
}

// service builds a source, fetch machine and theming service for t that
// writes into st.
func (e *env) service(t target, st *store.Store) (*services.Service, error) {
	key, err := auth.LookupKey(e.keys, t.endpoint())
	if err != nil {
		return nil, fmt.Errorf("failed to read access key: %w", err)
	}
	src := source.New(t.url,
		source.WithTimeouts(source.UniformTimeouts(e.cfg.EffectiveTimeout())),
		source.WithAccessKey(e.cfg.EffectiveAccessKeyHeader(), key),
		source.WithLogger(e.logger),
	)

	opts := []services.Option{
		services.WithLogger(e.logger.With("variant", t.label())),
		services.WithTarget(t.variant, t.url),
	}
	if e.repo != nil {
		opts = append(opts, services.WithRecorder(e.repo))
	}
	return services.New(fetch.New(src, fetch.WithLogger(e.logger)), st, opts...), nil
}

// newStore returns a store holding the defaults and the configured mode.
func (e *env) newStore() *store.Store {
	return store.New(scheme.Defaults(), e.cfg.DarkMode)
}

// pipeline is a single resolved endpoint with its service.
type pipeline struct {
	*env
	target target
	svc    *services.Service
}

// newPipeline resolves variant against config and wires its service.
func newPipeline(cmd *cobra.Command, variant string) (*pipeline, error) {
	e, err := openEnv(cmd)
	if err != nil {
		return nil, err
	}

	name, url, err := e.cfg.Resolve(variant)
	if err != nil {
		e.Close()
		return nil, err
	}
	t := target{variant: name, url: url}

	svc, err := e.service(t, e.newStore())
	if err != nil {
		e.Close()
		return nil, err
	}
	return &pipeline{env: e, target: t, svc: svc}, nil
}
