package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/sports-scores-service/internal/config"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/games"
	"github.com/preston-bernstein/sports-scores-service/internal/domain/leagues"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/scoreboard"
	"github.com/preston-bernstein/sports-scores-service/internal/server"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// App holds the collaborators commands run against. Zero fields fall back to
// the real config, logger and server wiring.
type App struct {
	Version      string
	Out          io.Writer
	Err          io.Writer
	LoadConfig   func() config.Config
	Serve        func(ctx context.Context, stop context.CancelFunc, cfg config.Config, logger *slog.Logger)
	ScoreService func(ctx context.Context, cfg config.Config, logger *slog.Logger) (*scoreboard.Service, func() error)
}

func (a App) withDefaults() App {
	if a.Out == nil {
		a.Out = os.Stdout
	}
	if a.Err == nil {
		a.Err = os.Stderr
	}
	if a.LoadConfig == nil {
		a.LoadConfig = config.Load
	}
	if a.Serve == nil {
		a.Serve = func(ctx context.Context, stop context.CancelFunc, cfg config.Config, logger *slog.Logger) {
			server.New(cfg, logger).Run(ctx, stop)
		}
	}
	if a.ScoreService == nil {
		a.ScoreService = server.NewScoreService
	}
	return a
}

// Execute runs the root command and maps the outcome to an exit code.
func Execute(ctx context.Context, app App, args []string) int {
	cmd := NewRootCmd(app)
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "error:", err)
		return ExitError
	}
	return ExitSuccess
}

// NewRootCmd creates the root command. With no subcommand it serves.
func NewRootCmd(app App) *cobra.Command {
	app = app.withDefaults()

	root := &cobra.Command{
		Use:           "sports-scores",
		Short:         "Serve and fetch live sports scoreboards",
		Long:          "Scrapes ESPN scoreboards per league, falling back to generated sample data, and serves them as JSON, HTML and websocket updates.",
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(app.Out)
	root.SetErr(app.Err)

	serve := newServeCmd(app)
	root.RunE = serve.RunE
	root.AddCommand(serve, newFetchCmd(app), newLeaguesCmd(app))
	return root
}

func newServeCmd(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.LoadConfig()
			logger := newLogger(cfg, app.Version)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			app.Serve(ctx, stop, cfg, logger)
			return nil
		},
	}
}

type fetchOptions struct {
	league   string
	format   string
	provider string
	view     string
	verbose  bool
}

func newFetchCmd(app App) *cobra.Command {
	var opts fetchOptions
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch one league's scoreboard and print it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, app, opts)
		},
	}
	cmd.Flags().StringVar(&opts.league, "league", "", "League key (defaults to DEFAULT_LEAGUE)")
	cmd.Flags().StringVar(&opts.format, "format", string(FormatText), "Output format: text or json")
	cmd.Flags().StringVar(&opts.provider, "provider", "", "Override PROVIDER: espn or sample")
	cmd.Flags().StringVar(&opts.view, "view", string(games.ViewAll), "Games to show: all, live, completed or upcoming")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Log fetch details to stderr")
	return cmd
}

func runFetch(cmd *cobra.Command, app App, opts fetchOptions) error {
	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}
	view, err := games.ParseView(opts.view)
	if err != nil {
		return err
	}

	cfg := app.LoadConfig()
	key := cfg.DefaultLeague
	if opts.league != "" {
		key = opts.league
	}
	league, ok := leagues.Lookup(key)
	if !ok {
		return fmt.Errorf("unknown league: %s (known: %s)", key, strings.Join(leagues.Keys(), ", "))
	}
	switch p := strings.ToLower(opts.provider); p {
	case "":
	case config.ProviderESPN, config.ProviderSample:
		cfg.Provider = p
	default:
		return fmt.Errorf("invalid provider: %s (must be 'espn' or 'sample')", opts.provider)
	}
	// A one-shot fetch never needs a shared cache.
	cfg.Cache.Backend = config.CacheMemory

	var logger *slog.Logger
	if opts.verbose {
		logger = logging.NewLogger(logging.Config{Level: "debug", Format: "text", Service: cfg.Log.Service, Writer: cmd.ErrOrStderr()})
	}

	svc, closeCache, err := buildService(cmd.Context(), app, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = closeCache() }()

	board := svc.Scores(cmd.Context(), league.Key)
	board = board.WithGames(games.Filter(board.Games, view))
	return WriteBoard(cmd.OutOrStdout(), board, format, cfg.Location())
}

func buildService(ctx context.Context, app App, cfg config.Config, logger *slog.Logger) (*scoreboard.Service, func() error, error) {
	svc, closer := app.ScoreService(ctx, cfg, logger)
	if svc == nil {
		return nil, nil, fmt.Errorf("score service unavailable")
	}
	if closer == nil {
		closer = func() error { return nil }
	}
	return svc, closer, nil
}

func newLeaguesCmd(app App) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "leagues",
		Short: "List supported leagues",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := OutputFormat(strings.ToLower(format))
			if f != FormatText && f != FormatJSON {
				return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", format)
			}
			return WriteLeagues(cmd.OutOrStdout(), leagues.All(), f)
		},
	}
	cmd.Flags().StringVar(&format, "format", string(FormatText), "Output format: text or json")
	return cmd
}

func newLogger(cfg config.Config, version string) *slog.Logger {
	logCfg := cfg.Log
	logCfg.Version = version
	return logging.NewLogger(logCfg)
}
