package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/sports-scores-service/internal/config"
	httpserver "github.com/preston-bernstein/sports-scores-service/internal/http"
	"github.com/preston-bernstein/sports-scores-service/internal/http/handlers"
	"github.com/preston-bernstein/sports-scores-service/internal/live"
	"github.com/preston-bernstein/sports-scores-service/internal/logging"
	"github.com/preston-bernstein/sports-scores-service/internal/metrics"
	"github.com/preston-bernstein/sports-scores-service/internal/poller"
	"github.com/preston-bernstein/sports-scores-service/internal/providers"
	"github.com/preston-bernstein/sports-scores-service/internal/providers/sample"
	"github.com/preston-bernstein/sports-scores-service/internal/scoreboard"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	scores        *scoreboard.Service
	hub           *live.Hub
	httpServer    httpServer
	metricsServer httpServer
	poller        Poller
	metricsStop   func(context.Context) error
	cacheClose    func() error
}

// New constructs a server with default provider, cache and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.ScoreProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.ScoreProvider, recorder *metrics.Recorder) *Server {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if provider == nil {
		provider = factory.build(cfg)
	} else {
		provider = factory.wrap(cfg, provider)
	}

	cache := buildCache(context.Background(), cfg.Cache, logger)
	svc := newScoreService(cfg, provider, cache, logger, recorder)
	hub := live.NewHub(logger)

	var plr Poller
	if cfg.AutoRefresh.Enabled {
		plr = poller.New(svc, hub, cfg.AutoRefresh.Leagues, logger, recorder, cfg.AutoRefresh.Interval)
	}
	httpSrv := buildHTTPServer(cfg, svc, hub, logger, recorder, plr)

	logging.Info(logger, "server wired",
		logging.FieldProvider, normalizeProviderName(cfg.Provider, provider),
		"cache", cache.backend,
		"auto_refresh", cfg.AutoRefresh.Enabled,
	)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		scores:        svc,
		hub:           hub,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		poller:        plr,
		metricsStop:   metricsShutdown,
		cacheClose:    cache.close,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, hub *live.Hub, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		hub:        hub,
		httpServer: httpSrv,
		poller:     plr,
	}
}

// NewScoreService builds the scoreboard service the server uses, for one-shot
// callers such as the CLI. The returned func releases the cache backend.
func NewScoreService(ctx context.Context, cfg config.Config, logger *slog.Logger) (*scoreboard.Service, func() error) {
	recorder := metrics.NewRecorder()
	provider := newProviderFactory(logger, recorder).build(cfg)
	cache := buildCache(ctx, cfg.Cache, logger)
	closer := cache.close
	if closer == nil {
		closer = func() error { return nil }
	}
	return newScoreService(cfg, provider, cache, logger, recorder), closer
}

func newScoreService(cfg config.Config, provider providers.ScoreProvider, cache cacheBundle, logger *slog.Logger, recorder *metrics.Recorder) *scoreboard.Service {
	return scoreboard.NewService(scoreboard.Config{
		Primary:  provider,
		Fallback: sample.New(),
		Store:    cache.store,
		TTL:      cfg.Cache.TTL,
		Logger:   logger,
		Metrics:  recorder,

		FetchTimeout: fetchTimeout(cfg.ESPN),
	})
}

// fetchTimeout allows every attempt its full HTTP timeout plus one capped
// Retry-After wait between attempts. Zero keeps the service default.
func fetchTimeout(cfg config.ESPNConfig) time.Duration {
	if cfg.Timeout <= 0 {
		return 0
	}
	attempts := max(cfg.MaxAttempts, 1)
	return time.Duration(attempts)*cfg.Timeout + time.Duration(attempts-1)*providers.MaxRetryAfter
}

func buildHTTPServer(cfg config.Config, svc *scoreboard.Service, hub *live.Hub, logger *slog.Logger, recorder *metrics.Recorder, plr Poller) httpServer {
	var statusFn func() poller.Status
	if plr != nil {
		statusFn = plr.Status
	}
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}

	handler := handlers.NewHandler(handlers.Config{
		Service:         svc,
		Hub:             hub,
		Logger:          logger,
		StatusFn:        statusFn,
		DefaultLeague:   cfg.DefaultLeague,
		AutoRefresh:     cfg.AutoRefresh.Enabled,
		RefreshInterval: cfg.AutoRefresh.Interval,
		Location:        cfg.Location(),
	})
	router := httpserver.NewRouter(handler, httpserver.RouterConfig{
		Logger:         logger,
		Metrics:        recorder,
		AllowedOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the poller and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.poller != nil {
		s.poller.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if s.poller != nil {
		if err := s.poller.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop poller", err)
		}
	}

	// Websocket connections are hijacked, so Shutdown does not wait on them.
	if s.hub != nil {
		s.hub.Close()
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.cacheClose != nil {
		if err := s.cacheClose(); err != nil {
			logging.Warn(s.logger, "cache close failed", "error", err)
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "err", err)
		return metrics.NewRecorder(), nil, nil
	}
	if rec == nil {
		rec = metrics.NewRecorder()
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		path := cfg.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		mux := http.NewServeMux()
		mux.Handle(path, handler)
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:              ":" + recCfg.Port,
				Handler:           mux,
				ReadHeaderTimeout: readTimeout,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
