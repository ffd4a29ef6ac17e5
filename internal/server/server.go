package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"

	"auction-draft-service/internal/advice"
	appcatalog "auction-draft-service/internal/app/catalog"
	appdraft "auction-draft-service/internal/app/draft"
	"auction-draft-service/internal/config"
	internalhttp "auction-draft-service/internal/http"
	"auction-draft-service/internal/http/handlers"
	"auction-draft-service/internal/http/middleware"
	"auction-draft-service/internal/logging"
	"auction-draft-service/internal/metrics"
	"auction-draft-service/internal/poller"
	"auction-draft-service/internal/snapshots"
)

var metricsSetup = metrics.Setup

// Refresher is the minimal catalog-refresh behavior the server depends on.
type Refresher interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() poller.Status
	RefreshOnce(ctx context.Context) error
}

// Server owns the assembled service graph and its lifecycle.
type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	catalog       *appcatalog.Service
	draft         *appdraft.Service
	refresher     Refresher
	httpServer    httpServer
	metricsServer httpServer
	metricsStop   func(context.Context) error
	storeCloser   io.Closer
}

// New wires the full service: telemetry, providers, snapshots, session
// store, catalog/draft services, refresher, and the HTTP surface.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger)

	writer := snapshots.NewWriter(filepath.Join(cfg.DataDir, "snapshots"), 0)
	catalogSvc := appcatalog.NewService(logger, writer)
	if restored, err := catalogSvc.LoadSnapshot(); err != nil {
		logging.Warn(logger, "catalog snapshot restore failed", slog.Any("error", err))
	} else if restored {
		logging.Info(logger, "catalog restored from snapshot")
	}

	sessions, storeCloser, err := buildSessionStore(cfg, logger)
	if err != nil {
		return nil, err
	}
	draftSvc := appdraft.NewService(sessions, cfg.League, logger, recorder)

	primary, secondary := newProviderFactory(logger, recorder).build(cfg)
	refresher := poller.New(primary, secondary, catalogSvc, logger, recorder, cfg.RefreshInterval)

	advisor := advice.NewClient(cfg.Advice, logger, recorder)

	srv := &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		catalog:       catalogSvc,
		draft:         draftSvc,
		refresher:     refresher,
		metricsServer: metricsSrv,
		metricsStop:   metricsShutdown,
		storeCloser:   storeCloser,
	}
	srv.httpServer = buildHTTPServer(cfg, catalogSvc, draftSvc, advisor, logger, recorder, refresher)
	return srv, nil
}

func buildHTTPServer(cfg config.Config, catalogSvc *appcatalog.Service, draftSvc *appdraft.Service, advisor *advice.Client, logger *slog.Logger, recorder *metrics.Recorder, refresher Refresher) httpServer {
	var statusFn func() poller.Status
	if refresher != nil {
		statusFn = refresher.Status
	}

	handler := handlers.NewHandler(catalogSvc, draftSvc, advisor, cfg.League, logger, statusFn)

	var admin *handlers.AdminHandler
	if cfg.AdminToken != "" && refresher != nil {
		admin = handlers.NewAdminHandler(refresher.RefreshOnce, cfg.AdminToken, logger)
	}
	router := internalhttp.NewRouter(handler, admin)

	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.Logging(logger, recorder, router)

	return netHTTPServer{srv: &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}}
}

func buildMetrics(cfg config.Config, logger *slog.Logger) (*metrics.Recorder, httpServer, func(context.Context) error) {
	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", slog.Any("error", err))
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{srv: &http.Server{
			Addr:    ":" + recCfg.Port,
			Handler: handler,
		}}
	}
	return rec, metricsSrv, shutdown
}

// Run starts the refresher and HTTP servers, then waits for context
// cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	if s.refresher != nil {
		s.refresher.Start(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
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
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.refresher != nil {
		if err := s.refresher.Stop(shutdownCtx); err != nil {
			logging.Error(s.logger, "failed to stop refresher", err)
		}
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", slog.Any("error", err))
		}
	}
	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", slog.Any("error", err))
		}
	}

	if s.storeCloser != nil {
		if err := s.storeCloser.Close(); err != nil {
			logging.Warn(s.logger, "session store close failed", slog.Any("error", err))
		}
	}

	logging.Info(s.logger, "shutdown complete")
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		logging.Info(logger, "starting "+name+" server", slog.String("addr", srv.Addr()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", slog.Any("error", err))
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
