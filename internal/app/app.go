package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/heartmarshall/creatorcompass-backend/internal/auth"
	"github.com/heartmarshall/creatorcompass-backend/internal/config"
	"github.com/heartmarshall/creatorcompass-backend/internal/metrics"
	"github.com/heartmarshall/creatorcompass-backend/internal/service/prefs"
	"github.com/heartmarshall/creatorcompass-backend/internal/service/studio"
	"github.com/heartmarshall/creatorcompass-backend/internal/service/wizard"
	"github.com/heartmarshall/creatorcompass-backend/internal/transport/middleware"
	"github.com/heartmarshall/creatorcompass-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, wires every
// component and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
		slog.String("generator", cfg.Generator.Provider),
		slog.String("prefs", cfg.Prefs.Driver),
	)

	a, err := build(ctx, cfg, logger, clockwork.NewRealClock())
	if err != nil {
		return err
	}
	defer a.close()

	lis, err := net.Listen("tcp", cfg.Server.Addr())
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Addr(), err)
	}

	srv := &http.Server{
		Handler:           a.handler,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
	return serve(ctx, logger, srv, lis, cfg.Server.ShutdownTimeout)
}

// application is the wired component graph.
type application struct {
	handler http.Handler
	store   *wizard.Store
	closers []func()
}

// close releases resources in reverse order of acquisition.
func (a *application) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func build(ctx context.Context, cfg *config.Config, logger *slog.Logger, clock clockwork.Clock) (*application, error) {
	a := &application{}

	repo, closePrefs, err := newPrefsBackend(ctx, logger, cfg.Prefs)
	if err != nil {
		return nil, fmt.Errorf("prefs backend: %w", err)
	}
	a.closers = append(a.closers, closePrefs)

	text, thumbs, err := newGenerators(logger, cfg.Generator)
	if err != nil {
		a.close()
		return nil, err
	}

	m := metrics.New(Version)
	prefsSvc := prefs.NewService(logger, clock, repo)
	studioSvc := studio.NewService(logger, clock, studio.Config{
		TopicsDelay:       cfg.Studio.TopicsDelay,
		ContentDelay:      cfg.Studio.ContentDelay,
		CopyIndicatorTTL:  cfg.Studio.CopyIndicatorTTL,
		GenerationTimeout: cfg.Generator.Timeout,
		SilentFallback:    cfg.Generator.SilentFallback,
	}, text, thumbs, prefsSvc, m)

	a.store = wizard.NewStore(logger, clock, wizard.StoreConfig{
		TTL:           cfg.Session.TTL,
		SweepInterval: cfg.Session.SweepInterval,
	}, studioSvc, m)
	a.closers = append(a.closers, a.store.Stop)

	tokens := auth.NewTokenManager(cfg.Session.TokenSecret, cfg.Session.TokenIssuer, cfg.Session.TTL, clock)

	routerCfg := rest.RouterConfig{
		Logger:    logger,
		CORS:      cfg.CORS,
		RateLimit: cfg.RateLimit,
		Tokens:    tokens,
	}
	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(clock, cfg.RateLimit.CleanupInterval)
		a.closers = append(a.closers, limiter.Stop)
		routerCfg.Limiter = limiter
	}
	if cfg.Metrics.Enabled {
		routerCfg.Observer = m
		routerCfg.MetricsPath = cfg.Metrics.Path
		routerCfg.MetricsHandler = m.Handler()
	}

	a.handler = rest.NewRouter(routerCfg, rest.Handlers{
		Health:     rest.NewHealthHandler(repo, a.store, BuildVersion(), clock),
		Session:    rest.NewSessionHandler(a.store, tokens, logger),
		Onboarding: rest.NewOnboardingHandler(a.store, logger),
		Offers:     rest.NewOffersHandler(a.store, cfg.Session.MaxUploadBytes, logger),
		Topics:     rest.NewTopicsHandler(a.store, logger),
		Content:    rest.NewContentHandler(a.store, logger),
		Prefs:      rest.NewPrefsHandler(prefsSvc, logger),
	})
	return a, nil
}

// serve runs srv on lis until ctx is cancelled, then drains in-flight
// requests for at most shutdownTimeout.
func serve(ctx context.Context, logger *slog.Logger, srv *http.Server, lis net.Listener, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", lis.Addr().String()))
		errCh <- srv.Serve(lis)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	<-errCh

	logger.Info("shutdown complete")
	return nil
}
