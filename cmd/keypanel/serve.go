package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	httphandler "github.com/ericfisherdev/keypanel/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/keypanel/internal/adapter/driving/web"
	"github.com/ericfisherdev/keypanel/internal/application"
	"github.com/ericfisherdev/keypanel/internal/config"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// serve runs the web GUI and JSON API until ctx is cancelled.
func (a *app) serve(ctx context.Context) error {
	return a.withStore(ctx, func(cfg *config.Config, store driven.CredentialStore) error {
		a.logger.Info("config loaded",
			"listen_addr", cfg.ListenAddr,
			"store", cfg.Store,
			"gemini_model", cfg.GeminiModel,
			"auto_close_delay", cfg.AutoCloseDelay,
		)

		factory := a.factory(cfg)
		provider := a.newProvider(ctx, store, factory)

		// Every browser session gets its own host and dialog.
		sessions := application.NewSessionRegistry(func() *application.SettingsHost {
			return application.NewSettingsHost(application.SettingsHostConfig{
				Store:          store,
				Scheduler:      a.scheduler,
				Provider:       provider,
				ClientFactory:  factory,
				AutoCloseDelay: cfg.AutoCloseDelay,
				Logger:         a.logger,
			})
		})
		go a.pruneSessions(ctx, sessions, cfg.SessionIdle)

		mux := http.NewServeMux()
		httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(store, provider, a.logger))
		webhandler.RegisterRoutes(mux, webhandler.NewHandler(sessions, store, provider, a.logger))

		srv := &http.Server{
			Addr:              cfg.ListenAddr,
			Handler:           httphandler.ApplyMiddleware(mux, a.logger),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       120 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			a.logger.Info("http server starting", "addr", cfg.ListenAddr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		a.logger.Info("keypanel started", "listen_addr", cfg.ListenAddr)

		// Wait for shutdown signal or a server failure.
		select {
		case <-ctx.Done():
			a.logger.Info("shutting down")
		case err := <-errCh:
			if err != nil {
				return err
			}
		}

		// Graceful shutdown with 10s timeout for in-flight requests.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error("http server shutdown error", "error", err)
		}

		a.logger.Info("shutdown complete")
		return nil
	})
}

// pruneSessions drops idle browser sessions until ctx is cancelled.
func (a *app) pruneSessions(ctx context.Context, sessions *application.SessionRegistry, maxIdle time.Duration) {
	interval := maxIdle / 2
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := sessions.Prune(maxIdle); n > 0 {
				a.logger.Info("pruned idle sessions", "count", n, "remaining", sessions.Len())
			}
		}
	}
}
