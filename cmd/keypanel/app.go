package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/term"

	"github.com/ericfisherdev/keypanel/internal/adapter/driven/clock"
	"github.com/ericfisherdev/keypanel/internal/adapter/driven/gemini"
	"github.com/ericfisherdev/keypanel/internal/adapter/driven/keyring"
	"github.com/ericfisherdev/keypanel/internal/adapter/driven/memory"
	sqliteadapter "github.com/ericfisherdev/keypanel/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/keypanel/internal/application"
	"github.com/ericfisherdev/keypanel/internal/config"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

const (
	credentialService = "gemini"
	keyringService    = "keypanel"
)

// app holds the collaborators shared by every subcommand. Tests replace the
// store opener and the terminal hooks.
type app struct {
	loadConfig func() (*config.Config, error)
	openStore  func(ctx context.Context, cfg *config.Config) (driven.CredentialStore, func() error, error)
	factory    func(cfg *config.Config) driven.GeminiClientFactory
	scheduler  driven.Scheduler
	logger     *slog.Logger

	stdin        io.Reader
	stdout       io.Writer
	isTerminal   func() bool
	readPassword func() ([]byte, error)
}

func newApp() *app {
	return &app{
		loadConfig: config.Load,
		openStore:  openStore,
		factory: func(cfg *config.Config) driven.GeminiClientFactory {
			return gemini.Factory(cfg.GeminiModel)
		},
		scheduler: clock.Scheduler{},
		logger:    slog.Default(),
		stdin:     os.Stdin,
		stdout:    os.Stdout,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd()))
		},
		readPassword: func() ([]byte, error) {
			return term.ReadPassword(int(os.Stdin.Fd()))
		},
	}
}

// openStore builds the credential store selected by cfg.Store. The returned
// close function releases any resources the store holds.
func openStore(ctx context.Context, cfg *config.Config) (driven.CredentialStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Store {
	case config.StoreKeyring:
		slog.Info("using keyring credential store", "service", keyringService)
		return keyring.NewCredentialStore(keyringService, credentialService), noop, nil

	case config.StoreMemory:
		slog.Warn("using in-memory credential store, the API key is lost on exit")
		return memory.NewCredentialStore(""), noop, nil

	default:
		// Open database (dual reader/writer with WAL mode).
		db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		slog.Info("database opened", "path", cfg.DBPath)

		// Run migrations on writer connection.
		version, err := sqliteadapter.RunMigrations(db.Writer)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		slog.Info("credential schema ready", "version", version)

		if cfg.SecretKey == nil {
			slog.Warn("KEYPANEL_SECRET_KEY not set, the API key cannot be read or saved")
		}
		return sqliteadapter.NewCredentialRepo(db, credentialService, cfg.SecretKey), db.Close, nil
	}
}

// withStore loads configuration, opens the store and runs fn with both,
// closing the store afterwards.
func (a *app) withStore(ctx context.Context, fn func(cfg *config.Config, store driven.CredentialStore) error) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	store, closeStore, err := a.openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	defer func() {
		if closeErr := closeStore(); closeErr != nil {
			a.logger.Error("error closing credential store", "error", closeErr)
		}
	}()

	return fn(cfg, store)
}

// newProvider creates the Gemini client provider, seeded from the stored key
// when one is available.
func (a *app) newProvider(ctx context.Context, store driven.CredentialStore, factory driven.GeminiClientFactory) *application.GeminiClientProvider {
	key, err := store.Get(ctx)
	if err != nil {
		a.logger.Warn("failed to load stored API key", "error", err)
		return application.NewGeminiClientProvider(nil)
	}
	if key == "" {
		a.logger.Info("no API key configured, Gemini client disabled until a key is saved")
		return application.NewGeminiClientProvider(nil)
	}

	client, err := application.ConnectGeminiClient(ctx, factory, key)
	if err != nil {
		a.logger.Warn("gemini client not ready, save a new API key to retry", "error", err)
		return application.NewGeminiClientProvider(nil)
	}
	a.logger.Info("gemini client verified", "model", client.Model())
	return application.NewGeminiClientProvider(client)
}
