package main

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ericfisherdev/keypanel/internal/adapter/driving/tui"
	"github.com/ericfisherdev/keypanel/internal/application"
	"github.com/ericfisherdev/keypanel/internal/config"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// runTUI shows the dialog in the terminal until it closes.
func (a *app) runTUI(ctx context.Context) error {
	if !a.isTerminal() {
		return fmt.Errorf("tui requires an interactive terminal, use \"keypanel key set\" instead")
	}

	return a.withStore(ctx, func(cfg *config.Config, store driven.CredentialStore) error {
		factory := a.factory(cfg)
		provider := a.newProvider(ctx, store, factory)

		// The program owns the terminal while it runs; host logs would
		// corrupt the rendered dialog.
		quiet := slog.New(slog.DiscardHandler)

		closed := make(chan struct{}, 1)
		host := application.NewSettingsHost(application.SettingsHostConfig{
			Store:          store,
			Scheduler:      a.scheduler,
			Provider:       provider,
			ClientFactory:  factory,
			AutoCloseDelay: cfg.AutoCloseDelay,
			Logger:         quiet,
			OnClose: func() {
				select {
				case closed <- struct{}{}:
				default:
				}
			},
		})
		host.Open(ctx)

		p := tea.NewProgram(tui.New(ctx, host, closed), tea.WithContext(ctx))
		if _, err := p.Run(); err != nil && ctx.Err() == nil {
			return fmt.Errorf("run terminal dialog: %w", err)
		}
		host.RequestClose()
		return nil
	})
}
