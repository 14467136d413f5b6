package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ericfisherdev/keypanel/internal/application/dialog"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// SettingsHost is the host side of the credential dialog for one client
// session. It owns the visibility flag; the dialog only asks for it to be
// cleared. After every successful save it rebuilds the Gemini client from
// the stored key.
type SettingsHost struct {
	store    driven.CredentialStore
	provider *GeminiClientProvider
	factory  driven.GeminiClientFactory
	logger   *slog.Logger
	onClose  func()
	dialog   *dialog.Dialog

	// mu serialises visibility transitions so the dialog always ends up
	// matching open.
	mu   sync.Mutex
	open bool
}

// SettingsHostConfig carries the collaborators shared by every SettingsHost.
type SettingsHostConfig struct {
	Store          driven.CredentialStore
	Scheduler      driven.Scheduler
	Provider       *GeminiClientProvider
	ClientFactory  driven.GeminiClientFactory
	AutoCloseDelay time.Duration
	Logger         *slog.Logger

	// OnClose, if set, is called after the host hides the dialog, whether
	// the user dismissed it or the post-save timer fired.
	OnClose func()
}

// NewSettingsHost creates a host with a closed dialog.
func NewSettingsHost(cfg SettingsHostConfig) *SettingsHost {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	h := &SettingsHost{
		store:    cfg.Store,
		provider: cfg.Provider,
		factory:  cfg.ClientFactory,
		logger:   logger,
		onClose:  cfg.OnClose,
	}
	h.dialog = dialog.New(cfg.Store, cfg.Scheduler, dialog.Options{
		OnRequestClose: h.RequestClose,
		OnSaved:        h.refreshClient,
		AutoCloseDelay: cfg.AutoCloseDelay,
		Logger:         logger,
	})
	return h
}

// Dialog returns the dialog driven by this host.
func (h *SettingsHost) Dialog() *dialog.Dialog {
	return h.dialog
}

// IsOpen reports whether the dialog is currently visible.
func (h *SettingsHost) IsOpen() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.open
}

// Open makes the dialog visible, re-initialising it from the store.
func (h *SettingsHost) Open(ctx context.Context) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.open {
		return
	}
	h.open = true
	h.dialog.SetOpen(ctx, true)
}

// RequestClose hides the dialog. It is safe to call when already closed.
func (h *SettingsHost) RequestClose() {
	if !h.close() {
		return
	}
	if h.onClose != nil {
		h.onClose()
	}
}

func (h *SettingsHost) close() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.open {
		return false
	}
	h.open = false
	h.dialog.SetOpen(context.Background(), false)
	return true
}

// refreshClient rebuilds and verifies the Gemini client from the freshly
// stored key. Failures are logged; the dialog has already reported success.
func (h *SettingsHost) refreshClient() {
	if h.provider == nil || h.factory == nil {
		return
	}

	ctx := context.Background()
	key, err := h.store.Get(ctx)
	if err != nil {
		h.logger.Error("failed to reload saved API key", "error", err)
		return
	}
	if key == "" {
		return
	}

	client, err := ConnectGeminiClient(ctx, h.factory, key)
	if err != nil {
		// The previous client was built for a key that is no longer stored.
		h.provider.Replace(nil)
		h.logger.Warn("gemini client not ready", "error", err)
		return
	}
	h.provider.Replace(client)
	h.logger.Info("gemini client updated", "model", client.Model())
}
