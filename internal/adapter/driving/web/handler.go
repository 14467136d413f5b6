// Package web implements the HTML GUI driving adapter using templ components.
package web

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/a-h/templ"

	httphandler "github.com/ericfisherdev/keypanel/internal/adapter/driving/http"
	"github.com/ericfisherdev/keypanel/internal/adapter/driving/web/templates"
	vm "github.com/ericfisherdev/keypanel/internal/adapter/driving/web/viewmodel"
	"github.com/ericfisherdev/keypanel/internal/application"
	"github.com/ericfisherdev/keypanel/internal/application/dialog"
	"github.com/ericfisherdev/keypanel/internal/domain/model"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

const sessionCookieName = httphandler.SessionCookieName

// Handler is the web GUI driving adapter that serves the settings page and
// the API key dialog fragments.
type Handler struct {
	sessions *application.SessionRegistry
	store    driven.CredentialStore
	provider *application.GeminiClientProvider
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	sessions *application.SessionRegistry,
	store driven.CredentialStore,
	provider *application.GeminiClientProvider,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		sessions: sessions,
		store:    store,
		provider: provider,
		logger:   logger,
	}
}

// Dashboard renders the settings page with the full HTML layout.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	host := h.session(w, r)
	token := csrfToken(w, r)

	page := vm.PageViewModel{
		Title:  "keypanel",
		Dialog: toDialogViewModel(host.Dialog().Snapshot(), token),
		Status: h.statusViewModel(r),
	}
	h.render(w, r, templates.Page(page), "dashboard")
}

// DialogFragment renders the dialog in its current state. A closed dialog
// renders an empty body.
func (h *Handler) DialogFragment(w http.ResponseWriter, r *http.Request) {
	host := h.session(w, r)
	h.renderDialog(w, r, host)
}

// OpenDialog asks the host to show the dialog.
func (h *Handler) OpenDialog(w http.ResponseWriter, r *http.Request) {
	host := h.session(w, r)
	host.Open(r.Context())
	h.renderDialog(w, r, host)
}

// CloseDialog asks the host to hide the dialog.
func (h *Handler) CloseDialog(w http.ResponseWriter, r *http.Request) {
	host := h.session(w, r)
	host.RequestClose()
	h.renderDialog(w, r, host)
}

// EditInput records a keystroke and re-renders only the feedback and action
// controls, plus the reveal toggle out of band, so the input element keeps
// focus.
func (h *Handler) EditInput(w http.ResponseWriter, r *http.Request) {
	host := h.session(w, r)
	syncInput(host.Dialog(), r)

	m := toDialogViewModel(host.Dialog().Snapshot(), csrfToken(w, r))
	h.render(w, r, templates.DialogControls(m), "dialog controls")
	h.render(w, r, templates.RevealToggle(m), "reveal toggle")
}

// ToggleReveal switches the input between obscured and plain text.
func (h *Handler) ToggleReveal(w http.ResponseWriter, r *http.Request) {
	host := h.session(w, r)
	syncInput(host.Dialog(), r)
	host.Dialog().ToggleReveal()
	h.renderDialog(w, r, host)
}

// ClearInput empties the draft without touching the stored key.
func (h *Handler) ClearInput(w http.ResponseWriter, r *http.Request) {
	host := h.session(w, r)
	host.Dialog().Clear()
	h.renderDialog(w, r, host)
}

// SaveKey validates and stores the submitted key. Validation failures are
// shown inline; the response is always the re-rendered dialog.
func (h *Handler) SaveKey(w http.ResponseWriter, r *http.Request) {
	host := h.session(w, r)
	d := host.Dialog()
	syncInput(d, r)

	if err := d.Save(r.Context()); err != nil {
		h.logSaveError(err)
		h.renderDialog(w, r, host)
		return
	}

	h.logger.Info("api key saved")
	h.renderDialog(w, r, host)
	h.render(w, r, templates.StatusCard(h.statusViewModel(r), true), "status card")
}

// logSaveError records why a save did not happen. Input mistakes are routine
// and only logged at debug; the store's own error is logged by the dialog.
func (h *Handler) logSaveError(err error) {
	switch {
	case errors.Is(err, dialog.ErrClosed), errors.Is(err, dialog.ErrSaveInProgress):
		h.logger.Info("api key save ignored", "reason", err)
	case errors.Is(err, dialog.ErrSaveFailed):
		h.logger.Warn("api key save failed")
	default:
		h.logger.Debug("api key rejected", "reason", dialog.Message(err))
	}
}

// syncInput applies the submitted field value when it differs from the
// dialog's input, so a stale request never clears feedback needlessly.
func syncInput(d *dialog.Dialog, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		return
	}
	if _, ok := r.PostForm["api_key"]; !ok {
		return
	}
	value := r.PostForm.Get("api_key")
	if value != d.Snapshot().Input {
		d.Edit(value)
	}
}

// session returns the SettingsHost for the request's session cookie,
// creating a new session when the cookie is missing or unknown.
func (h *Handler) session(w http.ResponseWriter, r *http.Request) *application.SettingsHost {
	if cookie, err := r.Cookie(sessionCookieName); err == nil {
		if host, ok := h.sessions.Get(cookie.Value); ok {
			return host
		}
	}

	id, host := h.sessions.Create()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return host
}

func (h *Handler) renderDialog(w http.ResponseWriter, r *http.Request, host *application.SettingsHost) {
	m := toDialogViewModel(host.Dialog().Snapshot(), csrfToken(w, r))
	h.render(w, r, templates.Dialog(m), "dialog")
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, c templ.Component, name string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render "+name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) statusViewModel(r *http.Request) vm.StatusViewModel {
	var status vm.StatusViewModel

	key, err := h.store.Get(r.Context())
	if err != nil {
		h.logger.Warn("failed to load credential status", "error", err)
	} else if key != "" {
		status.Configured = true
		status.KeyMasked = model.MaskCredential(key)
	}

	if client := h.provider.Get(); client != nil {
		status.ClientReady = true
		status.Model = client.Model()
	}
	return status
}

// toDialogViewModel converts a dialog snapshot into its presentation form.
func toDialogViewModel(v dialog.View, csrf string) vm.DialogViewModel {
	inputType := "password"
	if v.Revealed {
		inputType = "text"
	}

	return vm.DialogViewModel{
		Open:             v.Open,
		Input:            v.Input,
		InputType:        inputType,
		Revealed:         v.Revealed,
		Saving:           v.Saving,
		ErrorMessage:     v.ErrorMessage,
		Success:          v.Status == dialog.StatusSuccess,
		HasExisting:      v.HasExisting,
		ShowClear:        v.ShowClear,
		CanSave:          v.CanSave,
		AutoCloseMillis:  v.AutoCloseDelay.Milliseconds(),
		ProviderURL:      ProviderKeyURL,
		InstructionsHTML: instructionsHTML,
		CSRFToken:        csrf,
	}
}
