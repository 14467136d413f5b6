package httphandler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ericfisherdev/keypanel/internal/application"
	"github.com/ericfisherdev/keypanel/internal/domain/model"
	"github.com/ericfisherdev/keypanel/internal/domain/port/driven"
)

// Handler is the HTTP driving adapter that serves the read-only REST API.
// It never returns the raw credential.
type Handler struct {
	store    driven.CredentialStore
	provider *application.GeminiClientProvider
	logger   *slog.Logger
}

// NewHandler creates a Handler with all required dependencies.
func NewHandler(
	store driven.CredentialStore,
	provider *application.GeminiClientProvider,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		store:    store,
		provider: provider,
		logger:   logger,
	}
}

// RegisterAPIRoutes registers the JSON API routes on mux.
func RegisterAPIRoutes(mux *http.ServeMux, h *Handler) {
	mux.HandleFunc("GET /api/v1/health", h.Health)
	mux.HandleFunc("GET /api/v1/credential", h.CredentialStatus)
}

// ApplyMiddleware wraps handler with logging and recovery middleware.
func ApplyMiddleware(handler http.Handler, logger *slog.Logger) http.Handler {
	// Recovery innermost so panics are caught before logging.
	wrapped := recoveryMiddleware(logger, handler)
	return loggingMiddleware(logger, wrapped)
}

// NewServeMux creates an http.Handler with the API routes registered and
// wrapped with logging and recovery middleware.
func NewServeMux(h *Handler, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()
	RegisterAPIRoutes(mux, h)
	return ApplyMiddleware(mux, logger)
}

// CredentialStatus reports whether an API key is stored, its masked form,
// and whether a Gemini client is currently available.
func (h *Handler) CredentialStatus(w http.ResponseWriter, r *http.Request) {
	key, err := h.store.Get(r.Context())
	if err != nil {
		h.logger.Error("failed to load credential", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	resp := CredentialStatusResponse{
		Configured: key != "",
		Masked:     model.MaskCredential(key),
	}

	if inspector, ok := h.store.(driven.CredentialInspector); ok && key != "" {
		cred, err := inspector.Inspect(r.Context())
		if err != nil {
			h.logger.Warn("failed to inspect credential", "error", err)
		} else if cred != nil && !cred.UpdatedAt.IsZero() {
			resp.UpdatedAt = cred.UpdatedAt.UTC().Format(time.RFC3339)
		}
	}

	if client := h.provider.Get(); client != nil {
		resp.ClientReady = true
		resp.Model = client.Model()
	}

	writeJSON(w, http.StatusOK, resp)
}

// Health returns a simple health check response.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
