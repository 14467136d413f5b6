package web

import (
	"io/fs"
	"net/http"
)

// RegisterRoutes registers all web GUI routes on the provided mux.
// Web routes serve HTML at / and /app/* paths; every POST requires a valid
// CSRF token. Static assets are served from the embedded filesystem at /static/*.
func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Static assets (embedded via go:embed).
	staticFS, _ := fs.Sub(StaticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	// Page routes.
	mux.HandleFunc("GET /{$}", h.Dashboard)

	// Dialog fragments (HTMX).
	mux.HandleFunc("GET /app/settings/dialog", h.DialogFragment)
	mux.HandleFunc("POST /app/settings/open", requireCSRF(h.OpenDialog))
	mux.HandleFunc("POST /app/settings/close", requireCSRF(h.CloseDialog))
	mux.HandleFunc("POST /app/settings/input", requireCSRF(h.EditInput))
	mux.HandleFunc("POST /app/settings/reveal", requireCSRF(h.ToggleReveal))
	mux.HandleFunc("POST /app/settings/clear", requireCSRF(h.ClearInput))
	mux.HandleFunc("POST /app/settings/save", requireCSRF(h.SaveKey))
}
