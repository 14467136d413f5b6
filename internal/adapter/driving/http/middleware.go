package httphandler

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"
)

// SessionCookieName is the cookie the web adapter keys dialog sessions on.
// The logging middleware records a short prefix of it to correlate requests.
const SessionCookieName = "keypanel_session"

// sessionPrefixLen is how much of the session ID is logged.
const sessionPrefixLen = 8

// statusWriter wraps http.ResponseWriter to capture the response status code
// and body size.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

// WriteHeader captures the status code and delegates to the embedded writer.
func (sw *statusWriter) WriteHeader(status int) {
	sw.status = status
	sw.ResponseWriter.WriteHeader(status)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	n, err := sw.ResponseWriter.Write(b)
	sw.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (sw *statusWriter) Unwrap() http.ResponseWriter {
	return sw.ResponseWriter
}

// loggingMiddleware logs each HTTP request. Only the path and the names of
// query parameters are recorded; form bodies and query values are never
// read, since settings requests carry the raw API key.
func loggingMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"duration", time.Since(start).Round(time.Microsecond),
		}
		if keys := queryKeys(r); len(keys) > 0 {
			attrs = append(attrs, "query_keys", keys)
		}
		if session := sessionPrefix(r); session != "" {
			attrs = append(attrs, "session", session)
		}
		if isHTMX(r) {
			attrs = append(attrs, "htmx", true)
		}
		logger.Info("http request", attrs...)
	})
}

// recoveryMiddleware recovers from panics in HTTP handlers, logs the error,
// and returns a 500 response. API routes get a JSON body; page and fragment
// routes get plain text so htmx does not swap JSON into the page.
func recoveryMiddleware(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				logger.Error("panic recovered",
					"panic", v,
					"path", r.URL.Path,
					"session", sessionPrefix(r),
				)
				if strings.HasPrefix(r.URL.Path, "/api/") {
					writeError(w, http.StatusInternalServerError, "internal server error")
					return
				}
				if isHTMX(r) {
					w.Header().Set("HX-Reswap", "none")
				}
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func sessionPrefix(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	if len(cookie.Value) > sessionPrefixLen {
		return cookie.Value[:sessionPrefixLen]
	}
	return cookie.Value
}

func queryKeys(r *http.Request) []string {
	if r.URL.RawQuery == "" {
		return nil
	}
	q := r.URL.Query()
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
