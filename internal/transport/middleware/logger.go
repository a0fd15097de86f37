package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/equitybridge-backend/pkg/ctxutil"
)

// Logger returns middleware that logs each HTTP request with method, path,
// status code, duration and the request and client ids.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			duration := time.Since(start)
			requestID := ctxutil.RequestIDFromCtx(r.Context())

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Duration("duration", duration),
				slog.String("request_id", requestID),
			}
			if principalID, _, ok := ctxutil.PrincipalFromCtx(r.Context()); ok {
				attrs = append(attrs, slog.String("principal_id", principalID))
			}
			if sw.clientID != "" {
				attrs = append(attrs, slog.String("client_id", sw.clientID))
			}

			level := slog.LevelInfo
			if sw.status >= 500 {
				level = slog.LevelError
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the response status code
// and the client id resolved further down the chain.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	clientID    string
}

func (w *statusWriter) setClientID(id string) { w.clientID = id }

// recordClientID reports the resolved client to an enclosing Logger.
func recordClientID(w http.ResponseWriter, id string) {
	if rec, ok := w.(interface{ setClientID(string) }); ok {
		rec.setClientID(id)
	}
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}
