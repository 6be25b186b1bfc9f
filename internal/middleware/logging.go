package middleware

import (
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nw3q/toshin-chieria-calender-api/internal/platform/logger"
)

// RequestLogger loguea método, path, status, bytes y duración de cada request.
// El request id (si existe) se incluye para poder correlacionar con los
// logs del fetcher.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			fields := map[string]any{
				"method":   r.Method,
				"path":     r.URL.Path,
				"status":   ww.Status(),
				"bytes":    ww.BytesWritten(),
				"duration": time.Since(start).String(),
			}
			if id, ok := GetRequestID(r.Context()); ok {
				fields["request_id"] = id
			}

			log.Info("http request", fields)
		})
	}
}
