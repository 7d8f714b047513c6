package middleware

import (
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

// Logging writes one access log line per request.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := newStatusWriter(w)
		next.ServeHTTP(sw, r)

		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Str("query", r.URL.RawQuery).
			Int("status", sw.status).
			Str("request_id", GetRequestID(r.Context())).
			Dur("duration_ms", time.Since(start)).
			Msg("http_request")
	})
}
