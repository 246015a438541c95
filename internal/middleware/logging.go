package middleware

import (
	"net/http"
	"time"

	"github.com/hongminglow/leads-api/internal/http/respond"
	"github.com/hongminglow/leads-api/internal/logging"
)

// statusWriter wraps http.ResponseWriter to capture the response status code
// and whether the header has gone out.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (sw *statusWriter) WriteHeader(status int) {
	if !sw.wroteHeader {
		sw.status = status
		sw.wroteHeader = true
	}
	sw.ResponseWriter.WriteHeader(status)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	sw.wroteHeader = true
	return sw.ResponseWriter.Write(b)
}

// Logging logs each request with method, path, status, and duration.
func Logging(log logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(sw, r)

		log.Info(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

// Recover turns a handler panic into a logged 500. If the handler had already
// started its response, the panic is only logged.
func Recover(log logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		defer func() {
			if v := recover(); v != nil {
				log.Error(r.Context(), "panic recovered",
					"panic", v,
					"path", r.URL.Path,
					"response_started", sw.wroteHeader,
				)
				if !sw.wroteHeader {
					respond.Error(w, http.StatusInternalServerError, "Internal server error")
				}
			}
		}()

		next.ServeHTTP(sw, r)
	})
}
