package middleware

import (
	"log"
	"net/http"
	"strings"
	"time"
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    int64
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// LoggingMiddleware logs HTTP requests in key=value form, including the
// tenant segment of versioned API paths.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		log.Printf(
			"method=%s path=%s tenant=%s status=%d duration=%s bytes=%d ip=%s user_agent=%s",
			r.Method,
			r.URL.Path,
			tenantFromPath(r.URL.Path),
			wrapped.statusCode,
			time.Since(start),
			wrapped.written,
			r.RemoteAddr,
			r.UserAgent(),
		)
	})
}

// tenantFromPath pulls the tenant segment out of /v1/{tenant}/... paths.
func tenantFromPath(path string) string {
	rest, ok := strings.CutPrefix(path, "/v1/")
	if !ok {
		return "-"
	}
	if i := strings.IndexByte(rest, '/'); i > 0 {
		return rest[:i]
	}
	if rest != "" {
		return rest
	}
	return "-"
}
