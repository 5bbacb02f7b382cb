// Package utils holds the external interface's HTTP middleware stack
// (spec.md §4.6), adapted from a public-facing desktop server's
// middleware to a loopback JSON daemon driven by a local CLI and a
// host UI: no auth, no browser-rendered responses, and logging keyed
// on the query/command type rather than generic request metadata.
package utils

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// LoggingMiddleware logs each request against the query/command
// surface of spec.md §4.6: the dispatched type for /api/v1/query and
// /api/v1/command bodies, alongside the resulting status and latency.
// Generic web-server fields (remote_addr, user_agent) are dropped --
// every caller is the bundled CLI or a local host UI over loopback, so
// neither carries useful information here.
func LoggingMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

			fields := logrus.Fields{"method": r.Method, "path": r.URL.Path}
			if t := dispatchedType(r); t != "" {
				fields["dispatch_type"] = t
			}

			next.ServeHTTP(wrapped, r)

			fields["status"] = wrapped.statusCode
			fields["duration_ms"] = time.Since(start).Milliseconds()
			logger.WithFields(fields).Info("query/command handled")
		})
	}
}

// dispatchedType peeks at a /api/v1/query or /api/v1/command body for
// its "type" discriminator (rpcapi.QueryRequest/CommandRequest) without
// consuming it, so the logged event names the dispatched operation
// instead of just the shared endpoint path both queries and commands
// are posted to.
func dispatchedType(r *http.Request) string {
	if r.Method != http.MethodPost || r.Body == nil {
		return ""
	}
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return ""
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	var probe struct {
		Type string `json:"type"`
	}
	if json.Unmarshal(body, &probe) != nil {
		return ""
	}
	return probe.Type
}

// CORSMiddleware allows a browser-based host UI to call the daemon
// from a different origin than it was served from (e.g. a local dev
// server), the one consumer on this loopback API that a browser's
// same-origin policy actually affects.
func CORSMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Set CORS headers
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
			w.Header().Set("Access-Control-Max-Age", "86400")

			// Handle preflight requests
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimitMiddleware implements rate limiting
func RateLimitMiddleware(requestsPerMinute int, burst int) mux.MiddlewareFunc {
	limiter := rate.NewLimiter(rate.Limit(requestsPerMinute)/60, burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				http.Error(w, "Rate limit exceeded", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// SecurityHeadersMiddleware sets the one response header that still
// means something on this daemon: X-Content-Type-Options, so a browser
// host UI never MIME-sniffs a JSON response body into something else.
// HSTS, CSP, and frame-ancestors policies were dropped -- they defend a
// TLS-served, HTML-rendering origin, and this daemon is plain-HTTP
// loopback JSON with no page of its own to frame or inject into.
func SecurityHeadersMiddleware() mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	}
}

// RecoveryMiddleware recovers a panicking handler so one bad
// query/command never takes the daemon down for every other caller.
func RecoveryMiddleware(logger *logrus.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.WithFields(logrus.Fields{
						"error":  err,
						"method": r.Method,
						"path":   r.URL.Path,
					}).Error("Panic recovered")

					http.Error(w, "Internal server error", http.StatusInternalServerError)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

