// Package rpcapi is the External Interface (spec.md section 4.6 and
// section 6): a request/response HTTP surface plus a websocket event
// stream, so CLI tools and a host UI can drive the core without linking
// against it. Grounded on cmd/aios-desktop/main.go's DesktopServer
// (gorilla/mux router, otelhttp middleware, pkg/utils middleware stack,
// graceful shutdown) generalized from that file's placeholder/TODO
// handlers to the typed Query/Command dispatch of section 4.6.
package rpcapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/yourorg/tilecore/internal/actor"
	"github.com/yourorg/tilecore/internal/notify"
	"github.com/yourorg/tilecore/pkg/utils"
)

// defaultRateLimitPerMinute and defaultRateLimitBurst bound the
// query/command surface generously: it is driven by a local CLI and a
// host UI over loopback, not a public API, so this exists to catch a
// runaway client rather than to budget scarce capacity.
const (
	defaultRateLimitPerMinute = 6000
	defaultRateLimitBurst     = 200
)

// Server is the external interface's HTTP/websocket front end.
type Server struct {
	handle *actor.Handle
	hub    *notify.Hub
	logger *logrus.Logger
	tracer trace.Tracer

	registry            *prometheus.Registry
	upgrader            websocket.Upgrader
	httpServer          *http.Server
	rateLimitPerMinute  int
	rateLimitBurst      int
}

// NewServer builds a Server bound to handle for the query/command
// surface and hub for the event stream. It registers handle's
// Prometheus collectors against a dedicated registry, matching the
// teacher's "desktop package pulls in client_golang but never uses it"
// gap being closed rather than copied.
func NewServer(handle *actor.Handle, hub *notify.Hub, logger *logrus.Logger) *Server {
	registry := prometheus.NewRegistry()
	for _, c := range handle.MetricsCollectors() {
		registry.MustRegister(c)
	}

	return &Server{
		handle:   handle,
		hub:      hub,
		logger:   logger,
		tracer:   otel.Tracer("tilecore/rpcapi"),
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		rateLimitPerMinute: defaultRateLimitPerMinute,
		rateLimitBurst:     defaultRateLimitBurst,
	}
}

// Router builds the mux.Router serving the external interface, exported
// separately from Start so tests can drive it with httptest without a
// bound TCP listener.
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(utils.RecoveryMiddleware(s.logger))
	router.Use(utils.LoggingMiddleware(s.logger))
	router.Use(utils.SecurityHeadersMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RateLimitMiddleware(s.rateLimitPerMinute, s.rateLimitBurst))
	router.Use(otelhttp.NewMiddleware("tilecore"))

	router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/query", s.handleQuery).Methods(http.MethodPost)
	api.HandleFunc("/command", s.handleCommand).Methods(http.MethodPost)
	api.HandleFunc("/events", s.handleEvents).Methods(http.MethodGet)

	return router
}

// Start begins serving addr in a background goroutine, following
// DesktopServer.Start's fire-and-log-fatal-on-unexpected-exit pattern.
func (s *Server) Start(addr string) {
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		s.logger.WithField("addr", addr).Info("external interface listening")
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.WithError(err).Error("external interface server exited unexpectedly")
		}
	}()
}

// Shutdown gracefully drains in-flight requests, mirroring
// DesktopServer.WaitForShutdown's http.Server.Shutdown call.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeOK(w, map[string]string{"status": "ok"})
}

