package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tso-redispatch/redispatch/pkg/log"
	"github.com/tso-redispatch/redispatch/pkg/metrics"
	"github.com/tso-redispatch/redispatch/pkg/orders"
	"github.com/tso-redispatch/redispatch/pkg/stream"
)

// Server is the redispatch order service HTTP API
type Server struct {
	streams *stream.Server
	orders  *orders.Service
	logger  zerolog.Logger
	http    *http.Server
}

// NewServer creates a new API server
func NewServer(streams *stream.Server, orderSvc *orders.Service) *Server {
	return &Server{
		streams: streams,
		orders:  orderSvc,
		logger:  log.WithComponent("api"),
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", s.handleHealthz)
	mux.HandleFunc("/redispatch/", s.handleRedispatch)
	return mux
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start(addr string) error {
	s.http = &http.Server{
		Addr:        addr,
		Handler:     s.Handler(),
		ReadTimeout: 30 * time.Second,
		// No write timeout: stream connections are long-lived
		IdleTimeout: 120 * time.Second,
	}

	s.logger.Info().Str("addr", addr).Msg("API listening")
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server error: %w", err)
	}
	return nil
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "ok")
}

// handleRedispatch routes by hand on the escaped path: order ids carry
// percent-encoded slashes, so the path must be split before decoding.
//
//	GET  /redispatch/{entityId}/stream
//	GET  /redispatch/{entityId}/orders/{orderId}
//	POST /redispatch/{entityId}/orders/{orderId}/acknowledgement
func (s *Server) handleRedispatch(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.EscapedPath(), "/redispatch/"), "/")

	switch {
	case len(parts) == 2 && parts[1] == "stream" && r.Method == http.MethodGet:
		s.handleStream(w, r, parts[0])
	case len(parts) == 3 && parts[1] == "orders" && r.Method == http.MethodGet:
		s.handleGetOrder(w, r, parts[0], parts[2])
	case len(parts) == 4 && parts[1] == "orders" && parts[3] == "acknowledgement" && r.Method == http.MethodPost:
		s.handleAcknowledge(w, r, parts[0], parts[2])
	default:
		http.NotFound(w, r)
	}
}
