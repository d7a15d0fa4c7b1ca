// Package api exposes the Auction House and Settlement Claim operations
// over HTTP, and starts the websocket event hub and Prometheus scrape
// endpoint alongside them. Grounded on api/server.go's Server/Config
// shape and mux registration pattern, replacing its mock-data v1 routes
// with direct calls into an app.Engine.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dfba-labs/dfba-core/app"
	"github.com/dfba-labs/dfba-core/pkg/events"
	"github.com/dfba-labs/dfba-core/pkg/metrics"
)

// Config holds the HTTP server's listen settings.
type Config struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns a conservative default configuration.
func DefaultConfig() *Config {
	return &Config{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server is the HTTP front door onto one Engine.
type Server struct {
	httpServer *http.Server
	engine     *app.Engine
	hub        *events.Hub
	config     *Config
}

// NewServer creates a Server bound to engine. The caller is responsible
// for starting engine beforehand via app.NewEngine.
func NewServer(engine *app.Engine, config *Config) *Server {
	if config == nil {
		config = DefaultConfig()
	}
	return &Server{
		engine: engine,
		hub:    events.NewHub(),
		config: config,
	}
}

// Handler builds the route table as a plain http.Handler, independent of
// whether it is ever bound to a socket. Exported so tests can drive it
// with httptest.NewServer instead of a real listener.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.handleHealth)

	mux.HandleFunc("/v1/markets", s.handleCreateMarket)
	mux.HandleFunc("/v1/markets/", s.handleGetMarket)

	mux.HandleFunc("/v1/orders", s.handleSubmitOrder)
	mux.HandleFunc("/v1/orders/", s.handleOrderSub)

	mux.HandleFunc("/v1/batches/", s.handleBatch)

	mux.HandleFunc("/v1/oracle/", s.handleSetPrice)
	mux.HandleFunc("/v1/vault/deposit", s.handleDeposit)
	mux.HandleFunc("/v1/fees/", s.handleSetFees)

	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		if err := events.ServeHTTP(s.hub, w, r); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
		}
	})
	mux.Handle("/metrics", metrics.Handler())

	return corsMiddleware(mux)
}

// Start serves Handler() until the process is asked to stop. Blocks like
// http.Server.ListenAndServe.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	go s.hub.Run()
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.hub.Stop()
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
