// Copyright 2025 Shiftcal Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shiftcal/rosterd"
)

// RosterService is the engine surface the API server exposes over HTTP.
type RosterService interface {
	ImportFromPath(path string) (*rosterd.ImportReport, error)
	ImportFromBytes(data []byte) (*rosterd.ImportReport, error)
	GetDuty(dateStr string) (*rosterd.DutyResult, error)
	SwapByName(
		info1 rosterd.SwapIdentifier,
		info2 rosterd.SwapIdentifier,
	) (*rosterd.SwapResult, error)
	SwapLogs() (*rosterd.SwapLogReport, error)
}

// APIConfig holds the configuration for the roster API server.
type APIConfig struct {
	ListenAddress string
	// MetricsRegistry, when set, enables the /metrics endpoint.
	MetricsRegistry *prometheus.Registry
}

// API is the roster REST API server.
type API struct {
	config     APIConfig
	logger     *slog.Logger
	service    RosterService
	httpServer *http.Server
	mu         sync.Mutex
}

// New creates a new roster API server instance.
func New(
	cfg APIConfig,
	service RosterService,
	logger *slog.Logger,
) *API {
	if logger == nil {
		logger = slog.New(
			slog.NewJSONHandler(io.Discard, nil),
		)
	}
	logger = logger.With("component", "api")
	if cfg.ListenAddress == "" {
		cfg.ListenAddress = ":8300"
	}
	return &API{
		config:  cfg,
		logger:  logger,
		service: service,
	}
}

// Start starts the HTTP server in a background goroutine.
func (a *API) Start(
	ctx context.Context,
) error {
	a.mu.Lock()
	if a.httpServer != nil {
		a.mu.Unlock()
		return errors.New("server already started")
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", a.handleRoot)
	mux.HandleFunc("GET /health", a.handleHealth)
	mux.HandleFunc(
		"GET /api/v1/duty/{date}",
		a.handleGetDuty,
	)
	mux.HandleFunc(
		"POST /api/v1/schedule/import",
		a.handleImport,
	)
	mux.HandleFunc(
		"POST /api/v1/schedule/swap",
		a.handleSwap,
	)
	mux.HandleFunc(
		"GET /api/v1/swaplogs",
		a.handleSwapLogs,
	)
	if a.config.MetricsRegistry != nil {
		mux.Handle(
			"GET /metrics",
			promhttp.HandlerFor(
				a.config.MetricsRegistry,
				promhttp.HandlerOpts{},
			),
		)
	}

	server := &http.Server{
		Addr:              a.config.ListenAddress,
		Handler:           mux,
		ReadHeaderTimeout: 60 * time.Second,
	}
	a.httpServer = server
	a.mu.Unlock()

	// Start the server with deterministic error detection
	if err := a.startServer(server); err != nil {
		a.mu.Lock()
		a.httpServer = nil
		a.mu.Unlock()
		return err
	}

	a.logger.Info(
		"roster API listener started on " +
			a.config.ListenAddress,
	)

	// Monitor context for cancellation
	go func() {
		<-ctx.Done()
		a.mu.Lock()
		srv := a.httpServer
		a.httpServer = nil
		a.mu.Unlock()

		if srv != nil {
			a.logger.Debug(
				"context cancelled, shutting down roster API server",
			)
			//nolint:contextcheck
			shutdownCtx, cancel := context.WithTimeout(
				context.Background(),
				30*time.Second,
			)
			defer cancel()
			//nolint:contextcheck
			if err := srv.Shutdown(
				shutdownCtx,
			); err != nil {
				a.logger.Error(
					"failed to shutdown roster API server on context cancellation",
					"error", err,
				)
			}
		}
	}()

	return nil
}

// Stop gracefully shuts down the HTTP server.
func (a *API) Stop(
	ctx context.Context,
) error {
	a.mu.Lock()
	srv := a.httpServer
	a.httpServer = nil
	a.mu.Unlock()

	if srv != nil {
		a.logger.Debug(
			"shutting down roster API server",
		)
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf(
				"failed to shutdown roster API server: %w",
				err,
			)
		}
	}
	return nil
}

// startServer starts the HTTP server with deterministic
// error detection. It binds the listening socket first so
// port conflicts are detected immediately, then serves in
// a background goroutine.
func (a *API) startServer(
	server *http.Server,
) error {
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return fmt.Errorf(
			"failed to listen for roster API server: %w",
			err,
		)
	}
	go func() {
		if err := server.Serve(ln); err != nil &&
			!errors.Is(err, http.ErrServerClosed) {
			a.logger.Error(
				"roster API server error",
				"error", err,
			)
		}
	}()
	return nil
}
