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

package rosterd

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shiftcal/rosterd/database"
)

// Service is the duty roster reconciliation engine. It owns no state of its
// own; every operation is a short-lived transaction against the store.
type Service struct {
	logger       *slog.Logger
	db           *database.Database
	promRegistry prometheus.Registerer
	now          func() time.Time
	metrics      serviceMetrics
}

type serviceMetrics struct {
	imports *prometheus.CounterVec
	swaps   *prometheus.CounterVec
	queries *prometheus.CounterVec
}

type ServiceOptionFunc func(*Service)

// WithLogger specifies the logger object to use for logging messages
func WithLogger(logger *slog.Logger) ServiceOptionFunc {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithDatabase specifies the database to run operations against
func WithDatabase(db *database.Database) ServiceOptionFunc {
	return func(s *Service) {
		s.db = db
	}
}

// WithPromRegistry specifies the prometheus registry to use for metrics
func WithPromRegistry(registry prometheus.Registerer) ServiceOptionFunc {
	return func(s *Service) {
		s.promRegistry = registry
	}
}

// WithTimeSource overrides the clock used to resolve the "today" sentinel
// and is intended for tests
func WithTimeSource(now func() time.Time) ServiceOptionFunc {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a roster service around an opened database.
func NewService(opts ...ServiceOptionFunc) (*Service, error) {
	s := &Service{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.db == nil {
		return nil, errors.New("no database provided")
	}
	if s.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		s.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	s.logger = s.logger.With("component", "roster")
	s.registerMetrics()
	return s, nil
}

func (s *Service) registerMetrics() {
	factory := promauto.With(s.promRegistry)
	s.metrics.imports = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rosterd_imports_total",
			Help: "Number of roster import operations",
		},
		[]string{"result"},
	)
	s.metrics.swaps = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rosterd_swaps_total",
			Help: "Number of duty swap operations",
		},
		[]string{"result"},
	)
	s.metrics.queries = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rosterd_queries_total",
			Help: "Number of duty query operations",
		},
		[]string{"result"},
	)
}

func (s *Service) observe(counter *prometheus.CounterVec, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	counter.WithLabelValues(result).Inc()
}

// Database returns the underlying database instance.
func (s *Service) Database() *database.Database {
	return s.db
}

// Close shuts down the underlying database.
func (s *Service) Close() error {
	return s.db.Close()
}
