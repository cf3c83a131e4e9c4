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

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/shiftcal/rosterd"
	"github.com/shiftcal/rosterd/api"
	"github.com/shiftcal/rosterd/database"
	"github.com/shiftcal/rosterd/internal/config"
	"github.com/spf13/cobra"
)

func serveRun(_ *cobra.Command, _ []string, cfg *config.Config) {
	logger := commonRun()

	promRegistry := prometheus.NewRegistry()
	promRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	db, err := database.New(&database.Config{
		Logger:          logger,
		PromRegistry:    promRegistry,
		DataDir:         cfg.DataDir,
		MetadataBackend: cfg.MetadataBackend,
		MysqlDsn:        cfg.MysqlDsn,
		PostgresDsn:     cfg.PostgresDsn,
	})
	if err != nil {
		slog.Error("failed to open database: " + err.Error())
		os.Exit(1)
	}
	defer db.Close()

	service, err := rosterd.NewService(
		rosterd.WithLogger(logger),
		rosterd.WithDatabase(db),
		rosterd.WithPromRegistry(promRegistry),
	)
	if err != nil {
		slog.Error("failed to create roster service: " + err.Error())
		os.Exit(1)
	}
	defer service.Close()

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	apiServer := api.New(
		api.APIConfig{
			ListenAddress:   cfg.ApiListenAddress(),
			MetricsRegistry: promRegistry,
		},
		service,
		logger,
	)
	if err := apiServer.Start(ctx); err != nil {
		slog.Error("failed to start API server: " + err.Error())
		os.Exit(1)
	}

	// Wait for interrupt
	<-ctx.Done()
	logger.Info(
		"shutting down",
		"component", programName,
	)

	shutdownTimeout := 30 * time.Second
	if d, err := time.ParseDuration(cfg.ShutdownTimeout); err == nil {
		shutdownTimeout = d
	}
	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		shutdownTimeout,
	)
	defer cancel()
	if err := apiServer.Stop(shutdownCtx); err != nil {
		slog.Error("failed to stop API server: " + err.Error())
	}
}

func serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the roster API server",
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				slog.Error("no config found in context")
				os.Exit(1)
			}
			serveRun(cmd, args, cfg)
		},
	}
	return cmd
}
