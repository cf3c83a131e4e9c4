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
	"log/slog"
	"os"

	"github.com/shiftcal/rosterd"
	"github.com/shiftcal/rosterd/database"
	"github.com/shiftcal/rosterd/internal/config"
	"github.com/spf13/cobra"
)

func importRun(args []string, cfg *config.Config) {
	logger := commonRun()

	db, err := database.New(&database.Config{
		Logger:          logger,
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
	)
	if err != nil {
		slog.Error("failed to create roster service: " + err.Error())
		os.Exit(1)
	}
	defer service.Close()

	report, err := service.ImportFromPath(args[0])
	if err != nil {
		slog.Error("import failed: " + err.Error())
		os.Exit(1)
	}
	logger.Info(
		report.Message,
		"component", programName,
		"inserted", report.Inserted,
		"deleted_schedules", report.DeletedSchedules,
		"deleted_swap_logs", report.DeletedSwapLogs,
	)
}

func importCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [workbook-path]",
		Short: "Replace the stored roster with the contents of a workbook",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			cfg := config.FromContext(cmd.Context())
			if cfg == nil {
				slog.Error("no config found in context")
				os.Exit(1)
			}
			importRun(args, cfg)
		},
	}
	return cmd
}
