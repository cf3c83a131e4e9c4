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

package metadata

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shiftcal/rosterd/database/models"
	"github.com/shiftcal/rosterd/database/plugin/metadata/mysql"
	"github.com/shiftcal/rosterd/database/plugin/metadata/postgres"
	"github.com/shiftcal/rosterd/database/plugin/metadata/sqlite"
	"gorm.io/gorm"
)

// MetadataStore is the interface for the roster metadata store. All accessors
// accept an optional transaction handle; passing nil runs the operation
// against the store's base connection.
type MetadataStore interface {
	// Database
	Close() error
	DB() *gorm.DB
	Transaction() *gorm.DB

	// Duty schedules
	GetSchedule(date time.Time, txn *gorm.DB) (*models.DutySchedule, error)
	GetSchedules(txn *gorm.DB) ([]models.DutySchedule, error)
	GetLatestDutyDate(txn *gorm.DB) (*time.Time, error)
	HasSchedules(txn *gorm.DB) (bool, error)
	ReplaceSchedules(
		schedules []models.DutySchedule,
		txn *gorm.DB,
	) (deletedSchedules int64, deletedLogs int64, err error)
	SetScheduleEmployee(
		date time.Time,
		role models.Role,
		name *string,
		txn *gorm.DB,
	) error

	// Swap audit log
	AddSwapLog(entry *models.SwapLog, txn *gorm.DB) error
	GetSwapLogs(txn *gorm.DB) ([]models.SwapLog, error)
}

// New creates a new metadata store using the named backend
func New(
	backend string,
	dataDir string,
	dsn string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (MetadataStore, error) {
	switch backend {
	case "", "sqlite":
		return sqlite.New(dataDir, logger, promRegistry)
	case "mysql":
		return mysql.New(dsn, logger, promRegistry)
	case "postgres":
		return postgres.New(dsn, logger, promRegistry)
	default:
		return nil, fmt.Errorf("unknown metadata store backend: %s", backend)
	}
}
