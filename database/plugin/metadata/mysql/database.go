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

package mysql

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shiftcal/rosterd/database/models"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MetadataStoreMysql is a MySQL-based implementation of the metadata store.
type MetadataStoreMysql struct {
	promRegistry prometheus.Registerer
	db           *gorm.DB
	logger       *slog.Logger
}

// New creates a MySQL metadata store using the provided DSN. The DSN must
// include parseTime=true so date columns scan into time.Time.
func New(
	dsn string,
	logger *slog.Logger,
	promRegistry prometheus.Registerer,
) (*MetadataStoreMysql, error) {
	if dsn == "" {
		return nil, errors.New("mysql DSN is required")
	}
	metadataDb, err := gorm.Open(
		gormmysql.Open(dsn),
		&gorm.Config{
			Logger:                 gormlogger.Discard,
			SkipDefaultTransaction: true,
			PrepareStmt:            true,
		},
	)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}
	db := &MetadataStoreMysql{
		db:           metadataDb,
		logger:       logger,
		promRegistry: promRegistry,
	}
	if db.logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		db.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	db.logger.Info(
		"connected to mysql metadata store",
		"database", databaseFromDSN(dsn),
	)
	// Configure connection pool
	sqlDB, err := db.db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)
	// Create table schemas
	for _, model := range models.MigrateModels {
		db.logger.Debug(fmt.Sprintf("creating table: %#v", model))
		if err := db.db.AutoMigrate(model); err != nil {
			return db, err
		}
	}
	return db, nil
}

func databaseFromDSN(dsn string) string {
	base := dsn
	if idx := strings.Index(base, "?"); idx >= 0 {
		base = base[:idx]
	}
	slash := strings.LastIndex(base, "/")
	if slash < 0 || slash == len(base)-1 {
		return ""
	}
	return base[slash+1:]
}

// Close shuts down the database connection.
func (d *MetadataStoreMysql) Close() error {
	db, err := d.DB().DB()
	if err != nil {
		return fmt.Errorf("get database handle: %w", err)
	}
	return db.Close()
}

// DB returns the underlying GORM database handle.
func (d *MetadataStoreMysql) DB() *gorm.DB {
	return d.db
}

// Transaction creates a new database transaction. Serializable isolation
// makes concurrent roster replaces and overlapping swaps conflict at commit
// instead of interleaving; the loser fails and is never silently merged.
func (d *MetadataStoreMysql) Transaction() *gorm.DB {
	return d.DB().Begin(&sql.TxOptions{
		Isolation: sql.LevelSerializable,
	})
}

// resolveDB returns the *gorm.DB for the given transaction, or the base
// connection if txn is nil.
func (d *MetadataStoreMysql) resolveDB(txn *gorm.DB) *gorm.DB {
	if txn != nil {
		return txn
	}
	return d.DB()
}
