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

package database

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shiftcal/rosterd/database/plugin/metadata"
)

// Config describes how to open the roster database.
type Config struct {
	Logger       *slog.Logger
	PromRegistry prometheus.Registerer
	DataDir      string
	// MetadataBackend selects the metadata store backend ("sqlite",
	// "mysql" or "postgres"). Empty defaults to sqlite.
	MetadataBackend string
	// MysqlDsn is the connection string for the mysql backend. It must
	// include parseTime=true.
	MysqlDsn string
	// PostgresDsn is the connection string for the postgres backend.
	PostgresDsn string
}

// Database wraps the metadata store that holds duty schedules and the swap
// audit log.
type Database struct {
	logger   *slog.Logger
	metadata metadata.MetadataStore
	dataDir  string
}

// DataDir returns the path to the data directory used for storage
func (d *Database) DataDir() string {
	return d.dataDir
}

// Logger returns the logger instance
func (d *Database) Logger() *slog.Logger {
	return d.logger
}

// Metadata returns the underlying metadata store instance
func (d *Database) Metadata() metadata.MetadataStore {
	return d.metadata
}

// Transaction starts a new database transaction and returns a handle to it
func (d *Database) Transaction(readWrite bool) *Txn {
	return NewTxn(d, readWrite)
}

// Close cleans up the database connections
func (d *Database) Close() error {
	return d.Metadata().Close()
}

// New creates a new database instance from the provided config. An empty
// DataDir with the sqlite backend gives an in-memory database.
func New(cfg *Config) (*Database, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	logger := cfg.Logger
	if logger == nil {
		// Create logger to throw away logs
		// We do this so we don't have to add guards around every log operation
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	dsn := cfg.PostgresDsn
	if cfg.MetadataBackend == "mysql" {
		dsn = cfg.MysqlDsn
	}
	metadataDb, err := metadata.New(
		cfg.MetadataBackend,
		cfg.DataDir,
		dsn,
		logger,
		cfg.PromRegistry,
	)
	if err != nil {
		return nil, err
	}
	db := &Database{
		logger:   logger,
		metadata: metadataDb,
		dataDir:  cfg.DataDir,
	}
	return db, nil
}
