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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

type ctxKey string

const configContextKey ctxKey = "rosterd.config"

func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configContextKey, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, ok := ctx.Value(configContextKey).(*Config)
	if !ok {
		return nil
	}
	return cfg
}

const DefaultMetadataBackend = "sqlite"

type Config struct {
	BindAddr        string `yaml:"bindAddr"        split_words:"true"`
	ApiPort         uint   `yaml:"apiPort"         split_words:"true"`
	DataDir         string `yaml:"dataDir"         split_words:"true"`
	MetadataBackend string `yaml:"metadataBackend" envconfig:"ROSTERD_METADATA_BACKEND"`
	MysqlDsn        string `yaml:"mysqlDsn"        envconfig:"ROSTERD_MYSQL_DSN"`
	PostgresDsn     string `yaml:"postgresDsn"     envconfig:"ROSTERD_POSTGRES_DSN"`
	ShutdownTimeout string `yaml:"shutdownTimeout" split_words:"true"`
}

var globalConfig = &Config{
	BindAddr:        "",
	ApiPort:         8300,
	DataDir:         ".rosterd",
	MetadataBackend: DefaultMetadataBackend,
	MysqlDsn:        "",
	PostgresDsn:     "",
	ShutdownTimeout: "30s",
}

// ApiListenAddress returns the bind address for the API server.
func (c *Config) ApiListenAddress() string {
	return fmt.Sprintf("%s:%d", c.BindAddr, c.ApiPort)
}

// LoadConfig loads the config from an optional YAML file and applies any
// environment variable overrides.
func LoadConfig(configFile string) (*Config, error) {
	// Load config file as YAML if provided
	if configFile == "" {
		// Check for config file in this path: ~/.rosterd/rosterd.yaml
		if homeDir, err := os.UserHomeDir(); err == nil {
			userPath := filepath.Join(homeDir, ".rosterd", "rosterd.yaml")
			if _, err := os.Stat(userPath); err == nil {
				configFile = userPath
			}
		}

		// Try to check for /etc/rosterd/rosterd.yaml if still not found
		if configFile == "" {
			systemPath := "/etc/rosterd/rosterd.yaml"
			if _, err := os.Stat(systemPath); err == nil {
				configFile = systemPath
			}
		}
	}

	if configFile != "" {
		buf, err := os.ReadFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := yaml.Unmarshal(buf, globalConfig); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Load config values from environment variables
	// We use "dummy" as the app name here to (mostly) prevent picking up env
	// vars that we hadn't explicitly specified in annotations above
	if err := envconfig.Process("dummy", globalConfig); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}

	return globalConfig, nil
}

// GetConfig returns the global config instance
func GetConfig() *Config {
	return globalConfig
}
