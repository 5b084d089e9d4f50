/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Store types
const (
	StoreCassandra = "cassandra"
	StoreDynamoDB  = "dynamodb"
)

// Defaults applied to settings left empty
const (
	DefaultPageSize         = 50
	DefaultMaxPageSize      = 1000
	DefaultConsistency      = "LOCAL_QUORUM"
	DefaultCassandraTimeout = 5 * time.Second
	DefaultLogLevel         = "info"
)

// Config represents the entire YAML configuration
type Config struct {
	Store      Store      `yaml:"store"`
	Pagination Pagination `yaml:"pagination"`
	Log        Log        `yaml:"log"`
}

// Store selects and configures the store queries are executed against
type Store struct {
	Type      string    `yaml:"type"`
	Cassandra Cassandra `yaml:"cassandra"`
	DynamoDB  DynamoDB  `yaml:"dynamodb"`
}

// Cassandra contains the cluster connection details
type Cassandra struct {
	Hosts       []string      `yaml:"hosts"`
	Keyspace    string        `yaml:"keyspace"`
	Consistency string        `yaml:"consistency"`
	Timeout     time.Duration `yaml:"timeout"`
	Username    string        `yaml:"username"`
	Password    string        `yaml:"password"`
	PageSize    int           `yaml:"page_size"`
}

// DynamoDB contains the client and table details
type DynamoDB struct {
	Region    string `yaml:"region"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Table     string `yaml:"table"`
	// Endpoint overrides the service endpoint, e.g. for DynamoDB Local
	Endpoint string `yaml:"endpoint"`
}

// Pagination bounds the page sizes callers may request
type Pagination struct {
	DefaultPageSize int `yaml:"default_page_size"`
	MaxPageSize     int `yaml:"max_page_size"`
}

// Log configures the logger
type Log struct {
	Level string `yaml:"level"`
}

// Load reads the YAML configuration at path. Variables from the given .env files are
// loaded first when the files exist, then ${VAR} references in the file are expanded
// from the environment.
func Load(path string, envFiles ...string) (*Config, error) {
	if err := LoadEnv(envFiles...); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read the file: %w", err)
	}
	return Parse(data)
}

// LoadEnv loads variables from .env files, skipping files that do not exist. Without
// arguments it looks for .env in the working directory. Variables already set in the
// environment win.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", file, err)
		}
	}
	return nil
}

// Parse decodes a YAML configuration, expanding ${VAR} references from the environment,
// applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Pagination.DefaultPageSize == 0 {
		c.Pagination.DefaultPageSize = DefaultPageSize
	}
	if c.Pagination.MaxPageSize == 0 {
		c.Pagination.MaxPageSize = DefaultMaxPageSize
	}
	if c.Store.Cassandra.Consistency == "" {
		c.Store.Cassandra.Consistency = DefaultConsistency
	}
	if c.Store.Cassandra.Timeout == 0 {
		c.Store.Cassandra.Timeout = DefaultCassandraTimeout
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
}

// Validate checks that the selected store is configured
func (c *Config) Validate() error {
	switch c.Store.Type {
	case StoreCassandra:
		if len(c.Store.Cassandra.Hosts) == 0 {
			return fmt.Errorf("store.cassandra.hosts is required")
		}
		if c.Store.Cassandra.Keyspace == "" {
			return fmt.Errorf("store.cassandra.keyspace is required")
		}
	case StoreDynamoDB:
		if c.Store.DynamoDB.Region == "" {
			return fmt.Errorf("store.dynamodb.region is required")
		}
	case "":
		return fmt.Errorf("store.type is required")
	default:
		return fmt.Errorf("unknown store type %q, expected %s or %s", c.Store.Type, StoreCassandra, StoreDynamoDB)
	}

	if c.Pagination.DefaultPageSize < 0 || c.Pagination.MaxPageSize < 0 {
		return fmt.Errorf("pagination sizes must not be negative")
	}
	if c.Pagination.DefaultPageSize > c.Pagination.MaxPageSize {
		return fmt.Errorf("pagination.default_page_size %d exceeds pagination.max_page_size %d",
			c.Pagination.DefaultPageSize, c.Pagination.MaxPageSize)
	}
	return nil
}

// Cap returns requested lowered to the configured maximum. Other sizes, including
// non-positive ones, are returned as they are.
func (p Pagination) Cap(requested int) int {
	if p.MaxPageSize > 0 && requested > p.MaxPageSize {
		return p.MaxPageSize
	}
	return requested
}
