package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the salarydex API configuration.
type Config struct {
	HTTP          HTTPConfig          `yaml:"http"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	Collection    CollectionConfig    `yaml:"collection"`
	Pagination    PaginationConfig    `yaml:"pagination"`
	Bulk          BulkConfig          `yaml:"bulk"`
	Cache         CacheConfig         `yaml:"cache"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// ElasticsearchConfig holds search engine connection settings.
type ElasticsearchConfig struct {
	Addresses        []string `yaml:"addresses"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	CACertPath       string   `yaml:"ca_cert_path"`
	MaxRetries       int      `yaml:"max_retries"`
	Compress         bool     `yaml:"compress"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// CollectionConfig holds the target collection and its index settings.
type CollectionConfig struct {
	Name         string `yaml:"name"`
	Shards       int    `yaml:"shards"`   // 0 = engine default
	Replicas     *int   `yaml:"replicas"` // unset = engine default
	DistinctSize int    `yaml:"distinct_size"`
}

// PaginationConfig holds listing limits.
type PaginationConfig struct {
	MaxPageSize int `yaml:"max_page_size"`
}

// BulkConfig holds ingestion settings.
type BulkConfig struct {
	Workers             int      `yaml:"workers"`
	FlushBytes          int      `yaml:"flush_bytes"`
	FlushIntervalSec    int      `yaml:"flush_interval_sec"`
	TimeoutSec          int      `yaml:"timeout_sec"`
	StopOnError         bool     `yaml:"stop_on_error"`
	ChunkSize           int      `yaml:"chunk_size"` // items per round with stop_on_error
	IDColumns           []string `yaml:"id_columns"`
	Delimiter           string   `yaml:"delimiter"`
	MaxMemoryMB         int      `yaml:"max_memory_mb"`
	MaxReportedFailures int      `yaml:"max_reported_failures"`
}

// CacheConfig holds the optional aggregation cache settings.
type CacheConfig struct {
	Enabled          bool     `yaml:"enabled"`
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	TTLSec           int      `yaml:"ttl_sec"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes, defaults and validates a YAML document.
func Parse(data []byte) (Config, error) {
	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 300
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Elasticsearch.MaxRetries <= 0 {
		c.Elasticsearch.MaxRetries = 3
	}
	if c.Elasticsearch.ReadinessTimeout <= 0 {
		c.Elasticsearch.ReadinessTimeout = 30
	}
	if c.Collection.Name == "" {
		c.Collection.Name = "politicians"
	}
	if c.Collection.DistinctSize <= 0 {
		c.Collection.DistinctSize = 500
	}
	if c.Pagination.MaxPageSize <= 0 {
		c.Pagination.MaxPageSize = 100
	}
	if c.Bulk.Workers <= 0 {
		c.Bulk.Workers = 2
	}
	if c.Bulk.FlushBytes <= 0 {
		c.Bulk.FlushBytes = 5 << 20
	}
	if c.Bulk.FlushIntervalSec <= 0 {
		c.Bulk.FlushIntervalSec = 5
	}
	if c.Bulk.ChunkSize <= 0 {
		c.Bulk.ChunkSize = 500
	}
	if c.Bulk.TimeoutSec <= 0 {
		c.Bulk.TimeoutSec = 300
	}
	if c.Bulk.Delimiter == "" {
		c.Bulk.Delimiter = ";"
	}
	if c.Bulk.MaxMemoryMB <= 0 {
		c.Bulk.MaxMemoryMB = 32
	}
	if c.Bulk.MaxReportedFailures <= 0 {
		c.Bulk.MaxReportedFailures = 100
	}
	if c.Cache.TTLSec <= 0 {
		c.Cache.TTLSec = 300
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Elasticsearch.Addresses) == 0 {
		return fmt.Errorf("elasticsearch.addresses is required")
	}
	if c.Collection.Shards < 0 || (c.Collection.Replicas != nil && *c.Collection.Replicas < 0) {
		return fmt.Errorf("collection.shards and collection.replicas must not be negative")
	}
	if c.Pagination.MaxPageSize > 100 {
		return fmt.Errorf("pagination.max_page_size must be at most 100, got %d", c.Pagination.MaxPageSize)
	}
	if len([]rune(c.Bulk.Delimiter)) != 1 {
		return fmt.Errorf("bulk.delimiter must be a single character, got %q", c.Bulk.Delimiter)
	}
	if c.Cache.Enabled && len(c.Cache.Addrs) == 0 {
		return fmt.Errorf("cache.addrs is required when cache is enabled")
	}
	return nil
}

// Comma returns the CSV field delimiter as a rune.
func (b BulkConfig) Comma() rune {
	for _, r := range b.Delimiter {
		return r
	}
	return ';'
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
