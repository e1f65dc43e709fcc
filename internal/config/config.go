// Package config provides configuration management for the scalar function
// engine: parallel-evaluation thresholds for the batch executor and fetch
// limits for the catalog dependency scanner.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config is the engine-wide configuration.
type Config struct {
	// Parallel batch evaluation
	ParallelThreshold int `json:"parallel_threshold" yaml:"parallel_threshold"` // Minimum rows per batch to evaluate batches in parallel
	WorkerPoolSize    int `json:"worker_pool_size" yaml:"worker_pool_size"`     // Number of worker goroutines (0 = CPU count)
	MaxParallelism    int `json:"max_parallelism" yaml:"max_parallelism"`       // Maximum concurrent batch evaluations

	// Catalog dependency scanner
	CatalogFetchRows      int `json:"catalog_fetch_rows" yaml:"catalog_fetch_rows"`           // Per-fetch row cap for dependency pages
	CatalogTimeoutMillis  int `json:"catalog_timeout_millis" yaml:"catalog_timeout_millis"`   // Bounded timeout per catalog fetch
	CatalogMaxTotalRows   int `json:"catalog_max_total_rows" yaml:"catalog_max_total_rows"`   // Safety cap across all pages (0 = unlimited)

	// Debugging
	VerboseLogging bool `json:"verbose_logging" yaml:"verbose_logging"` // Enable verbose logging
}

// Default configuration values
const (
	DefaultParallelThreshold    = 1000
	DefaultMaxParallelism       = 16
	DefaultCatalogFetchRows     = 4096
	DefaultCatalogTimeoutMillis = 3000
)

// Global configuration instance
var (
	globalConfig Config
	configMutex  sync.RWMutex
)

func init() {
	globalConfig = NewConfig()
}

// NewConfig creates a new configuration with default values.
func NewConfig() Config {
	return Config{
		ParallelThreshold:    DefaultParallelThreshold,
		WorkerPoolSize:       0, // Auto-detect
		MaxParallelism:       DefaultMaxParallelism,
		CatalogFetchRows:     DefaultCatalogFetchRows,
		CatalogTimeoutMillis: DefaultCatalogTimeoutMillis,
		CatalogMaxTotalRows:  0, // Unlimited
		VerboseLogging:       false,
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.ParallelThreshold <= 0 {
		return fmt.Errorf("ParallelThreshold must be positive, got %d", c.ParallelThreshold)
	}
	if c.WorkerPoolSize < 0 {
		return fmt.Errorf("WorkerPoolSize must be non-negative, got %d", c.WorkerPoolSize)
	}
	if c.WorkerPoolSize > runtime.NumCPU()*4 {
		return fmt.Errorf("WorkerPoolSize %d exceeds 4x CPU count", c.WorkerPoolSize)
	}
	if c.MaxParallelism <= 0 {
		return fmt.Errorf("MaxParallelism must be positive, got %d", c.MaxParallelism)
	}
	if c.CatalogFetchRows <= 0 {
		return fmt.Errorf("CatalogFetchRows must be positive, got %d", c.CatalogFetchRows)
	}
	if c.CatalogTimeoutMillis <= 0 {
		return fmt.Errorf("CatalogTimeoutMillis must be positive, got %d", c.CatalogTimeoutMillis)
	}
	if c.CatalogMaxTotalRows < 0 {
		return fmt.Errorf("CatalogMaxTotalRows must be non-negative, got %d", c.CatalogMaxTotalRows)
	}
	return nil
}

// WithDefaults returns a new configuration with default values filled in for
// zero values.
func (c Config) WithDefaults() Config {
	defaults := NewConfig()
	if c.ParallelThreshold == 0 {
		c.ParallelThreshold = defaults.ParallelThreshold
	}
	if c.MaxParallelism == 0 {
		c.MaxParallelism = defaults.MaxParallelism
	}
	if c.CatalogFetchRows == 0 {
		c.CatalogFetchRows = defaults.CatalogFetchRows
	}
	if c.CatalogTimeoutMillis == 0 {
		c.CatalogTimeoutMillis = defaults.CatalogTimeoutMillis
	}
	return c
}

// SetGlobalConfig sets the global configuration.
func SetGlobalConfig(config Config) {
	configMutex.Lock()
	defer configMutex.Unlock()
	globalConfig = config
}

// GetGlobalConfig returns the current global configuration.
func GetGlobalConfig() Config {
	configMutex.RLock()
	defer configMutex.RUnlock()
	return globalConfig
}

// LoadFromJSON loads configuration from JSON data.
func LoadFromJSON(data []byte) (Config, error) {
	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parsing JSON configuration: %w", err)
	}
	return config.WithDefaults(), nil
}

// LoadFromFile loads configuration from a JSON or YAML file.
func LoadFromFile(filename string) (Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", filename, err)
	}

	var config Config
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".json":
		err = json.Unmarshal(data, &config)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &config)
	default:
		return Config{}, fmt.Errorf("unsupported config file format: %s", ext)
	}

	if err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", filename, err)
	}

	return config.WithDefaults(), nil
}

// LoadFromEnv loads configuration from QUOKKA_* environment variables.
func LoadFromEnv() Config {
	config := NewConfig()

	if val := os.Getenv("QUOKKA_PARALLEL_THRESHOLD"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.ParallelThreshold = parsed
		}
	}

	if val := os.Getenv("QUOKKA_WORKER_POOL_SIZE"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.WorkerPoolSize = parsed
		}
	}

	if val := os.Getenv("QUOKKA_MAX_PARALLELISM"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.MaxParallelism = parsed
		}
	}

	if val := os.Getenv("QUOKKA_CATALOG_FETCH_ROWS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.CatalogFetchRows = parsed
		}
	}

	if val := os.Getenv("QUOKKA_CATALOG_TIMEOUT_MILLIS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.CatalogTimeoutMillis = parsed
		}
	}

	if val := os.Getenv("QUOKKA_CATALOG_MAX_TOTAL_ROWS"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			config.CatalogMaxTotalRows = parsed
		}
	}

	if val := os.Getenv("QUOKKA_VERBOSE_LOGGING"); val != "" {
		if parsed, err := strconv.ParseBool(val); err == nil {
			config.VerboseLogging = parsed
		}
	}

	return config
}
