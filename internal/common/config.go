package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Intake      IntakeConfig    `toml:"intake"`
	Fetcher     FetcherConfig   `toml:"fetcher"`
	Scheduler   SchedulerConfig `toml:"scheduler"`
	Logging     LoggingConfig   `toml:"logging"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"gte=1,lte=65535"`
	Host string `toml:"host" validate:"required"`
}

// StorageConfig selects and configures the persisted store backend
type StorageConfig struct {
	Type   string          `toml:"type" validate:"oneof=file badger"` // "file" or "badger"
	File   FileStoreConfig `toml:"file"`
	Badger BadgerConfig    `toml:"badger"`
}

// FileStoreConfig holds the fixed JSON document paths for the file backend
type FileStoreConfig struct {
	ParsedPath  string `toml:"parsed_path"`  // parsed-data slot (ingestion snapshot)
	ResultsPath string `toml:"results_path"` // results slot (case lookup payload)
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// IntakeConfig identifies the holding area scanned for fetched documents
type IntakeConfig struct {
	Dir string `toml:"dir" validate:"required"`
}

// FetcherConfig contains court-registry acquisition configuration
type FetcherConfig struct {
	PortalURL      string        `toml:"portal_url" validate:"required,url"`      // cause-list search page
	CaseStatusURL  string        `toml:"case_status_url" validate:"required,url"` // CNR case-status page
	Timeout        time.Duration `toml:"timeout"`          // Bound on one fetch cycle
	UserAgent      string        `toml:"user_agent"`       // Browser user agent string
	Headless       bool          `toml:"headless"`         // Run Chrome headless
	RenderWaitTime time.Duration `toml:"render_wait_time"` // Time to wait for the portal to render
	DownloadDelay  time.Duration `toml:"download_delay"`   // Minimum delay between PDF downloads
	MaxDocuments   int           `toml:"max_documents"`    // Cap on PDFs downloaded per fetch
}

// SchedulerConfig controls automatic cause-list refresh
type SchedulerConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // Cron schedule format
	State    string `toml:"state"`    // Jurisdiction to refresh
	Day      string `toml:"day"`      // "today" or "tomorrow"
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability; only
// user-facing settings should be exposed in causelist.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8080,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Type: "file",
			File: FileStoreConfig{
				ParsedPath:  "./output/parsed_data.json",
				ResultsPath: "./output/results.json",
			},
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Intake: IntakeConfig{
			Dir: "./output/pdfs",
		},
		Fetcher: FetcherConfig{
			PortalURL:      "https://services.ecourts.gov.in/ecourtindia_v6/",
			CaseStatusURL:  "https://services.ecourts.gov.in/ecourtindia_v6/?p=casestatus/index",
			Timeout:        600 * time.Second, // Matches the registry's slowest observed responses
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			Headless:       true,
			RenderWaitTime: 3 * time.Second,
			DownloadDelay:  1 * time.Second,
			MaxDocuments:   50,
		},
		Scheduler: SchedulerConfig{
			Enabled:  false,           // Disabled by default - user must explicitly opt-in
			Schedule: "0 9 * * *",     // Daily at 9 AM
			State:    DefaultState,
			Day:      DefaultDay,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
	}
}

// LoadFromFiles loads configuration with priority: defaults -> file1 -> file2
// -> ... -> env. Later files override earlier files; environment variables
// override all files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the configuration against its struct tags
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.Scheduler.Day != "today" && c.Scheduler.Day != "tomorrow" {
		return fmt.Errorf("invalid configuration: scheduler day must be 'today' or 'tomorrow', got %q", c.Scheduler.Day)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("CAUSELIST_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("CAUSELIST_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("CAUSELIST_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if storageType := os.Getenv("CAUSELIST_STORAGE_TYPE"); storageType != "" {
		config.Storage.Type = storageType
	}
	if dir := os.Getenv("CAUSELIST_INTAKE_DIR"); dir != "" {
		config.Intake.Dir = dir
	}
	if level := os.Getenv("CAUSELIST_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
