// Package config provides configuration loading and validation for the CLI.
// The YAML file carries search criteria and per-platform settings; credentials
// are read from the environment only.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/julian/jobbider/internal/types"
)

// Defaults applied when the file leaves a field unset.
const (
	DefaultDatabasePath  = "jobbider.db"
	DefaultScreenshotDir = "screenshots"
	DefaultMaxPages      = 30
	DefaultUserAgent     = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Config is the full application configuration.
type Config struct {
	Platforms map[string]Platform `yaml:"platforms" validate:"dive"`
	Search    Search              `yaml:"search_criteria"`
	Resume    Resume              `yaml:"resume"`
	Browser   Browser             `yaml:"browser"`
	Schedule  Schedule            `yaml:"schedule"`

	DatabasePath  string `yaml:"database_path"`
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// Platform holds per-platform adapter settings.
type Platform struct {
	Enabled     bool   `yaml:"enabled"`
	SearchQuery string `yaml:"search_query"`
	MaxPages    int    `yaml:"max_pages" validate:"gte=0,lte=100"`

	// AssumeAppliedWhenNoUpload controls the already-applied heuristic: when
	// neither a replace-file nor an upload control is present on the apply
	// form, treat the listing as already applied to and skip it instead of
	// recording a failure.
	AssumeAppliedWhenNoUpload bool `yaml:"assume_applied_when_no_upload"`
}

// Search mirrors the search_criteria block of the config file.
type Search struct {
	Keywords       []string    `yaml:"keywords"`
	Locations      []string    `yaml:"locations"`
	RequiredSkills []string    `yaml:"required_skills"`
	OptionalSkills []string    `yaml:"optional_skills"`
	SalaryRange    SalaryRange `yaml:"salary_range"`
}

// SalaryRange carries the minimum acceptable salary floor.
type SalaryRange struct {
	Min float64 `yaml:"min" validate:"gte=0"`
}

// Resume points at the document uploaded during applications.
type Resume struct {
	File string `yaml:"file" validate:"omitempty,file"`
}

// Browser holds the automation session settings.
type Browser struct {
	Headless           bool    `yaml:"headless"`
	PageLoadTimeoutSec int     `yaml:"page_load_timeout_seconds" validate:"gte=0"`
	ElementWaitSec     int     `yaml:"element_wait_seconds" validate:"gte=0"`
	UserAgent          string  `yaml:"user_agent"`
	NavsPerSecond      float64 `yaml:"navigations_per_second" validate:"gte=0"`
}

// Schedule configures the periodic runner.
type Schedule struct {
	Enabled    bool   `yaml:"enabled"`
	Cron       string `yaml:"cron"`
	RunOnStart bool   `yaml:"run_on_start"`
}

// Load reads and validates a YAML config file, filling defaults for unset
// fields.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg := Config{
		Browser: Browser{
			Headless:           true,
			PageLoadTimeoutSec: 30,
			ElementWaitSec:     10,
		},
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DatabasePath == "" {
		c.DatabasePath = DefaultDatabasePath
	}
	if c.ScreenshotDir == "" {
		c.ScreenshotDir = DefaultScreenshotDir
	}
	if c.Browser.UserAgent == "" {
		c.Browser.UserAgent = DefaultUserAgent
	}
	if c.Browser.PageLoadTimeoutSec == 0 {
		c.Browser.PageLoadTimeoutSec = 30
	}
	if c.Browser.ElementWaitSec == 0 {
		c.Browser.ElementWaitSec = 10
	}
	if c.Browser.NavsPerSecond == 0 {
		c.Browser.NavsPerSecond = 0.5
	}
	for name, p := range c.Platforms {
		if p.MaxPages == 0 {
			p.MaxPages = DefaultMaxPages
			c.Platforms[name] = p
		}
	}
}

// Validate checks struct tags plus the rules tags cannot express.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	for name, p := range c.Platforms {
		if p.Enabled && strings.TrimSpace(p.SearchQuery) == "" {
			return fmt.Errorf("config error: platform %q is enabled but has no search_query", name)
		}
	}
	if c.Schedule.Enabled && strings.TrimSpace(c.Schedule.Cron) == "" {
		return fmt.Errorf("config error: schedule is enabled but has no cron spec")
	}
	return nil
}

// Criteria converts the search block into the matcher's criteria type.
func (c *Config) Criteria() types.SearchCriteria {
	return types.SearchCriteria{
		Keywords:       c.Search.Keywords,
		Locations:      c.Search.Locations,
		RequiredSkills: c.Search.RequiredSkills,
		OptionalSkills: c.Search.OptionalSkills,
		MinSalary:      c.Search.SalaryRange.Min,
	}
}

// EnabledPlatforms returns the names of all enabled platforms. Map iteration
// order is not guaranteed; callers sort if order matters.
func (c *Config) EnabledPlatforms() []string {
	var names []string
	for name, p := range c.Platforms {
		if p.Enabled {
			names = append(names, name)
		}
	}
	return names
}

// Credentials holds the login pair for one platform.
type Credentials struct {
	Email    string
	Password string
}

// CredentialsFromEnv reads <PLATFORM>_EMAIL and <PLATFORM>_PASSWORD from the
// environment. Credentials are never stored in the config file.
func CredentialsFromEnv(platform string) (Credentials, error) {
	prefix := strings.ToUpper(platform)
	creds := Credentials{
		Email:    os.Getenv(prefix + "_EMAIL"),
		Password: os.Getenv(prefix + "_PASSWORD"),
	}
	if creds.Email == "" || creds.Password == "" {
		return Credentials{}, fmt.Errorf("credentials for %s not found in environment (%s_EMAIL / %s_PASSWORD)", platform, prefix, prefix)
	}
	return creds, nil
}
