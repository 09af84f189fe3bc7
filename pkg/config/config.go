package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/umputun/bytenews/pkg/classifier"
)

//go:generate go run ../../cmd/schema/main.go schema.json

// Config holds the application configuration
type Config struct {
	Server struct {
		Listen  string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
		Timeout time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
		BaseURL string        `yaml:"base_url" json:"base_url" jsonschema:"default=http://localhost:8080,description=Public base URL used in generated feeds"`
	} `yaml:"server" json:"server" jsonschema:"description=Server configuration"`

	Database struct {
		DSN             string `yaml:"dsn" json:"dsn" jsonschema:"description=Database connection string"`
		MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
		MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
		ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
	} `yaml:"database" json:"database" jsonschema:"description=Database configuration"`

	Sources []Source `yaml:"sources" json:"sources" jsonschema:"description=Feed sources to ingest"`

	Fetch FetchConfig `yaml:"fetch" json:"fetch" jsonschema:"description=Feed and page retrieval settings"`

	Summary struct {
		Length string `yaml:"length" json:"length" jsonschema:"default=medium,enum=short,enum=medium,enum=long,description=Summary length"`
		Policy string `yaml:"policy" json:"policy" jsonschema:"default=always,enum=always,enum=missing,description=Summarize every entry or only those without a feed summary"`
	} `yaml:"summary" json:"summary" jsonschema:"description=Summarization settings"`

	Audio AudioConfig `yaml:"audio" json:"audio" jsonschema:"description=Text-to-speech settings"`

	Schedule struct {
		UpdateInterval int `yaml:"update_interval" json:"update_interval" jsonschema:"default=30,description=Feed update interval in minutes"`
	} `yaml:"schedule" json:"schedule" jsonschema:"description=Scheduler configuration"`

	Categories []classifier.Category `yaml:"categories" json:"categories" jsonschema:"description=Ordered category keyword table (built-in table when empty)"`
}

// Source is a single configured feed
type Source struct {
	Name string `yaml:"name" json:"name" jsonschema:"description=Source name (defaults to the url host)"`
	URL  string `yaml:"url" json:"url" jsonschema:"required,description=RSS or Atom feed url"`
}

// FetchConfig holds feed retrieval and extraction settings
type FetchConfig struct {
	Timeout          time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=10s,description=Timeout for feed and page requests"`
	UserAgent        string        `yaml:"user_agent" json:"user_agent" jsonschema:"default=ByteNewsScraper/1.0,description=User agent for HTTP requests"`
	MinContentLength int           `yaml:"min_content_length" json:"min_content_length" jsonschema:"default=300,description=Minimum extracted text length in characters"`
	MaxWorkers       int           `yaml:"max_workers" json:"max_workers" jsonschema:"default=4,description=Sources ingested concurrently"`
	ExtractWorkers   int           `yaml:"extract_workers" json:"extract_workers" jsonschema:"default=4,description=Entries extracted concurrently per source"`
	Retries          int           `yaml:"retries" json:"retries" jsonschema:"default=1,description=Total attempts for transient HTTP failures"`
}

// AudioConfig holds text-to-speech settings
type AudioConfig struct {
	Enabled  bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Render audio for summaries"`
	MediaDir string        `yaml:"media_dir" json:"media_dir" jsonschema:"default=media,description=Media root directory"`
	Language string        `yaml:"language" json:"language" jsonschema:"default=en,description=Speech language"`
	MaxChars int           `yaml:"max_chars" json:"max_chars" jsonschema:"default=800,description=Maximum characters sent to the speech backend"`
	Timeout  time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Speech backend timeout"`
	Endpoint string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey   string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model    string        `yaml:"model" json:"model" jsonschema:"default=tts-1,description=Speech model"`
	Voice    string        `yaml:"voice" json:"voice" jsonschema:"default=alloy,description=Speech voice"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) setDefaults() {
	// server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.BaseURL == "" {
		c.Server.BaseURL = "http://localhost" + c.Server.Listen
		if !strings.HasPrefix(c.Server.Listen, ":") {
			c.Server.BaseURL = "http://" + c.Server.Listen
		}
	}
	c.Server.BaseURL = strings.TrimSuffix(c.Server.BaseURL, "/")

	// database
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// sources, name falls back to the feed host
	for i := range c.Sources {
		c.Sources[i].URL = strings.TrimSpace(c.Sources[i].URL)
		c.Sources[i].Name = strings.TrimSpace(c.Sources[i].Name)
		if c.Sources[i].Name != "" {
			continue
		}
		c.Sources[i].Name = c.Sources[i].URL
		if u, err := url.Parse(c.Sources[i].URL); err == nil && u.Host != "" {
			c.Sources[i].Name = u.Host
		}
	}

	// fetch
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = 10 * time.Second
	}
	if c.Fetch.UserAgent == "" {
		c.Fetch.UserAgent = "ByteNewsScraper/1.0"
	}
	if c.Fetch.MinContentLength == 0 {
		c.Fetch.MinContentLength = 300
	}
	if c.Fetch.MaxWorkers == 0 {
		c.Fetch.MaxWorkers = 4
	}
	if c.Fetch.ExtractWorkers == 0 {
		c.Fetch.ExtractWorkers = 4
	}
	if c.Fetch.Retries == 0 {
		c.Fetch.Retries = 1
	}

	// summary
	if c.Summary.Length == "" {
		c.Summary.Length = "medium"
	}
	if c.Summary.Policy == "" {
		c.Summary.Policy = "always"
	}

	// audio
	if c.Audio.MediaDir == "" {
		c.Audio.MediaDir = "media"
	}
	if c.Audio.Language == "" {
		c.Audio.Language = "en"
	}
	if c.Audio.MaxChars == 0 {
		c.Audio.MaxChars = 800
	}
	if c.Audio.Timeout == 0 {
		c.Audio.Timeout = 30 * time.Second
	}
	if c.Audio.Model == "" {
		c.Audio.Model = "tts-1"
	}
	if c.Audio.Voice == "" {
		c.Audio.Voice = "alloy"
	}

	// schedule
	if c.Schedule.UpdateInterval == 0 {
		c.Schedule.UpdateInterval = 30
	}
}

// validate checks values which can't be fixed by defaults
func (c *Config) validate() error {
	if c.Server.Timeout < 0 {
		return fmt.Errorf("server.timeout must be positive")
	}
	if c.Fetch.Timeout < 0 {
		return fmt.Errorf("fetch.timeout must be positive")
	}
	if c.Fetch.MinContentLength < 0 {
		return fmt.Errorf("fetch.min_content_length must be non-negative")
	}
	if c.Fetch.MaxWorkers < 0 || c.Fetch.ExtractWorkers < 0 {
		return fmt.Errorf("fetch workers must be positive")
	}
	if c.Fetch.Retries < 0 {
		return fmt.Errorf("fetch.retries must be non-negative")
	}

	seen := make(map[string]bool, len(c.Sources))
	for i, src := range c.Sources {
		u, err := url.Parse(src.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("sources[%d]: invalid url %q", i, src.URL)
		}
		if seen[src.URL] {
			return fmt.Errorf("sources[%d]: duplicate url %q", i, src.URL)
		}
		seen[src.URL] = true
	}

	switch c.Summary.Length {
	case "short", "medium", "long":
	default:
		return fmt.Errorf("summary.length must be short, medium or long, got %q", c.Summary.Length)
	}
	switch c.Summary.Policy {
	case "always", "missing":
	default:
		return fmt.Errorf("summary.policy must be always or missing, got %q", c.Summary.Policy)
	}

	if c.Audio.Enabled {
		if c.Audio.APIKey == "" && c.Audio.Endpoint == "" {
			return fmt.Errorf("audio.api_key or audio.endpoint is required when audio is enabled")
		}
		if c.Audio.MaxChars < 0 {
			return fmt.Errorf("audio.max_chars must be positive")
		}
	}

	if c.Schedule.UpdateInterval < 0 {
		return fmt.Errorf("schedule.update_interval must be positive")
	}

	for i, cat := range c.Categories {
		if strings.TrimSpace(cat.Name) == "" {
			return fmt.Errorf("categories[%d]: name is required", i)
		}
		if len(cat.Keywords) == 0 {
			return fmt.Errorf("categories[%d] %q: at least one keyword is required", i, cat.Name)
		}
	}

	return nil
}

// UpdateInterval returns the feed update interval
func (c *Config) UpdateInterval() time.Duration {
	return time.Duration(c.Schedule.UpdateInterval) * time.Minute
}

// ConnMaxLifetime returns the database connection lifetime
func (c *Config) ConnMaxLifetime() time.Duration {
	return time.Duration(c.Database.ConnMaxLifetime) * time.Second
}
