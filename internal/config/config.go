// Package config loads empdesk settings. Values come from
// .empdesk/config.json, then an optional .env file and EMPDESK_* environment
// variables, then command-line flags applied by the caller.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	configFile = ".empdesk/config.json"
	envFile    = ".env"
	envPrefix  = "EMPDESK_"

	DefaultTimeout = 30 * time.Second
)

// IDPlaceholder is replaced with the record id in edit and delete routes.
const IDPlaceholder = "{id}"

// Duration is a time.Duration that reads and writes as "30s" in JSON and env.
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(b []byte) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Routes maps each employee operation to a server path. Edit and Delete
// contain IDPlaceholder.
type Routes struct {
	List   string `json:"list" env:"LIST" yaml:"list"`
	Create string `json:"create" env:"CREATE" yaml:"create"`
	Edit   string `json:"edit" env:"EDIT" yaml:"edit"`
	Delete string `json:"delete" env:"DELETE" yaml:"delete"`
}

// DefaultRoutes returns the routes of the employee app
func DefaultRoutes() Routes {
	return Routes{
		List:   "/employees/",
		Create: "/employee/",
		Edit:   "/employee/{id}/edit",
		Delete: "/employee/{id}/",
	}
}

// EditURL returns the edit route for id
func (r Routes) EditURL(id string) string {
	return strings.ReplaceAll(r.Edit, IDPlaceholder, url.PathEscape(id))
}

// DeleteURL returns the delete route for id
func (r Routes) DeleteURL(id string) string {
	return strings.ReplaceAll(r.Delete, IDPlaceholder, url.PathEscape(id))
}

// Config holds everything the client needs to talk to the employee server.
type Config struct {
	BaseURL    string   `json:"base_url" env:"BASE_URL" yaml:"base_url"`
	Routes     Routes   `json:"routes" envPrefix:"ROUTE_" yaml:"routes"`
	CSRFCookie string   `json:"csrf_cookie,omitempty" env:"CSRF_COOKIE" yaml:"csrf_cookie"`
	CSRFHeader string   `json:"csrf_header,omitempty" env:"CSRF_HEADER" yaml:"csrf_header"`
	Cookie     string   `json:"cookie,omitempty" env:"COOKIE" yaml:"cookie"` // seeded into the cookie jar, e.g. "sessionid=..."
	Timeout    Duration `json:"timeout,omitempty" env:"TIMEOUT" yaml:"timeout"`
	LogFile    string   `json:"log_file,omitempty" env:"LOG_FILE" yaml:"log_file"`
	Debug      bool     `json:"debug,omitempty" env:"DEBUG" yaml:"debug"`
}

// Sanitize fills defaults for anything left empty.
func (c *Config) Sanitize() {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:8000"
	}

	def := DefaultRoutes()
	if c.Routes.List == "" {
		c.Routes.List = def.List
	}
	if c.Routes.Create == "" {
		c.Routes.Create = def.Create
	}
	if c.Routes.Edit == "" {
		c.Routes.Edit = def.Edit
	}
	if c.Routes.Delete == "" {
		c.Routes.Delete = def.Delete
	}

	if c.CSRFCookie == "" {
		c.CSRFCookie = "csrftoken"
	}
	if c.CSRFHeader == "" {
		c.CSRFHeader = "X-CSRFToken"
	}
	if c.Timeout <= 0 {
		c.Timeout = Duration(DefaultTimeout)
	}
}

// Validate checks the values Sanitize cannot fix.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base_url: scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("base_url: missing host")
	}
	if !strings.Contains(c.Routes.Edit, IDPlaceholder) {
		return fmt.Errorf("routes.edit: must contain %s", IDPlaceholder)
	}
	if !strings.Contains(c.Routes.Delete, IDPlaceholder) {
		return fmt.Errorf("routes.delete: must contain %s", IDPlaceholder)
	}
	return nil
}

// Load reads the config file from disk. A missing file yields an empty config.
func Load(baseDir string) (*Config, error) {
	configPath := filepath.Join(baseDir, configFile)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", configPath, err)
	}

	return &cfg, nil
}

// Save writes the config to disk
func Save(baseDir string, cfg *Config) error {
	configPath := filepath.Join(baseDir, configFile)

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

// Resolve loads the file, applies .env and EMPDESK_* variables on top,
// then sanitizes and validates the result.
func Resolve(baseDir string) (*Config, error) {
	cfg, err := Load(baseDir)
	if err != nil {
		return nil, err
	}

	if err := godotenv.Load(filepath.Join(baseDir, envFile)); err != nil {
		var pathErr *os.PathError
		if !errors.As(err, &pathErr) {
			return nil, fmt.Errorf("load .env file: %w", err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: envPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.Sanitize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setters maps the keys accepted by Set to the field they write.
var setters = map[string]func(*Config, string) error{
	"base_url":      func(c *Config, v string) error { c.BaseURL = v; return nil },
	"routes.list":   func(c *Config, v string) error { c.Routes.List = v; return nil },
	"routes.create": func(c *Config, v string) error { c.Routes.Create = v; return nil },
	"routes.edit":   func(c *Config, v string) error { c.Routes.Edit = v; return nil },
	"routes.delete": func(c *Config, v string) error { c.Routes.Delete = v; return nil },
	"csrf_cookie":   func(c *Config, v string) error { c.CSRFCookie = v; return nil },
	"csrf_header":   func(c *Config, v string) error { c.CSRFHeader = v; return nil },
	"cookie":        func(c *Config, v string) error { c.Cookie = v; return nil },
	"log_file":      func(c *Config, v string) error { c.LogFile = v; return nil },
	"timeout":       func(c *Config, v string) error { return c.Timeout.UnmarshalText([]byte(v)) },
	"debug": func(c *Config, v string) error {
		switch strings.ToLower(v) {
		case "true", "1", "yes":
			c.Debug = true
		case "false", "0", "no", "":
			c.Debug = false
		default:
			return fmt.Errorf("debug: not a boolean: %q", v)
		}
		return nil
	},
}

// Keys returns the keys accepted by Set, sorted
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set updates one key in the config file
func Set(baseDir, key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (valid: %s)", key, strings.Join(Keys(), ", "))
	}

	cfg, err := Load(baseDir)
	if err != nil {
		return err
	}
	if err := set(cfg, value); err != nil {
		return err
	}
	return Save(baseDir, cfg)
}
