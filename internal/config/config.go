// Package config loads phonebook settings from YAML, the environment and flags.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	dirName  = ".phonebook"
	fileName = "config.yaml"

	EnvURL   = "PHONEBOOK_URL"
	EnvTheme = "PHONEBOOK_THEME"
	EnvLog   = "PHONEBOOK_LOG"
)

var (
	Themes = []string{"classic", "neon", "mono"}
	Stores = []string{"memory", "json", "sqlite"}
)

type Config struct {
	API    API    `yaml:"api"`
	UI     UI     `yaml:"ui"`
	Log    Log    `yaml:"log"`
	Server Server `yaml:"server"`
}

type API struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"` // 0 = no overall limit
}

type UI struct {
	Theme string `yaml:"theme"`
}

type Log struct {
	Path  string `yaml:"path"`
	Debug bool   `yaml:"debug"`
}

type Server struct {
	Addr  string `yaml:"addr"`
	Store string `yaml:"store"`
	Data  string `yaml:"data"` // json file or sqlite database
}

func Default() Config {
	logPath := ""
	if dir, err := Dir(); err == nil {
		logPath = filepath.Join(dir, "phonebook.log")
	}
	return Config{
		API:    API{BaseURL: "http://localhost:3001"},
		UI:     UI{Theme: "classic"},
		Log:    Log{Path: logPath},
		Server: Server{Addr: ":3001", Store: "memory", Data: "persons.json"},
	}
}

// Dir is ~/.phonebook.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, dirName), nil
}

// DefaultPath is ~/.phonebook/config.yaml.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads path on top of Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Log.Path = expandHome(cfg.Log.Path)
	cfg.Server.Data = expandHome(cfg.Server.Data)
	return cfg, nil
}

// ApplyEnv overrides settings from PHONEBOOK_* variables.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvURL)); v != "" {
		c.API.BaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvTheme)); v != "" {
		c.UI.Theme = v
	}
	if v := strings.TrimSpace(getenv(EnvLog)); v != "" {
		c.Log.Path = expandHome(v)
	}
}

func (c Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.base_url: %q is not an http(s) url", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout: must not be negative")
	}
	if !oneOf(strings.ToLower(c.UI.Theme), Themes) {
		return fmt.Errorf("ui.theme: %q is not one of %s", c.UI.Theme, strings.Join(Themes, ", "))
	}
	if !oneOf(c.Server.Store, Stores) {
		return fmt.Errorf("server.store: %q is not one of %s", c.Server.Store, strings.Join(Stores, ", "))
	}
	return nil
}

func oneOf(v string, set []string) bool {
	for _, s := range set {
		if v == s {
			return true
		}
	}
	return false
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
