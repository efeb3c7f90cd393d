// Package config loads the lifelog TOML configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/xolan/lifelog/internal/kv"
	"github.com/xolan/lifelog/internal/logging"
	"github.com/xolan/lifelog/internal/osutil"
	"github.com/xolan/lifelog/internal/storage"
)

const (
	// AppName is the application name used for config directory
	AppName = "lifelog"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
	// EnvConfigPath overrides the config file location
	EnvConfigPath = "LIFELOG_CONFIG"
)

// Config represents the application configuration
type Config struct {
	// Timezone is the IANA timezone used for "today" and date ranges, or "Local"
	Timezone string `toml:"timezone"`
	// Backend selects where records are kept: file, sqlite, redis or memory
	Backend string `toml:"backend"`
	// DataDir holds the file backend's data; empty means the user config directory
	DataDir string `toml:"data_dir"`
	// StorageKey is the key the record collection is stored under
	StorageKey string `toml:"storage_key"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`

	// SQLitePath is the database file; empty means <data dir>/lifelog.db
	SQLitePath string `toml:"sqlite_path"`

	// ExportDir is where export files are written; empty means the working directory
	ExportDir string `toml:"export_dir"`
	// LogLevel is debug, info, warn or error
	LogLevel string `toml:"log_level"`
	// Theme is the TUI color theme id
	Theme string `toml:"theme"`
}

// DefaultConfig returns a Config with the defaults used when no file exists
func DefaultConfig() Config {
	return Config{
		Timezone:   "Local",
		Backend:    kv.DriverFile,
		StorageKey: storage.StorageKey,
		RedisAddr:  "localhost:6379",
		LogLevel:   "warn",
		Theme:      "dracula",
	}
}

var storageKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)

var backends = []string{kv.DriverFile, kv.DriverSQLite, kv.DriverRedis, kv.DriverMemory}

// Normalize lowercases enumerated values and fills empty ones with defaults
func (c *Config) Normalize() {
	def := DefaultConfig()

	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.Timezone = strings.TrimSpace(c.Timezone)
	c.StorageKey = strings.TrimSpace(c.StorageKey)

	if c.Backend == "" {
		c.Backend = def.Backend
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.StorageKey == "" {
		c.StorageKey = def.StorageKey
	}
	if c.RedisAddr == "" {
		c.RedisAddr = def.RedisAddr
	}
	if c.Theme == "" {
		c.Theme = def.Theme
	}
}

// Validate checks every field and reports the first problem
func (c Config) Validate() error {
	valid := false
	for _, b := range backends {
		if c.Backend == b {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("backend must be one of %s, got %q", strings.Join(backends, ", "), c.Backend)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}

	if !storageKeyPattern.MatchString(c.StorageKey) {
		return fmt.Errorf("storage_key %q may only contain letters, digits, '_', '-' and '.'", c.StorageKey)
	}

	if c.RedisDB < 0 {
		return fmt.Errorf("redis_db must not be negative, got %d", c.RedisDB)
	}

	return nil
}

// Location resolves Timezone
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// GetConfigPath returns the path to the config file: LIFELOG_CONFIG when
// set, otherwise config.toml inside the per-user lifelog directory.
func GetConfigPath() (string, error) {
	return osutil.FileIn(EnvConfigPath, AppName, ConfigFile)
}

// Load reads, normalizes and validates the config file at path.
// Unset keys keep their defaults; unknown keys are an error.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, falling back to DefaultConfig when it does not exist
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// Encode renders cfg as TOML
func Encode(cfg Config) (string, error) {
	var buf bytes.Buffer
	buf.WriteString("# lifelog configuration file\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return "", fmt.Errorf("failed to encode config: %w", err)
	}
	return buf.String(), nil
}

// GenerateSampleConfig returns a commented config file with every default
func GenerateSampleConfig() string {
	d := DefaultConfig()
	return fmt.Sprintf(`# lifelog configuration file

# Timezone: IANA timezone name (e.g., "Asia/Shanghai") or "Local"
timezone = %q

# Storage backend: "file", "sqlite", "redis" or "memory"
backend = %q

# Directory for the file backend (default: the user config directory)
# data_dir = "/path/to/data"

# Key the records are stored under
storage_key = %q

# Redis connection, used when backend = "redis"
redis_addr = %q
# redis_password = ""
redis_db = %d

# SQLite database file, used when backend = "sqlite" (default: <data dir>/lifelog.db)
# sqlite_path = "/path/to/lifelog.db"

# Directory for exported files (default: the current directory)
# export_dir = "/path/to/exports"

# Log level: "debug", "info", "warn" or "error"
log_level = %q

# TUI color theme
theme = %q
`, d.Timezone, d.Backend, d.StorageKey, d.RedisAddr, d.RedisDB, d.LogLevel, d.Theme)
}
