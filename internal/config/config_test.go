package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xolan/lifelog/internal/osutil"
)

// Helper to create a temporary config file
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	tmpFile := filepath.Join(tmpDir, "config.toml")
	// Always write the file, even if content is empty
	if err := os.WriteFile(tmpFile, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}
	return tmpFile
}

type mockPathProvider struct {
	configDir string
	configErr error
	mkdirErr  error
}

func (m mockPathProvider) UserConfigDir() (string, error) {
	return m.configDir, m.configErr
}

func (m mockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	if m.mkdirErr != nil {
		return m.mkdirErr
	}
	return os.MkdirAll(path, perm)
}

func (m mockPathProvider) Getenv(key string) string {
	return os.Getenv(key)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Timezone != "Local" {
		t.Errorf("DefaultConfig().Timezone = %q, expected %q", cfg.Timezone, "Local")
	}
	if cfg.Backend != "file" {
		t.Errorf("DefaultConfig().Backend = %q, expected %q", cfg.Backend, "file")
	}
	if cfg.StorageKey != "n_app_records" {
		t.Errorf("DefaultConfig().StorageKey = %q, expected %q", cfg.StorageKey, "n_app_records")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig() does not validate: %v", err)
	}
}

func TestLoad_ValidConfig(t *testing.T) {
	tests := []struct {
		name            string
		configContent   string
		expectedBackend string
		expectedTZ      string
		expectedLevel   string
	}{
		{
			name: "all storage fields set",
			configContent: `timezone = "Asia/Shanghai"
backend = "sqlite"
sqlite_path = "/tmp/lifelog.db"
log_level = "debug"`,
			expectedBackend: "sqlite",
			expectedTZ:      "Asia/Shanghai",
			expectedLevel:   "debug",
		},
		{
			name: "redis backend",
			configContent: `backend = "redis"
redis_addr = "cache:6379"
redis_db = 2`,
			expectedBackend: "redis",
			expectedTZ:      "Local",
			expectedLevel:   "warn",
		},
		{
			name:            "mixed case normalized",
			configContent:   `backend = "SQLite"` + "\n" + `log_level = "INFO"`,
			expectedBackend: "sqlite",
			expectedTZ:      "Local",
			expectedLevel:   "info",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, tt.configContent)

			cfg, err := Load(tmpFile)
			if err != nil {
				t.Fatalf("Load() returned unexpected error: %v", err)
			}
			if cfg.Backend != tt.expectedBackend {
				t.Errorf("Backend = %q, expected %q", cfg.Backend, tt.expectedBackend)
			}
			if cfg.Timezone != tt.expectedTZ {
				t.Errorf("Timezone = %q, expected %q", cfg.Timezone, tt.expectedTZ)
			}
			if cfg.LogLevel != tt.expectedLevel {
				t.Errorf("LogLevel = %q, expected %q", cfg.LogLevel, tt.expectedLevel)
			}
		})
	}
}

func TestLoad_RedisFields(t *testing.T) {
	tmpFile := createTempConfigFile(t, `backend = "redis"
redis_addr = "cache:6379"
redis_password = "secret"
redis_db = 3`)

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.RedisAddr != "cache:6379" || cfg.RedisPassword != "secret" || cfg.RedisDB != 3 {
		t.Errorf("redis fields = %q %q %d", cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does_not_exist.toml"))
	if err == nil {
		t.Error("Load() should return error for non-existent file")
	}
}

func TestLoad_InvalidTOML(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
	}{
		{"malformed TOML", `backend = "file`},
		{"invalid syntax", `this is not valid TOML at all`},
		{"missing quotes", `backend = file`},
		{"wrong type", `redis_db = "two"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, tt.configContent)

			_, err := Load(tmpFile)
			if err == nil {
				t.Fatal("Load() should return error for invalid TOML")
			}
			if !strings.Contains(err.Error(), "failed to parse config file") {
				t.Errorf("Error message should mention parsing failure, got: %v", err)
			}
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name           string
		configContent  string
		errorSubstring string
	}{
		{"unknown backend", `backend = "etcd"`, "backend must be one of"},
		{"bad timezone", `timezone = "Mars/Olympus"`, "invalid timezone"},
		{"bad log level", `log_level = "loud"`, "log_level"},
		{"bad storage key", `storage_key = "../records"`, "storage_key"},
		{"negative redis db", `redis_db = -1`, "redis_db"},
		{"unknown key", `week_start_day = "monday"`, "unknown config keys: week_start_day"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpFile := createTempConfigFile(t, tt.configContent)

			_, err := Load(tmpFile)
			if err == nil {
				t.Fatal("Load() should return error")
			}
			if !strings.Contains(err.Error(), tt.errorSubstring) {
				t.Errorf("error = %v, expected to contain %q", err, tt.errorSubstring)
			}
		})
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	tmpFile := createTempConfigFile(t, "")

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("Load() returned unexpected error for empty file: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("empty file should load defaults, got %+v", cfg)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadOrDefault() returned unexpected error for missing file: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("LoadOrDefault() = %+v, expected defaults", cfg)
	}

	tmpFile := createTempConfigFile(t, `backend = "memory"`)
	cfg, err = LoadOrDefault(tmpFile)
	if err != nil {
		t.Fatalf("LoadOrDefault() returned unexpected error: %v", err)
	}
	if cfg.Backend != "memory" {
		t.Errorf("Backend = %q, expected memory", cfg.Backend)
	}

	tmpFile = createTempConfigFile(t, `backend = "nope"`)
	if _, err := LoadOrDefault(tmpFile); err == nil {
		t.Error("LoadOrDefault() should return error for invalid config file")
	}
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()
	loc, err := cfg.Location()
	if err != nil || loc != time.Local {
		t.Errorf("Local timezone = %v, %v", loc, err)
	}

	cfg.Timezone = "UTC"
	loc, err = cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Errorf("UTC timezone = %v, %v", loc, err)
	}
}

func TestGetConfigPath(t *testing.T) {
	base := t.TempDir()
	osutil.SetProvider(mockPathProvider{configDir: base})
	t.Cleanup(osutil.ResetProvider)
	t.Setenv(EnvConfigPath, "")

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned unexpected error: %v", err)
	}
	if path != filepath.Join(base, AppName, ConfigFile) {
		t.Errorf("GetConfigPath() = %q", path)
	}
	if info, err := os.Stat(filepath.Dir(path)); err != nil || !info.IsDir() {
		t.Errorf("GetConfigPath() parent directory not created: %v", err)
	}
}

func TestGetConfigPath_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/somewhere/else.toml")

	path, err := GetConfigPath()
	if err != nil {
		t.Fatalf("GetConfigPath() returned unexpected error: %v", err)
	}
	if path != "/somewhere/else.toml" {
		t.Errorf("GetConfigPath() = %q, expected env override", path)
	}
}

func TestGetConfigPath_Errors(t *testing.T) {
	t.Setenv(EnvConfigPath, "")
	t.Cleanup(osutil.ResetProvider)

	osutil.SetProvider(mockPathProvider{configErr: errors.New("no home")})
	if _, err := GetConfigPath(); err == nil {
		t.Error("expected error when the config dir is unavailable")
	}

	osutil.SetProvider(mockPathProvider{configDir: t.TempDir(), mkdirErr: errors.New("read-only")})
	if _, err := GetConfigPath(); err == nil {
		t.Error("expected error when the app dir cannot be created")
	}
}

func TestGenerateSampleConfig_Loads(t *testing.T) {
	tmpFile := createTempConfigFile(t, GenerateSampleConfig())

	cfg, err := Load(tmpFile)
	if err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("sample config = %+v, expected defaults", cfg)
	}
}

func TestEncode_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "sqlite"
	cfg.SQLitePath = "/data/lifelog.db"
	cfg.Timezone = "Europe/Berlin"

	content, err := Encode(cfg)
	if err != nil {
		t.Fatalf("Encode() returned error: %v", err)
	}

	loaded, err := Load(createTempConfigFile(t, content))
	if err != nil {
		t.Fatalf("encoded config does not load: %v", err)
	}
	if loaded != cfg {
		t.Errorf("round trip = %+v, expected %+v", loaded, cfg)
	}
}
