package handlers

import (
	"fmt"
	"strings"

	"github.com/xolan/lifelog/internal/cli"
	"github.com/xolan/lifelog/internal/config"
	"github.com/xolan/lifelog/internal/service"
)

// configService uses the open services when there are any; otherwise it
// reads the config file directly so a broken backend can still be fixed.
func configService(deps *cli.Deps) (*service.ConfigService, bool) {
	if deps.Services != nil {
		return deps.Services.Config, true
	}

	path, err := config.GetConfigPath()
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to determine config file location")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintln(deps.Stderr, "Hint: Check that your home directory is accessible")
		deps.Exit(1)
		return nil, false
	}

	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		_, _ = fmt.Fprintln(deps.Stderr, "Error: Failed to load configuration")
		_, _ = fmt.Fprintf(deps.Stderr, "Details: %v\n", err)
		_, _ = fmt.Fprintf(deps.Stderr, "Hint: Check that your config file is valid TOML: %s\n", path)
		deps.Exit(1)
		return nil, false
	}
	return service.NewConfigService(path, cfg), true
}

// ShowConfig displays the current configuration
func ShowConfig(deps *cli.Deps) {
	svc, ok := configService(deps)
	if !ok {
		return
	}

	cfg := svc.Get()
	path := svc.GetPath()

	_, _ = fmt.Fprintln(deps.Stdout, "Configuration:")
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("=", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "Config file: %s\n", path)
	if svc.Exists() {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: File exists")
	} else {
		_, _ = fmt.Fprintln(deps.Stdout, "Status: Using defaults (no config file)")
	}
	_, _ = fmt.Fprintln(deps.Stdout, strings.Repeat("-", 50))
	_, _ = fmt.Fprintf(deps.Stdout, "timezone:    %s\n", cfg.Timezone)
	_, _ = fmt.Fprintf(deps.Stdout, "backend:     %s\n", cfg.Backend)
	_, _ = fmt.Fprintf(deps.Stdout, "storage_key: %s\n", cfg.StorageKey)
	if deps.Services != nil {
		_, _ = fmt.Fprintf(deps.Stdout, "storage:     %s\n", deps.Services.Location)
	}
	if cfg.ExportDir != "" {
		_, _ = fmt.Fprintf(deps.Stdout, "export_dir:  %s\n", cfg.ExportDir)
	}
	_, _ = fmt.Fprintf(deps.Stdout, "log_level:   %s\n", cfg.LogLevel)
	_, _ = fmt.Fprintf(deps.Stdout, "theme:       %s\n", cfg.Theme)
}

// InitConfig creates a sample config file
func InitConfig(deps *cli.Deps) {
	svc, ok := configService(deps)
	if !ok {
		return
	}

	if err := svc.Init(); err != nil {
		_, _ = fmt.Fprintf(deps.Stderr, "Error: %v\n", err)
		deps.Exit(1)
		return
	}

	_, _ = fmt.Fprintf(deps.Stdout, "Created config file: %s\n", svc.GetPath())
	_, _ = fmt.Fprintln(deps.Stdout, "Edit this file to customize your settings.")
}
