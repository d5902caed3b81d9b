// Package config holds the updater's configuration and its file loading.
//
// All paths and endpoints live in an explicit Config value that is passed to
// the orchestrator at construction. The built-in defaults match a standard
// Linux install; an optional TOML file can override any of them.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config describes everything the update pipeline needs to know about its
// environment: where the remote release endpoint lives, where the bundle is
// installed, and where backups and logs go.
type Config struct {
	// APIEndpoint is the remote release endpoint queried for the latest build.
	APIEndpoint string `toml:"api_endpoint"`
	// Platform is the platform identifier sent to the release endpoint.
	Platform string `toml:"platform"`
	// InstallDir is the canonical location of the installed bundle payload.
	InstallDir string `toml:"install_dir"`
	// BackupDir is the root under which timestamped backups are created.
	BackupDir string `toml:"backup_dir"`
	// Symlink is the public launch path end users invoke.
	Symlink string `toml:"symlink"`
	// DesktopFile is the installed metadata file carrying the version marker.
	DesktopFile string `toml:"desktop_file"`
	// LogFile is the durable log destination.
	LogFile string `toml:"log_file"`
	// RequestTimeout bounds the release endpoint request.
	RequestTimeout time.Duration `toml:"-"`

	// RequestTimeoutSeconds is the file-facing form of RequestTimeout.
	RequestTimeoutSeconds int `toml:"request_timeout_seconds"`
}

// Default returns the built-in configuration for a standard Linux install.
func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		APIEndpoint:    "https://www.cursor.com/api/download",
		Platform:       "linux-x64",
		InstallDir:     "/opt/cursor",
		BackupDir:      "/opt/cursor_backups",
		Symlink:        "/usr/local/bin/cursor",
		DesktopFile:    "/opt/cursor/cursor.desktop",
		LogFile:        filepath.Join(home, ".cursor_updater.log"),
		RequestTimeout: 15 * time.Second,
	}
}

// DefaultPath returns the standard location of the optional config file,
// honoring XDG_CONFIG_HOME.
func DefaultPath() string {
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		xdgConfig = filepath.Join(home, ".config")
	}
	return filepath.Join(xdgConfig, "cursorup", "config.toml")
}

// Load returns the defaults overlaid with the TOML file at path. An empty
// path means "use DefaultPath if it exists". A missing file is not an error;
// a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if cfg.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(cfg.RequestTimeoutSeconds) * time.Second
	}

	return cfg, nil
}
