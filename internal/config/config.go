package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755

	// AppName names the config and data directories
	AppName = "crateview"

	// ConfigFileName is looked up inside each config directory
	ConfigFileName = "config.yaml"

	// EnvConfigHome overrides the config directory
	EnvConfigHome = "CRATEVIEW_CONFIG_HOME"
	// EnvDataHome overrides the data directory
	EnvDataHome = "CRATEVIEW_DATA_HOME"
)

// ErrNoHome is returned when no home directory can be determined
var ErrNoHome = errors.New("cannot determine home directory")

// env is swapped in tests
var (
	getenv      = os.Getenv
	userHomeDir = os.UserHomeDir
)

// ConfigPaths lists the config file candidates in lookup order:
// $CRATEVIEW_CONFIG_HOME, $XDG_CONFIG_HOME/crateview, ~/.config/crateview
func ConfigPaths() []string {
	var paths []string
	if dir := getenv(EnvConfigHome); dir != "" {
		paths = append(paths, filepath.Join(expandHome(dir), ConfigFileName))
	}
	if dir := getenv("XDG_CONFIG_HOME"); dir != "" {
		paths = append(paths, filepath.Join(expandHome(dir), AppName, ConfigFileName))
	}
	if home, err := userHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", AppName, ConfigFileName))
	}
	return paths
}

// FindConfigFile returns the config file to load. An explicit path must
// exist. Without one the first existing candidate wins; "" means none.
func FindConfigFile(explicit string) (string, error) {
	if explicit != "" {
		path := expandHome(explicit)
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("failed to open config file: %w", err)
		}
		return path, nil
	}

	for _, path := range ConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// DataDir resolves the data directory: the flag, then $CRATEVIEW_DATA_HOME,
// then $XDG_DATA_HOME/crateview, then ~/.local/share/crateview
func DataDir(flag string) (string, error) {
	if flag != "" {
		return expandHome(flag), nil
	}
	if dir := getenv(EnvDataHome); dir != "" {
		return expandHome(dir), nil
	}
	if dir := getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(expandHome(dir), AppName), nil
	}

	home, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoHome, err)
	}
	return filepath.Join(home, ".local", "share", AppName), nil
}

// EnsureDir creates dir if it doesn't exist
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// expandHome replaces a leading "~/" with the home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := userHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
