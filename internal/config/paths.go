package config

import (
	"os"
	"path/filepath"
)

// GetGlobalConfigDir returns the path to the global configuration directory (~/.wireframe).
// This is the source of truth for where global config and crash logs live.
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".wireframe"), nil
}

// GlobalConfigFile returns the path of the global config file.
func GlobalConfigFile() (string, error) {
	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
