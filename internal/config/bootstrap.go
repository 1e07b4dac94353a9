package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// EnsureUserConfig returns dataDir/config.yml, creating it from Default() on first run.
func EnsureUserConfig(dataDir string) (string, error) {
	userPath := filepath.Join(dataDir, "config.yml")

	_, err := os.Stat(userPath)
	if err == nil {
		return userPath, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return "", err
	}

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return "", err
	}

	def := Default()
	b, err := yaml.Marshal(&def)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(userPath, b, 0o644); err != nil {
		return "", err
	}
	return userPath, nil
}
