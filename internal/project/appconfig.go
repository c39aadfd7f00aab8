package project

import (
	"os"
	"path/filepath"

	"github.com/piwi3910/BinStack/internal/model"
)

// DefaultConfigPath returns the path of the application config file,
// ~/.binstack/config.json. Directory creation is deferred to the first save
// so that merely probing for a config never touches the disk.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".binstack", "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads an AppConfig from the given path. A missing file yields
// the defaults with no error. A present file is sanitized on the way in, so a
// hand-edited or stale config cannot feed invalid optimizer values into new
// projects.
func LoadAppConfig(path string) (model.AppConfig, error) {
	var config model.AppConfig
	if err := readJSON(path, &config); err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	config.Sanitize()
	return config, nil
}
