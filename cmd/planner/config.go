package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// configFileName is looked up in the working directory first, then in
// the user's home directory.
const configFileName = "horse_calendar.yaml"

// cliConfig is the planner's YAML configuration.
type cliConfig struct {
	ServerURL string `yaml:"server_url" validate:"required,url"`
}

var validate = validator.New()

// loadConfig reads the config file from path when given, otherwise from
// the standard locations. A missing file falls back to defaults.
func loadConfig(path string) (cliConfig, error) {
	cfg := cliConfig{ServerURL: "http://localhost:4000"}

	if path == "" {
		found, err := findConfig()
		if err != nil {
			return cliConfig{}, err
		}
		path = found
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cliConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cliConfig{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return cliConfig{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func findConfig() (string, error) {
	candidates := []string{configFileName}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, configFileName))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c, nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("stat config %s: %w", c, err)
		}
	}
	return "", nil
}
