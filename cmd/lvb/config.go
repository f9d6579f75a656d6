package main

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional config file (~/.config/xeno-lvb/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	IncludeBytes *bool   `yaml:"include_bytes"`
	Indent       *string `yaml:"indent"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "xeno-lvb", "config.yaml")
}

// loadConfig reads the config file if present. A missing or unreadable
// file yields empty defaults; the CLI must work without one.
func loadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	c, err := loadConfigFile(path)
	if err != nil {
		return Config{}
	}
	return c
}

func loadConfigFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var c Config
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, err
	}
	return c, nil
}
