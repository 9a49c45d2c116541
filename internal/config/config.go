// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Default settings
	Defaults struct {
		TargetColumn  string   `yaml:"target_column"`
		ColumnAliases []string `yaml:"column_aliases"`
		ContextRows   int      `yaml:"context_rows"`
		Checks        string   `yaml:"checks"`
		Workers       int      `yaml:"workers"`
		Format        string   `yaml:"format"`
		Verbose       bool     `yaml:"verbose"`
		Debug         bool     `yaml:"debug"`
		NoColor       bool     `yaml:"no_color"`
	} `yaml:"defaults"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	config := &Config{}
	config.Defaults.TargetColumn = "消息内容"
	config.Defaults.ColumnAliases = []string{"内容", "短信"}
	config.Defaults.ContextRows = 2
	config.Defaults.Checks = "all"
	config.Defaults.Workers = 0 // 0 means auto-size to the host
	config.Defaults.Format = "text"
	return config
}

// LoadConfig loads configuration from the specified file path. An empty
// path returns the defaults.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		return config, nil
	}

	cleanPath := filepath.Clean(configPath)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := ValidateConfig(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// LoadConfigOrDefault loads the given config file, falling back to the
// defaults on any error.
func LoadConfigOrDefault(configPath string) *Config {
	config, err := LoadConfig(configPath)
	if err != nil {
		return DefaultConfig()
	}
	return config
}

// ValidateConfig checks configuration values for consistency
func ValidateConfig(config *Config) error {
	if config.Defaults.TargetColumn == "" {
		return fmt.Errorf("defaults.target_column must not be empty")
	}
	if config.Defaults.ContextRows < 0 {
		return fmt.Errorf("defaults.context_rows must not be negative: %d", config.Defaults.ContextRows)
	}
	if config.Defaults.Workers < 0 {
		return fmt.Errorf("defaults.workers must not be negative: %d", config.Defaults.Workers)
	}
	return nil
}

// FindConfigFile looks for a configuration file in standard locations
func FindConfigFile() string {
	// Project-local config first
	if fileExists("sheet-scan.yaml") {
		return "sheet-scan.yaml"
	}
	if fileExists("sheet-scan.yml") {
		return "sheet-scan.yml"
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeConfig := filepath.Join(home, ".sheet-scan", "config.yaml")
	if fileExists(homeConfig) {
		return homeConfig
	}
	homeConfig = filepath.Join(home, ".sheet-scan", "config.yml")
	if fileExists(homeConfig) {
		return homeConfig
	}

	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
