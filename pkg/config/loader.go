// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// ProjectConfigFile is the project-level config file name.
	ProjectConfigFile = ".readme-llm.yaml"

	EnvModel         = "GEMINI_MODEL"
	EnvDebug         = "DEBUG_MODE"
	EnvMaxPromptSize = "MAX_PROMPT_SIZE"
	EnvHostRepoPath  = "HOST_REPO_PATH"
	EnvLogLevel      = "README_LLM_LOG_LEVEL"
	EnvCacheDir      = "README_LLM_CACHE_DIR"
)

// Loader loads configuration from files and environment.
type Loader struct {
	projectRoot string
	configPath  string
	getenv      func(string) string
}

// NewLoader creates a new config loader.
func NewLoader() *Loader {
	return &Loader{getenv: os.Getenv}
}

// WithProjectRoot sets the project root directory.
func (l *Loader) WithProjectRoot(root string) *Loader {
	l.projectRoot = root
	return l
}

// WithConfigPath uses an explicit config file instead of the project file.
// Unlike the project file, an explicit file must exist.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnv replaces the environment lookup.
func (l *Loader) WithEnv(getenv func(string) string) *Loader {
	l.getenv = getenv
	return l
}

// Load loads configuration with full precedence order:
// 1. Defaults
// 2. Project Config (<root>/.readme-llm.yaml or the explicit path)
// 3. Environment Variables
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	path := l.configPath
	required := path != ""
	if !required {
		path = GetProjectConfigPath(l.projectRoot)
	}
	if err := l.loadFile(cfg, path); err != nil {
		if required || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := l.applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromPath loads configuration from a specific path on top of the
// defaults, without applying the environment.
func (l *Loader) LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := l.loadFile(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadFile decodes path over cfg. Keys absent from the file keep their
// current values.
func (l *Loader) loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &ConfigError{Path: path, Err: fs.ErrNotExist}
		}
		return &ConfigError{Path: path, Err: err}
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return &ConfigError{Path: path, Err: err}
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (l *Loader) applyEnvOverrides(cfg *Config) error {
	getenv := l.getenv
	if getenv == nil {
		getenv = os.Getenv
	}

	if cfg.Model.APIKeyEnv != "" {
		cfg.Model.APIKey = getenv(cfg.Model.APIKeyEnv)
	}
	if v := getenv(EnvModel); v != "" {
		cfg.Model.Name = v
	}
	if v := getenv(EnvMaxPromptSize); v != "" {
		size, err := ParseByteSize(v)
		if err != nil {
			return &ConfigError{Field: EnvMaxPromptSize, Err: err}
		}
		cfg.Model.MaxPromptSize = size
	}
	if strings.EqualFold(getenv(EnvDebug), "true") {
		cfg.Global.Debug = true
	}
	if v := getenv(EnvHostRepoPath); v != "" {
		cfg.Output.DisplayRoot = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		cfg.Global.LogLevel = v
	}
	if v := getenv(EnvCacheDir); v != "" {
		cfg.Cache.Path = v
	}
	return nil
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Path  string
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return "config error in " + e.Path + ": " + e.Err.Error()
	}
	if e.Field != "" {
		return "config error for " + e.Field + ": " + e.Err.Error()
	}
	return "config error: " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}
