// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"os"
	"path/filepath"
	"time"
)

// Default values.
const (
	DefaultModel         = "gemini-1.5-flash-latest"
	DefaultAPIKeyEnv     = "GOOGLE_API_KEY"
	DefaultBaseURL       = "https://generativelanguage.googleapis.com/v1beta"
	DefaultTimeout       = 300 * time.Second
	DefaultMaxPromptSize = 512000
	DefaultOutputFile    = "README.llm"
	DefaultTempDir       = ".readme_llm_tmp"
	DefaultCacheTTL      = 7 * 24 * time.Hour
	DefaultCacheBackend  = CacheBackendDisk
)

// Cache backends.
const (
	CacheBackendDisk   = "disk"
	CacheBackendMemory = "memory"
)

// DefaultExtensions are the source suffixes scanned when none are configured.
var DefaultExtensions = []string{".py", ".ts", ".js", ".java", ".hpp", ".h", ".go"}

// DefaultConfig returns the default configuration.
// These values are used when no config file is present.
func DefaultConfig() *Config {
	return &Config{
		Model: DefaultModelConfig(),
		Scan: ScanConfig{
			Extensions: append([]string(nil), DefaultExtensions...),
		},
		Output: OutputConfig{
			FileName: DefaultOutputFile,
			TempDir:  DefaultTempDir,
		},
		Cache: CacheConfig{
			Enabled: false,
			Backend: DefaultCacheBackend,
			Path:    GetDefaultCachePath(),
			TTL:     DefaultCacheTTL,
		},
		Global: GlobalConfig{
			LogLevel:  "info",
			LogFormat: "auto",
		},
	}
}

// DefaultModelConfig returns default model configuration.
func DefaultModelConfig() ModelConfig {
	return ModelConfig{
		Name:          DefaultModel,
		APIKeyEnv:     DefaultAPIKeyEnv,
		BaseURL:       DefaultBaseURL,
		Timeout:       DefaultTimeout,
		MaxPromptSize: DefaultMaxPromptSize,
	}
}

// GetDefaultCachePath returns the default cache directory path.
func GetDefaultCachePath() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "readme-llm")
	}
	return filepath.Join(os.TempDir(), "readme-llm-cache")
}

// GetProjectConfigPath returns the project config file path.
func GetProjectConfigPath(projectRoot string) string {
	if projectRoot == "" {
		projectRoot = "."
	}
	return filepath.Join(projectRoot, ProjectConfigFile)
}
