// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package config provides configuration management for readme-llm.
//
// Configuration Loading Order (later overrides earlier):
// 1. Defaults (hardcoded)
// 2. Project Config: <repo>/.readme-llm.yaml, or the file given with --config
// 3. Environment Variables: GOOGLE_API_KEY, GEMINI_MODEL, DEBUG_MODE, ...
// 4. Command line flags (applied by the caller)
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"
)

// Config represents the complete application configuration.
type Config struct {
	Model  ModelConfig  `yaml:"model"`
	Scan   ScanConfig   `yaml:"scan"`
	Output OutputConfig `yaml:"output"`
	Cache  CacheConfig  `yaml:"cache"`
	Global GlobalConfig `yaml:"global"`
}

// ModelConfig contains generative model settings.
type ModelConfig struct {
	Name           string        `yaml:"name"`
	APIKeyEnv      string        `yaml:"api_key_env"` // e.g., "GOOGLE_API_KEY"
	BaseURL        string        `yaml:"base_url"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxPromptSize  ByteSize      `yaml:"max_prompt_size"`
	PromptTemplate string        `yaml:"prompt_template"`

	// APIKey is resolved from APIKeyEnv; it is never read from a file.
	APIKey string `yaml:"-"`
}

// ScanConfig selects which repository files are aggregated.
type ScanConfig struct {
	Extensions []string `yaml:"extensions"`
	Include    []string `yaml:"include"`
	Exclude    []string `yaml:"exclude"`
}

// OutputConfig controls where results are written.
type OutputConfig struct {
	FileName    string `yaml:"file_name"` // relative to the repository root
	TempDir     string `yaml:"temp_dir"`  // partial responses, removed after each run
	DisplayRoot string `yaml:"-"`         // HOST_REPO_PATH, for log lines only
}

// CacheConfig controls the model response cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	Backend string        `yaml:"backend"` // disk or memory
	Path    string        `yaml:"path"`    // disk backend only
	TTL     time.Duration `yaml:"ttl"`
}

// GlobalConfig contains global application settings.
type GlobalConfig struct {
	LogLevel  string `yaml:"log_level"`  // debug, info, warn, error
	LogFormat string `yaml:"log_format"` // auto, console, json
	Debug     bool   `yaml:"debug"`      // log prompts and raw responses
}

// ByteSize is a size in bytes that also accepts humanized values such as
// "500KiB" or "1 MB".
type ByteSize int

// ParseByteSize parses a plain integer or a humanized size.
func ParseByteSize(s string) (ByteSize, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return ByteSize(n), nil
	}
	n, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, fmt.Errorf("invalid size %q: %w", s, err)
	}
	return ByteSize(n), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (b *ByteSize) UnmarshalYAML(value *yaml.Node) error {
	v, err := ParseByteSize(value.Value)
	if err != nil {
		return err
	}
	*b = v
	return nil
}

// String renders the size for logs.
func (b ByteSize) String() string {
	if b < 0 {
		return strconv.Itoa(int(b))
	}
	return humanize.Bytes(uint64(b))
}
