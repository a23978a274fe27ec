// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validator validates configuration.
type Validator struct {
	requireAPIKey bool
}

// NewValidator creates a new validator that requires a model credential.
func NewValidator() *Validator {
	return &Validator{
		requireAPIKey: true,
	}
}

// WithoutAPIKey relaxes the credential check, for dry runs.
func (v *Validator) WithoutAPIKey() *Validator {
	v.requireAPIKey = false
	return v
}

// Validate validates a configuration.
func (v *Validator) Validate(cfg *Config) error {
	if err := v.ValidateModel(&cfg.Model); err != nil {
		return err
	}
	if err := v.ValidateScan(&cfg.Scan); err != nil {
		return err
	}
	if err := v.ValidateOutput(&cfg.Output); err != nil {
		return err
	}
	if err := v.ValidateGlobal(&cfg.Global); err != nil {
		return err
	}
	switch cfg.Cache.Backend {
	case CacheBackendDisk, CacheBackendMemory:
	default:
		return &ValidationError{
			Field:   "cache.backend",
			Value:   cfg.Cache.Backend,
			Message: "must be one of disk, memory",
		}
	}
	if cfg.Cache.Enabled && cfg.Cache.Backend == CacheBackendDisk && cfg.Cache.Path == "" {
		return &ValidationError{
			Field:   "cache.path",
			Message: "must be set when the cache is enabled",
		}
	}
	if cfg.Cache.TTL < 0 {
		return &ValidationError{
			Field:   "cache.ttl",
			Value:   cfg.Cache.TTL,
			Message: "must be non-negative",
		}
	}
	return nil
}

// ValidateModel validates model configuration.
func (v *Validator) ValidateModel(cfg *ModelConfig) error {
	if v.requireAPIKey && cfg.APIKey == "" {
		return &ValidationError{
			Field:   cfg.APIKeyEnv,
			Message: "environment variable is not set",
		}
	}
	if strings.TrimSpace(cfg.Name) == "" {
		return &ValidationError{
			Field:   "model.name",
			Message: "must not be empty",
		}
	}
	if cfg.Timeout < 0 {
		return &ValidationError{
			Field:   "model.timeout",
			Value:   cfg.Timeout,
			Message: "must be positive",
		}
	}
	if cfg.MaxPromptSize <= 0 {
		return &ValidationError{
			Field:   "model.max_prompt_size",
			Value:   int(cfg.MaxPromptSize),
			Message: "must be positive",
		}
	}
	return nil
}

// ValidateScan validates file selection settings.
func (v *Validator) ValidateScan(cfg *ScanConfig) error {
	if len(cfg.Extensions) == 0 {
		return &ValidationError{
			Field:   "scan.extensions",
			Message: "at least one extension is required",
		}
	}
	for _, ext := range cfg.Extensions {
		if ext == "" {
			return &ValidationError{
				Field:   "scan.extensions",
				Message: "extensions must not be empty strings",
			}
		}
	}
	return nil
}

// ValidateOutput validates output settings.
func (v *Validator) ValidateOutput(cfg *OutputConfig) error {
	if cfg.FileName == "" {
		return &ValidationError{Field: "output.file_name", Message: "must not be empty"}
	}
	if cfg.TempDir == "" {
		return &ValidationError{Field: "output.temp_dir", Message: "must not be empty"}
	}
	return nil
}

// ValidateGlobal validates global configuration.
func (v *Validator) ValidateGlobal(cfg *GlobalConfig) error {
	validLogLevels := []string{"debug", "info", "warn", "error"}
	if cfg.LogLevel != "" && !slices.Contains(validLogLevels, strings.ToLower(cfg.LogLevel)) {
		return &ValidationError{
			Field:   "global.log_level",
			Value:   cfg.LogLevel,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validLogLevels, ", ")),
		}
	}

	validFormats := []string{"auto", "console", "json"}
	if cfg.LogFormat != "" && !slices.Contains(validFormats, strings.ToLower(cfg.LogFormat)) {
		return &ValidationError{
			Field:   "global.log_format",
			Value:   cfg.LogFormat,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(validFormats, ", ")),
		}
	}
	return nil
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("validation error for %s: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}
