// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package llm

import (
	"github.com/cicd-ai-toolkit/readme-llm/pkg/cache"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/config"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/errors"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/observability"
)

// Factory creates Generator instances based on configuration.
type Factory struct {
	metrics *observability.Metrics
	logger  observability.Logger
}

// NewFactory creates a new Generator factory. metrics and logger may be nil.
func NewFactory(metrics *observability.Metrics, logger observability.Logger) *Factory {
	return &Factory{metrics: metrics, logger: observability.OrNop(logger)}
}

// CreateFromConfig builds the Gemini client and, when the cache is enabled,
// wraps it with a disk-backed response cache.
func (f *Factory) CreateFromConfig(cfg *config.Config) (Generator, error) {
	if cfg == nil {
		return nil, errors.ConfigError("config cannot be nil", nil)
	}

	client, err := NewGeminiClient(GeminiConfig{
		BaseURL: cfg.Model.BaseURL,
		Model:   cfg.Model.Name,
		APIKey:  cfg.Model.APIKey,
		Timeout: cfg.Model.Timeout,
	})
	if err != nil {
		return nil, err
	}
	return f.WithCache(client, cfg.Cache), nil
}

// WithCache wraps gen with the configured response cache, or returns it
// unchanged when caching is disabled.
func (f *Factory) WithCache(gen Generator, cfg config.CacheConfig) Generator {
	if !cfg.Enabled {
		return gen
	}
	var store cache.Cache
	switch cfg.Backend {
	case config.CacheBackendMemory:
		store = cache.NewMemoryCache()
		f.logger.Debug("response cache enabled", observability.String("backend", cfg.Backend))
	default:
		store = cache.NewDiskCache(cfg.Path)
		f.logger.Debug("response cache enabled",
			observability.String("backend", config.CacheBackendDisk),
			observability.String("path", cfg.Path))
	}
	return NewCachedGenerator(gen, store, cfg.TTL, f.metrics, f.logger)
}
