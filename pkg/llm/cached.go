// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package llm

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"time"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/cache"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/observability"
)

// CachedGenerator serves repeated prompts from a response cache. Cache
// failures are logged and never fail a generation.
type CachedGenerator struct {
	inner   Generator
	store   cache.Cache
	keys    *cache.KeyGenerator
	ttl     time.Duration
	metrics *observability.Metrics
	logger  observability.Logger
}

// NewCachedGenerator wraps inner. metrics and logger may be nil.
func NewCachedGenerator(inner Generator, store cache.Cache, ttl time.Duration, metrics *observability.Metrics, logger observability.Logger) *CachedGenerator {
	return &CachedGenerator{
		inner:   inner,
		store:   store,
		keys:    cache.NewKeyGenerator(),
		ttl:     ttl,
		metrics: metrics,
		logger:  observability.OrNop(logger),
	}
}

// Name implements Generator.
func (g *CachedGenerator) Name() string {
	return g.inner.Name()
}

// Generate implements Generator.
func (g *CachedGenerator) Generate(ctx context.Context, prompt string) (*Response, error) {
	key := g.keys.ForPrompt(g.inner.Name(), prompt)

	data, err := g.store.Get(ctx, key)
	switch {
	case err == nil:
		var resp Response
		if jerr := json.Unmarshal(data, &resp); jerr == nil && resp.Text != "" {
			g.record(true)
			resp.Cached = true
			g.logger.Debug("response served from cache", observability.String("model", g.Name()))
			return &resp, nil
		}
		g.logger.Warn("discarding unreadable cache entry")
		_ = g.store.Delete(ctx, key)
	case !stderrors.Is(err, cache.ErrCacheMiss):
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		g.logger.Warn("cache lookup failed", observability.Err(err))
	}
	g.record(false)

	resp, err := g.inner.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(resp); err == nil {
		if err := g.store.Set(ctx, key, data, g.ttl); err != nil {
			g.logger.Warn("cache store failed", observability.Err(err))
		}
	}
	return resp, nil
}

func (g *CachedGenerator) record(hit bool) {
	if g.metrics != nil {
		g.metrics.RecordCacheHit(hit)
	}
}
