// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package observability

import (
	"sync"
	"time"
)

// Metrics collects per-run counters for the final summary.
type Metrics struct {
	mu sync.Mutex

	modelCalls   int
	modelTime    time.Duration
	promptTokens int
	outputTokens int
	cacheHits    int
	cacheMisses  int
}

// Snapshot is an immutable copy of the collected counters.
type Snapshot struct {
	ModelCalls   int
	ModelTime    time.Duration
	PromptTokens int
	OutputTokens int
	CacheHits    int
	CacheMisses  int
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RecordModelCall records one completed model call.
func (m *Metrics) RecordModelCall(duration time.Duration, promptTokens, outputTokens int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modelCalls++
	m.modelTime += duration
	m.promptTokens += promptTokens
	m.outputTokens += outputTokens
}

// RecordCacheHit records a cache hit/miss.
func (m *Metrics) RecordCacheHit(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.cacheHits++
	} else {
		m.cacheMisses++
	}
}

// Snapshot returns the current counters.
func (m *Metrics) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{
		ModelCalls:   m.modelCalls,
		ModelTime:    m.modelTime,
		PromptTokens: m.promptTokens,
		OutputTokens: m.outputTokens,
		CacheHits:    m.cacheHits,
		CacheMisses:  m.cacheMisses,
	}
}
