// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package cache

import (
	"bytes"
	"context"
	"sync"
	"time"
)

// MemoryCache keeps model responses for the lifetime of the process. It is
// selected with cache.backend: memory and suits one-off runs where
// identical chunks repeat but nothing should be written to disk.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]Entry
	now     func() time.Time
}

// NewMemoryCache returns an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]Entry{}, now: time.Now}
}

// Len reports the number of live entries.
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	return len(m.entries)
}

// Get returns a copy of the stored response. Expired entries are dropped.
func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	if e.Expired(m.now()) {
		delete(m.entries, key)
		return nil, ErrCacheMiss
	}
	return bytes.Clone(e.Value), nil
}

// Set stores a copy of value under key.
func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	var exp time.Time
	if ttl > 0 {
		exp = m.now().Add(ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweepLocked()
	m.entries[key] = Entry{Key: key, Value: bytes.Clone(value), ExpiresAt: exp}
	return nil
}

// Delete removes key. Missing keys are not an error.
func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

// Clear drops every entry.
func (m *MemoryCache) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	clear(m.entries)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCache) sweepLocked() {
	now := m.now()
	for k, e := range m.entries {
		if e.Expired(now) {
			delete(m.entries, k)
		}
	}
}
