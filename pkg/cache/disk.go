// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const diskSuffix = ".json"

// DiskCache is a disk-based cache storing one JSON file per key.
type DiskCache struct {
	path string
}

// NewDiskCache creates a new disk cache rooted at path. The directory is
// created on first write.
func NewDiskCache(path string) *DiskCache {
	return &DiskCache{
		path: path,
	}
}

// Path returns the cache directory.
func (d *DiskCache) Path() string {
	return d.path
}

func (d *DiskCache) file(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(d.path, hex.EncodeToString(sum[:])+diskSuffix)
}

// Get retrieves a value from disk cache. Expired entries are removed.
func (d *DiskCache) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p := d.file(key)
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil || e.Key != key {
		// corrupt or colliding entry
		_ = os.Remove(p)
		return nil, ErrCacheMiss
	}
	if e.Expired(time.Now()) {
		_ = os.Remove(p)
		return nil, ErrCacheMiss
	}
	return e.Value, nil
}

// Set stores a value in disk cache, replacing any previous entry atomically.
func (d *DiskCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.MkdirAll(d.path, 0o755); err != nil {
		return err
	}
	data, err := json.Marshal(&Entry{Key: key, Value: value, ExpiresAt: expiry(ttl)})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(d.path, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, d.file(key)); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// Delete removes a value from disk cache.
func (d *DiskCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(d.file(key))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// Clear removes all entries from disk cache.
func (d *DiskCache) Clear(ctx context.Context) error {
	entries, err := os.ReadDir(d.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), diskSuffix) {
			continue
		}
		if err := os.Remove(filepath.Join(d.path, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	return nil
}
