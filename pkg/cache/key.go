// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// KeyGenerator generates cache keys.
type KeyGenerator struct {
	prefix string
}

// NewKeyGenerator creates a new key generator.
func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{
		prefix: "readme-llm",
	}
}

// Generate hashes the inputs into a key. Inputs are length-prefixed so
// ("ab","c") and ("a","bc") differ.
func (kg *KeyGenerator) Generate(inputs ...string) string {
	h := sha256.New()
	var lenBuf [8]byte
	for _, input := range inputs {
		n := uint64(len(input))
		for i := range lenBuf {
			lenBuf[i] = byte(n >> (8 * i))
		}
		h.Write(lenBuf[:])
		h.Write([]byte(input))
	}
	return kg.prefix + ":" + hex.EncodeToString(h.Sum(nil))
}

// ForPrompt generates the key for a model response.
func (kg *KeyGenerator) ForPrompt(model, prompt string) string {
	return kg.Generate(model, prompt)
}

// CacheError represents a cache error.
type CacheError struct {
	Code string
}

func (e *CacheError) Error() string {
	return e.Code
}

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = &CacheError{Code: "CACHE_MISS"}
