// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package llm is the boundary to the generative model: text in, text out.
package llm

import (
	"context"
	"time"
)

// Generator turns one prompt into one response.
type Generator interface {
	// Generate sends prompt to the model. It does not retry.
	Generate(ctx context.Context, prompt string) (*Response, error)

	// Name identifies the backend and model, e.g. "gemini/gemini-1.5-flash".
	Name() string
}

// Usage holds token accounting reported by the model.
type Usage struct {
	PromptTokens int `json:"prompt_tokens"`
	OutputTokens int `json:"output_tokens"`
}

// Response is a model reply.
type Response struct {
	Text     string        `json:"text"`
	Usage    Usage         `json:"usage"`
	Duration time.Duration `json:"-"`
	Cached   bool          `json:"-"`
}
