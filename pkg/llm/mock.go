// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package llm

import (
	"context"
	"fmt"
	"sync"
)

// MockGenerator returns scripted responses and records every prompt.
type MockGenerator struct {
	Responses []string

	// Errors, when non-nil at a call's index, fail that call instead.
	Errors []error

	// Respond, when set, computes the reply instead of Responses.
	Respond func(call int, prompt string) (string, error)

	mu      sync.Mutex
	prompts []string
}

// NewMockGenerator returns a mock replying with responses in order.
func NewMockGenerator(responses ...string) *MockGenerator {
	return &MockGenerator{Responses: responses}
}

// Name implements Generator.
func (m *MockGenerator) Name() string {
	return "mock"
}

// Generate implements Generator.
func (m *MockGenerator) Generate(ctx context.Context, prompt string) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	call := len(m.prompts)
	m.prompts = append(m.prompts, prompt)
	m.mu.Unlock()

	if call < len(m.Errors) && m.Errors[call] != nil {
		return nil, m.Errors[call]
	}
	if m.Respond != nil {
		text, err := m.Respond(call, prompt)
		if err != nil {
			return nil, err
		}
		return &Response{Text: text}, nil
	}
	if call >= len(m.Responses) {
		return nil, fmt.Errorf("mock: no response scripted for call %d", call)
	}
	return &Response{Text: m.Responses[call]}, nil
}

// Prompts returns the prompts received so far.
func (m *MockGenerator) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Calls returns how many times Generate was called.
func (m *MockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}
