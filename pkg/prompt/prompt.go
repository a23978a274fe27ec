// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package prompt builds the text sent to the model for each chunk.
package prompt

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/errors"
)

//go:embed system_prompt.md
var defaultTemplate string

const (
	sourceHeading = "\n---\n\n## Aggregated Source Code to Analyze\n\n"
	sourceIntro   = "Here is the aggregated source code to be analyzed:\n\n"
)

// Builder appends aggregated source code to a system prompt template.
type Builder struct {
	template string
	source   string // where the template came from, for logs
}

// Default returns a builder using the built-in template.
func Default() *Builder {
	return &Builder{template: defaultTemplate, source: "builtin"}
}

// Load reads the template at path. An empty path selects the built-in
// template; a path that cannot be read is a template error.
func Load(path string) (*Builder, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.TemplateError(fmt.Sprintf("prompt template not found at %s", path), err)
	}
	return &Builder{template: string(data), source: path}, nil
}

// FromString returns a builder for an in-memory template.
func FromString(template string) *Builder {
	return &Builder{template: template, source: "inline"}
}

// Source reports where the template was loaded from.
func (b *Builder) Source() string {
	return b.source
}

// Build returns the full prompt for one chunk of source code.
func (b *Builder) Build(source string) string {
	return b.template + sourceHeading + sourceIntro + source
}

// CodeBudget returns how many bytes of source fit in a prompt of at most
// maxPromptSize bytes.
func (b *Builder) CodeBudget(maxPromptSize int) (int, error) {
	budget := maxPromptSize - len(b.Build(""))
	if budget <= 0 {
		return 0, errors.ConfigError(
			fmt.Sprintf("max prompt size %d leaves no room for source code (template needs %d bytes)", maxPromptSize, len(b.Build(""))), nil)
	}
	return budget, nil
}
