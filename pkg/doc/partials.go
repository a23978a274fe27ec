// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

package doc

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/errors"
)

// DefaultPartialsDir holds per-chunk responses during a run.
const DefaultPartialsDir = ".readme_llm_tmp"

// Partials persists one model response per chunk in a scratch directory
// so the merge step reads them back in chunk order.
type Partials struct {
	dir   string
	count int
}

// NewPartials creates the scratch directory dirName under root. Leftovers
// from an interrupted earlier run are discarded.
func NewPartials(root, dirName string) (*Partials, error) {
	if dirName == "" {
		dirName = DefaultPartialsDir
	}
	dir := filepath.Join(root, dirName)
	if err := os.RemoveAll(dir); err != nil {
		return nil, errors.IOError("failed to clear temporary directory", err).WithContext("path", dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.IOError("failed to create temporary directory", err).WithContext("path", dir)
	}
	return &Partials{dir: dir}, nil
}

// Dir returns the scratch directory.
func (p *Partials) Dir() string {
	return p.dir
}

// Len returns how many partials were saved.
func (p *Partials) Len() int {
	return p.count
}

func (p *Partials) file(index int) string {
	return filepath.Join(p.dir, fmt.Sprintf("chunk_%d.tmp", index))
}

// Save stores the response for the next chunk and returns its path.
func (p *Partials) Save(text string) (string, error) {
	path := p.file(p.count)
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", errors.IOError("failed to save partial response", err).WithContext("path", path)
	}
	p.count++
	return path, nil
}

// Load reads every saved partial back in chunk order.
func (p *Partials) Load() ([]string, error) {
	out := make([]string, 0, p.count)
	for i := 0; i < p.count; i++ {
		data, err := os.ReadFile(p.file(i))
		if err != nil {
			return nil, errors.IOError("failed to read partial response", err).WithContext("path", p.file(i))
		}
		out = append(out, string(data))
	}
	return out, nil
}

// Remove deletes the scratch directory and everything in it.
func (p *Partials) Remove() error {
	if err := os.RemoveAll(p.dir); err != nil {
		return errors.IOError("failed to remove temporary directory", err).WithContext("path", p.dir)
	}
	return nil
}
