// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package chunker

import (
	"path"
	"strings"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/glob"
)

// Rejection reasons reported by Filter.Check.
const (
	RejectExtension = "extension"
	RejectInclude   = "include"
	RejectExclude   = "exclude"
)

// Filter decides which discovered files are packed.
//
// Checks run in a fixed order: extension suffix, include globs, exclude globs.
// Exclude always wins over include.
type Filter struct {
	Extensions []string
	Include    []string
	Exclude    []string
}

// Check reports whether rel (slash separated, relative to the root) passes,
// and if not, which stage rejected it.
func (f *Filter) Check(rel string) (bool, string) {
	if !hasExtension(path.Base(rel), f.Extensions) {
		return false, RejectExtension
	}
	if len(f.Include) > 0 && !glob.MatchAny(f.Include, rel) {
		return false, RejectInclude
	}
	if len(f.Exclude) > 0 && glob.MatchAny(f.Exclude, rel) {
		return false, RejectExclude
	}
	return true, ""
}

// Allow reports whether rel passes all filters.
func (f *Filter) Allow(rel string) bool {
	ok, _ := f.Check(rel)
	return ok
}

func hasExtension(name string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
