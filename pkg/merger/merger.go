// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package merger reassembles per-chunk model responses into one document.
//
// Every response may be wrapped in a ``` fence. After unfencing, a response is
// split into a header (free-form preamble) and a body starting at the first
// line that contains a body marker. The merged document keeps the first
// response's header, concatenates all bodies in order, drops empty module
// sections left behind at chunk seams, and restores the first response's
// fence.
package merger

import (
	"strings"
)

const fence = "```"

// DefaultMarkers are the substrings that open the body of a response.
var DefaultMarkers = []string{
	"# === Module:",
	"declare module",
	"public interface",
	"namespace",
	"#pragma once",
	"package ",
}

const (
	// DefaultSectionPrefix opens a module section.
	DefaultSectionPrefix = "# === Module:"
	// DefaultSectionFamily is the prefix shared by all section marker lines.
	DefaultSectionFamily = "# ==="
)

// Parts is a response split at its first body marker.
type Parts struct {
	Header string
	Body   string
}

// Merger holds the marker configuration. The zero value is not usable; use
// New or the package-level Merge.
type Merger struct {
	Markers       []string
	SectionPrefix string
	SectionFamily string
}

// New returns a merger with the default markers.
func New() *Merger {
	return &Merger{
		Markers:       DefaultMarkers,
		SectionPrefix: DefaultSectionPrefix,
		SectionFamily: DefaultSectionFamily,
	}
}

// Merge merges results with the default markers.
func Merge(results []string) string {
	return New().Merge(results)
}

// Merge combines the ordered partial results into the final document.
// Zero results yield "". A single result is only unfenced and re-fenced.
func (m *Merger) Merge(results []string) string {
	switch len(results) {
	case 0:
		return ""
	case 1:
		inner, lang, fenced := StripFence(results[0])
		if fenced {
			return wrap(inner, lang)
		}
		return inner
	}

	first, lang, fenced := StripFence(results[0])
	head := m.Split(first)

	bodies := make([]string, 0, len(results))
	bodies = append(bodies, strings.TrimSpace(head.Body))
	for _, r := range results[1:] {
		inner, _, _ := StripFence(r)
		bodies = append(bodies, strings.TrimSpace(m.Split(inner).Body))
	}

	body := m.dropEmptySections(strings.Join(bodies, "\n\n"))
	doc := strings.TrimSpace(strings.TrimSpace(head.Header) + "\n\n" + body)
	if fenced {
		return wrap(doc, lang)
	}
	return doc
}

// Split separates text at the first line containing any body marker. Without
// a marker the whole text is body.
func (m *Merger) Split(text string) Parts {
	offset := 0
	for _, line := range strings.SplitAfter(text, "\n") {
		if line == "" {
			break
		}
		for _, marker := range m.Markers {
			if strings.Contains(line, marker) {
				return Parts{Header: text[:offset], Body: text[offset:]}
			}
		}
		offset += len(line)
	}
	return Parts{Body: text}
}

// dropEmptySections removes a module section line when the following line is
// another section marker, is blank, or does not exist. It is a single forward
// pass looking at the original next line.
func (m *Merger) dropEmptySections(body string) string {
	lines := strings.Split(body, "\n")
	kept := make([]string, 0, len(lines))
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), m.SectionPrefix) {
			if i+1 >= len(lines) {
				continue
			}
			next := strings.TrimSpace(lines[i+1])
			if next == "" || strings.HasPrefix(next, m.SectionFamily) {
				continue
			}
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// StripFence removes a surrounding ``` fence. A text counts as fenced when,
// trimmed, it starts and ends with ``` and spans at least two lines. The
// returned lang is whatever follows the opening marker on its line. When not
// fenced, text is returned unchanged.
func StripFence(text string) (inner, lang string, fenced bool) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, fence) || !strings.HasSuffix(trimmed, fence) {
		return text, "", false
	}
	firstNL := strings.IndexByte(trimmed, '\n')
	lastNL := strings.LastIndexByte(trimmed, '\n')
	if firstNL == -1 || lastNL <= firstNL {
		return text, "", false
	}
	lang = strings.TrimSpace(trimmed[len(fence):firstNL])
	return strings.TrimSpace(trimmed[firstNL+1 : lastNL]), lang, true
}

func wrap(content, lang string) string {
	return fence + lang + "\n" + strings.TrimSpace(content) + "\n" + fence
}
