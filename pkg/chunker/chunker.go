// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package chunker packs the text files of a repository into size-bounded
// chunks for the model.
//
// Each file becomes a block: a header line naming its relative path followed
// by its content. Blocks are joined with a blank line into chunks whose UTF-8
// byte length never exceeds the configured ceiling. A file too large to fit on
// its own is truncated to exactly fill one chunk.
package chunker

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/errors"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/observability"
)

const (
	// HeaderFormat is the block header; %s is the host-style relative path.
	HeaderFormat = "# === File: %s ===\n"
	// Separator joins blocks inside a chunk.
	Separator = "\n\n"
)

// Options configures a scan.
type Options struct {
	Root         string
	Extensions   []string
	MaxChunkSize int
	Include      []string
	Exclude      []string
}

// Chunker splits a repository into chunks.
type Chunker struct {
	opts   Options
	filter *Filter
	logger observability.Logger
}

// Chunk is one packed unit of repository text.
type Chunk struct {
	Index     int
	Content   string
	Files     []string
	Truncated []string
}

// Size returns the chunk's byte length.
func (c *Chunk) Size() int {
	return len(c.Content)
}

// New creates a chunker. A nil logger discards all output.
func New(opts Options, logger observability.Logger) (*Chunker, error) {
	if opts.Root == "" {
		return nil, errors.ValidationError("chunker: root is required", nil)
	}
	if opts.MaxChunkSize <= 0 {
		return nil, errors.ValidationError(fmt.Sprintf("chunker: max chunk size must be positive (got %d)", opts.MaxChunkSize), nil)
	}
	return &Chunker{
		opts: opts,
		filter: &Filter{
			Extensions: opts.Extensions,
			Include:    opts.Include,
			Exclude:    opts.Exclude,
		},
		logger: observability.OrNop(logger),
	}, nil
}

// Scan walks the root and returns the lazy chunk sequence. Only the walk
// happens here; file contents are read as the sequence advances.
func (c *Chunker) Scan(ctx context.Context) (*Sequence, error) {
	info, err := os.Stat(c.opts.Root)
	if err != nil {
		return nil, errors.IOError("cannot access repository root", err).WithContext("root", c.opts.Root)
	}
	if !info.IsDir() {
		return nil, errors.ValidationError(fmt.Sprintf("repository root %q is not a directory", c.opts.Root), nil)
	}

	c.logger.Info("scanning repository",
		observability.String("root", c.opts.Root),
		observability.Strings("extensions", c.opts.Extensions))

	files, err := c.discover(ctx)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		c.logger.Info("no files matched the configured filters")
	}
	return &Sequence{
		c:     c,
		ctx:   ctx,
		files: files,
		stats: Stats{FilesMatched: len(files)},
	}, nil
}

type fileRef struct {
	abs string
	rel string
}

// discover collects every file that passes the filter, in WalkDir order
// (lexical within each directory), which is stable across runs.
func (c *Chunker) discover(ctx context.Context) ([]fileRef, error) {
	var files []fileRef
	err := filepath.WalkDir(c.opts.Root, func(p string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if p == c.opts.Root {
				return err
			}
			c.logger.Warn("skipping unreadable path", observability.String("path", p), observability.Err(err))
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(c.opts.Root, p)
		if err != nil {
			return nil
		}
		if ok, reason := c.filter.Check(filepath.ToSlash(rel)); !ok {
			if reason != RejectExtension {
				c.logger.Debug("file filtered", observability.String("file", rel), observability.String("reason", reason))
			}
			return nil
		}
		files = append(files, fileRef{abs: p, rel: rel})
		return nil
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.CancelledError("scan interrupted", ctx.Err())
		}
		return nil, errors.IOError("walk repository", err).WithContext("root", c.opts.Root)
	}
	return files, nil
}

// BuildBlock renders one file block. When header plus content exceed max the
// content is cut at max-len(header) bytes; a multi-byte rune split by the cut
// is dropped.
func BuildBlock(rel, content string, max int) (block string, truncated bool) {
	header := fmt.Sprintf(HeaderFormat, rel)
	if len(header)+len(content) > max {
		limit := max - len(header)
		if limit < 0 {
			limit = 0
		}
		content = TruncateUTF8(content, limit)
		truncated = true
	}
	return header + content, truncated
}

// TruncateUTF8 cuts s to at most n bytes, dropping a trailing partial rune.
func TruncateUTF8(s string, n int) string {
	if n >= len(s) {
		return s
	}
	s = s[:n]
	for i := len(s) - 1; i >= 0 && i >= len(s)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(s[i]) {
			continue
		}
		if r, size := utf8.DecodeRuneInString(s[i:]); r == utf8.RuneError && size <= 1 {
			return s[:i]
		}
		break
	}
	return s
}

// readText reads a file as UTF-8 text with universal newlines.
func readText(p string) (string, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: not valid UTF-8", p)
	}
	text := string(data)
	if strings.Contains(text, "\r") {
		text = strings.ReplaceAll(text, "\r\n", "\n")
		text = strings.ReplaceAll(text, "\r", "\n")
	}
	return text, nil
}
