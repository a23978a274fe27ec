// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package chunker

import (
	"context"
	"iter"
	"strings"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/errors"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/observability"
)

// Stats summarizes a scan.
type Stats struct {
	FilesMatched   int
	FilesPacked    int
	FilesSkipped   int
	FilesTruncated int
	Chunks         int
}

// Sequence is a finite, non-restartable stream of chunks. It is not safe for
// concurrent use.
type Sequence struct {
	c     *Chunker
	ctx   context.Context
	files []fileRef
	pos   int
	done  bool
	err   error

	acc       strings.Builder
	accFiles  []string
	accTrunc  []string
	nextIndex int

	stats Stats
}

// Next returns the next chunk, or false once the sequence is exhausted or the
// context was cancelled (see Err).
func (s *Sequence) Next() (*Chunk, bool) {
	if s.done {
		return nil, false
	}
	max := s.c.opts.MaxChunkSize
	log := s.c.logger

	for s.pos < len(s.files) {
		if err := s.ctx.Err(); err != nil {
			s.err = errors.CancelledError("chunking interrupted", err)
			s.done = true
			return nil, false
		}
		f := s.files[s.pos]
		s.pos++

		content, err := readText(f.abs)
		if err != nil {
			s.stats.FilesSkipped++
			log.Warn("could not read file", observability.String("file", f.rel), observability.Err(err))
			continue
		}

		block, truncated := BuildBlock(f.rel, content, max)
		if truncated {
			s.stats.FilesTruncated++
			log.Warn("file is too large and will be truncated",
				observability.String("file", f.rel),
				observability.Bytes("size", len(content)),
				observability.Bytes("limit", max))
		}
		s.stats.FilesPacked++

		add := len(block)
		if s.acc.Len() > 0 {
			add += len(Separator)
		}
		if s.acc.Len() > 0 && s.acc.Len()+add > max {
			out := s.flush()
			s.append(f.rel, block, truncated)
			return out, true
		}
		s.append(f.rel, block, truncated)
	}

	s.done = true
	if s.acc.Len() > 0 {
		out := s.flush()
		log.Info("repository scan complete",
			observability.Int("files", s.stats.FilesPacked),
			observability.Int("chunks", s.stats.Chunks),
			observability.Int("skipped", s.stats.FilesSkipped))
		return out, true
	}
	return nil, false
}

// All adapts the sequence for range-over-func.
func (s *Sequence) All() iter.Seq[*Chunk] {
	return func(yield func(*Chunk) bool) {
		for {
			c, ok := s.Next()
			if !ok || !yield(c) {
				return
			}
		}
	}
}

// Err returns the error that stopped the sequence early, if any.
func (s *Sequence) Err() error {
	return s.err
}

// Stats returns counters for the work done so far.
func (s *Sequence) Stats() Stats {
	return s.stats
}

// Len returns the number of files that passed the filters.
func (s *Sequence) Len() int {
	return len(s.files)
}

func (s *Sequence) append(rel, block string, truncated bool) {
	if s.acc.Len() > 0 {
		s.acc.WriteString(Separator)
	}
	s.acc.WriteString(block)
	s.accFiles = append(s.accFiles, rel)
	if truncated {
		s.accTrunc = append(s.accTrunc, rel)
	}
}

func (s *Sequence) flush() *Chunk {
	c := &Chunk{
		Index:     s.nextIndex,
		Content:   s.acc.String(),
		Files:     s.accFiles,
		Truncated: s.accTrunc,
	}
	s.nextIndex++
	s.stats.Chunks++
	s.acc.Reset()
	s.accFiles = nil
	s.accTrunc = nil

	s.c.logger.Info("yielding chunk",
		observability.Int("chunk", c.Index+1),
		observability.Int("files", len(c.Files)),
		observability.Bytes("size", c.Size()))
	return c
}
