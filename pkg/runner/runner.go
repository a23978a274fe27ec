// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package runner drives one generation run: scan the repository into
// chunks, send each chunk to the model, merge the answers and write the
// document.
package runner

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/chunker"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/config"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/doc"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/errors"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/llm"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/merger"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/observability"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/prompt"
)

// debugPromptPreview is how much of each prompt debug mode logs.
const debugPromptPreview = 1000

// Options configures a Runner.
type Options struct {
	// Root is the repository to document.
	Root   string
	Config *config.Config

	// Generator is not called in dry-run mode and may then be nil.
	Generator llm.Generator
	DryRun    bool

	Logger  observability.Logger
	Metrics *observability.Metrics
	Merger  *merger.Merger
}

// ChunkSummary describes one chunk that was, or in a dry run would be, sent.
type ChunkSummary struct {
	Index     int
	Files     []string
	Truncated []string
	Size      int
}

// Result describes a finished run.
type Result struct {
	RunID      string
	Chunks     []ChunkSummary
	Calls      int
	OutputPath string
	Duration   time.Duration
	// NoOp is set when no file matched; nothing is written.
	NoOp    bool
	DryRun  bool
	Stats   chunker.Stats
	Metrics observability.Snapshot
}

// Runner orchestrates a generation run.
type Runner struct {
	root    string
	cfg     *config.Config
	gen     llm.Generator
	dryRun  bool
	logger  observability.Logger
	metrics *observability.Metrics
	merger  *merger.Merger
	writer  *doc.Writer
}

// New creates a runner.
func New(opts Options) (*Runner, error) {
	if opts.Config == nil {
		return nil, errors.ConfigError(ErrNoConfig.Error(), ErrNoConfig)
	}
	if opts.Root == "" {
		return nil, errors.ConfigError(ErrNoRoot.Error(), ErrNoRoot)
	}
	if opts.Generator == nil && !opts.DryRun {
		return nil, errors.ConfigError(ErrNoGenerator.Error(), ErrNoGenerator)
	}
	m := opts.Merger
	if m == nil {
		m = merger.New()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = observability.NewMetrics()
	}
	return &Runner{
		root:    opts.Root,
		cfg:     opts.Config,
		gen:     opts.Generator,
		dryRun:  opts.DryRun,
		logger:  observability.OrNop(opts.Logger),
		metrics: metrics,
		merger:  m,
		writer:  doc.NewWriter(opts.Config.Output.FileName),
	}, nil
}

// Run executes one generation. Partial responses live in a scratch
// directory under the repository that is removed on every return path.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{RunID: uuid.NewString(), DryRun: r.dryRun}
	log := r.logger.With(observability.String("run_id", result.RunID))

	builder, err := prompt.Load(r.cfg.Model.PromptTemplate)
	if err != nil {
		return nil, err
	}
	budget, err := builder.CodeBudget(int(r.cfg.Model.MaxPromptSize))
	if err != nil {
		return nil, err
	}
	log.Info("starting run",
		observability.String("root", r.displayPath(r.root)),
		observability.String("template", builder.Source()),
		observability.Bytes("chunk_budget", budget))

	ch, err := chunker.New(chunker.Options{
		Root:         r.root,
		Extensions:   r.cfg.Scan.Extensions,
		MaxChunkSize: budget,
		Include:      r.cfg.Scan.Include,
		Exclude:      r.cfg.Scan.Exclude,
	}, log)
	if err != nil {
		return nil, err
	}
	seq, err := ch.Scan(ctx)
	if err != nil {
		return nil, err
	}

	if seq.Len() == 0 {
		log.Info("no files matched, nothing to do")
		result.NoOp = true
		result.Duration = time.Since(start)
		return result, nil
	}
	log.Info("files matched", observability.Int("count", seq.Len()))

	if r.dryRun {
		return r.finishDryRun(log, seq, result, start)
	}

	partials, err := doc.NewPartials(r.root, r.cfg.Output.TempDir)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := partials.Remove(); rerr != nil {
			log.Warn("could not remove temporary directory", observability.Err(rerr))
		}
	}()

	for chunk := range seq.All() {
		result.Chunks = append(result.Chunks, summarize(chunk))
		if err := r.process(ctx, log, builder, chunk, partials); err != nil {
			return nil, err
		}
		result.Calls++
	}
	if err := seq.Err(); err != nil {
		return nil, err
	}
	if result.Calls == 0 {
		log.Info("no readable files, nothing to do")
		result.NoOp = true
		result.Stats = seq.Stats()
		result.Duration = time.Since(start)
		return result, nil
	}

	responses, err := partials.Load()
	if err != nil {
		return nil, err
	}
	log.Info("merging responses", observability.Int("count", len(responses)))
	merged := r.merger.Merge(responses)

	out, err := r.writer.Write(ctx, r.root, merged)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.CancelledError("interrupted while writing output", ctx.Err())
		}
		return nil, err
	}

	result.OutputPath = out
	result.Stats = seq.Stats()
	result.Metrics = r.metrics.Snapshot()
	result.Duration = time.Since(start)
	log.Info("document written",
		observability.String("path", r.displayPath(out)),
		observability.Int("chunks", len(result.Chunks)),
		observability.Bytes("size", len(merged)),
		observability.Duration("elapsed", result.Duration))
	return result, nil
}

func (r *Runner) process(ctx context.Context, log observability.Logger, builder *prompt.Builder, chunk *chunker.Chunk, partials *doc.Partials) error {
	log = log.With(observability.Int("chunk", chunk.Index))
	text := builder.Build(chunk.Content)

	log.Info("sending chunk to model",
		observability.String("model", r.gen.Name()),
		observability.Int("files", len(chunk.Files)),
		observability.Bytes("prompt_size", len(text)))
	if r.cfg.Global.Debug {
		log.Debug("prompt preview", observability.String("prompt", preview(text, debugPromptPreview)))
	}

	resp, err := r.gen.Generate(ctx, text)
	if err != nil {
		return classifyModelError(ctx, chunk.Index, err)
	}
	if !resp.Cached {
		r.metrics.RecordModelCall(resp.Duration, resp.Usage.PromptTokens, resp.Usage.OutputTokens)
	}
	log.Info("model responded",
		observability.Int("prompt_token_count", resp.Usage.PromptTokens),
		observability.Int("candidates_token_count", resp.Usage.OutputTokens),
		observability.Bool("cached", resp.Cached))
	if r.cfg.Global.Debug {
		log.Debug("model response", observability.String("response", resp.Text))
	}

	path, err := partials.Save(resp.Text)
	if err != nil {
		return err
	}
	log.Debug("saved partial response", observability.String("path", r.displayPath(path)))
	return nil
}

func (r *Runner) finishDryRun(log observability.Logger, seq *chunker.Sequence, result *Result, start time.Time) (*Result, error) {
	for chunk := range seq.All() {
		s := summarize(chunk)
		result.Chunks = append(result.Chunks, s)
		log.Info("would send chunk",
			observability.Int("chunk", s.Index),
			observability.Int("files", len(s.Files)),
			observability.Bytes("size", s.Size))
	}
	if err := seq.Err(); err != nil {
		return nil, err
	}
	result.Stats = seq.Stats()
	result.Duration = time.Since(start)
	return result, nil
}

func (r *Runner) displayPath(p string) string {
	return doc.DisplayPath(p, r.root, r.cfg.Output.DisplayRoot)
}

func summarize(c *chunker.Chunk) ChunkSummary {
	return ChunkSummary{
		Index:     c.Index,
		Files:     c.Files,
		Truncated: c.Truncated,
		Size:      c.Size(),
	}
}

// preview cuts s to at most n bytes without splitting a rune.
func preview(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return chunker.TruncateUTF8(s, n)
}
