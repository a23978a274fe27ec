// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/config"
	sigctx "github.com/cicd-ai-toolkit/readme-llm/pkg/context"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/doc"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/errors"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/glob"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/llm"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/observability"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/output"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/runner"
)

func generate(cmd *cobra.Command, root string, opts *generateFlags) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return errors.IOError("cannot resolve repository path", err)
	}

	cfg, err := loadConfig(cmd, abs, opts)
	if err != nil {
		return err
	}

	validator := config.NewValidator()
	if opts.dryRun {
		validator.WithoutAPIKey()
	}
	if err := validator.Validate(cfg); err != nil {
		return errors.ConfigError("invalid configuration", err)
	}

	logger := observability.NewLoggerWithOptions(observability.Options{
		Level:  cfg.Global.LogLevel,
		Format: cfg.Global.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	metrics := observability.NewMetrics()

	var gen llm.Generator
	if !opts.dryRun {
		gen, err = llm.NewFactory(metrics, logger).CreateFromConfig(cfg)
		if err != nil {
			return err
		}
	}

	r, err := runner.New(runner.Options{
		Root:      abs,
		Config:    cfg,
		Generator: gen,
		DryRun:    opts.dryRun,
		Logger:    logger,
		Metrics:   metrics,
	})
	if err != nil {
		return err
	}

	ctx, cancel := sigctx.WithSignalTimeout(cmd.Context(), opts.timeout, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	res, err := r.Run(ctx)
	if err != nil {
		if sig := sigctx.Signal(ctx); sig != nil {
			return errors.CancelledError("interrupted by "+sig.String(), err)
		}
		return err
	}

	output.NewReporter(cmd.OutOrStdout()).Report(res,
		doc.DisplayPath(res.OutputPath, abs, cfg.Output.DisplayRoot))
	return nil
}

// loadConfig applies defaults, the config file, the environment and then
// any flag the user set explicitly.
func loadConfig(cmd *cobra.Command, root string, opts *generateFlags) (*config.Config, error) {
	loader := config.NewLoader().WithProjectRoot(root)
	if opts.config != "" {
		loader.WithConfigPath(opts.config)
	}
	cfg, err := loader.Load()
	if err != nil {
		return nil, errors.ConfigError("failed to load configuration", err)
	}

	f := cmd.Flags()
	if f.Changed("ext") {
		cfg.Scan.Extensions = opts.extensions
	}
	if f.Changed("include") {
		cfg.Scan.Include = opts.include
	}
	if f.Changed("exclude") {
		cfg.Scan.Exclude = opts.exclude
	}
	if f.Changed("output") {
		cfg.Output.FileName = opts.output
	}
	if f.Changed("template") {
		cfg.Model.PromptTemplate = opts.template
	}
	if f.Changed("model") {
		cfg.Model.Name = opts.model
	}
	if f.Changed("max-prompt-size") {
		size, err := config.ParseByteSize(opts.maxPromptSize)
		if err != nil {
			return nil, errors.ConfigError("invalid --max-prompt-size", err)
		}
		cfg.Model.MaxPromptSize = size
	}
	if f.Changed("log-format") {
		cfg.Global.LogFormat = opts.logFormat
	}
	if f.Changed("cache") {
		cfg.Cache.Enabled = opts.cache
	}
	if f.Changed("no-cache") {
		cfg.Cache.Enabled = !opts.noCache
	}
	if opts.debug {
		cfg.Global.Debug = true
	}
	switch {
	case f.Changed("log-level"):
		cfg.Global.LogLevel = opts.logLevel
	case cfg.Global.Debug:
		cfg.Global.LogLevel = "debug"
	}

	cfg.Scan.Include = glob.CleanPatterns(cfg.Scan.Include)
	cfg.Scan.Exclude = glob.CleanPatterns(cfg.Scan.Exclude)
	return cfg, nil
}
