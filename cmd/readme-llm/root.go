// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/version"
)

// generateFlags holds the flags for the root command.
type generateFlags struct {
	config        string
	extensions    []string
	include       []string
	exclude       []string
	output        string
	template      string
	model         string
	maxPromptSize string
	logLevel      string
	logFormat     string
	timeout       time.Duration
	dryRun        bool
	noCache       bool
	cache         bool
	debug         bool
}

func newRootCmd() *cobra.Command {
	var opts generateFlags

	rootCmd := &cobra.Command{
		Use:   "readme-llm [repo_path]",
		Short: "Generate an LLM-oriented README for a repository",
		Long: `readme-llm aggregates a repository's source files into prompt-sized
chunks, asks a generative model to describe each chunk, and merges the
answers into a single README.llm at the repository root.

The model credential is read from GOOGLE_API_KEY.`,
		Version:       version.FullString(),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			return generate(cmd, root, &opts)
		},
	}

	f := rootCmd.Flags()
	f.StringVarP(&opts.config, "config", "c", "", "Path to configuration file (default <repo>/.readme-llm.yaml)")
	f.StringSliceVar(&opts.extensions, "ext", nil, "File extensions to include, e.g. .go,.py")
	f.StringSliceVar(&opts.include, "include", nil, "Glob patterns a file must match (matched against repo-relative paths)")
	f.StringSliceVar(&opts.exclude, "exclude", nil, "Glob patterns that remove a file")
	f.StringVarP(&opts.output, "output", "o", "", "Output file name relative to the repository root")
	f.StringVar(&opts.template, "template", "", "Prompt template file (default built-in)")
	f.StringVarP(&opts.model, "model", "m", "", "Model name")
	f.StringVar(&opts.maxPromptSize, "max-prompt-size", "", "Maximum prompt size, e.g. 512000 or 500KiB")
	f.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	f.StringVar(&opts.logFormat, "log-format", "", "Log format: auto, console, json")
	f.DurationVar(&opts.timeout, "timeout", 0, "Abort the whole run after this long (0 for no limit)")
	f.BoolVar(&opts.dryRun, "dry-run", false, "List the chunks that would be sent without calling the model")
	f.BoolVar(&opts.cache, "cache", false, "Serve repeated prompts from the response cache")
	f.BoolVar(&opts.noCache, "no-cache", false, "Disable the response cache")
	f.BoolVar(&opts.debug, "debug", false, "Log prompts and raw model responses")
	rootCmd.MarkFlagsMutuallyExclusive("cache", "no-cache")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCacheCmd())
	return rootCmd
}
