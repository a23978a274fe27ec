// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/cache"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/config"
	"github.com/cicd-ai-toolkit/readme-llm/pkg/errors"
)

func newCacheCmd() *cobra.Command {
	var configPath string

	cacheDir := func(repo string) (string, error) {
		abs, err := filepath.Abs(repo)
		if err != nil {
			return "", errors.IOError("cannot resolve repository path", err)
		}
		loader := config.NewLoader().WithProjectRoot(abs)
		if configPath != "" {
			loader.WithConfigPath(configPath)
		}
		cfg, err := loader.Load()
		if err != nil {
			return "", errors.ConfigError("failed to load configuration", err)
		}
		return cfg.Cache.Path, nil
	}
	repoArg := func(args []string) string {
		if len(args) == 1 {
			return args[0]
		}
		return "."
	}

	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the model response cache",
	}
	cacheCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "path [repo_path]",
		Short: "Print the cache directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir(repoArg(args))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	})

	cacheCmd.AddCommand(&cobra.Command{
		Use:   "clear [repo_path]",
		Short: "Remove every cached model response",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir(repoArg(args))
			if err != nil {
				return err
			}
			if err := cache.NewDiskCache(dir).Clear(cmd.Context()); err != nil {
				return errors.IOError("failed to clear cache", err).WithContext("path", dir)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", dir)
			return nil
		},
	})
	return cacheCmd
}
