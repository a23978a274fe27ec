// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package main is the entry point for the readme-llm CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/errors"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:]))
}

func run(ctx context.Context, args []string) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "readme-llm: %v\n", err)
	}
	return errors.ExitCode(err)
}
