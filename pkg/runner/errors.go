// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package runner

import (
	"context"
	stderrors "errors"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/errors"
)

// Errors
var (
	ErrNoConfig    = stderrors.New("config cannot be nil")
	ErrNoRoot      = stderrors.New("repository root cannot be empty")
	ErrNoGenerator = stderrors.New("a model generator is required unless running dry")
)

// classifyModelError tags an error returned by a Generator so the CLI can
// map it to an exit code. Errors that already carry a type are kept.
func classifyModelError(ctx context.Context, chunk int, err error) error {
	var typed *errors.Error
	if stderrors.As(err, &typed) {
		return err
	}
	if ctx.Err() != nil || stderrors.Is(err, context.Canceled) {
		return errors.CancelledError("interrupted during model call", err).WithContext("chunk", chunk)
	}
	return errors.ModelError("model call failed", err).WithContext("chunk", chunk)
}
