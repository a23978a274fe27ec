// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package doc writes the generated document and the per-chunk partial
// responses it is assembled from.
package doc

import (
	"bufio"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/errors"
)

// DefaultFileName is the document written at the repository root.
const DefaultFileName = "README.llm"

// Writer replaces the output document atomically.
type Writer struct {
	FileName string
	Perm     os.FileMode
}

// NewWriter creates a writer for fileName, relative to the repository root.
func NewWriter(fileName string) *Writer {
	if fileName == "" {
		fileName = DefaultFileName
	}
	return &Writer{FileName: fileName, Perm: 0o644}
}

// Path returns the output path under root.
func (w *Writer) Path(root string) string {
	return filepath.Join(root, w.FileName)
}

// Write stores content under root and returns the written path. Readers
// observe either the previous document or the complete new one.
func (w *Writer) Write(ctx context.Context, root, content string) (string, error) {
	dest := w.Path(root)
	if err := writeAtomic(ctx, dest, strings.NewReader(content), w.Perm); err != nil {
		return "", errors.IOError("failed to write "+w.FileName, err).WithContext("path", dest)
	}
	return dest, nil
}

func writeAtomic(ctx context.Context, dest string, r io.Reader, perm os.FileMode) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, perm)

	bw := bufio.NewWriter(tmp)
	if _, err := io.Copy(bw, readerWithCtx(ctx, r)); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// readerWithCtx checks ctx before every Read.
func readerWithCtx(ctx context.Context, r io.Reader) io.Reader {
	return &ctxReader{ctx: ctx, r: r}
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (cr *ctxReader) Read(p []byte) (int, error) {
	select {
	case <-cr.ctx.Done():
		return 0, cr.ctx.Err()
	default:
	}
	return cr.r.Read(p)
}

// DisplayPath rewrites path, located under root, to the same location
// under hostRoot. It is used when running in a container where the
// repository is mounted at a different path than on the host.
func DisplayPath(path, root, hostRoot string) string {
	if hostRoot == "" {
		return path
	}
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	if rel == "." {
		return hostRoot
	}
	return filepath.Join(hostRoot, rel)
}
