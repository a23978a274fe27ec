// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.

// Package output renders run summaries for the terminal.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/cicd-ai-toolkit/readme-llm/pkg/runner"
)

// Reporter prints human readable run summaries. Styling is dropped
// automatically when w is not a terminal.
type Reporter struct {
	w     io.Writer
	title lipgloss.Style
	dim   lipgloss.Style
	warn  lipgloss.Style
}

// NewReporter creates a reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	r := lipgloss.NewRenderer(w)
	return &Reporter{
		w:     w,
		title: r.NewStyle().Bold(true),
		dim:   r.NewStyle().Foreground(lipgloss.Color("240")),
		warn:  r.NewStyle().Foreground(lipgloss.Color("11")),
	}
}

// Report prints the summary matching the kind of run.
func (p *Reporter) Report(res *runner.Result, displayPath string) {
	switch {
	case res.NoOp:
		fmt.Fprintln(p.w, "No matching files found; nothing was written.")
	case res.DryRun:
		p.Plan(res)
	default:
		p.Written(res, displayPath)
	}
}

// Written prints where the document went and what it cost.
func (p *Reporter) Written(res *runner.Result, displayPath string) {
	fmt.Fprintf(p.w, "%s %s\n",
		p.title.Render("Wrote "+displayPath),
		p.dim.Render(fmt.Sprintf("(%d chunks, %s prompt / %s output tokens, %s)",
			len(res.Chunks),
			humanize.Comma(int64(res.Metrics.PromptTokens)),
			humanize.Comma(int64(res.Metrics.OutputTokens)),
			res.Duration.Round(time.Millisecond))))
	if res.Metrics.CacheHits > 0 {
		fmt.Fprintln(p.w, p.dim.Render(fmt.Sprintf("%d of %d responses served from cache",
			res.Metrics.CacheHits, res.Metrics.CacheHits+res.Metrics.CacheMisses)))
	}
	p.skipped(res)
}

// Plan prints the chunks a dry run would send.
func (p *Reporter) Plan(res *runner.Result) {
	total := 0
	for _, c := range res.Chunks {
		total += len(c.Files)
	}
	fmt.Fprintln(p.w, p.title.Render(fmt.Sprintf("Dry run: %d files in %d chunks", total, len(res.Chunks))))
	for _, c := range res.Chunks {
		fmt.Fprintf(p.w, "%s %s\n",
			p.title.Render(fmt.Sprintf("chunk %d", c.Index)),
			p.dim.Render(fmt.Sprintf("(%d files, %s)", len(c.Files), humanize.Bytes(uint64(c.Size)))))
		truncated := make(map[string]bool, len(c.Truncated))
		for _, f := range c.Truncated {
			truncated[f] = true
		}
		for _, f := range c.Files {
			if truncated[f] {
				fmt.Fprintf(p.w, "  %s %s\n", f, p.warn.Render("(truncated)"))
				continue
			}
			fmt.Fprintf(p.w, "  %s\n", f)
		}
	}
	p.skipped(res)
}

func (p *Reporter) skipped(res *runner.Result) {
	if res.Stats.FilesSkipped > 0 {
		fmt.Fprintln(p.w, p.warn.Render(fmt.Sprintf("%d files skipped (unreadable)", res.Stats.FilesSkipped)))
	}
}
