// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

package observability

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// ConsoleHandler is a slog.Handler that prints one human readable line per
// record, colored by level.
type ConsoleHandler struct {
	mu    *sync.Mutex
	out   io.Writer
	level slog.Leveler
	attrs []slog.Attr // keys already qualified by the group open when added
	group string

	levelStyles map[slog.Level]lipgloss.Style
	keyStyle    lipgloss.Style
}

// NewConsoleHandler creates a console handler writing to out.
func NewConsoleHandler(out io.Writer, level slog.Leveler) *ConsoleHandler {
	r := lipgloss.NewRenderer(out)
	return &ConsoleHandler{
		mu:    &sync.Mutex{},
		out:   out,
		level: level,
		levelStyles: map[slog.Level]lipgloss.Style{
			slog.LevelDebug: r.NewStyle().Foreground(lipgloss.Color("240")),
			slog.LevelInfo:  r.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
			slog.LevelWarn:  r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
			slog.LevelError: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		},
		keyStyle: r.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

// Enabled implements slog.Handler.
func (h *ConsoleHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

// Handle implements slog.Handler.
func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	b.WriteString(h.levelLabel(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)

	for _, a := range h.attrs {
		h.writeAttr(&b, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&b, h.group, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

func (h *ConsoleHandler) levelLabel(l slog.Level) string {
	name := fmt.Sprintf("%-5s", l.String())
	style, ok := h.levelStyles[l]
	if !ok {
		return name
	}
	return style.Render(name)
}

func qualify(prefix, key string) string {
	if prefix == "" {
		return key
	}
	if key == "" {
		return prefix
	}
	return prefix + "." + key
}

func (h *ConsoleHandler) writeAttr(b *strings.Builder, prefix string, a slog.Attr) {
	if a.Equal(slog.Attr{}) {
		return
	}
	a.Value = a.Value.Resolve()
	if a.Value.Kind() == slog.KindGroup {
		for _, ga := range a.Value.Group() {
			h.writeAttr(b, qualify(prefix, a.Key), ga)
		}
		return
	}
	key := qualify(prefix, a.Key)
	b.WriteByte(' ')
	b.WriteString(h.keyStyle.Render(key + "="))
	val := a.Value.String()
	if strings.ContainsAny(val, " \t\n\"") {
		val = fmt.Sprintf("%q", val)
	}
	b.WriteString(val)
}

// WithAttrs implements slog.Handler.
func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	nh.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		if h.group != "" {
			a.Key = qualify(h.group, a.Key)
		}
		nh.attrs = append(nh.attrs, a)
	}
	return &nh
}

// WithGroup implements slog.Handler.
func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	nh := *h
	nh.group = qualify(h.group, name)
	return &nh
}
