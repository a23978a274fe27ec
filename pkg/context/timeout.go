// Copyright 2026 CICD AI Toolkit. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");

// Package context provides signal-aware contexts for the CLI.
package context

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"time"
)

// signalContext cancels on the first of the watched signals.
type signalContext struct {
	context.Context

	cancel   context.CancelFunc
	stopOnce sync.Once
	stopCh   chan struct{}
	sigCh    chan os.Signal

	mu  sync.Mutex
	sig os.Signal
}

// stop releases the signal subscription and the watcher goroutine. It is
// safe to call more than once.
func (sc *signalContext) stop() {
	sc.stopOnce.Do(func() {
		signal.Stop(sc.sigCh)
		sc.cancel()
		close(sc.stopCh)
	})
}

func (sc *signalContext) received() os.Signal {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	return sc.sig
}

// WithSignal returns a context cancelled when any of sigs arrives. The
// returned cancel function must be called to release resources.
//
// Example:
//
//	ctx, cancel := WithSignal(context.Background(), os.Interrupt)
//	defer cancel()
func WithSignal(parent context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)
	return watch(ctx, cancel, sigs)
}

// WithSignalTimeout is WithSignal with an overall deadline. A zero or
// negative timeout means no deadline.
func WithSignalTimeout(parent context.Context, timeout time.Duration, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return WithSignal(parent, sigs...)
	}
	ctx, cancel := context.WithTimeout(parent, timeout)
	return watch(ctx, cancel, sigs)
}

func watch(ctx context.Context, cancel context.CancelFunc, sigs []os.Signal) (context.Context, context.CancelFunc) {
	sc := &signalContext{
		Context: ctx,
		cancel:  cancel,
		stopCh:  make(chan struct{}),
		sigCh:   make(chan os.Signal, 1),
	}
	signal.Notify(sc.sigCh, sigs...)

	go func() {
		select {
		case s := <-sc.sigCh:
			sc.mu.Lock()
			sc.sig = s
			sc.mu.Unlock()
			cancel()
		case <-sc.stopCh:
		case <-ctx.Done():
		}
	}()

	return sc, sc.stop
}

// Signal reports the signal that cancelled ctx, or nil.
func Signal(ctx context.Context) os.Signal {
	if sc, ok := ctx.(*signalContext); ok {
		return sc.received()
	}
	return nil
}
