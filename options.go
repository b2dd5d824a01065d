// Copyright 2026 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package eventio

import "time"

// runOptions holds configuration options for a Kernel's Run.
type runOptions struct {
	readyCapacity int
	waitCapacity  int
	clock         Clock
	logger        *DiagnosticLogger
	rateWindow    map[time.Duration]int
}

// RunOption configures a Kernel's Run call.
type RunOption interface {
	applyRun(*runOptions)
}

type runOptionFunc func(*runOptions)

func (f runOptionFunc) applyRun(opts *runOptions) { f(opts) }

// WithReadyCapacity sets the bounded ready queue's capacity. Defaults to 16.
func WithReadyCapacity(n int) RunOption {
	return runOptionFunc(func(opts *runOptions) {
		opts.readyCapacity = n
	})
}

// WithWaitCapacity sets the bounded wait queue's capacity. Defaults to 16.
func WithWaitCapacity(n int) RunOption {
	return runOptionFunc(func(opts *runOptions) {
		opts.waitCapacity = n
	})
}

// WithClock overrides the kernel's time source and deep-sleep driver. The
// default uses time.Now and time.Sleep.
func WithClock(clock Clock) RunOption {
	return runOptionFunc(func(opts *runOptions) {
		opts.clock = clock
	})
}

// WithLogger sets the structured logger used for kernel diagnostics. Nil
// disables logging.
func WithLogger(logger *DiagnosticLogger) RunOption {
	return runOptionFunc(func(opts *runOptions) {
		opts.logger = logger
	})
}

// WithErrorRateLimiter overrides the sliding-window buckets used to
// rate-limit uncaught-task-error diagnostics, keyed by window duration to a
// max count per window. Defaults to 5 per second.
func WithErrorRateLimiter(windows map[time.Duration]int) RunOption {
	return runOptionFunc(func(opts *runOptions) {
		opts.rateWindow = windows
	})
}

// resolveRunOptions applies RunOption instances to runOptions.
func resolveRunOptions(opts []RunOption) *runOptions {
	cfg := &runOptions{
		readyCapacity: 16,
		waitCapacity:  16,
		clock:         NewRealClock(),
		logger:        newDefaultLogger(),
		rateWindow:    map[time.Duration]int{time.Second: 5},
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyRun(cfg)
	}
	return cfg
}
