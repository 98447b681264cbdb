// Copyright (c) 2026 The Kq Authors. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package kq

import (
	"github.com/evqueue/kq/pkg/logging"
)

// Option is a function that will set up option.
type Option func(opts *Options)

// DefaultEventsBufferCap is the default capacity of the result buffer a
// Reactor polls with.
const DefaultEventsBufferCap = 128

func loadOptions(options ...Option) *Options {
	opts := new(Options)
	for _, option := range options {
		option(opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.GetDefaultLogger()
	}
	if opts.EventsBufferCap <= 0 {
		opts.EventsBufferCap = DefaultEventsBufferCap
	}
	return opts
}

// Options are configurations for a Queue or Reactor.
type Options struct {
	// Logger is the customized logger for logging info, if it is not set,
	// then the default logger powered by go.uber.org/zap is used.
	Logger logging.Logger

	// NoInterruptRetry surfaces ErrInterrupted to the caller when a wait
	// is cut short by an unrelated signal, instead of transparently
	// retrying with the remaining timeout budget.
	NoInterruptRetry bool

	// EventsBufferCap is the capacity of the result buffer a Reactor
	// polls with, bounding how many fired events one loop iteration can
	// carry. It defaults to DefaultEventsBufferCap.
	EventsBufferCap int
}

// WithLogger sets up a customized logger.
func WithLogger(logger logging.Logger) Option {
	return func(opts *Options) {
		opts.Logger = logger
	}
}

// WithInterruptRetryDisabled opts out of the internal retry on
// signal-interrupted waits.
func WithInterruptRetryDisabled() Option {
	return func(opts *Options) {
		opts.NoInterruptRetry = true
	}
}

// WithEventsBufferCap sets the capacity of the result buffer a Reactor
// polls with.
func WithEventsBufferCap(eventsBufferCap int) Option {
	return func(opts *Options) {
		opts.EventsBufferCap = eventsBufferCap
	}
}
