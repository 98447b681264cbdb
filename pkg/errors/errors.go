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

// Package errors defines common errors for kq.
//
// Three error kinds cover every failure the library surfaces:
// ErrResource, ErrRegistration and ErrInterrupted. More specific
// sentinels wrap one of the kinds, so callers can match either the
// precise failure or its kind with errors.Is.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrResource occurs when a kernel resource (event queue or socket)
	// is invalid, closed, or could not be allocated.
	ErrResource = errors.New("kq: kernel resource unavailable")
	// ErrRegistration occurs when the kernel rejects an event registration.
	ErrRegistration = errors.New("kq: event registration rejected")
	// ErrInterrupted occurs when a wait is cut short by an unrelated signal
	// and interrupt retries were disabled.
	ErrInterrupted = errors.New("kq: wait interrupted by signal")
)

var (
	// ErrQueueClosed occurs when operating on an event queue after Close.
	ErrQueueClosed = fmt.Errorf("%w: event queue is closed", ErrResource)
	// ErrSocketClosed occurs when operating on a socket after Close.
	ErrSocketClosed = fmt.Errorf("%w: socket is closed", ErrResource)
	// ErrInvalidTimerPeriod occurs when a timer event carries a period <= 0.
	ErrInvalidTimerPeriod = fmt.Errorf("%w: timer requires a positive period", ErrRegistration)
	// ErrInvalidSignal occurs when a signal event carries a non-positive signal number.
	ErrInvalidSignal = fmt.Errorf("%w: invalid signal number", ErrRegistration)
	// ErrUnknownFilter occurs when an event carries a filter value outside the closed set.
	ErrUnknownFilter = fmt.Errorf("%w: unknown event filter", ErrRegistration)
	// ErrReactorShutdown is returned by an event callback or task to stop a running reactor.
	ErrReactorShutdown = errors.New("kq: reactor is going to be shutdown")
	// ErrUnsupportedFamily occurs when a socket constructor is given an address
	// family it cannot serve.
	ErrUnsupportedFamily = errors.New("kq: unsupported address family")
)
