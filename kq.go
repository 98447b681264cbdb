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

//go:build darwin || dragonfly || freebsd

/*
Package kq is a typed interface to the BSD kqueue event notification
facility - https://man.freebsd.org/cgi/man.cgi?kqueue

A Queue multiplexes heterogeneous event sources behind one blocking wait:
descriptor readiness, signal delivery, kernel timers and user-triggered
tokens. Registration and waiting are a single call; every Poll both
applies the supplied descriptors and waits for readiness:

	q, err := kq.OpenQueue()
	if err != nil {
		// handle error
	}
	defer q.Close()

	changes := []kq.Event{
		{Ident: fd, Filter: kq.FilterRead, Flags: kq.FlagAdd},
		{Ident: 1, Filter: kq.FilterTimer, Flags: kq.FlagAdd, Data: 500},
	}
	events := make([]kq.Event, 8)

	n, err := q.Poll(changes, events, kq.Forever)
	if err != nil {
		// handle error
	}
	for _, ev := range events[:n] {
		switch ev.Filter {
		case kq.FilterRead:
			// ev.Ident is readable, ev.Data bytes buffered.
		case kq.FilterTimer:
			// timer 1 expired ev.Data times.
		}
	}

The sockets handed to a Queue come from the pkg/socket package, or from
any other source of raw descriptors; the queue only ever sees the
integer.

For callers that prefer callbacks over manual polling, Reactor wraps a
Queue in a single-goroutine loop with cross-goroutine task submission.
*/
package kq
