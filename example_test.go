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
// +build darwin dragonfly freebsd

package kq_test

import (
	"fmt"
	"time"

	"github.com/evqueue/kq"
	"github.com/evqueue/kq/pkg/endpoint"
	"github.com/evqueue/kq/pkg/socket"
)

func Example() {
	s, err := socket.NewTCP(endpoint.IPv4)
	if err != nil {
		panic(fmt.Sprintf("Error creating socket: %v", err))
	}
	defer s.Close() //nolint:errcheck

	q, err := kq.OpenQueue()
	if err != nil {
		panic(fmt.Sprintf("Error opening queue: %v", err))
	}
	defer q.Close() //nolint:errcheck

	// Watch the socket for writability and arm a 100ms timer in one call.
	changes := []kq.Event{
		{Ident: s.FD(), Filter: kq.FilterWrite, Flags: kq.FlagAdd},
		{Ident: 1, Filter: kq.FilterTimer, Flags: kq.FlagAdd, Data: 100},
	}
	events := make([]kq.Event, 8)

	n, err := q.Poll(changes, events, 500*time.Millisecond)
	if err != nil {
		panic(fmt.Sprintf("Error polling: %v", err))
	}

	for _, ev := range events[:n] {
		switch ev.Filter {
		case kq.FilterWrite:
			fmt.Println("socket is writable")
		case kq.FilterTimer:
			fmt.Println("timer expired")
		}
	}

	// Output:
	// socket is writable
}
