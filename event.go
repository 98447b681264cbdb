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
	"fmt"
	"strings"

	"github.com/evqueue/kq/pkg/errors"
)

// Filter selects the condition an event watches. The set is closed;
// kernel filter constants never appear outside the encode/decode
// boundary in this package.
type Filter int16

const (
	// FilterRead fires when the identified descriptor has data to read.
	// On a listening socket it fires for pending connections, with Data
	// holding the backlog depth (darwin/FreeBSD behavior; readiness of
	// passive sockets is not reported via FilterWrite on these kernels).
	FilterRead Filter = iota
	// FilterWrite fires when the identified descriptor accepts writes,
	// with Data holding the writable buffer space in bytes.
	FilterWrite
	// FilterSignal fires when the signal numbered Ident is delivered to
	// the process; Data accumulates the delivery count.
	FilterSignal
	// FilterTimer fires periodically. Data carries the period in
	// milliseconds on registration and the number of expirations since
	// the last retrieval on delivery.
	FilterTimer
	// FilterUser fires when a registration carrying NoteTrigger is
	// applied for the same identifier. Ident is an arbitrary
	// caller-chosen token.
	FilterUser
)

func (f Filter) String() string {
	switch f {
	case FilterRead:
		return "read"
	case FilterWrite:
		return "write"
	case FilterSignal:
		return "signal"
	case FilterTimer:
		return "timer"
	case FilterUser:
		return "user"
	}
	return fmt.Sprintf("filter(%d)", int16(f))
}

// Flags control the lifetime of a registration across poll calls.
type Flags uint16

const (
	// FlagAdd registers the event with the queue.
	FlagAdd Flags = 1 << iota
	// FlagDelete removes the registration.
	FlagDelete
	// FlagEnable permits delivery of a previously disabled event.
	FlagEnable
	// FlagDisable keeps the registration but suppresses delivery.
	FlagDisable
	// FlagOneShot deregisters the event automatically after its first
	// delivery.
	FlagOneShot
	// FlagClear makes the event edge-triggered: it fires once per state
	// transition instead of on every poll while the condition persists.
	FlagClear
)

var flagNames = []struct {
	flag Flags
	name string
}{
	{FlagAdd, "add"},
	{FlagDelete, "delete"},
	{FlagEnable, "enable"},
	{FlagDisable, "disable"},
	{FlagOneShot, "oneshot"},
	{FlagClear, "clear"},
}

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var names []string
	for _, fn := range flagNames {
		if f&fn.flag != 0 {
			names = append(names, fn.name)
		}
	}
	return strings.Join(names, "|")
}

// FilterFlags are filter-specific modifiers.
type FilterFlags uint32

// NoteTrigger fires a registered user event. Only meaningful with
// FilterUser.
const NoteTrigger FilterFlags = 0x1

// Event is both the registration descriptor handed to Poll and the fired
// record Poll writes back into the caller's buffer. The meaning of Ident
// and Data depends on Filter.
//
// The queue holds only the numeric Ident, never the resource behind it:
// closing a registered descriptor elsewhere typically makes the kernel
// drop the registration silently.
type Event struct {
	Ident  int
	Filter Filter
	Flags  Flags
	FFlags FilterFlags
	Data   int64
}

func (ev Event) String() string {
	return fmt.Sprintf("event{ident: %d, filter: %s, flags: %s, data: %d}", ev.Ident, ev.Filter, ev.Flags, ev.Data)
}

// validate rejects descriptors that violate the registration contract
// before they ever reach the kernel.
func (ev Event) validate() error {
	switch ev.Filter {
	case FilterRead, FilterWrite, FilterUser:
		return nil
	case FilterSignal:
		if ev.Ident < 1 {
			return errors.ErrInvalidSignal
		}
		return nil
	case FilterTimer:
		if ev.Data <= 0 {
			return errors.ErrInvalidTimerPeriod
		}
		return nil
	}
	return errors.ErrUnknownFilter
}
