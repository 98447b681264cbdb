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

package kq

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/sys/unix"

	"github.com/evqueue/kq/pkg/errors"
)

// Forever makes Poll block until at least one event fires.
const Forever = time.Duration(-1)

const invalidFD = -1

// Queue owns exactly one kqueue descriptor for its lifetime. The kernel,
// not the Queue, holds the live registration table; every Poll call first
// mutates that table with the supplied descriptors and then waits on it.
//
// A Queue is not safe for concurrent Poll/Close calls from multiple
// goroutines; one active caller per queue at a time is the contract.
// Trigger is the exception and may be called from other goroutines.
type Queue struct {
	fd   int
	kevs []unix.Kevent_t
	opts *Options
}

// OpenQueue allocates a kernel event queue with no registrations.
func OpenQueue(opts ...Option) (*Queue, error) {
	options := loadOptions(opts...)
	fd, err := unix.Kqueue()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrResource, os.NewSyscallError("kqueue", err))
	}
	return &Queue{fd: fd, opts: options}, nil
}

// Poll applies every descriptor in changes as a registration delta, then
// blocks until a registered source fires, the timeout elapses, or the
// buffer fills. Fired records overwrite events[:n] in kernel delivery
// order and n is returned; slots past n keep stale contents and must not
// be interpreted. A zero return on a finite timeout means timed out,
// which is not an error.
//
// A negative timeout (Forever) blocks indefinitely, zero polls without
// blocking, and a positive value bounds the wait. Waits interrupted by
// unrelated signals are retried with the remaining budget unless the
// queue was opened with WithInterruptRetryDisabled.
func (q *Queue) Poll(changes []Event, events []Event, timeout time.Duration) (int, error) {
	if q.fd == invalidFD {
		return 0, errors.ErrQueueClosed
	}

	if len(changes) > 0 {
		if err := q.apply(changes); err != nil {
			return 0, err
		}
	}

	if cap(q.kevs) < len(events) {
		q.kevs = make([]unix.Kevent_t, len(events))
	}
	kevs := q.kevs[:len(events)]

	var (
		ts       unix.Timespec
		tsp      *unix.Timespec
		deadline time.Time
	)
	if timeout >= 0 {
		ts = unix.NsecToTimespec(timeout.Nanoseconds())
		tsp = &ts
		if timeout > 0 {
			deadline = time.Now().Add(timeout)
		}
	}

	for {
		n, err := unix.Kevent(q.fd, nil, kevs, tsp)
		if err == unix.EINTR {
			if q.opts.NoInterruptRetry {
				return 0, errors.ErrInterrupted
			}
			if timeout > 0 {
				remaining := time.Until(deadline)
				if remaining <= 0 {
					return 0, nil
				}
				ts = unix.NsecToTimespec(remaining.Nanoseconds())
			}
			q.opts.Logger.Debugf("kq: wait interrupted by signal, retrying")
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("%w: %v", errors.ErrResource, os.NewSyscallError("kevent wait", err))
		}
		for i := 0; i < n; i++ {
			events[i] = decodeEvent(&kevs[i])
		}
		return n, nil
	}
}

// Trigger fires a previously registered user event, unblocking a Poll
// waiting on the same queue. It is safe to call from a goroutine other
// than the polling one; the kernel serializes kevent calls.
func (q *Queue) Trigger(ident int) error {
	if q.fd == invalidFD {
		return errors.ErrQueueClosed
	}
	note := []unix.Kevent_t{{
		Ident:  uint64(ident),
		Filter: unix.EVFILT_USER,
		Fflags: unix.NOTE_TRIGGER,
	}}
	var err error
	for _, err = unix.Kevent(q.fd, note, nil, nil); err == unix.EINTR || err == unix.EAGAIN; _, err = unix.Kevent(q.fd, note, nil, nil) {
	}
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrRegistration, os.NewSyscallError("kevent trigger", err))
	}
	return nil
}

// Close releases the kernel queue. The queue must be closed at most once;
// a second Close fails with ErrQueueClosed instead of silently passing,
// and every later operation fails the same way.
func (q *Queue) Close() error {
	if q.fd == invalidFD {
		return errors.ErrQueueClosed
	}
	err := os.NewSyscallError("close", unix.Close(q.fd))
	q.fd = invalidFD
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrResource, err)
	}
	return nil
}

// apply pushes the registration deltas into the kernel table. There is no
// partial-success contract: the kernel stops at the first rejected change
// and the whole batch is reported failed.
func (q *Queue) apply(changes []Event) error {
	kevs := make([]unix.Kevent_t, len(changes))
	for i := range changes {
		kev, err := encodeEvent(changes[i])
		if err != nil {
			return err
		}
		kevs[i] = kev
	}
	// EBADF here means a change-list element referenced a dead descriptor;
	// the queue's own fd was validated before the call.
	if _, err := unix.Kevent(q.fd, kevs, nil, nil); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrRegistration, os.NewSyscallError("kevent add", err))
	}
	return nil
}

// encodeEvent lowers a descriptor into the kernel's native structure.
// The filter switch is exhaustive over the closed set.
func encodeEvent(ev Event) (unix.Kevent_t, error) {
	if err := ev.validate(); err != nil {
		return unix.Kevent_t{}, err
	}

	kev := unix.Kevent_t{Ident: uint64(ev.Ident), Data: ev.Data}

	switch ev.Filter {
	case FilterRead:
		kev.Filter = unix.EVFILT_READ
	case FilterWrite:
		kev.Filter = unix.EVFILT_WRITE
	case FilterSignal:
		kev.Filter = unix.EVFILT_SIGNAL
	case FilterTimer:
		kev.Filter = unix.EVFILT_TIMER
	case FilterUser:
		kev.Filter = unix.EVFILT_USER
	}

	if ev.Flags&FlagAdd != 0 {
		kev.Flags |= unix.EV_ADD
	}
	if ev.Flags&FlagDelete != 0 {
		kev.Flags |= unix.EV_DELETE
	}
	if ev.Flags&FlagEnable != 0 {
		kev.Flags |= unix.EV_ENABLE
	}
	if ev.Flags&FlagDisable != 0 {
		kev.Flags |= unix.EV_DISABLE
	}
	if ev.Flags&FlagOneShot != 0 {
		kev.Flags |= unix.EV_ONESHOT
	}
	if ev.Flags&FlagClear != 0 {
		kev.Flags |= unix.EV_CLEAR
	}

	if ev.FFlags&NoteTrigger != 0 {
		kev.Fflags |= unix.NOTE_TRIGGER
	}

	return kev, nil
}

// decodeEvent lifts a fired kernel event back into the typed record.
func decodeEvent(kev *unix.Kevent_t) Event {
	ev := Event{Ident: int(kev.Ident), Data: kev.Data}

	switch kev.Filter {
	case unix.EVFILT_READ:
		ev.Filter = FilterRead
	case unix.EVFILT_WRITE:
		ev.Filter = FilterWrite
	case unix.EVFILT_SIGNAL:
		ev.Filter = FilterSignal
	case unix.EVFILT_TIMER:
		ev.Filter = FilterTimer
	case unix.EVFILT_USER:
		ev.Filter = FilterUser
	}

	if kev.Flags&unix.EV_ADD != 0 {
		ev.Flags |= FlagAdd
	}
	if kev.Flags&unix.EV_DELETE != 0 {
		ev.Flags |= FlagDelete
	}
	if kev.Flags&unix.EV_ENABLE != 0 {
		ev.Flags |= FlagEnable
	}
	if kev.Flags&unix.EV_DISABLE != 0 {
		ev.Flags |= FlagDisable
	}
	if kev.Flags&unix.EV_ONESHOT != 0 {
		ev.Flags |= FlagOneShot
	}
	if kev.Flags&unix.EV_CLEAR != 0 {
		ev.Flags |= FlagClear
	}

	if kev.Fflags&unix.NOTE_TRIGGER != 0 {
		ev.FFlags |= NoteTrigger
	}

	return ev
}
