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
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"

	"github.com/evqueue/kq/pkg/errors"
	goPool "github.com/evqueue/kq/pkg/pool/goroutine"
)

// TaskFunc is a function submitted to a reactor for out-of-band execution.
type TaskFunc func() error

// wakeIdent is the user-event identifier the reactor reserves for waking
// its own loop. Callers must not register user events with this ident.
const wakeIdent = 0

// taskQueue is a FIFO of pending tasks shared between submitters and the
// loop goroutine.
type taskQueue struct {
	mu sync.Mutex
	q  *queue.Queue
}

func (tq *taskQueue) enqueue(fn TaskFunc) {
	tq.mu.Lock()
	tq.q.Add(fn)
	tq.mu.Unlock()
}

func (tq *taskQueue) dequeue() TaskFunc {
	tq.mu.Lock()
	defer tq.mu.Unlock()
	if tq.q.Length() == 0 {
		return nil
	}
	return tq.q.Remove().(TaskFunc)
}

// Reactor runs a single-goroutine poll loop over one Queue and dispatches
// fired events to a callback, in kernel delivery order. Tasks submitted
// from other goroutines wake the loop through the reserved user event and
// execute on a shared worker pool.
type Reactor struct {
	q          *Queue
	tasks      taskQueue
	wakeupCall int32
	stopping   int32
	workers    *goPool.Pool
	opts       *Options
}

// NewReactor opens a queue and arms its wakeup event.
func NewReactor(opts ...Option) (*Reactor, error) {
	q, err := OpenQueue(opts...)
	if err != nil {
		return nil, err
	}
	wake := Event{Ident: wakeIdent, Filter: FilterUser, Flags: FlagAdd | FlagClear}
	if _, err = q.Poll([]Event{wake}, nil, 0); err != nil {
		_ = q.Close()
		return nil, err
	}
	r := &Reactor{q: q, workers: goPool.Default(), opts: q.opts}
	r.tasks.q = queue.New()
	return r, nil
}

// Register applies a registration delta immediately, without waiting.
func (r *Reactor) Register(ev Event) error {
	_, err := r.q.Poll([]Event{ev}, nil, 0)
	return err
}

// Submit queues a task and wakes the poll loop. The task runs on the
// worker pool, not on the loop goroutine; ordering between tasks and
// event callbacks is not defined.
func (r *Reactor) Submit(task TaskFunc) error {
	r.tasks.enqueue(task)
	if atomic.CompareAndSwapInt32(&r.wakeupCall, 0, 1) {
		return r.q.Trigger(wakeIdent)
	}
	return nil
}

// Shutdown stops a running loop. The Run call owns the queue and worker
// pool and releases them on its way out.
func (r *Reactor) Shutdown() error {
	if atomic.CompareAndSwapInt32(&r.stopping, 0, 1) {
		return r.q.Trigger(wakeIdent)
	}
	return nil
}

// Run blocks the calling goroutine polling for events and invoking
// callback for each fired record. A callback returning ErrReactorShutdown
// stops the loop cleanly; any other callback error is logged and the loop
// continues. Run releases the worker pool and closes the queue before
// returning.
func (r *Reactor) Run(callback func(Event) error) error {
	defer func() {
		r.workers.Release()
		if err := r.q.Close(); err != nil {
			r.opts.Logger.Errorf("kq: closing reactor queue: %v", err)
		}
	}()

	buf := make([]Event, r.opts.EventsBufferCap)
	for {
		n, err := r.q.Poll(nil, buf, Forever)
		if err != nil {
			return err
		}

		var wakenUp bool
		for i := 0; i < n; i++ {
			ev := buf[i]
			if ev.Filter == FilterUser && ev.Ident == wakeIdent {
				wakenUp = true
				continue
			}
			switch err = callback(ev); err {
			case nil:
			case errors.ErrReactorShutdown:
				return nil
			default:
				r.opts.Logger.Warnf("kq: error occurs in event callback: %v", err)
			}
		}

		if wakenUp {
			atomic.StoreInt32(&r.wakeupCall, 0)
			for task := r.tasks.dequeue(); task != nil; task = r.tasks.dequeue() {
				t := task
				if err = r.workers.Submit(func() {
					if err := t(); err != nil {
						r.opts.Logger.Warnf("kq: error occurs in submitted task: %v", err)
					}
				}); err != nil {
					r.opts.Logger.Warnf("kq: worker pool rejected task: %v", err)
				}
			}
			if atomic.LoadInt32(&r.stopping) == 1 {
				return nil
			}
		}
	}
}
