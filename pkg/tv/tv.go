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

// Package tv converts between fractional seconds and the kernel's split
// second/sub-second time structures.
//
// All conversions truncate the sub-second remainder toward zero, they
// never round. Converting a value to a kernel structure and back yields a
// result within one sub-second unit of the original (nanosecond for
// Timespec, microsecond for Timeval); exact equality is not guaranteed
// for fractions the kernel representation cannot express.
package tv

import (
	"time"

	"golang.org/x/sys/unix"
)

// Timespec converts a non-negative number of seconds to a unix.Timespec,
// truncating below nanosecond resolution. It panics on negative input,
// which is a contract violation by the caller.
func Timespec(seconds float64) unix.Timespec {
	if seconds < 0 {
		panic("tv: negative duration")
	}
	return unix.NsecToTimespec(int64(seconds * 1e9))
}

// Timeval converts a non-negative number of seconds to a unix.Timeval,
// truncating below microsecond resolution. It panics on negative input.
func Timeval(seconds float64) unix.Timeval {
	if seconds < 0 {
		panic("tv: negative duration")
	}
	usec := int64(seconds * 1e6)
	// NsecToTimeval rounds half-microseconds up; feeding it whole
	// microseconds keeps the truncation semantics.
	return unix.NsecToTimeval(usec * 1e3)
}

// Seconds converts a unix.Timespec back to fractional seconds.
func Seconds(ts unix.Timespec) float64 {
	return float64(ts.Sec) + float64(ts.Nsec)/1e9
}

// TimevalSeconds converts a unix.Timeval back to fractional seconds.
func TimevalSeconds(t unix.Timeval) float64 {
	return float64(t.Sec) + float64(t.Usec)/1e6
}

// Duration converts a non-negative number of seconds to a time.Duration,
// truncating below nanosecond resolution. It panics on negative input.
func Duration(seconds float64) time.Duration {
	if seconds < 0 {
		panic("tv: negative duration")
	}
	return time.Duration(seconds * float64(time.Second))
}

// DurationTimeval converts a time.Duration to a unix.Timeval, truncating
// below microsecond resolution. Negative durations panic.
func DurationTimeval(d time.Duration) unix.Timeval {
	if d < 0 {
		panic("tv: negative duration")
	}
	return unix.NsecToTimeval(d.Nanoseconds() / 1e3 * 1e3)
}
