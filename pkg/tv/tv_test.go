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

package tv

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimespecRoundTrip(t *testing.T) {
	for _, seconds := range []float64{0, 0.1, 0.25, 0.3, 1, 1.5, 2.5, 42.125} {
		ts := Timespec(seconds)
		got := Seconds(ts)
		assert.InDeltaf(t, seconds, got, 1e-9, "round-trip of %v drifted more than one nanosecond", seconds)
		assert.LessOrEqualf(t, got, seconds, "truncation must never produce a larger value, %v -> %v", seconds, got)
	}
}

func TestTimevalRoundTrip(t *testing.T) {
	for _, seconds := range []float64{0, 0.1, 0.5, 1.25, 3.000001, 59.999999} {
		v := Timeval(seconds)
		got := TimevalSeconds(v)
		assert.InDeltaf(t, seconds, got, 1e-6, "round-trip of %v drifted more than one microsecond", seconds)
		assert.LessOrEqualf(t, got, seconds, "truncation must never produce a larger value, %v -> %v", seconds, got)
	}
}

func TestTimespecTruncates(t *testing.T) {
	ts := Timespec(1.0000000019)
	assert.EqualValues(t, 1, ts.Sec)
	assert.EqualValues(t, 1, ts.Nsec, "sub-nanosecond remainder should be dropped, not rounded")
}

func TestTimevalTruncates(t *testing.T) {
	v := Timeval(0.0000019)
	assert.EqualValues(t, 0, v.Sec)
	assert.EqualValues(t, 1, v.Usec, "sub-microsecond remainder should be dropped, not rounded")
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 1500*time.Millisecond, Duration(1.5))
	assert.Equal(t, time.Duration(0), Duration(0))
}

func TestDurationTimeval(t *testing.T) {
	v := DurationTimeval(1500*time.Microsecond + 700*time.Nanosecond)
	assert.EqualValues(t, 0, v.Sec)
	assert.EqualValues(t, 1500, v.Usec)
}

func TestNegativePanics(t *testing.T) {
	assert.Panics(t, func() { Timespec(-1) })
	assert.Panics(t, func() { Timeval(-0.5) })
	assert.Panics(t, func() { Duration(-2) })
	assert.Panics(t, func() { DurationTimeval(-time.Second) })
}
