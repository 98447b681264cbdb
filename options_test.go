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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadOptions(t *testing.T) {
	opts := loadOptions()
	assert.NotNil(t, opts.Logger)
	assert.False(t, opts.NoInterruptRetry)
	assert.Equal(t, DefaultEventsBufferCap, opts.EventsBufferCap)

	opts = loadOptions(WithEventsBufferCap(4), WithInterruptRetryDisabled())
	assert.Equal(t, 4, opts.EventsBufferCap)
	assert.True(t, opts.NoInterruptRetry)

	// Nonsensical capacities fall back to the default.
	opts = loadOptions(WithEventsBufferCap(-1))
	assert.Equal(t, DefaultEventsBufferCap, opts.EventsBufferCap)
}
