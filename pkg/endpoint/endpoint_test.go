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

package endpoint

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFamilyClassification(t *testing.T) {
	assert.Equal(t, IPv4, IPv4Addr(192, 168, 0, 1).Family())
	assert.Equal(t, IPv6, FromIP(net.IPv6loopback).Family())
	assert.Equal(t, Local, Path("/tmp/kq.sock").Family())

	// A v4-mapped IPv6 address reduces to the 4-byte form.
	assert.Equal(t, IPv4, FromIP(net.ParseIP("::ffff:10.0.0.1")).Family())
}

func TestParse(t *testing.T) {
	ep, err := Parse("127.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, IPv4, ep.Family())
	assert.Equal(t, "127.0.0.1", ep.String())

	ep, err = Parse("::1")
	require.NoError(t, err)
	assert.Equal(t, IPv6, ep.Family())

	_, err = Parse("not-an-address")
	assert.Error(t, err)
}

func TestEqual(t *testing.T) {
	assert.True(t, IPv4Addr(10, 0, 0, 1).Equal(IPv4Addr(10, 0, 0, 1)))
	assert.False(t, IPv4Addr(10, 0, 0, 1).Equal(IPv4Addr(10, 0, 0, 2)))
	assert.True(t, Path("/a").Equal(Path("/a")))
	assert.False(t, Path("/a").Equal(Path("/b")))
	assert.False(t, IPv4Addr(127, 0, 0, 1).Equal(Path("/a")))
}

func TestLoopback(t *testing.T) {
	assert.Equal(t, "127.0.0.1", Loopback(IPv4).String())
	assert.Equal(t, "::1", Loopback(IPv6).String())
	assert.Panics(t, func() { Loopback(Local) })
}

func TestMalformedAddressPanics(t *testing.T) {
	assert.Panics(t, func() { FromIP(net.IP{1, 2, 3}) })
	assert.Panics(t, func() { Endpoint{addr: []byte{1, 2, 3, 4, 5}}.Family() })
}
