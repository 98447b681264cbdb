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

// Package endpoint provides the immutable address value consumed by the
// socket layer: a 4-byte IPv4 address, a 16-byte IPv6 address, or a
// filesystem path for unix-domain sockets.
package endpoint

import (
	"bytes"
	"fmt"
	"net"
)

// Family classifies an endpoint by address family.
type Family int

const (
	// IPv4 is a 4-byte internet address.
	IPv4 Family = iota
	// IPv6 is a 16-byte internet address.
	IPv6
	// Local is a filesystem path for unix-domain sockets.
	Local
)

func (f Family) String() string {
	switch f {
	case IPv4:
		return "ipv4"
	case IPv6:
		return "ipv6"
	case Local:
		return "local"
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// Endpoint is an immutable IPv4/IPv6 byte address or a local path.
// The zero value is not a valid endpoint.
type Endpoint struct {
	addr []byte
	path string
}

// IPv4Addr builds an endpoint from four address octets.
func IPv4Addr(a, b, c, d byte) Endpoint {
	return Endpoint{addr: []byte{a, b, c, d}}
}

// FromIP builds an endpoint from a net.IP, reducing IPv4-in-IPv6 mapped
// addresses to their 4-byte form. It panics when ip is neither a 4-byte
// nor a 16-byte address.
func FromIP(ip net.IP) Endpoint {
	if ip4 := ip.To4(); ip4 != nil {
		e := Endpoint{addr: make([]byte, net.IPv4len)}
		copy(e.addr, ip4)
		return e
	}
	if len(ip) != net.IPv6len {
		panic(fmt.Sprintf("endpoint: malformed IP address of length %d", len(ip)))
	}
	e := Endpoint{addr: make([]byte, net.IPv6len)}
	copy(e.addr, ip)
	return e
}

// Parse builds an endpoint from a textual IPv4 or IPv6 address.
func Parse(s string) (Endpoint, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return Endpoint{}, fmt.Errorf("endpoint: cannot parse %q as an IP address", s)
	}
	return FromIP(ip), nil
}

// Path builds a local (unix-domain) endpoint from a filesystem path.
func Path(p string) Endpoint {
	return Endpoint{path: p}
}

// Loopback returns the loopback address of the given internet family.
func Loopback(f Family) Endpoint {
	switch f {
	case IPv4:
		return IPv4Addr(127, 0, 0, 1)
	case IPv6:
		return FromIP(net.IPv6loopback)
	}
	panic("endpoint: no loopback address for family " + f.String())
}

// Family reports the endpoint's address family. A byte address of
// unsupported length is a contract violation by whoever constructed the
// value and panics rather than returning an error.
func (e Endpoint) Family() Family {
	if e.addr == nil {
		return Local
	}
	switch len(e.addr) {
	case net.IPv4len:
		return IPv4
	case net.IPv6len:
		return IPv6
	}
	panic(fmt.Sprintf("endpoint: malformed byte address of length %d", len(e.addr)))
}

// Equal reports whether two endpoints carry the same address or path.
func (e Endpoint) Equal(other Endpoint) bool {
	return e.path == other.path && bytes.Equal(e.addr, other.addr)
}

// IP returns the byte address as a net.IP, or nil for local endpoints.
func (e Endpoint) IP() net.IP {
	if e.addr == nil {
		return nil
	}
	ip := make(net.IP, len(e.addr))
	copy(ip, e.addr)
	return ip
}

// Path returns the filesystem path of a local endpoint, or "".
func (e Endpoint) Path() string {
	return e.path
}

func (e Endpoint) String() string {
	if e.addr == nil {
		return e.path
	}
	return e.IP().String()
}
