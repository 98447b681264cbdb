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

package socket

import (
	"net"

	"golang.org/x/sys/unix"

	"github.com/evqueue/kq/pkg/endpoint"
)

func toSockaddr(ep endpoint.Endpoint, port int) (unix.Sockaddr, error) {
	switch ep.Family() {
	case endpoint.IPv4:
		sa := &unix.SockaddrInet4{Port: port}
		copy(sa.Addr[:], ep.IP().To4())
		return sa, nil
	case endpoint.IPv6:
		sa := &unix.SockaddrInet6{Port: port}
		copy(sa.Addr[:], ep.IP().To16())
		return sa, nil
	default:
		return &unix.SockaddrUnix{Name: ep.Path()}, nil
	}
}

func fromSockaddr(sa unix.Sockaddr) (endpoint.Endpoint, int) {
	switch sa := sa.(type) {
	case *unix.SockaddrInet4:
		return endpoint.FromIP(net.IP(sa.Addr[:])), sa.Port
	case *unix.SockaddrInet6:
		return endpoint.FromIP(net.IP(sa.Addr[:])), sa.Port
	case *unix.SockaddrUnix:
		return endpoint.Path(sa.Name), 0
	}
	return endpoint.Endpoint{}, 0
}
