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

// Package socket provides a typed handle over one BSD socket descriptor:
// lifecycle operations, byte-level I/O, and option accessors. The raw
// descriptor from FD is what gets registered with an event queue; the
// queue never inspects socket state beyond that integer.
package socket

import (
	"fmt"
	"os"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/evqueue/kq/pkg/endpoint"
	"github.com/evqueue/kq/pkg/errors"
	bbPool "github.com/evqueue/kq/pkg/pool/bytebuffer"
)

const invalidFD = -1

// Socket owns exactly one socket descriptor for its lifetime.
// It is not safe for concurrent use without external synchronization.
type Socket struct {
	fd int
}

// NewTCP creates a stream socket of the given internet family.
func NewTCP(family endpoint.Family) (*Socket, error) {
	return newSocket(family, unix.SOCK_STREAM, unix.IPPROTO_TCP)
}

// NewUDP creates a datagram socket of the given internet family.
func NewUDP(family endpoint.Family) (*Socket, error) {
	return newSocket(family, unix.SOCK_DGRAM, unix.IPPROTO_UDP)
}

// NewUnix creates a unix-domain stream socket.
func NewUnix() (*Socket, error) {
	return newSocket(endpoint.Local, unix.SOCK_STREAM, 0)
}

func newSocket(family endpoint.Family, sotype, proto int) (*Socket, error) {
	af, err := sysFamily(family)
	if err != nil {
		return nil, err
	}
	fd, err := sysSocket(af, sotype, proto)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrResource, os.NewSyscallError("socket", err))
	}
	return &Socket{fd: fd}, nil
}

func sysFamily(family endpoint.Family) (int, error) {
	switch family {
	case endpoint.IPv4:
		return unix.AF_INET, nil
	case endpoint.IPv6:
		return unix.AF_INET6, nil
	case endpoint.Local:
		return unix.AF_UNIX, nil
	}
	return 0, fmt.Errorf("%w: %v", errors.ErrUnsupportedFamily, family)
}

// The BSD socket(2) has no SOCK_CLOEXEC, so the descriptor is created and
// marked close-on-exec under the fork lock.
func sysSocket(family, sotype, proto int) (fd int, err error) {
	syscall.ForkLock.RLock()
	if fd, err = unix.Socket(family, sotype, proto); err == nil {
		unix.CloseOnExec(fd)
	}
	syscall.ForkLock.RUnlock()
	return
}

// Pair creates a connected pair of unix-domain stream sockets.
func Pair() (*Socket, *Socket, error) {
	syscall.ForkLock.RLock()
	fds, err := unix.Socketpair(unix.AF_UNIX, unix.SOCK_STREAM, 0)
	if err == nil {
		unix.CloseOnExec(fds[0])
		unix.CloseOnExec(fds[1])
	}
	syscall.ForkLock.RUnlock()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", errors.ErrResource, os.NewSyscallError("socketpair", err))
	}
	return &Socket{fd: fds[0]}, &Socket{fd: fds[1]}, nil
}

// FD returns the raw descriptor, usable as an event queue identifier for
// the Read and Write filters. The socket keeps ownership.
func (s *Socket) FD() int {
	return s.fd
}

// Bind assigns the local address to the socket. The port is ignored for
// local endpoints.
func (s *Socket) Bind(ep endpoint.Endpoint, port int) error {
	if s.fd == invalidFD {
		return errors.ErrSocketClosed
	}
	sa, err := toSockaddr(ep, port)
	if err != nil {
		return err
	}
	return sysErr(os.NewSyscallError("bind", unix.Bind(s.fd, sa)))
}

// Listen marks the socket as passive. A non-positive backlog selects the
// kernel's configured maximum.
func (s *Socket) Listen(backlog int) error {
	if s.fd == invalidFD {
		return errors.ErrSocketClosed
	}
	if backlog <= 0 {
		backlog = listenerBacklogMaxSize
	}
	return sysErr(os.NewSyscallError("listen", unix.Listen(s.fd, backlog)))
}

// Accept takes the next pending connection off a listening socket and
// returns it with the peer endpoint. On a blocking socket it waits; on a
// non-blocking one it fails immediately when nothing is pending.
func (s *Socket) Accept() (*Socket, endpoint.Endpoint, error) {
	if s.fd == invalidFD {
		return nil, endpoint.Endpoint{}, errors.ErrSocketClosed
	}
	nfd, sa, err := unix.Accept(s.fd)
	if err != nil {
		return nil, endpoint.Endpoint{}, sysErr(os.NewSyscallError("accept", err))
	}
	unix.CloseOnExec(nfd)
	peer, _ := fromSockaddr(sa)
	return &Socket{fd: nfd}, peer, nil
}

// Connect initiates a connection to the remote endpoint. The port is
// ignored for local endpoints.
func (s *Socket) Connect(ep endpoint.Endpoint, port int) error {
	if s.fd == invalidFD {
		return errors.ErrSocketClosed
	}
	sa, err := toSockaddr(ep, port)
	if err != nil {
		return err
	}
	err = unix.Connect(s.fd, sa)
	// In-progress is the expected outcome for a non-blocking connect and
	// is left for the caller to observe via a Write-filter event.
	if err == unix.EINPROGRESS {
		return nil
	}
	return sysErr(os.NewSyscallError("connect", err))
}

// Recv reads up to len(buf) bytes into buf.
func (s *Socket) Recv(buf []byte) (int, error) {
	if s.fd == invalidFD {
		return 0, errors.ErrSocketClosed
	}
	n, err := unix.Read(s.fd, buf)
	if err != nil {
		return 0, sysErr(os.NewSyscallError("read", err))
	}
	return n, nil
}

// Send writes the bytes of b, returning the count actually written.
func (s *Socket) Send(b []byte) (int, error) {
	if s.fd == invalidFD {
		return 0, errors.ErrSocketClosed
	}
	n, err := unix.Write(s.fd, b)
	if err != nil {
		return 0, sysErr(os.NewSyscallError("write", err))
	}
	return n, nil
}

// Drain reads everything currently buffered on a non-blocking socket into
// a pooled byte buffer, stopping at EAGAIN or EOF. The caller owns the
// returned buffer and must release it with bytebuffer.Put.
func (s *Socket) Drain() (*bbPool.ByteBuffer, error) {
	if s.fd == invalidFD {
		return nil, errors.ErrSocketClosed
	}
	bb := bbPool.Get()
	var chunk [4096]byte
	for {
		n, err := unix.Read(s.fd, chunk[:])
		if n > 0 {
			_, _ = bb.Write(chunk[:n])
		}
		switch {
		case err == unix.EINTR:
			continue
		case err == unix.EAGAIN, err == nil && n == 0:
			return bb, nil
		case err != nil:
			bbPool.Put(bb)
			return nil, sysErr(os.NewSyscallError("read", err))
		}
		if n < len(chunk) {
			return bb, nil
		}
	}
}

// LocalEndpoint reports the endpoint and port the socket is bound to,
// which is how a kernel-assigned port is discovered after binding port 0.
func (s *Socket) LocalEndpoint() (endpoint.Endpoint, int, error) {
	if s.fd == invalidFD {
		return endpoint.Endpoint{}, 0, errors.ErrSocketClosed
	}
	sa, err := unix.Getsockname(s.fd)
	if err != nil {
		return endpoint.Endpoint{}, 0, sysErr(os.NewSyscallError("getsockname", err))
	}
	ep, port := fromSockaddr(sa)
	return ep, port, nil
}

// Close releases the descriptor. The socket must be closed at most once;
// a second Close fails with a resource error instead of silently passing.
func (s *Socket) Close() error {
	if s.fd == invalidFD {
		return errors.ErrSocketClosed
	}
	err := os.NewSyscallError("close", unix.Close(s.fd))
	s.fd = invalidFD
	return sysErr(err)
}

// sysErr folds an OS-level failure into the typed taxonomy so no raw
// errno escapes the package.
func sysErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", errors.ErrResource, err)
}
