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
	"os"

	"golang.org/x/sys/unix"

	"github.com/evqueue/kq/pkg/errors"
	"github.com/evqueue/kq/pkg/tv"
)

// SetNoDelay controls whether the operating system should delay
// packet transmission in hopes of sending fewer packets (Nagle's algorithm).
func (s *Socket) SetNoDelay(noDelay bool) error {
	return s.setInt(unix.IPPROTO_TCP, unix.TCP_NODELAY, boolInt(noDelay))
}

// SetReuseAddr enables SO_REUSEADDR option on socket.
func (s *Socket) SetReuseAddr(reuseAddr bool) error {
	return s.setInt(unix.SOL_SOCKET, unix.SO_REUSEADDR, boolInt(reuseAddr))
}

// SetReusePort enables SO_REUSEPORT option on socket.
func (s *Socket) SetReusePort(reusePort bool) error {
	return s.setInt(unix.SOL_SOCKET, unix.SO_REUSEPORT, boolInt(reusePort))
}

// SetRecvBuffer sets the size of the operating system's
// receive buffer associated with the socket.
func (s *Socket) SetRecvBuffer(size int) error {
	return s.setInt(unix.SOL_SOCKET, unix.SO_RCVBUF, size)
}

// SetSendBuffer sets the size of the operating system's
// transmit buffer associated with the socket.
func (s *Socket) SetSendBuffer(size int) error {
	return s.setInt(unix.SOL_SOCKET, unix.SO_SNDBUF, size)
}

// SetLinger sets the behavior of Close on a socket which still
// has data waiting to be sent or to be acknowledged.
//
// If sec < 0 (the default), the operating system finishes sending the
// data in the background.
//
// If sec == 0, the operating system discards any unsent or
// unacknowledged data.
//
// If sec > 0, the data is sent in the background as with sec < 0. On
// some operating systems after sec seconds have elapsed any remaining
// unsent data may be discarded.
func (s *Socket) SetLinger(sec int) error {
	if s.fd == invalidFD {
		return errors.ErrSocketClosed
	}
	var l unix.Linger
	if sec >= 0 {
		l.Onoff = 1
		l.Linger = int32(sec)
	} else {
		l.Onoff = 0
		l.Linger = 0
	}
	return sysErr(os.NewSyscallError("setsockopt", unix.SetsockoptLinger(s.fd, unix.SOL_SOCKET, unix.SO_LINGER, &l)))
}

// Linger reports the current linger timeout, -1 when lingering is off.
func (s *Socket) Linger() (int, error) {
	if s.fd == invalidFD {
		return 0, errors.ErrSocketClosed
	}
	l, err := unix.GetsockoptLinger(s.fd, unix.SOL_SOCKET, unix.SO_LINGER)
	if err != nil {
		return 0, sysErr(os.NewSyscallError("getsockopt", err))
	}
	if l.Onoff == 0 {
		return -1, nil
	}
	return int(l.Linger), nil
}

// SetBlocking switches the descriptor between blocking and non-blocking
// mode.
func (s *Socket) SetBlocking(blocking bool) error {
	if s.fd == invalidFD {
		return errors.ErrSocketClosed
	}
	return sysErr(os.NewSyscallError("fcntl", unix.SetNonblock(s.fd, !blocking)))
}

// Blocking reports whether the descriptor is in blocking mode.
func (s *Socket) Blocking() (bool, error) {
	if s.fd == invalidFD {
		return false, errors.ErrSocketClosed
	}
	flags, err := unix.FcntlInt(uintptr(s.fd), unix.F_GETFL, 0)
	if err != nil {
		return false, sysErr(os.NewSyscallError("fcntl", err))
	}
	return flags&unix.O_NONBLOCK == 0, nil
}

// SetRecvTimeout bounds blocking reads to the given number of seconds,
// truncated to the kernel's microsecond granularity. Zero disables the
// timeout.
func (s *Socket) SetRecvTimeout(seconds float64) error {
	return s.setTimeout(unix.SO_RCVTIMEO, seconds)
}

// RecvTimeout reports the read timeout in seconds, 0 when unset.
func (s *Socket) RecvTimeout() (float64, error) {
	return s.timeout(unix.SO_RCVTIMEO)
}

// SetSendTimeout bounds blocking writes to the given number of seconds,
// truncated to the kernel's microsecond granularity. Zero disables the
// timeout.
func (s *Socket) SetSendTimeout(seconds float64) error {
	return s.setTimeout(unix.SO_SNDTIMEO, seconds)
}

// SendTimeout reports the write timeout in seconds, 0 when unset.
func (s *Socket) SendTimeout() (float64, error) {
	return s.timeout(unix.SO_SNDTIMEO)
}

func (s *Socket) setTimeout(opt int, seconds float64) error {
	if s.fd == invalidFD {
		return errors.ErrSocketClosed
	}
	t := tv.Timeval(seconds)
	return sysErr(os.NewSyscallError("setsockopt", unix.SetsockoptTimeval(s.fd, unix.SOL_SOCKET, opt, &t)))
}

func (s *Socket) timeout(opt int) (float64, error) {
	if s.fd == invalidFD {
		return 0, errors.ErrSocketClosed
	}
	t, err := unix.GetsockoptTimeval(s.fd, unix.SOL_SOCKET, opt)
	if err != nil {
		return 0, sysErr(os.NewSyscallError("getsockopt", err))
	}
	return tv.TimevalSeconds(*t), nil
}

func (s *Socket) setInt(level, opt, value int) error {
	if s.fd == invalidFD {
		return errors.ErrSocketClosed
	}
	return sysErr(os.NewSyscallError("setsockopt", unix.SetsockoptInt(s.fd, level, opt, value)))
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
