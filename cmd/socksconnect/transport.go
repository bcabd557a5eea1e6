package main

import (
	"errors"
	"net"
	"time"

	"github.com/nilsocks/socksio/internal/logger"
	"github.com/nilsocks/socksio/internal/shared_error"
)

// dial connects to the proxy address with the configured timeout. This,
// and everything else in this file, is the I/O glue the sans-I/O core
// deliberately has no opinion on: it owns no socket, so something has to.
func dial(address string, timeout time.Duration) (net.Conn, error) {
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return nil, errors.Join(shared_error.ErrProxyDialFailed, err)
	}
	return conn, nil
}

// send writes out to conn in full, returning ErrProxyConnClosed-wrapped
// errors on short writes or connection failures.
func send(conn net.Conn, out []byte) error {
	if len(out) == 0 {
		return nil
	}
	if _, err := conn.Write(out); err != nil {
		return errors.Join(shared_error.ErrProxyConnClosed, err)
	}
	return nil
}

// recv reads whatever is available (up to a generously-sized buffer,
// since every SOCKS frame handled here is well under it) and returns it
// for the caller to feed into the core's ReceiveData.
func recv(conn net.Conn, deadline time.Time) ([]byte, error) {
	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}
	buf := make([]byte, 512)
	n, err := conn.Read(buf)
	if err != nil {
		return nil, errors.Join(shared_error.ErrProxyReadFailed, err)
	}
	return buf[:n], nil
}

func logTransition(protocol, from, to string) {
	logger.StateTransition(protocol, from, to)
}
