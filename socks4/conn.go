// Package socks4 implements a sans-I/O client state machine for the SOCKS4
// and SOCKS4A handshake, as described in the OpenSSH SOCKS4/4A memos. It
// performs no socket calls: the caller feeds bytes received from the proxy
// in via ReceiveData and drains bytes to send out via DataToSend.
//
// The two-state handshake (request -> reply) mirrors the memo's own
// request/reply sequencing, generalized from a net.Conn-driven handshake
// to pure byte transduction.
package socks4

import (
	"github.com/nilsocks/socksio/internal/buffer"
	"github.com/nilsocks/socksio/internal/protoerr"
	"github.com/nilsocks/socksio/internal/socksaddr"
)

// state is the per-connection position in the two-state handshake graph.
type state int

const (
	stateInit state = iota
	stateAwaitingReply
	stateSucceeded
	stateFailed
)

// variant distinguishes SOCKS4 (IPv4-literal targets only) from SOCKS4A
// (domain names permitted, resolved by the proxy).
type variant int

const (
	variant4 variant = iota
	variant4A
)

// Conn is a single-use SOCKS4/SOCKS4A client handshake. Create one with New
// or NewA, drive it with Request and ReceiveData, and discard it once the
// handshake reaches Succeeded or Failed.
type Conn struct {
	variant variant
	userID  []byte

	state state
	out   buffer.Buffer
	in    buffer.Buffer
}

// New creates a plain SOCKS4 connection. userID may be nil or empty; it is
// passed through to the wire unmodified (USERID field of the request).
func New(userID []byte) *Conn {
	return &Conn{variant: variant4, userID: userID}
}

// NewA creates a SOCKS4A connection, which additionally permits requesting
// a domain name target (resolved by the proxy rather than the client).
func NewA(userID []byte) *Conn {
	return &Conn{variant: variant4A, userID: userID}
}

// Succeeded reports whether the handshake reached the successful terminal
// state (reply code REQUEST_GRANTED).
func (c *Conn) Succeeded() bool { return c.state == stateSucceeded }

// Failed reports whether the handshake reached a failure terminal state.
func (c *Conn) Failed() bool { return c.state == stateFailed }

// Request encodes and queues a SOCKS4/SOCKS4A CONNECT/BIND request. It is
// only valid in the initial state; calling it again, or after a reply has
// been received, returns a StateError.
//
// addr is classified the same way socks5.Conn.Request classifies it: a
// literal IPv4 or IPv6 address is preferred, otherwise it is treated as a
// domain name. Plain SOCKS4 rejects anything but a literal IPv4 address;
// SOCKS4A additionally accepts domain names (encoded with the 0.0.0.1
// sentinel DSTIP per the SOCKS4A memo) and rejects IPv6 outright (SOCKS4
// has no IPv6 address form).
func (c *Conn) Request(cmd socksaddr.Command, addr string, port uint16) error {
	if c.state != stateInit {
		return protoerr.State(errNotInInit)
	}
	if cmd == socksaddr.UDPAssociate {
		return protoerr.Usage(errUDPAssociateUnsupported)
	}

	classified, err := socksaddr.Classify(addr)
	if err != nil {
		return protoerr.Usage(err)
	}

	var dstIP [4]byte
	var domain []byte
	switch classified.Kind {
	case socksaddr.IPv4:
		dstIP = classified.IPv4
	case socksaddr.IPv6:
		return protoerr.Usage(errIPv6Unsupported)
	case socksaddr.Domain:
		if c.variant != variant4A {
			return protoerr.Usage(errDomainRequiresSocks4A)
		}
		dstIP = domainSentinel
		domain = classified.Domain
	}

	req := requestHeader{
		cmd:     byte(cmd),
		port:    port,
		dstIP:   dstIP,
		userID:  c.userID,
		domain:  domain,
	}
	c.out.Append(req.Bytes())
	c.state = stateAwaitingReply
	return nil
}

// domainSentinel is the SOCKS4A convention for "resolve DSTIP.DOMAIN": any
// address of the form 0.0.0.x with x != 0 signals a trailing domain name;
// this implementation always emits the specific value 0.0.0.1.
var domainSentinel = [4]byte{0, 0, 0, 1}

// ReceiveData appends newly-arrived bytes and attempts to parse the
// 8-byte SOCKS4 reply frame. It returns the reply event once a complete
// frame has arrived; partial frames return a zero Reply and false without
// consuming any buffered bytes or changing state.
func (c *Conn) ReceiveData(p []byte) (Reply, bool, error) {
	c.in.Append(p)
	if c.state != stateAwaitingReply {
		return Reply{}, false, protoerr.State(errNotAwaitingReply)
	}

	frame, ok := c.in.Peek(replyFrameSize)
	if !ok {
		return Reply{}, false, nil
	}

	reply, err := decodeReply(frame)
	if err != nil {
		c.state = stateFailed
		return Reply{}, false, protoerr.Protocol(err)
	}
	c.in.Consume(replyFrameSize)

	if reply.Code == CodeRequestGranted {
		c.state = stateSucceeded
	} else {
		c.state = stateFailed
	}
	return reply, true, nil
}

// DataToSend returns and clears all bytes queued for the proxy since the
// last call.
func (c *Conn) DataToSend() []byte {
	if c.out.Len() == 0 {
		return nil
	}
	p, _ := c.out.Peek(c.out.Len())
	out := make([]byte, len(p))
	copy(out, p)
	c.out.Consume(len(p))
	return out
}

// Pending reports how many bytes are queued but not yet drained.
func (c *Conn) Pending() int { return c.out.Len() }
