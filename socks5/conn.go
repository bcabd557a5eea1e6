// Package socks5 implements a sans-I/O client state machine for the SOCKS5
// handshake (RFC 1928 method negotiation and request/reply, RFC 1929
// username/password sub-negotiation). It performs no socket calls: feed
// bytes received from the proxy in via ReceiveData, and drain bytes to
// send out via DataToSend.
//
// The multi-phase sequencing (methods -> optional auth -> request -> reply)
// mirrors RFC 1928's own negotiation order, generalized from a single
// net.Conn-driven run to independently callable, resumable steps.
package socks5

import (
	"github.com/nilsocks/socksio/internal/buffer"
	"github.com/nilsocks/socksio/internal/protoerr"
	"github.com/nilsocks/socksio/internal/socksaddr"
)

// state is the per-connection position in the SOCKS5 handshake graph:
//
//	Init -> MethodsSent -> MethodAccepted -> [AuthSent -> AuthAccepted ->] RequestSent -> Succeeded | Failed
type state int

const (
	stateInit state = iota
	stateMethodsSent
	stateMethodAccepted
	stateAuthSent
	stateAuthAccepted
	stateRequestSent
	stateSucceeded
	stateFailed
)

// Conn is a single-use SOCKS5 client handshake. Create one with New, drive
// it through NegotiateAuthMethods, optionally AuthenticateUsernamePassword,
// then Request, feeding proxy bytes to ReceiveData between each step, and
// discard it once the handshake reaches Succeeded or Failed.
type Conn struct {
	state          state
	selectedMethod AuthMethod

	out buffer.Buffer
	in  buffer.Buffer
}

// New creates a SOCKS5 connection. SOCKS5 requires no constructor
// parameters: credentials, if any, are supplied later to
// AuthenticateUsernamePassword once the proxy has selected that method.
func New() *Conn {
	return &Conn{}
}

// Succeeded reports whether the handshake reached the successful terminal
// state (reply code SUCCEEDED).
func (c *Conn) Succeeded() bool { return c.state == stateSucceeded }

// Failed reports whether the handshake reached a failure terminal state.
func (c *Conn) Failed() bool { return c.state == stateFailed }

// fail transitions to the failure terminal state. Per spec section 9, a
// parse error on received bytes leaves the connection unusable for further
// receives even when the triggering condition (e.g. NO_ACCEPTABLE_METHODS)
// is a normal protocol event rather than malformed input.
func (c *Conn) fail() { c.state = stateFailed }

// NegotiateAuthMethods encodes and queues the initial greeting advertising
// the given methods, 1..255 of them. Valid only in the initial state.
func (c *Conn) NegotiateAuthMethods(methods []AuthMethod) error {
	if c.state != stateInit {
		return protoerr.State(errNotInInit)
	}
	if len(methods) == 0 {
		return protoerr.Usage(errMethodsEmpty)
	}
	if len(methods) > 255 {
		return protoerr.Usage(errMethodsTooLong)
	}
	h := greetingHeader{methods: methods}
	c.out.Append(h.Bytes())
	c.state = stateMethodsSent
	return nil
}

// AuthenticateUsernamePassword encodes and queues the RFC 1929
// username/password sub-negotiation. Valid only once the proxy has
// selected USERNAME_PASSWORD as the method.
func (c *Conn) AuthenticateUsernamePassword(username, password []byte) error {
	if c.state != stateMethodAccepted {
		return protoerr.State(errNotMethodAccepted)
	}
	if c.selectedMethod != UsernamePassword {
		return protoerr.State(errMethodNotUsernamePassword)
	}
	if len(username) == 0 || len(username) > 255 {
		return protoerr.Usage(errUsernameEmptyOrTooLong)
	}
	if len(password) == 0 || len(password) > 255 {
		return protoerr.Usage(errPasswordEmptyOrTooLong)
	}
	h := userPassAuthHeader{username: username, password: password}
	c.out.Append(h.Bytes())
	c.state = stateAuthSent
	return nil
}

// Request encodes and queues the CONNECT/BIND request. Valid once a method
// requiring no further auth has been accepted (MethodAccepted with
// NO_AUTH_REQUIRED) or once username/password auth has succeeded
// (AuthAccepted). addr is classified as IPv4, IPv6, or DOMAIN by trying a
// numeric parse first and falling back to DOMAIN.
func (c *Conn) Request(cmd socksaddr.Command, addr string, port uint16) error {
	switch c.state {
	case stateMethodAccepted:
		if c.selectedMethod != NoAuthRequired {
			return protoerr.State(errRequestWrongState)
		}
	case stateAuthAccepted:
		// fall through: username/password auth already completed
	default:
		return protoerr.State(errRequestWrongState)
	}
	if cmd == socksaddr.UDPAssociate {
		return protoerr.Usage(errUDPAssociateUnsupported)
	}

	classified, err := socksaddr.Classify(addr)
	if err != nil {
		return protoerr.Usage(err)
	}

	h := requestHeader{cmd: cmd, addr: classified, port: port}
	encoded, err := h.Bytes()
	if err != nil {
		return protoerr.Usage(err)
	}
	c.out.Append(encoded)
	c.state = stateRequestSent
	return nil
}

// ReceiveData appends newly-arrived bytes and attempts to parse exactly
// one complete frame appropriate to the current phase. It is "hungry" but
// not eager: it returns at most one event per call, and returns
// immediately with no event when the buffered prefix is incomplete,
// leaving the buffer untouched.
func (c *Conn) ReceiveData(p []byte) ([]Event, error) {
	c.in.Append(p)

	switch c.state {
	case stateMethodsSent:
		return c.receiveMethodsReply()
	case stateAuthSent:
		return c.receiveAuthReply()
	case stateRequestSent:
		return c.receiveConnectReply()
	default:
		return nil, protoerr.State(errNotExpectingData)
	}
}

func (c *Conn) receiveMethodsReply() ([]Event, error) {
	frame, ok := c.in.Peek(2)
	if !ok {
		return nil, nil
	}
	if frame[0] != protocolVersion {
		c.fail()
		return nil, protoerr.Protocol(errBadMethodsReplyVersion)
	}
	c.in.Consume(2)

	method := AuthMethod(frame[1])
	ev := Event{Kind: EventAuthMethodsReply, AuthMethods: AuthMethodsReply{Method: method}}
	if method == NoAcceptable {
		c.fail()
		return []Event{ev}, nil
	}
	c.selectedMethod = method
	c.state = stateMethodAccepted
	return []Event{ev}, nil
}

func (c *Conn) receiveAuthReply() ([]Event, error) {
	frame, ok := c.in.Peek(2)
	if !ok {
		return nil, nil
	}
	if frame[0] != userPassAuthVersion {
		c.fail()
		return nil, protoerr.Protocol(errBadAuthReplyVersion)
	}
	c.in.Consume(2)

	success := frame[1] == 0x00
	ev := Event{Kind: EventUsernamePasswordReply, UsernamePass: UsernamePasswordReply{Success: success}}
	if success {
		c.state = stateAuthAccepted
	} else {
		c.fail()
	}
	return []Event{ev}, nil
}

func (c *Conn) receiveConnectReply() ([]Event, error) {
	// Two-phase length probe: first the fixed 4-byte header
	// (VER, REP, RSV, ATYP), then, for DOMAIN, the length octet that
	// follows ATYP, before the full frame length is known.
	header, ok := c.in.Peek(4)
	if !ok {
		return nil, nil
	}
	atyp := socksaddr.Kind(header[3])

	var domainLen byte
	if atyp == socksaddr.Domain {
		withLen, ok := c.in.Peek(5)
		if !ok {
			return nil, nil
		}
		domainLen = withLen[4]
	}

	addrLen, err := socksaddr.FrameLen(atyp, domainLen)
	if err != nil {
		c.fail()
		return nil, protoerr.Protocol(err)
	}

	total := 3 + addrLen + 2 // VER,REP,RSV + ATYP-prefixed address + BND.PORT
	frame, ok := c.in.Peek(total)
	if !ok {
		return nil, nil
	}

	if frame[0] != protocolVersion {
		c.fail()
		return nil, protoerr.Protocol(errBadReplyVersion)
	}
	if frame[2] != 0x00 {
		c.fail()
		return nil, protoerr.Protocol(errBadReplyReserved)
	}

	addr, consumed, err := socksaddr.Decode(frame[3 : 3+addrLen])
	if err != nil {
		c.fail()
		return nil, protoerr.Protocol(err)
	}
	if consumed != addrLen {
		c.fail()
		return nil, protoerr.Protocol(errBadReplyReserved)
	}
	port := socksaddr.DecodeU16BE(frame[3+addrLen : 3+addrLen+2])
	c.in.Consume(total)

	rep := ReplyCode(frame[1])
	ev := Event{Kind: EventReply, ConnectReply: Reply{Code: rep, BindAddr: addr, BindPort: port}}
	if rep == Succeeded {
		c.state = stateSucceeded
	} else {
		c.fail()
	}
	return []Event{ev}, nil
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
