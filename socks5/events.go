package socks5

import (
	"fmt"

	"github.com/nilsocks/socksio/internal/socksaddr"
)

// AuthMethod is a SOCKS5 authentication method code as exchanged during
// method negotiation (RFC 1928 section 3). Only NoAuthRequired and
// UsernamePassword are actually driven to completion by this core; GSSAPI
// is defined for wire completeness. A GSSAPI selection by the proxy is
// reported as an AuthMethodsReply event, after which both
// AuthenticateUsernamePassword and Request return a StateError.
type AuthMethod byte

const (
	NoAuthRequired   AuthMethod = 0x00
	GSSAPI           AuthMethod = 0x01
	UsernamePassword AuthMethod = 0x02
	NoAcceptable     AuthMethod = 0xFF
)

func (m AuthMethod) String() string {
	switch m {
	case NoAuthRequired:
		return "NO_AUTH_REQUIRED"
	case GSSAPI:
		return "GSSAPI"
	case UsernamePassword:
		return "USERNAME_PASSWORD"
	case NoAcceptable:
		return "NO_ACCEPTABLE"
	default:
		return fmt.Sprintf("AuthMethod(0x%02x)", byte(m))
	}
}

// ReplyCode is the REP field of a SOCKS5 reply frame (RFC 1928 section 6).
type ReplyCode byte

const (
	Succeeded               ReplyCode = 0x00
	GeneralFailure          ReplyCode = 0x01
	ConnectionNotAllowed    ReplyCode = 0x02
	NetworkUnreachable      ReplyCode = 0x03
	HostUnreachable         ReplyCode = 0x04
	ConnectionRefused       ReplyCode = 0x05
	TTLExpired              ReplyCode = 0x06
	CommandNotSupported     ReplyCode = 0x07
	AddressTypeNotSupported ReplyCode = 0x08
)

func (c ReplyCode) String() string {
	switch c {
	case Succeeded:
		return "SUCCEEDED"
	case GeneralFailure:
		return "GENERAL_FAILURE"
	case ConnectionNotAllowed:
		return "CONNECTION_NOT_ALLOWED"
	case NetworkUnreachable:
		return "NETWORK_UNREACHABLE"
	case HostUnreachable:
		return "HOST_UNREACHABLE"
	case ConnectionRefused:
		return "CONNECTION_REFUSED"
	case TTLExpired:
		return "TTL_EXPIRED"
	case CommandNotSupported:
		return "COMMAND_NOT_SUPPORTED"
	case AddressTypeNotSupported:
		return "ADDRESS_TYPE_NOT_SUPPORTED"
	default:
		return fmt.Sprintf("ReplyCode(0x%02x)", byte(c))
	}
}

// AuthMethodsReply is emitted once the proxy answers the initial greeting
// with its selected method.
type AuthMethodsReply struct {
	Method AuthMethod
}

// UsernamePasswordReply is emitted once the proxy answers the RFC 1929
// username/password sub-negotiation.
type UsernamePasswordReply struct {
	Success bool
}

// Reply is emitted once the proxy answers the CONNECT request.
type Reply struct {
	Code     ReplyCode
	BindAddr socksaddr.Address
	BindPort uint16
}

// EventKind tags which variant of the Event union is populated.
type EventKind int

const (
	EventAuthMethodsReply EventKind = iota
	EventUsernamePasswordReply
	EventReply
)

// Event is the discriminated union ReceiveData produces. Exactly one of
// AuthMethods, UsernamePass, or ConnectReply is meaningful, selected by Kind.
type Event struct {
	Kind         EventKind
	AuthMethods  AuthMethodsReply
	UsernamePass UsernamePasswordReply
	ConnectReply Reply
}
