package socks4

import "errors"

// Sentinel causes wrapped by protoerr.{Protocol,State,Usage} before being
// returned to the caller: one distinct error value per failure, rather
// than one generic message per kind.
var (
	errNotInInit               = errors.New("socks4: Request called outside the initial state")
	errNotAwaitingReply        = errors.New("socks4: ReceiveData called before Request or after the handshake terminated")
	errUDPAssociateUnsupported = errors.New("socks4: UDP_ASSOCIATE is not supported")
	errIPv6Unsupported         = errors.New("socks4: SOCKS4/SOCKS4A has no IPv6 address form")
	errDomainRequiresSocks4A   = errors.New("socks4: domain name targets require SOCKS4A, not SOCKS4")
	errBadReplyVersion         = errors.New("socks4: reply VN byte must be 0x00")
)
