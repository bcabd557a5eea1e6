package socks5

import "errors"

// Sentinel causes wrapped by protoerr.{Protocol,State,Usage}: one distinct
// error value per failure, rather than one generic message per kind.
var (
	errNotInInit                 = errors.New("socks5: NegotiateAuthMethods called outside the initial state")
	errMethodsEmpty              = errors.New("socks5: methods list must contain at least one method")
	errMethodsTooLong            = errors.New("socks5: methods list longer than 255")
	errNotMethodAccepted         = errors.New("socks5: AuthenticateUsernamePassword called before a method was accepted, or after")
	errMethodNotUsernamePassword = errors.New("socks5: AuthenticateUsernamePassword called but the proxy did not select USERNAME_PASSWORD")
	errUsernameEmptyOrTooLong    = errors.New("socks5: username must be 1..255 bytes")
	errPasswordEmptyOrTooLong    = errors.New("socks5: password must be 1..255 bytes")
	errRequestWrongState         = errors.New("socks5: Request called before authentication completed, or after the handshake terminated")
	errUDPAssociateUnsupported   = errors.New("socks5: UDP_ASSOCIATE is not supported")

	errNotExpectingData = errors.New("socks5: ReceiveData called while no reply is outstanding")

	errBadMethodsReplyVersion = errors.New("socks5: method selection VER byte must be 0x05")
	errBadAuthReplyVersion    = errors.New("socks5: username/password auth VER byte must be 0x01")
	errBadReplyVersion        = errors.New("socks5: reply VER byte must be 0x05")
	errBadReplyReserved       = errors.New("socks5: reply RSV byte must be 0x00")
)
