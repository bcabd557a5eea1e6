package socks5

import "github.com/nilsocks/socksio/internal/socksaddr"

const protocolVersion = 0x05
const userPassAuthVersion = 0x01

// greetingHeader is the client -> proxy initial greeting:
//
//	VER=0x05 | NMETHODS(1) | METHODS(NMETHODS bytes)
type greetingHeader struct {
	methods []AuthMethod
}

func (h greetingHeader) Size() int { return 1 + 1 + len(h.methods) }

func (h greetingHeader) Bytes() []byte {
	buf := make([]byte, 0, h.Size())
	buf = append(buf, protocolVersion, byte(len(h.methods)))
	for _, m := range h.methods {
		buf = append(buf, byte(m))
	}
	return buf
}

// userPassAuthHeader is the client -> proxy RFC 1929 sub-negotiation:
//
//	VER=0x01 | ULEN(1) | UNAME(ULEN) | PLEN(1) | PASSWD(PLEN)
type userPassAuthHeader struct {
	username []byte
	password []byte
}

func (h userPassAuthHeader) Size() int {
	return 1 + 1 + len(h.username) + 1 + len(h.password)
}

func (h userPassAuthHeader) Bytes() []byte {
	buf := make([]byte, 0, h.Size())
	buf = append(buf, userPassAuthVersion, byte(len(h.username)))
	buf = append(buf, h.username...)
	buf = append(buf, byte(len(h.password)))
	buf = append(buf, h.password...)
	return buf
}

// requestHeader is the client -> proxy SOCKS5 request:
//
//	VER=0x05 | CMD | RSV=0x00 | ATYP | DST.ADDR | DST.PORT(2)
type requestHeader struct {
	cmd  socksaddr.Command
	addr socksaddr.Address
	port uint16
}

func (h requestHeader) Size() int { return 1 + 1 + 1 + h.addr.WireLen() + 2 }

func (h requestHeader) Bytes() ([]byte, error) {
	buf := make([]byte, 0, h.Size())
	buf = append(buf, protocolVersion, byte(h.cmd), 0x00)
	buf, err := socksaddr.Encode(buf, h.addr)
	if err != nil {
		return nil, err
	}
	buf = socksaddr.EncodeU16BE(buf, h.port)
	return buf, nil
}
