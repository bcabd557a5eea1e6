// Package socksaddr implements the address-kind-polymorphic wire format
// shared by SOCKS4A and SOCKS5: a tagged union over IPv4, IPv6, and domain
// name addresses, a numeric-first classifier, and the big-endian integer
// helpers the rest of the codec builds on. It is a pure value type with no
// wire position baked in, since SOCKS4A and SOCKS5 place the address
// differently within their respective frames.
package socksaddr

import (
	"fmt"
	"net"
)

// Kind tags which address family an Address holds.
type Kind byte

const (
	IPv4   Kind = 0x01
	Domain Kind = 0x03
	IPv6   Kind = 0x04
)

func (k Kind) String() string {
	switch k {
	case IPv4:
		return "IPv4"
	case Domain:
		return "Domain"
	case IPv6:
		return "IPv6"
	default:
		return fmt.Sprintf("Kind(0x%02x)", byte(k))
	}
}

// Address is a tagged union over the three SOCKS5 address kinds. Only the
// field matching Kind is meaningful.
type Address struct {
	Kind   Kind
	IPv4   [4]byte
	IPv6   [16]byte
	Domain []byte // 1..255 bytes, opaque ASCII
}

// MaxDomainLen is the largest domain name the length-prefixed wire format
// can represent (the length octet is a single byte).
const MaxDomainLen = 255

// Classify parses s as a literal IPv4 or IPv6 address, falling back to
// DOMAIN if neither numeric parse succeeds. This mirrors RFC 1928's client
// behavior: try numeric address forms first, then treat the string as a
// name to be resolved by the proxy.
func Classify(s string) (Address, error) {
	if ip := net.ParseIP(s); ip != nil {
		if v4 := ip.To4(); v4 != nil {
			var a Address
			a.Kind = IPv4
			copy(a.IPv4[:], v4)
			return a, nil
		}
		v6 := ip.To16()
		var a Address
		a.Kind = IPv6
		copy(a.IPv6[:], v6)
		return a, nil
	}
	if len(s) == 0 {
		return Address{}, fmt.Errorf("socksaddr: empty address")
	}
	if len(s) > MaxDomainLen {
		return Address{}, fmt.Errorf("socksaddr: domain %q exceeds %d bytes", s, MaxDomainLen)
	}
	return Address{Kind: Domain, Domain: []byte(s)}, nil
}

// String renders the address in its textual form (dotted-quad, canonical
// IPv6, or the literal domain name).
func (a Address) String() string {
	switch a.Kind {
	case IPv4:
		return net.IP(a.IPv4[:]).String()
	case IPv6:
		return net.IP(a.IPv6[:]).String()
	case Domain:
		return string(a.Domain)
	default:
		return fmt.Sprintf("<invalid address kind %v>", a.Kind)
	}
}

// WireLen reports the number of bytes Encode will produce, including the
// leading ATYP octet (and, for DOMAIN, the length octet).
func (a Address) WireLen() int {
	switch a.Kind {
	case IPv4:
		return 1 + 4
	case IPv6:
		return 1 + 16
	case Domain:
		return 1 + 1 + len(a.Domain)
	default:
		return 0
	}
}

// Encode appends the ATYP-prefixed address (DST.ADDR/BND.ADDR as used by
// SOCKS5 request and reply frames) to dst and returns the extended slice.
func Encode(dst []byte, a Address) ([]byte, error) {
	switch a.Kind {
	case IPv4:
		dst = append(dst, byte(IPv4))
		dst = append(dst, a.IPv4[:]...)
	case IPv6:
		dst = append(dst, byte(IPv6))
		dst = append(dst, a.IPv6[:]...)
	case Domain:
		if len(a.Domain) == 0 || len(a.Domain) > MaxDomainLen {
			return nil, fmt.Errorf("socksaddr: domain length %d out of range 1..%d", len(a.Domain), MaxDomainLen)
		}
		dst = append(dst, byte(Domain))
		dst = append(dst, byte(len(a.Domain)))
		dst = append(dst, a.Domain...)
	default:
		return nil, fmt.Errorf("socksaddr: unknown address kind %v", a.Kind)
	}
	return dst, nil
}

// FrameLen computes the total byte count of an ATYP-prefixed address
// frame given only the ATYP byte and (for DOMAIN) the length byte that
// follows it, without requiring the address bytes themselves to be
// present yet. It is the two-phase length probe the SOCKS5 reply parser
// needs: peek ATYP, and for DOMAIN, peek the length byte, before deciding
// how many more bytes must be buffered.
//
// domainLen is ignored unless atyp is Domain.
func FrameLen(atyp Kind, domainLen byte) (int, error) {
	switch atyp {
	case IPv4:
		return 1 + 4, nil
	case IPv6:
		return 1 + 16, nil
	case Domain:
		return 1 + 1 + int(domainLen), nil
	default:
		return 0, fmt.Errorf("socksaddr: unsupported address type 0x%02x", byte(atyp))
	}
}

// Decode parses an ATYP-prefixed address from a buffer that is already
// known (via FrameLen) to hold a complete frame. It does not touch the
// trailing port bytes.
func Decode(p []byte) (Address, int, error) {
	if len(p) < 1 {
		return Address{}, 0, fmt.Errorf("socksaddr: short buffer")
	}
	atyp := Kind(p[0])
	switch atyp {
	case IPv4:
		if len(p) < 1+4 {
			return Address{}, 0, fmt.Errorf("socksaddr: short IPv4 buffer")
		}
		var a Address
		a.Kind = IPv4
		copy(a.IPv4[:], p[1:5])
		return a, 1 + 4, nil
	case IPv6:
		if len(p) < 1+16 {
			return Address{}, 0, fmt.Errorf("socksaddr: short IPv6 buffer")
		}
		var a Address
		a.Kind = IPv6
		copy(a.IPv6[:], p[1:17])
		return a, 1 + 16, nil
	case Domain:
		if len(p) < 2 {
			return Address{}, 0, fmt.Errorf("socksaddr: short domain buffer")
		}
		l := int(p[1])
		if l == 0 {
			return Address{}, 0, fmt.Errorf("socksaddr: zero-length domain")
		}
		if len(p) < 2+l {
			return Address{}, 0, fmt.Errorf("socksaddr: short domain buffer")
		}
		domain := make([]byte, l)
		copy(domain, p[2:2+l])
		return Address{Kind: Domain, Domain: domain}, 2 + l, nil
	default:
		return Address{}, 0, fmt.Errorf("socksaddr: unsupported address type 0x%02x", byte(atyp))
	}
}

// EncodeU16BE appends port in network byte order to dst.
func EncodeU16BE(dst []byte, port uint16) []byte {
	return append(dst, byte(port>>8), byte(port))
}

// DecodeU16BE reads a big-endian uint16 from the first two bytes of p.
func DecodeU16BE(p []byte) uint16 {
	return uint16(p[0])<<8 | uint16(p[1])
}
