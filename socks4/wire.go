package socks4

import "github.com/nilsocks/socksio/internal/socksaddr"

// requestHeader is the client -> proxy SOCKS4/SOCKS4A request frame:
//
//	VN=0x04 | CD | DSTPORT(2, big-endian) | DSTIP(4) | USERID | NUL(0x00)
//
// SOCKS4A appends a trailing DOMAIN | NUL(0x00) after the USERID's own NUL
// when domain is non-empty.
type requestHeader struct {
	cmd    byte
	port   uint16
	dstIP  [4]byte
	userID []byte
	domain []byte
}

const protocolVersion = 0x04

// Size returns the total byte length of the request frame.
func (h requestHeader) Size() int {
	n := 1 + 1 + 2 + 4 + len(h.userID) + 1
	if len(h.domain) > 0 {
		n += len(h.domain) + 1
	}
	return n
}

// Bytes serializes the request frame for transmission.
func (h requestHeader) Bytes() []byte {
	buf := make([]byte, 0, h.Size())
	buf = append(buf, protocolVersion, h.cmd)
	buf = socksaddr.EncodeU16BE(buf, h.port)
	buf = append(buf, h.dstIP[:]...)
	buf = append(buf, h.userID...)
	buf = append(buf, 0x00)
	if len(h.domain) > 0 {
		buf = append(buf, h.domain...)
		buf = append(buf, 0x00)
	}
	return buf
}

// replyFrameSize is the fixed 8-byte SOCKS4 reply: VN(1) CD(1) DSTPORT(2) DSTIP(4).
const replyFrameSize = 8

// replyVersion is the version byte a compliant proxy sends in its reply
// (0x00 per the SOCKS4 memo, not 0x04).
const replyVersion = 0x00

// decodeReply parses a complete 8-byte reply frame. Callers must already
// know frame holds exactly replyFrameSize bytes.
func decodeReply(frame []byte) (Reply, error) {
	if frame[0] != replyVersion {
		return Reply{}, errBadReplyVersion
	}
	return Reply{
		Code: ReplyCode(frame[1]),
		Port: socksaddr.DecodeU16BE(frame[2:4]),
		Addr: [4]byte{frame[4], frame[5], frame[6], frame[7]},
	}, nil
}
