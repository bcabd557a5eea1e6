package socksaddr

import "fmt"

// Command is the SOCKS request command, shared verbatim by SOCKS4 and
// SOCKS5. UDP_ASSOCIATE is defined for completeness but always rejected:
// the core has no datagram relay (see spec Non-goals).
type Command byte

const (
	Connect      Command = 0x01
	Bind         Command = 0x02
	UDPAssociate Command = 0x03
)

func (c Command) String() string {
	switch c {
	case Connect:
		return "CONNECT"
	case Bind:
		return "BIND"
	case UDPAssociate:
		return "UDP_ASSOCIATE"
	default:
		return fmt.Sprintf("Command(0x%02x)", byte(c))
	}
}
