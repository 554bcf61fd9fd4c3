package enums

import "fmt"

// HeaderType records how far a frame has been decoded. The codes are
// ordered so that "reached layer X" is a plain comparison against the L2,
// L3, L3IPv6, L4 and L4IPv6 floors.
type HeaderType uint8

const (
	HeaderTypeInvalid  HeaderType = 0
	HeaderTypeEth      HeaderType = 0x01
	HeaderTypeARP      HeaderType = 0x02
	HeaderTypeIPv4     HeaderType = 0x20
	HeaderTypeIPv4ICMP HeaderType = 0x21
	HeaderTypeIPv6     HeaderType = 0x40
	HeaderTypeIPv4TCP  HeaderType = 0x80
	HeaderTypeIPv4UDP  HeaderType = 0x81
	HeaderTypeIPv6TCP  HeaderType = 0xb0
	HeaderTypeIPv6UDP  HeaderType = 0xb1

	HeaderTypeL2     = HeaderTypeEth
	HeaderTypeL3     = HeaderTypeIPv4
	HeaderTypeL3IPv6 = HeaderTypeIPv6
	HeaderTypeL4     = HeaderTypeIPv4TCP
	HeaderTypeL4IPv6 = HeaderTypeIPv6TCP
)

const (
	sizeofEthernet = 14
	sizeofARP      = 28
	sizeofIPv4     = 20
	sizeofTCP      = 20
	sizeofUDP      = 8
	sizeofICMP     = 8
)

type headerSize struct {
	name   string
	packet uint8 // from the start of the link header, no VLAN tags or IP options
	header uint8 // this layer only
}

// IPv6 is sized as IPv4 here: the extra 20 bytes of the fixed IPv6 header
// are added by the decoder together with VLAN tags and IPv4 options.
var headerSizes = [256]headerSize{
	HeaderTypeEth:      {"Eth", sizeofEthernet, sizeofEthernet},
	HeaderTypeARP:      {"ARP", sizeofEthernet + sizeofARP, sizeofARP},
	HeaderTypeIPv4:     {"IPv4", sizeofEthernet + sizeofIPv4, sizeofIPv4},
	HeaderTypeIPv4ICMP: {"IPv4ICMP", sizeofEthernet + sizeofIPv4 + sizeofICMP, sizeofICMP},
	HeaderTypeIPv6:     {"IPv6", sizeofEthernet + sizeofIPv4, sizeofIPv4},
	HeaderTypeIPv4TCP:  {"IPv4TCP", sizeofEthernet + sizeofIPv4 + sizeofTCP, sizeofTCP},
	HeaderTypeIPv4UDP:  {"IPv4UDP", sizeofEthernet + sizeofIPv4 + sizeofUDP, sizeofUDP},
	HeaderTypeIPv6TCP:  {"IPv6TCP", sizeofEthernet + sizeofIPv4 + sizeofTCP, sizeofTCP},
	HeaderTypeIPv6UDP:  {"IPv6UDP", sizeofEthernet + sizeofIPv4 + sizeofUDP, sizeofUDP},
}

// HeaderTypes returns every sized header type in ascending order.
func HeaderTypes() []HeaderType {
	var types []HeaderType
	for i := range headerSizes {
		if headerSizes[i].packet != 0 {
			types = append(types, HeaderType(i))
		}
	}
	return types
}

func (t HeaderType) size() headerSize {
	s := headerSizes[t]
	if s.packet == 0 {
		panic(fmt.Sprintf("enums: no size for header type %s", t))
	}
	return s
}

// MinPacketSize is the shortest frame that can hold the header stack t,
// counted from the link header. It panics for HeaderTypeInvalid.
func (t HeaderType) MinPacketSize() int { return int(t.size().packet) }

// MinHeaderSize is the shortest length of the outermost layer of t. It
// panics for HeaderTypeInvalid.
func (t HeaderType) MinHeaderSize() int { return int(t.size().header) }

func (t HeaderType) IsL2() bool { return t >= HeaderTypeL2 }
func (t HeaderType) IsL3() bool { return t >= HeaderTypeL3 }
func (t HeaderType) IsL4() bool { return t >= HeaderTypeL4 }

// IsIPv6 reports whether t is an IPv6 stack.
func (t HeaderType) IsIPv6() bool {
	return t == HeaderTypeIPv6 || t >= HeaderTypeL4IPv6
}

func (t HeaderType) String() string {
	if t == HeaderTypeInvalid {
		return "Invalid"
	}
	if s := headerSizes[t]; s.name != "" {
		return s.name
	}
	return fmt.Sprintf("HeaderType(0x%02x)", uint8(t))
}

func (t HeaderType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
