package enums

import (
	"encoding/json"
	"fmt"
	"strings"
)

// IPProtocol is the IANA protocol number carried in the IPv4 protocol or
// IPv6 next-header field.
type IPProtocol uint8

const (
	IPProtocolIPv6HopByHop    IPProtocol = 0
	IPProtocolICMPv4          IPProtocol = 1
	IPProtocolIGMP            IPProtocol = 2
	IPProtocolIPv4            IPProtocol = 4
	IPProtocolTCP             IPProtocol = 6
	IPProtocolUDP             IPProtocol = 17
	IPProtocolRUDP            IPProtocol = 27
	IPProtocolIPv6            IPProtocol = 41
	IPProtocolIPv6Routing     IPProtocol = 43
	IPProtocolIPv6Fragment    IPProtocol = 44
	IPProtocolGRE             IPProtocol = 47
	IPProtocolESP             IPProtocol = 50
	IPProtocolAH              IPProtocol = 51
	IPProtocolICMPv6          IPProtocol = 58
	IPProtocolNoNextHeader    IPProtocol = 59
	IPProtocolIPv6Destination IPProtocol = 60
	IPProtocolOSPF            IPProtocol = 89
	IPProtocolIPIP            IPProtocol = 94
	IPProtocolEtherIP         IPProtocol = 97
	IPProtocolVRRP            IPProtocol = 112
	IPProtocolSCTP            IPProtocol = 132
	IPProtocolUDPLite         IPProtocol = 136
	IPProtocolMPLSInIP        IPProtocol = 137
	IPProtocolUnknown         IPProtocol = 255

	DefaultIPProtocol = IPProtocolUnknown
)

var ipProtocolNames = map[IPProtocol]string{
	IPProtocolIPv6HopByHop:    "IPv6HopByHop",
	IPProtocolICMPv4:          "ICMPv4",
	IPProtocolIGMP:            "IGMP",
	IPProtocolIPv4:            "IPv4",
	IPProtocolTCP:             "TCP",
	IPProtocolUDP:             "UDP",
	IPProtocolRUDP:            "RUDP",
	IPProtocolIPv6:            "IPv6",
	IPProtocolIPv6Routing:     "IPv6Routing",
	IPProtocolIPv6Fragment:    "IPv6Fragment",
	IPProtocolGRE:             "GRE",
	IPProtocolESP:             "ESP",
	IPProtocolAH:              "AH",
	IPProtocolICMPv6:          "ICMPv6",
	IPProtocolNoNextHeader:    "NoNextHeader",
	IPProtocolIPv6Destination: "IPv6Destination",
	IPProtocolOSPF:            "OSPF",
	IPProtocolIPIP:            "IPIP",
	IPProtocolEtherIP:         "EtherIP",
	IPProtocolVRRP:            "VRRP",
	IPProtocolSCTP:            "SCTP",
	IPProtocolUDPLite:         "UDPLite",
	IPProtocolMPLSInIP:        "MPLSInIP",
	IPProtocolUnknown:         "Unknown",
}

var ipProtocolTable = newCode8Table(ipProtocolNames)

// IPProtocolFrom decodes a wire protocol number. Unmapped codes become
// IPProtocolUnknown.
func IPProtocolFrom(code uint8) IPProtocol {
	if _, ok := ipProtocolTable.lookup(code); ok {
		return IPProtocol(code)
	}
	return DefaultIPProtocol
}

func IPProtocols() []IPProtocol {
	return sortedKeys(ipProtocolNames)
}

func (p IPProtocol) String() string {
	if s, ok := ipProtocolTable.lookup(uint8(p)); ok {
		return s
	}
	return fmt.Sprintf("IPProtocol(%d)", uint8(p))
}

func (p IPProtocol) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(p.String()))
}

// L4Protocol returns the coarse transport classification of p.
func (p IPProtocol) L4Protocol() L4Protocol {
	switch p {
	case IPProtocolTCP:
		return L4ProtocolTCP
	case IPProtocolUDP:
		return L4ProtocolUDP
	default:
		return L4ProtocolUnknown
	}
}

// L7Bitmap returns the set of application protocols that can ride on p.
// It is recomputed from the current L7 codes on every call.
func (p IPProtocol) L7Bitmap() L7Bitmap {
	var b L7Bitmap
	if p == IPProtocolTCP {
		b.Set(L7ProtocolHTTP1)
		b.Set(L7ProtocolHTTP2)
		b.Set(L7ProtocolDNS)
		b.Set(L7ProtocolMySQL)
		b.Set(L7ProtocolRedis)
		b.Set(L7ProtocolDubbo)
		b.Set(L7ProtocolKafka)
		b.Set(L7ProtocolMQTT)
	} else {
		b.Set(L7ProtocolDNS)
	}
	return b
}

// L4Protocol is a three-valued transport view derived from IPProtocol.
type L4Protocol uint8

const (
	L4ProtocolUnknown L4Protocol = iota
	L4ProtocolTCP
	L4ProtocolUDP
)

var l4ProtocolNames = [...]string{
	L4ProtocolUnknown: "Unknown",
	L4ProtocolTCP:     "TCP",
	L4ProtocolUDP:     "UDP",
}

func (p L4Protocol) String() string {
	if int(p) < len(l4ProtocolNames) {
		return l4ProtocolNames[p]
	}
	return fmt.Sprintf("L4Protocol(%d)", uint8(p))
}

func (p L4Protocol) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(p.String()))
}
