package enums

import (
	"encoding/json"
	"fmt"
	"strings"
)

// EthernetType is the 16-bit ethertype field of an Ethernet frame.
type EthernetType uint16

const (
	// EthernetTypeLLC is not an actual ethernet type. It marks 802.3 frames
	// that carry a length field followed by LLC instead of an ethertype.
	EthernetTypeLLC                         EthernetType = 0
	EthernetTypeIPv4                        EthernetType = 0x0800
	EthernetTypeARP                         EthernetType = 0x0806
	EthernetTypeIPv6                        EthernetType = 0x86DD
	EthernetTypeCiscoDiscovery              EthernetType = 0x2000
	EthernetTypeNortelDiscovery             EthernetType = 0x01a2
	EthernetTypeTransparentEthernetBridging EthernetType = 0x6558
	EthernetTypeDot1Q                       EthernetType = 0x8100
	EthernetTypePPP                         EthernetType = 0x880b
	EthernetTypePPPoEDiscovery              EthernetType = 0x8863
	EthernetTypePPPoESession                EthernetType = 0x8864
	EthernetTypeMPLSUnicast                 EthernetType = 0x8847
	EthernetTypeMPLSMulticast               EthernetType = 0x8848
	EthernetTypeEAPOL                       EthernetType = 0x888e
	EthernetTypeQinQ                        EthernetType = 0x88a8
	EthernetTypeLinkLayerDiscovery          EthernetType = 0x88cc
	EthernetTypeEthernetCTP                 EthernetType = 0x9000
	EthernetTypeUnknown                     EthernetType = 0xFFFF

	// DefaultEthernetType is what unmapped codes decode to.
	DefaultEthernetType = EthernetTypeUnknown
)

var ethernetTypeNames = map[EthernetType]string{
	EthernetTypeLLC:                         "LLC",
	EthernetTypeIPv4:                        "IPv4",
	EthernetTypeARP:                         "ARP",
	EthernetTypeIPv6:                        "IPv6",
	EthernetTypeCiscoDiscovery:              "CiscoDiscovery",
	EthernetTypeNortelDiscovery:             "NortelDiscovery",
	EthernetTypeTransparentEthernetBridging: "TransparentEthernetBridging",
	EthernetTypeDot1Q:                       "Dot1Q",
	EthernetTypePPP:                         "PPP",
	EthernetTypePPPoEDiscovery:              "PPPoEDiscovery",
	EthernetTypePPPoESession:                "PPPoESession",
	EthernetTypeMPLSUnicast:                 "MPLSUnicast",
	EthernetTypeMPLSMulticast:               "MPLSMulticast",
	EthernetTypeEAPOL:                       "EAPOL",
	EthernetTypeQinQ:                        "QinQ",
	EthernetTypeLinkLayerDiscovery:          "LinkLayerDiscovery",
	EthernetTypeEthernetCTP:                 "EthernetCTP",
	EthernetTypeUnknown:                     "Unknown",
}

// ethernetTypeKnown is a bitmap over the 16-bit code space, one bit per
// registered ethertype.
var ethernetTypeKnown = func() (known [1 << 16 / 64]uint64) {
	for t := range ethernetTypeNames {
		known[t>>6] |= 1 << (t & 63)
	}
	return known
}()

// EthernetTypeFrom decodes a wire ethertype. Unmapped codes become
// EthernetTypeUnknown.
func EthernetTypeFrom(code uint16) EthernetType {
	if ethernetTypeKnown[code>>6]&(1<<(code&63)) != 0 {
		return EthernetType(code)
	}
	return DefaultEthernetType
}

// EthernetTypes returns every registered ethertype, Unknown included.
func EthernetTypes() []EthernetType {
	return sortedKeys(ethernetTypeNames)
}

// IsVLAN reports whether t introduces an 802.1Q or 802.1ad tag.
func (t EthernetType) IsVLAN() bool {
	return t == EthernetTypeDot1Q || t == EthernetTypeQinQ
}

func (t EthernetType) String() string {
	if s, ok := ethernetTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("EthernetType(0x%04x)", uint16(t))
}

func (t EthernetType) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(t.String()))
}
