package enums

import "fmt"

// IfType is a Windows adapter interface type (IP_ADAPTER_ADDRESSES.IfType).
// Only the common values are registered; the rest fail to convert.
type IfType uint32

const (
	IfTypeOther     IfType = 1
	IfTypeEthernet  IfType = 6
	IfTypeTokenRing IfType = 9
	IfTypePPP       IfType = 23
	IfTypeLoopback  IfType = 24
	IfTypeATM       IfType = 37
	IfTypeIEEE80211 IfType = 71
	IfTypeTunnel    IfType = 131
	IfTypeIEEE1394  IfType = 144
)

var ifTypeNames = map[IfType]string{
	IfTypeOther:     "Other",
	IfTypeEthernet:  "Ethernet",
	IfTypeTokenRing: "TokenRing",
	IfTypePPP:       "PPP",
	IfTypeLoopback:  "Loopback",
	IfTypeATM:       "ATM",
	IfTypeIEEE80211: "IEEE80211",
	IfTypeTunnel:    "Tunnel",
	IfTypeIEEE1394:  "IEEE1394",
}

func IfTypeFrom(code uint32) (IfType, error) {
	t := IfType(code)
	if _, ok := ifTypeNames[t]; !ok {
		return 0, newConversionError("if type", code)
	}
	return t, nil
}

func IfTypes() []IfType {
	return sortedKeys(ifTypeNames)
}

// LinkType maps an adapter type to the link-layer framing its captures
// carry. Adapters without a pcap equivalent return false.
func (t IfType) LinkType() (LinkType, bool) {
	switch t {
	case IfTypeEthernet, IfTypeIEEE80211:
		// NDIS presents 802.11 adapters as Ethernet to capture drivers.
		return LinkTypeEthernet, true
	case IfTypeTokenRing:
		return LinkTypeTokenRing, true
	case IfTypePPP:
		return LinkTypePPP, true
	case IfTypeLoopback:
		return LinkTypeNull, true
	case IfTypeTunnel:
		return LinkTypeRaw, true
	default:
		return 0, false
	}
}

func (t IfType) String() string {
	if s, ok := ifTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("IfType(%d)", uint32(t))
}
