package enums

import (
	"fmt"
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// LinkType is a pcap link-layer header type, see pcap-linktype(7) and
// http://www.tcpdump.org/linktypes.html. There is no Unknown value: an
// unmapped code is a conversion failure.
type LinkType uint8

const (
	LinkTypeNull           LinkType = 0
	LinkTypeEthernet       LinkType = 1
	LinkTypeAX25           LinkType = 3
	LinkTypeTokenRing      LinkType = 6
	LinkTypeArcNet         LinkType = 7
	LinkTypeSLIP           LinkType = 8
	LinkTypePPP            LinkType = 9
	LinkTypeFDDI           LinkType = 10
	LinkTypePPPHDLC        LinkType = 50
	LinkTypePPPEthernet    LinkType = 51
	LinkTypeATMRFC1483     LinkType = 100
	LinkTypeRaw            LinkType = 101
	LinkTypeCHDLC          LinkType = 104
	LinkTypeIEEE802_11     LinkType = 105
	LinkTypeFRelay         LinkType = 107
	LinkTypeLoop           LinkType = 108
	LinkTypeLinuxSLL       LinkType = 113
	LinkTypeLTalk          LinkType = 114
	LinkTypePFLog          LinkType = 117
	LinkTypePrismHeader    LinkType = 119
	LinkTypeIPOverFC       LinkType = 122
	LinkTypeSunATM         LinkType = 123
	LinkTypeIEEE80211Radio LinkType = 127
	LinkTypeARCNetLinux    LinkType = 129
	LinkTypeIPOver1394     LinkType = 138
	LinkTypeMTP2Phdr       LinkType = 139
	LinkTypeMTP2           LinkType = 140
	LinkTypeMTP3           LinkType = 141
	LinkTypeSCCP           LinkType = 142
	LinkTypeDOCSIS         LinkType = 143
	LinkTypeLinuxIRDA      LinkType = 144
	LinkTypeLinuxLAPD      LinkType = 177
	LinkTypeLinuxUSB       LinkType = 220
	LinkTypeIPv4           LinkType = 228
	LinkTypeIPv6           LinkType = 229
)

var linkTypeNames = map[LinkType]string{
	LinkTypeNull:           "Null",
	LinkTypeEthernet:       "Ethernet",
	LinkTypeAX25:           "AX25",
	LinkTypeTokenRing:      "TokenRing",
	LinkTypeArcNet:         "ArcNet",
	LinkTypeSLIP:           "SLIP",
	LinkTypePPP:            "PPP",
	LinkTypeFDDI:           "FDDI",
	LinkTypePPPHDLC:        "PPP_HDLC",
	LinkTypePPPEthernet:    "PPPEthernet",
	LinkTypeATMRFC1483:     "ATM_RFC1483",
	LinkTypeRaw:            "Raw",
	LinkTypeCHDLC:          "C_HDLC",
	LinkTypeIEEE802_11:     "IEEE802_11",
	LinkTypeFRelay:         "FRelay",
	LinkTypeLoop:           "Loop",
	LinkTypeLinuxSLL:       "LinuxSLL",
	LinkTypeLTalk:          "LTalk",
	LinkTypePFLog:          "PFLog",
	LinkTypePrismHeader:    "PrismHeader",
	LinkTypeIPOverFC:       "IPOverFC",
	LinkTypeSunATM:         "SunATM",
	LinkTypeIEEE80211Radio: "IEEE80211Radio",
	LinkTypeARCNetLinux:    "ARCNetLinux",
	LinkTypeIPOver1394:     "IPOver1394",
	LinkTypeMTP2Phdr:       "MTP2Phdr",
	LinkTypeMTP2:           "MTP2",
	LinkTypeMTP3:           "MTP3",
	LinkTypeSCCP:           "SCCP",
	LinkTypeDOCSIS:         "DOCSIS",
	LinkTypeLinuxIRDA:      "LinuxIRDA",
	LinkTypeLinuxLAPD:      "LinuxLAPD",
	LinkTypeLinuxUSB:       "LinuxUSB",
	LinkTypeIPv4:           "IPv4",
	LinkTypeIPv6:           "IPv6",
}

var linkTypeTable = newCode8Table(linkTypeNames)

// LinkTypeFrom decodes a pcap link type. Codes outside the registry return
// a *ConversionError.
func LinkTypeFrom(code uint8) (LinkType, error) {
	if _, ok := linkTypeTable.lookup(code); !ok {
		return 0, newConversionError("link type", uint32(code))
	}
	return LinkType(code), nil
}

// LinkTypeFromHeader decodes the full-width link type of a capture file
// header (32 bits in pcap, 16 bits in a pcapng interface block). Codes that
// do not fit in a LinkType are never narrowed.
func LinkTypeFromHeader(code uint32) (LinkType, error) {
	if code > math.MaxUint8 {
		return 0, newConversionError("link type", code)
	}
	return LinkTypeFrom(uint8(code))
}

func LinkTypes() []LinkType {
	return sortedKeys(linkTypeNames)
}

func (t LinkType) String() string {
	if s, ok := linkTypeTable.lookup(uint8(t)); ok {
		return s
	}
	return fmt.Sprintf("LinkType(%d)", uint8(t))
}

// Set implements pflag.Value, accepting a registry name or number.
func (t *LinkType) Set(s string) error {
	if v, ok := lookupName(linkTypeNames, s); ok {
		*t = v
		return nil
	}
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return errors.Errorf("invalid link type: %s", s)
	}
	v, err := LinkTypeFrom(uint8(n))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t *LinkType) Type() string { return "linktype" }
