package enums

import (
	"testing"

	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
)

func TestEthernetTypeGopacket(t *testing.T) {
	testCases := []struct {
		et   EthernetType
		want layers.EthernetType
	}{
		{EthernetTypeLLC, layers.EthernetTypeLLC},
		{EthernetTypeIPv4, layers.EthernetTypeIPv4},
		{EthernetTypeARP, layers.EthernetTypeARP},
		{EthernetTypeIPv6, layers.EthernetTypeIPv6},
		{EthernetTypeCiscoDiscovery, layers.EthernetTypeCiscoDiscovery},
		{EthernetTypeNortelDiscovery, layers.EthernetTypeNortelDiscovery},
		{EthernetTypeTransparentEthernetBridging, layers.EthernetTypeTransparentEthernetBridging},
		{EthernetTypeDot1Q, layers.EthernetTypeDot1Q},
		{EthernetTypePPP, layers.EthernetTypePPP},
		{EthernetTypePPPoEDiscovery, layers.EthernetTypePPPoEDiscovery},
		{EthernetTypePPPoESession, layers.EthernetTypePPPoESession},
		{EthernetTypeMPLSUnicast, layers.EthernetTypeMPLSUnicast},
		{EthernetTypeMPLSMulticast, layers.EthernetTypeMPLSMulticast},
		{EthernetTypeEAPOL, layers.EthernetTypeEAPOL},
		{EthernetTypeQinQ, layers.EthernetTypeQinQ},
		{EthernetTypeLinkLayerDiscovery, layers.EthernetTypeLinkLayerDiscovery},
		{EthernetTypeEthernetCTP, layers.EthernetTypeEthernetCTP},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, tc.et.Layers(), tc.et.String())
	}
	// Every registered value except the Unknown sentinel is covered.
	assert.Len(t, EthernetTypes(), len(testCases)+1)
}

func TestIPProtocolGopacket(t *testing.T) {
	testCases := []struct {
		p    IPProtocol
		want layers.IPProtocol
	}{
		{IPProtocolIPv6HopByHop, layers.IPProtocolIPv6HopByHop},
		{IPProtocolICMPv4, layers.IPProtocolICMPv4},
		{IPProtocolIGMP, layers.IPProtocolIGMP},
		{IPProtocolIPv4, layers.IPProtocolIPv4},
		{IPProtocolTCP, layers.IPProtocolTCP},
		{IPProtocolUDP, layers.IPProtocolUDP},
		{IPProtocolRUDP, layers.IPProtocolRUDP},
		{IPProtocolIPv6, layers.IPProtocolIPv6},
		{IPProtocolIPv6Routing, layers.IPProtocolIPv6Routing},
		{IPProtocolIPv6Fragment, layers.IPProtocolIPv6Fragment},
		{IPProtocolGRE, layers.IPProtocolGRE},
		{IPProtocolESP, layers.IPProtocolESP},
		{IPProtocolAH, layers.IPProtocolAH},
		{IPProtocolICMPv6, layers.IPProtocolICMPv6},
		{IPProtocolNoNextHeader, layers.IPProtocolNoNextHeader},
		{IPProtocolIPv6Destination, layers.IPProtocolIPv6Destination},
		{IPProtocolOSPF, layers.IPProtocolOSPF},
		{IPProtocolIPIP, layers.IPProtocolIPIP},
		{IPProtocolEtherIP, layers.IPProtocolEtherIP},
		{IPProtocolVRRP, layers.IPProtocolVRRP},
		{IPProtocolSCTP, layers.IPProtocolSCTP},
		{IPProtocolUDPLite, layers.IPProtocolUDPLite},
		{IPProtocolMPLSInIP, layers.IPProtocolMPLSInIP},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, tc.p.Layers(), tc.p.String())
	}
	assert.Len(t, IPProtocols(), len(testCases)+1)
}

func TestLinkTypeGopacket(t *testing.T) {
	testCases := []struct {
		lt   LinkType
		want layers.LinkType
	}{
		{LinkTypeNull, layers.LinkTypeNull},
		{LinkTypeEthernet, layers.LinkTypeEthernet},
		{LinkTypeAX25, layers.LinkTypeAX25},
		{LinkTypeTokenRing, layers.LinkTypeTokenRing},
		{LinkTypeArcNet, layers.LinkTypeArcNet},
		{LinkTypeSLIP, layers.LinkTypeSLIP},
		{LinkTypePPP, layers.LinkTypePPP},
		{LinkTypeFDDI, layers.LinkTypeFDDI},
		{LinkTypePPPHDLC, layers.LinkTypePPP_HDLC},
		{LinkTypePPPEthernet, layers.LinkTypePPPEthernet},
		{LinkTypeATMRFC1483, layers.LinkTypeATM_RFC1483},
		{LinkTypeRaw, layers.LinkTypeRaw},
		{LinkTypeCHDLC, layers.LinkTypeC_HDLC},
		{LinkTypeIEEE802_11, layers.LinkTypeIEEE802_11},
		{LinkTypeFRelay, layers.LinkTypeFRelay},
		{LinkTypeLoop, layers.LinkTypeLoop},
		{LinkTypeLinuxSLL, layers.LinkTypeLinuxSLL},
		{LinkTypeLTalk, layers.LinkTypeLTalk},
		{LinkTypePFLog, layers.LinkTypePFLog},
		{LinkTypePrismHeader, layers.LinkTypePrismHeader},
		{LinkTypeIPOverFC, layers.LinkTypeIPOverFC},
		{LinkTypeSunATM, layers.LinkTypeSunATM},
		{LinkTypeIEEE80211Radio, layers.LinkTypeIEEE80211Radio},
		{LinkTypeARCNetLinux, layers.LinkTypeARCNetLinux},
		{LinkTypeIPOver1394, layers.LinkTypeIPOver1394},
		{LinkTypeMTP2Phdr, layers.LinkTypeMTP2Phdr},
		{LinkTypeMTP2, layers.LinkTypeMTP2},
		{LinkTypeMTP3, layers.LinkTypeMTP3},
		{LinkTypeSCCP, layers.LinkTypeSCCP},
		{LinkTypeDOCSIS, layers.LinkTypeDOCSIS},
		{LinkTypeLinuxIRDA, layers.LinkTypeLinuxIRDA},
		{LinkTypeLinuxLAPD, layers.LinkTypeLinuxLAPD},
		{LinkTypeLinuxUSB, layers.LinkTypeLinuxUSB},
		{LinkTypeIPv4, layers.LinkTypeIPv4},
		{LinkTypeIPv6, layers.LinkTypeIPv6},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, tc.lt.Layers(), tc.lt.String())
		got, err := LinkTypeFromLayers(tc.want)
		assert.NoError(t, err)
		assert.Equal(t, tc.lt, got)
	}
	assert.Len(t, LinkTypes(), len(testCases))

	_, err := LinkTypeFromLayers(layers.LinkType(2))
	assert.ErrorIs(t, err, ErrUnmappedCode)
}
