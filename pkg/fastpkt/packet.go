package fastpkt

import (
	"encoding/binary"
	"math/bits"
	"net/netip"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/zxhio/pktclass/pkg/enums"
	"github.com/zxhio/pktclass/pkg/netutil"
)

const (
	SizeofEthernet = int(unsafe.Sizeof(EthHeader{}))      // sizeof(struct ethhdr)
	SizeofLinuxSLL = int(unsafe.Sizeof(LinuxSLLHeader{})) // sizeof(struct sll_header)
	SizeofVLAN     = int(unsafe.Sizeof(VLANHeader{}))     // sizeof(struct vlan_hdr)
	SizeofIPv4     = int(unsafe.Sizeof(IPv4Header{}))     // sizeof(struct iphdr)
	SizeofIPv6     = int(unsafe.Sizeof(IPv6Header{}))     // sizeof(struct ipv6hdr)
	SizeofTCP      = int(unsafe.Sizeof(TCPHeader{}))      // sizeof(struct tcphdr)
	SizeofUDP      = int(unsafe.Sizeof(UDPHeader{}))      // sizeof(struct udphdr)
	SizeofICMP     = int(unsafe.Sizeof(ICMPHeader{}))     // sizeof(struct icmphdr)
	SizeofARP      = int(unsafe.Sizeof(ARPHeader{})) + 20 // sizeof(struct arphdr) + Ethernet/IPv4 addresses
	SizeofLoopback = 4                                    // DLT_NULL/DLT_LOOP address family
)

// MaxVLANs is the deepest tag stack that is walked (802.1ad + 802.1Q).
const MaxVLANs = 2

var (
	ErrPacketTooShort         = errors.New("packet too short")
	ErrPacketInvalidIPHeader  = errors.New("invalid ip header")
	ErrPacketInvalidTCPHeader = errors.New("invalid tcp header")
	ErrPacketInvalidTCPFlags  = errors.New("invalid tcp flags")
	ErrUnsupportedLinkType    = errors.New("unsupported link type")
)

// BSD style address families found in DLT_NULL/DLT_LOOP headers.
const (
	loopbackFamilyIPv4       = 2
	loopbackFamilyIPv6BSD    = 24
	loopbackFamilyIPv6BSDAlt = 28
	loopbackFamilyIPv6Darwin = 30
)

// Packet is the classification of one frame. HeaderType is the deepest
// layer decoded completely; the other fields are valid up to that layer.
type Packet struct {
	HeaderType enums.HeaderType
	LinkType   enums.LinkType

	// L2
	EthType       enums.EthernetType
	VLANs         uint8
	VLANIDs       [MaxVLANs]uint16
	SLLPacketType enums.LinuxSLLPacketType

	// L3
	IPProtocol enums.IPProtocol
	SrcIP      netip.Addr
	DstIP      netip.Addr
	Fragment   bool

	// L4
	L4Proto  enums.L4Protocol
	SrcPort  uint16
	DstPort  uint16
	TCPFlags enums.TCPFlags
	ICMPType uint8
	ICMPCode uint8

	// L7
	L7Proto enums.L7Protocol

	L2Len uint16
	L3Len uint16
	L4Len uint16

	RxData []byte // Raw frame (read only)

	// Bytes carried beyond the Ethernet/IPv4 baseline of the size table:
	// VLAN tags, non-Ethernet link headers, IPv4 options, IPv6 headers.
	optSize int
	// End of the IP datagram within RxData, excluding link layer padding.
	l3End int
}

var emptyPacket = Packet{}

func (pkt *Packet) Clear() {
	*pkt = emptyPacket
}

// Payload returns the bytes after the deepest decoded header, up to the
// end of the IP datagram when one was decoded.
func (pkt *Packet) Payload() []byte {
	return pkt.payloadFrom(int(pkt.L2Len) + int(pkt.L3Len) + int(pkt.L4Len))
}

func (pkt *Packet) payloadFrom(off int) []byte {
	end := len(pkt.RxData)
	if pkt.l3End > 0 {
		end = pkt.l3End
	}
	if off >= end {
		return nil
	}
	return pkt.RxData[off:end]
}

// setL3End bounds the datagram by its length field. Lengths that disagree
// with the captured data are ignored.
func (pkt *Packet) setL3End(start, length int) {
	if length > 0 && start+length <= len(pkt.RxData) {
		pkt.l3End = start + length
	}
}

func (pkt *Packet) fits(ht enums.HeaderType) bool {
	return len(pkt.RxData) >= ht.MinPacketSize()+pkt.optSize
}

// DecodeFromData classifies data captured on a link of the given type.
// Unknown ethertypes and IP protocols are not errors, decoding just stops
// at the last recognised layer. ErrPacketInvalidTCPFlags is returned after
// the packet is fully populated.
func (pkt *Packet) DecodeFromData(data []byte, linkType enums.LinkType) error {
	pkt.RxData = data
	pkt.LinkType = linkType

	switch linkType {
	case enums.LinkTypeEthernet:
		return pkt.DecodePacketEthernet()
	case enums.LinkTypeLinuxSLL:
		return pkt.DecodePacketLinuxSLL()
	case enums.LinkTypeRaw, enums.LinkTypeIPv4, enums.LinkTypeIPv6:
		return pkt.DecodePacketRawIP()
	case enums.LinkTypeNull, enums.LinkTypeLoop:
		return pkt.DecodePacketLoopback()
	default:
		return errors.Wrapf(ErrUnsupportedLinkType, "%s", linkType)
	}
}

func (pkt *Packet) setL2(l2Len int) bool {
	pkt.L2Len = uint16(l2Len)
	pkt.optSize = l2Len - SizeofEthernet
	if !pkt.fits(enums.HeaderTypeEth) {
		return false
	}
	pkt.HeaderType = enums.HeaderTypeEth
	return true
}

func (pkt *Packet) DecodePacketEthernet() error {
	if !pkt.setL2(SizeofEthernet) {
		return ErrPacketTooShort
	}

	eth := DataPtrEthHeader(pkt.RxData, 0)
	return pkt.decodeEthernetType(enums.EthernetType(netutil.Ntohs(eth.HwProto)))
}

func (pkt *Packet) DecodePacketLinuxSLL() error {
	if !pkt.setL2(SizeofLinuxSLL) {
		return ErrPacketTooShort
	}

	sll := DataPtrLinuxSLLHeader(pkt.RxData, 0)
	pkt.SLLPacketType = enums.LinuxSLLPacketType(netutil.Ntohs(sll.PacketType))
	return pkt.decodeEthernetType(enums.EthernetType(netutil.Ntohs(sll.Proto)))
}

func (pkt *Packet) DecodePacketRawIP() error {
	if len(pkt.RxData) == 0 || !pkt.setL2(0) {
		return ErrPacketTooShort
	}

	version := pkt.RxData[0] >> 4
	switch {
	case pkt.LinkType == enums.LinkTypeIPv4 || (pkt.LinkType == enums.LinkTypeRaw && version == 4):
		pkt.EthType = enums.EthernetTypeIPv4
		return pkt.DecodePacketIPv4()
	case pkt.LinkType == enums.LinkTypeIPv6 || (pkt.LinkType == enums.LinkTypeRaw && version == 6):
		pkt.EthType = enums.EthernetTypeIPv6
		return pkt.DecodePacketIPv6()
	default:
		return ErrPacketInvalidIPHeader
	}
}

func (pkt *Packet) DecodePacketLoopback() error {
	if len(pkt.RxData) < SizeofLoopback || !pkt.setL2(SizeofLoopback) {
		return ErrPacketTooShort
	}

	family := binary.BigEndian.Uint32(pkt.RxData)
	// DLT_NULL is in the byte order of the capturing host.
	if pkt.LinkType == enums.LinkTypeNull && family&0xffff0000 != 0 {
		family = bits.ReverseBytes32(family)
	}

	switch family {
	case loopbackFamilyIPv4:
		pkt.EthType = enums.EthernetTypeIPv4
		return pkt.DecodePacketIPv4()
	case loopbackFamilyIPv6BSD, loopbackFamilyIPv6BSDAlt, loopbackFamilyIPv6Darwin:
		pkt.EthType = enums.EthernetTypeIPv6
		return pkt.DecodePacketIPv6()
	default:
		pkt.EthType = enums.EthernetTypeUnknown
		return nil
	}
}

func (pkt *Packet) decodeEthernetType(ethType enums.EthernetType) error {
	for ethType.IsVLAN() && pkt.VLANs < MaxVLANs {
		off := int(pkt.L2Len)
		if len(pkt.RxData) < off+SizeofVLAN {
			return ErrPacketTooShort
		}

		vlan := DataPtrVLANHeader(pkt.RxData, off)
		pkt.VLANIDs[pkt.VLANs] = netutil.Ntohs(vlan.TCI) & vlanIDMask
		pkt.VLANs++
		pkt.L2Len += uint16(SizeofVLAN)
		pkt.optSize += SizeofVLAN
		ethType = enums.EthernetType(netutil.Ntohs(vlan.EncapsulatedProto))
	}

	// A type field below 0x0600 is an 802.3 length, tagged or not.
	if ethType < ethernetMinType {
		pkt.EthType = enums.EthernetTypeLLC
		return nil
	}

	pkt.EthType = enums.EthernetTypeFrom(uint16(ethType))
	switch pkt.EthType {
	case enums.EthernetTypeARP:
		return pkt.DecodePacketARP()
	case enums.EthernetTypeIPv4:
		return pkt.DecodePacketIPv4()
	case enums.EthernetTypeIPv6:
		return pkt.DecodePacketIPv6()
	default:
		return nil
	}
}

func (pkt *Packet) DecodePacketARP() error {
	if !pkt.fits(enums.HeaderTypeARP) {
		return ErrPacketTooShort
	}

	pkt.HeaderType = enums.HeaderTypeARP
	pkt.L3Len = uint16(SizeofARP)

	arp := DataPtrARPHeader(pkt.RxData, int(pkt.L2Len))
	if arp.HwAddrLen == 6 && arp.ProtAddrLen == 4 {
		addrs := pkt.RxData[int(pkt.L2Len)+SizeofARP-20:]
		pkt.SrcIP = netip.AddrFrom4([4]byte(addrs[6:10]))
		pkt.DstIP = netip.AddrFrom4([4]byte(addrs[16:20]))
	}
	return nil
}

func (pkt *Packet) DecodePacketIPv4() error {
	if !pkt.fits(enums.HeaderTypeIPv4) {
		return ErrPacketTooShort
	}

	off := int(pkt.L2Len)
	ip := DataPtrIPv4Header(pkt.RxData, off)
	hdrLen := int(ip.HeaderLen())
	if ip.Version() != 4 || hdrLen < SizeofIPv4 {
		return ErrPacketInvalidIPHeader
	}

	pkt.optSize += hdrLen - SizeofIPv4
	if !pkt.fits(enums.HeaderTypeIPv4) {
		return ErrPacketTooShort
	}

	pkt.HeaderType = enums.HeaderTypeIPv4
	pkt.L3Len = uint16(hdrLen)
	pkt.IPProtocol = enums.IPProtocolFrom(ip.Protocol)
	pkt.SrcIP = netip.AddrFrom4(ip.SrcIP)
	pkt.DstIP = netip.AddrFrom4(ip.DstIP)
	if totLen := int(netutil.Ntohs(ip.Len)); totLen >= hdrLen {
		pkt.setL3End(off, totLen)
	}

	if netutil.Ntohs(ip.FragOff)&ipv4FragOffsetMask != 0 {
		pkt.Fragment = true
		return nil
	}
	return pkt.decodeTransport(off+hdrLen, false)
}

func (pkt *Packet) DecodePacketIPv6() error {
	pkt.optSize += SizeofIPv6 - SizeofIPv4
	if !pkt.fits(enums.HeaderTypeIPv6) {
		return ErrPacketTooShort
	}

	off := int(pkt.L2Len)
	ip := DataPtrIPv6Header(pkt.RxData, off)
	if ip.Version() != 6 {
		return ErrPacketInvalidIPHeader
	}

	pkt.HeaderType = enums.HeaderTypeIPv6
	pkt.L3Len = uint16(SizeofIPv6)
	pkt.SrcIP = netip.AddrFrom16(ip.SrcIP)
	pkt.DstIP = netip.AddrFrom16(ip.DstIP)
	pkt.setL3End(off, SizeofIPv6+int(netutil.Ntohs(ip.PayloadLen)))

	next := enums.IPProtocol(ip.NextHeader)
	off += SizeofIPv6
	for i := 0; i < maxIPv6ExtHeaders; i++ {
		var extLen int
		switch next {
		case enums.IPProtocolIPv6HopByHop, enums.IPProtocolIPv6Routing, enums.IPProtocolIPv6Destination:
			if len(pkt.RxData) < off+2 {
				return ErrPacketTooShort
			}
			ext := DataPtr[IPv6ExtHeader](pkt.RxData, off)
			extLen = (int(ext.HdrExtLen) + 1) * 8
		case enums.IPProtocolIPv6Fragment:
			if len(pkt.RxData) < off+sizeofIPv6FragHeader {
				return ErrPacketTooShort
			}
			if binary.BigEndian.Uint16(pkt.RxData[off+2:])&ipv6FragOffsetMask != 0 {
				pkt.Fragment = true
			}
			extLen = sizeofIPv6FragHeader
		default:
			pkt.IPProtocol = enums.IPProtocolFrom(uint8(next))
			if pkt.Fragment {
				return nil
			}
			return pkt.decodeTransport(off, true)
		}

		if len(pkt.RxData) < off+extLen {
			return ErrPacketTooShort
		}
		next = enums.IPProtocol(pkt.RxData[off])
		off += extLen
		pkt.L3Len += uint16(extLen)
		pkt.optSize += extLen
	}

	// Too many extension headers to reach the transport layer.
	pkt.IPProtocol = enums.IPProtocolFrom(uint8(next))
	return nil
}

func (pkt *Packet) decodeTransport(off int, ipv6 bool) error {
	pkt.L4Proto = pkt.IPProtocol.L4Protocol()

	switch pkt.IPProtocol {
	case enums.IPProtocolTCP:
		ht := enums.HeaderTypeIPv4TCP
		if ipv6 {
			ht = enums.HeaderTypeIPv6TCP
		}
		return pkt.DecodePacketTCP(off, ht)
	case enums.IPProtocolUDP:
		ht := enums.HeaderTypeIPv4UDP
		if ipv6 {
			ht = enums.HeaderTypeIPv6UDP
		}
		return pkt.DecodePacketUDP(off, ht)
	case enums.IPProtocolICMPv4:
		if ipv6 {
			return nil
		}
		return pkt.DecodePacketICMP(off)
	default:
		return nil
	}
}

func (pkt *Packet) DecodePacketTCP(off int, ht enums.HeaderType) error {
	if !pkt.fits(ht) {
		return ErrPacketTooShort
	}

	tcp := DataPtrTCPHeader(pkt.RxData, off)
	hdrLen := int(tcp.HeaderLen())
	if hdrLen < SizeofTCP {
		return ErrPacketInvalidTCPHeader
	}
	if len(pkt.RxData) < off+hdrLen {
		return ErrPacketTooShort
	}

	pkt.HeaderType = ht
	pkt.L4Len = uint16(hdrLen)
	pkt.SrcPort = netutil.Ntohs(tcp.SrcPort)
	pkt.DstPort = netutil.Ntohs(tcp.DstPort)
	pkt.TCPFlags = tcp.Flags
	pkt.DecodePacketL7(pkt.payloadFrom(off + hdrLen))

	if pkt.TCPFlags.IsInvalid() {
		return ErrPacketInvalidTCPFlags
	}
	return nil
}

func (pkt *Packet) DecodePacketUDP(off int, ht enums.HeaderType) error {
	if !pkt.fits(ht) {
		return ErrPacketTooShort
	}

	udp := DataPtrUDPHeader(pkt.RxData, off)
	pkt.HeaderType = ht
	pkt.L4Len = uint16(SizeofUDP)
	pkt.SrcPort = netutil.Ntohs(udp.SrcPort)
	pkt.DstPort = netutil.Ntohs(udp.DstPort)
	pkt.DecodePacketL7(pkt.payloadFrom(off + SizeofUDP))
	return nil
}

func (pkt *Packet) DecodePacketICMP(off int) error {
	if !pkt.fits(enums.HeaderTypeIPv4ICMP) {
		return ErrPacketTooShort
	}

	icmp := DataPtrICMPHeader(pkt.RxData, off)
	pkt.ICMPType = icmp.Type
	pkt.ICMPCode = icmp.Code
	pkt.HeaderType = enums.HeaderTypeIPv4ICMP
	pkt.L4Len = uint16(SizeofICMP)
	return nil
}

// NewPacket allocates a packet and decodes data into it.
func NewPacket(data []byte, linkType enums.LinkType) (*Packet, error) {
	pkt := &Packet{}
	return pkt, pkt.DecodeFromData(data, linkType)
}
