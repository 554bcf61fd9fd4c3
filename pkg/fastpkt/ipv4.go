package fastpkt

// <linux/ip.h>
//
// struct iphdr {
// #if defined(__LITTLE_ENDIAN_BITFIELD)
//     unsigned int ihl : 4, version : 4;
// #elif defined(__BIG_ENDIAN_BITFIELD)
//     unsigned int version : 4, ihl : 4;
// #endif
//     __u8 tos;
//     __be16 tot_len;
//     __be16 id;
//     __be16 frag_off;
//     __u8 ttl;
//     __u8 protocol;
//     __u16 check;
//     __be32 saddr;
//     __be32 daddr;
// };

type IPv4Header struct {
	VerHdrLen uint8  // 4 bits version, 4 bits header length
	TOS       uint8  // type of service
	Len       uint16 // total length
	ID        uint16 // identification
	FragOff   uint16 // 3 bits flags, 13 bits fragment offset
	TTL       uint8  // time to live
	Protocol  uint8  // protocol
	Checksum  uint16 // checksum
	SrcIP     [4]byte
	DstIP     [4]byte
}

const ipv4FragOffsetMask = 0x1fff

func (ip *IPv4Header) Version() uint8 { return ip.VerHdrLen >> 4 }

func (ip *IPv4Header) HeaderLen() uint8 {
	return (ip.VerHdrLen & 0x0f) * 4
}

// <linux/ipv6.h>
//
// struct ipv6hdr {
//     __u8 priority:4, version:4;
//     __u8 flow_lbl[3];
//     __be16 payload_len;
//     __u8 nexthdr;
//     __u8 hop_limit;
//     struct in6_addr saddr;
//     struct in6_addr daddr;
// };

type IPv6Header struct {
	VerTCFlow  [4]byte // 4 bits version, 8 bits traffic class, 20 bits flow label
	PayloadLen uint16
	NextHeader uint8
	HopLimit   uint8
	SrcIP      [16]byte
	DstIP      [16]byte
}

func (ip *IPv6Header) Version() uint8 { return ip.VerTCFlow[0] >> 4 }

// <linux/ipv6.h>
//
// struct ipv6_opt_hdr {
//     __u8 nexthdr;
//     __u8 hdrlen;
// };
//
// struct frag_hdr {
//     __u8 nexthdr;
//     __u8 reserved;
//     __be16 frag_off;
//     __be32 identification;
// };

type IPv6ExtHeader struct {
	NextHeader uint8
	HdrExtLen  uint8 // 8-octet units, not including the first 8 octets
}

const (
	sizeofIPv6FragHeader = 8
	ipv6FragOffsetMask   = 0xfff8
	maxIPv6ExtHeaders    = 8
)
