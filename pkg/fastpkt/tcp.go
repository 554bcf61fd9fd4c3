package fastpkt

import "github.com/zxhio/pktclass/pkg/enums"

// <linux/tcp.h>
//
// struct tcphdr {
// 	__be16	source;
// 	__be16	dest;
// 	__be32	seq;
// 	__be32	ack_seq;
// 	__u16	doff:4, res1:4, cwr:1, ece:1, urg:1, ack:1, psh:1, rst:1, syn:1, fin:1;
// 	__be16	window;
// 	__sum16	check;
// 	__be16	urg_ptr;
// };

type TCPHeader struct {
	SrcPort uint16
	DstPort uint16
	Seq     uint32
	AckSeq  uint32
	DataOff uint8          // 4 bits header length, 4 bits reserved
	Flags   enums.TCPFlags // fin, syn, rst, psh, ack, urg, ece, cwr
	Window  uint16
	Check   uint16
	UrgPtr  uint16
}

func (tcp *TCPHeader) HeaderLen() uint8 {
	return (tcp.DataOff >> 4) * 4
}

// <linux/udp.h>
//
// struct udphdr {
//     __be16 source;
//     __be16 dest;
//     __be16 len;
//     __sum16 check;
// };

type UDPHeader struct {
	SrcPort uint16
	DstPort uint16
	Length  uint16
	Check   uint16
}

// <linux/icmp.h>, echo variant of the union.

type ICMPHeader struct {
	Type     uint8
	Code     uint8
	Checksum uint16
	ID       uint16
	Seq      uint16
}
