package fastpkt

// <linux/if_ether.h>
//
//	struct ethhdr {
//	    unsigned char h_dest[6];
//	    unsigned char h_source[6];
//	    __be16 h_proto;
//	};

type EthHeader struct {
	HwDest   [6]byte
	HwSource [6]byte
	HwProto  uint16
}

// Values of h_proto below this are 802.3 length fields.
const ethernetMinType = 0x0600

// <linux/if_vlan.h>
//
//	struct vlan_hdr {
//	    __be16 h_vlan_TCI;
//	    __be16 h_vlan_encapsulated_proto;
//	};

type VLANHeader struct {
	TCI               uint16
	EncapsulatedProto uint16
}

const vlanIDMask = 0x0fff

// <linux/if_arp.h>
//
// struct arphdr {
//     __be16 ar_hrd;        /* format of hardware address	*/
//     __be16 ar_pro;        /* format of protocol address	*/
//     unsigned char ar_hln; /* length of hardware address	*/
//     unsigned char ar_pln; /* length of protocol address	*/
//     __be16 ar_op;         /* ARP opcode (command)		*/
// };
//
// Followed by sender/target hardware and protocol addresses, 28 bytes in
// total for Ethernet/IPv4.

type ARPHeader struct {
	HwAddrType   uint16
	ProtAddrType uint16
	HwAddrLen    uint8
	ProtAddrLen  uint8
	Operation    uint16
}

// Linux cooked capture header (DLT_LINUX_SLL)
//
//	struct sll_header {
//	    uint16_t sll_pkttype;
//	    uint16_t sll_hatype;
//	    uint16_t sll_halen;
//	    uint8_t  sll_addr[8];
//	    uint16_t sll_protocol;
//	};

type LinuxSLLHeader struct {
	PacketType uint16
	HwAddrType uint16
	HwAddrLen  uint16
	HwAddr     [8]byte
	Proto      uint16
}
