package fastpkt

import (
	"fmt"
	"strings"
	"time"

	"github.com/zxhio/pktclass/pkg/enums"
)

type formatOpts struct {
	showLink bool
	ts       time.Time
}

type FormatOpt func(*formatOpts)

// WithFormatLink prefixes the summary with link layer details.
func WithFormatLink() FormatOpt {
	return func(o *formatOpts) { o.showLink = true }
}

// WithFormatTime prefixes the summary with a tcpdump style timestamp.
func WithFormatTime(t time.Time) FormatOpt {
	return func(o *formatOpts) { o.ts = t }
}

type FormatDelimiter string

const (
	FormatDelimiterSpace FormatDelimiter = " "
	FormatDelimiterComma FormatDelimiter = ", "
	FormatDelimiterColon FormatDelimiter = ": "
)

func FormatDumpTime(t time.Time) string {
	return t.Local().Format("15:04:05.000000")
}

// Ethernet, vlan [10 20], ethertype IPv4
// LinuxSLL Outgoing, ethertype IPv6
func formatLink(pkt *Packet) string {
	var b strings.Builder
	b.WriteString(pkt.LinkType.String())
	if pkt.LinkType == enums.LinkTypeLinuxSLL {
		b.WriteString(" ")
		b.WriteString(pkt.SLLPacketType.String())
	}
	if pkt.VLANs > 0 {
		fmt.Fprintf(&b, ", vlan %v", pkt.VLANIDs[:pkt.VLANs])
	}
	fmt.Fprintf(&b, ", ethertype %s", pkt.EthType)
	return b.String()
}

func formatEndpoint(pkt *Packet, withPort bool) string {
	if withPort {
		return fmt.Sprintf("%s.%d > %s.%d", pkt.SrcIP, pkt.SrcPort, pkt.DstIP, pkt.DstPort)
	}
	return fmt.Sprintf("%s > %s", pkt.SrcIP, pkt.DstIP)
}

// IPv4 10.0.0.1.80 > 10.0.0.2.1234: TCP Flags [SYN|ACK], hdr IPv4TCP
// IPv4 10.0.0.1 > 10.0.0.2: ICMPv4 type 8 code 0, hdr IPv4ICMP
// IPv6 fe80::1.5353 > ff02::fb.5353: UDP, l7 DNS, hdr IPv6UDP
// ARP 10.0.0.1 > 10.0.0.2, hdr ARP
// ethertype LinkLayerDiscovery, hdr Eth
func formatLayers(pkt *Packet) string {
	var b strings.Builder

	switch {
	case pkt.HeaderType == enums.HeaderTypeARP:
		fmt.Fprintf(&b, "ARP %s", formatEndpoint(pkt, false))
	case pkt.HeaderType.IsL4():
		fmt.Fprintf(&b, "%s %s: %s", pkt.EthType, formatEndpoint(pkt, true), pkt.IPProtocol)
		if pkt.IPProtocol == enums.IPProtocolTCP {
			fmt.Fprintf(&b, " Flags [%s]", pkt.TCPFlags)
		}
	case pkt.HeaderType.IsL3():
		fmt.Fprintf(&b, "%s %s: %s", pkt.EthType, formatEndpoint(pkt, false), pkt.IPProtocol)
		if pkt.HeaderType == enums.HeaderTypeIPv4ICMP {
			fmt.Fprintf(&b, " type %d code %d", pkt.ICMPType, pkt.ICMPCode)
		}
		if pkt.Fragment {
			b.WriteString(" frag")
		}
	case pkt.HeaderType.IsL2():
		fmt.Fprintf(&b, "ethertype %s", pkt.EthType)
	default:
		b.WriteString("undecoded")
	}

	if pkt.L7Proto != enums.L7ProtocolUnknown {
		fmt.Fprintf(&b, ", l7 %s", pkt.L7Proto)
	}
	fmt.Fprintf(&b, ", hdr %s", pkt.HeaderType)
	return b.String()
}

// Format renders a one line summary of a classified packet.
func Format(pkt *Packet, opts ...FormatOpt) string {
	var o formatOpts
	for _, opt := range opts {
		opt(&o)
	}

	var b strings.Builder
	if !o.ts.IsZero() {
		b.WriteString(FormatDumpTime(o.ts))
		b.WriteString(string(FormatDelimiterSpace))
	}
	if o.showLink && pkt.HeaderType.IsL2() {
		b.WriteString(formatLink(pkt))
		b.WriteString(string(FormatDelimiterColon))
	}
	b.WriteString(formatLayers(pkt))
	b.WriteString(string(FormatDelimiterComma))
	fmt.Fprintf(&b, "length %d", len(pkt.RxData))
	return b.String()
}
