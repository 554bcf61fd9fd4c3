package stats

import (
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/zxhio/pktclass/pkg/enums"
	"github.com/zxhio/pktclass/pkg/fastpkt"
)

// Counter accumulates classification results. It is safe for concurrent
// use by multiple decoders.
type Counter struct {
	packets        atomic.Uint64
	bytes          atomic.Uint64
	truncated      atomic.Uint64
	invalidIP      atomic.Uint64
	invalidTCP     atomic.Uint64
	invalidFlags   atomic.Uint64
	unsupported    atomic.Uint64
	fragments      atomic.Uint64
	headerTypes    [256]atomic.Uint64
	l7Protocols    [256]atomic.Uint64
	unknownEthType atomic.Uint64
}

func NewCounter() *Counter { return &Counter{} }

// Observe records one decoded packet and the error DecodeFromData
// returned for it.
func (c *Counter) Observe(pkt *fastpkt.Packet, err error) {
	c.packets.Add(1)
	c.bytes.Add(uint64(len(pkt.RxData)))
	c.headerTypes[pkt.HeaderType].Add(1)

	if pkt.HeaderType.IsL4() {
		c.l7Protocols[pkt.L7Proto].Add(1)
	}
	if pkt.Fragment {
		c.fragments.Add(1)
	}
	if pkt.HeaderType == enums.HeaderTypeEth && pkt.EthType == enums.EthernetTypeUnknown {
		c.unknownEthType.Add(1)
	}

	switch {
	case err == nil:
	case errors.Is(err, fastpkt.ErrPacketTooShort):
		c.truncated.Add(1)
	case errors.Is(err, fastpkt.ErrPacketInvalidIPHeader):
		c.invalidIP.Add(1)
	case errors.Is(err, fastpkt.ErrPacketInvalidTCPHeader):
		c.invalidTCP.Add(1)
	case errors.Is(err, fastpkt.ErrPacketInvalidTCPFlags):
		c.invalidFlags.Add(1)
	case errors.Is(err, fastpkt.ErrUnsupportedLinkType):
		c.unsupported.Add(1)
	}
}

func (c *Counter) Snapshot() Statistics {
	s := Statistics{
		Packets:          c.packets.Load(),
		Bytes:            c.bytes.Load(),
		Truncated:        c.truncated.Load(),
		InvalidIPHeader:  c.invalidIP.Load(),
		InvalidTCPHeader: c.invalidTCP.Load(),
		InvalidTCPFlags:  c.invalidFlags.Load(),
		UnsupportedLink:  c.unsupported.Load(),
		Fragments:        c.fragments.Load(),
		UnknownEthernet:  c.unknownEthType.Load(),
		HeaderTypes:      make(map[enums.HeaderType]uint64),
		L7Protocols:      make(map[enums.L7Protocol]uint64),
		Timestamp:        time.Now(),
	}

	for i := range c.headerTypes {
		if n := c.headerTypes[i].Load(); n > 0 {
			s.HeaderTypes[enums.HeaderType(i)] = n
		}
	}
	for i := range c.l7Protocols {
		if n := c.l7Protocols[i].Load(); n > 0 {
			s.L7Protocols[enums.L7Protocol(i)] = n
		}
	}
	return s
}

type Statistics struct {
	Packets          uint64                      `json:"packets"`
	Bytes            uint64                      `json:"bytes"`
	Truncated        uint64                      `json:"truncated"`
	InvalidIPHeader  uint64                      `json:"invalid_ip_header"`
	InvalidTCPHeader uint64                      `json:"invalid_tcp_header"`
	InvalidTCPFlags  uint64                      `json:"invalid_tcp_flags"`
	UnsupportedLink  uint64                      `json:"unsupported_link"`
	Fragments        uint64                      `json:"fragments"`
	UnknownEthernet  uint64                      `json:"unknown_ethertype"`
	HeaderTypes      map[enums.HeaderType]uint64 `json:"header_types"`
	L7Protocols      map[enums.L7Protocol]uint64 `json:"l7_protocols"`
	Timestamp        time.Time                   `json:"timestamp"` // Get statistics time
}

// Errors is the number of packets DecodeFromData rejected.
func (s Statistics) Errors() uint64 {
	return s.Truncated + s.InvalidIPHeader + s.InvalidTCPHeader + s.InvalidTCPFlags + s.UnsupportedLink
}

type StatisticsRate struct {
	PPS   float64 `json:"pps"`    // Packets Per Second
	BPS   float64 `json:"bps"`    // Bits Per Second
	ErrPS float64 `json:"err_ps"` // Errors Per Second
}

func (s Statistics) Rate(prev Statistics) StatisticsRate {
	period := float64(s.Timestamp.Sub(prev.Timestamp)) / float64(time.Second)
	if period <= 0.0 {
		return StatisticsRate{}
	}

	perSecond := func(prev, curr uint64) float64 {
		return float64(curr-prev) / period
	}
	return StatisticsRate{
		PPS:   perSecond(prev.Packets, s.Packets),
		BPS:   perSecond(prev.Bytes*8, s.Bytes*8),
		ErrPS: perSecond(prev.Errors(), s.Errors()),
	}
}
