package fastpkt

import (
	"bytes"
	"encoding/binary"

	"github.com/zxhio/pktclass/pkg/enums"
)

const (
	// HTTP method (Little-Endian)
	methodMagicGet     uint32 = 0x20544547 // "GET "
	methodMagicPost    uint32 = 0x54534f50 // "POST"
	methodMagicPut     uint32 = 0x20545550 // "PUT "
	methodMagicDelete  uint32 = 0x454c4544 // "DELE" (DELETE)
	methodMagicHead    uint32 = 0x44414548 // "HEAD"
	methodMagicOptions uint32 = 0x4954504f // "OPTI" (OPTIONS)
	methodMagicPatch   uint32 = 0x43544150 // "PATC" (PATCH)
	methodMagicConnect uint32 = 0x4e4e4f43 // "CONN" (CONNECT)
	methodMagicTrace   uint32 = 0x43415254 // "TRAC" (TRACE)
	methodMagicHTTP    uint32 = 0x50545448 // "HTTP" (response status line)
)

// Client connection preface, RFC 9113 section 3.4.
var http2Preface = []byte("PRI * HTTP/2.0\r\n\r\nSM\r\n\r\n")

const portDNS = 53

func isHTTP1Magic(payload []byte) bool {
	if len(payload) < 4 {
		return false
	}

	switch binary.LittleEndian.Uint32(payload) {
	case methodMagicGet, methodMagicPost, methodMagicPut, methodMagicDelete, methodMagicHead,
		methodMagicOptions, methodMagicPatch, methodMagicConnect, methodMagicTrace, methodMagicHTTP:
		return true
	}
	return false
}

func isHTTP2Preface(payload []byte) bool {
	// A segment may carry only the first part of the preface.
	n := min(len(payload), len(http2Preface))
	return n >= 4 && bytes.Equal(payload[:n], http2Preface[:n])
}

// DecodePacketL7 guesses the application protocol carried by payload. Only
// protocols applicable to the packet's IP protocol are considered.
func (pkt *Packet) DecodePacketL7(payload []byte) {
	if len(payload) == 0 {
		pkt.L7Proto = enums.L7ProtocolUnknown
		return
	}

	candidates := pkt.IPProtocol.L7Bitmap()
	switch {
	case candidates.Has(enums.L7ProtocolHTTP2) && isHTTP2Preface(payload):
		pkt.L7Proto = enums.L7ProtocolHTTP2
	case candidates.Has(enums.L7ProtocolHTTP1) && isHTTP1Magic(payload):
		pkt.L7Proto = enums.L7ProtocolHTTP1
	case candidates.Has(enums.L7ProtocolDNS) && (pkt.SrcPort == portDNS || pkt.DstPort == portDNS):
		pkt.L7Proto = enums.L7ProtocolDNS
	default:
		pkt.L7Proto = enums.L7ProtocolOther
	}
}
