package enums

import (
	"encoding/json"
	"fmt"
	"math/bits"
	"strings"

	"github.com/pkg/errors"
)

// L7Protocol identifies an application protocol recognised from payload.
//
// Codes are grouped in bands so new protocols fit without renumbering:
// 20s HTTP family, 40s RPC, 60s SQL, 80s NoSQL, 100s messaging, 120s DNS.
type L7Protocol uint8

const (
	L7ProtocolUnknown L7Protocol = 0
	L7ProtocolOther   L7Protocol = 1

	L7ProtocolHTTP1    L7Protocol = 20
	L7ProtocolHTTP2    L7Protocol = 21
	L7ProtocolHTTP1TLS L7Protocol = 22
	L7ProtocolHTTP2TLS L7Protocol = 23

	L7ProtocolDubbo L7Protocol = 40

	L7ProtocolMySQL L7Protocol = 60

	L7ProtocolRedis L7Protocol = 80

	L7ProtocolKafka L7Protocol = 100
	L7ProtocolMQTT  L7Protocol = 101

	L7ProtocolDNS L7Protocol = 120

	// L7ProtocolMax bounds the code space, it is never decoded.
	L7ProtocolMax L7Protocol = 255
)

var l7ProtocolNames = map[L7Protocol]string{
	L7ProtocolUnknown:  "Unknown",
	L7ProtocolOther:    "Other",
	L7ProtocolHTTP1:    "HTTP1",
	L7ProtocolHTTP2:    "HTTP2",
	L7ProtocolHTTP1TLS: "HTTP1TLS",
	L7ProtocolHTTP2TLS: "HTTP2TLS",
	L7ProtocolDubbo:    "Dubbo",
	L7ProtocolMySQL:    "MySQL",
	L7ProtocolRedis:    "Redis",
	L7ProtocolKafka:    "Kafka",
	L7ProtocolMQTT:     "MQTT",
	L7ProtocolDNS:      "DNS",
}

var l7ProtocolTable = newCode8Table(l7ProtocolNames)

// L7ProtocolFrom decodes an L7 code. Unmapped codes, and the Max bound,
// become L7ProtocolUnknown.
func L7ProtocolFrom(code uint8) L7Protocol {
	if _, ok := l7ProtocolTable.lookup(code); ok {
		return L7Protocol(code)
	}
	return L7ProtocolUnknown
}

// L7Protocols returns every decodable L7 protocol, Unknown included.
func L7Protocols() []L7Protocol {
	return sortedKeys(l7ProtocolNames)
}

func (p L7Protocol) String() string {
	if p == L7ProtocolMax {
		return "Max"
	}
	if s, ok := l7ProtocolTable.lookup(uint8(p)); ok {
		return s
	}
	return fmt.Sprintf("L7Protocol(%d)", uint8(p))
}

func (p L7Protocol) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToLower(p.String()))
}

// MarshalText names the protocol when it is used as a json map key.
func (p L7Protocol) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(p.String())), nil
}

func (p *L7Protocol) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return p.Set(s)
}

// Set implements pflag.Value.
func (p *L7Protocol) Set(s string) error {
	v, ok := lookupName(l7ProtocolNames, s)
	if !ok {
		return errors.Errorf("invalid l7 protocol: %s", s)
	}
	*p = v
	return nil
}

func (p *L7Protocol) Type() string { return "l7protocol" }

// L7Bitmap is a set of L7 protocols indexed by their numeric code. It spans
// the whole 8-bit code space.
type L7Bitmap [4]uint64

func (b *L7Bitmap) Set(p L7Protocol)     { b[p>>6] |= 1 << (p & 63) }
func (b *L7Bitmap) Clear(p L7Protocol)   { b[p>>6] &^= 1 << (p & 63) }
func (b L7Bitmap) Has(p L7Protocol) bool { return b[p>>6]&(1<<(p&63)) != 0 }
func (b L7Bitmap) IsEmpty() bool         { return b == L7Bitmap{} }

func (b L7Bitmap) Len() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// Protocols lists the members in ascending code order.
func (b L7Bitmap) Protocols() []L7Protocol {
	protos := make([]L7Protocol, 0, b.Len())
	for i, w := range b {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			protos = append(protos, L7Protocol(i*64+bit))
			w &= w - 1
		}
	}
	return protos
}

func (b L7Bitmap) String() string {
	protos := b.Protocols()
	s := make([]string, len(protos))
	for i, p := range protos {
		s[i] = p.String()
	}
	return strings.Join(s, "|")
}
