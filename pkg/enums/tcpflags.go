package enums

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// TCPFlags is the flag byte of a TCP header.
type TCPFlags uint8

const (
	TCPFlagFIN TCPFlags = 1 << iota
	TCPFlagSYN
	TCPFlagRST
	TCPFlagPSH
	TCPFlagACK
	TCPFlagURG
	TCPFlagECE
	TCPFlagCWR

	// TCPFlagsMask keeps FIN..URG. ECE and CWR are ignored by validation.
	TCPFlagsMask TCPFlags = 0x3F

	TCPFlagsSYNACK    = TCPFlagSYN | TCPFlagACK
	TCPFlagsFINACK    = TCPFlagFIN | TCPFlagACK
	TCPFlagsFINPSHACK = TCPFlagFIN | TCPFlagPSH | TCPFlagACK
	TCPFlagsRSTACK    = TCPFlagRST | TCPFlagACK
	TCPFlagsRSTPSHACK = TCPFlagRST | TCPFlagPSH | TCPFlagACK
	TCPFlagsPSHACK    = TCPFlagPSH | TCPFlagACK
	TCPFlagsPSHACKURG = TCPFlagPSH | TCPFlagACK | TCPFlagURG
)

// Combinations a conforming stack may emit, after masking.
var tcpFlagsValid = [TCPFlagsMask + 1]bool{
	TCPFlagSYN:        true,
	TCPFlagsSYNACK:    true,
	TCPFlagFIN:        true,
	TCPFlagsFINACK:    true,
	TCPFlagsFINPSHACK: true,
	TCPFlagRST:        true,
	TCPFlagsRSTACK:    true,
	TCPFlagsRSTPSHACK: true,
	TCPFlagACK:        true,
	TCPFlagsPSHACK:    true,
	TCPFlagsPSHACKURG: true,
}

var tcpFlagNames = [...]struct {
	flag TCPFlags
	name string
}{
	{TCPFlagFIN, "FIN"},
	{TCPFlagSYN, "SYN"},
	{TCPFlagRST, "RST"},
	{TCPFlagPSH, "PSH"},
	{TCPFlagACK, "ACK"},
	{TCPFlagURG, "URG"},
}

func (flags *TCPFlags) Set(flag TCPFlags)   { *flags |= flag }
func (flags *TCPFlags) Clear(flag TCPFlags) { *flags &= ^flag }

// Has reports whether any bit of flag is set.
func (flags TCPFlags) Has(flag TCPFlags) bool { return flags&flag != 0 }

// Contains reports whether every bit of flag is set.
func (flags TCPFlags) Contains(flag TCPFlags) bool { return flags&flag == flag }

// IsInvalid is a plausibility filter, not a state check: it reports
// whether the masked flags are outside the combinations a well-formed
// segment presents.
func (flags TCPFlags) IsInvalid() bool {
	return !tcpFlagsValid[flags&TCPFlagsMask]
}

// String lists set flags in FIN, SYN, RST, PSH, ACK, URG order joined by
// "|". No flags renders as "".
func (flags TCPFlags) String() string {
	var b strings.Builder
	for _, f := range tcpFlagNames {
		if flags&f.flag == 0 {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('|')
		}
		b.WriteString(f.name)
	}
	return b.String()
}

func (flags TCPFlags) MarshalJSON() ([]byte, error) {
	return json.Marshal(flags.String())
}

var tcpFlagsByName = map[string]TCPFlags{
	"FIN": TCPFlagFIN,
	"SYN": TCPFlagSYN,
	"RST": TCPFlagRST,
	"PSH": TCPFlagPSH,
	"ACK": TCPFlagACK,
	"URG": TCPFlagURG,
	"ECE": TCPFlagECE,
	"CWR": TCPFlagCWR,
}

// ParseTCPFlags accepts a number ("0x12", "18") or flag names joined by
// '|' or ',' ("SYN|ACK").
func ParseTCPFlags(s string) (TCPFlags, error) {
	if v, err := strconv.ParseUint(s, 0, 8); err == nil {
		return TCPFlags(v), nil
	}

	var flags TCPFlags
	for _, name := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		flag, ok := tcpFlagsByName[strings.ToUpper(strings.TrimSpace(name))]
		if !ok {
			return 0, errors.Errorf("invalid tcp flag %q", name)
		}
		flags |= flag
	}
	if flags == 0 {
		return 0, errors.Errorf("invalid tcp flags %q", s)
	}
	return flags, nil
}
