package enums

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	tapCodeAny = 0
	tapCodeTor = 3
	tapCodeMax = 256
)

type tapKind uint8

const (
	tapKindAny tapKind = iota
	tapKindISP
	tapKindTor
	tapKindMax
)

// TapType tells where a packet entered the monitored system: anywhere, the
// data-center fabric (Tor), or one of the ISP-facing taps identified by an
// 8-bit number.
//
// Numeric encoding: Any=0, Tor=3, ISP(n)=n for n not in {0, 3}, Max=256.
// The zero value is TapAny.
type TapType struct {
	kind tapKind
	isp  uint8
}

var (
	TapAny = TapType{kind: tapKindAny}
	TapTor = TapType{kind: tapKindTor}
	// TapMax is the exclusive upper bound of the code space.
	TapMax = TapType{kind: tapKindMax}
)

// TapISP returns the ISP tap n. 0 and 3 are reserved for Any and Tor.
func TapISP(n uint8) (TapType, error) {
	if n == tapCodeAny || n == tapCodeTor {
		return TapType{}, errors.Errorf("isp tap %d collides with a reserved tap code", n)
	}
	return TapType{kind: tapKindISP, isp: n}, nil
}

// TapTypeFrom decodes a tap code. Codes >= 256 return a *ConversionError.
func TapTypeFrom(code uint16) (TapType, error) {
	switch {
	case code == tapCodeAny:
		return TapAny, nil
	case code == tapCodeTor:
		return TapTor, nil
	case code < tapCodeMax:
		return TapType{kind: tapKindISP, isp: uint8(code)}, nil
	default:
		return TapType{}, newConversionError("tap type", uint32(code))
	}
}

// Code returns the numeric encoding of t.
func (t TapType) Code() uint16 {
	switch t.kind {
	case tapKindISP:
		return uint16(t.isp)
	case tapKindTor:
		return tapCodeTor
	case tapKindMax:
		return tapCodeMax
	default:
		return tapCodeAny
	}
}

// ISP returns the ISP number and whether t is an ISP tap.
func (t TapType) ISP() (uint8, bool) {
	return t.isp, t.kind == tapKindISP
}

// Compare orders taps by their numeric code.
func (t TapType) Compare(other TapType) int {
	a, b := t.Code(), other.Code()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (t TapType) String() string {
	switch t.kind {
	case tapKindISP:
		return fmt.Sprintf("isp%d", t.isp)
	case tapKindTor:
		return "tor"
	case tapKindMax:
		return "max"
	default:
		return "any"
	}
}

// ParseTapType is the inverse of TapType.String. A bare number is read as
// a tap code.
func ParseTapType(s string) (TapType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "any":
		return TapAny, nil
	case "tor":
		return TapTor, nil
	case "max":
		return TapMax, nil
	}

	if n, ok := strings.CutPrefix(s, "isp"); ok {
		v, err := strconv.ParseUint(n, 10, 8)
		if err != nil {
			return TapType{}, errors.Wrapf(err, "invalid tap type %q", s)
		}
		return TapISP(uint8(v))
	}

	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return TapType{}, errors.Errorf("invalid tap type %q", s)
	}
	return TapTypeFrom(uint16(v))
}

func (t *TapType) Set(s string) error {
	v, err := ParseTapType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func (t *TapType) Type() string { return "taptype" }

func (t TapType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

func (t *TapType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return t.Set(s)
}
