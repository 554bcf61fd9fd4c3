package enums

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrUnmappedCode is matched by every *ConversionError.
var ErrUnmappedCode = errors.New("unmapped code")

// ConversionError reports a numeric code that has no symbolic value in a
// family without an Unknown fallback (LinkType, IfType, TapType).
type ConversionError struct {
	Family string
	Code   uint32
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("%s: %s %d (0x%x)", e.Family, ErrUnmappedCode, e.Code, e.Code)
}

func (e *ConversionError) Is(target error) bool { return target == ErrUnmappedCode }

func newConversionError(family string, code uint32) error {
	return &ConversionError{Family: family, Code: code}
}
