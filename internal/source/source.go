package source

import (
	"time"

	"github.com/zxhio/pktclass/pkg/enums"
)

// Frame is one captured frame and the link layer it was captured on.
type Frame struct {
	Data      []byte
	LinkType  enums.LinkType
	Timestamp time.Time
}

// Source yields frames until it returns io.EOF.
type Source interface {
	// LinkType is the link layer of the first interface of the source.
	LinkType() enums.LinkType
	Next() (Frame, error)
	Close() error
}
