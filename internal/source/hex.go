package source

import (
	"encoding/hex"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/zxhio/pktclass/pkg/enums"
)

// HexSource replays hex encoded frames, e.g. copied from a packet dump.
type HexSource struct {
	linkType enums.LinkType
	frames   [][]byte
	next     int
}

// NewHexSource decodes every frame up front so a typo fails before any
// frame is classified. Whitespace and ':' separators are ignored.
func NewHexSource(linkType enums.LinkType, frames ...string) (*HexSource, error) {
	s := &HexSource{linkType: linkType, frames: make([][]byte, 0, len(frames))}
	for i, frame := range frames {
		data, err := DecodeHex(frame)
		if err != nil {
			return nil, errors.Wrapf(err, "frame %d", i)
		}
		s.frames = append(s.frames, data)
	}
	return s, nil
}

func DecodeHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r', ':':
			return -1
		}
		return r
	}, s)

	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, errors.Wrap(err, "hex.DecodeString")
	}
	return data, nil
}

func (s *HexSource) LinkType() enums.LinkType { return s.linkType }

func (s *HexSource) Next() (Frame, error) {
	if s.next >= len(s.frames) {
		return Frame{}, io.EOF
	}
	data := s.frames[s.next]
	s.next++
	return Frame{Data: data, LinkType: s.linkType}, nil
}

func (s *HexSource) Close() error { return nil }
