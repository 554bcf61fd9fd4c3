package source

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"io"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcapgo"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/zxhio/pktclass/pkg/enums"
)

var ErrUnknownFileFormat = errors.New("unknown capture file format")

const (
	pcapMagicMicros uint32 = 0xa1b2c3d4
	pcapMagicNanos  uint32 = 0xa1b23c4d
	sizeofPcapHdr          = 24

	// pcapng section header block type, the first four bytes of every
	// pcapng file. The byte sequence is a palindrome.
	pcapngMagic          uint32 = 0x0a0d0d0a
	pcapngByteOrderMagic uint32 = 0x1a2b3c4d
	pcapngBlockTypeIDB   uint32 = 0x00000001
	sizeofPcapngBlockHdr        = 12
)

var gzipMagic = []byte{0x1f, 0x8b}

type packetReader interface {
	ReadPacketData() ([]byte, gopacket.CaptureInfo, error)
}

type PcapSource struct {
	path     string
	file     io.Closer
	reader   packetReader
	scanner  *pcapngScanner
	linkType enums.LinkType
}

// OpenPcap opens a pcap or pcapng file, detected by its magic number.
// The link type of the file must be a registered LinkType.
func OpenPcap(path string) (*PcapSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "os.Open")
	}

	s, err := newPcapSource(path, f)
	if err != nil {
		f.Close()
		return nil, err
	}
	s.file = f
	return s, nil
}

// NewPcapReader reads a pcap or pcapng stream from r.
func NewPcapReader(r io.Reader) (*PcapSource, error) {
	return newPcapSource("", r)
}

func newPcapSource(path string, r io.Reader) (*PcapSource, error) {
	br := bufio.NewReader(r)
	magic, err := br.Peek(4)
	if err != nil {
		return nil, errors.Wrap(ErrUnknownFileFormat, err.Error())
	}

	if bytes.Equal(magic[:2], gzipMagic) {
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, errors.Wrap(ErrUnknownFileFormat, err.Error())
		}
		br = bufio.NewReader(gz)
		if magic, err = br.Peek(4); err != nil {
			return nil, errors.Wrap(ErrUnknownFileFormat, err.Error())
		}
	}

	s := &PcapSource{path: path}
	if binary.LittleEndian.Uint32(magic) == pcapngMagic {
		err = s.initPcapng(br)
	} else {
		err = s.initPcap(br)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "capture file %s", path)
	}

	logrus.WithFields(logrus.Fields{"path": path, "link_type": s.linkType}).Debug("Opened capture file")
	return s, nil
}

// initPcap checks the 32-bit link type of the file header before pcapgo
// narrows it to 8 bits.
func (s *PcapSource) initPcap(br *bufio.Reader) error {
	hdr, err := br.Peek(sizeofPcapHdr)
	if err != nil {
		return errors.Wrap(ErrUnknownFileFormat, err.Error())
	}

	var order binary.ByteOrder
	switch binary.LittleEndian.Uint32(hdr) {
	case pcapMagicMicros, pcapMagicNanos:
		order = binary.LittleEndian
	default:
		switch binary.BigEndian.Uint32(hdr) {
		case pcapMagicMicros, pcapMagicNanos:
			order = binary.BigEndian
		default:
			return errors.Wrapf(ErrUnknownFileFormat, "magic 0x%x", binary.LittleEndian.Uint32(hdr))
		}
	}

	s.linkType, err = enums.LinkTypeFromHeader(order.Uint32(hdr[20:24]))
	if err != nil {
		return err
	}

	rd, err := pcapgo.NewReader(br)
	if err != nil {
		return errors.Wrap(ErrUnknownFileFormat, err.Error())
	}
	s.reader = rd
	return nil
}

// initPcapng reads through a scanner that checks the 16-bit link type of
// every interface block as pcapgo consumes it. Packets from interfaces
// whose link type differs from the first one are skipped, as libpcap does.
func (s *PcapSource) initPcapng(br *bufio.Reader) error {
	s.scanner = &pcapngScanner{r: br}
	ng, err := pcapgo.NewNgReader(s.scanner, pcapgo.DefaultNgReaderOptions)
	if s.scanner.err != nil {
		return s.scanner.err
	}
	if err != nil {
		return errors.Wrap(err, "pcapgo.NewNgReader")
	}
	s.reader = ng

	s.linkType, err = enums.LinkTypeFromLayers(ng.LinkType())
	return err
}

// pcapngScanner follows pcapng block boundaries in the byte stream and
// records the first interface block whose link type is not registered.
type pcapngScanner struct {
	r     io.Reader
	order binary.ByteOrder
	hdr   [sizeofPcapngBlockHdr]byte
	nhdr  int
	skip  int
	err   error
}

func (s *pcapngScanner) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	s.scan(p[:n])
	return n, err
}

func (s *pcapngScanner) scan(b []byte) {
	for len(b) > 0 && s.err == nil {
		if s.skip > 0 {
			n := min(s.skip, len(b))
			s.skip -= n
			b = b[n:]
			continue
		}

		n := copy(s.hdr[s.nhdr:], b)
		s.nhdr += n
		b = b[n:]
		if s.nhdr < len(s.hdr) {
			return
		}
		s.nhdr = 0
		s.block()
	}
}

// block reads type, total length and the first body word of a block.
func (s *pcapngScanner) block() {
	if binary.LittleEndian.Uint32(s.hdr[0:4]) == pcapngMagic {
		switch {
		case binary.LittleEndian.Uint32(s.hdr[8:12]) == pcapngByteOrderMagic:
			s.order = binary.LittleEndian
		case binary.BigEndian.Uint32(s.hdr[8:12]) == pcapngByteOrderMagic:
			s.order = binary.BigEndian
		default:
			s.err = errors.Wrap(ErrUnknownFileFormat, "pcapng byte order magic")
			return
		}
	}
	if s.order == nil {
		s.err = errors.Wrap(ErrUnknownFileFormat, "pcapng block before section header")
		return
	}

	length := s.order.Uint32(s.hdr[4:8])
	if length < sizeofPcapngBlockHdr {
		s.err = errors.Wrapf(ErrUnknownFileFormat, "pcapng block length %d", length)
		return
	}
	if s.order.Uint32(s.hdr[0:4]) == pcapngBlockTypeIDB {
		if _, err := enums.LinkTypeFromHeader(uint32(s.order.Uint16(s.hdr[8:10]))); err != nil {
			s.err = err
			return
		}
	}
	s.skip = int(length) - sizeofPcapngBlockHdr
}

func (s *PcapSource) LinkType() enums.LinkType { return s.linkType }

func (s *PcapSource) Next() (Frame, error) {
	data, ci, err := s.reader.ReadPacketData()
	if s.scanner != nil && s.scanner.err != nil {
		return Frame{}, errors.Wrapf(s.scanner.err, "capture file %s", s.path)
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Frame{}, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			logrus.WithField("path", s.path).Warn("Capture file truncated in the last packet")
			return Frame{}, io.EOF
		}
		return Frame{}, errors.Wrap(err, "ReadPacketData")
	}
	return Frame{Data: data, LinkType: s.linkType, Timestamp: ci.Timestamp}, nil
}

func (s *PcapSource) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}
