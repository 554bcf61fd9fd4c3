package source

import (
	"bytes"
	"compress/gzip"
	"encoding/binary"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zxhio/pktclass/pkg/enums"
)

var testFrames = [][]byte{
	bytes.Repeat([]byte{0xaa}, 60),
	bytes.Repeat([]byte{0xbb}, 74),
}

func writePcap(t *testing.T, w io.Writer, linkType layers.LinkType) {
	pw := pcapgo.NewWriter(w)
	require.NoError(t, pw.WriteFileHeader(65535, linkType))
	for i, frame := range testFrames {
		ci := gopacket.CaptureInfo{Timestamp: time.Unix(1700000000+int64(i), 0), CaptureLength: len(frame), Length: len(frame)}
		require.NoError(t, pw.WritePacket(ci, frame))
	}
}

func writePcapng(t *testing.T, w io.Writer, linkType layers.LinkType) {
	nw, err := pcapgo.NewNgWriter(w, linkType)
	require.NoError(t, err)
	for i, frame := range testFrames {
		ci := gopacket.CaptureInfo{Timestamp: time.Unix(1700000000+int64(i), 0), CaptureLength: len(frame), Length: len(frame)}
		require.NoError(t, nw.WritePacket(ci, frame))
	}
	require.NoError(t, nw.Flush())
}

func readAll(t *testing.T, s Source) []Frame {
	var frames []Frame
	for {
		frame, err := s.Next()
		if err == io.EOF {
			return frames
		}
		require.NoError(t, err)
		frames = append(frames, frame)
	}
}

func TestPcapSource(t *testing.T) {
	testCases := []struct {
		name  string
		write func(*testing.T, io.Writer, layers.LinkType)
	}{
		{name: "pcap", write: writePcap},
		{name: "pcapng", write: writePcapng},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			tc.write(t, &buf, layers.LinkTypeLinuxSLL)

			s, err := NewPcapReader(&buf)
			require.NoError(t, err)
			defer s.Close()

			assert.Equal(t, enums.LinkTypeLinuxSLL, s.LinkType())
			frames := readAll(t, s)
			require.Len(t, frames, len(testFrames))
			for i, frame := range frames {
				assert.Equal(t, testFrames[i], frame.Data)
				assert.Equal(t, enums.LinkTypeLinuxSLL, frame.LinkType)
				assert.Equal(t, int64(1700000000+i), frame.Timestamp.Unix())
			}
		})
	}
}

func TestOpenPcap(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.pcap")
	f, err := os.Create(path)
	require.NoError(t, err)
	writePcap(t, f, layers.LinkTypeEthernet)
	require.NoError(t, f.Close())

	s, err := OpenPcap(path)
	require.NoError(t, err)
	assert.Equal(t, enums.LinkTypeEthernet, s.LinkType())
	assert.Len(t, readAll(t, s), len(testFrames))
	assert.NoError(t, s.Close())

	_, err = OpenPcap(filepath.Join(t.TempDir(), "missing.pcap"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPcapSourceUnmappedLinkType(t *testing.T) {
	var buf bytes.Buffer
	writePcap(t, &buf, layers.LinkType(200))

	_, err := NewPcapReader(&buf)
	assert.ErrorIs(t, err, enums.ErrUnmappedCode)

	var convErr *enums.ConversionError
	require.ErrorAs(t, err, &convErr)
	assert.Equal(t, uint32(200), convErr.Code)
}

func pcapHeader(order binary.AppendByteOrder, linkType uint32) []byte {
	b := order.AppendUint32(nil, 0xa1b2c3d4)
	b = order.AppendUint16(b, 2)
	b = order.AppendUint16(b, 4)
	b = order.AppendUint32(b, 0) // thiszone
	b = order.AppendUint32(b, 0) // sigfigs
	b = order.AppendUint32(b, 65535)
	return order.AppendUint32(b, linkType)
}

func pcapngBlock(b []byte, blockType uint32, body []byte) []byte {
	length := uint32(12 + len(body))
	b = binary.LittleEndian.AppendUint32(b, blockType)
	b = binary.LittleEndian.AppendUint32(b, length)
	b = append(b, body...)
	return binary.LittleEndian.AppendUint32(b, length)
}

// pcapngFile writes a section header, one interface block per link type and
// one 60 byte packet on the last interface.
func pcapngFile(linkTypes ...uint16) []byte {
	shb := binary.LittleEndian.AppendUint32(nil, 0x1a2b3c4d)
	shb = binary.LittleEndian.AppendUint16(shb, 1)
	shb = binary.LittleEndian.AppendUint16(shb, 0)
	shb = binary.LittleEndian.AppendUint64(shb, 0xffffffffffffffff)
	b := pcapngBlock(nil, 0x0a0d0d0a, shb)

	for _, lt := range linkTypes {
		idb := binary.LittleEndian.AppendUint16(nil, lt)
		idb = binary.LittleEndian.AppendUint16(idb, 0)
		idb = binary.LittleEndian.AppendUint32(idb, 65535)
		b = pcapngBlock(b, 1, idb)
	}

	epb := binary.LittleEndian.AppendUint32(nil, uint32(len(linkTypes)-1))
	epb = binary.LittleEndian.AppendUint32(epb, 0)
	epb = binary.LittleEndian.AppendUint32(epb, 0)
	epb = binary.LittleEndian.AppendUint32(epb, 60)
	epb = binary.LittleEndian.AppendUint32(epb, 60)
	epb = append(epb, testFrames[0]...)
	return pcapngBlock(b, 6, epb)
}

func TestPcapSourceWideLinkType(t *testing.T) {
	for _, lt := range []uint32{257, 276, 369} {
		for _, order := range []binary.AppendByteOrder{binary.LittleEndian, binary.BigEndian} {
			_, err := NewPcapReader(bytes.NewReader(pcapHeader(order, lt)))
			var convErr *enums.ConversionError
			require.ErrorAs(t, err, &convErr, lt)
			assert.Equal(t, lt, convErr.Code)
		}
	}

	s, err := NewPcapReader(bytes.NewReader(pcapHeader(binary.BigEndian, 113)))
	require.NoError(t, err)
	assert.Equal(t, enums.LinkTypeLinuxSLL, s.LinkType())
}

func TestPcapngSourceWideLinkType(t *testing.T) {
	testCases := []struct {
		name      string
		linkTypes []uint16
		code      uint32
	}{
		{name: "first interface", linkTypes: []uint16{257}, code: 257},
		{name: "linux sll2", linkTypes: []uint16{276}, code: 276},
		{name: "later interface", linkTypes: []uint16{1, 369}, code: 369},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := NewPcapReader(bytes.NewReader(pcapngFile(tc.linkTypes...)))
			if err == nil {
				_, err = s.Next()
			}
			var convErr *enums.ConversionError
			require.ErrorAs(t, err, &convErr)
			assert.Equal(t, tc.code, convErr.Code)
		})
	}

	s, err := NewPcapReader(bytes.NewReader(pcapngFile(1)))
	require.NoError(t, err)
	assert.Equal(t, enums.LinkTypeEthernet, s.LinkType())
	frames := readAll(t, s)
	require.Len(t, frames, 1)
	assert.Equal(t, testFrames[0], frames[0].Data)
}

func TestPcapSourceGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	writePcap(t, gz, layers.LinkTypeEthernet)
	require.NoError(t, gz.Close())

	s, err := NewPcapReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, enums.LinkTypeEthernet, s.LinkType())
	assert.Len(t, readAll(t, s), len(testFrames))
}

func TestPcapSourceUnknownFormat(t *testing.T) {
	testCases := [][]byte{
		nil,
		[]byte("not a capture file"),
	}

	for _, data := range testCases {
		_, err := NewPcapReader(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrUnknownFileFormat)
	}
}

func TestPcapSourceTruncated(t *testing.T) {
	var buf bytes.Buffer
	writePcap(t, &buf, layers.LinkTypeEthernet)
	data := buf.Bytes()[:buf.Len()-10]

	s, err := NewPcapReader(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Len(t, readAll(t, s), 1)
}

func TestHexSource(t *testing.T) {
	s, err := NewHexSource(enums.LinkTypeRaw, "45 00 00 14", "0x4500:0014", "\tdeadbeef\n")
	require.NoError(t, err)
	assert.Equal(t, enums.LinkTypeRaw, s.LinkType())

	frames := readAll(t, s)
	require.Len(t, frames, 3)
	assert.Equal(t, []byte{0x45, 0x00, 0x00, 0x14}, frames[0].Data)
	assert.Equal(t, []byte{0x45, 0x00, 0x00, 0x14}, frames[1].Data)
	assert.Equal(t, []byte{0xde, 0xad, 0xbe, 0xef}, frames[2].Data)
	assert.Equal(t, enums.LinkTypeRaw, frames[2].LinkType)

	_, err = s.Next()
	assert.ErrorIs(t, err, io.EOF)
	assert.NoError(t, s.Close())
}

func TestHexSourceInvalid(t *testing.T) {
	_, err := NewHexSource(enums.LinkTypeEthernet, "0011", "00zz")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "frame 1")

	_, err = NewHexSource(enums.LinkTypeEthernet, "abc")
	assert.Error(t, err)
}
