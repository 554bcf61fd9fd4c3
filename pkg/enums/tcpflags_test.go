package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTCPFlagsBits(t *testing.T) {
	assert.Equal(t, TCPFlags(0b000001), TCPFlagFIN)
	assert.Equal(t, TCPFlags(0b000010), TCPFlagSYN)
	assert.Equal(t, TCPFlags(0b000100), TCPFlagRST)
	assert.Equal(t, TCPFlags(0b001000), TCPFlagPSH)
	assert.Equal(t, TCPFlags(0b010000), TCPFlagACK)
	assert.Equal(t, TCPFlags(0b100000), TCPFlagURG)
	assert.Equal(t, TCPFlags(0x3F), TCPFlagsMask)
}

func TestTCPFlagsIsInvalid(t *testing.T) {
	valid := []TCPFlags{
		TCPFlagSYN,
		TCPFlagsSYNACK,
		TCPFlagFIN,
		TCPFlagsFINACK,
		TCPFlagsFINPSHACK,
		TCPFlagRST,
		TCPFlagsRSTACK,
		TCPFlagsRSTPSHACK,
		TCPFlagACK,
		TCPFlagsPSHACK,
		TCPFlagsPSHACKURG,
	}
	for _, f := range valid {
		assert.False(t, f.IsInvalid(), f.String())
		// Bits 6-7 are reserved and ignored.
		assert.False(t, (f | 0b11000000).IsInvalid(), f.String())
	}

	// Everything else in the 6-bit space is invalid.
	n := 0
	for f := TCPFlags(0); f <= TCPFlagsMask; f++ {
		if !f.IsInvalid() {
			n++
		}
	}
	assert.Equal(t, len(valid), n)

	assert.True(t, TCPFlags(0).IsInvalid())
	assert.True(t, (TCPFlagSYN | TCPFlagRST).IsInvalid())
	assert.True(t, (TCPFlagSYN | TCPFlagFIN).IsInvalid())
	assert.True(t, TCPFlagURG.IsInvalid())
	assert.Equal(t, TCPFlagSYN.IsInvalid(), (TCPFlagSYN | 0b11000000).IsInvalid())
	assert.True(t, (TCPFlagECE | TCPFlagCWR).IsInvalid())
}

func TestTCPFlagsString(t *testing.T) {
	testCases := []struct {
		flags TCPFlags
		s     string
	}{
		{0, ""},
		{TCPFlagsFINACK, "FIN|ACK"},
		{TCPFlagACK | TCPFlagFIN, "FIN|ACK"},
		{TCPFlagsPSHACKURG, "PSH|ACK|URG"},
		{TCPFlagsMask, "FIN|SYN|RST|PSH|ACK|URG"},
		{TCPFlagSYN | TCPFlagECE | TCPFlagCWR, "SYN"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.s, tc.flags.String())
	}
}

func TestTCPFlagsSetClear(t *testing.T) {
	var flags TCPFlags
	flags.Set(TCPFlagSYN)
	flags.Set(TCPFlagACK)
	assert.Equal(t, TCPFlagsSYNACK, flags)
	assert.True(t, flags.Has(TCPFlagSYN|TCPFlagFIN))
	assert.False(t, flags.Contains(TCPFlagSYN|TCPFlagFIN))
	assert.True(t, flags.Contains(TCPFlagsSYNACK))

	flags.Clear(TCPFlagSYN)
	assert.Equal(t, TCPFlagACK, flags)
}

func TestParseTCPFlags(t *testing.T) {
	testCases := []struct {
		s       string
		want    TCPFlags
		wantErr bool
	}{
		{s: "0x12", want: TCPFlagsSYNACK},
		{s: "18", want: TCPFlagsSYNACK},
		{s: "SYN|ACK", want: TCPFlagsSYNACK},
		{s: "syn, ack", want: TCPFlagsSYNACK},
		{s: "FIN|PSH|ACK", want: TCPFlagsFINPSHACK},
		{s: "CWR|ECE|ACK", want: TCPFlagCWR | TCPFlagECE | TCPFlagACK},
		{s: "0", want: 0},
		{s: "SYN|XMAS", wantErr: true},
		{s: "", wantErr: true},
		{s: "0x100", wantErr: true},
	}

	for _, tc := range testCases {
		flags, err := ParseTCPFlags(tc.s)
		if tc.wantErr {
			assert.Error(t, err, tc.s)
			continue
		}
		assert.NoError(t, err, tc.s)
		assert.Equal(t, tc.want, flags, tc.s)
	}
}

func BenchmarkTCPFlagsIsInvalid(b *testing.B) {
	flags := TCPFlagsPSHACK
	for i := 0; i < b.N; i++ {
		_ = (flags + TCPFlags(i)).IsInvalid()
	}
}
