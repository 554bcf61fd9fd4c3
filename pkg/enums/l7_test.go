package enums

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestL7ProtocolRoundTrip(t *testing.T) {
	for _, p := range L7Protocols() {
		assert.Equal(t, p, L7ProtocolFrom(uint8(p)), p.String())
	}
}

func TestL7ProtocolCodes(t *testing.T) {
	testCases := []struct {
		p    L7Protocol
		code uint8
	}{
		{L7ProtocolUnknown, 0},
		{L7ProtocolOther, 1},
		{L7ProtocolHTTP1, 20},
		{L7ProtocolHTTP2, 21},
		{L7ProtocolHTTP1TLS, 22},
		{L7ProtocolHTTP2TLS, 23},
		{L7ProtocolDubbo, 40},
		{L7ProtocolMySQL, 60},
		{L7ProtocolRedis, 80},
		{L7ProtocolKafka, 100},
		{L7ProtocolMQTT, 101},
		{L7ProtocolDNS, 120},
		{L7ProtocolMax, 255},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.code, uint8(tc.p), tc.p.String())
	}
}

func TestL7ProtocolUnknown(t *testing.T) {
	assert.Equal(t, L7ProtocolUnknown, L7ProtocolFrom(99))
	assert.Equal(t, L7ProtocolUnknown, L7ProtocolFrom(255))
	assert.Equal(t, L7ProtocolUnknown, L7Protocol(0))
	assert.Equal(t, "Max", L7ProtocolMax.String())
}

func TestL7ProtocolJSON(t *testing.T) {
	data, err := json.Marshal(L7ProtocolMySQL)
	assert.NoError(t, err)
	assert.Equal(t, `"mysql"`, string(data))

	var p L7Protocol
	assert.NoError(t, json.Unmarshal([]byte(`"kafka"`), &p))
	assert.Equal(t, L7ProtocolKafka, p)
	assert.Error(t, json.Unmarshal([]byte(`"smtp"`), &p))
}

func TestL7Bitmap(t *testing.T) {
	var b L7Bitmap
	assert.True(t, b.IsEmpty())

	// Codes beyond 127 are representable.
	b.Set(L7ProtocolDNS)
	b.Set(L7ProtocolMax)
	b.Set(L7ProtocolOther)
	assert.True(t, b.Has(L7ProtocolMax))
	assert.True(t, b.Has(L7ProtocolDNS))
	assert.False(t, b.Has(L7ProtocolHTTP1))
	assert.Equal(t, 3, b.Len())
	assert.Equal(t, "Other|DNS|Max", b.String())

	b.Clear(L7ProtocolMax)
	assert.False(t, b.Has(L7ProtocolMax))
	assert.Equal(t, []L7Protocol{L7ProtocolOther, L7ProtocolDNS}, b.Protocols())
}
