package humanize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBytes(t *testing.T) {
	testCases := []struct {
		bytes  uint64
		expect string
	}{
		{bytes: 0, expect: "0 B"},
		{bytes: 1, expect: "1 B"},
		{bytes: 999, expect: "999 B"},
		{bytes: 1000, expect: "1.0 KB"},
		{bytes: 1200, expect: "1.2 KB"},
		{bytes: 1000_000, expect: "1.0 MB"},
		{bytes: 1000_000_000, expect: "1.0 GB"},
		{bytes: 1000_000_000_000_000_000, expect: "1.0 EB"},
	}

	for _, c := range testCases {
		assert.Equal(t, c.expect, Bytes(c.bytes))
	}
}

func TestRates(t *testing.T) {
	assert.Equal(t, "12 pps", PacketsRate(12.4))
	assert.Equal(t, "1.5 Mpps", PacketsRate(1_500_000))
	assert.Equal(t, "10.0 Gbps", BitsRate(10e9))
	assert.Equal(t, "42", Count(42))
	assert.Equal(t, "2.5 K", Count(2500))
}
