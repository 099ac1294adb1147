package privacy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeIP(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "ipv4 standard address", input: "192.168.1.47", expected: "192.168.1.0"},
		{name: "ipv4 localhost", input: "127.0.0.1", expected: "127.0.0.0"},
		{name: "ipv6 compressed address", input: "2001:db8:85a3::8a2e:370:7334", expected: "2001:0db8:85a3::"},
		{name: "ipv6 loopback", input: "::1", expected: "0000:0000:0000::"},
		{name: "empty string", input: "", expected: "unknown"},
		{name: "unknown value", input: "unknown", expected: "unknown"},
		{name: "invalid ip", input: "not-an-ip", expected: "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AnonymizeIP(tt.input))
		})
	}
}

func TestRedactBVN(t *testing.T) {
	assert.Equal(t, "****5291", RedactBVN("22338485291"))
	assert.Equal(t, "***", RedactBVN("123"))
	assert.Equal(t, "", RedactBVN(""))
}

func TestHashBVN(t *testing.T) {
	h := HashBVN("22338485291")
	assert.Len(t, h, 64)
	assert.Equal(t, h, HashBVN("22338485291"), "hash is deterministic")
	assert.NotEqual(t, h, HashBVN("22338485292"))
	assert.NotContains(t, h, "22338485291")
	assert.Equal(t, h[:16], ShortHashBVN("22338485291"))
	assert.Empty(t, HashBVN(""))
}
