package common

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChecksumAddress(t *testing.T) {
	// Reference checksummed addresses from EIP-55.
	valid := []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
		"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
		"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
	}
	for _, addr := range valid {
		got, ok := ChecksumAddress(strings.ToLower(addr))
		assert.True(t, ok)
		assert.Equal(t, addr, got)

		// Already checksummed or all-uppercase input normalizes the same way.
		got, ok = ChecksumAddress(addr)
		assert.True(t, ok)
		assert.Equal(t, addr, got)
	}
}

func TestChecksumAddressWithoutPrefix(t *testing.T) {
	got, ok := ChecksumAddress("5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	assert.True(t, ok)
	assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", got)
}

func TestChecksumAddressRejectsMalformed(t *testing.T) {
	for _, addr := range []string{
		"",
		"0x1234",
		"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beae",   // 39 chars
		"0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaedd", // 41 chars
		"0xzzzeb6053f3e94c9b9a09f33669435e7ef1beaed",  // not hex
	} {
		_, ok := ChecksumAddress(addr)
		assert.False(t, ok, addr)
	}
}
