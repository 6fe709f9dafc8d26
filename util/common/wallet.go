package common

import (
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// ChecksumAddress validates an EVM wallet address and returns it in EIP-55
// mixed-case checksum form. The input may be any-cased, with or without the
// 0x prefix.
func ChecksumAddress(addr string) (string, bool) {
	addr = strings.TrimPrefix(strings.TrimPrefix(addr, "0x"), "0X")
	if len(addr) != 40 {
		return "", false
	}
	lower := strings.ToLower(addr)
	if _, err := hex.DecodeString(lower); err != nil {
		return "", false
	}

	hasher := sha3.NewLegacyKeccak256()
	hasher.Write([]byte(lower))
	hash := hasher.Sum(nil)

	out := make([]byte, 40)
	for i := 0; i < 40; i++ {
		c := lower[i]
		if c >= 'a' && c <= 'f' {
			nibble := hash[i/2]
			if i%2 == 0 {
				nibble >>= 4
			} else {
				nibble &= 0x0f
			}
			if nibble >= 8 {
				c = c - 'a' + 'A'
			}
		}
		out[i] = c
	}
	return "0x" + string(out), true
}
