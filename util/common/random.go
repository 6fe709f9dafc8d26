package common

import (
	"crypto/rand"
	"math/big"
)

// RandomInt returns a random integer in 0 .. max-1 (crypto/rand).
func RandomInt(max int) int {
	if max <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(max)))
	if err != nil {
		return 0
	}
	return int(n.Int64())
}

// RandomDigits returns n independent uniform digits in 0..9.
func RandomDigits(n int) []int {
	digits := make([]int, n)
	for i := range digits {
		digits[i] = RandomInt(10)
	}
	return digits
}
