package utils

import (
	"crypto/rand"
	"math/big"
)

// GenerateOTP returns a 6-digit verification code drawn uniformly from
// [100000, 999999], so it never carries a leading zero.
func GenerateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return big.NewInt(0).Add(n, big.NewInt(100000)).String(), nil
}
