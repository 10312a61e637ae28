package security

import (
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
)

// PIN length bounds shared by generation and validation.
const (
	MinPINLength = 4
	MaxPINLength = 8
)

var ErrPINLength = errors.New("pin length must be between 4 and 8")

var digitCount = big.NewInt(10)

// GeneratePIN returns a uniformly random numeric PIN of the given length.
// PINs made of one repeated digit are drawn again.
func GeneratePIN(length int) (string, error) {
	if length < MinPINLength || length > MaxPINLength {
		return "", ErrPINLength
	}

	digits := make([]byte, length)
	for {
		for index := range digits {
			digit, err := rand.Int(rand.Reader, digitCount)
			if err != nil {
				return "", err
			}
			digits[index] = byte('0' + digit.Int64())
		}
		pin := string(digits)
		if !repeatsOneDigit(pin) {
			return pin, nil
		}
	}
}

func repeatsOneDigit(pin string) bool {
	return strings.Count(pin, pin[:1]) == len(pin)
}
