package common

import (
	"crypto/rand"
	"encoding/hex"
)

// RandHex returns a hex string built from size random bytes, so the
// result is 2*size characters long.
func RandHex(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// RandBytes returns size cryptographically random bytes.
func RandBytes(size int) []byte {
	b := make([]byte, size)
	rand.Read(b)
	return b
}

// Wipe zeroes buf in place. Safe to call with nil.
func Wipe(buf []byte) {
	for i := range buf {
		buf[i] = 0
	}
}
