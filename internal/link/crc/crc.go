// Package crc implements the modulo-2 polynomial division checksum that
// protects link frames against transmission errors.
package crc

import (
	"errors"

	"github.com/danmuck/linksim/internal/link/bits"
)

var (
	ErrInvalidPolynomial = errors.New("crc: polynomial must be at least 2 bits")
	ErrEmptyPayload      = errors.New("crc: empty payload")
)

// Generate computes the checksum for payload against an n-bit generator
// polynomial: n-1 zero bits are appended and the remainder of the XOR
// division is returned as n-1 checksum bits.
func Generate(payload, poly bits.Bits) (bits.Bits, error) {
	if len(poly) <= 1 {
		return nil, ErrInvalidPolynomial
	}
	if len(payload) == 0 {
		return nil, ErrEmptyPayload
	}
	n := len(poly)
	work := make(bits.Bits, len(payload)+n-1)
	copy(work, payload)
	for i := 0; i < len(payload); i++ {
		if work[i] == 1 {
			for j := 0; j < n; j++ {
				work[i+j] ^= poly[j]
			}
		}
	}
	return work[len(payload):], nil
}

// Verify runs the same division over a full frame (payload with checksum
// already appended) and reports whether the final remainder is all zero.
// The polynomial is XORed in at every leading position holding a 1,
// scanning left to right across len(frame)-n+1 positions.
func Verify(frame, poly bits.Bits) (bool, error) {
	if len(poly) <= 1 {
		return false, ErrInvalidPolynomial
	}
	if len(frame) == 0 {
		return false, ErrEmptyPayload
	}
	n := len(poly)
	if len(frame) < n-1 {
		// Shorter than the checksum itself; nothing to verify against.
		return false, nil
	}
	work := frame.Clone()
	for i := 0; i <= len(work)-n; i++ {
		if work[i] == 1 {
			for j := 0; j < n; j++ {
				work[i+j] ^= poly[j]
			}
		}
	}
	return work[len(work)-n+1:].AllZero(), nil
}
