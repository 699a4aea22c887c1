// Package bits provides the bit-pattern carrier type shared by the link
// protocol packages. Frames and generator polynomials are Bits values end
// to end, one byte per bit.
package bits

import (
	"errors"
	"fmt"
)

var ErrInvalidBit = errors.New("bits: invalid bit character")

// Bits is an ordered sequence of {0,1}.
type Bits []byte

// Parse converts a "0101"-style string into Bits. Any character other than
// '0' or '1' is rejected.
func Parse(s string) (Bits, error) {
	out := make(Bits, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			out[i] = 0
		case '1':
			out[i] = 1
		default:
			return nil, fmt.Errorf("%w: %q at index %d", ErrInvalidBit, s[i], i)
		}
	}
	return out, nil
}

func (b Bits) String() string {
	buf := make([]byte, len(b))
	for i, bit := range b {
		buf[i] = '0' + bit
	}
	return string(buf)
}

func (b Bits) Clone() Bits {
	out := make(Bits, len(b))
	copy(out, b)
	return out
}

// Flip inverts the bit at index i in place.
func (b Bits) Flip(i int) {
	b[i] ^= 1
}

func (b Bits) AllZero() bool {
	for _, bit := range b {
		if bit != 0 {
			return false
		}
	}
	return true
}

// Concat returns a new pattern with the operands joined in order.
func Concat(parts ...Bits) Bits {
	total := 0
	for _, p := range parts {
		total += len(p)
	}
	out := make(Bits, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
