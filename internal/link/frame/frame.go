// Package frame encodes application data units into CRC-protected link
// frames and decodes them back.
//
// Wire layout, in bits:
//
//	seq (SeqWidth, value modulo 2^SeqWidth) ++ data (8 per byte) ++ crc (n-1)
//
// The checksum covers the sequence field and the data bits together.
package frame

import (
	"errors"
	"fmt"

	"github.com/danmuck/linksim/internal/link/bits"
	"github.com/danmuck/linksim/internal/link/crc"
	"github.com/danmuck/linksim/internal/link/event"
)

// SeqWidth is the sequence field width in bits. Sequence numbers wrap
// modulo 2^SeqWidth on the wire.
const SeqWidth = 2

var (
	ErrFrameTooShort    = errors.New("frame: frame too short")
	ErrChecksumMismatch = errors.New("frame: checksum mismatch")
	ErrEmptyData        = errors.New("frame: empty data unit")
)

// Decoded is a successfully parsed frame.
type Decoded struct {
	Seq  int
	Data string
}

// Framer builds and parses frames for one generator polynomial. Both peers
// must hold the same polynomial or every frame fails verification.
type Framer struct {
	poly     bits.Bits
	recorder event.Recorder
}

func New(poly bits.Bits, rec event.Recorder) (*Framer, error) {
	if len(poly) <= 1 {
		return nil, crc.ErrInvalidPolynomial
	}
	if rec == nil {
		rec = event.Nop{}
	}
	return &Framer{poly: poly.Clone(), recorder: rec}, nil
}

func (f *Framer) checksumLen() int {
	return len(f.poly) - 1
}

// Encode frames one data unit under the given sequence number and emits a
// framing event describing payload, checksum, and full frame.
func (f *Framer) Encode(data string, seq int) (bits.Bits, error) {
	if data == "" {
		return nil, ErrEmptyData
	}
	payload := bits.Concat(encodeSeq(seq), encodeBytes([]byte(data)))
	sum, err := crc.Generate(payload, f.poly)
	if err != nil {
		return nil, err
	}
	full := bits.Concat(payload, sum)
	f.recorder.Record(event.Event{
		Source: "framer",
		Kind:   event.KindFraming,
		Seq:    seq,
		Message: fmt.Sprintf("framed %q: payload=%s crc=%s frame=%s",
			data, payload, sum, full),
	})
	return full, nil
}

// Decode parses a received frame. A frame shorter than the sequence field
// plus the checksum is malformed and rejected before any checksum work; a
// checksum mismatch rejects the frame without extracting anything, since a
// corrupted frame carries no trustworthy information at all.
func (f *Framer) Decode(fr bits.Bits) (Decoded, error) {
	if len(fr) < SeqWidth+f.checksumLen() {
		return Decoded{}, ErrFrameTooShort
	}
	ok, err := crc.Verify(fr, f.poly)
	if err != nil {
		return Decoded{}, err
	}
	if !ok {
		return Decoded{}, ErrChecksumMismatch
	}
	seq := decodeSeq(fr[:SeqWidth])
	data := decodeBytes(fr[SeqWidth : len(fr)-f.checksumLen()])
	return Decoded{Seq: seq, Data: string(data)}, nil
}

func encodeSeq(seq int) bits.Bits {
	out := make(bits.Bits, SeqWidth)
	v := seq % (1 << SeqWidth)
	for i := SeqWidth - 1; i >= 0; i-- {
		out[i] = byte(v & 1)
		v >>= 1
	}
	return out
}

func decodeSeq(b bits.Bits) int {
	v := 0
	for _, bit := range b {
		v = v<<1 | int(bit)
	}
	return v
}

func encodeBytes(data []byte) bits.Bits {
	out := make(bits.Bits, 0, len(data)*8)
	for _, c := range data {
		for i := 7; i >= 0; i-- {
			out = append(out, (c>>uint(i))&1)
		}
	}
	return out
}

func decodeBytes(b bits.Bits) []byte {
	out := make([]byte, 0, len(b)/8)
	for i := 0; i+8 <= len(b); i += 8 {
		var c byte
		for j := 0; j < 8; j++ {
			c = c<<1 | b[i+j]
		}
		out = append(out, c)
	}
	return out
}
