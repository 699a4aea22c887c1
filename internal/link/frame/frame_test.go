package frame

import (
	"errors"
	"testing"

	"github.com/danmuck/linksim/internal/link/bits"
	"github.com/danmuck/linksim/internal/link/event"
)

func newFramer(t *testing.T, poly string) *Framer {
	t.Helper()
	p, err := bits.Parse(poly)
	if err != nil {
		t.Fatalf("parse polynomial: %v", err)
	}
	f, err := New(p, nil)
	if err != nil {
		t.Fatalf("new framer: %v", err)
	}
	return f
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	f := newFramer(t, "1011")
	for seq, data := range map[int]string{0: "H", 1: "i", 2: "!", 3: "z"} {
		fr, err := f.Encode(data, seq)
		if err != nil {
			t.Fatalf("encode seq=%d: %v", seq, err)
		}
		if len(fr) != SeqWidth+8*len(data)+3 {
			t.Fatalf("frame length: got %d", len(fr))
		}
		out, err := f.Decode(fr)
		if err != nil {
			t.Fatalf("decode seq=%d: %v", seq, err)
		}
		if out.Seq != seq || out.Data != data {
			t.Fatalf("round trip: got %+v want seq=%d data=%q", out, seq, data)
		}
	}
}

func TestSequenceWrapsModuloFieldWidth(t *testing.T) {
	f := newFramer(t, "1011")
	fr, err := f.Encode("x", 5)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := f.Decode(fr)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Seq != 1 {
		t.Fatalf("expected seq 5 to wrap to 1, got %d", out.Seq)
	}
}

func TestDecodeTooShortIsMalformed(t *testing.T) {
	f := newFramer(t, "1011")
	short, _ := bits.Parse("1010")
	if _, err := f.Decode(short); !errors.Is(err, ErrFrameTooShort) {
		t.Fatalf("expected ErrFrameTooShort, got %v", err)
	}
	if _, err := f.Decode(nil); !errors.Is(err, ErrFrameTooShort) {
		t.Fatalf("expected ErrFrameTooShort on empty input, got %v", err)
	}
}

func TestDecodeSingleBitFlipFailsChecksum(t *testing.T) {
	f := newFramer(t, "1011")
	fr, err := f.Encode("Q", 2)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	for i := range fr {
		flipped := fr.Clone()
		flipped.Flip(i)
		if _, err := f.Decode(flipped); !errors.Is(err, ErrChecksumMismatch) {
			t.Fatalf("bit %d: expected ErrChecksumMismatch, got %v", i, err)
		}
	}
}

func TestMismatchedPolynomialsRejectEverything(t *testing.T) {
	sender := newFramer(t, "1011")
	receiver := newFramer(t, "1101")
	fr, err := sender.Encode("H", 0)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if _, err := receiver.Decode(fr); !errors.Is(err, ErrChecksumMismatch) {
		t.Fatalf("expected ErrChecksumMismatch across polynomials, got %v", err)
	}
}

func TestEncodeEmitsFramingEvent(t *testing.T) {
	p, _ := bits.Parse("1011")
	var rec event.Memory
	f, err := New(p, &rec)
	if err != nil {
		t.Fatalf("new framer: %v", err)
	}
	if _, err := f.Encode("H", 0); err != nil {
		t.Fatalf("encode: %v", err)
	}
	evs := rec.Events()
	if len(evs) != 1 || evs[0].Kind != event.KindFraming || evs[0].Seq != 0 {
		t.Fatalf("unexpected events: %+v", evs)
	}
}

func TestEncodeEmptyData(t *testing.T) {
	f := newFramer(t, "1011")
	if _, err := f.Encode("", 0); !errors.Is(err, ErrEmptyData) {
		t.Fatalf("expected ErrEmptyData, got %v", err)
	}
}
