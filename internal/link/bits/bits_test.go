package bits

import (
	"errors"
	"testing"
)

func TestParseRoundTrip(t *testing.T) {
	b, err := Parse("101100")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if b.String() != "101100" {
		t.Fatalf("round-trip mismatch: %s", b)
	}
}

func TestParseRejectsNonBits(t *testing.T) {
	if _, err := Parse("10a1"); !errors.Is(err, ErrInvalidBit) {
		t.Fatalf("expected ErrInvalidBit, got %v", err)
	}
}

func TestFlipAndClone(t *testing.T) {
	b, _ := Parse("1011")
	c := b.Clone()
	c.Flip(0)
	if c.String() != "0011" {
		t.Fatalf("flip: got %s", c)
	}
	if b.String() != "1011" {
		t.Fatalf("clone aliased original: %s", b)
	}
}

func TestAllZero(t *testing.T) {
	zero, _ := Parse("000")
	if !zero.AllZero() {
		t.Fatalf("expected all zero")
	}
	one, _ := Parse("001")
	if one.AllZero() {
		t.Fatalf("expected not all zero")
	}
}

func TestConcat(t *testing.T) {
	a, _ := Parse("10")
	b, _ := Parse("01")
	if got := Concat(a, b, nil).String(); got != "1001" {
		t.Fatalf("concat: got %s", got)
	}
}
