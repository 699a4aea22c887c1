package logging

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		raw  string
		want zerolog.Level
		ok   bool
	}{
		{"", zerolog.InfoLevel, false},
		{"debug", zerolog.DebugLevel, true},
		{" WARN ", zerolog.WarnLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"off", zerolog.Disabled, true},
		{"nonsense", zerolog.InfoLevel, false},
	}
	for _, tc := range cases {
		got, ok := parseLevel(tc.raw)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("parseLevel(%q) = (%v, %v), want (%v, %v)", tc.raw, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseBool(t *testing.T) {
	cases := []struct {
		raw   string
		want  bool
		valid bool
	}{
		{"", false, false},
		{"true", true, true},
		{"0", false, true},
		{"maybe", false, false},
	}
	for _, tc := range cases {
		got, ok := parseBool(tc.raw)
		if got != tc.want || ok != tc.valid {
			t.Fatalf("parseBool(%q) = (%v, %v), want (%v, %v)", tc.raw, got, ok, tc.want, tc.valid)
		}
	}
}
