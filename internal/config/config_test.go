package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestLoadScenarioAppliesDefaults(t *testing.T) {
	path := writeScenario(t, `data = "Hi"`)
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sc.Polynomial != DefaultPolynomial {
		t.Fatalf("polynomial default: got %q", sc.Polynomial)
	}
	if sc.WindowSize != DefaultWindowSize {
		t.Fatalf("window default: got %d", sc.WindowSize)
	}
	if sc.MaxSteps != DefaultMaxSteps {
		t.Fatalf("max_steps default: got %d", sc.MaxSteps)
	}
	if sc.Name != "linksim" {
		t.Fatalf("name default: got %q", sc.Name)
	}
}

func TestLoadScenarioRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"no data", `name = "x"`, "data or units"},
		{"bad polynomial", `data = "Hi"` + "\n" + `polynomial = "10x1"`, "non-bit"},
		{"short polynomial", `data = "Hi"` + "\n" + `polynomial = "1"`, "at least 2 bits"},
		{"negative window", `data = "Hi"` + "\n" + `window_size = -1`, "window_size"},
		{"loss out of range", `data = "Hi"` + "\n" + `loss_probability = 1.5`, "loss_probability"},
		{"empty unit", `units = ["a", ""]`, "units[1]"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeScenario(t, tc.body)
			_, err := LoadScenario(path)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestSessionParamsSplitsDataPerCharacter(t *testing.T) {
	sc := Scenario{Data: "Hey"}
	ApplyDefaults(&sc)
	p := sc.SessionParams()
	if len(p.Data) != 3 || p.Data[0] != "H" || p.Data[2] != "y" {
		t.Fatalf("split: %v", p.Data)
	}
	if p.Rand != nil {
		t.Fatalf("zero seed must leave Rand nil")
	}
}

func TestSessionParamsPrefersExplicitUnits(t *testing.T) {
	sc := Scenario{Data: "ignored", Units: []string{"ab", "cd"}, Seed: 7}
	ApplyDefaults(&sc)
	p := sc.SessionParams()
	if len(p.Data) != 2 || p.Data[0] != "ab" {
		t.Fatalf("units: %v", p.Data)
	}
	if p.Rand == nil {
		t.Fatalf("seeded scenario must pin the random source")
	}
}

func TestTemplateRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.toml")
	if err := WriteTemplate(path, false); err != nil {
		t.Fatalf("write template: %v", err)
	}
	if err := WriteTemplate(path, false); err == nil {
		t.Fatalf("expected overwrite refusal")
	}
	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("template does not validate: %v", err)
	}
	if sc.Data != "Hello" {
		t.Fatalf("template data: %q", sc.Data)
	}
}
