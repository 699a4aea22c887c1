package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Scenario describes one simulation run: the data to push across the link
// and the channel conditions to push it through.
type Scenario struct {
	Name            string   `toml:"name"`
	Data            string   `toml:"data"`
	Units           []string `toml:"units"`
	Polynomial      string   `toml:"polynomial"`
	WindowSize      int      `toml:"window_size"`
	LossProbability float64  `toml:"loss_probability"`
	Corruption      bool     `toml:"corruption"`
	Seed            uint64   `toml:"seed"`
	MaxSteps        int      `toml:"max_steps"`
}

// Default scenario values: polynomial 1011, window 3.
const (
	DefaultPolynomial = "1011"
	DefaultWindowSize = 3
	DefaultMaxSteps   = 64
)

func LoadScenario(path string) (Scenario, error) {
	var sc Scenario
	if err := loadToml(path, &sc); err != nil {
		return Scenario{}, err
	}
	ApplyDefaults(&sc)
	if err := ValidateScenario(sc); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

func ApplyDefaults(sc *Scenario) {
	if sc.Name == "" {
		sc.Name = "linksim"
	}
	if sc.Polynomial == "" {
		sc.Polynomial = DefaultPolynomial
	}
	if sc.WindowSize == 0 {
		sc.WindowSize = DefaultWindowSize
	}
	if sc.MaxSteps == 0 {
		sc.MaxSteps = DefaultMaxSteps
	}
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func ValidateScenario(sc Scenario) error {
	if strings.TrimSpace(sc.Name) == "" {
		return fmt.Errorf("scenario missing name")
	}
	if sc.Data == "" && len(sc.Units) == 0 {
		return fmt.Errorf("scenario needs data or units")
	}
	for i, unit := range sc.Units {
		if unit == "" {
			return fmt.Errorf("units[%d] is empty", i)
		}
	}
	if len(sc.Polynomial) < 2 {
		return fmt.Errorf("polynomial must be at least 2 bits")
	}
	for i := 0; i < len(sc.Polynomial); i++ {
		if c := sc.Polynomial[i]; c != '0' && c != '1' {
			return fmt.Errorf("polynomial has non-bit character %q at index %d", c, i)
		}
	}
	if sc.WindowSize < 1 {
		return fmt.Errorf("window_size must be positive")
	}
	if sc.LossProbability < 0 || sc.LossProbability > 1 {
		return fmt.Errorf("loss_probability must be within [0,1]")
	}
	if sc.MaxSteps < 1 {
		return fmt.Errorf("max_steps must be positive")
	}
	return nil
}
