package config

import (
	"math/rand/v2"

	"github.com/danmuck/linksim/internal/link"
)

// SessionParams converts a validated scenario into session parameters.
// Explicit units win over the data string, which is otherwise split into
// one unit per character. A nonzero seed pins the channel randomness for
// reproducible runs.
func (sc Scenario) SessionParams() link.Params {
	units := sc.Units
	if len(units) == 0 {
		units = make([]string, 0, len(sc.Data))
		for _, r := range sc.Data {
			units = append(units, string(r))
		}
	}
	p := link.Params{
		Data:            units,
		Polynomial:      sc.Polynomial,
		WindowSize:      sc.WindowSize,
		LossProbability: sc.LossProbability,
		Corruption:      sc.Corruption,
	}
	if sc.Seed != 0 {
		p.Rand = rand.New(rand.NewPCG(sc.Seed, sc.Seed))
	}
	return p
}
