package config

import (
	"fmt"
	"os"
)

func Template() string {
	return scenarioTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("scenario already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(scenarioTemplate), 0o600)
}

const scenarioTemplate = `name = "demo"
data = "Hello"

# Generator polynomial shared by both peers. Both sides must match or every
# frame is flagged corrupt.
polynomial = "1011"

window_size = 3
loss_probability = 0.1
corruption = false

# Nonzero seed makes the channel deterministic.
seed = 0
max_steps = 64
`
