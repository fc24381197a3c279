package config

import (
	_ "embed"
)

//go:embed defaults/config.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Timing: Timing{
			FallIntervalMS:  700,
			InputDebounceMS: 250,
			BlockedRetryMS:  50,
			BlinkIntervalMS: 120,
			BlinkFrames:     6,
			SpawnDelayMS:    300,
			HardDropDelayMS: 150,
			ClearDelayMS:    450,
		},
		Keystrokes: Keystrokes{
			KeyDelayMS:     18,
			NewlineDelayMS: 42,
		},
		Render: Render{
			BatchCap: 6,
		},
	}
}
