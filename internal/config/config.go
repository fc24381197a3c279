// Package config provides YAML-based configuration for timing, keystroke
// pacing and rendering, with named speed presets.
package config

import "time"

// Timing defines the scheduler's timer intervals and delays.
type Timing struct {
	FallIntervalMS  int `yaml:"fall_interval_ms"`  // gravity tick once falling resumes
	InputDebounceMS int `yaml:"input_debounce_ms"` // idle period before gravity restarts after input
	BlockedRetryMS  int `yaml:"blocked_retry_ms"`  // no-op reschedule while a timer is blocked
	BlinkIntervalMS int `yaml:"blink_interval_ms"` // clear-animation step
	BlinkFrames     int `yaml:"blink_frames"`      // steps before cleared rows compact
	SpawnDelayMS    int `yaml:"spawn_delay_ms"`    // hidden-piece delay after a normal lock
	HardDropDelayMS int `yaml:"hard_drop_delay_ms"`
	ClearDelayMS    int `yaml:"clear_delay_ms"` // delay after row compaction
}

// Keystrokes defines the pacing of emitted keystrokes.
type Keystrokes struct {
	KeyDelayMS     int `yaml:"key_delay_ms"`     // between ordinary script steps
	NewlineDelayMS int `yaml:"newline_delay_ms"` // after a line-break character
}

// Render defines diff-engine limits.
type Render struct {
	BatchCap int `yaml:"batch_cap"` // max changed lines emitted per diff pass
}

// Config is the complete runtime configuration.
type Config struct {
	Timing     Timing     `yaml:"timing"`
	Keystrokes Keystrokes `yaml:"keystrokes"`
	Render     Render     `yaml:"render"`
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}

func (t Timing) FallInterval() time.Duration  { return ms(t.FallIntervalMS) }
func (t Timing) InputDebounce() time.Duration { return ms(t.InputDebounceMS) }
func (t Timing) BlockedRetry() time.Duration  { return ms(t.BlockedRetryMS) }
func (t Timing) BlinkInterval() time.Duration { return ms(t.BlinkIntervalMS) }
func (t Timing) SpawnDelay() time.Duration    { return ms(t.SpawnDelayMS) }
func (t Timing) HardDropDelay() time.Duration { return ms(t.HardDropDelayMS) }
func (t Timing) ClearDelay() time.Duration    { return ms(t.ClearDelayMS) }

func (k Keystrokes) KeyDelay() time.Duration     { return ms(k.KeyDelayMS) }
func (k Keystrokes) NewlineDelay() time.Duration { return ms(k.NewlineDelayMS) }

// Preset names a speed profile.
type Preset string

const (
	PresetRelaxed Preset = "relaxed"
	PresetNormal  Preset = "normal"
	PresetFast    Preset = "fast"
)

// ApplyPreset scales the gravity interval for a named preset. Unknown
// presets leave the config untouched.
func ApplyPreset(cfg *Config, p Preset) {
	switch p {
	case PresetRelaxed:
		cfg.Timing.FallIntervalMS = 1000
	case PresetNormal:
		cfg.Timing.FallIntervalMS = 700
	case PresetFast:
		cfg.Timing.FallIntervalMS = 400
	}
}
