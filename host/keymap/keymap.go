// Package keymap loads the daemon configuration: the serial port to
// listen on and the mapping of decoded command codes to keyboard
// shortcuts.
package keymap

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where the daemon looks for its configuration unless
// told otherwise.
const DefaultPath = "~/.config/tvctl.yaml"

// Binding maps one command code to a keyboard shortcut.
type Binding struct {
	// Shortcut in xdotool key syntax, e.g. "XF86AudioRaiseVolume" or
	// "ctrl+alt+t".
	Shortcut string `yaml:"shortcut"`

	// Comment is a human label shown in debug mode.
	Comment string `yaml:"comment,omitempty"`
}

// Config is the top-level YAML configuration.
type Config struct {
	// Port is the serial device the receiver board is attached to.
	Port string `yaml:"port"`

	// Baud must match the firmware's code UART.
	Baud int `yaml:"baud"`

	// RepeatDelayMS discards codes arriving within this window of the
	// previously accepted one, so a held button does not fire the
	// shortcut repeatedly.
	RepeatDelayMS int `yaml:"repeat_delay_ms"`

	Logging LoggingConfig `yaml:"logging"`

	// Keys maps decoded command codes to bindings.
	Keys map[int]Binding `yaml:"keys"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a fully-populated Config with defaults. The
// port has no sensible default and must come from the file or a flag.
func DefaultConfig() Config {
	return Config{
		Baud:          9600,
		RepeatDelayMS: 300,
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads and parses a YAML config file. Unknown fields are rejected
// to catch typos; a trailing second document is an error.
func Load(path string) (Config, error) {
	if path == "" {
		return Config{}, errors.New("config path is empty")
	}
	b, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config yaml: %w", err)
	}

	if err := dec.Decode(&struct{}{}); err == nil {
		return Config{}, fmt.Errorf("decode config yaml: unexpected trailing document")
	}

	return cfg, nil
}

// Validate checks config invariants and returns a user-friendly error.
// Call after defaults + file + flag overrides are applied.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port must not be empty")
	}
	if c.Baud <= 0 {
		return errors.New("baud must be > 0")
	}
	if c.RepeatDelayMS < 0 {
		return errors.New("repeat_delay_ms must be >= 0")
	}
	if c.Logging.Level == "" {
		return errors.New("logging.level must not be empty")
	}
	for code, b := range c.Keys {
		if code < 0 {
			return fmt.Errorf("keys: code %d is negative", code)
		}
		if b.Shortcut == "" {
			return fmt.Errorf("keys: code %d has an empty shortcut", code)
		}
	}
	return nil
}

// RepeatDelay returns the repeat suppression window as a duration.
func (c *Config) RepeatDelay() time.Duration {
	return time.Duration(c.RepeatDelayMS) * time.Millisecond
}

// ExpandPath expands a leading "~" in a path using the home directory.
func ExpandPath(p string) string {
	if p == "" {
		return p
	}
	if p[0] != '~' {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	if p == "~" {
		return home
	}
	if len(p) >= 2 && (p[1] == '/' || p[1] == '\\') {
		return filepath.Join(home, p[2:])
	}
	return p
}
