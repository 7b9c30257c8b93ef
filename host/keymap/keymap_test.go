package keymap

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tvctl.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
port: /dev/ttyUSB0
keys:
  34:
    shortcut: XF86AudioRaiseVolume
    comment: volume up
  35:
    shortcut: XF86AudioLowerVolume
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Port != "/dev/ttyUSB0" {
		t.Errorf("Port = %q, want /dev/ttyUSB0", cfg.Port)
	}
	if cfg.Baud != 9600 {
		t.Errorf("Baud default = %d, want 9600", cfg.Baud)
	}
	if cfg.RepeatDelayMS != 300 {
		t.Errorf("RepeatDelayMS default = %d, want 300", cfg.RepeatDelayMS)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level default = %q, want info", cfg.Logging.Level)
	}

	b, ok := cfg.Keys[34]
	if !ok {
		t.Fatal("code 34 missing from keys")
	}
	if b.Shortcut != "XF86AudioRaiseVolume" || b.Comment != "volume up" {
		t.Errorf("binding 34 = %+v", b)
	}
	if cfg.Keys[35].Comment != "" {
		t.Errorf("binding 35 comment = %q, want empty", cfg.Keys[35].Comment)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, `
port: /dev/ttyUSB0
prot: typo
`)

	if _, err := Load(path); err == nil {
		t.Fatal("Load accepted a config with an unknown field")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load succeeded on a missing file")
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "empty port",
			mutate:  func(c *Config) { c.Port = "" },
			wantErr: "port",
		},
		{
			name:    "zero baud",
			mutate:  func(c *Config) { c.Baud = 0 },
			wantErr: "baud",
		},
		{
			name:    "negative repeat delay",
			mutate:  func(c *Config) { c.RepeatDelayMS = -1 },
			wantErr: "repeat_delay_ms",
		},
		{
			name:    "empty shortcut",
			mutate:  func(c *Config) { c.Keys = map[int]Binding{34: {}} },
			wantErr: "empty shortcut",
		},
		{
			name:    "negative code",
			mutate:  func(c *Config) { c.Keys = map[int]Binding{-1: {Shortcut: "a"}} },
			wantErr: "negative",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Port = "/dev/ttyUSB0"
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate passed, want error")
			}
			if !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Validate error = %q, want mention of %q", err, tc.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}

	if got := ExpandPath("~/.config/tvctl.yaml"); got != filepath.Join(home, ".config", "tvctl.yaml") {
		t.Errorf("ExpandPath(~/...) = %q", got)
	}
	if got := ExpandPath("/etc/tvctl.yaml"); got != "/etc/tvctl.yaml" {
		t.Errorf("ExpandPath(abs) = %q", got)
	}
	if got := ExpandPath(""); got != "" {
		t.Errorf("ExpandPath(empty) = %q", got)
	}
}
