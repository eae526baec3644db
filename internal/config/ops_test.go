package config

import (
	"testing"
	"time"
)

func TestConfigSetAndGet(t *testing.T) {
	var cfg Config
	tests := []struct {
		key, value, want string
	}{
		{"numbering", "false", "false"},
		{"number-width", "5", "5"},
		{"max-lines", "2000", "2000"},
		{"max-lines", "0", "0"},
		{"max-bytes", "1048576", "1048576"},
		{"max-bytes", "0", "0"},
		{"tab-width", "4", "4"},
		{"tab-width", "-1", "-1"},
		{"color", "true", "true"},
		{"east-asian", "1", "true"},
		{"mode", "BYTE", "byte"},
		{"mode", "auto", ""},
		{"encoding", " latin1 ", "latin1"},
		{"poll", "100ms", "100ms"},
	}
	for _, tt := range tests {
		if err := cfg.Set(tt.key, tt.value); err != nil {
			t.Fatalf("Set(%s, %s): %v", tt.key, tt.value, err)
		}
		got, ok := cfg.Get(tt.key)
		if !ok || got != tt.want {
			t.Fatalf("Get(%s)=%q want %q", tt.key, got, tt.want)
		}
	}
	if cfg.PollInterval() != 100*time.Millisecond {
		t.Fatalf("PollInterval=%v", cfg.PollInterval())
	}
}

func TestConfigSetRejectsBadValues(t *testing.T) {
	var cfg Config
	bad := [][2]string{
		{"numbering", "maybe"},
		{"number-width", "0"},
		{"number-width", "x"},
		{"max-lines", "-3"},
		{"max-bytes", "-1"},
		{"tab-width", "-2"},
		{"mode", "utf16"},
		{"poll", "soon"},
		{"no-such-key", "1"},
	}
	for _, kv := range bad {
		if err := cfg.Set(kv[0], kv[1]); err == nil {
			t.Fatalf("expected Set(%s, %s) to fail", kv[0], kv[1])
		}
	}
}

func TestConfigKeepsZeroLimits(t *testing.T) {
	var cfg Config
	if got, _ := cfg.Get("max-lines"); got != "" {
		t.Fatalf("expected unset max-lines, got %q", got)
	}
	if err := cfg.Set("max-lines", "0"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := cfg.Set("max-bytes", "0"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cfg.MaxLines == nil || *cfg.MaxLines != 0 || cfg.MaxBytes == nil || *cfg.MaxBytes != 0 {
		t.Fatalf("expected explicit zero limits, got %v %v", cfg.MaxLines, cfg.MaxBytes)
	}
	if err := cfg.Set("max-lines", ""); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cfg.MaxLines != nil {
		t.Fatalf("expected max-lines reset, got %d", *cfg.MaxLines)
	}
}

func TestConfigSetEmptyResets(t *testing.T) {
	var cfg Config
	if err := cfg.Set("color", "true"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := cfg.Set("color", ""); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cfg.Color != nil {
		t.Fatalf("expected color reset, got %v", *cfg.Color)
	}
	if _, ok := cfg.Get("missing"); ok {
		t.Fatalf("unexpected key")
	}
}

func TestKeysSorted(t *testing.T) {
	keys := Keys()
	if len(keys) != len(fields) {
		t.Fatalf("expected %d keys, got %d", len(fields), len(keys))
	}
	for i := 1; i < len(keys); i++ {
		if keys[i-1] >= keys[i] {
			t.Fatalf("keys not sorted: %v", keys)
		}
	}
}
