package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

var fields = map[string]field{
	"numbering": {
		get: func(c *Config) string { return formatBool(c.Numbering) },
		set: func(c *Config, v string) error { return parseBool(&c.Numbering, v) },
	},
	"number-width": {
		get: func(c *Config) string { return formatInt(int64(c.NumberWidth)) },
		set: func(c *Config, v string) error { return parseInt(&c.NumberWidth, v, 1, 20) },
	},
	"max-lines": {
		get: func(c *Config) string {
			if c.MaxLines == nil {
				return ""
			}
			return strconv.Itoa(*c.MaxLines)
		},
		set: func(c *Config, v string) error {
			v = strings.TrimSpace(v)
			if v == "" {
				c.MaxLines = nil
				return nil
			}
			var n int
			if err := parseInt(&n, v, 0, -1); err != nil {
				return err
			}
			c.MaxLines = &n
			return nil
		},
	},
	"max-bytes": {
		get: func(c *Config) string {
			if c.MaxBytes == nil {
				return ""
			}
			return strconv.FormatInt(*c.MaxBytes, 10)
		},
		set: func(c *Config, v string) error {
			v = strings.TrimSpace(v)
			if v == "" {
				c.MaxBytes = nil
				return nil
			}
			n, err := strconv.ParseInt(v, 10, 64)
			if err != nil || n < 0 {
				return fmt.Errorf("invalid byte budget %q", v)
			}
			c.MaxBytes = &n
			return nil
		},
	},
	"tab-width": {
		get: func(c *Config) string { return formatInt(int64(c.TabWidth)) },
		set: func(c *Config, v string) error { return parseInt(&c.TabWidth, v, -1, 64) },
	},
	"color": {
		get: func(c *Config) string { return formatBool(c.Color) },
		set: func(c *Config, v string) error { return parseBool(&c.Color, v) },
	},
	"east-asian": {
		get: func(c *Config) string { return formatBool(c.EastAsian) },
		set: func(c *Config, v string) error { return parseBool(&c.EastAsian, v) },
	},
	"mode": {
		get: func(c *Config) string { return c.Mode },
		set: func(c *Config, v string) error {
			v = strings.ToLower(strings.TrimSpace(v))
			switch v {
			case "", ModeAuto:
				c.Mode = ""
			case ModeWide, ModeByte:
				c.Mode = v
			default:
				return fmt.Errorf("invalid mode %q (want auto, wide or byte)", v)
			}
			return nil
		},
	},
	"encoding": {
		get: func(c *Config) string { return c.Encoding },
		set: func(c *Config, v string) error {
			c.Encoding = strings.TrimSpace(v)
			return nil
		},
	},
	"poll": {
		get: func(c *Config) string { return c.Poll },
		set: func(c *Config, v string) error {
			v = strings.TrimSpace(v)
			if v == "" {
				c.Poll = ""
				return nil
			}
			if _, err := time.ParseDuration(v); err != nil {
				return fmt.Errorf("invalid poll interval %q: %w", v, err)
			}
			c.Poll = v
			return nil
		},
	},
}

// Keys lists the settable preference names in sorted order.
func Keys() []string {
	out := make([]string, 0, len(fields))
	for k := range fields {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func (c Config) Get(key string) (string, bool) {
	f, ok := fields[key]
	if !ok {
		return "", false
	}
	return f.get(&c), true
}

// Set parses value into the named preference. An empty value resets it.
func (c *Config) Set(key, value string) error {
	f, ok := fields[key]
	if !ok {
		return fmt.Errorf("unknown setting %q", key)
	}
	return f.set(c, value)
}

// PollInterval returns the configured continuous-mode poll interval, or
// zero when unset.
func (c Config) PollInterval() time.Duration {
	d, err := time.ParseDuration(c.Poll)
	if err != nil {
		return 0
	}
	return d
}

func formatBool(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}

func formatInt(n int64) string {
	if n == 0 {
		return ""
	}
	return strconv.FormatInt(n, 10)
}

func parseBool(dst **bool, v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		*dst = nil
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("invalid boolean %q", v)
	}
	*dst = &b
	return nil
}

// parseInt accepts values in [lo, hi]; hi < lo means no upper bound.
func parseInt(dst *int, v string, lo, hi int) error {
	v = strings.TrimSpace(v)
	if v == "" {
		*dst = 0
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < lo || (hi >= lo && n > hi) {
		return fmt.Errorf("invalid number %q", v)
	}
	*dst = n
	return nil
}
