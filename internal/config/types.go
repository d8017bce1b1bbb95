package config

import (
	"fmt"
	"strings"
	"time"
)

// Duration is a time.Duration written as "5s" or "1m30s" in environment
// variables, YAML and TOML alike.
type Duration time.Duration

// Duration returns d as a time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Headers maps header names to values.
//
// From the environment it reads "Name:value,Name2:value2". Each item is split
// at its first colon, so values may contain colons but not commas.
type Headers map[string]string

// Decode implements envconfig.Decoder.
func (h *Headers) Decode(value string) error {
	out := Headers{}
	for _, item := range strings.Split(value, ",") {
		if strings.TrimSpace(item) == "" {
			continue
		}
		name, val, ok := strings.Cut(item, ":")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return fmt.Errorf("invalid header %q: want Name:value", item)
		}
		out[name] = strings.TrimSpace(val)
	}
	*h = out
	return nil
}
