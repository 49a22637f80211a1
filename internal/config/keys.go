package config

import (
	"fmt"
	"strconv"
	"strings"

	"nathanbeddoewebdev/tint/internal/util"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "token-url").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save).
	Set func(cfg *Config, value string)

	// Validate checks a raw value and returns its canonical form. Nil means
	// any value is accepted as-is.
	Validate func(value string) (string, error)
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "token-url",
		Description: "Token endpoint URL, used instead of a named variant",
		Get:         func(cfg *Config) string { return cfg.TokenURL },
		Set:         func(cfg *Config, v string) { cfg.TokenURL = v },
		Validate: func(v string) (string, error) {
			v = strings.TrimSpace(v)
			return v, util.ValidateTokenURL(v)
		},
	},
	{
		Name:        "variant",
		Description: "Token variant fetched when --variant is not specified",
		Get:         func(cfg *Config) string { return cfg.Variant },
		Set:         func(cfg *Config, v string) { cfg.Variant = v },
		Validate: func(v string) (string, error) {
			v = util.NormalizeKey(v)
			return v, util.ValidateVariantName(v)
		},
	},
	{
		Name:        "timeout",
		Description: "Connect, read and write timeout for token requests (e.g. 30s)",
		Get:         func(cfg *Config) string { return cfg.Timeout },
		Set:         func(cfg *Config, v string) { cfg.Timeout = v },
		Validate: func(v string) (string, error) {
			d, err := util.ParseTimeout(v)
			if err != nil {
				return "", err
			}
			return d.String(), nil
		},
	},
	{
		Name:        "dark-mode",
		Description: "Start in dark mode (true or false)",
		Get: func(cfg *Config) string {
			if !cfg.DarkMode {
				return ""
			}
			return "true"
		},
		Set: func(cfg *Config, v string) {
			b, _ := util.ParseBool(v)
			cfg.DarkMode = b
		},
		Validate: func(v string) (string, error) {
			b, err := util.ParseBool(v)
			if err != nil {
				return "", err
			}
			return strconv.FormatBool(b), nil
		},
	},
	{
		Name:        "access-key-header",
		Description: "HTTP header carrying the endpoint access key",
		Get:         func(cfg *Config) string { return cfg.AccessKeyHeader },
		Set:         func(cfg *Config, v string) { cfg.AccessKeyHeader = v },
		Validate: func(v string) (string, error) {
			v = strings.TrimSpace(v)
			return v, util.ValidateHeaderName(v)
		},
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := util.NormalizeKey(name)
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
