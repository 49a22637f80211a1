package util

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// validVariantName matches lowercase alphanumerics and inner hyphens.
var validVariantName = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]*[a-z0-9])?$`)

// ValidateVariantName checks that a token variant name is a usable lookup
// key: lowercase letters, digits and hyphens, not starting or ending with a
// hyphen.
func ValidateVariantName(name string) error {
	if name == "" {
		return fmt.Errorf("variant name must not be empty")
	}
	if !validVariantName.MatchString(name) {
		return fmt.Errorf("variant name %q is invalid (only a-z, 0-9 and inner hyphens are allowed)", name)
	}
	return nil
}

// ValidateTokenURL checks that raw is an absolute http or https URL with a
// host.
func ValidateTokenURL(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fmt.Errorf("token URL must not be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("token URL %q is not a valid URL: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("token URL %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("token URL %q has no host", raw)
	}
	return nil
}

// ParseTimeout parses a positive Go duration such as "30s" or "1m30s".
func ParseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %s", d)
	}
	return d, nil
}

// ParseBool accepts the usual true/false spellings plus on/off and yes/no.
func ParseBool(s string) (bool, error) {
	switch NormalizeKey(s) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q (use true or false)", s)
	}
	return b, nil
}

// ValidateHeaderName checks that name is a valid HTTP header field name.
func ValidateHeaderName(name string) error {
	if name == "" {
		return fmt.Errorf("header name must not be empty")
	}
	for i := 0; i < len(name); i++ {
		if !isTokenChar(name[i]) {
			return fmt.Errorf("header name %q contains invalid character %q", name, string(name[i]))
		}
	}
	return nil
}

func isTokenChar(c byte) bool {
	if isAlphanumeric(c) {
		return true
	}
	return strings.IndexByte("!#$%&'*+-.^_`|~", c) >= 0
}

func isAlphanumeric(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
