package util

import (
	"strings"
	"testing"
	"time"
)

func TestValidateVariantName(t *testing.T) {
	valid := []string{"classic", "hawaiian", "v2", "dark-blue", "a"}
	for _, name := range valid {
		t.Run(name, func(t *testing.T) {
			if err := ValidateVariantName(name); err != nil {
				t.Errorf("expected %q to be valid, got error: %v", name, err)
			}
		})
	}

	invalid := []struct {
		name    string
		wantMsg string
	}{
		{"", "must not be empty"},
		{"Classic", "is invalid"},
		{"-classic", "is invalid"},
		{"classic-", "is invalid"},
		{"dark blue", "is invalid"},
		{"dark_blue", "is invalid"},
	}
	for _, tt := range invalid {
		t.Run("invalid "+tt.name, func(t *testing.T) {
			err := ValidateVariantName(tt.name)
			if err == nil {
				t.Fatalf("expected %q to be invalid, got nil", tt.name)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected error containing %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestValidateTokenURL(t *testing.T) {
	tests := []struct {
		raw     string
		wantMsg string
	}{
		{"https://api.jsonbin.io/v3/qs/660e1d1ce41b4d34e4deeb95", ""},
		{"http://127.0.0.1:8080/v3/qs/classic", ""},
		{"", "must not be empty"},
		{"ftp://example.com/token", "must use http or https"},
		{"api.jsonbin.io/v3", "must use http or https"},
		{"https:///path", "has no host"},
		{"http://[::1", "not a valid URL"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			err := ValidateTokenURL(tt.raw)
			if tt.wantMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected error containing %q, got %v", tt.wantMsg, err)
			}
		})
	}
}

func TestParseTimeout(t *testing.T) {
	got, err := ParseTimeout(" 1m30s ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 90*time.Second {
		t.Errorf("got %s, want 1m30s", got)
	}

	for _, bad := range []string{"", "soon", "0s", "-5s"} {
		if _, err := ParseTimeout(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestParseBool(t *testing.T) {
	tests := map[string]bool{
		"true": true, "TRUE": true, "1": true, "on": true, "yes": true,
		"false": false, "0": false, "off": false, "No": false,
	}
	for in, want := range tests {
		got, err := ParseBool(in)
		if err != nil {
			t.Errorf("ParseBool(%q) error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseBool(%q) = %v, want %v", in, got, want)
		}
	}

	if _, err := ParseBool("maybe"); err == nil {
		t.Error("expected error for \"maybe\"")
	}
}

func TestValidateHeaderName(t *testing.T) {
	for _, ok := range []string{"X-Access-Key", "X-Master-Key", "Authorization"} {
		if err := ValidateHeaderName(ok); err != nil {
			t.Errorf("expected %q to be valid, got %v", ok, err)
		}
	}
	for _, bad := range []string{"", "X Access", "X:Key", "Ключ"} {
		if err := ValidateHeaderName(bad); err == nil {
			t.Errorf("expected %q to be invalid", bad)
		}
	}
}

func TestNormalizeKey(t *testing.T) {
	if got := NormalizeKey("  Token-URL "); got != "token-url" {
		t.Errorf("NormalizeKey = %q, want %q", got, "token-url")
	}
}
