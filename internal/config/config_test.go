package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"nathanbeddoewebdev/tint/internal/token/source"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("expected zero config (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tint", "config.json")

	want := &Config{
		TokenURL:        "https://example.test/token",
		Variant:         "hawaiian",
		Timeout:         "30s",
		DarkMode:        true,
		AccessKeyHeader: "X-Master-Key",
		Variants:        map[string]string{"staging": "https://staging.test/token"},
	}
	if err := want.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deep")
	path := filepath.Join(dir, "config.json")

	cfg := &Config{Variant: "classic"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := (&Config{TokenURL: "https://file.test/token", Timeout: "10s"}).SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("TINT_TOKEN_URL", "https://env.test/token")
	t.Setenv("TINT_DARK_MODE", "true")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TokenURL != "https://env.test/token" {
		t.Errorf("TokenURL = %q, want env override", cfg.TokenURL)
	}
	if !cfg.DarkMode {
		t.Error("expected DarkMode from TINT_DARK_MODE")
	}
	if cfg.Timeout != "10s" {
		t.Errorf("Timeout = %q, want value from file", cfg.Timeout)
	}
}

func TestLoadFile_IgnoresEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	SetPath(path)
	t.Cleanup(ResetPath)

	t.Setenv("TINT_TOKEN_URL", "https://env.test/token")

	cfg, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.TokenURL != "" {
		t.Errorf("TokenURL = %q, LoadFile must not apply env overrides", cfg.TokenURL)
	}
}

func TestEffectiveTimeout(t *testing.T) {
	tests := []struct {
		timeout string
		want    time.Duration
	}{
		{"", source.DefaultTimeout},
		{"15s", 15 * time.Second},
		{"garbage", source.DefaultTimeout},
		{"-1s", source.DefaultTimeout},
	}
	for _, tt := range tests {
		cfg := &Config{Timeout: tt.timeout}
		if got := cfg.EffectiveTimeout(); got != tt.want {
			t.Errorf("EffectiveTimeout(%q) = %s, want %s", tt.timeout, got, tt.want)
		}
	}
}

func TestEffectiveAccessKeyHeader(t *testing.T) {
	if got := (&Config{}).EffectiveAccessKeyHeader(); got != source.DefaultAccessKeyHeader {
		t.Errorf("default header = %q, want %q", got, source.DefaultAccessKeyHeader)
	}
	if got := (&Config{AccessKeyHeader: "X-Master-Key"}).EffectiveAccessKeyHeader(); got != "X-Master-Key" {
		t.Errorf("header = %q, want X-Master-Key", got)
	}
}

func TestResolve(t *testing.T) {
	cfg := &Config{Variants: map[string]string{"Staging": "https://staging.test/token"}}

	tests := []struct {
		name     string
		cfg      *Config
		variant  string
		wantName string
		wantURL  string
	}{
		{"default variant", &Config{}, "", "classic", defaultVariants["classic"]},
		{"explicit built-in", &Config{}, "Hawaiian", "hawaiian", defaultVariants["hawaiian"]},
		{"configured variant", cfg, "staging", "staging", "https://staging.test/token"},
		{"token url wins without variant", &Config{TokenURL: "https://x.test/t", Variant: "hawaiian"}, "", "", "https://x.test/t"},
		{"explicit variant beats token url", &Config{TokenURL: "https://x.test/t"}, "classic", "classic", defaultVariants["classic"]},
		{"configured default", &Config{Variant: "hawaiian"}, "", "hawaiian", defaultVariants["hawaiian"]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, url, err := tt.cfg.Resolve(tt.variant)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if name != tt.wantName || url != tt.wantURL {
				t.Errorf("Resolve(%q) = (%q, %q), want (%q, %q)", tt.variant, name, url, tt.wantName, tt.wantURL)
			}
		})
	}
}

func TestResolve_Unknown(t *testing.T) {
	_, _, err := (&Config{}).Resolve("tropical")
	if !errors.Is(err, ErrUnknownVariant) {
		t.Fatalf("err = %v, want ErrUnknownVariant", err)
	}
}

func TestVariantNames_Sorted(t *testing.T) {
	cfg := &Config{Variants: map[string]string{"aurora": "https://a.test"}}
	want := []string{"aurora", "classic", "hawaiian"}
	if diff := cmp.Diff(want, cfg.VariantNames()); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}
