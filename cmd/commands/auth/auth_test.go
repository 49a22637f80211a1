package auth

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/tint/internal/config"
	"nathanbeddoewebdev/tint/internal/services/auth"
)

// setupAuth points config at a temp file and swaps in an in-memory key store.
func setupAuth(t *testing.T) *auth.MockStore {
	t.Helper()
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)

	store := auth.NewMockStore()
	orig := newStore
	newStore = func() auth.Store { return store }
	t.Cleanup(func() { newStore = orig })
	return store
}

// execAuth runs the auth command with stdin and returns its output.
func execAuth(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestLogin_WithKeyFlag(t *testing.T) {
	store := setupAuth(t)

	stdout, _, err := execAuth(t, "", "login", "Hawaiian", "--key", "  abc123  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "Saved access key for hawaiian") {
		t.Errorf("unexpected output: %s", stdout)
	}
	if key, _ := store.GetKey("hawaiian"); key != "abc123" {
		t.Errorf("stored key = %q, want abc123", key)
	}
}

func TestLogin_ReadsStdin(t *testing.T) {
	store := setupAuth(t)

	if _, _, err := execAuth(t, "piped-key\n", "login"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key, _ := store.GetKey(auth.DefaultEndpoint); key != "piped-key" {
		t.Errorf("stored key = %q, want piped-key", key)
	}
}

func TestLogin_EmptyKey(t *testing.T) {
	setupAuth(t)

	tests := []struct {
		name  string
		stdin string
	}{
		{"no input", ""},
		{"blank line", "   \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := execAuth(t, tt.stdin, "login", "classic"); err == nil {
				t.Error("expected an error for an empty key")
			}
		})
	}
}

func TestStatus_ListsEndpoints(t *testing.T) {
	store := setupAuth(t)
	store.SetKey("classic", "k")

	stdout, _, err := execAuth(t, "", "status")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"default: anonymous",
		"classic: access key stored",
		"hawaiian: anonymous",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestStatus_IncludesConfiguredVariants(t *testing.T) {
	setupAuth(t)
	cfg := &config.Config{Variants: map[string]string{"staging": "https://example.test/staging"}}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	stdout, _, err := execAuth(t, "", "status")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "staging: anonymous") {
		t.Errorf("expected configured variant in output:\n%s", stdout)
	}
}

func TestLogout(t *testing.T) {
	store := setupAuth(t)
	store.SetKey("classic", "k")

	stdout, _, err := execAuth(t, "", "logout", "classic")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(stdout, "Removed access key for classic") {
		t.Errorf("unexpected output: %s", stdout)
	}
	if _, err := store.GetKey("classic"); err == nil {
		t.Error("key should have been removed")
	}

	stdout, _, err = execAuth(t, "", "logout", "classic")
	if err != nil {
		t.Fatalf("second logout should not fail: %v", err)
	}
	if !strings.Contains(stdout, "No access key stored for classic") {
		t.Errorf("unexpected output: %s", stdout)
	}
}
