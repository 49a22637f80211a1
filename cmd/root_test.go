package cmd

import (
	"bytes"
	"strings"
	"testing"

	"nathanbeddoewebdev/tint/internal/logging"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := rootCmd()

	for _, name := range []string{"theme", "auth", "config", "serve"} {
		if c, _, err := root.Find([]string{name}); err != nil || c.Name() != name {
			t.Errorf("expected subcommand %q, got %v (err %v)", name, c, err)
		}
	}
	for _, path := range [][]string{
		{"theme", "fetch"}, {"theme", "show"}, {"theme", "check"}, {"theme", "history"},
		{"auth", "login"}, {"auth", "status"}, {"auth", "logout"},
		{"config", "get"}, {"config", "set"},
	} {
		if c, _, err := root.Find(path); err != nil || c.Name() != path[len(path)-1] {
			t.Errorf("expected command %q", strings.Join(path, " "))
		}
	}
}

func TestRootCmd_VerboseFlagIsInherited(t *testing.T) {
	root := rootCmd()

	fetch, _, err := root.Find([]string{"theme", "fetch"})
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if fetch.InheritedFlags().Lookup(logging.VerboseFlag) == nil {
		t.Errorf("expected --%s to be inherited by theme fetch", logging.VerboseFlag)
	}
}

func TestRootCmd_Help(t *testing.T) {
	root := rootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"--help"})

	if err := root.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "tint theme fetch") {
		t.Errorf("expected quick start in help:\n%s", out.String())
	}
}
