package tui

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"nathanbeddoewebdev/tint/internal/services/auth"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user cancels an interactive prompt.
var ErrAborted = errors.New("aborted by user")

// PromptAccessKey asks for an endpoint access key and stores it. reason is
// shown above the input, e.g. why the previous fetch was rejected.
func PromptAccessKey(store auth.Store, endpoint, reason string) error {
	accessible := os.Getenv("ACCESSIBLE") != ""

	var key string
	fields := []huh.Field{}
	if reason != "" {
		fields = append(fields, huh.NewNote().
			Title("Authentication required").
			Description(reason))
	}
	fields = append(fields, huh.NewInput().
		Title(fmt.Sprintf("Access key for %s", auth.NormalizeEndpoint(endpoint))).
		EchoMode(huh.EchoModePassword).
		Value(&key).
		Validate(validateAccessKey))

	if err := runForm(accessible, huh.NewGroup(fields...)); err != nil {
		return err
	}

	return store.SetKey(endpoint, strings.TrimSpace(key))
}

func validateAccessKey(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("access key cannot be empty")
	}
	return nil
}

func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}
