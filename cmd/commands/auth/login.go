package auth

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login [variant]",
		Short: "Store an access key for a token endpoint",
		Long: `Store an access key for a token endpoint using the local keychain.

Without a variant the key is stored as the default entry, used by a bare
token-url. In a terminal the key is read without echo; otherwise the first
line of stdin is used.

Examples:
  tint auth login classic
  tint auth login hawaiian --key "$KEY"
  echo "$KEY" | tint auth login`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runLogin,
		SilenceUsage: true,
	}

	cmd.Flags().String("key", "", "Access key (optional, overrides prompt)")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	endpoint := endpointArg(args)

	key, _ := cmd.Flags().GetString("key")
	key = strings.TrimSpace(key)
	if key == "" {
		var err error
		key, err = readKey(cmd)
		if err != nil {
			return err
		}
	}
	if key == "" {
		return errors.New("access key cannot be empty")
	}

	if err := newStore().SetKey(endpoint, key); err != nil {
		return fmt.Errorf("failed to store access key: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved access key for %s\n", endpoint)
	return nil
}

func readKey(cmd *cobra.Command) (string, error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(cmd.ErrOrStderr(), "Enter access key: ")
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(string(b)), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && line == "" {
		return "", errors.New("no access key given; use --key or pipe it on stdin")
	}
	return strings.TrimSpace(line), nil
}
