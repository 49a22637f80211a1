package auth

import (
	"fmt"
	"os"

	"nathanbeddoewebdev/tint/internal/tui"

	"golang.org/x/term"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show which endpoints have stored access keys",
		Long: `Show which token endpoints have a stored access key.

Endpoints without a key are fetched anonymously.

Example:
  tint auth status`,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := newStore()
			endpoints := knownEndpoints()

			// Use TUI in interactive terminal.
			if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				if err := tui.RunAuthStatus(store, endpoints); err != nil {
					return fmt.Errorf("auth status failed: %w", err)
				}
				return nil
			}

			for _, s := range tui.CheckEndpoints(store, endpoints) {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", s.Name, s.Text())
			}
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
