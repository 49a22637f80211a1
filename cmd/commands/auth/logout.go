package auth

import (
	"errors"
	"fmt"

	"nathanbeddoewebdev/tint/internal/services/auth"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout [variant]",
		Short: "Remove a stored access key",
		Long: `Remove the access key stored for a token endpoint.

Example:
  tint auth logout hawaiian`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			endpoint := endpointArg(args)

			err := newStore().DeleteKey(endpoint)
			switch {
			case errors.Is(err, auth.ErrKeyNotFound):
				fmt.Fprintf(cmd.OutOrStdout(), "No access key stored for %s\n", endpoint)
				return nil
			case err != nil:
				return fmt.Errorf("failed to remove access key: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Removed access key for %s\n", endpoint)
			return nil
		},
		SilenceUsage: true,
	}

	return cmd
}
