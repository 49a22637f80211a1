package auth

import (
	"nathanbeddoewebdev/tint/internal/config"
	"nathanbeddoewebdev/tint/internal/services/auth"

	"github.com/spf13/cobra"
)

// newStore is replaced in tests.
var newStore = auth.DefaultStore

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage token endpoint access keys",
		Long: `Manage access keys for token endpoints.

Keys are stored in the system keychain under the variant name. A token URL
configured without a variant uses the "default" entry.`,
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(StatusCommand())
	cmd.AddCommand(LogoutCommand())

	return cmd
}

// knownEndpoints lists every configured variant plus the default entry.
func knownEndpoints() []string {
	names := []string{auth.DefaultEndpoint}
	cfg, err := config.Load()
	if err != nil {
		return names
	}
	return append(names, cfg.VariantNames()...)
}

// endpointArg returns the endpoint named by args, or the default entry.
func endpointArg(args []string) string {
	if len(args) == 0 {
		return auth.DefaultEndpoint
	}
	return auth.NormalizeEndpoint(args[0])
}
