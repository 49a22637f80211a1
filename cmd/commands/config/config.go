package config

import (
	"nathanbeddoewebdev/tint/internal/config"

	"github.com/spf13/cobra"
)

// NewCommand returns the "config" parent command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage tint configuration",
		Long: "View and modify persistent tint settings.\n\n" +
			"Configuration is stored at ~/.config/tint/config.json. Every key can be\n" +
			"overridden for a single run with a TINT_ environment variable, e.g.\n" +
			"TINT_TOKEN_URL or TINT_DARK_MODE.\n\n" +
			config.KeysHelp(),
	}

	cmd.AddCommand(SetCommand())
	cmd.AddCommand(GetCommand())

	return cmd
}
