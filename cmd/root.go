package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"nathanbeddoewebdev/tint/cmd/commands/auth"
	cfgcmd "nathanbeddoewebdev/tint/cmd/commands/config"
	"nathanbeddoewebdev/tint/cmd/commands/serve"
	"nathanbeddoewebdev/tint/cmd/commands/theme"
	"nathanbeddoewebdev/tint/internal/logging"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "tint",
		Short: "Fetch design tokens and preview the color schemes they produce",
		Long: `tint fetches a design token from a remote endpoint, derives light and
dark color schemes from it and shows the result. When the endpoint cannot be
reached the built-in default schemes are used.

Quick start:
  tint theme fetch                 # Print the schemes for the configured variant
  tint theme show                  # Live preview in the terminal
  tint theme check                 # Check every known variant
  tint auth login classic          # Store an endpoint access key
  tint serve                       # Run a local token endpoint`,
	}

	cmd.PersistentFlags().BoolP(logging.VerboseFlag, "v", false, "Enable debug logging on stderr")

	cmd.AddCommand(theme.NewCommand())
	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(serve.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var root = rootCmd()
	err := root.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}
