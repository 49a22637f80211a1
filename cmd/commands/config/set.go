package config

import (
	"fmt"
	"strings"

	"nathanbeddoewebdev/tint/internal/config"

	"github.com/spf13/cobra"
)

// SetCommand returns the "config set" command.
func SetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: "Set a persistent configuration value.\n\n" +
			config.KeysHelp() +
			"\nExamples:\n" +
			"  tint config set variant hawaiian\n" +
			"  tint config set timeout 30s",
		Args:         cobra.ExactArgs(2),
		RunE:         runSet,
		SilenceUsage: true,
	}

	return cmd
}

// checks maps key names to validation that needs the loaded config.
var checks = map[string]func(cfg *config.Config, value string) error{
	"variant": validateVariant,
}

func runSet(cmd *cobra.Command, args []string) error {
	spec := config.Lookup(args[0])
	if spec == nil {
		return fmt.Errorf("unknown configuration key %q (valid: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}

	value := args[1]
	if spec.Validate != nil {
		normalized, err := spec.Validate(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", spec.Name, err)
		}
		value = normalized
	}

	// Environment overrides must not leak into the file.
	cfg, err := config.LoadFile()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if check, ok := checks[spec.Name]; ok {
		if err := check(cfg, value); err != nil {
			return err
		}
	}

	spec.Set(cfg, value)
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s set to %q\n", spec.Name, value)
	return nil
}

// validateVariant checks that the variant has a known URL.
func validateVariant(cfg *config.Config, name string) error {
	if _, ok := cfg.AllVariants()[name]; ok {
		return nil
	}
	return fmt.Errorf("%w %q (known: %s)", config.ErrUnknownVariant, name, strings.Join(cfg.VariantNames(), ", "))
}
