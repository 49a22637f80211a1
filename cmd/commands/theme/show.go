package theme

import (
	"context"
	"errors"
	"fmt"

	"nathanbeddoewebdev/tint/internal/tui"

	"github.com/spf13/cobra"
)

// runThemePreview is replaced in tests.
var runThemePreview = tui.RunThemePreview

// ShowCommand returns the "theme show" command.
func ShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Preview a theme interactively",
		Long: `Open a live preview of the active color scheme.

The token is fetched on start. Press r to refetch, d to toggle dark mode
and q to quit. Requires a terminal; use 'tint theme fetch' in scripts.`,
		RunE:         runShow,
		SilenceUsage: true,
	}

	cmd.Flags().String("variant", "", "Token variant to preview (defaults to config)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	if !isTerminal() {
		return errors.New("theme show requires a terminal; use 'tint theme fetch' instead")
	}

	variant, _ := cmd.Flags().GetString("variant")
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// A rejected key sends the user through the prompt once before giving up.
	for attempt := 0; attempt < 2; attempt++ {
		p, err := newPipeline(cmd, variant)
		if err != nil {
			return err
		}

		result, err := runThemePreview(ctx, p.svc, p.target.variant)
		p.Close()
		if err != nil {
			return err
		}
		if !result.AuthRequired {
			return nil
		}
		if attempt > 0 {
			break
		}

		reason := fmt.Sprintf("%s rejected the stored access key.", p.target.label())
		if err := promptAccessKey(p.keys, p.target.endpoint(), reason); err != nil {
			if errors.Is(err, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Preview cancelled.")
				return nil
			}
			return err
		}
	}

	return errors.New("access key rejected again; run 'tint auth login' to replace it")
}
