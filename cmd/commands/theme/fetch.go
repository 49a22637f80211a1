package theme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"nathanbeddoewebdev/tint/internal/retry"
	"nathanbeddoewebdev/tint/internal/theme/scheme"
	"nathanbeddoewebdev/tint/internal/theme/store"
	"nathanbeddoewebdev/tint/internal/token/domain"
	"nathanbeddoewebdev/tint/internal/tui"

	"github.com/charmbracelet/huh/spinner"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal reports whether stdout is interactive. Replaced in tests.
var isTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

// promptAccessKey asks the user for a new key. Replaced in tests.
var promptAccessKey = tui.PromptAccessKey

// FetchCommand returns the "theme fetch" command.
func FetchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch a design token and print the derived schemes",
		Long: `Fetch the design token for a variant and print the light and dark
color schemes derived from it.

If the fetch fails the default schemes are printed together with a warning
and the command still succeeds. A rejected access key is an error; in a
terminal you are asked for a new key and the fetch is retried once.

Examples:
  tint theme fetch
  tint theme fetch --variant hawaiian
  tint theme fetch --attempts 5 -o json`,
		RunE:         runFetch,
		SilenceUsage: true,
	}

	cmd.Flags().String("variant", "", "Token variant to fetch (defaults to config)")
	cmd.Flags().Int("attempts", 1, "Total fetch attempts for transient failures")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runFetch(cmd *cobra.Command, args []string) error {
	variant, _ := cmd.Flags().GetString("variant")
	attempts, _ := cmd.Flags().GetInt("attempts")
	output, _ := cmd.Flags().GetString("output")

	if output != "table" && output != "json" {
		return fmt.Errorf("unknown output format %q (expected table or json)", output)
	}
	if attempts < 1 {
		return fmt.Errorf("--attempts must be at least 1")
	}

	interactive := isTerminal()
	withSpinner := interactive && output == "table"

	p, err := newPipeline(cmd, variant)
	if err != nil {
		return err
	}
	defer p.Close()

	outcome, err := fetchOnce(cmd, p, attempts, withSpinner)
	if errors.Is(err, domain.ErrAuthRequired) {
		if !interactive {
			return fmt.Errorf("%w: run 'tint auth login %s' to store an access key", err, p.target.endpoint())
		}
		reason := fmt.Sprintf("%s rejected the stored access key.", p.target.label())
		if perr := promptAccessKey(p.keys, p.target.endpoint(), reason); perr != nil {
			if errors.Is(perr, tui.ErrAborted) {
				fmt.Fprintln(cmd.ErrOrStderr(), "Fetch cancelled.")
				return nil
			}
			return perr
		}

		// Rebuild so the source picks up the new key.
		p, err = newPipeline(cmd, variant)
		if err != nil {
			return err
		}
		defer p.Close()
		outcome, err = fetchOnce(cmd, p, attempts, withSpinner)
	}
	if err != nil {
		return fmt.Errorf("theme fetch failed: %w", err)
	}

	snap := p.svc.Store().Read()
	if output == "json" {
		return printFetchJSON(cmd.OutOrStdout(), p.target, outcome, snap)
	}

	if f, ok := outcome.(domain.Failure); ok {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s; showing default colors.\n", f.Error())
	}
	printSchemeTable(cmd.OutOrStdout(), snap)
	return nil
}

// fetchOnce runs one retried refresh. A Failure outcome is returned as the
// outcome, not as an error, once retries are exhausted.
func fetchOnce(cmd *cobra.Command, p *pipeline, attempts int, withSpinner bool) (domain.Outcome, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var outcome domain.Outcome
	run := func() error {
		return retry.Do(ctx, retry.DefaultConfig().WithAttempts(attempts), retry.IsRetryable, func() error {
			o, err := p.svc.Refresh(ctx)
			if err != nil {
				return err
			}
			outcome = o
			if f, ok := o.(domain.Failure); ok {
				return f
			}
			return nil
		})
	}

	var err error
	if withSpinner {
		accessible := os.Getenv("ACCESSIBLE") != ""
		var fetchErr error
		spinErr := spinner.New().
			Title(fmt.Sprintf("Fetching %s design token...", p.target.label())).
			Accessible(accessible).
			Output(cmd.ErrOrStderr()).
			Context(ctx).
			Action(func() { fetchErr = run() }).
			Run()
		if spinErr != nil {
			return nil, spinErr
		}
		err = fetchErr
	} else {
		err = run()
	}

	var f domain.Failure
	if errors.As(err, &f) {
		return outcome, nil
	}
	return outcome, err
}

func printSchemeTable(w io.Writer, snap store.Snapshot) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ROLE\tLIGHT\tDARK")
	fmt.Fprintln(tw, "----\t-----\t----")

	light := snap.Schemes.Light.Roles()
	dark := snap.Schemes.Dark.Roles()
	for i, role := range light {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", role.Name, role.Color, dark[i].Color)
	}
	tw.Flush()
}

type fetchJSON struct {
	Variant  string            `json:"variant,omitempty"`
	Outcome  string            `json:"outcome"`
	Failure  *failureJSON      `json:"failure,omitempty"`
	DarkMode bool              `json:"dark_mode"`
	Light    map[string]string `json:"light"`
	Dark     map[string]string `json:"dark"`
}

type failureJSON struct {
	Kind       string `json:"kind"`
	StatusCode int    `json:"status_code,omitempty"`
	Message    string `json:"message"`
}

func printFetchJSON(w io.Writer, t target, outcome domain.Outcome, snap store.Snapshot) error {
	out := fetchJSON{
		Variant:  t.variant,
		Outcome:  domain.Label(outcome),
		DarkMode: snap.DarkMode,
		Light:    roleMap(snap.Schemes.Light),
		Dark:     roleMap(snap.Schemes.Dark),
	}
	if f, ok := outcome.(domain.Failure); ok {
		out.Failure = &failureJSON{Kind: f.Kind.String(), StatusCode: f.StatusCode, Message: f.Message}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func roleMap(s scheme.Scheme) map[string]string {
	m := make(map[string]string, 12)
	for _, role := range s.Roles() {
		m[role.Name] = role.Color.String()
	}
	return m
}
