package theme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"nathanbeddoewebdev/tint/internal/token/domain"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentChecks bounds the number of endpoints fetched at once.
const maxConcurrentChecks = 4

// CheckCommand returns the "theme check" command.
func CheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Fetch every configured variant and report the outcome",
		Long: `Fetch the design token of every configured variant concurrently and
report whether each one could be turned into a color scheme.

Each variant is fetched in isolation; the active theme is not changed.
The command exits non-zero if any variant failed.

Examples:
  tint theme check
  tint theme check -o json`,
		RunE:         runCheck,
		SilenceUsage: true,
	}

	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

// checkResult is the outcome of checking one variant.
type checkResult struct {
	Variant    string `json:"variant"`
	Outcome    string `json:"outcome"`
	Detail     string `json:"detail,omitempty"`
	DurationMs int64  `json:"duration_ms"`
}

func (r checkResult) ok() bool { return r.Outcome == domain.Label(domain.Data{}) }

func runCheck(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	if output != "table" && output != "json" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	results, err := checkVariants(ctx, e)
	if err != nil {
		return err
	}

	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return err
		}
	} else {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "VARIANT\tOUTCOME\tLATENCY\tDETAIL")
		fmt.Fprintln(w, "-------\t-------\t-------\t------")
		for _, r := range results {
			detail := r.Detail
			if detail == "" {
				detail = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Variant, r.Outcome, formatDuration(r.DurationMs), detail)
		}
		w.Flush()
	}

	failed := 0
	for _, r := range results {
		if !r.ok() {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d variants failed", failed, len(results))
	}
	return nil
}

// checkVariants fetches every configured variant, each through its own
// service and store. Results keep the order of cfg.VariantNames.
func checkVariants(ctx context.Context, e *env) ([]checkResult, error) {
	names := e.cfg.VariantNames()
	results := make([]checkResult, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentChecks)

	for i, name := range names {
		g.Go(func() error {
			_, url, err := e.cfg.Resolve(name)
			if err != nil {
				return err
			}
			svc, err := e.service(target{variant: name, url: url}, e.newStore())
			if err != nil {
				return err
			}

			start := time.Now()
			o, err := svc.Refresh(gctx)
			r := checkResult{Variant: name, DurationMs: time.Since(start).Milliseconds()}
			switch {
			case errors.Is(err, domain.ErrAuthRequired):
				r.Outcome = "auth"
				r.Detail = fmt.Sprintf("access key rejected; run 'tint auth login %s'", name)
			case err != nil:
				return err
			default:
				r.Outcome = domain.Label(o)
				if f, ok := o.(domain.Failure); ok {
					r.Detail = f.Error()
				}
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func formatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	d := time.Duration(ms) * time.Millisecond
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm", int(d.Minutes()))
}
