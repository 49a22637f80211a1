package theme

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"nathanbeddoewebdev/tint/internal/fetchlog"
	"nathanbeddoewebdev/tint/internal/tui/components"

	"github.com/spf13/cobra"
)

// HistoryCommand returns the "theme history" command.
func HistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded fetch attempts",
		Long: `List recent token fetch attempts stored locally, newest first, with a
latency sparkline of the listed attempts.

Use --prune to delete attempts older than a duration instead.

Examples:
  tint theme history
  tint theme history --variant hawaiian --limit 50
  tint theme history -o json
  tint theme history --prune 30d`,
		RunE:         runHistory,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 25, "Number of entries to display")
	cmd.Flags().String("variant", "", "Only show attempts for this variant")
	cmd.Flags().String("prune", "", "Remove entries older than this duration (e.g. 30d, 72h)")
	cmd.Flags().StringP("output", "o", "table", "Output format: table or json")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	repo, err := fetchlog.Open()
	if err != nil {
		return err
	}
	defer repo.Close()

	if raw, _ := cmd.Flags().GetString("prune"); strings.TrimSpace(raw) != "" {
		olderThan, err := parseDuration(strings.TrimSpace(raw))
		if err != nil {
			return err
		}
		removed, err := repo.Prune(olderThan)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d fetch entr(y/ies).\n", removed)
		return nil
	}

	limit, _ := cmd.Flags().GetInt("limit")
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}
	variant, _ := cmd.Flags().GetString("variant")
	output, _ := cmd.Flags().GetString("output")

	var entries []fetchlog.Entry
	if variant != "" {
		entries, err = repo.ListByVariant(variant, limit)
	} else {
		entries, err = repo.List(limit)
	}
	if err != nil {
		return err
	}

	if output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}
	if output != "table" {
		return fmt.Errorf("unsupported output format %q", output)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No fetch attempts recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tVARIANT\tOUTCOME\tDURATION\tDETAIL")
	fmt.Fprintln(w, "----\t-------\t-------\t--------\t------")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			entry.Timestamp.Local().Format("2006-01-02 15:04:05"),
			orDash(entry.Variant),
			entry.Outcome,
			formatDuration(entry.DurationMs),
			formatDetail(entry),
		)
	}
	w.Flush()

	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprintln(cmd.OutOrStdout(), components.LatencyChart("Latency", fetchlog.Durations(entries), 60))
	return nil
}

func formatDetail(entry fetchlog.Entry) string {
	if entry.Kind == "" {
		return orDash(entry.Message)
	}
	if entry.StatusCode != 0 {
		return fmt.Sprintf("%s (%d): %s", entry.Kind, entry.StatusCode, entry.Message)
	}
	return fmt.Sprintf("%s: %s", entry.Kind, entry.Message)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// parseDuration accepts time.ParseDuration input plus a whole number of days,
// e.g. "30d".
func parseDuration(input string) (time.Duration, error) {
	if before, ok := strings.CutSuffix(input, "d"); ok {
		days, err := strconv.Atoi(before)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q", input)
		}
		if days < 0 {
			return 0, fmt.Errorf("duration must be positive")
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(input)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q", input)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be positive")
	}
	return d, nil
}
