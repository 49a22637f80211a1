package components

import (
	"fmt"
	"slices"

	"nathanbeddoewebdev/tint/internal/tui/styles"

	"github.com/NimbleMarkets/ntcharts/sparkline"
	"github.com/charmbracelet/lipgloss"
)

// chartHeight is the fixed height for latency sparklines.
const chartHeight = 4

// LatencyChart renders fetch durations (milliseconds, oldest first) as a
// sparkline with a min/avg/max summary.
func LatencyChart(label string, data []float64, width int) string {
	if len(data) == 0 {
		return styles.MutedText.Render(label + ": no data")
	}

	sl := sparkline.New(max(width, 10), chartHeight,
		sparkline.WithStyle(lipgloss.NewStyle().Foreground(styles.Blue)))
	sl.PushAll(data)
	sl.Draw()

	lo, hi := slices.Min(data), slices.Max(data)
	var sum float64
	for _, v := range data {
		sum += v
	}
	summary := styles.MutedText.Render(fmt.Sprintf("  n: %d  min: %s  avg: %s  max: %s",
		len(data), formatMillis(lo), formatMillis(sum/float64(len(data))), formatMillis(hi)))

	return lipgloss.JoinVertical(lipgloss.Left, styles.Label.Render(label), sl.View(), summary)
}

func formatMillis(v float64) string {
	if v >= 1000 {
		return fmt.Sprintf("%.2fs", v/1000)
	}
	return fmt.Sprintf("%.0fms", v)
}
