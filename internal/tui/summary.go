package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pagefit/internal/processor"
)

type SummaryRow struct {
	Label string
	Value string
}

func RenderSummary(rows []SummaryRow) string {
	labelWidth := 0
	valueWidth := 0
	for _, row := range rows {
		if len(row.Label) > labelWidth {
			labelWidth = len(row.Label)
		}
		if len(row.Value) > valueWidth {
			valueWidth = len(row.Value)
		}
	}

	hline := strings.Repeat("-", labelWidth+valueWidth+3)
	lines := []string{hline}

	for _, row := range rows {
		label := padRight(row.Label, labelWidth)
		value := padRight(row.Value, valueWidth)
		line := fmt.Sprintf("%s | %s", labelStyle.Render(label), valueStyle.Render(value))
		lines = append(lines, line)
	}

	lines = append(lines, hline)
	return strings.Join(lines, "\n")
}

// StatisticsRows lays out run statistics for RenderSummary.
func StatisticsRows(stats processor.Statistics, written int) []SummaryRow {
	if stats.Empty() {
		return []SummaryRow{{Label: "Pages written", Value: fmt.Sprintf("%d", written)}}
	}

	status := "complete"
	if !stats.ProcessSuccess {
		status = "pages dropped"
	}
	return []SummaryRow{
		{Label: "Target width", Value: fmt.Sprintf("%dpx", stats.TargetWidth)},
		{Label: "Pages analyzed", Value: fmt.Sprintf("%d", stats.TotalPages)},
		{Label: "Pages resized", Value: fmt.Sprintf("%d", stats.PagesResized)},
		{Label: "Pages unchanged", Value: fmt.Sprintf("%d", stats.PagesUnchanged)},
		{Label: "Pages written", Value: fmt.Sprintf("%d", written)},
		{Label: "Status", Value: status},
	}
}

// DistributionRows lists each width with its page count, widest first.
func DistributionRows(hist processor.WidthHistogram) []SummaryRow {
	widths := hist.SortedWidths()
	rows := make([]SummaryRow, 0, len(widths))
	for i := len(widths) - 1; i >= 0; i-- {
		w := widths[i]
		rows = append(rows, SummaryRow{
			Label: fmt.Sprintf("%dpx", w),
			Value: pageCount(hist.Count(w)),
		})
	}
	return rows
}

func pageCount(n int) string {
	if n == 1 {
		return "1 page"
	}
	return fmt.Sprintf("%d pages", n)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

var (
	valueStyle = lipgloss.NewStyle().Foreground(ColorInk).Bold(true)
)
