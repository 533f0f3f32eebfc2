// Package output renders terminal tables and CSV exports for mining
// results.
//
// This package includes:
//   - Table rendering for frequent itemsets, association rules, runs,
//     and per-algorithm timing summaries
//   - CSV writers matching the on-disk result layout
//   - A progress bar and spinner for long mining operations
//
// All table rendering uses ASCII characters and ANSI color codes for
// terminal output. Progress indicators are thread-safe.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/rulemine/internal/mining"
	"github.com/blackwell-systems/rulemine/internal/store"
)

// ANSI color codes for confidence display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// RenderItemsetTable renders frequent itemsets in their documented
// order, truncated to topN rows (topN <= 0 shows everything). The
// caller's ordering is preserved — the enumerators already emit rows in
// their contract order, so "top N" here is meaningful.
func RenderItemsetTable(records []mining.FrequentItemset, topN int) string {
	if len(records) == 0 {
		return "No frequent itemsets found.\n"
	}

	shown := records
	if topN > 0 && len(records) > topN {
		shown = records[:topN]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-40s %-5s %s\n", "Itemset", "Size", "Support"))
	sb.WriteString(strings.Repeat("─", 56))
	sb.WriteString("\n")

	for _, rec := range shown {
		sb.WriteString(fmt.Sprintf("%-40s %-5d %.3f\n",
			truncate(rec.Items.String(), 40),
			len(rec.Items),
			rec.Support))
	}

	if hidden := len(records) - len(shown); hidden > 0 {
		sb.WriteString(fmt.Sprintf("... and %d more\n", hidden))
	}

	return sb.String()
}

// RenderRuleTable renders association rules in deriver order, truncated
// to topN rows. Confidence is colored by strength: green >= 0.8,
// yellow >= 0.5, red below.
func RenderRuleTable(rules []mining.Rule, topN int) string {
	if len(rules) == 0 {
		return "No rules met the confidence threshold.\n"
	}

	shown := rules
	if topN > 0 && len(rules) > topN {
		shown = rules[:topN]
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-28s %-28s %-8s %s\n",
		"Antecedent", "Consequent", "Support", "Confidence"))
	sb.WriteString(strings.Repeat("─", 78))
	sb.WriteString("\n")

	for _, rule := range shown {
		confStr := fmt.Sprintf("%.3f", rule.Confidence)
		sb.WriteString(fmt.Sprintf("%-28s %-28s %-8.3f %s\n",
			truncate(rule.Antecedent.String(), 28),
			truncate(rule.Consequent.String(), 28),
			rule.Support,
			colorize(confidenceColor(rule.Confidence), confStr)))
	}

	if hidden := len(rules) - len(shown); hidden > 0 {
		sb.WriteString(fmt.Sprintf("... and %d more\n", hidden))
	}

	return sb.String()
}

// confidenceColor picks the ANSI color for a confidence value.
func confidenceColor(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return colorGreen
	case confidence >= 0.5:
		return colorYellow
	default:
		return colorRed
	}
}

// RenderTimingTable renders the per-algorithm timing summary for one
// run.
func RenderTimingTable(timings []store.Timing) string {
	if len(timings) == 0 {
		return "No timings recorded.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-12s %s\n", "Algorithm", "Seconds"))
	sb.WriteString(strings.Repeat("─", 22))
	sb.WriteString("\n")
	for _, t := range timings {
		sb.WriteString(fmt.Sprintf("%-12s %.4f\n", t.Algorithm, t.Seconds))
	}
	return sb.String()
}

// RenderRunTable renders recorded runs, most recent first, with the
// algorithms each run executed.
func RenderRunTable(runs []*store.Run, algorithms map[int64][]string) string {
	if len(runs) == 0 {
		return "No runs recorded yet. Run 'rulemine mine' first.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-5s %-16s %-8s %-8s %-6s %-13s %s\n",
		"ID", "Dataset", "MinSup", "MinConf", "Txns", "When", "Algorithms"))
	sb.WriteString(strings.Repeat("─", 84))
	sb.WriteString("\n")

	for _, run := range runs {
		algos := strings.Join(algorithms[run.ID], ",")
		if algos == "" {
			algos = "—"
		}
		sb.WriteString(fmt.Sprintf("%-5d %-16s %-8.3f %-8.3f %-6d %-13s %s\n",
			run.ID,
			truncate(run.Dataset, 16),
			run.MinSupport,
			run.MinConfidence,
			run.TransactionCount,
			formatRelativeTime(run.CreatedAt),
			algos))
	}

	return sb.String()
}

// DatasetRow is one row of the dataset listing.
type DatasetRow struct {
	Name             string
	Path             string
	TransactionCount int
	ItemCount        int
}

// RenderDatasetTable renders discovered datasets with their sizes.
func RenderDatasetTable(rows []DatasetRow) string {
	if len(rows) == 0 {
		return "No datasets found. Place TID,Items CSV files in the data directory.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-20s %-8s %-8s %s\n", "Dataset", "Txns", "Items", "Path"))
	sb.WriteString(strings.Repeat("─", 72))
	sb.WriteString("\n")
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("%-20s %-8d %-8d %s\n",
			truncate(row.Name, 20), row.TransactionCount, row.ItemCount, row.Path))
	}
	return sb.String()
}

// formatRelativeTime formats a time as a relative duration from now.
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	duration := time.Since(t)
	days := int(duration.Hours() / 24)

	switch {
	case days == 0:
		hours := int(duration.Hours())
		if hours == 0 {
			minutes := int(duration.Minutes())
			if minutes <= 1 {
				return "just now"
			}
			return fmt.Sprintf("%d min ago", minutes)
		}
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case days == 1:
		return "yesterday"
	case days < 30:
		return fmt.Sprintf("%d days ago", days)
	case days < 365:
		months := days / 30
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	default:
		years := days / 365
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}

// truncate truncates a string to maxLen, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
