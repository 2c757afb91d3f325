package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/archsetup/internal/batch"
	"github.com/blackwell-systems/archsetup/internal/store"
)

// ANSI color codes for status display.
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that NO_COLOR is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// statusColor maps a group status to its display color.
func statusColor(status batch.Status) string {
	switch status {
	case batch.StatusOK:
		return colorGreen
	case batch.StatusPartial:
		return colorYellow
	default:
		return colorRed
	}
}

// colorize wraps s in the given color when enabled.
func colorize(s, color string, enabled bool) string {
	if !enabled {
		return s
	}
	return color + s + colorReset
}

// RenderReport renders the per-group results and the final tally of one
// run, in processing order.
func RenderReport(report *batch.Report, colors bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-24s %-8s %9s %9s %9s %6s %9s\n",
		"GROUP", "STATUS", "PRESENT", "ATTEMPTED", "INSTALLED", "EXIT", "TIME"))

	for _, r := range report.Results() {
		// Pad before coloring; escape codes would break %-8s alignment.
		status := colorize(fmt.Sprintf("%-8s", r.Status), statusColor(r.Status), colors)
		sb.WriteString(fmt.Sprintf("%-24s %s %9d %9d %9d %6d %9s\n",
			truncate(r.Group.Name, 24),
			status,
			r.AlreadyInstalled,
			len(r.Attempted),
			r.Succeeded,
			r.ExitCode,
			formatDuration(r.Duration),
		))
	}

	s := report.Summarize()
	sb.WriteString(fmt.Sprintf("\n%d groups: %d passed, %d failed (%s total)\n",
		s.Total, s.Passed, s.Failed, formatDuration(s.Duration)))

	return sb.String()
}

// RenderHistory renders stored runs, most recent first.
func RenderHistory(runs []*store.Run) string {
	if len(runs) == 0 {
		return "No provisioning runs recorded yet.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-5s %-20s %-12s %8s %8s\n",
		"RUN", "STARTED", "MODE", "GROUPS", "FAILED"))

	for _, run := range runs {
		mode := "install"
		if run.OnlyConfig {
			mode = "config-only"
		}
		sb.WriteString(fmt.Sprintf("%-5d %-20s %-12s %8d %8d\n",
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			mode,
			run.GroupsTotal,
			run.GroupsFailed,
		))
	}
	return sb.String()
}

// RenderRunGroups renders the stored group results of a single run.
func RenderRunGroups(groups []*store.RunGroup) string {
	if len(groups) == 0 {
		return "No group results for this run.\n"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-24s %-8s %9s %9s %9s %6s %9s %-8s\n",
		"GROUP", "STATUS", "PRESENT", "ATTEMPTED", "INSTALLED", "EXIT", "TIME", "VIA"))

	for _, g := range groups {
		via := g.Installer
		if via == "" {
			via = "-"
		}
		sb.WriteString(fmt.Sprintf("%-24s %-8s %9d %9d %9d %6d %9s %-8s\n",
			truncate(g.Name, 24),
			g.Status,
			g.AlreadyInstalled,
			g.Attempted,
			g.Succeeded,
			g.ExitCode,
			formatDuration(time.Duration(g.DurationSecs)*time.Second),
			via,
		))
	}
	return sb.String()
}

// truncate shortens s to max bytes with an ellipsis; group names are
// ASCII so bytes and columns agree.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// formatDuration renders durations compactly (3s, 2m05s, 1h02m).
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	switch {
	case d >= time.Hour:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	case d >= time.Minute:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
}
