// Package cli provides formatting utilities for statusline output.
package cli

import (
	"fmt"
	"strconv"
)

// FormatTokens formats a token count with human-readable suffixes.
// e.g., 1234 -> "1.2K", 1234567 -> "1.2M"
func FormatTokens(n int64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}

	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	default:
		return strconv.FormatInt(n, 10)
	}
}

// FormatCost formats a USD cost. Statusline amounts are usually cents to
// tens of dollars, so two decimals below $10 and coarser above.
func FormatCost(cost float64) string {
	switch {
	case cost >= 100:
		return fmt.Sprintf("$%.0f", cost)
	case cost >= 10:
		return fmt.Sprintf("$%.1f", cost)
	default:
		return fmt.Sprintf("$%.2f", cost)
	}
}

// FormatDuration formats seconds into a compact duration.
// e.g., 3725 -> "1h 2m", 125 -> "2m", 45 -> "45s"
func FormatDuration(secs int64) string {
	if secs <= 0 {
		return "0s"
	}

	hours := secs / 3600
	mins := (secs % 3600) / 60

	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, mins)
	}
	if mins > 0 {
		return fmt.Sprintf("%dm", mins)
	}
	return fmt.Sprintf("%ds", secs)
}

// FormatDays renders a renewal countdown.
func FormatDays(days int) string {
	switch {
	case days < 0:
		return "overdue"
	case days == 0:
		return "today"
	case days == 1:
		return "1 day"
	default:
		return strconv.Itoa(days) + " days"
	}
}
