package engine

import (
	"fmt"
	"strings"

	"github.com/warp/scheduling-engine/catalog"
)

// =============================================================================
// DURATION FORMATTER
// =============================================================================

const minutesPerDay = 1440

// FormatMinutes renders a minute count as a composite of days, hours and
// minutes, emitting only non-zero components with singular/plural units:
// 90 -> "1 hour 30 minutes", 1440 -> "1 day", 0 -> "0 minutes".
func FormatMinutes(minutes int) string {
	if minutes == 0 {
		return "0 minutes"
	}

	days := minutes / minutesPerDay
	hours := (minutes % minutesPerDay) / 60
	mins := minutes % 60

	var parts []string
	if days > 0 {
		parts = append(parts, pluralize(days, "day"))
	}
	if hours > 0 {
		parts = append(parts, pluralize(hours, "hour"))
	}
	if mins > 0 {
		parts = append(parts, pluralize(mins, "minute"))
	}

	if len(parts) == 0 {
		return "0 minutes"
	}
	return strings.Join(parts, " ")
}

// FormatMinutesText formats a raw minute field from the catalog. Text that
// does not parse as a number comes back unchanged; a malformed charge block
// must still render rather than raise.
func FormatMinutesText(raw string) string {
	minutes, ok := catalog.ParseMinutes(raw)
	if !ok {
		return raw
	}
	return FormatMinutes(minutes)
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
