package engine

import "sort"

// =============================================================================
// MONTH FILTER - "Month Year" labels over the appointment date set
// =============================================================================

// MonthLabels returns the distinct "January 2006"-style labels covering the
// appointment dates, sorted chronologically. The UI layer uses these as a
// filter control.
func MonthLabels(appointments []Appointment) []string {
	type yearMonth struct {
		year  int
		month int
	}

	seen := make(map[yearMonth]string)
	for _, a := range appointments {
		if a.Date.IsZero() {
			continue
		}
		key := yearMonth{year: a.Date.Year(), month: int(a.Date.Month())}
		seen[key] = a.Date.MonthLabel()
	}

	keys := make([]yearMonth, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	labels := make([]string, len(keys))
	for i, k := range keys {
		labels[i] = seen[k]
	}
	return labels
}

// FilterByMonth keeps only appointments whose date falls in the calendar
// month named by label ("November 2025"). An empty label keeps everything.
func FilterByMonth(appointments []Appointment, label string) []Appointment {
	if label == "" {
		return appointments
	}

	var filtered []Appointment
	for _, a := range appointments {
		if a.Date.MonthLabel() == label {
			filtered = append(filtered, a)
		}
	}
	return filtered
}
