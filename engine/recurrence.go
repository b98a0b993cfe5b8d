package engine

import (
	"sort"
	"time"
)

// =============================================================================
// RECURRENCE DATE GENERATOR
// =============================================================================

// GenerateDates expands one recurrence rule into the concrete dates it
// covers within [start, end] inclusive. The result is ascending and
// deduplicated; start after end yields nil.
//
// Weekly rules walk calendar weeks from the Monday of start's week. A week
// qualifies when its index is a multiple of Every (week 0 is the first), and
// every selected weekday inside a qualifying week is emitted as long as it
// falls inside the range. The emitted dates are not required to share
// start's weekday.
//
// Monthly and yearly rules step by fixed 30*Every and 365*Every days rather
// than true calendar arithmetic. That is long-standing intended behavior:
// invoice contents depend on exactly which dates come out, so it stays even
// though it drifts against real month boundaries. AddMonths is the calendar-
// correct helper for callers that need one.
func GenerateDates(start, end Date, rule Recurrence) []Date {
	if start.After(end) {
		return nil
	}

	every := rule.Every
	if every < 1 {
		every = 1
	}
	frequency := rule.Frequency
	if frequency == "" {
		frequency = FreqWeek
	}

	var dates []Date
	if frequency == FreqWeek {
		dates = weeklyDates(start, end, every, rule.DaysOfWeek)
	} else {
		dates = steppedDates(start, end, frequency, every, rule.DaysOfWeek)
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dedupeDates(dates)
}

func weeklyDates(start, end Date, every int, daysOfWeek []time.Weekday) []Date {
	var dates []Date

	weekStart := start.StartOfWeek()
	for week := 0; !weekStart.After(end); week++ {
		if week%every == 0 {
			for _, wd := range daysOfWeek {
				d := weekStart.AddDays(mondayOffset(wd))
				if !d.Before(start) && !d.After(end) {
					dates = append(dates, d)
				}
			}
		}
		weekStart = weekStart.AddDays(7)
	}
	return dates
}

func steppedDates(start, end Date, frequency Frequency, every int, daysOfWeek []time.Weekday) []Date {
	step := every
	switch frequency {
	case FreqMonth:
		step = 30 * every
	case FreqYear:
		step = 365 * every
	}

	selected := make(map[time.Weekday]bool, len(daysOfWeek))
	for _, wd := range daysOfWeek {
		selected[wd] = true
	}

	var dates []Date
	for d := start; !d.After(end); d = d.AddDays(step) {
		if len(selected) == 0 || selected[d.Weekday()] {
			dates = append(dates, d)
		}
	}
	return dates
}

// mondayOffset maps a weekday to its day offset inside a Monday-started
// week (Monday=0 ... Sunday=6).
func mondayOffset(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

func dedupeDates(dates []Date) []Date {
	if len(dates) < 2 {
		return dates
	}
	out := dates[:1]
	for _, d := range dates[1:] {
		if !d.Equal(out[len(out)-1]) {
			out = append(out, d)
		}
	}
	return out
}
