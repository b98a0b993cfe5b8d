package engine_test

import (
	"testing"
	"time"

	"github.com/warp/scheduling-engine/engine"
)

func datesEqual(t *testing.T, got []engine.Date, want ...engine.Date) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d dates, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("date %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestGenerateDates_Weekly_EmitsAllSelectedDaysInRange(t *testing.T) {
	// GIVEN: weekly every 1, Monday+Wednesday, Mon Nov 3 through Nov 16
	// WHEN: generating dates
	// THEN: both weekdays of both covered weeks, ascending

	start := engine.NewDate(2025, time.November, 3) // a Monday
	end := engine.NewDate(2025, time.November, 16)

	got := engine.GenerateDates(start, end, engine.Recurrence{
		Frequency:  engine.FreqWeek,
		Every:      1,
		DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday},
	})

	datesEqual(t, got,
		engine.NewDate(2025, time.November, 3),
		engine.NewDate(2025, time.November, 5),
		engine.NewDate(2025, time.November, 10),
		engine.NewDate(2025, time.November, 12),
	)
}

func TestGenerateDates_Weekly_MidWeekStartExcludesEarlierDays(t *testing.T) {
	// GIVEN: start on a Wednesday with Monday selected
	// WHEN: generating over two weeks
	// THEN: week 0's Monday precedes the start and is excluded

	start := engine.NewDate(2025, time.November, 5) // a Wednesday
	end := engine.NewDate(2025, time.November, 12)

	got := engine.GenerateDates(start, end, engine.Recurrence{
		Frequency:  engine.FreqWeek,
		DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday},
	})

	datesEqual(t, got,
		engine.NewDate(2025, time.November, 5),
		engine.NewDate(2025, time.November, 10),
		engine.NewDate(2025, time.November, 12),
	)
}

func TestGenerateDates_EveryTwoWeeks_SkipsOddWeeks(t *testing.T) {
	// GIVEN: weekly every 2 over four calendar weeks
	// WHEN: generating dates
	// THEN: only weeks 0 and 2 contribute

	start := engine.NewDate(2025, time.November, 3)
	end := engine.NewDate(2025, time.November, 30)

	got := engine.GenerateDates(start, end, engine.Recurrence{
		Frequency:  engine.FreqWeek,
		Every:      2,
		DaysOfWeek: []time.Weekday{time.Monday, time.Wednesday},
	})

	datesEqual(t, got,
		engine.NewDate(2025, time.November, 3),
		engine.NewDate(2025, time.November, 5),
		engine.NewDate(2025, time.November, 17),
		engine.NewDate(2025, time.November, 19),
	)
}

func TestGenerateDates_Weekly_OutOfOrderSelectionSortsAscending(t *testing.T) {
	// GIVEN: weekdays selected in reverse order
	// WHEN: generating one week
	// THEN: output is still ascending

	start := engine.NewDate(2025, time.November, 3)
	end := engine.NewDate(2025, time.November, 9)

	got := engine.GenerateDates(start, end, engine.Recurrence{
		Frequency:  engine.FreqWeek,
		DaysOfWeek: []time.Weekday{time.Friday, time.Monday},
	})

	datesEqual(t, got,
		engine.NewDate(2025, time.November, 3),
		engine.NewDate(2025, time.November, 7),
	)
}

func TestGenerateDates_Daily_StepsByEvery(t *testing.T) {
	start := engine.NewDate(2025, time.November, 1)
	end := engine.NewDate(2025, time.November, 8)

	got := engine.GenerateDates(start, end, engine.Recurrence{
		Frequency: engine.FreqDay,
		Every:     3,
	})

	datesEqual(t, got,
		engine.NewDate(2025, time.November, 1),
		engine.NewDate(2025, time.November, 4),
		engine.NewDate(2025, time.November, 7),
	)
}

func TestGenerateDates_Monthly_UsesThirtyDaySteps(t *testing.T) {
	// The monthly frequency steps by 30*every days, not calendar months.
	start := engine.NewDate(2025, time.January, 15)
	end := engine.NewDate(2025, time.April, 30)

	got := engine.GenerateDates(start, end, engine.Recurrence{
		Frequency: engine.FreqMonth,
		Every:     1,
	})

	datesEqual(t, got,
		engine.NewDate(2025, time.January, 15),
		engine.NewDate(2025, time.February, 14),
		engine.NewDate(2025, time.March, 16),
		engine.NewDate(2025, time.April, 15),
	)
}

func TestGenerateDates_Yearly_UsesThreeSixtyFiveDaySteps(t *testing.T) {
	start := engine.NewDate(2025, time.June, 1)
	end := engine.NewDate(2027, time.June, 30)

	got := engine.GenerateDates(start, end, engine.Recurrence{
		Frequency: engine.FreqYear,
		Every:     1,
	})

	// 2025-06-01 + 365d = 2026-06-01; +365d again = 2027-06-01.
	datesEqual(t, got,
		engine.NewDate(2025, time.June, 1),
		engine.NewDate(2026, time.June, 1),
		engine.NewDate(2027, time.June, 1),
	)
}

func TestGenerateDates_StartAfterEnd_ReturnsEmpty(t *testing.T) {
	got := engine.GenerateDates(
		engine.NewDate(2025, time.November, 10),
		engine.NewDate(2025, time.November, 3),
		engine.Recurrence{Frequency: engine.FreqWeek, DaysOfWeek: []time.Weekday{time.Monday}},
	)
	if len(got) != 0 {
		t.Errorf("expected empty sequence, got %v", got)
	}
}

func TestGenerateDates_Defaults_WeeklyEveryOne(t *testing.T) {
	// GIVEN: a rule with zero Every and empty Frequency
	// THEN: it behaves as weekly, every week

	start := engine.NewDate(2025, time.November, 3)
	end := engine.NewDate(2025, time.November, 16)

	got := engine.GenerateDates(start, end, engine.Recurrence{
		DaysOfWeek: []time.Weekday{time.Monday},
	})

	datesEqual(t, got,
		engine.NewDate(2025, time.November, 3),
		engine.NewDate(2025, time.November, 10),
	)
}

func TestGenerateDates_DuplicateWeekdaySelection_Deduplicates(t *testing.T) {
	start := engine.NewDate(2025, time.November, 3)
	end := engine.NewDate(2025, time.November, 9)

	got := engine.GenerateDates(start, end, engine.Recurrence{
		Frequency:  engine.FreqWeek,
		DaysOfWeek: []time.Weekday{time.Monday, time.Monday},
	})

	datesEqual(t, got, engine.NewDate(2025, time.November, 3))
}
