package engine_test

import (
	"testing"
	"time"

	"github.com/warp/scheduling-engine/engine"
)

func TestAddMonths_ClampsToShorterMonth(t *testing.T) {
	// GIVEN: Jan 31 in a non-leap year
	// WHEN: adding one month
	// THEN: the day clamps to Feb 28

	got := engine.AddMonths(engine.NewDate(2025, time.January, 31), 1)
	if want := engine.NewDate(2025, time.February, 28); !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestAddMonths_LeapYearClampsToFeb29(t *testing.T) {
	got := engine.AddMonths(engine.NewDate(2024, time.January, 31), 1)
	if want := engine.NewDate(2024, time.February, 29); !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestAddMonths_YearRollover(t *testing.T) {
	got := engine.AddMonths(engine.NewDate(2025, time.November, 15), 3)
	if want := engine.NewDate(2026, time.February, 15); !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestAddMonths_NegativeMonths(t *testing.T) {
	got := engine.AddMonths(engine.NewDate(2025, time.March, 31), -1)
	if want := engine.NewDate(2025, time.February, 28); !got.Equal(want) {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestStartOfWeek_AlwaysMonday(t *testing.T) {
	cases := []struct {
		name string
		in   engine.Date
		want engine.Date
	}{
		{"monday maps to itself", engine.NewDate(2025, time.November, 3), engine.NewDate(2025, time.November, 3)},
		{"wednesday", engine.NewDate(2025, time.November, 5), engine.NewDate(2025, time.November, 3)},
		{"sunday belongs to the preceding monday", engine.NewDate(2025, time.November, 9), engine.NewDate(2025, time.November, 3)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.StartOfWeek(); !got.Equal(tc.want) {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestParseDate_RoundTrip(t *testing.T) {
	d, err := engine.ParseDate("2025-11-03")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.String() != "2025-11-03" {
		t.Errorf("expected 2025-11-03, got %s", d)
	}
	if _, err := engine.ParseDate("03/11/2025"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

func TestMonthLabel(t *testing.T) {
	if got := engine.NewDate(2025, time.November, 12).MonthLabel(); got != "November 2025" {
		t.Errorf("expected %q, got %q", "November 2025", got)
	}
}

func TestParseWeekday(t *testing.T) {
	wd, ok := engine.ParseWeekday("Wednesday")
	if !ok || wd != time.Wednesday {
		t.Errorf("expected Wednesday, got %v (ok=%v)", wd, ok)
	}
	if _, ok := engine.ParseWeekday("Wed"); ok {
		t.Error("abbreviated names should not parse")
	}
}
