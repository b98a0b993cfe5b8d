package engine_test

import (
	"testing"
	"time"

	"github.com/warp/scheduling-engine/engine"
)

func apptOn(d engine.Date) engine.Appointment {
	return engine.Appointment{ServiceType: "Dog Walking", Date: d, StartTime: engine.At(9, 0)}
}

func TestMonthLabels_DistinctChronological(t *testing.T) {
	// GIVEN: appointments spanning three months entered out of order
	// THEN: distinct labels sorted chronologically, not lexically
	// ("December 2025" sorts after "November 2025" even though D < N)

	appointments := []engine.Appointment{
		apptOn(engine.NewDate(2025, time.December, 1)),
		apptOn(engine.NewDate(2025, time.November, 12)),
		apptOn(engine.NewDate(2026, time.January, 5)),
		apptOn(engine.NewDate(2025, time.November, 3)),
	}

	got := engine.MonthLabels(appointments)
	want := []string{"November 2025", "December 2025", "January 2026"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestMonthLabels_Empty(t *testing.T) {
	if got := engine.MonthLabels(nil); len(got) != 0 {
		t.Errorf("expected no labels, got %v", got)
	}
}

func TestFilterByMonth(t *testing.T) {
	appointments := []engine.Appointment{
		apptOn(engine.NewDate(2025, time.November, 3)),
		apptOn(engine.NewDate(2025, time.December, 1)),
		apptOn(engine.NewDate(2025, time.November, 28)),
	}

	filtered := engine.FilterByMonth(appointments, "November 2025")
	if len(filtered) != 2 {
		t.Fatalf("expected 2 November appointments, got %d", len(filtered))
	}
	for _, a := range filtered {
		if a.Date.Month() != time.November {
			t.Errorf("unexpected appointment in filter result: %s", a.Date)
		}
	}

	if got := engine.FilterByMonth(appointments, ""); len(got) != 3 {
		t.Errorf("empty label must keep everything, got %d", len(got))
	}
	if got := engine.FilterByMonth(appointments, "March 2026"); len(got) != 0 {
		t.Errorf("unmatched label must filter everything, got %d", len(got))
	}
}
