package engine_test

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/scheduling-engine/engine"
)

func two() decimal.Decimal { return decimal.NewFromInt(2) }

func TestBuildInvoice_GroupsByServiceTypeAndDuration(t *testing.T) {
	// GIVEN: two 60-minute walks (different tiers) and one 30-minute walk
	// WHEN: aggregating
	// THEN: two lines keyed by formatted duration, sorted lexically

	appointments := []engine.Appointment{
		walkAppointment(60, "1 pet", "Price Tier 1"), // 20.01
		walkAppointment(60, "1 pet", "Price Tier 2"), // 20.02
		walkAppointment(30, "1 pet", "Price Tier 1"), // 12.51
	}

	lines, grand := engine.BuildInvoice(appointments, testCatalog())

	if len(lines) != 2 {
		t.Fatalf("expected 2 invoice lines, got %d", len(lines))
	}

	// Lexical order: "Dog Walking - 1 hour" before "Dog Walking - 30 minutes".
	if lines[0].GroupKey != "Dog Walking - 1 hour" {
		t.Errorf("unexpected first group key %q", lines[0].GroupKey)
	}
	if lines[0].Count != 2 || lines[0].Total.String() != "40.03" {
		t.Errorf("unexpected first line: %+v", lines[0])
	}
	if lines[1].GroupKey != "Dog Walking - 30 minutes" {
		t.Errorf("unexpected second group key %q", lines[1].GroupKey)
	}
	if lines[1].Count != 1 || lines[1].Total.String() != "12.51" {
		t.Errorf("unexpected second line: %+v", lines[1])
	}

	if grand.String() != "52.54" {
		t.Errorf("expected grand total 52.54, got %s", grand)
	}
}

func TestBuildInvoice_SkipsEndTimeAppointments(t *testing.T) {
	appointments := []engine.Appointment{
		walkAppointment(60, "1 pet", "Price Tier 1"),
		{ServiceType: "Boarding", NumberOfPets: "1 pet", Timing: engine.UntilTime(engine.At(17, 0))},
	}

	lines, _ := engine.BuildInvoice(appointments, testCatalog())
	if len(lines) != 1 {
		t.Fatalf("expected end-time appointment excluded, got %d lines", len(lines))
	}
}

func TestBuildInvoice_UnpricedAppointmentsCountAtZero(t *testing.T) {
	// GIVEN: one priceable and one unmatched appointment in the same group
	// THEN: count is 2 but only the matched price contributes

	appointments := []engine.Appointment{
		walkAppointment(60, "1 pet", "Price Tier 1"),
		walkAppointment(60, "4 pets", "Price Tier 1"), // no catalog row
	}

	lines, grand := engine.BuildInvoice(appointments, testCatalog())
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0].Count != 2 {
		t.Errorf("expected count 2, got %d", lines[0].Count)
	}
	if lines[0].Total.String() != "20.01" || grand.String() != "20.01" {
		t.Errorf("expected only the matched price, got line %s grand %s", lines[0].Total, grand)
	}
}

func TestBuildInvoice_DoubledInputDoublesTotals(t *testing.T) {
	// Aggregation is a pure fold: the same list twice produces exactly
	// double the counts and totals.

	single := []engine.Appointment{
		walkAppointment(60, "1 pet", "Price Tier 1"),
		walkAppointment(30, "2 pets", "Price Tier 2"),
	}
	doubled := append(append([]engine.Appointment{}, single...), single...)

	onceLines, onceGrand := engine.BuildInvoice(single, testCatalog())
	twiceLines, twiceGrand := engine.BuildInvoice(doubled, testCatalog())

	if len(onceLines) != len(twiceLines) {
		t.Fatalf("line sets differ: %d vs %d", len(onceLines), len(twiceLines))
	}
	for i := range onceLines {
		if twiceLines[i].Count != onceLines[i].Count*2 {
			t.Errorf("line %d: expected doubled count, got %d vs %d", i, twiceLines[i].Count, onceLines[i].Count)
		}
		if !twiceLines[i].Total.Equal(onceLines[i].Total.Mul(two())) {
			t.Errorf("line %d: expected doubled total, got %s vs %s", i, twiceLines[i].Total, onceLines[i].Total)
		}
	}
	if !twiceGrand.Equal(onceGrand.Mul(two())) {
		t.Errorf("expected doubled grand total, got %s vs %s", twiceGrand, onceGrand)
	}
}

func TestBuildInvoice_OrderIndependent(t *testing.T) {
	a := walkAppointment(60, "1 pet", "Price Tier 1")
	b := walkAppointment(30, "1 pet", "Price Tier 1")
	c := walkAppointment(60, "2 pets", "Price Tier 3")

	forward, forwardGrand := engine.BuildInvoice([]engine.Appointment{a, b, c}, testCatalog())
	reversed, reversedGrand := engine.BuildInvoice([]engine.Appointment{c, b, a}, testCatalog())

	if len(forward) != len(reversed) {
		t.Fatalf("line sets differ: %d vs %d", len(forward), len(reversed))
	}
	for i := range forward {
		if forward[i].GroupKey != reversed[i].GroupKey || forward[i].Count != reversed[i].Count ||
			!forward[i].Total.Equal(reversed[i].Total) {
			t.Errorf("line %d differs under reordering: %+v vs %+v", i, forward[i], reversed[i])
		}
	}
	if !forwardGrand.Equal(reversedGrand) {
		t.Errorf("grand totals differ: %s vs %s", forwardGrand, reversedGrand)
	}
}

func TestBuildInvoice_EmptyInput(t *testing.T) {
	lines, grand := engine.BuildInvoice(nil, testCatalog())
	if len(lines) != 0 {
		t.Errorf("expected no lines, got %d", len(lines))
	}
	if !grand.IsZero() {
		t.Errorf("expected zero grand total, got %s", grand)
	}
}
