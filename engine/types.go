/*
Package engine implements the appointment materialization and pricing engine.

PURPOSE:
  Turns user-entered appointment templates (sections) into concrete scheduled
  occurrences, prices them against the rate catalog, and folds them into an
  invoice:

    sections -> GenerateDates -> Materialize -> PriceAppointment -> BuildInvoice

KEY CONCEPTS IN THIS FILE (types.go):
  - Section: one appointment template before expansion (timing, customers,
    recurrence rule)
  - Timing: tagged variant, duration-based XOR end-time-based
  - Appointment: one concrete occurrence, immutable once produced
  - Recurrence: the rule a recurring section expands under

DESIGN PRINCIPLES:
  1. Purity: every operation is a function over in-memory values; no I/O,
     no shared mutable state, no suspension points
  2. Precision: decimal.Decimal for every amount; float64 only at the edges
  3. Degradation: one bad record skips or zero-prices that record only,
     never the batch
  4. Timing is a closed variant, not a pair of optional fields; exactly one
     of duration or end time exists per appointment

SEE ALSO:
  - recurrence.go:  date expansion
  - materialize.go: section -> appointments cross product
  - pricing.go:     catalog matching and tier adjustments
  - invoice.go:     grouping and totals
*/
package engine

import "time"

// =============================================================================
// TIMING - Tagged variant: duration-based XOR end-based
// =============================================================================

type timingKind int

const (
	timingUnset timingKind = iota
	timingDuration
	timingEnd
)

// Timing is how long an appointment runs. A section's service type decides
// which shape it uses: duration-based types carry minutes, end-date-based
// types carry an end date and end time. The zero value means "not chosen
// yet" (a partially filled template).
type Timing struct {
	kind    timingKind
	minutes int
	endDate Date
	endTime TimeOfDay
}

// DurationOf builds a duration-based timing.
func DurationOf(minutes int) Timing {
	return Timing{kind: timingDuration, minutes: minutes}
}

// EndingOn builds an end-based timing for a section template.
func EndingOn(endDate Date, endTime TimeOfDay) Timing {
	return Timing{kind: timingEnd, endDate: endDate, endTime: endTime}
}

// UntilTime builds an end-based timing carrying only a clock time, the shape
// an end-based appointment keeps after materialization.
func UntilTime(endTime TimeOfDay) Timing {
	return Timing{kind: timingEnd, endTime: endTime}
}

func (t Timing) IsZero() bool          { return t.kind == timingUnset }
func (t Timing) IsDurationBased() bool { return t.kind == timingDuration }

// Minutes returns the duration and true for duration-based timing.
func (t Timing) Minutes() (int, bool) {
	return t.minutes, t.kind == timingDuration
}

// End returns the end date/time and true for end-based timing. The date is
// zero on appointments, which only keep the clock time.
func (t Timing) End() (Date, TimeOfDay, bool) {
	return t.endDate, t.endTime, t.kind == timingEnd
}

// =============================================================================
// SECTION - One appointment template before expansion
// =============================================================================

// CustomerLine is one customer entry on a section: how many pets they bring
// and which price tier they are charged at. Pet count is free text
// ("1 pet".."4 pets") to stay tolerant of legacy catalog values.
type CustomerLine struct {
	NumberOfPets string
	PriceTier    string
}

type Frequency string

const (
	FreqDay   Frequency = "day"
	FreqWeek  Frequency = "week"
	FreqMonth Frequency = "month"
	FreqYear  Frequency = "year"
)

// Recurrence is the rule a recurring section expands under.
type Recurrence struct {
	// EndDate bounds the expansion, inclusive. Zero defaults to the
	// section's start date (a single occurrence).
	EndDate Date

	// Frequency defaults to FreqWeek when empty.
	Frequency Frequency

	// Every is the step multiplier: every N days/weeks/months/years.
	// Values below 1 are treated as 1.
	Every int

	// DaysOfWeek selects which weekdays occur within a qualifying week.
	// An empty set on a recurring section collapses it to its start date.
	DaysOfWeek []time.Weekday
}

// Section is an appointment template as produced by the external form
// layer. It is consumed by value; the engine never mutates it.
type Section struct {
	ServiceType string
	StartDate   Date

	// StartTime is nil while the template is still being filled in; such
	// sections are skipped by Materialize.
	StartTime *TimeOfDay

	Timing       Timing
	Customers    []CustomerLine
	StaffPayTier string

	// Recurring is nil for one-off sections.
	Recurring *Recurrence
}

// =============================================================================
// APPOINTMENT - One concrete occurrence, immutable once produced
// =============================================================================

// Appointment is derived data: it exists for the duration of one
// materialize/price/aggregate pass and is never persisted or mutated.
type Appointment struct {
	ServiceType string

	// CustomerLabel is positional within the section ("Customer 1", ...),
	// not a stable identity across sections.
	CustomerLabel string

	NumberOfPets string
	Date         Date
	StartTime    TimeOfDay
	Timing       Timing
	StaffPayTier string
	PriceTier    string
	Recurring    bool

	// SectionIndex is the index of the originating section in the input.
	SectionIndex int
}
