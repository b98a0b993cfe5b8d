package engine

import (
	"fmt"
	"sort"
)

// =============================================================================
// APPOINTMENT MATERIALIZER - sections x dates x customers
// =============================================================================

// Default shapes applied when a section's form fields were never touched.
const (
	defaultDurationMinutes = 60
	defaultPayTier         = "Pay Tier 1"
	defaultPriceTier       = "Price Tier 1"
	defaultNumberOfPets    = "1 pet"
)

// Materialize expands template sections into concrete appointments. Sections
// missing a service type, start date, or start time are partial templates
// and are skipped entirely. For each valid section, every generated date is
// crossed with every customer line, in section order then customer order: a
// section with D dates and C customers yields exactly D*C appointments.
//
// Pure function of its input; given identical sections the output is
// reproducible byte for byte.
func Materialize(sections []Section) []Appointment {
	var out []Appointment

	for idx, section := range sections {
		if section.ServiceType == "" || section.StartDate.IsZero() || section.StartTime == nil {
			continue
		}

		timing := section.Timing
		if timing.IsZero() {
			timing = DurationOf(defaultDurationMinutes)
		}

		payTier := section.StaffPayTier
		if payTier == "" {
			payTier = defaultPayTier
		}

		for _, date := range sectionDates(section) {
			for customerIdx, customer := range section.Customers {
				pets := customer.NumberOfPets
				if pets == "" {
					pets = defaultNumberOfPets
				}
				priceTier := customer.PriceTier
				if priceTier == "" {
					priceTier = defaultPriceTier
				}

				out = append(out, Appointment{
					ServiceType:   section.ServiceType,
					CustomerLabel: fmt.Sprintf("Customer %d", customerIdx+1),
					NumberOfPets:  pets,
					Date:          date,
					StartTime:     *section.StartTime,
					Timing:        appointmentTiming(timing),
					StaffPayTier:  payTier,
					PriceTier:     priceTier,
					Recurring:     section.Recurring != nil,
					SectionIndex:  idx,
				})
			}
		}
	}

	return out
}

// sectionDates resolves the date list for one section: the recurrence
// expansion when the section recurs with at least one weekday selected,
// otherwise just the start date. Recurrence defaults (end = start date,
// frequency = week, every = 1) are applied here.
func sectionDates(section Section) []Date {
	rule := section.Recurring
	if rule == nil || len(rule.DaysOfWeek) == 0 {
		return []Date{section.StartDate}
	}

	resolved := *rule
	if resolved.EndDate.IsZero() {
		resolved.EndDate = section.StartDate
	}
	return GenerateDates(section.StartDate, resolved.EndDate, resolved)
}

// appointmentTiming narrows a section's timing to the shape an appointment
// carries: duration-based passes through, end-based keeps only the clock
// time (the occurrence date comes from the recurrence expansion).
func appointmentTiming(t Timing) Timing {
	if _, endTime, ok := t.End(); ok {
		return UntilTime(endTime)
	}
	return t
}

// SortAppointments orders appointments by date then start time, the order
// the schedule is displayed in. Sorting is stable so equal slots keep
// section/customer order.
func SortAppointments(appointments []Appointment) {
	sort.SliceStable(appointments, func(i, j int) bool {
		if !appointments[i].Date.Equal(appointments[j].Date) {
			return appointments[i].Date.Before(appointments[j].Date)
		}
		return appointments[i].StartTime.Before(appointments[j].StartTime)
	})
}
