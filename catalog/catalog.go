/*
Package catalog provides the rate catalog: the joined, active-filtered view of
service-type and service-rate reference data.

PURPOSE:
  Everything the pricing and scheduling engine knows about what the business
  sells comes from two reference tables:

    service_types: what kinds of appointment exist (grooming, boarding, ...)
                   and whether they are duration-based or end-time-based
    service_rates: the priced duration blocks per service type, differentiated
                   by pet count

  Storage hands these tables to us as ordered rows of text fields. This
  package coerces them into typed records, joins rate rows to their service
  type name, and exposes the read-only queries the engine needs.

COERCION POLICY:
  All fields arrive as text. Booleans are "true"/"false" case-insensitive.
  Numeric fields stay as raw text on the record and are parsed at the point
  of use: a malformed duration on one row must skip that row only, never
  abort the whole catalog (fault isolation at row granularity).

FRESHNESS:
  There is no caching layer. Load() reads both tables from the Source and
  builds a new Catalog; callers load once per computation pass.

SEE ALSO:
  - source.go:  Source interface and in-memory implementation
  - coerce.go:  text parsing helpers
  - engine:     consumes Catalog for pricing and invoicing
*/
package catalog

import (
	"context"
	"sort"
)

// Row is one record from a reference table, as delivered by storage.
// Every value is text; coercion happens here, not in the storage layer.
type Row map[string]string

// ServiceType is one coerced service_types record.
type ServiceType struct {
	ID   string
	Name string

	// UsesEndDate selects the timing shape for appointments of this type:
	// false means duration-based, true means end-date/end-time-based.
	UsesEndDate bool

	Active bool
}

// ServiceRate is one coerced service_rates record, joined to its service
// type name. Numeric fields are kept as the raw text from storage and parsed
// where they are used, so one malformed row cannot poison the rest.
type ServiceRate struct {
	ID            string
	ServiceTypeID string

	// ServiceTypeName is joined from the active service_types table.
	// Empty when the referenced type is missing or inactive; such rows
	// never match an appointment.
	ServiceTypeName string

	// NumberOfPets is free text, e.g. "1 pet" or "2 pets".
	NumberOfPets string

	MinDuration         string // minutes
	MaxDuration         string // minutes, "0" = unlimited
	DurationGranularity string // minutes, >= 1
	ChargeBlockDuration string // minutes, the block this row prices

	RecommendedStaffRate    string
	RecommendedCustomerRate string

	Active bool
}

// Catalog is the joined view over both reference tables. It holds only
// active records; inactive rows are dropped at build time, matching how the
// rest of the system treats them (they do not exist for pricing purposes).
type Catalog struct {
	Types []ServiceType
	Rates []ServiceRate
}

// Build coerces raw rows into a Catalog. Input order is preserved; the
// pricing resolver's "first match wins" rule depends on it.
func Build(typeRows, rateRows []Row) *Catalog {
	c := &Catalog{}

	byID := make(map[string]ServiceType)
	for _, r := range typeRows {
		st := ServiceType{
			ID:          r["id"],
			Name:        r["name"],
			UsesEndDate: ParseBool(r["uses_end_date"]),
			Active:      ParseBool(r["is_active"]),
		}
		if !st.Active {
			continue
		}
		c.Types = append(c.Types, st)
		byID[st.ID] = st
	}

	for _, r := range rateRows {
		rate := ServiceRate{
			ID:                      r["id"],
			ServiceTypeID:           r["service_type_id"],
			NumberOfPets:            r["number_of_pets"],
			MinDuration:             r["min_duration"],
			MaxDuration:             r["max_duration"],
			DurationGranularity:     r["duration_granularity"],
			ChargeBlockDuration:     r["charge_block_duration"],
			RecommendedStaffRate:    r["recommended_staff_rate"],
			RecommendedCustomerRate: r["recommended_customer_rate"],
			Active:                  ParseBool(r["is_active"]),
		}
		if !rate.Active {
			continue
		}
		rate.ServiceTypeName = byID[rate.ServiceTypeID].Name
		c.Rates = append(c.Rates, rate)
	}

	return c
}

// Load reads both tables from src and builds a fresh Catalog.
func Load(ctx context.Context, src Source) (*Catalog, error) {
	typeRows, err := src.ServiceTypes(ctx)
	if err != nil {
		return nil, err
	}
	rateRows, err := src.ServiceRates(ctx)
	if err != nil {
		return nil, err
	}
	return Build(typeRows, rateRows), nil
}

// TypeByName returns the active service type with the given name.
func (c *Catalog) TypeByName(name string) (ServiceType, bool) {
	for _, st := range c.Types {
		if st.Name == name {
			return st, true
		}
	}
	return ServiceType{}, false
}

// durationOptionCap bounds the progression when max_duration is 0
// (unlimited). 24 hours in minutes.
const durationOptionCap = 1440

// DurationOptions returns the valid duration choices, in minutes, for the
// given service type: the union of each matching rate row's arithmetic
// progression min, min+g, min+2g, ... up to max (inclusive), sorted
// ascending and deduplicated. min_duration is always included even when it
// is off another row's granularity boundary. Rows with malformed numeric
// fields are skipped; rows with granularity < 1 are skipped as invariant
// violations rather than looping forever.
func (c *Catalog) DurationOptions(serviceTypeID string) []int {
	seen := make(map[int]bool)

	for _, rate := range c.Rates {
		if rate.ServiceTypeID != serviceTypeID {
			continue
		}

		min, ok := ParseMinutes(rate.MinDuration)
		if !ok {
			continue
		}
		max, ok := ParseMinutes(rate.MaxDuration)
		if !ok {
			continue
		}
		granularity, ok := ParseMinutes(rate.DurationGranularity)
		if !ok || granularity < 1 {
			continue
		}

		if max == 0 {
			max = durationOptionCap
		}
		for current := min; current <= max; current += granularity {
			seen[current] = true
		}
		seen[min] = true
	}

	options := make([]int, 0, len(seen))
	for minutes := range seen {
		options = append(options, minutes)
	}
	sort.Ints(options)
	return options
}
