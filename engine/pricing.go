package engine

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/warp/scheduling-engine/catalog"
)

// =============================================================================
// PRICING RESOLVER - catalog row matching + tier adjustment
// =============================================================================

// tierStep is the additive adjustment per tier number: tier 1 adds 0.01,
// tier 2 adds 0.02, tier 3 adds 0.03.
var tierStep = decimal.NewFromFloat(0.01)

var minutesPerHour = decimal.NewFromInt(60)

// PriceAppointment resolves an appointment to a catalog rate row and
// returns its tier-adjusted customer price.
//
// Matching, first match wins:
//  1. filter to rows with the appointment's service type name and a charge
//     block equal to its duration (end-time appointments never price)
//  2. exact case-insensitive, whitespace-trimmed match on the pet-count text
//  3. failing that, match on the numeric cardinal extracted from each side
//     ("2 pets" matches "2"); an appointment with no parseable cardinal
//     counts as 1 pet
//  4. failing that, ErrNoRateMatch - never an unfiltered fallback row
//
// A matched row with a malformed rate prices at zero with no error: pricing
// failures must never block rendering the rest of the schedule.
func PriceAppointment(a Appointment, c *catalog.Catalog) (decimal.Decimal, error) {
	row, err := matchRate(a, c)
	if err != nil {
		return decimal.Zero, err
	}
	return CustomerPrice(row, TierNumber(a.PriceTier)), nil
}

// StaffPayRate resolves the appointment's catalog row and returns the
// tier-adjusted staff rate per hour.
func StaffPayRate(a Appointment, c *catalog.Catalog) (decimal.Decimal, error) {
	row, err := matchRate(a, c)
	if err != nil {
		return decimal.Zero, err
	}
	return StaffHourlyRate(row, TierNumber(a.StaffPayTier)), nil
}

func matchRate(a Appointment, c *catalog.Catalog) (catalog.ServiceRate, error) {
	minutes, ok := a.Timing.Minutes()
	if !ok {
		return catalog.ServiceRate{}, &NoRateMatchError{ServiceType: a.ServiceType, EndTimeBased: true}
	}

	var candidates []catalog.ServiceRate
	for _, rate := range c.Rates {
		if rate.ServiceTypeName == a.ServiceType && chargeBlockEquals(rate.ChargeBlockDuration, minutes) {
			candidates = append(candidates, rate)
		}
	}

	noMatch := &NoRateMatchError{ServiceType: a.ServiceType, Minutes: minutes, NumberOfPets: a.NumberOfPets}
	if len(candidates) == 0 {
		return catalog.ServiceRate{}, noMatch
	}

	// Exact pet-count text match.
	want := strings.TrimSpace(a.NumberOfPets)
	for _, rate := range candidates {
		if strings.EqualFold(strings.TrimSpace(rate.NumberOfPets), want) {
			return rate, nil
		}
	}

	// Numeric-cardinal fallback. Rows whose pet field has no parseable
	// cardinal are excluded; the appointment side defaults to 1.
	wantPets, _ := catalog.PetCardinal(a.NumberOfPets)
	for _, rate := range candidates {
		if pets, ok := catalog.PetCardinal(rate.NumberOfPets); ok && pets == wantPets {
			return rate, nil
		}
	}

	return catalog.ServiceRate{}, noMatch
}

// chargeBlockEquals compares a raw charge-block field against a duration in
// minutes. The field is text from storage, so "60" and "60.0" both equal 60.
func chargeBlockEquals(raw string, minutes int) bool {
	raw = strings.TrimSpace(raw)
	if raw == strconv.Itoa(minutes) {
		return true
	}
	block, ok := catalog.ParseMinutes(raw)
	return ok && block == minutes
}

// TierNumber parses the trailing integer out of a tier label
// ("Price Tier 2" -> 2, "Pay Tier 3" -> 3). Unparseable labels fall back
// to tier 1.
func TierNumber(label string) int {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return 1
	}
	n, err := strconv.Atoi(fields[len(fields)-1])
	if err != nil {
		return 1
	}
	return n
}

// CustomerPrice is the tier-adjusted customer price for one catalog row:
// recommended_customer_rate + tier*0.01. A malformed rate field yields zero.
func CustomerPrice(rate catalog.ServiceRate, tier int) decimal.Decimal {
	base, err := decimal.NewFromString(strings.TrimSpace(rate.RecommendedCustomerRate))
	if err != nil {
		return decimal.Zero
	}
	return base.Add(tierAdjustment(tier))
}

// StaffHourlyRate is the tier-adjusted staff pay rate per hour for one
// catalog row: (recommended_staff_rate / charge_block_duration) * 60 +
// tier*0.01, with charge_block_duration in minutes. A zero charge block
// degenerates to the raw staff rate (no division); an empty one is treated
// as a 60-minute block. A malformed rate field yields zero.
func StaffHourlyRate(rate catalog.ServiceRate, tier int) decimal.Decimal {
	base, err := decimal.NewFromString(strings.TrimSpace(rate.RecommendedStaffRate))
	if err != nil {
		return decimal.Zero
	}

	perHour := base
	if raw := strings.TrimSpace(rate.ChargeBlockDuration); raw != "" {
		block, ok := catalog.ParseMinutes(raw)
		if !ok {
			return decimal.Zero
		}
		if block > 0 {
			// Multiply before dividing so clean blocks stay exact
			// (8.00/30*60 would round at division precision first).
			perHour = base.Mul(minutesPerHour).Div(decimal.NewFromInt(int64(block)))
		}
	}
	// An empty charge block means a 60-minute block, which is already
	// a per-hour rate.

	return perHour.Add(tierAdjustment(tier))
}

func tierAdjustment(tier int) decimal.Decimal {
	return tierStep.Mul(decimal.NewFromInt(int64(tier)))
}
