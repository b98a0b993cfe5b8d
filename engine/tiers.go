package engine

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/warp/scheduling-engine/catalog"
)

// =============================================================================
// TIER RATE TABLES - per-row rates at a chosen tier
// =============================================================================

// TierRow is one line of a pay- or price-tier table: a catalog rate row with
// its tier-adjusted rate, for display to staff choosing tiers.
type TierRow struct {
	ServiceType  string
	NumberOfPets string

	// ChargeBlock is the row's charge block rendered through the duration
	// formatter ("1 hour 30 minutes"); malformed fields pass through raw.
	ChargeBlock string

	Rate decimal.Decimal
}

// PayTierTable lists every active catalog rate with its staff pay rate per
// hour at the given tier, sorted by service type then pet count text.
func PayTierTable(c *catalog.Catalog, tier int) []TierRow {
	return tierTable(c, func(rate catalog.ServiceRate) decimal.Decimal {
		return StaffHourlyRate(rate, tier)
	})
}

// PriceTierTable lists every active catalog rate with its customer price at
// the given tier, sorted by service type then pet count text.
func PriceTierTable(c *catalog.Catalog, tier int) []TierRow {
	return tierTable(c, func(rate catalog.ServiceRate) decimal.Decimal {
		return CustomerPrice(rate, tier)
	})
}

func tierTable(c *catalog.Catalog, rateFor func(catalog.ServiceRate) decimal.Decimal) []TierRow {
	rows := make([]TierRow, 0, len(c.Rates))
	for _, rate := range c.Rates {
		rows = append(rows, TierRow{
			ServiceType:  rate.ServiceTypeName,
			NumberOfPets: rate.NumberOfPets,
			ChargeBlock:  FormatMinutesText(rate.ChargeBlockDuration),
			Rate:         rateFor(rate),
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ServiceType != rows[j].ServiceType {
			return rows[i].ServiceType < rows[j].ServiceType
		}
		return rows[i].NumberOfPets < rows[j].NumberOfPets
	})
	return rows
}
