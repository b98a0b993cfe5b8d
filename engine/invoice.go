package engine

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/warp/scheduling-engine/catalog"
)

// =============================================================================
// INVOICE AGGREGATOR - group priced appointments by (service type, duration)
// =============================================================================

// InvoiceLine is one invoice group. Derived data, rebuilt on every pass.
type InvoiceLine struct {
	// GroupKey is "<service type> - <formatted duration>".
	GroupKey string
	Count    int
	Total    decimal.Decimal
}

// BuildInvoice folds appointments into invoice lines grouped by service
// type and formatted duration, plus the grand total across all lines.
// Lines are sorted ascending by group key. End-time-based appointments
// carry no catalog-priced block and are excluded. An appointment whose
// price cannot be resolved contributes zero to its group's total but still
// counts; an incomplete invoice beats no invoice.
func BuildInvoice(appointments []Appointment, c *catalog.Catalog) ([]InvoiceLine, decimal.Decimal) {
	groups := make(map[string]*InvoiceLine)

	for _, a := range appointments {
		minutes, ok := a.Timing.Minutes()
		if !ok {
			continue
		}

		key := fmt.Sprintf("%s - %s", a.ServiceType, FormatMinutes(minutes))
		line, exists := groups[key]
		if !exists {
			line = &InvoiceLine{GroupKey: key, Total: decimal.Zero}
			groups[key] = line
		}

		price, err := PriceAppointment(a, c)
		if err != nil {
			price = decimal.Zero
		}

		line.Count++
		line.Total = line.Total.Add(price)
	}

	lines := make([]InvoiceLine, 0, len(groups))
	for _, line := range groups {
		lines = append(lines, *line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].GroupKey < lines[j].GroupKey })

	grand := decimal.Zero
	for _, line := range lines {
		grand = grand.Add(line.Total)
	}
	return lines, grand
}
