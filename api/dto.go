/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the engine's
  internal types from the external contract. All amounts cross this boundary
  as float64 plus a pre-formatted display string; decimals live inside the
  engine only.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Conversion from request DTOs to engine values happens in this file;
  handlers treat a conversion error as a 400.

SEE ALSO:
  - handlers.go: Uses these types
  - engine: the value types these map to
*/
package api

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/warp/scheduling-engine/catalog"
	"github.com/warp/scheduling-engine/engine"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

// CustomerLineDTO is one customer entry on a section.
type CustomerLineDTO struct {
	NumberOfPets string `json:"number_of_pets"`
	PriceTier    string `json:"price_tier"`
}

// SectionDTO is one appointment template as submitted by the form layer.
// Exactly one of duration_minutes or end_date+end_time should be set,
// selected by uses_end_date.
type SectionDTO struct {
	ServiceType string `json:"service_type"`
	StartDate   string `json:"start_date"` // "2006-01-02"
	StartTime   string `json:"start_time"` // "15:04"

	UsesEndDate     bool    `json:"uses_end_date"`
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	EndDate         *string `json:"end_date,omitempty"`
	EndTime         *string `json:"end_time,omitempty"`

	Customers    []CustomerLineDTO `json:"customers"`
	StaffPayTier string            `json:"staff_pay_tier"`

	IsRecurring         bool     `json:"is_recurring"`
	RecurringEndDate    *string  `json:"recurring_end_date,omitempty"`
	RecurringFrequency  string   `json:"recurring_frequency,omitempty"`
	RecurringEvery      int      `json:"recurring_every,omitempty"`
	RecurringDaysOfWeek []string `json:"recurring_days_of_week,omitempty"`
}

// PreviewRequest is the body of POST /api/schedule/preview.
type PreviewRequest struct {
	Sections []SectionDTO `json:"sections"`
}

// CreateServiceTypeRequest is the body of POST /api/catalog/service-types.
type CreateServiceTypeRequest struct {
	Name        string `json:"name"`
	UsesEndDate bool   `json:"uses_end_date"`
	Active      *bool  `json:"is_active,omitempty"` // default true
}

// CreateRateRequest is the body of POST /api/catalog/rates. Numeric fields
// are carried as text, exactly as they will be stored.
type CreateRateRequest struct {
	ServiceTypeID           string `json:"service_type_id"`
	NumberOfPets            string `json:"number_of_pets"`
	MinDuration             string `json:"min_duration"`
	MaxDuration             string `json:"max_duration"`
	DurationGranularity     string `json:"duration_granularity"`
	ChargeBlockDuration     string `json:"charge_block_duration"`
	RecommendedStaffRate    string `json:"recommended_staff_rate"`
	RecommendedCustomerRate string `json:"recommended_customer_rate"`
	Active                  *bool  `json:"is_active,omitempty"` // default true
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// AppointmentDTO is one concrete occurrence for display.
type AppointmentDTO struct {
	Date            string   `json:"date"`
	StartTime       string   `json:"start_time"`
	ServiceType     string   `json:"service_type"`
	Customer        string   `json:"customer"`
	NumberOfPets    string   `json:"number_of_pets"`
	DurationMinutes *int     `json:"duration_minutes,omitempty"`
	EndTime         *string  `json:"end_time,omitempty"`
	DurationDisplay string   `json:"duration_display"`
	PriceTier       string   `json:"price_tier"`
	Price           *float64 `json:"price,omitempty"`
	PriceDisplay    string   `json:"price_display,omitempty"`
	StaffPayTier    string   `json:"staff_pay_tier"`
	Recurring       bool     `json:"recurring"`
	SectionIndex    int      `json:"section_index"`
}

// InvoiceLineDTO is one invoice group.
type InvoiceLineDTO struct {
	GroupKey     string  `json:"group_key"`
	Count        int     `json:"count"`
	Total        float64 `json:"total"`
	TotalDisplay string  `json:"total_display"`
}

// PreviewResponse is the full result of one materialize/price/aggregate
// pass.
type PreviewResponse struct {
	Appointments      []AppointmentDTO `json:"appointments"`
	Invoice           []InvoiceLineDTO `json:"invoice"`
	GrandTotal        float64          `json:"grand_total"`
	GrandTotalDisplay string           `json:"grand_total_display"`
	Months            []string         `json:"months"`
}

// ServiceTypeDTO is one active service type.
type ServiceTypeDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	UsesEndDate bool   `json:"uses_end_date"`
}

// RateDTO is one active, joined rate row. Numeric fields stay text, as
// stored; clients treat this as reference data.
type RateDTO struct {
	ID                      string `json:"id"`
	ServiceTypeID           string `json:"service_type_id"`
	ServiceTypeName         string `json:"service_type_name"`
	NumberOfPets            string `json:"number_of_pets"`
	MinDuration             string `json:"min_duration"`
	MaxDuration             string `json:"max_duration"`
	DurationGranularity     string `json:"duration_granularity"`
	ChargeBlockDuration     string `json:"charge_block_duration"`
	RecommendedStaffRate    string `json:"recommended_staff_rate"`
	RecommendedCustomerRate string `json:"recommended_customer_rate"`
}

// TierRowDTO is one line of a pay- or price-tier table.
type TierRowDTO struct {
	ServiceType  string  `json:"service_type"`
	NumberOfPets string  `json:"number_of_pets"`
	ChargeBlock  string  `json:"charge_block"`
	Rate         float64 `json:"rate"`
	RateDisplay  string  `json:"rate_display"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION - request DTO -> storage rows
// =============================================================================

func (r CreateServiceTypeRequest) toRow() catalog.Row {
	return catalog.Row{
		"name":          r.Name,
		"uses_end_date": formatBool(r.UsesEndDate),
		"is_active":     formatBool(r.Active == nil || *r.Active),
	}
}

func (r CreateRateRequest) toRow() catalog.Row {
	return catalog.Row{
		"service_type_id":           r.ServiceTypeID,
		"number_of_pets":            r.NumberOfPets,
		"min_duration":              r.MinDuration,
		"max_duration":              r.MaxDuration,
		"duration_granularity":      r.DurationGranularity,
		"charge_block_duration":     r.ChargeBlockDuration,
		"recommended_staff_rate":    r.RecommendedStaffRate,
		"recommended_customer_rate": r.RecommendedCustomerRate,
		"is_active":                 formatBool(r.Active == nil || *r.Active),
	}
}

// formatBool writes booleans the way the stored tables spell them.
func formatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// =============================================================================
// CONVERSION - request DTO -> engine values
// =============================================================================

// toSection converts one submitted section into an engine Section. Form
// defaults are applied here, at the boundary the booking form talks to: a
// missing duration is 60 minutes, a missing end time is 17:00, a recurring
// section without an end date runs one calendar month from its start.
func toSection(dto SectionDTO) (engine.Section, error) {
	section := engine.Section{
		ServiceType:  dto.ServiceType,
		StaffPayTier: dto.StaffPayTier,
	}

	if dto.StartDate != "" {
		d, err := engine.ParseDate(dto.StartDate)
		if err != nil {
			return engine.Section{}, err
		}
		section.StartDate = d
	}
	if dto.StartTime != "" {
		t, err := engine.ParseTimeOfDay(dto.StartTime)
		if err != nil {
			return engine.Section{}, err
		}
		section.StartTime = &t
	}

	timing, err := toTiming(dto, section.StartDate)
	if err != nil {
		return engine.Section{}, err
	}
	section.Timing = timing

	for _, c := range dto.Customers {
		section.Customers = append(section.Customers, engine.CustomerLine{
			NumberOfPets: c.NumberOfPets,
			PriceTier:    c.PriceTier,
		})
	}

	if dto.IsRecurring {
		rule, err := toRecurrence(dto, section.StartDate)
		if err != nil {
			return engine.Section{}, err
		}
		section.Recurring = rule
	}

	return section, nil
}

func toTiming(dto SectionDTO, startDate engine.Date) (engine.Timing, error) {
	if dto.UsesEndDate {
		endDate := startDate
		if dto.EndDate != nil {
			d, err := engine.ParseDate(*dto.EndDate)
			if err != nil {
				return engine.Timing{}, err
			}
			endDate = d
		}
		endTime := engine.At(17, 0)
		if dto.EndTime != nil {
			t, err := engine.ParseTimeOfDay(*dto.EndTime)
			if err != nil {
				return engine.Timing{}, err
			}
			endTime = t
		}
		return engine.EndingOn(endDate, endTime), nil
	}

	minutes := 60
	if dto.DurationMinutes != nil {
		minutes = *dto.DurationMinutes
	}
	return engine.DurationOf(minutes), nil
}

func toRecurrence(dto SectionDTO, startDate engine.Date) (*engine.Recurrence, error) {
	rule := &engine.Recurrence{
		Frequency: engine.Frequency(dto.RecurringFrequency),
		Every:     dto.RecurringEvery,
	}

	if dto.RecurringEndDate != nil {
		d, err := engine.ParseDate(*dto.RecurringEndDate)
		if err != nil {
			return nil, err
		}
		rule.EndDate = d
	} else if !startDate.IsZero() {
		// The form seeds a default recurrence horizon of one calendar
		// month from the start date.
		rule.EndDate = engine.AddMonths(startDate, 1)
	}

	for _, name := range dto.RecurringDaysOfWeek {
		wd, ok := engine.ParseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("invalid weekday %q", name)
		}
		rule.DaysOfWeek = append(rule.DaysOfWeek, wd)
	}
	return rule, nil
}

// =============================================================================
// CONVERSION - engine values -> response DTO
// =============================================================================

func (h *Handler) toAppointmentDTO(a engine.Appointment, price *decimal.Decimal) AppointmentDTO {
	dto := AppointmentDTO{
		Date:         a.Date.String(),
		StartTime:    a.StartTime.String(),
		ServiceType:  a.ServiceType,
		Customer:     a.CustomerLabel,
		NumberOfPets: a.NumberOfPets,
		PriceTier:    a.PriceTier,
		StaffPayTier: a.StaffPayTier,
		Recurring:    a.Recurring,
		SectionIndex: a.SectionIndex,
	}

	if minutes, ok := a.Timing.Minutes(); ok {
		dto.DurationMinutes = &minutes
		dto.DurationDisplay = engine.FormatMinutes(minutes)
	} else if _, endTime, ok := a.Timing.End(); ok {
		s := endTime.String()
		dto.EndTime = &s
		dto.DurationDisplay = "Until " + s
	}

	if price != nil {
		f, _ := price.Float64()
		dto.Price = &f
		dto.PriceDisplay = h.formatAmount(*price)
	}
	return dto
}

func (h *Handler) toInvoiceLineDTO(line engine.InvoiceLine) InvoiceLineDTO {
	total, _ := line.Total.Float64()
	return InvoiceLineDTO{
		GroupKey:     line.GroupKey,
		Count:        line.Count,
		Total:        total,
		TotalDisplay: h.formatAmount(line.Total),
	}
}

func (h *Handler) toTierRowDTO(row engine.TierRow) TierRowDTO {
	rate, _ := row.Rate.Float64()
	return TierRowDTO{
		ServiceType:  row.ServiceType,
		NumberOfPets: row.NumberOfPets,
		ChargeBlock:  row.ChargeBlock,
		Rate:         rate,
		RateDisplay:  h.formatAmount(row.Rate),
	}
}

// formatAmount renders an amount with the configured currency symbol and
// two decimal places, e.g. "£28.01".
func (h *Handler) formatAmount(amount decimal.Decimal) string {
	return h.Currency + amount.StringFixed(2)
}
