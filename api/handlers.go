/*
handlers.go - HTTP API handlers for the scheduling and pricing engine

PURPOSE:
  Exposes the scheduling engine via REST API. Handles HTTP
  request/response, JSON serialization, and delegates to domain logic.

ENDPOINTS:
  Schedule:
    POST   /api/schedule/preview       Materialize, price and aggregate a
                                       set of appointment sections. Optional
                                       ?month= query filters the result to
                                       one "January 2006" label.

  Catalog:
    GET    /api/catalog/service-types  List active service types
    POST   /api/catalog/service-types  Add a service type (Editor sources)
    GET    /api/catalog/rates          List active, joined rate rows
    POST   /api/catalog/rates          Add a rate row (Editor sources)
    GET    /api/catalog/service-types/{id}/durations
                                       Selectable durations for one type
    POST   /api/catalog/reload         Read the source back and report sizes

  Tiers:
    GET    /api/tiers/pay?tier=N       Staff hourly pay table at tier N
    GET    /api/tiers/price?tier=N     Customer price table at tier N

ARCHITECTURE:
  Handler holds the catalog source and the display currency. The catalog
  is read fresh from the source on every request, with no caching layer and
  no invalidation logic: edits to the store, or to hand-edited CSV files,
  show up on the next request. The engine functions are pure and take the
  catalog as an argument.

REQUEST FLOW:
  1. Parse HTTP request
  2. Convert DTOs to engine values (dto.go)
  3. Call engine logic (materialize, price, invoice)
  4. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Unknown service type
  - 500: Catalog source failures
  - 501: Catalog writes against a read-only source

  A rate lookup miss is NOT an error at this layer: the appointment is
  returned unpriced and the invoice counts it at zero, matching the
  on-screen behavior of the booking form.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/warp/scheduling-engine/catalog"
	"github.com/warp/scheduling-engine/engine"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Source   catalog.Source
	Currency string
}

// NewHandler creates a new handler backed by the given catalog source.
func NewHandler(source catalog.Source, currency string) *Handler {
	return &Handler{Source: source, Currency: currency}
}

// loadCatalog reads the catalog fresh from the source. Every request gets
// its own read; there is no caching layer, so store edits and hand-edited
// CSV files show up on the next request without any invalidation step.
func (h *Handler) loadCatalog(r *http.Request) (*catalog.Catalog, error) {
	return catalog.Load(r.Context(), h.Source)
}

// =============================================================================
// SCHEDULE ENDPOINTS
// =============================================================================

// PreviewSchedule handles POST /api/schedule/preview.
func (h *Handler) PreviewSchedule(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sections := make([]engine.Section, 0, len(req.Sections))
	for i, dto := range req.Sections {
		section, err := toSection(dto)
		if err != nil {
			writeError(w, http.StatusBadRequest,
				"Invalid section "+strconv.Itoa(i), err)
			return
		}
		sections = append(sections, section)
	}

	cat, err := h.loadCatalog(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load catalog", err)
		return
	}

	appointments := engine.Materialize(sections)
	engine.SortAppointments(appointments)

	months := engine.MonthLabels(appointments)
	if month := r.URL.Query().Get("month"); month != "" {
		appointments = engine.FilterByMonth(appointments, month)
	}

	dtos := make([]AppointmentDTO, 0, len(appointments))
	for _, a := range appointments {
		price, err := engine.PriceAppointment(a, cat)
		if err != nil {
			if !errors.Is(err, engine.ErrNoRateMatch) {
				writeError(w, http.StatusInternalServerError, "Pricing failed", err)
				return
			}
			dtos = append(dtos, h.toAppointmentDTO(a, nil))
			continue
		}
		dtos = append(dtos, h.toAppointmentDTO(a, &price))
	}

	lines, grand := engine.BuildInvoice(appointments, cat)
	lineDTOs := make([]InvoiceLineDTO, 0, len(lines))
	for _, line := range lines {
		lineDTOs = append(lineDTOs, h.toInvoiceLineDTO(line))
	}

	grandF, _ := grand.Float64()
	writeJSON(w, http.StatusOK, PreviewResponse{
		Appointments:      dtos,
		Invoice:           lineDTOs,
		GrandTotal:        grandF,
		GrandTotalDisplay: h.formatAmount(grand),
		Months:            months,
	})
}

// =============================================================================
// CATALOG ENDPOINTS
// =============================================================================

// ListServiceTypes handles GET /api/catalog/service-types.
func (h *Handler) ListServiceTypes(w http.ResponseWriter, r *http.Request) {
	cat, err := h.loadCatalog(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load catalog", err)
		return
	}

	dtos := make([]ServiceTypeDTO, 0, len(cat.Types))
	for _, st := range cat.Types {
		dtos = append(dtos, ServiceTypeDTO{
			ID:          st.ID,
			Name:        st.Name,
			UsesEndDate: st.UsesEndDate,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListRates handles GET /api/catalog/rates.
func (h *Handler) ListRates(w http.ResponseWriter, r *http.Request) {
	cat, err := h.loadCatalog(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load catalog", err)
		return
	}

	dtos := make([]RateDTO, 0, len(cat.Rates))
	for _, rate := range cat.Rates {
		dtos = append(dtos, RateDTO{
			ID:                      rate.ID,
			ServiceTypeID:           rate.ServiceTypeID,
			ServiceTypeName:         rate.ServiceTypeName,
			NumberOfPets:            rate.NumberOfPets,
			MinDuration:             rate.MinDuration,
			MaxDuration:             rate.MaxDuration,
			DurationGranularity:     rate.DurationGranularity,
			ChargeBlockDuration:     rate.ChargeBlockDuration,
			RecommendedStaffRate:    rate.RecommendedStaffRate,
			RecommendedCustomerRate: rate.RecommendedCustomerRate,
		})
	}
	writeJSON(w, http.StatusOK, dtos)
}

// ListDurations handles GET /api/catalog/service-types/{id}/durations.
func (h *Handler) ListDurations(w http.ResponseWriter, r *http.Request) {
	cat, err := h.loadCatalog(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load catalog", err)
		return
	}

	id := chi.URLParam(r, "id")
	found := false
	for _, st := range cat.Types {
		if st.ID == id {
			found = true
			break
		}
	}
	if !found {
		writeError(w, http.StatusNotFound, "Service type not found", nil)
		return
	}

	durations := cat.DurationOptions(id)
	if durations == nil {
		durations = []int{}
	}
	writeJSON(w, http.StatusOK, durations)
}

// ReloadCatalog handles POST /api/catalog/reload. The catalog is read
// fresh on every request anyway, so this is a health probe for the source:
// it reads the tables back and reports their sizes.
func (h *Handler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	cat, err := h.loadCatalog(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload catalog", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"service_types": len(cat.Types),
		"service_rates": len(cat.Rates),
	})
}

// CreateServiceType handles POST /api/catalog/service-types.
func (h *Handler) CreateServiceType(w http.ResponseWriter, r *http.Request) {
	editor, ok := h.Source.(catalog.Editor)
	if !ok {
		writeError(w, http.StatusNotImplemented, "Catalog source is read-only", nil)
		return
	}

	var req CreateServiceTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}

	id, err := editor.InsertServiceType(r.Context(), req.toRow())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create service type", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// CreateRate handles POST /api/catalog/rates.
func (h *Handler) CreateRate(w http.ResponseWriter, r *http.Request) {
	editor, ok := h.Source.(catalog.Editor)
	if !ok {
		writeError(w, http.StatusNotImplemented, "Catalog source is read-only", nil)
		return
	}

	var req CreateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.ServiceTypeID == "" {
		writeError(w, http.StatusBadRequest, "service_type_id is required", nil)
		return
	}

	id, err := editor.InsertServiceRate(r.Context(), req.toRow())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create rate", err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// =============================================================================
// TIER ENDPOINTS
// =============================================================================

// PayTiers handles GET /api/tiers/pay?tier=N.
func (h *Handler) PayTiers(w http.ResponseWriter, r *http.Request) {
	h.tierTable(w, r, engine.PayTierTable)
}

// PriceTiers handles GET /api/tiers/price?tier=N.
func (h *Handler) PriceTiers(w http.ResponseWriter, r *http.Request) {
	h.tierTable(w, r, engine.PriceTierTable)
}

func (h *Handler) tierTable(w http.ResponseWriter, r *http.Request,
	table func(*catalog.Catalog, int) []engine.TierRow) {

	tier := 1
	if raw := r.URL.Query().Get("tier"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "Invalid tier (use a positive integer)", err)
			return
		}
		tier = n
	}

	cat, err := h.loadCatalog(r)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load catalog", err)
		return
	}

	rows := table(cat, tier)
	dtos := make([]TierRowDTO, 0, len(rows))
	for _, row := range rows {
		dtos = append(dtos, h.toTierRowDTO(row))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
