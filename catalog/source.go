package catalog

import (
	"context"
	"strconv"
	"sync"
)

// =============================================================================
// SOURCE - Interface between the catalog and the storage layer
// =============================================================================

// Source delivers the two reference tables as ordered rows of text fields.
// The storage layer does no coercion; it hands text over exactly as stored.
//
// Implementations:
//   - store/sqlite: production SQLite tables
//   - store/csvfile: the CSV files the original system kept on disk
//   - catalog.Memory: in-memory rows for testing
type Source interface {
	// ServiceTypes returns all service_types rows in storage order.
	ServiceTypes(ctx context.Context) ([]Row, error)

	// ServiceRates returns all service_rates rows in storage order.
	ServiceRates(ctx context.Context) ([]Row, error)
}

// Editor extends Source with row appends, for catalogs maintained through
// the admin endpoints. A missing "id" field is assigned by the store as the
// next free numeric id. Sources that do not implement Editor are served
// read-only.
type Editor interface {
	Source

	InsertServiceType(ctx context.Context, row Row) (id string, err error)
	InsertServiceRate(ctx context.Context, row Row) (id string, err error)
}

// =============================================================================
// MEMORY SOURCE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory is an in-memory Source. Safe for concurrent use.
type Memory struct {
	mu    sync.RWMutex
	types []Row
	rates []Row
}

func NewMemory(types, rates []Row) *Memory {
	return &Memory{types: types, rates: rates}
}

func (m *Memory) ServiceTypes(_ context.Context) ([]Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyRows(m.types), nil
}

func (m *Memory) ServiceRates(_ context.Context) ([]Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyRows(m.rates), nil
}

// Replace swaps both tables at once.
func (m *Memory) Replace(types, rates []Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types = copyRows(types)
	m.rates = copyRows(rates)
}

// InsertServiceType appends a service_types row, assigning an id when
// missing.
func (m *Memory) InsertServiceType(_ context.Context, row Row) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.types, row = appendRow(m.types, row)
	return row["id"], nil
}

// InsertServiceRate appends a service_rates row, assigning an id when
// missing.
func (m *Memory) InsertServiceRate(_ context.Context, row Row) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates, row = appendRow(m.rates, row)
	return row["id"], nil
}

var _ Editor = (*Memory)(nil)

func appendRow(rows []Row, row Row) ([]Row, Row) {
	c := make(Row, len(row))
	for k, v := range row {
		c[k] = v
	}
	if c["id"] == "" {
		c["id"] = NextID(rows)
	}
	return append(rows, c), c
}

// NextID returns max(numeric id)+1 across rows, ignoring non-numeric
// legacy ids. Empty inputs start at "1".
func NextID(rows []Row) string {
	max := 0
	for _, r := range rows {
		if n, err := strconv.Atoi(r["id"]); err == nil && n > max {
			max = n
		}
	}
	return strconv.Itoa(max + 1)
}

func copyRows(rows []Row) []Row {
	out := make([]Row, len(rows))
	for i, r := range rows {
		c := make(Row, len(r))
		for k, v := range r {
			c[k] = v
		}
		out[i] = c
	}
	return out
}
