/*
Package sqlite provides a SQLite-backed catalog source.

PURPOSE:
  Persists the two reference tables (service_types, service_rates) and
  delivers them to the engine as ordered text rows. The storage layer does
  no coercion: every column is TEXT, exactly as the catalog contract wants
  it, and the catalog package parses at the point of use.

KEY TABLES:
  service_types: appointment kinds and their timing shape
  service_rates: priced duration blocks per type, by pet count

ID ASSIGNMENT:
  New rows without an id get max(numeric id)+1, tolerating any existing
  non-numeric ids. Reference data is entered by hand; sequential small ids
  keep it readable.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety on top of WAL-mode SQLite.

USAGE:
  store, err := sqlite.New("./data/catalog.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  cat, err := catalog.Load(ctx, store)

SEE ALSO:
  - catalog/source.go: the Source interface this implements
  - store/csvfile: the CSV-file implementation
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/scheduling-engine/catalog"
)

// Store implements catalog.Source using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ catalog.Editor = (*Store)(nil)

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Service types: what kinds of appointment exist
	CREATE TABLE IF NOT EXISTS service_types (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		uses_end_date TEXT NOT NULL DEFAULT 'false',
		is_active TEXT NOT NULL DEFAULT 'true',
		created_at TEXT NOT NULL
	);

	-- Service rates: priced duration blocks per service type
	CREATE TABLE IF NOT EXISTS service_rates (
		id TEXT PRIMARY KEY,
		service_type_id TEXT NOT NULL,
		number_of_pets TEXT NOT NULL DEFAULT '1 pet',
		min_duration TEXT NOT NULL DEFAULT '0',
		max_duration TEXT NOT NULL DEFAULT '0',
		duration_granularity TEXT NOT NULL DEFAULT '1',
		charge_block_duration TEXT NOT NULL DEFAULT '0',
		recommended_staff_rate TEXT NOT NULL DEFAULT '0',
		recommended_customer_rate TEXT NOT NULL DEFAULT '0',
		is_active TEXT NOT NULL DEFAULT 'true',
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_service_rates_type
		ON service_rates(service_type_id);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// CATALOG SOURCE (catalog.Source interface)
// =============================================================================

var serviceTypeColumns = []string{"id", "name", "uses_end_date", "is_active"}

var serviceRateColumns = []string{
	"id", "service_type_id", "number_of_pets",
	"min_duration", "max_duration", "duration_granularity",
	"charge_block_duration", "recommended_staff_rate",
	"recommended_customer_rate", "is_active",
}

// ServiceTypes returns all service_types rows in insertion (id) order.
func (s *Store) ServiceTypes(ctx context.Context) ([]catalog.Row, error) {
	return s.queryRows(ctx, "service_types", serviceTypeColumns)
}

// ServiceRates returns all service_rates rows in insertion (id) order.
func (s *Store) ServiceRates(ctx context.Context) ([]catalog.Row, error) {
	return s.queryRows(ctx, "service_rates", serviceRateColumns)
}

func (s *Store) queryRows(ctx context.Context, table string, columns []string) ([]catalog.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT " + joinColumns(columns) + " FROM " + table + " ORDER BY CAST(id AS INTEGER), id"
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	var out []catalog.Row
	values := make([]sql.NullString, len(columns))
	scan := make([]any, len(columns))
	for i := range values {
		scan[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scan...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		row := make(catalog.Row, len(columns))
		for i, col := range columns {
			row[col] = values[i].String
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func joinColumns(columns []string) string {
	query := ""
	for i, col := range columns {
		if i > 0 {
			query += ", "
		}
		query += col
	}
	return query
}

// =============================================================================
// WRITES - reference-data maintenance
// =============================================================================

// InsertServiceType adds a service_types row. A missing id is assigned as
// max(numeric id)+1. Returns the id used.
func (s *Store) InsertServiceType(ctx context.Context, row catalog.Row) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := row["id"]
	if id == "" {
		next, err := s.nextID(ctx, "service_types")
		if err != nil {
			return "", err
		}
		id = next
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO service_types (id, name, uses_end_date, is_active, created_at)
		VALUES (?, ?, ?, ?, datetime('now'))`,
		id, row["name"], defaulted(row["uses_end_date"], "false"), defaulted(row["is_active"], "true"),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert service type: %w", err)
	}
	return id, nil
}

// InsertServiceRate adds a service_rates row, assigning an id when missing.
func (s *Store) InsertServiceRate(ctx context.Context, row catalog.Row) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := row["id"]
	if id == "" {
		next, err := s.nextID(ctx, "service_rates")
		if err != nil {
			return "", err
		}
		id = next
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO service_rates
		(id, service_type_id, number_of_pets, min_duration, max_duration,
		 duration_granularity, charge_block_duration, recommended_staff_rate,
		 recommended_customer_rate, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, datetime('now'))`,
		id,
		row["service_type_id"],
		defaulted(row["number_of_pets"], "1 pet"),
		defaulted(row["min_duration"], "0"),
		defaulted(row["max_duration"], "0"),
		defaulted(row["duration_granularity"], "1"),
		defaulted(row["charge_block_duration"], "0"),
		defaulted(row["recommended_staff_rate"], "0"),
		defaulted(row["recommended_customer_rate"], "0"),
		defaulted(row["is_active"], "true"),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert service rate: %w", err)
	}
	return id, nil
}

// nextID scans the table's ids and returns max(numeric)+1, ignoring any
// non-numeric ids. Empty tables start at 1.
func (s *Store) nextID(ctx context.Context, table string) (string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id FROM "+table)
	if err != nil {
		return "", fmt.Errorf("failed to scan ids: %w", err)
	}
	defer rows.Close()

	max := 0
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		if n, err := strconv.Atoi(id); err == nil && n > max {
			max = n
		}
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	return strconv.Itoa(max + 1), nil
}

func defaulted(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// =============================================================================
// SEED DATA - sample catalog for demos and fresh installs
// =============================================================================

// Seed populates an empty store with a small sample catalog. Calling it on
// a non-empty store is a no-op.
func (s *Store) Seed(ctx context.Context) error {
	existing, err := s.ServiceTypes(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	types := []catalog.Row{
		{"name": "Dog Walking", "uses_end_date": "false", "is_active": "true"},
		{"name": "Grooming", "uses_end_date": "false", "is_active": "true"},
		{"name": "Boarding", "uses_end_date": "true", "is_active": "true"},
	}
	for _, row := range types {
		if _, err := s.InsertServiceType(ctx, row); err != nil {
			return err
		}
	}

	rates := []catalog.Row{
		{
			"service_type_id": "1", "number_of_pets": "1 pet",
			"min_duration": "30", "max_duration": "120", "duration_granularity": "30",
			"charge_block_duration": "30", "recommended_staff_rate": "8.00",
			"recommended_customer_rate": "12.50", "is_active": "true",
		},
		{
			"service_type_id": "1", "number_of_pets": "1 pet",
			"min_duration": "30", "max_duration": "120", "duration_granularity": "30",
			"charge_block_duration": "60", "recommended_staff_rate": "12.00",
			"recommended_customer_rate": "20.00", "is_active": "true",
		},
		{
			"service_type_id": "1", "number_of_pets": "2 pets",
			"min_duration": "30", "max_duration": "120", "duration_granularity": "30",
			"charge_block_duration": "60", "recommended_staff_rate": "15.00",
			"recommended_customer_rate": "28.00", "is_active": "true",
		},
		{
			"service_type_id": "2", "number_of_pets": "1 pet",
			"min_duration": "45", "max_duration": "180", "duration_granularity": "45",
			"charge_block_duration": "45", "recommended_staff_rate": "14.00",
			"recommended_customer_rate": "35.00", "is_active": "true",
		},
	}
	for _, row := range rates {
		if _, err := s.InsertServiceRate(ctx, row); err != nil {
			return err
		}
	}
	return nil
}
