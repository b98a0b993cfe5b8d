/*
Package csvfile provides a CSV-file catalog source.

PURPOSE:
  The business originally kept its reference data in two hand-edited CSV
  files, services and service types, with every field quoted. This source
  reads those files directly so existing data keeps working unchanged, and
  writes them back in the same all-quoted format so external editors see no
  diff noise.

FRESHNESS:
  Files are re-read on every call, which satisfies the catalog's
  read-fresh-per-computation contract and picks up hand edits without a
  restart.

MAINTENANCE:
  The store also implements catalog.Editor: the catalog admin endpoints
  append rows through InsertServiceType/InsertServiceRate, which rewrite
  the file in place. WriteServiceTypes/WriteServiceRates replace a whole
  table at once, for migrations and external tooling.

SEE ALSO:
  - catalog/source.go: the Source interface this implements
  - store/sqlite: the database implementation
*/
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/warp/scheduling-engine/catalog"
)

// Store implements catalog.Source over two CSV files. The first record of
// each file is the header; every following record becomes one text row.
type Store struct {
	typesPath string
	ratesPath string
	mu        sync.RWMutex
}

var _ catalog.Editor = (*Store)(nil)

// Column order written for files that do not exist yet. Existing files
// keep their own header untouched.
var (
	defaultTypeHeader = []string{"id", "name", "uses_end_date", "is_active"}
	defaultRateHeader = []string{
		"id", "service_type_id", "number_of_pets",
		"min_duration", "max_duration", "duration_granularity",
		"charge_block_duration",
		"recommended_staff_rate", "recommended_customer_rate",
		"is_active",
	}
)

func New(typesPath, ratesPath string) *Store {
	return &Store{typesPath: typesPath, ratesPath: ratesPath}
}

// ServiceTypes reads the service-types file fresh.
func (s *Store) ServiceTypes(ctx context.Context) ([]catalog.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return readRows(s.typesPath)
}

// ServiceRates reads the service-rates file fresh.
func (s *Store) ServiceRates(ctx context.Context) ([]catalog.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return readRows(s.ratesPath)
}

// WriteServiceTypes replaces the service-types file.
func (s *Store) WriteServiceTypes(header []string, rows []catalog.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeRows(s.typesPath, header, rows)
}

// WriteServiceRates replaces the service-rates file.
func (s *Store) WriteServiceRates(header []string, rows []catalog.Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return writeRows(s.ratesPath, header, rows)
}

// InsertServiceType appends a service_types row and rewrites the file.
// A missing id is assigned as max(numeric id)+1.
func (s *Store) InsertServiceType(ctx context.Context, row catalog.Row) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return insertRow(s.typesPath, defaultTypeHeader, row)
}

// InsertServiceRate appends a service_rates row, assigning an id when
// missing.
func (s *Store) InsertServiceRate(ctx context.Context, row catalog.Row) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return insertRow(s.ratesPath, defaultRateHeader, row)
}

func insertRow(path string, defaultHeader []string, row catalog.Row) (string, error) {
	header, rows, err := readTable(path)
	if err != nil {
		return "", err
	}
	if len(header) == 0 {
		header = defaultHeader
	}

	appended := make(catalog.Row, len(row))
	for k, v := range row {
		appended[k] = v
	}
	if appended["id"] == "" {
		appended["id"] = catalog.NextID(rows)
	}

	if err := writeRows(path, header, append(rows, appended)); err != nil {
		return "", err
	}
	return appended["id"], nil
}

func readRows(path string) ([]catalog.Row, error) {
	_, rows, err := readTable(path)
	return rows, err
}

func readTable(path string) ([]string, []catalog.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			// A missing file is an empty catalog, not a failure.
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil, nil
	}

	header := records[0]
	rows := make([]catalog.Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := make(catalog.Row, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return header, rows, nil
}

// writeRows writes the all-fields-quoted format the original files used.
// encoding/csv only quotes when forced to, so quoting is done by hand:
// embedded quotes double, every field wrapped.
func writeRows(path string, header []string, rows []catalog.Row) error {
	var b strings.Builder
	writeRecord(&b, header)
	for _, row := range rows {
		record := make([]string, len(header))
		for i, col := range header {
			record[i] = row[col]
		}
		writeRecord(&b, record)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".catalog-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(b.String()); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func writeRecord(b *strings.Builder, fields []string) {
	for i, field := range fields {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(field, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
