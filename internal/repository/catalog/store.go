// Package catalog loads the assessment catalog from CSV or Parquet files.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/assessrec/internal/domain"
	domcat "github.com/kailas-cloud/assessrec/internal/domain/catalog"
)

// Column names of the catalog data source.
const (
	colName            = "name"
	colNameIdx         = "name_idx"
	colURL             = "url"
	colRemoteSupport   = "remote_support"
	colAdaptiveSupport = "adaptive_support"
	colDuration        = "duration"
	colTestType        = "test_type_mapped"
	colCombinedText    = "combined_text"
)

var requiredColumns = []string{colName, colURL, colDuration, colTestType}

// Store is the in-memory, read-only catalog.
type Store struct {
	records []domcat.Record
}

// NewStore wraps already validated records.
func NewStore(records []domcat.Record) *Store {
	cp := make([]domcat.Record, len(records))
	copy(cp, records)
	return &Store{records: cp}
}

// All returns the records in source order. The slice is a fresh copy.
func (s *Store) All() []domcat.Record {
	out := make([]domcat.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of served records.
func (s *Store) Len() int { return len(s.records) }

// Load reads the catalog file, choosing the reader by extension.
// Rows violating record invariants are skipped and logged.
func Load(path string, logger *zap.Logger) (*Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		rows []rawRow
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		rows, err = readCSV(path)
	case ".parquet":
		rows, err = readParquet(path)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q: %w", ext, domain.ErrCatalogUnavailable)
	}
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %v: %w", path, err, domain.ErrCatalogUnavailable)
	}

	records := make([]domcat.Record, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		rec, convErr := row.toRecord()
		if convErr != nil {
			skipped++
			logger.Warn("catalog row skipped",
				zap.Int("row", row.line),
				zap.String("name", row.name),
				zap.Error(convErr),
			)
			continue
		}
		records = append(records, rec)
	}

	logger.Info("catalog loaded",
		zap.String("path", path),
		zap.Int("records", len(records)),
		zap.Int("skipped", skipped),
	)

	return &Store{records: records}, nil
}

// rawRow is one source row before validation. line is 1-based, header excluded.
type rawRow struct {
	line            int
	name            string
	nameIdx         string
	url             string
	remoteSupport   string
	adaptiveSupport string
	duration        string
	testType        string
	combinedText    string
	hasCombined     bool
}

var errBadDuration = errors.New("duration is not a non-negative number")

func (r rawRow) toRecord() (domcat.Record, error) {
	duration, err := parseDuration(r.duration)
	if err != nil {
		return domcat.Record{}, err
	}

	combined := r.combinedText
	if !r.hasCombined {
		idx := r.nameIdx
		if strings.TrimSpace(idx) == "" {
			idx = r.name
		}
		combined = domcat.CombineText(idx, r.testType)
	}

	return domcat.New(
		strings.TrimSpace(r.name),
		strings.TrimSpace(r.url),
		domcat.ParseSupport(r.remoteSupport),
		domcat.ParseSupport(r.adaptiveSupport),
		duration,
		strings.TrimSpace(r.testType),
		combined,
	)
}

// parseDuration accepts "30" and "30.0"; fractional minutes are truncated.
func parseDuration(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, errBadDuration
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 {
			return 0, errBadDuration
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > math.MaxInt32 {
		return 0, errBadDuration
	}
	return int(f), nil
}

func missingColumns(has func(string) bool) []string {
	var missing []string
	for _, c := range requiredColumns {
		if !has(c) {
			missing = append(missing, c)
		}
	}
	return missing
}
