package catalog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

func readCSV(path string) ([]rawRow, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	return decodeCSV(f)
}

func decodeCSV(r io.Reader) ([]rawRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := index[h]; !dup {
			index[h] = i
		}
	}
	if missing := missingColumns(func(c string) bool { _, ok := index[c]; return ok }); len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	_, hasCombined := index[colCombinedText]

	var rows []rawRow
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", line, err)
		}

		cell := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return rec[i]
		}

		rows = append(rows, rawRow{
			line:            line,
			name:            cell(colName),
			nameIdx:         cell(colNameIdx),
			url:             cell(colURL),
			remoteSupport:   cell(colRemoteSupport),
			adaptiveSupport: cell(colAdaptiveSupport),
			duration:        cell(colDuration),
			testType:        cell(colTestType),
			combinedText:    cell(colCombinedText),
			hasCombined:     hasCombined,
		})
	}
	return rows, nil
}
