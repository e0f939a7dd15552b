package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// parquetColumns maps catalog column names to leaf column indexes (-1 = absent).
type parquetColumns map[string]int

func resolveColumns(pf *parquet.File) parquetColumns {
	cols := parquetColumns{}
	for i, path := range pf.Schema().Columns() {
		if len(path) == 0 {
			continue
		}
		leaf := path[len(path)-1]
		if _, dup := cols[leaf]; !dup {
			cols[leaf] = i
		}
	}
	return cols
}

func (c parquetColumns) index(name string) int {
	if i, ok := c[name]; ok {
		return i
	}
	return -1
}

// readParquet reads the catalog via the generic row reader so that
// nullable and mixed numeric/string columns are handled uniformly.
func readParquet(path string) ([]rawRow, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}

	pf, err := parquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	cols := resolveColumns(pf)
	if missing := missingColumns(func(c string) bool { return cols.index(c) >= 0 }); len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	hasCombined := cols.index(colCombinedText) >= 0

	var rows []rawRow
	line := 0
	for _, rg := range pf.RowGroups() {
		reader := parquet.NewRowGroupReader(rg)
		buf := make([]parquet.Row, 256)

		for {
			n, readErr := reader.ReadRows(buf)
			for i := 0; i < n; i++ {
				line++
				row := rowToRaw(buf[i], cols)
				row.line = line
				row.hasCombined = hasCombined
				rows = append(rows, row)
			}
			if readErr != nil {
				if errors.Is(readErr, io.EOF) {
					break
				}
				return nil, fmt.Errorf("read rows: %w", readErr)
			}
		}
	}
	return rows, nil
}

func rowToRaw(row parquet.Row, cols parquetColumns) rawRow {
	var r rawRow
	targets := map[int]*string{
		cols.index(colName):            &r.name,
		cols.index(colNameIdx):         &r.nameIdx,
		cols.index(colURL):             &r.url,
		cols.index(colRemoteSupport):   &r.remoteSupport,
		cols.index(colAdaptiveSupport): &r.adaptiveSupport,
		cols.index(colDuration):        &r.duration,
		cols.index(colTestType):        &r.testType,
		cols.index(colCombinedText):    &r.combinedText,
	}
	delete(targets, -1)

	for _, v := range row {
		dst, ok := targets[v.Column()]
		if !ok || v.IsNull() {
			continue
		}
		// numeric kinds are formatted, byte arrays returned as-is
		*dst = v.String()
	}
	return r
}
