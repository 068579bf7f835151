package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// ErrEmptyInput is returned when the source file has no header row.
var ErrEmptyInput = errors.New("input file has no header row")

// DateLayout is the calendar-date format used in persisted tables.
const DateLayout = "2006-01-02"

// ReadCSV loads a delimited table from disk. The first record is the
// header; empty cells become null.
func ReadCSV(path string) (ds *Dataset, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()

	reader := csv.NewReader(f)

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyInput, path)
	}

	header := records[0]
	ds = New(header)

	for _, record := range records[1:] {
		row := make(Row, len(header))

		for i, col := range header {
			if record[i] == "" {
				row[col] = nil
			} else {
				row[col] = record[i]
			}
		}

		ds.Append(row)
	}

	return ds, nil
}

// WriteCSV persists the table as delimited text with a header row,
// creating intermediate directories as needed.
func (d *Dataset) WriteCSV(path string) (err error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if mkdirErr := os.MkdirAll(dir, 0755); mkdirErr != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, mkdirErr)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}
	}()

	writer := csv.NewWriter(f)

	if err := writer.Write(d.columns); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	record := make([]string, len(d.columns))

	for _, row := range d.rows {
		for i, col := range d.columns {
			record[i] = FormatCell(row[col])
		}

		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", path, err)
	}

	return nil
}

// FormatCell renders a cell value for delimited output. Null renders as
// the empty string; dates render at calendar-date granularity.
func FormatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case time.Time:
		return val.Format(DateLayout)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprintf("%v", val)
	}
}
