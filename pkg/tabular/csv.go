package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// ExportCSV renders the export document as a flat delimited file: a header
// line followed by one quoted line per data row. The CSV path carries no
// title block and no statistics.
func ExportCSV(opts ExportOptions) ([]byte, error) {
	if len(opts.Columns) == 0 {
		return nil, ErrNoColumns
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := make([]string, len(opts.Columns))
	for i, col := range opts.Columns {
		headers[i] = col.Header
	}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	record := make([]string, len(opts.Columns))
	for _, entry := range opts.Data {
		for i, col := range opts.Columns {
			record[i] = formatValue(col, entry[col.Key])
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
