package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/xuri/excelize/v2"
)

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Import parses a spreadsheet or CSV blob into an ordered list of row
// mappings keyed by the header row. No schema validation happens here; the
// caller maps fields defensively.
func Import(data []byte) ([]map[string]string, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrParse)
	}

	kind := mimetype.Detect(data)
	if kind.Is(xlsxMIME) || kind.Is("application/zip") {
		return importXLSX(data)
	}
	return importCSV(data)
}

func importXLSX(data []byte) ([]map[string]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrParse)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return mapRows(rows)
}

func importCSV(data []byte) ([]map[string]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	return mapRows(records)
}

// mapRows turns raw rows into header-keyed mappings. Exported workbooks carry
// a decorated title block above the header; when the brand label is present
// in the first cell, the header is the first non-empty row after the blank
// separator.
func mapRows(rows [][]string) ([]map[string]string, error) {
	start := headerIndex(rows)
	if start < 0 || start >= len(rows) {
		return nil, fmt.Errorf("%w: first sheet is empty", ErrParse)
	}

	headers := make([]string, 0, len(rows[start]))
	for _, header := range rows[start] {
		headers = append(headers, strings.TrimSpace(strings.TrimPrefix(header, "\ufeff")))
	}
	if len(headers) == 0 || allEmpty(headers) {
		return nil, fmt.Errorf("%w: header row is empty", ErrParse)
	}

	mappings := make([]map[string]string, 0, len(rows)-start-1)
	for _, row := range rows[start+1:] {
		if allEmpty(row) {
			continue
		}
		mapping := make(map[string]string, len(headers))
		for i, header := range headers {
			if header == "" {
				continue
			}
			if i < len(row) {
				mapping[header] = strings.TrimSpace(row[i])
			} else {
				mapping[header] = ""
			}
		}
		mappings = append(mappings, mapping)
	}

	return mappings, nil
}

func headerIndex(rows [][]string) int {
	if len(rows) == 0 {
		return -1
	}

	if len(rows[0]) == 0 || strings.TrimSpace(rows[0][0]) != BrandLabel {
		return 0
	}

	// Skip the title block: everything up to and including the first blank
	// separator row.
	for i := 1; i < len(rows); i++ {
		if allEmpty(rows[i]) {
			for j := i + 1; j < len(rows); j++ {
				if !allEmpty(rows[j]) {
					return j
				}
			}
			return -1
		}
	}

	return -1
}

func allEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
