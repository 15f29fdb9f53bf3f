package tabular

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Relatório"

// ExportXLSX renders the export document as an Excel workbook.
//
// Layout, top to bottom: title block, optional subtitle, optional generation
// timestamp, a blank separator row, the styled header row, one data row per
// entry and, when requested, a trailing statistics block.
func ExportXLSX(opts ExportOptions) ([]byte, error) {
	if len(opts.Columns) == 0 {
		return nil, ErrNoColumns
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	styles, err := newStyleSet(f)
	if err != nil {
		return nil, err
	}

	row := 1
	maxCol := 2
	setCell(f, 1, row, BrandLabel)
	setCell(f, 2, row, opts.Title)
	applyRowStyle(f, styles.title, row, 2)
	row++

	if opts.Subtitle != "" {
		setCell(f, 1, row, opts.Subtitle)
		row++
	}

	if opts.IncludeTimestamp {
		setCell(f, 1, row, "Gerado em")
		setCell(f, 2, row, opts.generatedAt().Format(timestampLayout))
		row++
	}

	// Blank separator between the title block and the table.
	row++

	if len(opts.Columns) > maxCol {
		maxCol = len(opts.Columns)
	}
	for i, col := range opts.Columns {
		setCell(f, i+1, row, col.Header)
	}
	applyRowStyle(f, styles.header, row, len(opts.Columns))
	row++

	for dataIndex, entry := range opts.Data {
		for i, col := range opts.Columns {
			setCell(f, i+1, row, cellValue(col, entry[col.Key]))
		}
		if dataIndex%2 == 1 {
			applyRowStyle(f, styles.altRow, row, len(opts.Columns))
		}
		row++
	}

	lastRow := row - 1

	if opts.IncludeStats {
		row++
		setCell(f, 1, row, "Estatísticas")
		applyRowStyle(f, styles.statsLabel, row, 1)
		row++
		setCell(f, 1, row, "Total de registros")
		setCell(f, 2, row, len(opts.Data))
		row++

		for _, col := range opts.Columns {
			if col.Type != TypeNumber && col.Type != TypePercentage {
				continue
			}
			stats := statsFor(col, opts.Data)
			if stats.count == 0 {
				continue
			}
			setCell(f, 1, row, col.Header)
			setCell(f, 2, row, "Média: "+formatStat(col, stats.average))
			setCell(f, 3, row, "Máximo: "+formatStat(col, stats.max))
			setCell(f, 4, row, "Mínimo: "+formatStat(col, stats.min))
			if maxCol < 4 {
				maxCol = 4
			}
			row++
		}
		lastRow = row - 1
	}

	for i, col := range opts.Columns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, fmt.Errorf("column name: %w", err)
		}
		if err := f.SetColWidth(sheetName, name, name, defaultWidth(col)); err != nil {
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	lastCol, err := excelize.ColumnNumberToName(maxCol)
	if err != nil {
		return nil, fmt.Errorf("column name: %w", err)
	}
	if err := f.SetSheetDimension(sheetName, fmt.Sprintf("A1:%s%d", lastCol, lastRow)); err != nil {
		return nil, fmt.Errorf("set dimension: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// cellValue renders a value for a spreadsheet cell. Plain numbers stay
// numeric so Excel can operate on them; everything else is display text.
func cellValue(col Column, value any) any {
	if value == nil {
		return ""
	}
	if col.Type == TypeNumber && col.Decimals <= 0 {
		if number, ok := toFloat(value); ok {
			return number
		}
		return ""
	}
	return formatValue(col, value)
}

type styleSet struct {
	title      int
	header     int
	altRow     int
	statsLabel int
}

func newStyleSet(f *excelize.File) (styleSet, error) {
	title, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
	})
	if err != nil {
		return styleSet{}, fmt.Errorf("title style: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"1F4E78"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return styleSet{}, fmt.Errorf("header style: %w", err)
	}

	altRow, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"F2F2F2"}},
	})
	if err != nil {
		return styleSet{}, fmt.Errorf("alt row style: %w", err)
	}

	statsLabel, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return styleSet{}, fmt.Errorf("stats label style: %w", err)
	}

	return styleSet{title: title, header: header, altRow: altRow, statsLabel: statsLabel}, nil
}

func setCell(f *excelize.File, col, row int, value any) {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return
	}
	_ = f.SetCellValue(sheetName, cell, value)
}

func applyRowStyle(f *excelize.File, style, row, width int) {
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(width, row)
	if err != nil {
		return
	}
	_ = f.SetCellStyle(sheetName, first, last, style)
}
