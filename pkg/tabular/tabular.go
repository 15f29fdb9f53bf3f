// Package tabular serializes row mappings into styled spreadsheet documents
// and parses spreadsheet or CSV files back into row mappings.
package tabular

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Column value types driving cell formatting.
type ColumnType string

const (
	TypeText       ColumnType = "text"
	TypeNumber     ColumnType = "number"
	TypeDate       ColumnType = "date"
	TypePercentage ColumnType = "percentage"
)

// BrandLabel is printed in the first cell of every exported document.
const BrandLabel = "ProvaLab"

// dateLayout renders dates in Brazilian day-first order.
const dateLayout = "02/01/2006"

const timestampLayout = "02/01/2006 15:04"

// ErrParse indicates the import file is unreadable or has no usable rows.
var ErrParse = errors.New("unable to parse tabular file")

// ErrNoColumns indicates an export was requested without a column schema.
var ErrNoColumns = errors.New("export requires at least one column")

// Column describes one exported column: display header, source field key,
// width in spreadsheet units and the value type used for formatting.
type Column struct {
	Header   string
	Key      string
	Width    float64
	Type     ColumnType
	Decimals int
}

// ExportOptions describes a single export document.
type ExportOptions struct {
	Title            string
	Subtitle         string
	Columns          []Column
	Data             []map[string]any
	IncludeStats     bool
	IncludeTimestamp bool
	// GeneratedAt stamps the timestamp row; zero means time.Now().
	GeneratedAt time.Time
}

// Filename builds a suggested download name: lowercased, whitespace replaced
// with underscores, plus the format extension.
func Filename(base, ext string) string {
	cleaned := strings.Join(strings.Fields(strings.ToLower(base)), "_")
	if cleaned == "" {
		cleaned = "export"
	}
	return cleaned + "." + strings.TrimPrefix(ext, ".")
}

func (o ExportOptions) generatedAt() time.Time {
	if o.GeneratedAt.IsZero() {
		return time.Now()
	}
	return o.GeneratedAt
}

// formatValue renders a raw cell value as display text. Missing and
// unparseable values become empty strings, never "null" or "undefined".
func formatValue(col Column, value any) string {
	if value == nil {
		return ""
	}

	switch col.Type {
	case TypeDate:
		return formatDate(value)
	case TypePercentage:
		number, ok := toFloat(value)
		if !ok {
			return ""
		}
		return formatPercent(number)
	case TypeNumber:
		number, ok := toFloat(value)
		if !ok {
			return ""
		}
		decimals := col.Decimals
		if decimals <= 0 {
			return strconv.FormatFloat(number, 'f', -1, 64)
		}
		return strconv.FormatFloat(number, 'f', decimals, 64)
	default:
		return fmt.Sprintf("%v", value)
	}
}

func formatPercent(fraction float64) string {
	return strconv.FormatFloat(fraction*100, 'f', 1, 64) + "%"
}

func formatDate(value any) string {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format(dateLayout)
	case *time.Time:
		if v == nil || v.IsZero() {
			return ""
		}
		return v.Format(dateLayout)
	case string:
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			return parsed.Format(dateLayout)
		}
		return v
	default:
		return fmt.Sprintf("%v", value)
	}
}

// toFloat attempts a numeric reading of a cell value. Non-numeric values are
// excluded from statistics rather than treated as zero.
func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case string:
		trimmed := strings.TrimSpace(strings.TrimSuffix(v, "%"))
		if trimmed == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

type columnStats struct {
	average float64
	max     float64
	min     float64
	count   int
}

// statsFor computes average, max and min over the values of a column that are
// parseable as numbers.
func statsFor(col Column, rows []map[string]any) columnStats {
	stats := columnStats{}
	sum := 0.0
	for _, row := range rows {
		number, ok := toFloat(row[col.Key])
		if !ok {
			continue
		}
		if stats.count == 0 || number > stats.max {
			stats.max = number
		}
		if stats.count == 0 || number < stats.min {
			stats.min = number
		}
		sum += number
		stats.count++
	}
	if stats.count > 0 {
		stats.average = sum / float64(stats.count)
	}
	return stats
}

func formatStat(col Column, value float64) string {
	if col.Type == TypePercentage {
		return formatPercent(value)
	}
	return strconv.FormatFloat(value, 'f', 2, 64)
}

func defaultWidth(col Column) float64 {
	if col.Width > 0 {
		return col.Width
	}
	width := float64(len([]rune(col.Header)) + 4)
	if width < 12 {
		width = 12
	}
	return width
}
