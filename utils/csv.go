// utils/csv.go
package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Column describes one exported field: the key looked up in each row and the
// header label written for it.
type Column struct {
	Key   string
	Label string
}

// ToDelimitedText serializes rows to comma-delimited text: one header line
// of labels, then one line per row. String values are always quoted with
// inner quotes doubled, numbers are written bare, nil becomes an empty
// field. Spreadsheet consumers need a UTF-8 BOM in front of this to keep
// accented characters intact; WriteBOM adds it at the download boundary.
func ToDelimitedText(rows []map[string]any, columns []Column) string {
	var b strings.Builder

	labels := make([]string, len(columns))
	for i, col := range columns {
		labels[i] = col.Label
	}
	b.WriteString(strings.Join(labels, ","))
	b.WriteString("\n")

	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		cells := make([]string, len(columns))
		for j, col := range columns {
			cells[j] = formatCell(row[col.Key])
		}
		b.WriteString(strings.Join(cells, ","))
	}
	return b.String()
}

func formatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return `"` + strings.ReplaceAll(val, `"`, `""`) + `"`
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case time.Time:
		return val.Format("02/01/2006")
	default:
		return fmt.Sprintf("%v", val)
	}
}

// WriteBOM prefixes the byte-order mark expected by spreadsheet consumers.
func WriteBOM(csv string) []byte {
	return append([]byte("\uFEFF"), csv...)
}

// ExportFilename builds the <dataset>_<year>[_<month>].csv pattern.
func ExportFilename(dataset string, year int, month time.Month) string {
	name := fmt.Sprintf("%s_%d", dataset, year)
	if month != 0 {
		name = fmt.Sprintf("%s_%d", name, int(month))
	}
	return name + ".csv"
}
