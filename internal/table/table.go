package table

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	"github.com/1911342723/jsonflat/internal/flatten"
	"github.com/1911342723/jsonflat/internal/jsonval"
)

// EmptyCell marks absent and null values. It is distinct from the empty
// string, which only ever comes from a genuine "" in the document.
const EmptyCell = "null"

// IndexColumn is the title and pseudo-address of the row-number column.
const IndexColumn = "#"

// Column describes one output column.
type Column struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

// Table is a materialized grid. Rows[r][c] belongs to Columns[c].
type Table struct {
	Columns []Column   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Materialize renders row records into a table. Columns follow selection
// order with the last dotted segment as title; a leading "#" column is
// prepended iff any row carries an expansion index.
func Materialize(rows []flatten.Row, paths []string) *Table {
	indexed := false
	for _, r := range rows {
		if r.Index > 0 {
			indexed = true
			break
		}
	}

	cols := make([]Column, 0, len(paths)+1)
	if indexed {
		cols = append(cols, Column{Title: IndexColumn, Path: "_index"})
	}
	for _, p := range paths {
		cols = append(cols, Column{Title: lastSegment(p), Path: p})
	}

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells := make([]string, 0, len(cols))
		if indexed {
			cells = append(cells, strconv.Itoa(r.Index))
		}
		for _, p := range paths {
			cells = append(cells, formatCell(r.Values, p))
		}
		out = append(out, cells)
	}
	return &Table{Columns: cols, Rows: out}
}

// lastSegment titles a column by the final segment of its address; the root
// address has no segments and titles "$".
func lastSegment(path string) string {
	if path == "" {
		return "$"
	}
	if i := strings.LastIndex(path, "."); i >= 0 {
		return path[i+1:]
	}
	return path
}

func formatCell(values map[string]jsonval.Value, path string) string {
	v, ok := values[path]
	if !ok {
		return EmptyCell
	}
	switch v.Type {
	case jsonval.NullType:
		return EmptyCell
	case jsonval.StringType:
		return v.String
	case jsonval.NumberType:
		return v.Number.String()
	case jsonval.BoolType:
		if v.Bool {
			return "true"
		}
		return "false"
	default:
		// Objects and arrays keep their canonical JSON form.
		return v.JSON()
	}
}

// CSV renders the table as delimited text: a UTF-8 BOM, a header row of
// column titles, then one line per row, newline-joined without a trailing
// newline. Cells containing a comma, double quote, or newline are quoted
// with interior quotes doubled.
func (t *Table) CSV() []byte {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	titles := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		titles[i] = c.Title
	}
	writeRecord(&buf, titles)

	for _, row := range t.Rows {
		buf.WriteByte('\n')
		writeRecord(&buf, row)
	}
	return buf.Bytes()
}

func writeRecord(buf *bytes.Buffer, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(escapeCell(cell))
	}
}

func escapeCell(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// ExportFilename names a CSV download after its generation time,
// e.g. json_extract_20260823_151504.csv.
func ExportFilename(now time.Time) string {
	return "json_extract_" + now.Format("20060102_150405") + ".csv"
}
