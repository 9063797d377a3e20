package output

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/leapdb/pkg/adapter"
	"github.com/leapstack-labs/leapdb/pkg/core"
)

// Grid renders a header row plus data rows in the effective mode. JSON
// mode emits an array of objects keyed by header name.
func (r *Renderer) Grid(headers []string, rows [][]string) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.jsonGrid(headers, rows)
	case ModeCSV:
		r.csvGrid(headers, rows)
	case ModeMarkdown:
		r.markdownGrid(headers, rows)
	default:
		r.tableGrid(headers, rows)
	}
	return nil
}

// Result renders a query result. JSON mode marshals the result set itself,
// keeping column order; the grid modes stringify each value first.
func (r *Renderer) Result(rs *core.ResultSet) error {
	if r.EffectiveMode() == ModeJSON {
		return r.JSON(rs)
	}

	rows := make([][]string, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = v.String()
		}
		rows = append(rows, cells)
	}
	return r.Grid(rs.Columns, rows)
}

// Tables renders table metadata. Null size values render as empty cells.
func (r *Renderer) Tables(tables []core.TableInfo) error {
	if r.EffectiveMode() == ModeJSON {
		return r.JSON(tables)
	}

	rows := make([][]string, 0, len(tables))
	for _, t := range tables {
		rows = append(rows, []string{
			t.Name,
			valueCell(t.DataSize),
			valueCell(t.IndexSize),
			valueCell(t.TotalSize),
			valueCell(t.RowCount),
			t.Comment,
		})
	}
	return r.Grid([]string{"NAME", "DATA SIZE", "INDEX SIZE", "TOTAL SIZE", "ROWS", "COMMENT"}, rows)
}

// Columns renders column definitions.
func (r *Renderer) Columns(cols []core.ColumnDef) error {
	if r.EffectiveMode() == ModeJSON {
		return r.JSON(cols)
	}

	rows := make([][]string, 0, len(cols))
	for _, c := range cols {
		key := ""
		if c.PrimaryKey {
			key = "PRI"
		}
		rows = append(rows, []string{c.Name, c.Type, nullableCell(c.Nullability), key, c.Default, c.Comment})
	}
	return r.Grid([]string{"NAME", "TYPE", "NULLABLE", "KEY", "DEFAULT", "COMMENT"}, rows)
}

// Indexes renders index definitions.
func (r *Renderer) Indexes(idxs []core.IndexDef) error {
	if r.EffectiveMode() == ModeJSON {
		return r.JSON(idxs)
	}

	rows := make([][]string, 0, len(idxs))
	for _, idx := range idxs {
		rows = append(rows, []string{
			idx.Name,
			strings.Join(idx.Columns, ", "),
			boolCell(idx.Unique),
			boolCell(idx.Primary),
			idx.Comment,
		})
	}
	return r.Grid([]string{"NAME", "COLUMNS", "UNIQUE", "PRIMARY", "COMMENT"}, rows)
}

// Translation renders generated DDL. Statements go to the primary output
// terminated with semicolons; warnings go to the error output so piped SQL
// stays executable.
func (r *Renderer) Translation(tr core.Translation) error {
	if r.EffectiveMode() == ModeJSON {
		return r.JSON(tr)
	}

	for _, st := range tr.Statements {
		if st.BestEffort {
			r.Printf("-- best effort:\n")
		}
		r.Printf("%s;\n", st.SQL)
	}
	for _, w := range tr.Warnings {
		r.Errorf("warning: %s\n", w)
	}
	return nil
}

// Key renders a single key inspection as label/value lines.
func (r *Renderer) Key(info *adapter.KeyInfo) error {
	if r.EffectiveMode() == ModeJSON {
		return r.JSON(info)
	}

	r.KeyValue("key", info.Key)
	r.KeyValue("type", info.Type)
	r.KeyValue("ttl", ttlCell(info.TTL))
	if info.Length != nil {
		r.KeyValue("length", fmt.Sprintf("%d", *info.Length))
	}
	r.KeyValue("value", info.Value)
	return nil
}

// List renders a single-column grid. JSON mode emits a plain array.
func (r *Renderer) List(header string, items []string) error {
	if r.EffectiveMode() == ModeJSON {
		return r.JSON(items)
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{item})
	}
	return r.Grid([]string{header}, rows)
}

func valueCell(v core.Value) string {
	if v.IsNull() {
		return ""
	}
	return v.String()
}

func nullableCell(n core.Nullability) string {
	switch n {
	case core.NullabilityNullable:
		return "YES"
	case core.NullabilityNotNull:
		return "NO"
	default:
		return ""
	}
}

func boolCell(b bool) string {
	if b {
		return "YES"
	}
	return ""
}

func ttlCell(ttl int64) string {
	if ttl < 0 {
		return "none"
	}
	return fmt.Sprintf("%ds", ttl)
}

func (r *Renderer) tableGrid(headers []string, rows [][]string) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(r.out, "(0 rows)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)

	for _, row := range rows {
		tr := make(table.Row, len(row))
		for i, cell := range row {
			tr[i] = cell
		}
		t.AppendRow(tr)
	}

	t.Render()
	_, _ = fmt.Fprintf(r.out, "(%d rows)\n", len(rows))
}

func (r *Renderer) jsonGrid(headers []string, rows [][]string) error {
	out := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		obj := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				obj[h] = row[i]
			}
		}
		out = append(out, obj)
	}
	return r.JSON(out)
}

func (r *Renderer) csvGrid(headers []string, rows [][]string) {
	_, _ = fmt.Fprintln(r.out, strings.Join(headers, ","))
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = escapeCSV(cell)
		}
		_, _ = fmt.Fprintln(r.out, strings.Join(cells, ","))
	}
}

func (r *Renderer) markdownGrid(headers []string, rows [][]string) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(r.out, "(0 rows)")
		return
	}

	_, _ = fmt.Fprintf(r.out, "| %s |\n", strings.Join(headers, " | "))

	seps := make([]string, len(headers))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(r.out, "| %s |\n", strings.Join(seps, " | "))

	for _, row := range rows {
		_, _ = fmt.Fprintf(r.out, "| %s |\n", strings.Join(row, " | "))
	}
}

// escapeCSV quotes a field when it contains a delimiter, quote, or newline.
func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return "\"" + strings.ReplaceAll(s, "\"", "\"\"") + "\""
	}
	return s
}
