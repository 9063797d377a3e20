package core

// Row is one result row, values in column order.
type Row []Value

// ResultSet is an ordered query result. Columns lists the column names in
// result order; every Row holds its values in the same order.
type ResultSet struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// ColumnIndex returns the position of the named column, or -1.
func (rs *ResultSet) ColumnIndex(name string) int {
	for i, c := range rs.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Append adds a row. The row must have one value per column.
func (rs *ResultSet) Append(row Row) {
	rs.Rows = append(rs.Rows, row)
}
