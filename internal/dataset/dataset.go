package dataset

// ColumnType is the semantic type inferred for a column at load time.
type ColumnType int

const (
	// Empty columns have no present cells.
	Empty ColumnType = iota
	// Numeric columns have only cells that parse as float64.
	Numeric
	// Text columns have at least one present, non-numeric cell.
	Text
)

func (t ColumnType) String() string {
	switch t {
	case Numeric:
		return "numeric"
	case Text:
		return "text"
	default:
		return "empty"
	}
}

// Cell is a single (row, column) value.
type Cell struct {
	// Raw is the field as read from the source.
	Raw string
	// Value holds the parsed number for cells of Numeric columns.
	Value   float64
	Missing bool
}

// Column is a named, typed sequence of cells.
type Column struct {
	Name  string
	Type  ColumnType
	Cells []Cell
}

// Present returns the non-missing numeric values in row order.
// It returns nil for non-numeric columns.
func (c *Column) Present() []float64 {
	if c.Type != Numeric {
		return nil
	}
	out := make([]float64, 0, len(c.Cells))
	for _, cell := range c.Cells {
		if !cell.Missing {
			out = append(out, cell.Value)
		}
	}
	return out
}

// MissingCount returns the number of missing cells.
func (c *Column) MissingCount() int {
	n := 0
	for _, cell := range c.Cells {
		if cell.Missing {
			n++
		}
	}
	return n
}

// Dataset is an ordered set of equal-length columns. It is read-only once
// returned by Load or New.
type Dataset struct {
	Name     string
	Columns  []*Column
	Warnings []string

	rows int
}

// Rows returns the number of data rows.
func (d *Dataset) Rows() int { return d.rows }

// Cols returns the number of columns.
func (d *Dataset) Cols() int { return len(d.Columns) }

// Names returns column names in column order.
func (d *Dataset) Names() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// Row returns the cells of row i in column order.
func (d *Dataset) Row(i int) []Cell {
	row := make([]Cell, len(d.Columns))
	for j, c := range d.Columns {
		row[j] = c.Cells[i]
	}
	return row
}

// New builds a Dataset from a header and already padded records, marking
// missing cells and inferring column types. Every record must have exactly
// len(header) fields.
func New(name string, header []string, records [][]string, missing MissingSet) *Dataset {
	ds := &Dataset{Name: name, rows: len(records)}
	ds.Columns = make([]*Column, len(header))
	raw := make([]string, len(records))
	for j, h := range header {
		for i, rec := range records {
			raw[i] = rec[j]
		}
		ds.Columns[j] = buildColumn(h, raw, missing)
	}
	return ds
}

func buildColumn(name string, raw []string, missing MissingSet) *Column {
	col := &Column{Name: name, Type: InferType(raw, missing), Cells: make([]Cell, len(raw))}
	for i, v := range raw {
		cell := Cell{Raw: v, Missing: missing.Contains(v)}
		if !cell.Missing && col.Type == Numeric {
			cell.Value, _ = ParseNumber(v)
		}
		col.Cells[i] = cell
	}
	return col
}
