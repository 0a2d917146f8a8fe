package content

import (
	"fmt"
	"iter"
	"slices"
)

// Frame is an immutable table: named columns and rows of values. All
// operations return new frames and never modify the receiver.
type Frame struct {
	columns []string
	rows    [][]Value
}

// NewFrame takes ownership of rows.
func NewFrame(columns []string, rows [][]Value) (*Frame, error) {
	for i, c := range columns {
		if slices.Index(columns, c) != i {
			return nil, fmt.Errorf("duplicate column %q", c)
		}
	}
	for i, r := range rows {
		if len(r) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i+1, len(r), len(columns))
		}
	}
	return &Frame{columns: slices.Clone(columns), rows: rows}, nil
}

func (f *Frame) Columns() []string {
	return slices.Clone(f.columns)
}

func (f *Frame) Len() int {
	return len(f.rows)
}

func (f *Frame) index(name string) (int, error) {
	if i := slices.Index(f.columns, name); i >= 0 {
		return i, nil
	}
	return -1, fmt.Errorf("column %q not found, have %q", name, f.columns)
}

// Select returns frame with requested columns in requested order.
func (f *Frame) Select(names []string) (*Frame, error) {
	idx := make([]int, len(names))
	for i, n := range names {
		j, err := f.index(n)
		if err != nil {
			return nil, err
		}
		idx[i] = j
	}
	rows := make([][]Value, len(f.rows))
	for r, row := range f.rows {
		out := make([]Value, len(idx))
		for i, j := range idx {
			out[i] = row[j]
		}
		rows[r] = out
	}
	return NewFrame(names, rows)
}

// Rename returns frame with columns renamed. Pairs naming absent columns are
// ignored.
func (f *Frame) Rename(pairs iter.Seq2[string, string]) (*Frame, error) {
	columns := slices.Clone(f.columns)
	for from, to := range pairs {
		if i := slices.Index(f.columns, from); i >= 0 {
			columns[i] = to
		}
	}
	return NewFrame(columns, f.rows)
}

// Round returns frame with float values rounded to n decimals.
func (f *Frame) Round(n int) *Frame {
	rows := make([][]Value, len(f.rows))
	for r, row := range f.rows {
		out := make([]Value, len(row))
		for i, v := range row {
			out[i] = v.Round(n)
		}
		rows[r] = out
	}
	return &Frame{columns: f.columns, rows: rows}
}

func (f *Frame) Column(name string) ([]Value, error) {
	j, err := f.index(name)
	if err != nil {
		return nil, err
	}
	out := make([]Value, len(f.rows))
	for r, row := range f.rows {
		out[r] = row[j]
	}
	return out, nil
}

// Floats returns numeric column, nulls become NaN.
func (f *Frame) Floats(name string) ([]float64, error) {
	values, err := f.Column(name)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(values))
	for i, v := range values {
		var ok bool
		if out[i], ok = v.Float(); !ok {
			return nil, fmt.Errorf("column %q is not numeric: row %d has %q", name, i+1, v.String())
		}
	}
	return out, nil
}

// Numeric lists names of columns every value of which is a number or null.
func (f *Frame) Numeric() []string {
	var out []string
	for j, c := range f.columns {
		numeric := true
		for _, row := range f.rows {
			if row[j].Kind() == KindText {
				numeric = false
				break
			}
		}
		if numeric {
			out = append(out, c)
		}
	}
	return out
}

// Cells returns rows in the form table renderer expects.
func (f *Frame) Cells() [][]any {
	out := make([][]any, len(f.rows))
	for r, row := range f.rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		out[r] = cells
	}
	return out
}
