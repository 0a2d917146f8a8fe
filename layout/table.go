package layout

import (
	"go.uber.org/zap"
)

// Table renders labeled grid: blank line, centered label, blank line, header
// row, data rows and a blank separator line. Cell size is fixed, text is
// never measured to size columns and table is never split between pages.
func (e *Engine) Table(t *TableBlock) error {
	if err := t.validate("table"); err != nil {
		return err
	}

	label, err := e.encode(t.Label, "table label")
	if err != nil {
		return err
	}
	header, err := e.encodeAll(t.Columns, "table header")
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row))
		for _, v := range row {
			cells = append(cells, CellText(v))
		}
		if cells, err = e.encodeAll(cells, "table cell"); err != nil {
			return err
		}
		rows = append(rows, cells)
	}

	var (
		left  = e.opts.Page.Left
		width = e.opts.Page.ContentWidth()
		lh    = e.opts.LineHeight
	)

	e.setFont(e.opts.Fonts.TableLabel)
	e.setTextColor(Black)
	var labelLines []string
	if len(label) > 0 {
		labelLines = e.d.SplitLines(label, width)
	}

	if t.Width() > width {
		e.log.Warn("Table is wider than page content", zap.String("label", t.Label),
			zap.Float64("width", t.Width()), zap.Float64("available", width))
	}
	if err := e.ensure(t.Height(lh, len(labelLines)), "table "+quote(t.Label)); err != nil {
		return err
	}

	e.canvas.Advance(lh)
	for _, line := range labelLines {
		e.canvas.MoveTo(left)
		e.d.Cell(width, lh, line, false, AlignCenter, false)
		e.canvas.Advance(lh)
	}
	e.canvas.Advance(lh)

	e.setFont(e.opts.Fonts.TableHeader)
	e.row(header, t.CellWidth, t.CellHeight)

	e.setFont(e.opts.Fonts.TableCell)
	for _, cells := range rows {
		e.row(cells, t.CellWidth, t.CellHeight)
	}
	e.canvas.Advance(lh)
	return e.d.Err()
}

func (e *Engine) row(cells []string, w, h float64) {
	e.canvas.MoveTo(e.opts.Page.Left)
	for _, c := range cells {
		e.d.Cell(w, h, c, true, AlignCenter, false)
	}
	e.canvas.Advance(h)
}

func (e *Engine) encodeAll(in []string, field string) ([]string, error) {
	out := make([]string, len(in))
	for i, s := range in {
		var err error
		if out[i], err = e.encode(s, field); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func quote(s string) string {
	if len(s) == 0 {
		return "<unlabeled>"
	}
	return "'" + s + "'"
}
