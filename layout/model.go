package layout

import (
	"fmt"
	"math"
	"strconv"

	"go.uber.org/multierr"
)

// Chapter is a titled unit of content, always starting on a new page.
type Chapter struct {
	Number int
	Title  string
	Body   string

	// Render order is slice order.
	Tables []TableEntry
	Images []ImageEntry
}

type TableEntry struct {
	ID    string
	Block *TableBlock
}

type ImageEntry struct {
	ID    string
	Block *ImageBlock
}

// TableBlock is a labeled grid of fixed size cells. Every row must have as
// many cells as there are columns.
type TableBlock struct {
	Label      string
	Columns    []string
	Rows       [][]any
	CellWidth  float64
	CellHeight float64
}

// ImageBlock is a labeled image placed with exact size.
type ImageBlock struct {
	Path   string
	Label  string
	Width  float64
	Height float64
}

// Heading is the text of chapter title banner.
func (ch *Chapter) Heading() string {
	return fmt.Sprintf("Chapter %d : %s", ch.Number, ch.Title)
}

// Validate checks chapter and all its blocks, reporting every problem found.
func (ch *Chapter) Validate() (err error) {
	prefix := fmt.Sprintf("chapter %d", ch.Number)
	if len(ch.Title) == 0 {
		err = multierr.Append(err, &ConfigurationError{Field: prefix + ".title", Reason: "is empty"})
	}
	seen := make(map[string]bool)
	for i, t := range ch.Tables {
		field := fmt.Sprintf("%s.tables[%d]", prefix, i)
		if len(t.ID) > 0 {
			field = prefix + ".tables." + t.ID
			if seen[t.ID] {
				err = multierr.Append(err, &ConfigurationError{Field: field, Reason: "duplicate id"})
			}
			seen[t.ID] = true
		}
		err = multierr.Append(err, t.Block.validate(field))
	}
	clear(seen)
	for i, img := range ch.Images {
		field := fmt.Sprintf("%s.images[%d]", prefix, i)
		if len(img.ID) > 0 {
			field = prefix + ".images." + img.ID
			if seen[img.ID] {
				err = multierr.Append(err, &ConfigurationError{Field: field, Reason: "duplicate id"})
			}
			seen[img.ID] = true
		}
		err = multierr.Append(err, img.Block.validate(field))
	}
	return err
}

func (t *TableBlock) validate(field string) (err error) {
	if t == nil {
		return &ConfigurationError{Field: field, Reason: "table is missing"}
	}
	if len(t.Columns) == 0 {
		err = multierr.Append(err, &ConfigurationError{Field: field + ".columns", Reason: "no columns"})
	}
	if !positive(t.CellWidth) || !positive(t.CellHeight) {
		err = multierr.Append(err, &ConfigurationError{Field: field + ".cell_size",
			Reason: fmt.Sprintf("must be positive, got (%g, %g)", t.CellWidth, t.CellHeight)})
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			err = multierr.Append(err, &ConfigurationError{Field: fmt.Sprintf("%s.rows[%d]", field, i),
				Reason: fmt.Sprintf("has %d cells, header has %d", len(row), len(t.Columns))})
		}
	}
	return err
}

// Height returns vertical space table takes when label wraps into
// labelLines lines.
func (t *TableBlock) Height(lineHeight float64, labelLines int) float64 {
	label := lineHeight + float64(labelLines)*lineHeight + lineHeight
	grid := float64(len(t.Rows)+1) * t.CellHeight
	return label + grid + lineHeight
}

// Width is total width of the grid.
func (t *TableBlock) Width() float64 {
	return float64(len(t.Columns)) * t.CellWidth
}

func (img *ImageBlock) validate(field string) (err error) {
	if img == nil {
		return &ConfigurationError{Field: field, Reason: "image is missing"}
	}
	if len(img.Path) == 0 {
		err = multierr.Append(err, &ConfigurationError{Field: field + ".file", Reason: "is empty"})
	}
	if !positive(img.Width) || !positive(img.Height) {
		err = multierr.Append(err, &ConfigurationError{Field: field + ".size",
			Reason: fmt.Sprintf("must be positive, got (%g, %g)", img.Width, img.Height)})
	}
	return err
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// CellText returns canonical textual representation of a table value.
func CellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
