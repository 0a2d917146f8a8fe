package content

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"repgen/layout"
)

const utf8BOM = "\ufeff"

// LoadCSV reads table with header row. Empty separator means comma, empty
// decimal means dot.
func LoadCSV(path, separator, decimal string) (*Frame, error) {
	if len(separator) == 0 {
		separator = ","
	}
	if len(decimal) == 0 {
		decimal = "."
	}
	if separator == decimal {
		return nil, fmt.Errorf("field separator and decimal separator are both %q", separator)
	}
	comma, _ := utf8.DecodeRuneInString(separator)

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &layout.ResourceNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("unable to open table: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = comma

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to read table %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("table %q has no header", path)
	}

	header := records[0]
	header[0] = strings.TrimPrefix(header[0], utf8BOM)
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows := make([][]Value, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make([]Value, len(rec))
		for i, s := range rec {
			row[i] = parseValue(s, decimal)
		}
		rows = append(rows, row)
	}
	for i := range header {
		unify(rows, i)
	}
	frame, err := NewFrame(header, rows)
	if err != nil {
		return nil, fmt.Errorf("bad table %q: %w", path, err)
	}
	return frame, nil
}
