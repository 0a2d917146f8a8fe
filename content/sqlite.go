package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"zombiezen.com/go/sqlite"

	"repgen/layout"
)

// LoadSQLite runs query against database opened read only. Column names come
// from the statement so empty results still have a header.
func LoadSQLite(ctx context.Context, path, query string) (frame *Frame, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// OpenConn would report missing file as generic "unable to open"
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &layout.ResourceNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("unable to access database: %w", err)
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenReadOnly)
	if err != nil {
		return nil, fmt.Errorf("unable to open database %q: %w", path, err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("unable to close database %q: %w", path, cerr)
		}
	}()
	conn.SetInterrupt(ctx.Done())

	stmt, trailing, err := conn.PrepareTransient(query)
	if err != nil {
		return nil, fmt.Errorf("bad query for %q: %w", path, err)
	}
	defer stmt.Finalize()
	if trailing > 0 && len(strings.TrimSpace(query[len(query)-trailing:])) > 0 {
		return nil, fmt.Errorf("query for %q has more than one statement", path)
	}

	columns := make([]string, stmt.ColumnCount())
	for i := range columns {
		columns[i] = stmt.ColumnName(i)
	}

	var rows [][]Value
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, fmt.Errorf("query for %q failed: %w", path, err)
		}
		if !hasRow {
			break
		}
		row := make([]Value, len(columns))
		for i := range row {
			switch stmt.ColumnType(i) {
			case sqlite.TypeNull:
				row[i] = Null()
			case sqlite.TypeInteger:
				row[i] = Int(stmt.ColumnInt64(i))
			case sqlite.TypeFloat:
				row[i] = Float(stmt.ColumnFloat(i))
			default:
				row[i] = Text(stmt.ColumnText(i))
			}
		}
		rows = append(rows, row)
	}
	for i := range columns {
		unify(rows, i)
	}
	if frame, err = NewFrame(columns, rows); err != nil {
		return nil, fmt.Errorf("bad query result for %q: %w", path, err)
	}
	return frame, nil
}
