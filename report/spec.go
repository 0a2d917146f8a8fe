// Package report loads report specification: document title and ordered
// chapters with their text, tables and images.
package report

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	yaml "gopkg.in/yaml.v3"

	"repgen/layout"
)

type (
	SQLiteSource struct {
		DB    string `yaml:"db" validate:"required"`
		Query string `yaml:"query" validate:"required"`
	}

	Table struct {
		CSV    string        `yaml:"csv,omitempty"`
		SQLite *SQLiteSource `yaml:"sqlite,omitempty"`
		// Decimal separator of numbers in CSV, "." when empty.
		Decimal string `yaml:"decimal,omitempty" validate:"omitempty,len=1"`
		// Field separator of CSV, "," when empty.
		Separator string             `yaml:"separator,omitempty" validate:"omitempty,len=1"`
		Columns   []string           `yaml:"columns,omitempty" validate:"dive,required"`
		Rename    OrderedMap[string] `yaml:"rename,omitempty"`
		// Round numeric cells to this many decimals, nil keeps values as is.
		Round    *int       `yaml:"round,omitempty" validate:"omitempty,gte=0,lte=15"`
		Label    string     `yaml:"label,omitempty"`
		CellSize [2]float64 `yaml:"cell_size"`
	}

	Chart struct {
		Table   string   `yaml:"table" validate:"required"`
		Index   string   `yaml:"index" validate:"required"`
		Columns []string `yaml:"columns,omitempty" validate:"dive,required"`
		YLabel  string   `yaml:"y_label,omitempty"`
	}

	Image struct {
		File  string     `yaml:"file" validate:"required"`
		Label string     `yaml:"label,omitempty"`
		Size  [2]float64 `yaml:"size"`
		// Chart is rendered into File before document is composed.
		Chart *Chart `yaml:"chart,omitempty"`
	}

	Chapter struct {
		Number int               `yaml:"number" validate:"gte=0"`
		Title  string            `yaml:"title" validate:"required"`
		Text   string            `yaml:"text,omitempty"`
		Tables OrderedMap[Table] `yaml:"tables,omitempty"`
		Images OrderedMap[Image] `yaml:"images,omitempty"`
	}

	Spec struct {
		Title      string              `yaml:"title" validate:"required"`
		OutputName string              `yaml:"output_name,omitempty"`
		Chapters   OrderedMap[Chapter] `yaml:"chapters"`

		// Dir is where relative paths are resolved from.
		Dir string `yaml:"-"`
	}
)

// Load reads and validates report specification. All problems found are
// reported together.
func Load(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &layout.ResourceNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("unable to read report specification: %w", err)
	}

	spec, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("bad report specification %q: %w", path, err)
	}
	if spec.Dir, err = filepath.Abs(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("unable to resolve report directory: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return spec, nil
}

// Parse decodes specification without validating it.
func Parse(data []byte) (*Spec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	spec := &Spec{}
	if err := dec.Decode(spec); err != nil {
		return nil, fmt.Errorf("failed to decode: %w", err)
	}
	return spec, nil
}

// Path resolves p relative to specification directory.
func (s *Spec) Path(p string) string {
	if len(p) == 0 || filepath.IsAbs(p) || len(s.Dir) == 0 {
		return p
	}
	return filepath.Join(s.Dir, p)
}
