package report

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	validator "github.com/go-playground/validator/v10"
	"github.com/rupor-github/gencfg"
	"go.uber.org/multierr"

	"repgen/layout"
)

// Validate checks the whole report before anything is loaded or
// drawn. Returned error combines ConfigurationErrors for every problem.
func (s *Spec) Validate() (err error) {
	err = multierr.Append(err, checkStruct("", s))
	if s.Chapters.Len() == 0 {
		err = multierr.Append(err, &layout.ConfigurationError{Field: "chapters", Reason: "no chapters"})
	}
	for id, ch := range s.Chapters.All() {
		err = multierr.Append(err, ch.validate("chapters."+id+"."))
	}
	return err
}

func (ch *Chapter) validate(prefix string) (err error) {
	err = multierr.Append(err, checkStruct(prefix, ch))
	for id, t := range ch.Tables.All() {
		err = multierr.Append(err, t.validate(prefix+"tables."+id+"."))
	}
	for id, img := range ch.Images.All() {
		err = multierr.Append(err, img.validate(prefix+"images."+id+"."))
		if img.Chart == nil {
			continue
		}
		if _, ok := ch.Tables.Get(img.Chart.Table); !ok {
			err = multierr.Append(err, &layout.ConfigurationError{Field: prefix + "images." + id + ".chart.table",
				Reason: fmt.Sprintf("table %q is not defined in this chapter", img.Chart.Table)})
		}
	}
	return err
}

func (t *Table) validate(prefix string) (err error) {
	err = multierr.Append(err, checkStruct(prefix, t))
	switch {
	case len(t.CSV) > 0 && t.SQLite != nil:
		err = multierr.Append(err, &layout.ConfigurationError{Field: prefix + "csv", Reason: "csv and sqlite are mutually exclusive"})
	case len(t.CSV) == 0 && t.SQLite == nil:
		err = multierr.Append(err, &layout.ConfigurationError{Field: prefix + "csv", Reason: "table needs csv or sqlite source"})
	}
	if t.SQLite != nil && (len(t.Decimal) > 0 || len(t.Separator) > 0) {
		err = multierr.Append(err, &layout.ConfigurationError{Field: prefix + "sqlite", Reason: "decimal and separator apply to csv only"})
	}
	if t.CellSize[0] <= 0 || t.CellSize[1] <= 0 {
		err = multierr.Append(err, &layout.ConfigurationError{Field: prefix + "cell_size",
			Reason: fmt.Sprintf("must be positive, got %v", t.CellSize)})
	}
	if len(t.Columns) > 0 {
		for from := range t.Rename.All() {
			if !slices.Contains(t.Columns, from) {
				err = multierr.Append(err, &layout.ConfigurationError{Field: prefix + "rename." + from,
					Reason: "column is not selected"})
			}
		}
	}
	return err
}

func (img *Image) validate(prefix string) (err error) {
	err = multierr.Append(err, checkStruct(prefix, img))
	if img.Size[0] <= 0 || img.Size[1] <= 0 {
		err = multierr.Append(err, &layout.ConfigurationError{Field: prefix + "size",
			Reason: fmt.Sprintf("must be positive, got %v", img.Size)})
	}
	return err
}

// checkStruct runs validator tags and converts its findings into
// ConfigurationErrors named after yaml fields.
func checkStruct(prefix string, v any) (err error) {
	verr := gencfg.Validate(v)
	if verr == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(verr, &ves) {
		return &layout.ConfigurationError{Field: strings.TrimSuffix(prefix, "."), Reason: verr.Error()}
	}
	t := reflect.TypeOf(v)
	for _, fe := range ves {
		err = multierr.Append(err, &layout.ConfigurationError{
			Field:  prefix + yamlPath(t, fe.StructNamespace()),
			Reason: reason(fe),
		})
	}
	return err
}

func yamlPath(t reflect.Type, namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		// drop top level type name
		parts = parts[1:]
	}
	for i, p := range parts {
		for t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			continue
		}
		name, index, _ := strings.Cut(p, "[")
		f, ok := t.FieldByName(name)
		if !ok {
			continue
		}
		if tag, _, _ := strings.Cut(f.Tag.Get("yaml"), ","); len(tag) > 0 {
			parts[i] = tag
			if len(index) > 0 {
				parts[i] += "[" + index
			}
		}
		t = f.Type
	}
	return strings.Join(parts, ".")
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "len":
		return fmt.Sprintf("must be exactly %s character long", fe.Param())
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	}
	if len(fe.Param()) > 0 {
		return fmt.Sprintf("fails %s=%s check", fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("fails %s check", fe.Tag())
}
