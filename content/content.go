// Package content turns report specification into chapters ready for layout:
// it reads body text, loads and filters tables and renders charts.
package content

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"repgen/chart"
	"repgen/layout"
	"repgen/misc"
	"repgen/report"
	"repgen/state"
)

const mmPerInch = 25.4

// Table is a loaded table kept for inspection.
type Table struct {
	Chapter string
	ID      string
	Source  string
	// Frame is what is drawn, after columns were selected, renamed and
	// rounded.
	Frame *Frame
}

// Content is everything layout needs to compose the document.
type Content struct {
	Title    string
	SpecFile string
	Chapters []layout.Chapter

	Tables []Table
	// Charts lists rendered chart files.
	Charts  []string
	WorkDir string
}

// Prepare loads all data report specification refers to. Charts are rendered
// into a new temporary directory which caller owns.
func Prepare(ctx context.Context, spec *report.Spec, specFile string, log *zap.Logger) (_ *Content, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	tmpDir, err := os.MkdirTemp("", misc.GetAppName()+"-")
	if err != nil {
		return nil, fmt.Errorf("unable to create temporary directory: %w", err)
	}
	env.Rpt.Store(fmt.Sprintf("%s-%s", misc.GetAppName(), env.RunID), tmpDir)
	defer func() {
		// debug report needs directory even when preparation failed
		if err != nil && env.Rpt == nil {
			_ = os.RemoveAll(tmpDir)
		}
	}()

	c := &Content{
		Title:    spec.Title,
		SpecFile: specFile,
		Chapters: make([]layout.Chapter, 0, spec.Chapters.Len()),
		WorkDir:  tmpDir,
	}
	p := preparer{spec: spec, c: c, dpi: float64(env.Cfg.Document.Images.DPI), log: log}

	for id, ch := range spec.Chapters.All() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		chapter, err := p.chapter(ctx, id, &ch)
		if err != nil {
			return nil, fmt.Errorf("chapter %q: %w", id, err)
		}
		c.Chapters = append(c.Chapters, chapter)
	}

	// Save prepared content for debugging
	if env.Rpt != nil {
		if err := os.WriteFile(filepath.Join(tmpDir, "content.txt"), []byte(c.String()), 0644); err != nil {
			return nil, fmt.Errorf("unable to write prepared content for debugging: %w", err)
		}
	}

	log.Debug("Content prepared", zap.Int("chapters", len(c.Chapters)),
		zap.Int("tables", len(c.Tables)), zap.Int("charts", len(c.Charts)))
	return c, nil
}

type preparer struct {
	spec *report.Spec
	c    *Content
	dpi  float64
	log  *zap.Logger
}

func (p *preparer) chapter(ctx context.Context, id string, ch *report.Chapter) (layout.Chapter, error) {
	prefix := "chapters." + id + "."
	out := layout.Chapter{Number: ch.Number, Title: ch.Title}

	if len(ch.Text) > 0 {
		body, err := readText(p.spec.Path(ch.Text))
		if err != nil {
			return out, err
		}
		out.Body = body
	}

	// charts are built from tables as loaded, before any filtering
	sources := make(map[string]*Frame, ch.Tables.Len())
	for tid, t := range ch.Tables.All() {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		src, name, err := p.load(ctx, &t)
		if err != nil {
			return out, fmt.Errorf("table %q: %w", tid, err)
		}
		view, err := shape(src, &t, prefix+"tables."+tid+".")
		if err != nil {
			return out, err
		}
		sources[tid] = src
		p.c.Tables = append(p.c.Tables, Table{Chapter: id, ID: tid, Source: name, Frame: view})
		out.Tables = append(out.Tables, layout.TableEntry{ID: tid, Block: &layout.TableBlock{
			Label:      t.Label,
			Columns:    view.Columns(),
			Rows:       view.Cells(),
			CellWidth:  t.CellSize[0],
			CellHeight: t.CellSize[1],
		}})
		p.log.Debug("Table loaded", zap.String("chapter", id), zap.String("table", tid),
			zap.String("source", name), zap.Int("rows", view.Len()))
	}

	for iid, img := range ch.Images.All() {
		var (
			path string
			err  error
		)
		if img.Chart != nil {
			path, err = p.chart(id, iid, &img, sources[img.Chart.Table], prefix+"images."+iid+".chart.")
		} else {
			path, err = existing(p.spec.Path(img.File))
		}
		if err != nil {
			return out, fmt.Errorf("image %q: %w", iid, err)
		}
		out.Images = append(out.Images, layout.ImageEntry{ID: iid, Block: &layout.ImageBlock{
			Path:   path,
			Label:  img.Label,
			Width:  img.Size[0],
			Height: img.Size[1],
		}})
	}
	return out, nil
}

func (p *preparer) load(ctx context.Context, t *report.Table) (*Frame, string, error) {
	if t.SQLite != nil {
		path := p.spec.Path(t.SQLite.DB)
		frame, err := LoadSQLite(ctx, path, t.SQLite.Query)
		return frame, path, err
	}
	path := p.spec.Path(t.CSV)
	frame, err := LoadCSV(path, t.Separator, t.Decimal)
	return frame, path, err
}

// shape applies column selection, renaming and rounding in this order.
func shape(src *Frame, t *report.Table, prefix string) (*Frame, error) {
	view := src
	if len(t.Columns) > 0 {
		var err error
		if view, err = view.Select(t.Columns); err != nil {
			return nil, &layout.ConfigurationError{Field: prefix + "columns", Reason: err.Error()}
		}
	}
	view, err := view.Rename(t.Rename.All())
	if err != nil {
		return nil, &layout.ConfigurationError{Field: prefix + "rename", Reason: err.Error()}
	}
	if t.Round != nil {
		view = view.Round(*t.Round)
	}
	return view, nil
}

func (p *preparer) chart(chapter, id string, img *report.Image, src *Frame, prefix string) (string, error) {
	if src == nil {
		// validation makes sure table exists
		return "", &layout.ConfigurationError{Field: prefix + "table", Reason: "table is not defined"}
	}
	index, err := src.Column(img.Chart.Index)
	if err != nil {
		return "", &layout.ConfigurationError{Field: prefix + "index", Reason: err.Error()}
	}
	labels := make([]string, len(index))
	for i, v := range index {
		labels[i] = v.String()
	}

	columns := img.Chart.Columns
	if len(columns) == 0 {
		columns = slices.DeleteFunc(src.Numeric(), func(c string) bool { return c == img.Chart.Index })
		if len(columns) == 0 {
			return "", &layout.ConfigurationError{Field: prefix + "columns", Reason: "table has no numeric columns to plot"}
		}
	}
	series := make([]chart.Series, 0, len(columns))
	for _, name := range columns {
		values, err := src.Floats(name)
		if err != nil {
			return "", &layout.ConfigurationError{Field: prefix + "columns", Reason: err.Error()}
		}
		series = append(series, chart.Series{Name: name, Values: values})
	}

	rgba, err := chart.Line(labels, series, chart.Options{
		Width:  p.pixels(img.Size[0]),
		Height: p.pixels(img.Size[1]),
		YLabel: img.Chart.YLabel,
	})
	if err != nil {
		return "", fmt.Errorf("unable to draw chart: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(img.File))
	if len(ext) == 0 {
		ext = ".png"
	}
	path := filepath.Join(p.c.WorkDir, chapter+"-"+id+ext)
	if err := chart.Save(rgba, path); err != nil {
		return "", err
	}
	p.c.Charts = append(p.c.Charts, path)
	p.log.Debug("Chart rendered", zap.String("chapter", chapter), zap.String("image", id),
		zap.Int("series", len(series)), zap.String("file", path))
	return path, nil
}

func (p *preparer) pixels(mm float64) int {
	return int(math.Round(mm / mmPerInch * p.dpi))
}

func readText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &layout.ResourceNotFoundError{Path: path, Err: err}
		}
		return "", fmt.Errorf("unable to read text: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	return strings.TrimRight(string(data), "\n"), nil
}

func existing(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", &layout.ResourceNotFoundError{Path: path, Err: err}
		}
		return "", fmt.Errorf("unable to access image: %w", err)
	}
	if !fi.Mode().IsRegular() {
		return "", fmt.Errorf("image %q is not a regular file", path)
	}
	return path, nil
}
