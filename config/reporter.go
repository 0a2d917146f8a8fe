package config

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/maruel/natural"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"repgen/misc"
)

type ReporterConfig struct {
	Destination string `yaml:"destination" sanitize:"path_clean,assure_dir_exists_for_file" validate:"required,filepath"`
}

// Prepare creates empty debug report. When configured destination cannot be
// created report goes to temporary directory, see Name.
func (conf *ReporterConfig) Prepare() (*Report, error) {
	f, err := os.Create(conf.Destination)
	if err != nil {
		if f, err = os.CreateTemp("", misc.GetAppName()+"-report.*.zip"); err != nil {
			return nil, fmt.Errorf("unable to create report: %w", err)
		}
	}
	return &Report{file: f, entries: make(map[string]entry)}, nil
}

type entryKind int

const (
	// path is read when report is finalized
	kindPath entryKind = iota
	// snapshot made when stored
	kindCopy
	kindData
)

func (k entryKind) String() string {
	switch k {
	case kindCopy:
		return "copy"
	case kindData:
		return "data"
	default:
		return "path"
	}
}

type entry struct {
	kind   entryKind
	source string // as requested by caller
	path   string // what is actually archived
	stamp  time.Time
	data   []byte
}

// Report accumulates everything needed to investigate single program run and
// packs it into zip archive on Close. Nil Report is valid and does nothing,
// so callers do not have to check if report was requested.
type Report struct {
	mu      sync.Mutex
	file    *os.File
	entries map[string]entry
	scratch []string
}

// Name returns absolute name of the archive.
func (r *Report) Name() string {
	if r == nil || r.file == nil {
		return ""
	}
	if n, err := filepath.Abs(r.file.Name()); err == nil {
		return n
	}
	return r.file.Name()
}

// Store remembers file or directory to be archived as is on Close. Stored
// directories are program working areas and are removed after archiving.
func (r *Report) Store(name, path string) {
	if r == nil {
		return
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, exists := r.entries[name]; exists && old.source != path {
		panic(fmt.Sprintf("attempt to replace report entry [%s]: was %s, now %s", name, old.source, path))
	}
	r.entries[name] = entry{kind: kindPath, source: path, path: abs}
}

// StoreData puts data into the archive under name.
func (r *Report) StoreData(name string, data []byte) {
	if r == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[name]; exists {
		panic(fmt.Sprintf("attempt to replace report entry [%s] with data", name))
	}
	r.entries[name] = entry{kind: kindData, source: "-", data: data, stamp: time.Now()}
}

// StoreCopy snapshots file or directory at the time of the call. Same name
// could be used repeatedly, later copies get versioned names.
func (r *Report) StoreCopy(name, path string) error {
	if r == nil {
		return nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", misc.GetAppName()+"-r-")
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.scratch = append(r.scratch, dir)

	e := entry{kind: kindCopy, source: path, path: dir, stamp: time.Now()}
	switch {
	case info.Mode().IsRegular():
		if e.path, err = copyFile(dir, abs, info.ModTime()); err != nil {
			return err
		}
	case info.IsDir():
		if err := os.CopyFS(dir, os.DirFS(abs)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unable to copy %s: not a regular file or directory", path)
	}

	if _, exists := r.entries[name]; exists {
		name = fmt.Sprintf("%s-%d", name, e.stamp.UnixNano())
	}
	r.entries[name] = e
	return nil
}

// Close writes the archive and cleans up stored working areas and copies.
func (r *Report) Close() error {
	if r == nil || r.file == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.write()
	err = multierr.Append(err, r.file.Close())
	r.file = nil

	for _, e := range r.entries {
		if e.kind != kindPath {
			continue
		}
		if info, serr := os.Stat(e.path); serr == nil && info.IsDir() {
			err = multierr.Append(err, os.RemoveAll(e.path))
		}
	}
	for _, dir := range r.scratch {
		err = multierr.Append(err, os.RemoveAll(dir))
	}
	return err
}

func copyFile(dir, src string, modTime time.Time) (string, error) {
	dst := filepath.Join(dir, filepath.Base(src))

	in, err := os.Open(src)
	if err != nil {
		return "", err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", err
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return dst, os.Chtimes(dst, modTime, modTime)
}

type manifestItem struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Source string `yaml:"source"`
	Stamp  string `yaml:"stamp"`
}

// manifest lists entries in natural order of their names, archive follows
// the same order.
func manifest(entries map[string]entry, now time.Time) ([]string, []byte, error) {
	names := make([]string, 0, len(entries))
	for k := range entries {
		names = append(names, k)
	}
	slices.SortFunc(names, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		}
		return 0
	})

	items := make([]manifestItem, 0, len(names))
	for _, name := range names {
		e := entries[name]
		stamp := e.stamp
		if stamp.IsZero() {
			stamp = now
		}
		items = append(items, manifestItem{
			Name:   name,
			Kind:   e.kind.String(),
			Source: e.source,
			Stamp:  stamp.UTC().Format(time.RFC3339),
		})
	}
	data, err := yaml.Marshal(items)
	if err != nil {
		return nil, nil, err
	}
	return names, data, nil
}

func (r *Report) write() error {
	arc := zip.NewWriter(r.file)

	now := time.Now()
	names, list, err := manifest(r.entries, now)
	if err != nil {
		return err
	}
	if err := addFile(arc, "MANIFEST.yaml", now, bytes.NewReader(list)); err != nil {
		return err
	}

	for _, name := range names {
		if err := addEntry(arc, name, r.entries[name]); err != nil {
			return fmt.Errorf("unable to archive [%s]: %w", name, err)
		}
	}
	return arc.Close()
}

func addEntry(arc *zip.Writer, name string, e entry) error {
	if e.kind == kindData {
		return addFile(arc, name, e.stamp, bytes.NewReader(e.data))
	}

	info, err := os.Stat(e.path)
	if err != nil {
		// things go missing when run fails, archive what is left
		return nil
	}
	if info.IsDir() {
		return addDir(arc, name, e.path)
	}
	f, err := os.Open(e.path)
	if err != nil {
		return err
	}
	defer f.Close()
	return addFile(arc, name, info.ModTime(), f)
}

func addFile(arc *zip.Writer, name string, t time.Time, src io.Reader) error {
	w, err := arc.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate, Modified: t})
	if err != nil {
		return err
	}
	_, err = io.Copy(w, src)
	return err
}

// addDir puts regular files from dir under name prefix, links and other
// special files are skipped.
func addDir(arc *zip.Writer, name, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return addFile(arc, filepath.ToSlash(filepath.Join(name, rel)), info.ModTime(), f)
	})
}
