package pdfdoc

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// WriteTo closes the document and writes it out. Document cannot be drawn
// on afterwards.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	if err := d.pdf.Output(cw); err != nil {
		return cw.n, fmt.Errorf("unable to produce pdf: %w", err)
	}
	return cw.n, nil
}

// Finalize writes document to path atomically: either complete file appears
// under its final name or nothing does.
func (d *Document) Finalize(path string) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("unable to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			if rerr := os.Remove(tmp.Name()); rerr != nil && !os.IsNotExist(rerr) {
				err = multierr.Append(err, rerr)
			}
		}
	}()

	n, err := d.WriteTo(tmp)
	if err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("unable to flush pdf: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("unable to close pdf: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("unable to move pdf in place: %w", err)
	}
	d.log.Debug("Document written", zap.String("path", path), zap.Int64("size", n), zap.Int("pages", d.pdf.PageNo()))
	return nil
}
