package pdfdoc

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"repgen/layout"
	"repgen/utils/images"
)

type registered struct {
	name   string
	format images.Format
}

const mmPerInch = 25.4

// register loads image once per path and raster size and hands it to the
// writer in a format it embeds natively. Size in document units is only used
// to rasterize vector images at configured resolution, so the same file
// placed at different sizes is registered for each of them.
func (d *Document) register(path string, w, h float64) (*registered, error) {
	opts := d.opts.Images
	if opts.DPI > 0 {
		opts.Width = int(math.Round(w / mmPerInch * float64(opts.DPI)))
		opts.Height = int(math.Round(h / mmPerInch * float64(opts.DPI)))
	}
	key := fmt.Sprintf("%s@%dx%d", path, opts.Width, opts.Height)
	if img, ok := d.images[key]; ok {
		return img, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &layout.ResourceNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("unable to read image: %w", err)
	}

	norm, err := images.Normalize(data, opts)
	if err != nil {
		return nil, fmt.Errorf("image %q: %w", path, err)
	}
	if norm.Converted {
		d.log.Debug("Image converted", zap.String("path", path), zap.String("from", norm.Source),
			zap.String("to", string(norm.Format)), zap.Int("size", len(norm.Data)))
	}

	img := &registered{name: key, format: norm.Format}
	d.pdf.RegisterImageOptionsReader(img.name, fpdf.ImageOptions{ImageType: string(img.format)}, bytes.NewReader(norm.Data))
	if err := d.pdf.Error(); err != nil {
		return nil, fmt.Errorf("image %q: %w", path, err)
	}
	d.images[key] = img
	return img, nil
}
