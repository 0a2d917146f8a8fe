// Package images converts pictures into formats the PDF writer embeds
// natively: JPEG, 8 bit non-interlaced PNG and GIF.
package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Format names image type as PDF writer expects it.
type Format string

const (
	FormatJPEG Format = "JPG"
	FormatPNG  Format = "PNG"
	FormatGIF  Format = "GIF"
)

type Options struct {
	JPEGQuality int
	DPI         int
	// Target pixel size for vector images, zero keeps intrinsic size.
	Width, Height int
}

type Normalized struct {
	Data   []byte
	Format Format
	// Source is detected original type.
	Source    string
	Converted bool
}

// Normalize returns image data in one of the natively supported formats,
// converting when necessary. Supported images are returned untouched.
func Normalize(data []byte, opts Options) (*Normalized, error) {
	if IsSVG(data) {
		img, err := RasterizeSVG(data, opts.Width, opts.Height)
		if err != nil {
			return nil, fmt.Errorf("unable to rasterize svg: %w", err)
		}
		return encode(img, "svg", opts)
	}

	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		return nil, errors.New("unrecognized image data")
	}

	switch kind.Extension {
	case "jpg":
		return &Normalized{Data: data, Format: FormatJPEG, Source: kind.Extension}, nil
	case "gif":
		return &Normalized{Data: data, Format: FormatGIF, Source: kind.Extension}, nil
	case "png":
		if !pngNeedsReencode(data) {
			return &Normalized{Data: data, Format: FormatPNG, Source: kind.Extension}, nil
		}
	case "bmp", "tif", "webp":
	default:
		return nil, fmt.Errorf("unsupported image type %s", kind.MIME.Value)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s image: %w", kind.Extension, err)
	}
	return encode(img, kind.Extension, opts)
}

// encode stores opaque images as JPEG and everything else as PNG so
// transparency survives.
func encode(img image.Image, source string, opts Options) (*Normalized, error) {
	if opaque(img) && source != "png" && source != "svg" {
		data, err := EncodeJPEG(img, opts.JPEGQuality, opts.DPI)
		if err != nil {
			return nil, fmt.Errorf("unable to encode jpeg: %w", err)
		}
		return &Normalized{Data: data, Format: FormatJPEG, Source: source, Converted: true}, nil
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, imaging.Clone(img), imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, fmt.Errorf("unable to encode png: %w", err)
	}
	return &Normalized{Data: buf.Bytes(), Format: FormatPNG, Source: source, Converted: true}, nil
}

func opaque(img image.Image) bool {
	if o, ok := img.(interface{ Opaque() bool }); ok {
		return o.Opaque()
	}
	return true
}

// pngNeedsReencode checks IHDR for 16 bit depth or interlacing, neither of
// which PDF writer handles.
func pngNeedsReencode(data []byte) bool {
	const (
		depthOffset     = 24
		interlaceOffset = 28
	)
	if len(data) <= interlaceOffset {
		return false
	}
	return data[depthOffset] == 16 || data[interlaceOffset] != 0
}
