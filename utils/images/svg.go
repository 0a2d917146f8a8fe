package images

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// defaultSVGSize is used for a side when SVG viewBox does not specify it.
const defaultSVGSize = 1024

// maxRasterDim limits pixel dimension of rasterized SVG so a huge viewBox
// cannot exhaust memory.
var maxRasterDim = 8192

// IsSVG sniffs the beginning of data for an svg root element. SVG is text and
// is not recognized by magic numbers.
func IsSVG(data []byte) bool {
	head := data[:min(len(data), 1024)]
	return bytes.Contains(bytes.ToLower(head), []byte("<svg"))
}

// RasterizeSVG renders SVG onto white opaque RGBA image.
//
// Sizing:
//   - no target: viewBox dimensions
//   - one target dimension: scale by it keeping aspect ratio
//   - both: fit into the box keeping aspect ratio
func RasterizeSVG(data []byte, targetW, targetH int) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	w, h := rasterSize(icon.ViewBox.W, icon.ViewBox.H, targetW, targetH)
	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return dst, nil
}

func rasterSize(viewW, viewH float64, targetW, targetH int) (int, int) {
	iw, ih := int(math.Ceil(viewW)), int(math.Ceil(viewH))
	if iw <= 0 {
		iw = defaultSVGSize
	}
	if ih <= 0 {
		ih = defaultSVGSize
	}

	scale := 1.0
	switch {
	case targetW > 0 && targetH > 0:
		scale = math.Min(float64(targetW)/float64(iw), float64(targetH)/float64(ih))
	case targetW > 0:
		scale = float64(targetW) / float64(iw)
	case targetH > 0:
		scale = float64(targetH) / float64(ih)
	}
	if longest := math.Max(float64(iw), float64(ih)) * scale; longest > float64(maxRasterDim) {
		scale *= float64(maxRasterDim) / longest
	}

	w := max(int(math.Round(float64(iw)*scale)), 1)
	h := max(int(math.Round(float64(ih)*scale)), 1)
	return w, h
}
