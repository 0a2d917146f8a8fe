package images

import "testing"

func TestRasterizeSVG(t *testing.T) {
	svg := []byte(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 50"><rect width="100" height="50"/></svg>`)

	tests := []struct {
		name           string
		targetW, targH int
		wantW, wantH   int
	}{
		{"intrinsic", 0, 0, 100, 50},
		{"scale_by_width", 200, 0, 200, 100},
		{"scale_by_height", 0, 200, 400, 200},
		{"fit_box", 150, 150, 150, 75},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := RasterizeSVG(svg, tt.targetW, tt.targH)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if img.Bounds().Dx() != tt.wantW || img.Bounds().Dy() != tt.wantH {
				t.Fatalf("unexpected bounds: %v", img.Bounds())
			}
		})
	}
}

func TestRasterSize_Clamped(t *testing.T) {
	w, h := rasterSize(100000, 50000, 0, 0)
	if w != maxRasterDim || h != maxRasterDim/2 {
		t.Errorf("rasterSize() = %dx%d, want %dx%d", w, h, maxRasterDim, maxRasterDim/2)
	}
	w, h = rasterSize(0, 0, 0, 0)
	if w != defaultSVGSize || h != defaultSVGSize {
		t.Errorf("rasterSize() without viewBox = %dx%d", w, h)
	}
}

func TestIsSVG(t *testing.T) {
	if !IsSVG([]byte(`<?xml version="1.0"?>` + "\n" + `<SVG width="1"/>`)) {
		t.Error("svg not detected")
	}
	if IsSVG([]byte{0x89, 'P', 'N', 'G'}) {
		t.Error("png detected as svg")
	}
}
