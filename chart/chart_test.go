package chart

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func sample() ([]string, []Series) {
	labels := []string{"08:00", "09:00", "10:00", "11:00", "12:00"}
	series := []Series{
		{Name: "Cars", Values: []float64{10, 25, 17, 30, 22}},
		{Name: "Trucks", Values: []float64{3, math.NaN(), 5, 8, 2}},
	}
	return labels, series
}

func TestLine(t *testing.T) {
	labels, series := sample()
	img, err := Line(labels, series, Options{Width: 600, Height: 360, YLabel: "vehicles"})
	if err != nil {
		t.Fatalf("Line() error = %v", err)
	}
	if img.Bounds().Dx() != 600 || img.Bounds().Dy() != 360 {
		t.Fatalf("unexpected bounds: %v", img.Bounds())
	}

	found := make(map[color.RGBA]bool)
	for y := range 360 {
		for x := range 600 {
			found[img.RGBAAt(x, y)] = true
		}
	}
	for i := range series {
		if !found[Palette[i]] {
			t.Errorf("series %d color %v not found", i, Palette[i])
		}
	}
	if !found[color.RGBA{0, 0, 0, 255}] {
		t.Error("axes are not drawn")
	}
}

func TestLine_Deterministic(t *testing.T) {
	labels, series := sample()
	first, err := Line(labels, series, Options{Width: 300, Height: 200})
	if err != nil {
		t.Fatalf("Line() error = %v", err)
	}
	second, err := Line(labels, series, Options{Width: 300, Height: 200})
	if err != nil {
		t.Fatalf("Line() error = %v", err)
	}
	if !bytes.Equal(first.Pix, second.Pix) {
		t.Error("same input rendered differently")
	}
}

func TestLine_Errors(t *testing.T) {
	labels, series := sample()
	tests := []struct {
		name   string
		labels []string
		series []Series
		opts   Options
	}{
		{"too small", labels, series, Options{Width: 50, Height: 300}},
		{"no labels", nil, series, Options{Width: 300, Height: 300}},
		{"no series", labels, nil, Options{Width: 300, Height: 300}},
		{"length mismatch", labels[:2], series, Options{Width: 300, Height: 300}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Line(tt.labels, tt.series, tt.opts); err == nil {
				t.Error("Line() expected error")
			}
		})
	}
}

func TestValueRange(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		lo, hi float64
	}{
		{"padded", []float64{0, 100}, -5, 105},
		{"flat", []float64{7, 7}, 6, 8},
		{"empty", []float64{math.NaN()}, 0, 1},
	}
	for _, tt := range tests {
		lo, hi := valueRange([]Series{{Values: tt.values}})
		if lo != tt.lo || hi != tt.hi {
			t.Errorf("%s: valueRange() = (%g,%g), want (%g,%g)", tt.name, lo, hi, tt.lo, tt.hi)
		}
	}
}

func TestSave(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	path := filepath.Join(t.TempDir(), "chart.png")
	if err := Save(img, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("saved file is not png: %v", err)
	}
	if cfg.Width != 20 || cfg.Height != 10 {
		t.Errorf("saved %dx%d", cfg.Width, cfg.Height)
	}

	if err := Save(img, filepath.Join(t.TempDir(), "chart.unknown")); err == nil {
		t.Error("Save() expected error for unknown extension")
	}
}
