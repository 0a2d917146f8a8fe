package pdfdoc

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"repgen/common"
	"repgen/layout"
)

const logoSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 30 10"><rect width="30" height="10" fill="navy"/></svg>`

func testOptions(t *testing.T) Options {
	t.Helper()
	cs, err := layout.NewCharset(layout.DefaultCharset)
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions(cs)
	opts.Header.Title = "Radar Report"
	opts.Compress = false
	opts.CreationDate = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return opts
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func pngFile(t *testing.T, dir string) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 16, 16))); err != nil {
		t.Fatal(err)
	}
	return writeFile(t, dir, "picture.png", buf.Bytes())
}

func render(t *testing.T, opts Options, chapters []layout.Chapter) []byte {
	t.Helper()
	log := zaptest.NewLogger(t)

	doc, err := New(opts, log)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	lopts := layout.DefaultOptions()
	lopts.Page = doc.Page()
	e, err := layout.New(doc, lopts, log)
	if err != nil {
		t.Fatalf("layout.New() error = %v", err)
	}
	if err := e.Compose(context.Background(), chapters); err != nil {
		t.Fatalf("Compose() error = %v", err)
	}
	var buf bytes.Buffer
	n, err := doc.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() reported %d bytes, wrote %d", n, buf.Len())
	}
	return buf.Bytes()
}

func summary() []layout.Chapter {
	return []layout.Chapter{{
		Number: 1,
		Title:  "Summary",
		Body:   "Report summary.",
		Tables: []layout.TableEntry{{ID: "counts", Block: &layout.TableBlock{
			Label:      "Counts",
			Columns:    []string{"Name", "Count"},
			Rows:       [][]any{{"A", 1}, {"B", 2}},
			CellWidth:  40,
			CellHeight: 10,
		}}},
	}}
}

func TestDocument_Page(t *testing.T) {
	doc, err := New(testOptions(t), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := doc.Page(); got != layout.A4() {
		t.Errorf("Page() = %+v, want %+v", got, layout.A4())
	}
}

func TestDocument_Content(t *testing.T) {
	out := string(render(t, testOptions(t), summary()))

	if !strings.HasPrefix(out, "%PDF-") {
		t.Fatalf("output is not a pdf: %q", out[:min(len(out), 16)])
	}
	for _, want := range []string{"(Radar Report)", "(Chapter 1 : Summary)", "(Report summary.)", "(Counts)", "(Name)", "(Page 1)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %s", want)
		}
	}
	if strings.Contains(out, "(Page 2)") {
		t.Error("single chapter must fit on one page")
	}
}

func TestDocument_PagePerChapter(t *testing.T) {
	chapters := append(summary(), layout.Chapter{Number: 2, Title: "Details", Body: "More."})
	out := string(render(t, testOptions(t), chapters))
	for _, want := range []string{"(Page 1)", "(Page 2)", "(Chapter 2 : Details)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %s", want)
		}
	}
}

func TestDocument_Reproducible(t *testing.T) {
	first := render(t, testOptions(t), summary())
	second := render(t, testOptions(t), summary())
	if !bytes.Equal(first, second) {
		t.Error("same input produced different documents")
	}
}

func TestDocument_Images(t *testing.T) {
	dir := t.TempDir()
	opts := testOptions(t)
	opts.Header.Logos = []Logo{
		{Path: writeFile(t, dir, "left.svg", []byte(logoSVG)), Anchor: common.LogoAnchorLeft, X: 10, Y: 8, W: 33},
		// identical images are embedded once, so right logo differs
		{Path: writeFile(t, dir, "right.svg", []byte(strings.Replace(logoSVG, "navy", "teal", 1))), Anchor: common.LogoAnchorRight, X: 43, Y: 8, W: 33},
	}
	chapters := summary()
	chapters[0].Images = []layout.ImageEntry{{ID: "pic", Block: &layout.ImageBlock{Path: pngFile(t, dir), Label: "Picture", Width: 50, Height: 50}}}

	out := string(render(t, opts, chapters))
	if got := strings.Count(out, "/Subtype /Image"); got != 3 {
		t.Errorf("found %d embedded images, want 3", got)
	}
	if !strings.Contains(out, "(Picture)") {
		t.Error("image label is missing")
	}
}

func TestDocument_VectorImageSizes(t *testing.T) {
	dir := t.TempDir()
	svg := writeFile(t, dir, "logo.svg", []byte(logoSVG))
	opts := testOptions(t)
	opts.Header.Logos = []Logo{{Path: svg, Anchor: common.LogoAnchorLeft, X: 10, Y: 8, W: 30, H: 10}}

	doc, err := New(opts, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	doc.BeginPage()
	// same file in the body at larger size and then again at the same size
	for range 2 {
		if err := doc.Image(svg, 10, 60, 150, 50); err != nil {
			t.Fatalf("Image() error = %v", err)
		}
	}

	if len(doc.images) != 2 {
		t.Errorf("registered %d images, want 2 (one per size)", len(doc.images))
	}
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if got := strings.Count(buf.String(), "/Subtype /Image"); got != 2 {
		t.Errorf("found %d embedded images, want 2", got)
	}
}

func TestNew_MissingLogo(t *testing.T) {
	opts := testOptions(t)
	opts.Header.Logos = []Logo{{Path: filepath.Join(t.TempDir(), "nope.png"), W: 10}}

	_, err := New(opts, zaptest.NewLogger(t))
	var re *layout.ResourceNotFoundError
	if !errors.As(err, &re) {
		t.Fatalf("New() error = %v, want ResourceNotFoundError", err)
	}
}

func TestNew_TitleEncoding(t *testing.T) {
	opts := testOptions(t)
	opts.Header.Title = "Отчёт"

	_, err := New(opts, zaptest.NewLogger(t))
	var ee *layout.EncodingError
	if !errors.As(err, &ee) {
		t.Fatalf("New() error = %v, want EncodingError", err)
	}
}

func TestDocument_SplitAndJustify(t *testing.T) {
	doc, err := New(testOptions(t), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	doc.BeginPage()
	doc.SetFont("Times", "", 12)

	text := strings.Repeat("justified text flows across the page ", 10)
	lines := doc.SplitLines(text, 100)
	if len(lines) < 2 {
		t.Fatalf("SplitLines() = %q, expected wrapping", lines)
	}
	for _, l := range lines {
		if w := doc.pdf.GetStringWidth(l); w > 100 {
			t.Errorf("line %q is %g wide", l, w)
		}
	}

	doc.SetXY(10, 50)
	doc.JustifiedLine(100, 5, lines[0])
	if x, y := doc.pdf.GetXY(); x != 110 || y != 50 {
		t.Errorf("position after justified line = (%g,%g), want (110,50)", x, y)
	}
	if err := doc.Err(); err != nil {
		t.Errorf("Err() = %v", err)
	}
}

func TestFinalize(t *testing.T) {
	dir := t.TempDir()
	doc, err := New(testOptions(t), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	doc.BeginPage()

	path := filepath.Join(dir, "report.pdf")
	if err := doc.Finalize(path); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "report.pdf" {
		t.Errorf("directory holds %v, want only report.pdf", entries)
	}
}

func TestFinalize_BadDestination(t *testing.T) {
	dir := t.TempDir()
	doc, err := New(testOptions(t), zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	doc.BeginPage()

	// destination is an existing directory, rename has to fail
	target := filepath.Join(dir, "report.pdf")
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(target, "keep"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err := doc.Finalize(target); err == nil {
		t.Fatal("Finalize() expected error")
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary file left behind: %v", entries)
	}
}
