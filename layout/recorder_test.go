package layout

import (
	"fmt"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

// recorder is a Drawer which remembers every drawing call as a line of text.
type recorder struct {
	ops       []string
	pages     int
	x, y      float64
	charWidth float64
	imageErr  error
}

func newRecorder() *recorder {
	return &recorder{charWidth: 2}
}

func (r *recorder) BeginPage() {
	r.pages++
	r.ops = append(r.ops, fmt.Sprintf("page %d", r.pages))
}

func (r *recorder) PageNo() int { return r.pages }

func (r *recorder) SetFont(family, style string, size float64) {
	r.ops = append(r.ops, fmt.Sprintf("font %s %q %g", family, style, size))
}

func (r *recorder) SetTextColor(red, green, blue int) {}

func (r *recorder) SetFillColor(red, green, blue int) {}

func (r *recorder) SetXY(x, y float64) { r.x, r.y = x, y }

func (r *recorder) Cell(w, h float64, text string, border bool, align Align, fill bool) {
	r.ops = append(r.ops, fmt.Sprintf("cell %g,%g %gx%g border=%t %s fill=%t %q", r.x, r.y, w, h, border, align, fill, text))
	r.x += w
}

func (r *recorder) JustifiedLine(w, h float64, text string) {
	r.ops = append(r.ops, fmt.Sprintf("just %g,%g %gx%g %q", r.x, r.y, w, h, text))
	r.x += w
}

func (r *recorder) SplitLines(text string, w float64) []string {
	var (
		lines []string
		cur   string
	)
	for _, word := range strings.Fields(text) {
		cand := word
		if len(cur) > 0 {
			cand = cur + " " + word
		}
		if float64(len(cand))*r.charWidth > w && len(cur) > 0 {
			lines = append(lines, cur)
			cur = word
			continue
		}
		cur = cand
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

func (r *recorder) Image(path string, x, y, w, h float64) error {
	if r.imageErr != nil {
		return r.imageErr
	}
	r.ops = append(r.ops, fmt.Sprintf("image %g,%g %gx%g", x, y, w, h))
	return nil
}

func (r *recorder) Err() error { return nil }

// only returns recorded operations of the given kind.
func (r *recorder) only(kind string) []string {
	var out []string
	for _, op := range r.ops {
		if strings.HasPrefix(op, kind+" ") {
			out = append(out, op)
		}
	}
	return out
}

func (r *recorder) drawing() []string {
	var out []string
	for _, op := range r.ops {
		if !strings.HasPrefix(op, "font ") {
			out = append(out, op)
		}
	}
	return out
}

func newTestEngine(t *testing.T, mod func(*Options)) (*Engine, *recorder) {
	t.Helper()
	opts := DefaultOptions()
	if mod != nil {
		mod(&opts)
	}
	rec := newRecorder()
	e, err := New(rec, opts, zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller())))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return e, rec
}
