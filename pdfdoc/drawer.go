package pdfdoc

import (
	"strings"

	"github.com/go-pdf/fpdf"

	"repgen/layout"
)

var _ layout.Drawer = (*Document)(nil)

func (d *Document) BeginPage() {
	d.pdf.AddPage()
}

func (d *Document) PageNo() int {
	return d.pdf.PageNo()
}

func (d *Document) SetFont(family, style string, size float64) {
	d.pdf.SetFont(family, style, size)
}

func (d *Document) SetTextColor(r, g, b int) {
	d.pdf.SetTextColor(r, g, b)
}

func (d *Document) SetFillColor(r, g, b int) {
	d.pdf.SetFillColor(r, g, b)
}

func (d *Document) SetXY(x, y float64) {
	d.pdf.SetXY(x, y)
}

func (d *Document) Cell(w, h float64, text string, border bool, align layout.Align, fill bool) {
	var b string
	if border {
		b = "1"
	}
	d.pdf.CellFormat(w, h, text, b, 0, string(align), fill, 0, "")
}

// JustifiedLine spreads words of a single line so the first one starts at
// the left and the last one ends at the right edge of the cell. Lines which
// cannot be stretched are drawn left aligned.
func (d *Document) JustifiedLine(w, h float64, text string) {
	words := strings.Fields(text)
	if len(words) < 2 {
		d.Cell(w, h, text, false, layout.AlignLeft, false)
		return
	}

	var (
		x, y   = d.pdf.GetXY()
		margin = d.pdf.GetCellMargin()
		widths = make([]float64, len(words))
		total  float64
	)
	for i, word := range words {
		widths[i] = d.pdf.GetStringWidth(word)
		total += widths[i]
	}
	gap := (w - 2*margin - total) / float64(len(words)-1)
	if gap < 0 {
		d.Cell(w, h, text, false, layout.AlignLeft, false)
		return
	}

	pos := x + margin
	for i, word := range words {
		d.pdf.SetXY(pos-margin, y)
		d.pdf.CellFormat(widths[i]+2*margin, h, word, "", 0, "L", false, 0, "")
		pos += widths[i] + gap
	}
	d.pdf.SetXY(x+w, y)
}

func (d *Document) SplitLines(text string, w float64) []string {
	parts := d.pdf.SplitLines([]byte(text), w)
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		lines = append(lines, string(p))
	}
	return lines
}

func (d *Document) Image(path string, x, y, w, h float64) error {
	img, err := d.register(path, w, h)
	if err != nil {
		return err
	}
	d.pdf.ImageOptions(img.name, x, y, w, h, false, fpdf.ImageOptions{ImageType: string(img.format)}, 0, "")
	return d.pdf.Error()
}

func (d *Document) Err() error {
	return d.pdf.Error()
}
