// Package pdfdoc is the document shell: it owns the PDF writer, draws page
// banner and footer and serializes finished document.
package pdfdoc

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"

	"repgen/common"
	"repgen/layout"
	"repgen/utils/images"
)

// Logo is an image drawn in every page header. X is measured from the left
// page edge or, for right anchored logos, is subtracted from page width.
type Logo struct {
	Path       string
	Anchor     common.LogoAnchor
	X, Y, W, H float64
}

type Header struct {
	Title  string
	Logos  []Logo
	Font   layout.Font
	Height float64
	// Gap separates title line from page content.
	Gap float64
}

type Footer struct {
	Font   layout.Font
	Color  layout.RGB
	Offset float64 // distance of footer line from page bottom
	Height float64
}

// FontFile is a font definition produced by fpdf makefont, needed when
// charset is not covered by standard fonts.
type FontFile struct {
	Family string
	Style  string
	File   string
}

type Options struct {
	Page    layout.Page
	Header  Header
	Footer  Footer
	Charset *layout.Charset

	FontDir string
	Fonts   []FontFile

	Author   string
	Creator  string
	Keywords string
	// CreationDate makes output reproducible when set.
	CreationDate time.Time
	Compress     bool

	Images images.Options
}

// Document is a layout.Drawer writing PDF with fpdf. Document is not safe for
// concurrent use.
type Document struct {
	pdf    *fpdf.Fpdf
	opts   Options
	title  string
	images map[string]*registered
	logos  []*registered
	log    *zap.Logger
}

// New prepares empty document. Header logos are loaded immediately so missing
// files are reported before anything is drawn.
func New(opts Options, log *zap.Logger) (*Document, error) {
	if opts.Charset == nil {
		return nil, errors.New("charset is not set")
	}
	title, err := opts.Charset.Encode(opts.Header.Title)
	if err != nil {
		return nil, fmt.Errorf("document title: %w", err)
	}

	page := opts.Page
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: page.Width, Ht: page.Height},
		FontDirStr:     opts.FontDir,
	})
	pdf.SetMargins(page.Left, page.Top, page.Right)
	// layout decides where pages break
	pdf.SetAutoPageBreak(false, page.BreakMargin)
	pdf.SetCompression(opts.Compress)
	pdf.SetCatalogSort(true)

	pdf.SetTitle(opts.Header.Title, true)
	if len(opts.Author) > 0 {
		pdf.SetAuthor(opts.Author, true)
	}
	if len(opts.Creator) > 0 {
		pdf.SetCreator(opts.Creator, true)
	}
	if len(opts.Keywords) > 0 {
		pdf.SetKeywords(opts.Keywords, true)
	}
	if !opts.CreationDate.IsZero() {
		pdf.SetCreationDate(opts.CreationDate)
		pdf.SetModificationDate(opts.CreationDate)
	}
	for _, f := range opts.Fonts {
		pdf.AddFont(f.Family, f.Style, f.File)
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("unable to initialize document: %w", err)
	}

	d := &Document{
		pdf:    pdf,
		opts:   opts,
		title:  title,
		images: make(map[string]*registered),
		log:    log.Named("pdf"),
	}
	for i, l := range opts.Header.Logos {
		img, err := d.register(l.Path, l.W, l.H)
		if err != nil {
			return nil, fmt.Errorf("header logo %d: %w", i, err)
		}
		d.logos = append(d.logos, img)
	}
	pdf.SetHeaderFunc(d.header)
	pdf.SetFooterFunc(d.footer)
	return d, nil
}

// Page returns page geometry with content starting below header banner.
func (d *Document) Page() layout.Page {
	page := d.opts.Page
	page.ContentTop = page.Top + d.opts.Header.Height + d.opts.Header.Gap
	return page
}

func (d *Document) header() {
	page := d.opts.Page
	for i, l := range d.opts.Header.Logos {
		img := d.logos[i]
		x := l.X
		if l.Anchor.FromRight() {
			x = page.Width - l.X
		}
		d.pdf.ImageOptions(img.name, x, l.Y, l.W, l.H, false, fpdf.ImageOptions{ImageType: string(img.format)}, 0, "")
	}
	if len(d.title) == 0 {
		return
	}
	f := d.opts.Header.Font
	d.pdf.SetFont(f.Family, f.Style, f.Size)
	d.pdf.SetTextColor(0, 0, 0)
	d.pdf.SetLineWidth(0.1)
	w := d.pdf.GetStringWidth(d.title) + 6
	d.pdf.SetXY((page.Width-w)/2, page.Top)
	d.pdf.CellFormat(w, d.opts.Header.Height, d.title, "", 0, "C", false, 0, "")
}

func (d *Document) footer() {
	f, c := d.opts.Footer.Font, d.opts.Footer.Color
	d.pdf.SetY(-d.opts.Footer.Offset)
	d.pdf.SetFont(f.Family, f.Style, f.Size)
	d.pdf.SetTextColor(c.R, c.G, c.B)
	d.pdf.CellFormat(0, d.opts.Footer.Height, "Page "+strconv.Itoa(d.pdf.PageNo()), "", 0, "C", false, 0, "")
}

// DefaultOptions returns A4 document with centered Arial title banner and
// gray page numbers.
func DefaultOptions(cs *layout.Charset) Options {
	return Options{
		Page: layout.A4(),
		Header: Header{
			Font:   layout.Font{Family: "Arial", Style: "B", Size: 15},
			Height: 9,
			Gap:    15,
		},
		Footer: Footer{
			Font:   layout.Font{Family: "Arial", Style: "I", Size: 8},
			Color:  layout.RGB{R: 128, G: 128, B: 128},
			Offset: 15,
			Height: 10,
		},
		Charset:  cs,
		Compress: true,
		Images:   images.Options{JPEGQuality: 85, DPI: 300},
	}
}
