package convert

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"repgen/config"
	"repgen/layout"
	"repgen/misc"
	"repgen/pdfdoc"
	"repgen/utils/images"
)

func toFont(f config.FontConfig) layout.Font {
	return layout.Font{Family: f.Family, Style: f.Style, Size: f.Size}
}

func toRGB(c config.ColorConfig) layout.RGB {
	return layout.RGB{R: c[0], G: c[1], B: c[2]}
}

// pageGeometry converts configured page. ContentTop is left to the document
// which knows header height.
func pageGeometry(cfg *config.DocumentConfig) layout.Page {
	return layout.Page{
		Width:       cfg.Page.Width,
		Height:      cfg.Page.Height,
		Left:        cfg.Page.Margins.Left,
		Top:         cfg.Page.Margins.Top,
		Right:       cfg.Page.Margins.Right,
		BreakMargin: cfg.Page.Margins.Bottom,
	}
}

// creationDate returns configured document date, zero time when not set.
func creationDate(cfg *config.DocumentConfig) (time.Time, error) {
	if len(cfg.Metainformation.CreationDate) == 0 {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, cfg.Metainformation.CreationDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad creation date: %w", err)
	}
	return t, nil
}

func documentOptions(cfg *config.DocumentConfig, title string, cs *layout.Charset, runID uuid.UUID) (pdfdoc.Options, error) {
	date, err := creationDate(cfg)
	if err != nil {
		return pdfdoc.Options{}, err
	}

	logos := make([]pdfdoc.Logo, 0, len(cfg.Header.Logos))
	for _, l := range cfg.Header.Logos {
		logos = append(logos, pdfdoc.Logo{
			Path:   l.Path,
			Anchor: l.Anchor,
			X:      l.X,
			Y:      l.Y,
			W:      l.Width,
			H:      l.Height,
		})
	}
	fonts := make([]pdfdoc.FontFile, 0, len(cfg.Fonts))
	for _, f := range cfg.Fonts {
		fonts = append(fonts, pdfdoc.FontFile{Family: f.Family, Style: f.Style, File: f.File})
	}

	// run id ties document to the log and debug report of the run
	keywords := append(append([]string{}, cfg.Metainformation.Keywords...), runID.String())

	return pdfdoc.Options{
		Page: pageGeometry(cfg),
		Header: pdfdoc.Header{
			Title:  title,
			Logos:  logos,
			Font:   toFont(cfg.Header.Font),
			Height: cfg.Header.Height,
			Gap:    cfg.Header.Gap,
		},
		Footer: pdfdoc.Footer{
			Font:   toFont(cfg.Footer.Font),
			Color:  toRGB(cfg.Footer.Color),
			Offset: cfg.Footer.Offset,
			Height: cfg.Footer.Height,
		},
		Charset:      cs,
		FontDir:      cfg.FontsDir,
		Fonts:        fonts,
		Author:       cfg.Metainformation.Author,
		Creator:      misc.GetAppName() + " " + misc.GetVersion(),
		Keywords:     strings.Join(keywords, ", "),
		CreationDate: date,
		Compress:     cfg.Compress,
		Images: images.Options{
			JPEGQuality: cfg.Images.JPEGQuality,
			DPI:         cfg.Images.DPI,
		},
	}, nil
}

// layoutOptions takes page from the document so content starts below its
// header.
func layoutOptions(cfg *config.DocumentConfig, page layout.Page, cs *layout.Charset) layout.Options {
	return layout.Options{
		Page:       page,
		LineHeight: cfg.Text.LineHeight,
		Overflow:   cfg.Overflow,
		TitleBar: layout.TitleBar{
			Font:   toFont(cfg.ChapterTitle.Font),
			Height: cfg.ChapterTitle.Height,
			Gap:    cfg.ChapterTitle.Gap,
			Fill:   toRGB(cfg.ChapterTitle.Fill),
			Color:  toRGB(cfg.ChapterTitle.Color),
		},
		Fonts: layout.Fonts{
			Body:        toFont(cfg.Text.Font),
			TableLabel:  toFont(cfg.Tables.LabelFont),
			TableHeader: toFont(cfg.Tables.HeaderFont),
			TableCell:   toFont(cfg.Tables.CellFont),
			ImageLabel:  toFont(cfg.Images.LabelFont),
		},
		ImageOffset:  cfg.Images.Offset,
		LabelReserve: cfg.Images.LabelReserve,
		Charset:      cs,
	}
}
