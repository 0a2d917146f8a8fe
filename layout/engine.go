package layout

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"repgen/common"
)

// TitleBar describes chapter title banner.
type TitleBar struct {
	Font   Font
	Height float64
	Gap    float64
	Fill   RGB
	Color  RGB
}

// Fonts used for different kinds of content.
type Fonts struct {
	Body        Font
	TableLabel  Font
	TableHeader Font
	TableCell   Font
	ImageLabel  Font
}

type Options struct {
	Page       Page
	LineHeight float64
	Overflow   common.OverflowPolicy
	TitleBar   TitleBar
	Fonts      Fonts

	// ImageOffset shifts centered images to the left.
	ImageOffset float64
	// LabelReserve is vertical space reserved for image label.
	LabelReserve float64

	Charset *Charset
}

// DefaultOptions returns A4 layout with Times body text and navy title bar.
func DefaultOptions() Options {
	cs, err := NewCharset(DefaultCharset)
	if err != nil {
		// this should never happen
		panic(err)
	}
	return Options{
		Page:       A4(),
		LineHeight: 5,
		Overflow:   common.OverflowPolicyBreak,
		TitleBar: TitleBar{
			Font:   Font{Family: "Arial", Size: 12},
			Height: 6,
			Gap:    4,
			Fill:   RGB{5, 38, 62},
			Color:  White,
		},
		Fonts: Fonts{
			Body:        Font{Family: "Times", Size: 12},
			TableLabel:  Font{Family: "Times", Style: "BUI", Size: 12},
			TableHeader: Font{Family: "Times", Style: "BU", Size: 10},
			TableCell:   Font{Family: "Times", Size: 10},
			ImageLabel:  Font{Family: "Times", Style: "BUI", Size: 12},
		},
		ImageOffset:  2,
		LabelReserve: 8,
		Charset:      cs,
	}
}

func (o *Options) validate() error {
	switch {
	case o.Charset == nil:
		return errors.New("charset is not set")
	case o.LineHeight <= 0:
		return fmt.Errorf("line height must be positive, got %g", o.LineHeight)
	case o.LabelReserve < o.LineHeight:
		return fmt.Errorf("label reserve %g is smaller than line height %g", o.LabelReserve, o.LineHeight)
	case o.Page.ContentWidth() <= 0:
		return fmt.Errorf("page has no horizontal space (width %g, margins %g/%g)", o.Page.Width, o.Page.Left, o.Page.Right)
	case o.Page.Usable() <= 0:
		return fmt.Errorf("page has no vertical space (content top %g, threshold %g)", o.Page.ContentTop, o.Page.Threshold())
	case !o.Overflow.IsValid():
		return fmt.Errorf("unknown overflow policy %v", o.Overflow)
	}
	return nil
}

// Engine composes chapters onto pages. It is not safe for concurrent use.
type Engine struct {
	opts   Options
	d      Drawer
	canvas *Canvas
	log    *zap.Logger
}

func New(d Drawer, opts Options, log *zap.Logger) (*Engine, error) {
	if err := opts.validate(); err != nil {
		return nil, fmt.Errorf("bad layout options: %w", err)
	}
	return &Engine{
		opts:   opts,
		d:      d,
		canvas: NewCanvas(opts.Page, d),
		log:    log.Named("layout"),
	}, nil
}

func (e *Engine) Canvas() *Canvas {
	return e.canvas
}

// Compose renders chapters in order. Every chapter starts on a new page.
func (e *Engine) Compose(ctx context.Context, chapters []Chapter) error {
	for i := range chapters {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := e.Chapter(&chapters[i]); err != nil {
			return err
		}
	}
	e.log.Debug("Layout completed", zap.Int("chapters", len(chapters)), zap.Int("pages", e.canvas.Pages()))
	return nil
}

// ensure makes room for block of height h according to overflow policy.
func (e *Engine) ensure(h float64, what string) error {
	if e.canvas.Fits(h) {
		return nil
	}
	switch e.opts.Overflow {
	case common.OverflowPolicyIgnore:
		e.log.Debug("Block crosses page break threshold", zap.String("block", what),
			zap.Float64("height", h), zap.Float64("remaining", e.canvas.Remaining()))
		return nil
	case common.OverflowPolicyFail:
		return &GeometryOverflowError{What: what, Need: h, Available: e.canvas.Remaining()}
	}
	if h > e.opts.Page.Usable() {
		return &GeometryOverflowError{What: what, Need: h, Available: e.opts.Page.Usable()}
	}
	e.canvas.BeginPage()
	return nil
}

func (e *Engine) setFont(f Font) {
	e.d.SetFont(f.Family, f.Style, f.Size)
}

func (e *Engine) setTextColor(c RGB) {
	e.d.SetTextColor(c.R, c.G, c.B)
}

func (e *Engine) setFillColor(c RGB) {
	e.d.SetFillColor(c.R, c.G, c.B)
}

func (e *Engine) encode(s, field string) (string, error) {
	out, err := e.opts.Charset.Encode(s)
	if err != nil {
		return "", fmt.Errorf("%s: %w", field, err)
	}
	return out, nil
}
