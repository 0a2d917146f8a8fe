package layout

import (
	"os"

	"go.uber.org/zap"

	"repgen/common"
)

// Image places labeled image horizontally centered. Space for label and image
// is checked before anything is drawn and a new page is started when they do
// not fit, so label and image always end up on the same page.
//
// Image which does not fit even on an empty page is drawn where it is when
// current page is still empty: another page would not give it more room.
// Inside a chapter the page is never empty here since the title bar comes
// first.
func (e *Engine) Image(img *ImageBlock) error {
	if err := img.validate("image"); err != nil {
		return err
	}
	if _, err := os.Stat(img.Path); err != nil {
		return &ResourceNotFoundError{Path: img.Path, Err: err}
	}
	label, err := e.encode(img.Label, "image label")
	if err != nil {
		return err
	}

	var (
		page     = e.opts.Page
		x        = page.Left + (page.ContentWidth()-img.Width)/2 - e.opts.ImageOffset
		required = img.Height + e.opts.LabelReserve
	)

	if !e.canvas.Fits(required) && !e.canvas.AtTop() {
		e.canvas.BeginPage()
	}
	if !e.canvas.Fits(required) {
		if e.opts.Overflow == common.OverflowPolicyFail {
			return &GeometryOverflowError{What: "image " + quote(img.Label), Need: required, Available: e.canvas.Remaining()}
		}
		e.log.Warn("Image does not fit on empty page", zap.String("path", img.Path),
			zap.Float64("height", required), zap.Float64("available", e.canvas.Remaining()))
	}

	e.setFont(e.opts.Fonts.ImageLabel)
	e.setTextColor(Black)
	e.canvas.MoveTo(page.Left)
	e.d.Cell(page.ContentWidth(), e.opts.LineHeight, label, false, AlignCenter, false)
	e.canvas.Advance(e.opts.LabelReserve)

	if err := e.d.Image(img.Path, x, e.canvas.Cursor(), img.Width, img.Height); err != nil {
		return err
	}
	e.canvas.Advance(img.Height)
	return e.d.Err()
}
