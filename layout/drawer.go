package layout

// Drawer is the document writer the engine draws through. All text passed to
// a Drawer is already transcoded to the single-byte charset of its fonts.
//
// The engine owns vertical positioning: it always moves to an explicit
// position before drawing and never relies on drawer side pagination.
type Drawer interface {
	// BeginPage closes current page (if any), which draws its footer, and
	// opens a new one drawing the header banner.
	BeginPage()
	PageNo() int

	SetFont(family, style string, size float64)
	SetTextColor(r, g, b int)
	SetFillColor(r, g, b int)
	SetXY(x, y float64)

	// Cell draws single line of text in a w x h box at current position and
	// moves current position to the right edge of the box.
	Cell(w, h float64, text string, border bool, align Align, fill bool)
	// JustifiedLine draws a single line stretched over the full width w.
	JustifiedLine(w, h float64, text string)
	// SplitLines word wraps text to width w using the current font.
	SplitLines(text string, w float64) []string

	Image(path string, x, y, w, h float64) error

	// Err returns first error drawer encountered, if any.
	Err() error
}
