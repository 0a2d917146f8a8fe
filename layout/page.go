// Package layout is the pagination engine: it keeps track of the vertical
// write position on a page, decides when content has to move to a new page and
// renders text, tables and images through a Drawer.
package layout

// Page describes physical page geometry in document units (millimeters
// unless the drawer was created otherwise).
type Page struct {
	Width  float64
	Height float64

	Left  float64
	Top   float64
	Right float64

	// BreakMargin is the distance from the bottom edge nothing may be drawn
	// below.
	BreakMargin float64

	// ContentTop is the first vertical position available for content after
	// the header banner has been drawn.
	ContentTop float64
}

// A4 is default page geometry: 210x297 with 10 margins, 20 bottom break
// margin and room for the banner header.
func A4() Page {
	return Page{
		Width:       210,
		Height:      297,
		Left:        10,
		Top:         10,
		Right:       10,
		BreakMargin: 20,
		ContentTop:  34,
	}
}

// ContentWidth is the horizontal space between left and right margins.
func (p Page) ContentWidth() float64 {
	return p.Width - p.Left - p.Right
}

// Threshold is the vertical position beyond which no content may be placed.
func (p Page) Threshold() float64 {
	return p.Height - p.BreakMargin
}

// Usable is the vertical space of an empty page.
func (p Page) Usable() float64 {
	return p.Threshold() - p.ContentTop
}

// Align is horizontal text alignment inside a cell.
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Font selects one of the drawer fonts. Style is any combination of "B", "I"
// and "U".
type Font struct {
	Family string
	Style  string
	Size   float64
}

type RGB struct {
	R, G, B int
}

var (
	Black = RGB{0, 0, 0}
	White = RGB{255, 255, 255}
)
