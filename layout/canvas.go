package layout

import "fmt"

// Canvas tracks vertical write position on the current page. Cursor never
// decreases within a page and is reset to the content top when a new page
// begins.
type Canvas struct {
	page   Page
	drawer Drawer
	cursor float64
	pages  int
}

func NewCanvas(page Page, drawer Drawer) *Canvas {
	return &Canvas{page: page, drawer: drawer, cursor: page.ContentTop}
}

func (c *Canvas) Page() Page {
	return c.page
}

func (c *Canvas) Cursor() float64 {
	return c.cursor
}

// Pages returns number of pages begun through this canvas.
func (c *Canvas) Pages() int {
	return c.pages
}

// Remaining is vertical space left before the break threshold.
func (c *Canvas) Remaining() float64 {
	return c.page.Threshold() - c.cursor
}

// Fits reports whether block of height h can be placed at the cursor.
func (c *Canvas) Fits(h float64) bool {
	return c.cursor+h <= c.page.Threshold()
}

// AtTop reports whether nothing has been placed on current page yet.
func (c *Canvas) AtTop() bool {
	return c.pages > 0 && c.cursor == c.page.ContentTop
}

// Advance moves cursor down by dy. It never starts a new page: callers which
// may overflow must check Fits first.
func (c *Canvas) Advance(dy float64) {
	if dy < 0 {
		panic(fmt.Sprintf("layout: cursor cannot move up (dy=%g)", dy))
	}
	c.cursor += dy
}

// BeginPage opens a new physical page and resets cursor to the content top.
func (c *Canvas) BeginPage() {
	c.drawer.BeginPage()
	c.pages++
	c.cursor = c.page.ContentTop
	c.drawer.SetXY(c.page.Left, c.cursor)
}

// MoveTo positions drawer at x on the cursor line.
func (c *Canvas) MoveTo(x float64) {
	c.drawer.SetXY(x, c.cursor)
}
