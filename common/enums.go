// The only reason this package exists is that enums are shared by the layout
// engine, the document shell and configuration, and layout must not depend on
// configuration.
package common

//go:generate go tool go-enum --marshal --names --values

// What to do when a block does not fit into the space left on a page.
// ENUM(break, fail, ignore)
type OverflowPolicy int

// Page edge logo position is measured from.
// ENUM(left, right)
type LogoAnchor int

// FromRight reports whether horizontal logo offset is measured from the
// right page edge.
func (a LogoAnchor) FromRight() bool {
	return a == LogoAnchorRight
}
