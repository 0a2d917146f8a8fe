package layout

import "strings"

// Text renders body text as justified paragraphs. Lines are word wrapped to
// content width, every line except the last one of a paragraph is justified.
// Each line takes exactly one line height.
func (e *Engine) Text(text string) error {
	enc, err := e.encode(text, "body text")
	if err != nil {
		return err
	}

	e.setFont(e.opts.Fonts.Body)
	e.setTextColor(Black)

	var (
		left  = e.opts.Page.Left
		width = e.opts.Page.ContentWidth()
		lh    = e.opts.LineHeight
	)
	for _, para := range paragraphs(enc) {
		lines := e.d.SplitLines(para, width)
		if len(lines) == 0 {
			lines = []string{""}
		}
		for i, line := range lines {
			if err := e.ensure(lh, "text line"); err != nil {
				return err
			}
			e.canvas.MoveTo(left)
			if i < len(lines)-1 {
				e.d.JustifiedLine(width, lh, line)
			} else {
				e.d.Cell(width, lh, line, false, AlignLeft, false)
			}
			e.canvas.Advance(lh)
		}
	}
	return e.d.Err()
}

// paragraphs splits text on line breaks. Single trailing line break does not
// start an empty paragraph.
func paragraphs(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	if len(s) == 0 {
		return nil
	}
	return strings.Split(s, "\n")
}
