package content

import (
	"maps"
	"slices"
	"sort"

	"github.com/maruel/natural"

	"repgen/utils/debug"
)

// body text is in the report as a file anyway
const bodyDumpLimit = 240

// String returns a readable tree of prepared content.
// It exists solely for manual inspection during debugging.
func (c *Content) String() string {
	if c == nil {
		return "<nil Content>"
	}

	tw := debug.NewTreeWriter().WithTextLimit(bodyDumpLimit)
	tw.TextBlock(0, "Title", c.Title)
	tw.TextBlock(0, "Specification", c.SpecFile)
	tw.Line(0, "Chapters: %d", len(c.Chapters))
	for i := range c.Chapters {
		ch := &c.Chapters[i]
		tw.Line(1, "Chapter[%d] %q", ch.Number, ch.Title)
		tw.TextBlock(2, "Body", ch.Body)
		for _, t := range ch.Tables {
			tw.Line(2, "Table[%q] label[%q] columns%q rows[%d] cell[%gx%g]",
				t.ID, t.Block.Label, t.Block.Columns, len(t.Block.Rows), t.Block.CellWidth, t.Block.CellHeight)
		}
		for _, img := range ch.Images {
			tw.Line(2, "Image[%q] label[%q] size[%gx%g]", img.ID, img.Block.Label, img.Block.Width, img.Block.Height)
			tw.TextBlock(3, "Path", img.Block.Path)
		}
	}

	if len(c.Tables) > 0 {
		sources := make(map[string][]string)
		for _, t := range c.Tables {
			sources[t.Source] = append(sources[t.Source], t.Chapter+"."+t.ID)
		}
		tw.Line(0, "Sources: %d", len(sources))
		keys := slices.Collect(maps.Keys(sources))
		sort.Sort(natural.StringSlice(keys))
		for _, k := range keys {
			tw.Line(1, "Source[%q] tables%q", k, sources[k])
		}

		tw.Line(0, "Tables: %d", len(c.Tables))
		for _, t := range c.Tables {
			tw.Line(1, "Table[%s.%s] columns%q", t.Chapter, t.ID, t.Frame.Columns())
			for r, row := range t.Frame.rows {
				cells := make([]string, len(row))
				for i, v := range row {
					cells[i] = v.String()
				}
				tw.Line(2, "Row[%d] %q", r+1, cells)
			}
		}
	}

	if len(c.Charts) > 0 {
		tw.List(0, "Charts", c.Charts)
	}
	return tw.String()
}
