// Package debug produces human readable dumps of program state for the debug
// report.
package debug

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// TreeWriter accumulates indented lines. Use NewTreeWriter, zero value is
// not ready.
type TreeWriter struct {
	w      *strings.Builder
	indent string
	// limit of runes in text block value, 0 means no limit
	limit int
}

func NewTreeWriter() *TreeWriter {
	return &TreeWriter{
		w:      &strings.Builder{},
		indent: "  ",
	}
}

// WithTextLimit makes text blocks longer than n runes shortened in output.
func (tw *TreeWriter) WithTextLimit(n int) *TreeWriter {
	tw.limit = max(n, 0)
	return tw
}

func (tw *TreeWriter) String() string {
	return tw.w.String()
}

func (tw *TreeWriter) pad(depth int) {
	for range depth {
		tw.w.WriteString(tw.indent)
	}
}

func (tw *TreeWriter) Line(depth int, format string, args ...any) {
	tw.pad(depth)
	fmt.Fprintf(tw.w, format, args...)
	tw.w.WriteByte('\n')
}

// TextBlock writes quoted value so line breaks and invisible characters are
// visible. Empty value is written as is.
func (tw *TreeWriter) TextBlock(depth int, label, value string) {
	tw.pad(depth)
	tw.w.WriteString(label)
	tw.w.WriteString(": ")
	tw.w.WriteString(tw.encodeText(value))
	tw.w.WriteByte('\n')
}

// List writes label with number of items followed by quoted items one level
// deeper.
func (tw *TreeWriter) List(depth int, label string, items []string) {
	tw.Line(depth, "%s: %d", label, len(items))
	for _, item := range items {
		tw.pad(depth + 1)
		tw.w.WriteString(strconv.Quote(item))
		tw.w.WriteByte('\n')
	}
}

func (tw *TreeWriter) encodeText(raw string) string {
	if raw == "" {
		return raw
	}
	n := utf8.RuneCountInString(raw)
	if tw.limit == 0 || n <= tw.limit {
		return strconv.Quote(raw)
	}
	cut := 0
	for range tw.limit {
		_, size := utf8.DecodeRuneInString(raw[cut:])
		cut += size
	}
	return strconv.Quote(raw[:cut]) + fmt.Sprintf("... (%d more)", n-tw.limit)
}
