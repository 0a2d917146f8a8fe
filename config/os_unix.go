//go:build !windows

package config

import (
	"os"

	"golang.org/x/term"
)

// only separators are special here
const forbiddenChars = ""

func consoleSupportsColor(stream *os.File) bool {
	return term.IsTerminal(int(stream.Fd()))
}
