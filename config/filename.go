package config

import (
	"os"
	"strings"
	"unicode"
)

// replacement for names which have nothing left after cleaning
const badFileName = "_bad_file_name_"

// CleanFileName makes single path segment out of arbitrary text: path and
// list separators, characters file system does not allow and control
// characters are dropped, leading dots and surrounding spaces trimmed.
func CleanFileName(in string) string {
	out := strings.Map(func(sym rune) rune {
		if unicode.IsControl(sym) || strings.ContainsRune(forbiddenChars+string(os.PathSeparator)+string(os.PathListSeparator), sym) {
			return -1
		}
		return sym
	}, in)
	out = strings.TrimLeft(strings.TrimSpace(out), ".")
	if len(strings.TrimSpace(out)) == 0 {
		return badFileName
	}
	return out
}

// EnableColorOutput checks if colorized output is possible. NO_COLOR
// environment variable set to anything turns colors off.
func EnableColorOutput(stream *os.File) bool {
	if len(os.Getenv("NO_COLOR")) > 0 {
		return false
	}
	return consoleSupportsColor(stream)
}
