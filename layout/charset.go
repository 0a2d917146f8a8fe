package layout

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// Charset transcodes UTF-8 text into single-byte legacy encoding expected by
// drawer core fonts. Unlike x/text encoders it never substitutes characters.
type Charset struct {
	name string
	cm   *charmap.Charmap
}

// DefaultCharset matches encoding of standard PDF core fonts.
const DefaultCharset = "windows-1252"

// NewCharset looks up IANA character set by name. Only single-byte character
// sets are accepted.
func NewCharset(name string) (*Charset, error) {
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown character set %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("character set %q is not supported", name)
	}
	cm, ok := enc.(*charmap.Charmap)
	if !ok {
		return nil, fmt.Errorf("character set %q is not a single-byte encoding", name)
	}
	canonical, err := ianaindex.IANA.Name(enc)
	if err != nil {
		canonical = name
	}
	return &Charset{name: canonical, cm: cm}, nil
}

func (c *Charset) Name() string {
	return c.name
}

// Encode converts UTF-8 string to the legacy charset. The result is a Go
// string holding raw single-byte characters.
func (c *Charset) Encode(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return "", &EncodingError{Rune: utf8.RuneError, Offset: i, Charset: c.name}
		}
		ch, ok := c.cm.EncodeRune(r)
		if !ok {
			return "", &EncodingError{Rune: r, Offset: i, Charset: c.name}
		}
		b.WriteByte(ch)
		i += size
	}
	return b.String(), nil
}
