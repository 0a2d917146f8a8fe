package layout

import (
	"fmt"
	"unicode/utf8"
)

// ConfigurationError reports missing or malformed input detected before
// anything was drawn.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if len(e.Field) == 0 {
		return "configuration error: " + e.Reason
	}
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// ResourceNotFoundError reports input file which could not be opened.
type ResourceNotFoundError struct {
	Path string
	Err  error
}

func (e *ResourceNotFoundError) Error() string {
	return fmt.Sprintf("unable to open %q: %v", e.Path, e.Err)
}

func (e *ResourceNotFoundError) Unwrap() error {
	return e.Err
}

// EncodingError reports text which cannot be represented in the drawer
// charset. Offset is byte offset in the original UTF-8 text.
type EncodingError struct {
	Rune    rune
	Offset  int
	Charset string
}

func (e *EncodingError) Error() string {
	if e.Rune == utf8.RuneError {
		return fmt.Sprintf("invalid UTF-8 sequence at offset %d", e.Offset)
	}
	return fmt.Sprintf("character %q (%U) at offset %d is not representable in %s", e.Rune, e.Rune, e.Offset, e.Charset)
}

// GeometryOverflowError reports block which does not fit into the space
// available under active overflow policy.
type GeometryOverflowError struct {
	What      string
	Need      float64
	Available float64
}

func (e *GeometryOverflowError) Error() string {
	return fmt.Sprintf("%s needs %.2f vertical units, only %.2f available", e.What, e.Need, e.Available)
}
