package content

import (
	"math"
	"strconv"
	"strings"
)

// Kind of a table value.
type Kind int

const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindText
)

// Value is a single table cell. Numeric values remember text they were
// parsed from so a column which turns out to be textual keeps it verbatim.
type Value struct {
	kind Kind
	raw  string
	i    int64
	f    float64
}

func Null() Value       { return Value{kind: KindNull} }
func Int(i int64) Value { return Value{kind: KindInt, i: i, raw: strconv.FormatInt(i, 10)} }
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f, raw: strconv.FormatFloat(f, 'f', -1, 64)}
}
func Text(s string) Value      { return Value{kind: KindText, raw: s} }
func (v Value) Kind() Kind     { return v.kind }
func (v Value) IsNumber() bool { return v.kind == KindInt || v.kind == KindFloat }

// String returns canonical textual representation: integers without
// decimals, floats in shortest form, text verbatim and nothing for null.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case KindText:
		return v.raw
	}
	return ""
}

// Float returns numeric value. Null is NaN, text is not a number.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	case KindNull:
		return math.NaN(), true
	}
	return 0, false
}

// Round returns float rounded to n decimals, other kinds are returned as is.
func (v Value) Round(n int) Value {
	if v.kind != KindFloat || math.IsNaN(v.f) || math.IsInf(v.f, 0) {
		return v
	}
	// formatting rounds correctly where multiplying by power of ten does not
	f, err := strconv.ParseFloat(strconv.FormatFloat(v.f, 'f', n, 64), 64)
	if err != nil {
		return v
	}
	r := Float(f)
	r.raw = v.raw
	return r
}

func (v Value) asFloat() Value {
	if v.kind != KindInt {
		return v
	}
	return Value{kind: KindFloat, f: float64(v.i), raw: v.raw}
}

func (v Value) asText() Value {
	if v.kind == KindNull || v.kind == KindText {
		return v
	}
	return Value{kind: KindText, raw: v.raw}
}

// parseValue detects number in s using decimal as decimal separator.
func parseValue(s, decimal string) Value {
	t := strings.TrimSpace(s)
	if len(t) == 0 {
		return Null()
	}
	if i, err := strconv.ParseInt(t, 10, 64); err == nil {
		v := Int(i)
		v.raw = s
		return v
	}
	if strings.ContainsAny(t, "xX_") {
		// hexadecimal floats and digit separators are not numbers in tables
		return Text(s)
	}
	if decimal != "." {
		if strings.Contains(t, ".") {
			return Text(s)
		}
		t = strings.Replace(t, decimal, ".", 1)
	}
	if f, err := strconv.ParseFloat(t, 64); err == nil {
		v := Float(f)
		v.raw = s
		return v
	}
	return Text(s)
}

// unify gives every value of a column the same kind: a column with any text
// becomes textual, integers mixed with floats become floats.
func unify(rows [][]Value, col int) {
	var hasText, hasFloat bool
	for _, r := range rows {
		switch r[col].kind {
		case KindText:
			hasText = true
		case KindFloat:
			hasFloat = true
		}
	}
	for _, r := range rows {
		switch {
		case hasText:
			r[col] = r[col].asText()
		case hasFloat:
			r[col] = r[col].asFloat()
		}
	}
}
