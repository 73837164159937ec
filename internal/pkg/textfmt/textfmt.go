// Package textfmt renders console values and fits them to the terminal width.
package textfmt

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
)

type summarizer interface {
	Summary() string
}

// Repr is the echo form of a value: strings are quoted, requests and
// request lists are summarized one per line.
func Repr(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(val)
	case error:
		return val.Error()
	case summarizer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "nil"
		}
		return val.Summary()
	case fmt.Stringer:
		return val.String()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Implements(reflect.TypeOf((*summarizer)(nil)).Elem()) {
		lines := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			lines = append(lines, fmt.Sprintf("[%d] %s", i, Repr(rv.Index(i).Interface())))
		}
		if len(lines) == 0 {
			return "[]"
		}
		return strings.Join(lines, "\n")
	}
	return fmt.Sprintf("%+v", v)
}

// Plain is the print form: strings are written as is.
func Plain(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return Repr(v)
}

// Fit truncates every line of text to width display columns. A width of 0
// leaves the text untouched.
func Fit(text string, width int) string {
	if width <= 0 {
		return text
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if runewidth.StringWidth(line) > width {
			lines[i] = runewidth.Truncate(line, width, "…")
		}
	}
	return strings.Join(lines, "\n")
}

// Rule is a horizontal separator spanning width columns, or a short one when
// width reporting is disabled.
func Rule(width int) string {
	if width <= 0 {
		width = 20
	}
	return strings.Repeat("-", width)
}
