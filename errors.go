// errors.go: user-facing error wrapping and caret-snippet rendering
//
// Turns lexer/parser/runtime diagnostics into readable, Python-style error
// snippets with a caret pointing at the offending column:
//
//	PARSE ERROR in fib.boa at 3:13: expected Colon, got RParen ')'
//
//	   2 | fn fib(n):
//	   3 |     if n < 2):
//	     |             ^
//	   4 |         n
//
// The snippet includes up to one line of context before and after the
// error, numbers the lines, and places the caret under the 1-based column.
// Errors of any other type pass through unchanged. The library's Run/import
// paths return the structured errors themselves; this wrapping belongs to
// presentation layers (the driver, the REPL).
package boa

import (
	"fmt"
	"strings"
)

// WrapErrorWithSource returns an error whose message is a caret-annotated
// snippet of src, when err is a *LexError, *ParseError or *RuntimeError.
// Any other error is returned unchanged.
func WrapErrorWithSource(err error, src string) error {
	return WrapErrorWithName(err, "", src)
}

// WrapErrorWithName is WrapErrorWithSource with a source name ("fib.boa",
// "<repl>") included in the header line.
func WrapErrorWithName(err error, srcName string, src string) error {
	switch e := err.(type) {
	case *LexError:
		return fmt.Errorf("%s", prettyErrorString(src, "LEXICAL ERROR", srcName, e.Line, e.Col, e.Msg))
	case *ParseError:
		return fmt.Errorf("%s", prettyErrorString(src, "PARSE ERROR", srcName, e.Line, e.Col, e.Msg))
	case *RuntimeError:
		return fmt.Errorf("%s", prettyErrorString(src, "RUNTIME ERROR", srcName, e.Line, e.Col, e.Msg))
	default:
		return err
	}
}

// prettyErrorString builds the snippet. Coordinates are 1-based; the line is
// clamped to the source bounds and the column to at least 1, so rendering
// never fails.
func prettyErrorString(src, header, name string, line, col int, msg string) string {
	lines := strings.Split(src, "\n")
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	if len(lines) == 0 {
		lines = []string{""}
	}
	if line > len(lines) {
		line = len(lines)
	}
	lineTxt := lines[line-1]

	var b strings.Builder
	if name != "" {
		fmt.Fprintf(&b, "%s in %s at %d:%d: %s\n\n", header, name, line, col, msg)
	} else {
		fmt.Fprintf(&b, "%s at %d:%d: %s\n\n", header, line, col, msg)
	}
	if line > 1 {
		fmt.Fprintf(&b, "%4d | %s\n", line-1, lines[line-2])
	}
	fmt.Fprintf(&b, "%4d | %s\n", line, lineTxt)
	fmt.Fprintf(&b, "     | %s^\n", strings.Repeat(" ", col-1))
	if line < len(lines) {
		fmt.Fprintf(&b, "%4d | %s\n", line+1, lines[line])
	}
	return b.String()
}
