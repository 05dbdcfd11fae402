package cliutil

import (
	"strings"
)

// Wrap the string `s` to a maximum width `w`.  Pass `w` == 0 to do no wrapping.
//
// In order to have some room for slop to avoid things like a short word being on a line by itself,
// most lines are actually wrapped to `w - 5`.
func Wrap(w int, s string) string {
	return wrap(0, w, s)
}

// Wrap the string `s` to a maximum width `w` with leading indent `i`.  The first line is not
// indented (this is assumed to be done by caller).  Pass `w` == 0 to do no wrapping
//
// In order to have some room for slop to avoid things like a short word being on a line by itself,
// most lines are actually wrapped to `w - 5`.
func WrapIndent(i, w int, s string) string {
	return wrap(i, w, s)
}

func wrap(indent, width int, s string) string {
	if width <= 0 {
		return s
	}
	indentStr := strings.Repeat(" ", indent)
	var ret strings.Builder
	for lineNum, line := range strings.Split(s, "\n") {
		if lineNum > 0 {
			ret.WriteByte('\n')
			if line != "" {
				ret.WriteString(indentStr)
			}
		}
		// Position accounting starts at `indent` even though the first line's indentation
		// isn't actually emitted; the caller already wrote it.
		pos := indent
		for len(line) > 0 {
			rest := strings.TrimLeft(line, " ")
			sep := line[:len(line)-len(rest)]
			word := rest
			if spIdx := strings.IndexByte(rest, ' '); spIdx >= 0 {
				word, rest = rest[:spIdx], rest[spIdx:]
			} else {
				rest = ""
			}
			if word == "" {
				break
			}
			if pos > indent && pos+len(sep)+len(word) >= width-5 {
				ret.WriteByte('\n')
				ret.WriteString(indentStr)
				pos = indent
			} else {
				// Keep the original whitespace run (double spaces after a
				// sentence survive) when not breaking.
				ret.WriteString(sep)
				pos += len(sep)
			}
			ret.WriteString(word)
			pos += len(word)
			line = rest
		}
	}
	return ret.String()
}
