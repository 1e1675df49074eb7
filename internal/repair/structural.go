package repair

import (
	"strings"
	"unicode"
)

// Close completes a possibly truncated JSON object so that every string is
// terminated and every '{' and '[' opened outside a string has a closer.
//
// The scan tracks whether it is inside a string and whether the previous
// byte was a backslash. Brackets only count outside strings, and a closer
// with no open counterpart is dropped. After the scan an unterminated string
// gets one closing quote, a single trailing comma is dropped, and closers
// are appended innermost first.
//
// Close does not repair grammar beyond that: a truncated number, keyword or
// dangling key is left as is.
func Close(text string) string {
	var (
		inString bool
		escaped  bool
		open     []byte
	)

	out := make([]byte, 0, len(text)+8)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			out = append(out, c)
			continue
		}
		switch c {
		case '\\':
			escaped = true
		case '"':
			inString = !inString
		case '{', '[':
			if !inString {
				open = append(open, c)
			}
		case '}', ']':
			if !inString {
				var ok bool
				if open, ok = pop(open, openerFor(c)); !ok {
					continue
				}
			}
		}
		out = append(out, c)
	}

	if escaped {
		// A dangling backslash would swallow the quote or closer appended below.
		out = out[:len(out)-1]
	}
	if inString {
		out = append(out, '"')
	}
	if trimmed := strings.TrimRightFunc(string(out), unicode.IsSpace); strings.HasSuffix(trimmed, ",") {
		out = out[:len(trimmed)-1]
	}

	for i := len(open) - 1; i >= 0; i-- {
		out = append(out, closerFor(open[i]))
	}
	return string(out)
}

// Report runs Close and reports whether it had to change anything.
func Report(text string) (string, bool) {
	closed := Close(text)
	return closed, closed != text
}

// pop removes the most recent opener of the given kind and reports whether
// there was one.
func pop(open []byte, opener byte) ([]byte, bool) {
	for i := len(open) - 1; i >= 0; i-- {
		if open[i] == opener {
			return append(open[:i], open[i+1:]...), true
		}
	}
	return open, false
}

func openerFor(closer byte) byte {
	if closer == '}' {
		return '{'
	}
	return '['
}

func closerFor(opener byte) byte {
	if opener == '{' {
		return '}'
	}
	return ']'
}
