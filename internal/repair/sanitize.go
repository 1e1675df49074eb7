// Package repair turns raw generator output into text that has a chance of
// decoding as a single JSON object.
package repair

import "strings"

const fence = "```"

// Sanitize removes presentation wrapping from generated text: surrounding
// whitespace, a leading fence opener (bare or language-tagged), a trailing
// fence closer, and any prose before the first '{' or after the last '}'.
// When no such brace pair exists the trimmed, fence-stripped text is returned.
func Sanitize(raw string) string {
	text := stripFences(strings.TrimSpace(raw))

	first := strings.IndexByte(text, '{')
	last := strings.LastIndexByte(text, '}')
	if first >= 0 && last > first {
		return text[first : last+1]
	}
	return text
}

// HasFence reports whether text still carries a fence marker anywhere.
func HasFence(text string) bool {
	return strings.Contains(text, fence)
}

func stripFences(text string) string {
	if strings.HasPrefix(text, fence) {
		text = text[len(fence):]
		// Drop the language tag, e.g. "json" in ```json.
		i := 0
		for i < len(text) && isTagByte(text[i]) {
			i++
		}
		text = strings.TrimSpace(text[i:])
	}
	if strings.HasSuffix(text, fence) {
		text = strings.TrimSpace(text[:len(text)-len(fence)])
	}
	return text
}

func isTagByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '_', c == '-', c == '+':
		return true
	}
	return false
}
