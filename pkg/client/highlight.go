package client

import (
	"strings"
	"unicode"
)

// Highlight wraps every case-insensitive occurrence of term in text
// with <mark> tags. The matched text keeps its original casing. An
// empty term returns the text unchanged. Matching walks runes rather
// than bytes: case pairs like U+023A/U+2C65 differ in UTF-8 length, so
// byte offsets into a lowercased copy would not line up with text.
func Highlight(text, term string) string {
	if term == "" || text == "" {
		return text
	}

	textRunes := []rune(text)
	termRunes := []rune(term)
	for i, r := range termRunes {
		termRunes[i] = unicode.ToLower(r)
	}
	if len(termRunes) > len(textRunes) {
		return text
	}

	var b strings.Builder
	matched := false
	for i := 0; i < len(textRunes); {
		if foldHasPrefix(textRunes[i:], termRunes) {
			matched = true
			b.WriteString("<mark>")
			b.WriteString(string(textRunes[i : i+len(termRunes)]))
			b.WriteString("</mark>")
			i += len(termRunes)
			continue
		}
		b.WriteRune(textRunes[i])
		i++
	}
	if !matched {
		return text
	}
	return b.String()
}

// foldHasPrefix reports whether window starts with term. The term must
// already be lowercased.
func foldHasPrefix(window, term []rune) bool {
	if len(window) < len(term) {
		return false
	}
	for i, r := range term {
		if unicode.ToLower(window[i]) != r {
			return false
		}
	}
	return true
}
