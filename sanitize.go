package owsql

import "strings"

// SanitizeLike escapes every % and _ in pattern with escapeChar (default
// \) so the result is safe to interpolate into a LIKE clause.
func SanitizeLike(pattern string, escapeChar ...rune) string {
	ec := '\\'
	if len(escapeChar) > 0 {
		ec = escapeChar[0]
	}
	var b strings.Builder
	for _, c := range pattern {
		if c == '%' || c == '_' {
			b.WriteRune(ec)
		}
		b.WriteRune(c)
	}
	return b.String()
}

// HTMLSpecialChars replaces the five HTML-significant characters with their
// named entities; everything else passes through unchanged.
func HTMLSpecialChars(s string) string {
	replacer := strings.NewReplacer(
		"&", "&amp;",
		`"`, "&quot;",
		"'", "&#39;",
		"<", "&lt;",
		">", "&gt;",
	)
	return replacer.Replace(s)
}
