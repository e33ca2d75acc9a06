package owsql

import "strings"

// mustEscapeFunc reports whether a character must be doubled inside a
// quoted literal, per the connection's dialect.
type mustEscapeFunc func(rune) bool

// rewrite materializes the final SQL from a token sequence. Placeholder
// tokens are re-emitted as their trusted Fragment verbatim; UserString
// tokens are quoted and escaped; an ErrorPlaceholder aborts the rewrite and
// returns the originally registered error. A single space follows every
// emitted unit, so the output always ends with a trailing space.
func rewrite(tokens []token, mustEscape mustEscapeFunc, resolveError func(key string) error) (string, error) {
	var b strings.Builder
	for _, t := range tokens {
		switch t.kind {
		case tokenPlaceholder:
			b.WriteString(t.text)
		case tokenUserString:
			b.WriteByte('\'')
			b.WriteString(escapeString(t.text, mustEscape))
			b.WriteByte('\'')
		case tokenErrorPlaceholder:
			return "", resolveError(t.errKey)
		}
		b.WriteByte(' ')
	}
	return b.String(), nil
}

// escapeString doubles every character in raw for which mustEscape reports
// true, leaving everything else unchanged.
func escapeString(raw string, mustEscape mustEscapeFunc) string {
	var b strings.Builder
	for _, c := range raw {
		if mustEscape(c) {
			b.WriteRune(c)
		}
		b.WriteRune(c)
	}
	return b.String()
}
