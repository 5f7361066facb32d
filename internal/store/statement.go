package store

import "errors"

// ErrMultipleStatements matches the message Python's sqlite3 gives for chained input.
var ErrMultipleStatements = errors.New("You can only execute one statement at a time")

// hasTrailingStatement reports whether query carries another statement after the first
// top-level ';'. Semicolons inside string literals, quoted identifiers and comments do
// not count, and a tail of only whitespace, comments or empty statements is allowed.
func hasTrailingStatement(query string) bool {
	terminated := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			if terminated {
				return true
			}
			i = skipQuoted(query, i, c)
		case c == '[':
			if terminated {
				return true
			}
			i = skipQuoted(query, i, ']')
		case c == '-' && i+1 < len(query) && query[i+1] == '-':
			for i < len(query) && query[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(query) && query[i+1] == '*':
			end := i + 2
			for end < len(query) && !(query[end] == '*' && end+1 < len(query) && query[end+1] == '/') {
				end++
			}
			i = end + 1
		case c == ';':
			terminated = true
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f':
		default:
			if terminated {
				return true
			}
		}
	}
	return false
}

// skipQuoted returns the index of the closing quote for the literal opened at start.
// A doubled closing quote is an escaped quote. Unterminated literals run to the end.
func skipQuoted(query string, start int, closing byte) int {
	for i := start + 1; i < len(query); i++ {
		if query[i] != closing {
			continue
		}
		if closing != ']' && i+1 < len(query) && query[i+1] == closing {
			i++
			continue
		}
		return i
	}
	return len(query)
}
