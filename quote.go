package tsvenn

import (
	"fmt"
	"strings"
)

const (
	// literalQuote delimits SQL string literals
	literalQuote = '\''
	// identifierQuote delimits SQL identifiers
	identifierQuote = '"'
)

// QuoteLiteral returns s as a SQL string literal: every single quote is
// doubled and the result is wrapped in single quotes. Any text is accepted,
// including tabs, newlines and semicolons.
func QuoteLiteral(s string) string {
	return quote(s, literalQuote)
}

// QuoteIdentifier returns s as a SQL identifier: every double quote is
// doubled and the result is wrapped in double quotes.
func QuoteIdentifier(s string) string {
	return quote(s, identifierQuote)
}

// Unquote reverses QuoteLiteral or QuoteIdentifier, depending on the
// quote character s starts with.
func Unquote(s string) (string, error) {
	if len(s) < 2 {
		return "", fmt.Errorf("tsvenn: cannot unquote %q: too short", s)
	}
	q := s[0]
	if (q != literalQuote && q != identifierQuote) || s[len(s)-1] != q {
		return "", fmt.Errorf("tsvenn: cannot unquote %q: not quoted", s)
	}

	body := s[1 : len(s)-1]
	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); i++ {
		if body[i] != q {
			b.WriteByte(body[i])
			continue
		}
		if i+1 >= len(body) || body[i+1] != q {
			return "", fmt.Errorf("tsvenn: cannot unquote %q: lone quote at offset %d", s, i+1)
		}
		b.WriteByte(q)
		i++
	}
	return b.String(), nil
}

func quote(s string, q byte) string {
	var b strings.Builder
	b.Grow(len(s) + 2 + strings.Count(s, string(q)))
	b.WriteByte(q)
	for i := 0; i < len(s); i++ {
		if s[i] == q {
			b.WriteByte(q)
		}
		b.WriteByte(s[i])
	}
	b.WriteByte(q)
	return b.String()
}
