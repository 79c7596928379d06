package dice

import (
	"strings"
	"unicode"
)

// token is one signed piece of a multi-term expression.
type token struct {
	sign int
	text string
}

// normalize strips all whitespace and lower-cases the expression.
func normalize(expr string) string {
	return strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, expr))
}

// split cuts a normalized expression at every top-level '+' or '-'.
// Operators nested inside parentheses stay part of their token, so
// (2d6+6)x5+3 yields "(2d6+6)x5" and "3". A signed modifier followed by a
// keep count stays on its dice, so 4d6+2k3 is one token. Runs of operators
// collapse with the last one winning; a trailing operator is an error.
func split(expr string) ([]token, error) {
	var (
		tokens []token
		sign   = 1
		depth  int
		start  int
	)
	flush := func(end int) {
		if end > start {
			tokens = append(tokens, token{sign: sign, text: expr[start:end]})
		}
	}
	for i := 0; i < len(expr); i++ {
		switch c := expr[i]; c {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, unparseable(expr)
			}
		case '+', '-':
			if depth > 0 || keepsModifier(expr[start:i], expr[i+1:]) {
				continue
			}
			if i > start {
				flush(i)
			}
			if c == '-' {
				sign = -1
			} else {
				sign = 1
			}
			start = i + 1
		}
	}
	if depth != 0 {
		return nil, unparseable(expr)
	}
	flush(len(expr))
	if len(tokens) == 0 {
		return nil, ErrEmptyExpression
	}
	if start == len(expr) {
		return nil, unparseable(expr)
	}
	return tokens, nil
}

// keepsModifier reports whether an operator between head and rest belongs
// to a NdS+MkK term: head is plain dice and rest starts with digits then k.
func keepsModifier(head, rest string) bool {
	if !strings.Contains(head, "d") || strings.ContainsAny(head, "kx()") {
		return false
	}
	n := 0
	for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
		n++
	}
	return n > 0 && n < len(rest) && rest[n] == 'k'
}
