package dice

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

var (
	diceForm    = regexp.MustCompile(`^(\d*)d(\d+)([+-]\d+)?$`)
	integerForm = regexp.MustCompile(`^[+-]?\d+$`)
	loneForm    = regexp.MustCompile(`^\d+$`)
)

// MaxLiteral bounds every number written in an expression.
const MaxLiteral = 1_000_000_000

// Parse splits and parses expr into signed terms without rolling anything.
// It applies no size limits; use Engine.Parse for that.
func Parse(expr string) (Expression, error) {
	return parseExpression(expr, 0)
}

// parseExpression parses expr. When loneSides > 0 a whole expression made
// of one bare integer in [1, loneSides] is read as a single die of that
// size rather than a flat number.
func parseExpression(expr string, loneSides int) (Expression, error) {
	norm := normalize(expr)
	if norm == "" {
		return Expression{}, ErrEmptyExpression
	}
	if loneSides > 0 && loneForm.MatchString(norm) {
		if n, err := strconv.Atoi(norm); err == nil && n >= 1 && n <= loneSides {
			return Expression{
				Source: expr,
				Terms:  []SignedTerm{{Sign: 1, Term: Term{Count: 1, Sides: n, Multiplier: 1}}},
			}, nil
		}
	}

	tokens, err := split(norm)
	if err != nil {
		return Expression{}, err
	}
	terms := make([]SignedTerm, 0, len(tokens))
	for _, tok := range tokens {
		t, err := parseTerm(tok.text)
		if err != nil {
			return Expression{}, err
		}
		terms = append(terms, SignedTerm{Sign: tok.sign, Term: applySign(tok.sign, t)})
	}
	return Expression{Source: expr, Terms: terms}, nil
}

// parseTerm parses one unsigned token. Forms are tried in order:
// multiplier, keep-highest, basic dice, signed integer.
func parseTerm(text string) (Term, error) {
	if strings.Contains(text, "x") && !strings.Contains(text, "k") {
		if parts := strings.Split(text, "x"); len(parts) == 2 {
			return parseMultiplier(text, parts[0], parts[1])
		}
	}

	if strings.Contains(text, "k") {
		if parts := strings.Split(text, "k"); len(parts) == 2 {
			return parseKeep(text, parts[0], parts[1])
		}
	}

	if t, ok, err := parseDice(text); ok || err != nil {
		return t, err
	}

	if integerForm.MatchString(text) {
		n, err := literal(text, text)
		if err != nil {
			return Term{}, err
		}
		return Term{Modifier: n, Multiplier: 1}, nil
	}

	return Term{}, unparseable(text)
}

func parseMultiplier(text, dicePart, factor string) (Term, error) {
	n, err := literal(text, factor)
	if err != nil {
		return Term{}, err
	}
	if n < 0 {
		return Term{}, unparseable(text)
	}
	inner, err := parseTerm(stripParens(dicePart))
	if err != nil {
		return Term{}, err
	}
	inner.Multiplier = n
	return inner, nil
}

func parseKeep(text, dicePart, keepPart string) (Term, error) {
	keep, err := literal(text, keepPart)
	if err != nil {
		return Term{}, err
	}
	if keep < 0 {
		return Term{}, unparseable(text)
	}
	t, ok, err := parseDice(stripParens(dicePart))
	if err != nil {
		return Term{}, err
	}
	if !ok {
		return Term{}, unparseable(text)
	}
	if keep > t.Count {
		return Term{}, &Error{Kind: ErrInvalidKeepCount, Text: text, Value: keep, Limit: t.Count}
	}
	t.Keep = keep
	return t, nil
}

// parseDice matches <count>?d<sides>[+-]<mod>?; count defaults to 1.
// ok is false when text is not in dice form at all.
func parseDice(text string) (t Term, ok bool, err error) {
	m := diceForm.FindStringSubmatch(text)
	if m == nil {
		return Term{}, false, nil
	}
	t = Term{Count: 1, Multiplier: 1}
	if m[1] != "" {
		if t.Count, err = literal(text, m[1]); err != nil {
			return Term{}, false, err
		}
	}
	if t.Sides, err = literal(text, m[2]); err != nil {
		return Term{}, false, err
	}
	if t.Sides < 1 {
		return Term{}, false, nil
	}
	if m[3] != "" {
		if t.Modifier, err = literal(text, m[3]); err != nil {
			return Term{}, false, err
		}
	}
	return t, true, nil
}

// literal reads one decimal field of text, bounded by MaxLiteral in
// magnitude.
func literal(text, field string) (int, error) {
	n, err := strconv.Atoi(field)
	switch {
	case errors.Is(err, strconv.ErrRange):
		return 0, outOfRange(text)
	case err != nil:
		return 0, unparseable(text)
	case n > MaxLiteral || n < -MaxLiteral:
		return 0, outOfRange(text)
	}
	return n, nil
}

// stripParens drops one pair of enclosing parentheses. Balance was already
// checked by split.
func stripParens(s string) string {
	if len(s) >= 2 && s[0] == '(' && s[len(s)-1] == ')' {
		return s[1 : len(s)-1]
	}
	return s
}
