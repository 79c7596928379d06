// Package formula evaluates integer arithmetic over named attributes, as
// used by character templates for derived values like "({CON}+{SIZ})/10".
//
// Formulas are tokenized and parsed into a tree; nothing in a formula is
// ever executed as code. Supported syntax is integers, attribute
// references written {NAME} or as a bare identifier, the operators
// + - * /, unary minus and parentheses. Division truncates toward zero.
package formula

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

var (
	// ErrSyntax indicates a malformed formula.
	ErrSyntax = errors.New("formula syntax error")
	// ErrUnknownAttribute indicates a reference to an attribute missing from the Env.
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrDivisionByZero indicates a division whose divisor evaluated to zero.
	ErrDivisionByZero = errors.New("division by zero")
)

// Env maps attribute names to values.
type Env map[string]int

// Node is a parsed formula.
type Node interface {
	Eval(env Env) (int, error)
	refs(into map[string]struct{})
}

type number int

func (n number) Eval(Env) (int, error) { return int(n), nil }
func (n number) refs(map[string]struct{}) {}

type attribute string

func (a attribute) Eval(env Env) (int, error) {
	v, ok := env[string(a)]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownAttribute, string(a))
	}
	return v, nil
}

func (a attribute) refs(into map[string]struct{}) { into[string(a)] = struct{}{} }

type negate struct{ operand Node }

func (n negate) Eval(env Env) (int, error) {
	v, err := n.operand.Eval(env)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

func (n negate) refs(into map[string]struct{}) { n.operand.refs(into) }

type binary struct {
	op          byte
	left, right Node
}

func (b binary) Eval(env Env) (int, error) {
	l, err := b.left.Eval(env)
	if err != nil {
		return 0, err
	}
	r, err := b.right.Eval(env)
	if err != nil {
		return 0, err
	}
	switch b.op {
	case '+':
		return l + r, nil
	case '-':
		return l - r, nil
	case '*':
		return l * r, nil
	case '/':
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	}
	return 0, fmt.Errorf("%w: operator %q", ErrSyntax, b.op)
}

func (b binary) refs(into map[string]struct{}) {
	b.left.refs(into)
	b.right.refs(into)
}

// Refs returns the attribute names n references, sorted.
func Refs(n Node) []string {
	set := map[string]struct{}{}
	n.refs(set)
	out := make([]string, 0, len(set))
	for name := range set {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Eval parses and evaluates src against env.
func Eval(src string, env Env) (int, error) {
	n, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return n.Eval(env)
}

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokOp
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func tokenize(src string) ([]token, error) {
	var toks []token
	runes := []rune(src)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case unicode.IsDigit(r):
			start := i
			for i < len(runes) && unicode.IsDigit(runes[i]) {
				i++
			}
			toks = append(toks, token{kind: tokNumber, text: string(runes[start:i]), pos: start})
		case r == '{':
			start := i
			i++
			for i < len(runes) && runes[i] != '}' {
				i++
			}
			if i >= len(runes) {
				return nil, fmt.Errorf("%w: unclosed '{' at %d", ErrSyntax, start)
			}
			name := strings.TrimSpace(string(runes[start+1 : i]))
			if name == "" {
				return nil, fmt.Errorf("%w: empty reference at %d", ErrSyntax, start)
			}
			i++
			toks = append(toks, token{kind: tokIdent, text: name, pos: start})
		case unicode.IsLetter(r) || r == '_':
			start := i
			for i < len(runes) && (unicode.IsLetter(runes[i]) || unicode.IsDigit(runes[i]) || runes[i] == '_') {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: string(runes[start:i]), pos: start})
		case r == '+' || r == '-' || r == '*' || r == '/':
			toks = append(toks, token{kind: tokOp, text: string(r), pos: i})
			i++
		case r == '(':
			toks = append(toks, token{kind: tokLParen, text: "(", pos: i})
			i++
		case r == ')':
			toks = append(toks, token{kind: tokRParen, text: ")", pos: i})
			i++
		default:
			return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, r, i)
		}
	}
	return append(toks, token{kind: tokEOF, pos: len(runes)}), nil
}

type parser struct {
	toks []token
	pos  int
}

// Parse builds the tree for src.
func Parse(src string) (Node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, tok.text, tok.pos)
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	tok := p.toks[p.pos]
	if tok.kind != tokEOF {
		p.pos++
	}
	return tok
}

func (p *parser) expr() (Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for tok := p.peek(); tok.kind == tokOp && (tok.text == "+" || tok.text == "-"); tok = p.peek() {
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = binary{op: tok.text[0], left: left, right: right}
	}
	return left, nil
}

func (p *parser) term() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for tok := p.peek(); tok.kind == tokOp && (tok.text == "*" || tok.text == "/"); tok = p.peek() {
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = binary{op: tok.text[0], left: left, right: right}
	}
	return left, nil
}

func (p *parser) unary() (Node, error) {
	if tok := p.peek(); tok.kind == tokOp && (tok.text == "-" || tok.text == "+") {
		p.next()
		operand, err := p.unary()
		if err != nil {
			return nil, err
		}
		if tok.text == "-" {
			return negate{operand: operand}, nil
		}
		return operand, nil
	}
	return p.primary()
}

func (p *parser) primary() (Node, error) {
	tok := p.next()
	switch tok.kind {
	case tokNumber:
		v, err := strconv.Atoi(tok.text)
		if err != nil {
			return nil, fmt.Errorf("%w: number %q at %d", ErrSyntax, tok.text, tok.pos)
		}
		return number(v), nil
	case tokIdent:
		return attribute(tok.text), nil
	case tokLParen:
		n, err := p.expr()
		if err != nil {
			return nil, err
		}
		if closing := p.next(); closing.kind != tokRParen {
			return nil, fmt.Errorf("%w: expected ')' at %d", ErrSyntax, closing.pos)
		}
		return n, nil
	case tokEOF:
		return nil, fmt.Errorf("%w: unexpected end of formula", ErrSyntax)
	default:
		return nil, fmt.Errorf("%w: unexpected %q at %d", ErrSyntax, tok.text, tok.pos)
	}
}
