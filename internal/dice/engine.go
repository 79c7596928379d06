// Package dice parses and rolls tabletop dice notation such as 3d6+2,
// 4d6k3 and (2d6+6)x5.
//
// # Grammar
//
// An expression is a sum of terms separated by '+' or '-'. Operators inside
// parentheses belong to their term. Each term is one of
//
//	<dice>x<N>       every die and the modifier of <dice> scaled by N
//	<count>d<sides>[+-<mod>]k<keep>   keep the <keep> highest dice
//	<count>d<sides>[+-<mod>]          count defaults to 1
//	<integer>        flat modifier
//
// A whole expression that is a single bare integer N is one die with N
// faces, so "100" rolls 1d100 while "10-2d6" is ten minus a group.
//
// # Subtraction
//
// A subtracted dice group is not rolled. It contributes minus its integer
// expectation, count*(sides+1)/2, so "10-2d6" always totals 3.
//
// # Errors
//
// All parse and limit failures are reported before any die is drawn. They
// match the Err* sentinels with errors.Is; *Error carries the details.
// Numbers written in an expression are bounded by MaxLiteral, and a total
// that would overflow int is ErrValueOutOfRange rather than a wrapped value.
package dice

import (
	"errors"
	"strconv"
	"time"
)

// Engine evaluates dice expressions under a fixed Config.
type Engine struct {
	cfg Config
	src Source
	now func() time.Time
}

type Option func(*Engine)

// WithSource sets the randomness source. A nil source is ignored.
func WithSource(src Source) Option {
	return func(e *Engine) {
		if src != nil {
			e.src = src
		}
	}
}

// WithClock sets the function used to stamp Outcome.CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// New builds an Engine. Zero limits in cfg fall back to the defaults.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg: cfg.withDefaults(),
		src: GlobalSource(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) Source() Source {
	return e.src
}

// DefaultExpression is the expression rolled when a caller supplies none,
// one die of DefaultDieSides faces.
func (e *Engine) DefaultExpression() string {
	return "d" + strconv.Itoa(e.cfg.DefaultDieSides)
}

// Parse parses expr and checks every term against the configured limits.
// It draws nothing.
func (e *Engine) Parse(expr string) (Expression, error) {
	parsed, err := parseExpression(expr, e.cfg.MaxDiceSides)
	if err != nil {
		return Expression{}, err
	}
	for _, st := range parsed.Terms {
		if err := checkLimits(e.cfg, st.Term); err != nil {
			return Expression{}, err
		}
	}
	return parsed, nil
}

func (e *Engine) Roll(expr string) (Outcome, error) {
	parsed, err := e.Parse(expr)
	if err != nil {
		return Outcome{}, err
	}
	return e.RollExpression(parsed)
}

// RollExpression evaluates an already parsed expression. Limits are
// checked for every term before the first draw.
func (e *Engine) RollExpression(expr Expression) (Outcome, error) {
	if len(expr.Terms) == 0 {
		return Outcome{}, ErrEmptyExpression
	}
	for _, st := range expr.Terms {
		if err := checkLimits(e.cfg, st.Term); err != nil {
			return Outcome{}, err
		}
	}

	out := Outcome{
		Expression:      expr.Source,
		CreatedAt:       e.now(),
		criticalEffects: e.cfg.CriticalEffects,
	}
	for _, st := range expr.Terms {
		t := st.Term
		rolls, err := rollTerm(e.src, e.cfg, t)
		if errors.Is(err, ErrValueOutOfRange) {
			return Outcome{}, outOfRange(expr.Source)
		}
		if err != nil {
			return Outcome{}, err
		}
		if len(rolls) > 0 {
			out.Rolls = append(out.Rolls, rolls...)
			if out.DieCount == 0 {
				out.DieCount = t.Count
				out.DieSides = t.Sides
			}
		}
		mod, ok := mulInt(t.Modifier, t.Multiplier)
		if ok {
			out.Modifier, ok = addInt(out.Modifier, mod)
		}
		if !ok {
			return Outcome{}, outOfRange(expr.Source)
		}
	}

	if len(out.Rolls) == 0 {
		out.Rolls = []int{0}
	}
	out.Total = out.Modifier
	for _, r := range out.Rolls {
		var ok bool
		if out.Total, ok = addInt(out.Total, r); !ok {
			return Outcome{}, outOfRange(expr.Source)
		}
	}
	return out, nil
}

// RollAdvantage evaluates expr twice and keeps the higher total.
func (e *Engine) RollAdvantage(expr string) (Outcome, error) {
	a, b, err := e.rollTwice(expr)
	if err != nil {
		return Outcome{}, err
	}
	return Higher(a, b), nil
}

// RollDisadvantage evaluates expr twice and keeps the lower total.
func (e *Engine) RollDisadvantage(expr string) (Outcome, error) {
	a, b, err := e.rollTwice(expr)
	if err != nil {
		return Outcome{}, err
	}
	return Lower(a, b), nil
}

func (e *Engine) rollTwice(expr string) (Outcome, Outcome, error) {
	parsed, err := e.Parse(expr)
	if err != nil {
		return Outcome{}, Outcome{}, err
	}
	a, err := e.RollExpression(parsed)
	if err != nil {
		return Outcome{}, Outcome{}, err
	}
	b, err := e.RollExpression(parsed)
	if err != nil {
		return Outcome{}, Outcome{}, err
	}
	return a, b, nil
}
