package dice

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyExpression       = errors.New("empty dice expression")
	ErrUnparseableExpression = errors.New("unparseable dice expression")
	ErrInvalidKeepCount      = errors.New("keep count exceeds dice count")
	ErrDiceCountExceeded     = errors.New("dice count exceeds maximum")
	ErrDiceSidesExceeded     = errors.New("dice sides exceed maximum")
	// ErrValueOutOfRange covers a written number above MaxLiteral and any
	// sum or product that would overflow int.
	ErrValueOutOfRange = errors.New("dice value out of range")
)

// Error carries the details of a parse or roll failure. It matches its
// Kind sentinel with errors.Is.
type Error struct {
	Kind  error  // one of the Err* sentinels
	Text  string // offending token, when there is one
	Value int    // offending number for keep and limit failures
	Limit int    // configured or implied bound that was exceeded
}

func (e *Error) Error() string {
	switch e.Kind {
	case ErrUnparseableExpression, ErrValueOutOfRange:
		return fmt.Sprintf("%v: %q", e.Kind, e.Text)
	case ErrInvalidKeepCount:
		return fmt.Sprintf("%v: keep %d of %d", e.Kind, e.Value, e.Limit)
	case ErrDiceCountExceeded, ErrDiceSidesExceeded:
		return fmt.Sprintf("%v: %d > %d", e.Kind, e.Value, e.Limit)
	default:
		return e.Kind.Error()
	}
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func unparseable(text string) error {
	return &Error{Kind: ErrUnparseableExpression, Text: text}
}

func outOfRange(text string) error {
	return &Error{Kind: ErrValueOutOfRange, Text: text, Limit: MaxLiteral}
}
