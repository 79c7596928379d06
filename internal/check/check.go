// Package check resolves skill checks on top of the dice engine: percentile
// success levels, d10 dice pools and daily luck.
package check

import "trpgdice/internal/dice"

// Judge draws check dice from a dice engine's source and honors its limits.
type Judge struct {
	src     dice.Source
	maxPool int
}

// New builds a Judge that shares engine's source and dice-count limit.
func New(engine *dice.Engine) *Judge {
	return &Judge{
		src:     engine.Source(),
		maxPool: engine.Config().MaxDiceCount,
	}
}

func NewWithSource(src dice.Source, maxPool int) *Judge {
	if src == nil {
		src = dice.GlobalSource()
	}
	if maxPool <= 0 {
		maxPool = dice.DefaultMaxDiceCount
	}
	return &Judge{src: src, maxPool: maxPool}
}

func (j *Judge) roll(sides int) int {
	return j.src.Intn(sides) + 1
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
