package dice

import (
	"math"
	"sort"
)

// checkLimits rejects a term that asks for more dice or faces than cfg
// allows. Terms without dice always pass.
func checkLimits(cfg Config, t Term) error {
	if t.Count <= 0 {
		return nil
	}
	if t.Count > cfg.MaxDiceCount {
		return &Error{Kind: ErrDiceCountExceeded, Value: t.Count, Limit: cfg.MaxDiceCount}
	}
	if t.Sides > cfg.MaxDiceSides {
		return &Error{Kind: ErrDiceSidesExceeded, Value: t.Sides, Limit: cfg.MaxDiceSides}
	}
	return nil
}

// rollTerm returns the face values a term contributes: Count draws in
// [1, Sides], trimmed to the Keep highest when 0 < Keep < Count, each
// scaled by Multiplier. The modifier is not included.
func rollTerm(src Source, cfg Config, t Term) ([]int, error) {
	if t.Count <= 0 {
		return nil, nil
	}
	if err := checkLimits(cfg, t); err != nil {
		return nil, err
	}

	rolls := make([]int, t.Count)
	for i := range rolls {
		rolls[i] = rollDie(src, t.Sides)
	}

	if t.Keep > 0 && t.Keep < t.Count {
		sort.Sort(sort.Reverse(sort.IntSlice(rolls)))
		rolls = rolls[:t.Keep]
	}

	if t.Multiplier != 1 {
		for i := range rolls {
			v, ok := mulInt(rolls[i], t.Multiplier)
			if !ok {
				return nil, outOfRange("")
			}
			rolls[i] = v
		}
	}
	return rolls, nil
}

func mulInt(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt) || (b == -1 && a == math.MinInt) {
		return 0, false
	}
	return c, true
}

func addInt(a, b int) (int, bool) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, false
	}
	return c, true
}
