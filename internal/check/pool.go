package check

import (
	"errors"
	"fmt"

	"trpgdice/internal/dice"
)

// DefaultDifficulty is the target number of a pool die when none is given.
const DefaultDifficulty = 6

// ErrInvalidDifficulty indicates a pool difficulty outside 1..10.
var ErrInvalidDifficulty = errors.New("difficulty must be between 1 and 10")

type PoolRequest struct {
	PoolSize   int
	Difficulty int // 0 means DefaultDifficulty
	// Specialization makes each 10 count as two successes.
	Specialization bool
}

type PoolResult struct {
	Successes  int
	Rolls      []int
	Botch      bool
	Difficulty int
	PoolSize   int
}

// EvaluatePool counts successes in already rolled d10s. A die at or above
// difficulty is a success; with specialization a 10 counts twice. The check
// botches when nothing succeeds and at least one die shows 1.
func EvaluatePool(rolls []int, difficulty int, specialization bool) PoolResult {
	res := PoolResult{
		Rolls:      rolls,
		Difficulty: difficulty,
		PoolSize:   len(rolls),
	}
	if len(rolls) == 0 {
		res.Rolls = []int{}
		res.Botch = true
		return res
	}

	ones := 0
	for _, r := range rolls {
		if r >= difficulty {
			res.Successes++
			if specialization && r == 10 {
				res.Successes++
			}
		}
		if r == 1 {
			ones++
		}
	}
	res.Botch = res.Successes == 0 && ones > 0
	return res
}

// Pool rolls req.PoolSize d10s and evaluates them. An empty or negative
// pool rolls nothing, reports a size of 0 and is always a botch.
func (j *Judge) Pool(req PoolRequest) (PoolResult, error) {
	difficulty := req.Difficulty
	if difficulty == 0 {
		difficulty = DefaultDifficulty
	}
	if difficulty < 1 || difficulty > 10 {
		return PoolResult{}, fmt.Errorf("%w: %d", ErrInvalidDifficulty, difficulty)
	}
	if req.PoolSize <= 0 {
		return EvaluatePool(nil, difficulty, req.Specialization), nil
	}
	if req.PoolSize > j.maxPool {
		return PoolResult{}, &dice.Error{Kind: dice.ErrDiceCountExceeded, Value: req.PoolSize, Limit: j.maxPool}
	}

	rolls := make([]int, req.PoolSize)
	for i := range rolls {
		rolls[i] = j.roll(10)
	}
	return EvaluatePool(rolls, difficulty, req.Specialization), nil
}
