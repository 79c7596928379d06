package dice

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Outcome is the result of evaluating one expression. It is built once and
// not modified afterwards.
//
// Total is always sum(Rolls) + Modifier. Rolls holds a single 0 when the
// expression had no dice at all.
type Outcome struct {
	Expression string
	Rolls      []int
	Modifier   int
	// DieCount and DieSides describe the first term that produced dice.
	DieCount  int
	DieSides  int
	Total     int
	CreatedAt time.Time

	criticalEffects bool
}

// IsCriticalSuccess reports whether any roll shows the primary die's
// highest face. Rolls are compared after multipliers, so a multiplied die
// only triggers this with a multiplier of 1.
func (o Outcome) IsCriticalSuccess() bool {
	if !o.criticalEffects || o.DieCount == 0 {
		return false
	}
	for _, r := range o.Rolls {
		if r == o.DieSides {
			return true
		}
	}
	return false
}

// IsCriticalFailure reports whether any roll shows a 1.
func (o Outcome) IsCriticalFailure() bool {
	if !o.criticalEffects || o.DieCount == 0 {
		return false
	}
	for _, r := range o.Rolls {
		if r == 1 {
			return true
		}
	}
	return false
}

// String renders "<expr> = [rolls]<mod> = <total>", e.g. "3d6+2 = [4, 1, 6]+2 = 13".
func (o Outcome) String() string {
	if o.Modifier != 0 {
		return fmt.Sprintf("%s = %s%s = %d", o.Expression, o.formatRolls(), formatModifier(o.Modifier), o.Total)
	}
	return fmt.Sprintf("%s = %s = %d", o.Expression, o.formatRolls(), o.Total)
}

func (o Outcome) Summary() string {
	return "Result: " + strconv.Itoa(o.Total)
}

// Format renders the full line when details is true and the summary otherwise.
func (o Outcome) Format(details bool) string {
	if details {
		return o.String()
	}
	return o.Summary()
}

func (o Outcome) formatRolls() string {
	parts := make([]string, len(o.Rolls))
	for i, r := range o.Rolls {
		parts[i] = strconv.Itoa(r)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatModifier(m int) string {
	if m > 0 {
		return "+" + strconv.Itoa(m)
	}
	return strconv.Itoa(m)
}

// Higher returns the outcome with the larger total, preferring a on ties.
func Higher(a, b Outcome) Outcome {
	if b.Total > a.Total {
		return b
	}
	return a
}

// Lower returns the outcome with the smaller total, preferring a on ties.
func Lower(a, b Outcome) Outcome {
	if b.Total < a.Total {
		return b
	}
	return a
}
