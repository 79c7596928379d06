package dice

// Term is one atomic dice group such as 3d6+2, 4d6k3 or (2d6+6)x5.
type Term struct {
	Count      int // number of dice; 0 means a pure modifier
	Sides      int // faces per die; 0 together with Count 0 means no die
	Modifier   int // flat addend, applied once per term
	Multiplier int // scales every die and, at aggregation, the modifier
	Keep       int // keep the Keep highest dice when 0 < Keep < Count
}

type SignedTerm struct {
	Sign int // +1 or -1
	Term Term
}

// Expression is a parsed dice expression. Terms keep source order.
type Expression struct {
	Source string
	Terms  []SignedTerm
}

// applySign folds a negative sign into the term. Dice cannot be rolled
// negatively, so a subtracted group becomes a flat modifier equal to minus
// its integer expectation and contributes no variance.
func applySign(sign int, t Term) Term {
	if sign >= 0 {
		return t
	}
	t.Modifier = -t.Modifier
	if t.Count > 0 {
		t.Modifier -= t.Count * (t.Sides + 1) / 2
		t.Count = 0
		t.Keep = 0
	}
	return t
}
