package sheet

import "time"

// Template describes how to build a character for one game system.
type Template struct {
	Key      string `yaml:"key"`
	Name     string `yaml:"name"`
	System   string `yaml:"system"`   // e.g. "CoC", "DnD5e"
	MainDice string `yaml:"mainDice"` // the system's check die, e.g. "1d100"

	Attributes []Rule    `yaml:"attributes"`
	Skills     []Rule    `yaml:"skills"`
	Mapping    []Derived `yaml:"mapping"`

	// Synonyms maps a canonical skill or attribute name to its aliases.
	Synonyms map[string][]string `yaml:"synonyms"`
}

// Rule sets one attribute or skill. Exactly one of Value, Dice or Formula
// is used, in that order of precedence.
type Rule struct {
	Name    string `yaml:"name"`
	Value   *int   `yaml:"value"`
	Dice    string `yaml:"dice"`    // dice expression, e.g. "3d6x5"
	Formula string `yaml:"formula"` // arithmetic over attributes, e.g. "{EDU}"
}

// Derived computes an attribute from others after rolling, e.g.
// HP = ({CON}+{SIZ})/10.
type Derived struct {
	Name    string `yaml:"name"`
	Formula string `yaml:"formula"`
}

// Stat is a named value in template order.
type Stat struct {
	Name  string
	Value int
}

// Character is a generated character sheet.
type Character struct {
	ID         string
	Name       string
	System     string
	Template   string
	Attributes []Stat
	Skills     []Stat
	CreatedAt  time.Time
}
