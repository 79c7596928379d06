// Package sheet builds character sheets from game-system templates. A
// template rolls attributes through the dice engine and derives skills
// and secondary values with arithmetic formulas.
package sheet

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"trpgdice/internal/dice"
	"trpgdice/internal/formula"
)

// DefaultSkillValue is used for checks against a skill the sheet lacks.
const DefaultSkillValue = 50

const systemDnD5e = "DnD5e"

// Generate rolls a new character named name from tpl. Attributes are
// rolled first, then skills, then the template's derived mappings in
// order, so a mapping may use values produced by earlier ones.
func Generate(engine *dice.Engine, tpl *Template, name string) (Character, error) {
	ch := Character{
		ID:        uuid.NewString(),
		Name:      name,
		System:    tpl.System,
		Template:  tpl.Key,
		CreatedAt: time.Now(),
	}

	for _, r := range tpl.Attributes {
		v, err := resolve(engine, r, ch.env())
		if err != nil {
			return Character{}, fmt.Errorf("attribute %s: %w", r.Name, err)
		}
		ch.Attributes = setStat(ch.Attributes, r.Name, v)
	}

	for _, r := range tpl.Skills {
		v, err := resolve(engine, r, ch.env())
		if err != nil {
			return Character{}, fmt.Errorf("skill %s: %w", r.Name, err)
		}
		ch.Skills = setStat(ch.Skills, r.Name, v)
	}

	for _, d := range tpl.Mapping {
		v, err := formula.Eval(d.Formula, ch.env())
		if err != nil {
			return Character{}, fmt.Errorf("mapping %s: %w", d.Name, err)
		}
		ch.Attributes = setStat(ch.Attributes, d.Name, v)
	}
	return ch, nil
}

func resolve(engine *dice.Engine, r Rule, env formula.Env) (int, error) {
	switch {
	case r.Value != nil:
		return *r.Value, nil
	case r.Dice != "":
		out, err := engine.Roll(r.Dice)
		if err != nil {
			return 0, err
		}
		return out.Total, nil
	default:
		return formula.Eval(r.Formula, env)
	}
}

// env exposes attributes to formulas.
func (c Character) env() formula.Env {
	env := make(formula.Env, len(c.Attributes))
	for _, s := range c.Attributes {
		env[s.Name] = s.Value
	}
	return env
}

// Attribute returns the named attribute.
func (c Character) Attribute(name string) (int, bool) {
	return getStat(c.Attributes, name)
}

// Skill returns the named skill.
func (c Character) Skill(name string) (int, bool) {
	return getStat(c.Skills, name)
}

// Modifier returns the check modifier for an attribute: (value-10)/2
// rounded down for DnD5e, the raw value for percentile systems.
func (c Character) Modifier(attr string) int {
	v, ok := c.Attribute(attr)
	if c.System == systemDnD5e {
		if !ok {
			v = 10
		}
		d := v - 10
		if d < 0 {
			return -((-d + 1) / 2)
		}
		return d / 2
	}
	if !ok {
		return DefaultSkillValue
	}
	return v
}

// CheckValue resolves name through tpl's aliases and returns the matching
// skill, then attribute, falling back to DefaultSkillValue. The returned
// name is canonical when an alias matched.
func (c Character) CheckValue(tpl *Template, name string) (string, int) {
	if tpl != nil {
		if canon, ok := tpl.FindSkill(name); ok {
			name = canon
		}
	}
	if v, ok := c.Skill(name); ok {
		return name, v
	}
	if v, ok := c.Attribute(name); ok {
		return name, v
	}
	return name, DefaultSkillValue
}

func getStat(stats []Stat, name string) (int, bool) {
	for _, s := range stats {
		if s.Name == name {
			return s.Value, true
		}
	}
	return 0, false
}

func setStat(stats []Stat, name string, v int) []Stat {
	for i := range stats {
		if stats[i].Name == name {
			stats[i].Value = v
			return stats
		}
	}
	return append(stats, Stat{Name: name, Value: v})
}
