package command

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"trpgdice/internal/check"
	"trpgdice/internal/sheet"
)

var levelKeys = map[check.Level]string{
	check.LevelCriticalSuccess: "level.critical_success",
	check.LevelExtremeSuccess:  "level.extreme_success",
	check.LevelHardSuccess:     "level.hard_success",
	check.LevelRegularSuccess:  "level.regular_success",
	check.LevelFailure:         "level.failure",
	check.LevelCriticalFailure: "level.critical_failure",
}

var luckKeys = map[check.LuckTier]string{
	check.LuckSuperb:  "luck.superb",
	check.LuckLucky:   "luck.lucky",
	check.LuckAverage: "luck.average",
	check.LuckUnlucky: "luck.unlucky",
}

// skillCheck handles "ra <skill> [value]". Without a character, or with a
// percentile-system character, it is a d100 roll-under check; other systems
// roll d20 plus the skill value.
func (r *Router) skillCheck(ctx context.Context, req request) (string, error) {
	skill, explicit, hasValue := splitTrailingInt(req.args)
	if skill == "" && !hasValue {
		return "", r.usage("check.usage")
	}

	ch, ok, err := r.store.Get(ctx, req.user)
	if err != nil {
		return "", err
	}
	name, err := r.displayName(ctx, req.user)
	if err != nil {
		return "", err
	}

	var tpl *sheet.Template
	if ok {
		tpl, _ = r.templates.Get(ch.Template)
	} else {
		tpl, _ = r.templates.ForSystem("CoC")
	}
	value := sheet.DefaultSkillValue
	if skill != "" {
		skill, value = ch.CheckValue(tpl, skill)
	} else {
		skill = strconv.Itoa(explicit)
	}
	if hasValue {
		value = explicit
	}

	if ok && !isPercentile(ch.System) {
		out, err := r.engine.Roll(fmt.Sprintf("1d20%+d", value))
		if err != nil {
			return "", err
		}
		return r.printer.Sprintf("check.d20", name, skill, out.String()), nil
	}

	res := r.judge.Percentile(value)
	return r.printer.Sprintf("check.percentile", name, skill, value, res.Roll, r.printer.Sprintf(levelKeys[res.Level])), nil
}

// pool handles "rp <pool> [difficulty] [s]".
func (r *Router) pool(ctx context.Context, req request) (string, error) {
	fields := strings.Fields(req.args)
	if len(fields) == 0 || len(fields) > 3 {
		return "", r.usage("pool.usage")
	}
	var pr check.PoolRequest
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return "", r.usage("pool.usage")
	}
	pr.PoolSize = n
	for _, f := range fields[1:] {
		switch strings.ToLower(f) {
		case "s", "spec":
			pr.Specialization = true
		default:
			d, err := strconv.Atoi(f)
			if err != nil || pr.Difficulty != 0 {
				return "", r.usage("pool.usage")
			}
			pr.Difficulty = d
			if d == 0 {
				pr.Difficulty = check.DefaultDifficulty
			}
		}
	}

	res, err := r.judge.Pool(pr)
	if err != nil {
		return "", err
	}
	name, err := r.displayName(ctx, req.user)
	if err != nil {
		return "", err
	}
	if res.Botch {
		return r.printer.Sprintf("pool.botch", name, res.PoolSize, res.Difficulty, joinInts(res.Rolls)), nil
	}
	return r.printer.Sprintf("pool.result", name, res.PoolSize, res.Difficulty, joinInts(res.Rolls), res.Successes), nil
}

func (r *Router) luck(ctx context.Context, req request) (string, error) {
	name, err := r.displayName(ctx, req.user)
	if err != nil {
		return "", err
	}
	l := check.DailyLuck(req.user, r.now())
	return r.printer.Sprintf("luck.result", name, l.Value, r.printer.Sprintf(luckKeys[l.Tier])), nil
}

func isPercentile(system string) bool {
	return system == "" || strings.EqualFold(system, "CoC")
}

// splitTrailingInt splits "Spot Hidden 60" into "Spot Hidden" and 60. A
// lone integer is returned as the value with an empty name.
func splitTrailingInt(s string) (string, int, bool) {
	s = strings.TrimSpace(s)
	i := strings.LastIndexAny(s, " \t")
	last := s[i+1:]
	n, err := strconv.Atoi(last)
	if err != nil {
		return s, 0, false
	}
	return strings.TrimSpace(s[:i+1]), n, true
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
