package check

type Level int

const (
	LevelUnspecified Level = iota
	LevelCriticalSuccess
	LevelExtremeSuccess
	LevelHardSuccess
	LevelRegularSuccess
	LevelFailure
	LevelCriticalFailure
)

func (l Level) String() string {
	switch l {
	case LevelUnspecified:
		return "Unspecified"
	case LevelCriticalSuccess:
		return "Critical success"
	case LevelExtremeSuccess:
		return "Extreme success"
	case LevelHardSuccess:
		return "Hard success"
	case LevelRegularSuccess:
		return "Regular success"
	case LevelFailure:
		return "Failure"
	case LevelCriticalFailure:
		return "Critical failure"
	default:
		return "Unknown"
	}
}

// Success reports whether the level counts as passing the check.
func (l Level) Success() bool {
	switch l {
	case LevelCriticalSuccess, LevelExtremeSuccess, LevelHardSuccess, LevelRegularSuccess:
		return true
	default:
		return false
	}
}

type PercentileResult struct {
	Roll    int
	Skill   int
	Level   Level
	Success bool
}

// ClassifyPercentile grades a d100 roll against skill. A 1 is always a
// critical success; a 100, or 96+ against a skill below 50, is a critical
// failure. Otherwise the roll is compared with a fifth, half and the whole
// of the skill.
func ClassifyPercentile(roll, skill int) Level {
	switch {
	case roll == 1:
		return LevelCriticalSuccess
	case roll == 100 || (roll >= 96 && skill < 50):
		return LevelCriticalFailure
	case roll <= floorDiv(skill, 5):
		return LevelExtremeSuccess
	case roll <= floorDiv(skill, 2):
		return LevelHardSuccess
	case roll <= skill:
		return LevelRegularSuccess
	default:
		return LevelFailure
	}
}

func EvaluatePercentile(roll, skill int) PercentileResult {
	level := ClassifyPercentile(roll, skill)
	return PercentileResult{
		Roll:    roll,
		Skill:   skill,
		Level:   level,
		Success: level.Success(),
	}
}

func (j *Judge) Percentile(skill int) PercentileResult {
	return EvaluatePercentile(j.roll(100), skill)
}
