package check

import (
	"crypto/md5" //nolint:gosec // used as a stable hash, not for security
	"encoding/hex"
	"strconv"
	"time"
)

type LuckTier int

const (
	LuckUnlucky LuckTier = iota
	LuckAverage
	LuckLucky
	LuckSuperb
)

func (t LuckTier) String() string {
	switch t {
	case LuckSuperb:
		return "Superb"
	case LuckLucky:
		return "Lucky"
	case LuckAverage:
		return "Average"
	default:
		return "Unlucky"
	}
}

// Luck is a user's luck value for one calendar day.
type Luck struct {
	Value int // 1..100
	Tier  LuckTier
	Day   string // YYYY-MM-DD
}

// DailyLuck derives a stable 1..100 value from the user and the calendar
// day of t, so asking twice on the same day gives the same answer without
// storing anything.
func DailyLuck(userID string, t time.Time) Luck {
	day := t.Format(time.DateOnly)
	sum := md5.Sum([]byte(userID + "_" + day)) //nolint:gosec // see import
	prefix := hex.EncodeToString(sum[:])[:8]
	n, _ := strconv.ParseUint(prefix, 16, 64)
	value := int(n%100) + 1
	return Luck{Value: value, Tier: luckTier(value), Day: day}
}

func luckTier(value int) LuckTier {
	switch {
	case value >= 90:
		return LuckSuperb
	case value >= 70:
		return LuckLucky
	case value >= 30:
		return LuckAverage
	default:
		return LuckUnlucky
	}
}
