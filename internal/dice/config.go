package dice

const (
	DefaultMaxDiceCount    = 100
	DefaultMaxDiceSides    = 1000
	DefaultDefaultDieSides = 20
)

// Config bounds what an Engine will roll. It is read once by New and never
// mutated afterwards.
type Config struct {
	MaxDiceCount    int
	MaxDiceSides    int
	DefaultDieSides int
	// CriticalEffects gates Outcome.IsCriticalSuccess and IsCriticalFailure.
	CriticalEffects bool
}

// DefaultConfig returns the stock limits: 100 dice of up to 1000 sides,
// d20 as the default die, critical effects on.
func DefaultConfig() Config {
	return Config{
		MaxDiceCount:    DefaultMaxDiceCount,
		MaxDiceSides:    DefaultMaxDiceSides,
		DefaultDieSides: DefaultDefaultDieSides,
		CriticalEffects: true,
	}
}

// withDefaults fills zero fields so a partially built Config still works.
func (c Config) withDefaults() Config {
	if c.MaxDiceCount <= 0 {
		c.MaxDiceCount = DefaultMaxDiceCount
	}
	if c.MaxDiceSides <= 0 {
		c.MaxDiceSides = DefaultMaxDiceSides
	}
	if c.DefaultDieSides <= 0 {
		c.DefaultDieSides = DefaultDefaultDieSides
	}
	return c
}
