// Package config loads runtime settings from the environment and command
// line flags.
package config

import (
	"errors"
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"golang.org/x/text/language"

	"trpgdice/internal/dice"
)

// Config holds the dice limits and command-line session settings.
type Config struct {
	MaxDiceCount    int    `env:"TRPG_MAX_DICE_COUNT"    envDefault:"100"`
	MaxDiceSides    int    `env:"TRPG_MAX_DICE_SIDES"    envDefault:"1000"`
	DefaultDieSides int    `env:"TRPG_DEFAULT_DIE_SIDES" envDefault:"20"`
	CriticalEffects bool   `env:"TRPG_CRITICAL_EFFECTS"  envDefault:"true"`
	Locale          string `env:"TRPG_LOCALE"            envDefault:"en"`
	TemplatesDir    string `env:"TRPG_TEMPLATES_DIR"`
	Seed            int64  `env:"TRPG_SEED"`
	User            string `env:"TRPG_USER"`
	Export          string `env:"TRPG_EXPORT"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ParseConfig reads the environment, then lets flags in args override it.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.IntVar(&cfg.MaxDiceCount, "max-dice", cfg.MaxDiceCount, "maximum dice per term")
	fs.IntVar(&cfg.MaxDiceSides, "max-sides", cfg.MaxDiceSides, "maximum faces per die")
	fs.IntVar(&cfg.DefaultDieSides, "default-die", cfg.DefaultDieSides, "die used when a command omits the expression")
	fs.BoolVar(&cfg.CriticalEffects, "crits", cfg.CriticalEffects, "report natural criticals")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "reply language (en, zh)")
	fs.StringVar(&cfg.TemplatesDir, "templates", cfg.TemplatesDir, "directory of extra character templates")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 picks one)")
	fs.StringVar(&cfg.User, "user", cfg.User, "user id for per-user state and daily luck")
	fs.StringVar(&cfg.Export, "export", cfg.Export, "write the active character sheet as PDF to this file on exit")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// Validate rejects limits an engine could not honour and unknown locales.
func (c Config) Validate() error {
	var errs []error
	if c.MaxDiceCount <= 0 {
		errs = append(errs, fmt.Errorf("max dice count must be positive, got %d", c.MaxDiceCount))
	}
	if c.MaxDiceSides <= 0 {
		errs = append(errs, fmt.Errorf("max dice sides must be positive, got %d", c.MaxDiceSides))
	}
	if c.DefaultDieSides <= 0 || (c.MaxDiceSides > 0 && c.DefaultDieSides > c.MaxDiceSides) {
		errs = append(errs, fmt.Errorf("default die d%d outside 1..%d", c.DefaultDieSides, c.MaxDiceSides))
	}
	if _, err := language.Parse(c.Locale); err != nil {
		errs = append(errs, fmt.Errorf("locale %q: %w", c.Locale, err))
	}
	return errors.Join(errs...)
}

// Dice returns the engine limits.
func (c Config) Dice() dice.Config {
	return dice.Config{
		MaxDiceCount:    c.MaxDiceCount,
		MaxDiceSides:    c.MaxDiceSides,
		DefaultDieSides: c.DefaultDieSides,
		CriticalEffects: c.CriticalEffects,
	}
}

// Language returns the parsed locale tag, or English if it does not parse.
func (c Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}
