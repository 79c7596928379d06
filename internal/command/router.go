// Package command turns chat-style command lines such as "r 3d6+2" or
// "ra Spot Hidden" into localized replies. It owns no I/O; callers feed it
// lines and print what comes back.
package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"trpgdice/internal/check"
	"trpgdice/internal/dice"
	"trpgdice/internal/session"
	"trpgdice/internal/sheet"
)

// ErrUnknownCommand indicates a line whose first word names no command.
var ErrUnknownCommand = errors.New("unknown command")

// ErrUsage indicates a command called with missing or malformed arguments.
// The wrapped text is the localized usage line.
var ErrUsage = errors.New("usage")

// Deps are the collaborators a Router dispatches to.
type Deps struct {
	Engine    *dice.Engine
	Judge     *check.Judge
	Templates *sheet.Registry
	Store     session.Store[sheet.Character]
	Catalog   *Catalog
	Language  language.Tag
	// Now defaults to time.Now; daily luck reads the calendar day from it.
	Now func() time.Time
}

type request struct {
	user string
	name string // command word
	args string // everything after the command word, trimmed
}

type handler func(ctx context.Context, req request) (string, error)

// Router dispatches command lines to handlers.
type Router struct {
	engine    *dice.Engine
	judge     *check.Judge
	templates *sheet.Registry
	store     session.Store[sheet.Character]
	printer   *message.Printer
	now       func() time.Time
	handlers  map[string]handler
}

// New builds a Router. A missing catalog is loaded from the embedded
// locales.
func New(d Deps) (*Router, error) {
	if d.Engine == nil || d.Judge == nil || d.Templates == nil || d.Store == nil {
		return nil, errors.New("command: engine, judge, templates and store are required")
	}
	cat := d.Catalog
	if cat == nil {
		var err error
		if cat, err = LoadCatalog(); err != nil {
			return nil, err
		}
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	r := &Router{
		engine:    d.Engine,
		judge:     d.Judge,
		templates: d.Templates,
		store:     d.Store,
		printer:   cat.Printer(d.Language),
		now:       now,
	}
	r.handlers = map[string]handler{
		"r":            r.roll,
		"rh":           r.hiddenRoll,
		"rhide":        r.hiddenRoll,
		"adv":          r.advantage,
		"advantage":    r.advantage,
		"dis":          r.disadvantage,
		"disadvantage": r.disadvantage,
		"ra":           r.skillCheck,
		"rp":           r.pool,
		"st":           r.sheet,
		"sheet":        r.showSheet,
		"me":           r.action,
		"jrrp":         r.luck,
		"help":         r.help,
	}
	return r, nil
}

// Handle runs one command line for user. Blank lines produce no reply.
// A leading ".", "/" or "。" is accepted, as chat dice bots use.
func (r *Router) Handle(ctx context.Context, user, line string) (string, error) {
	line = strings.TrimSpace(line)
	for _, prefix := range []string{".", "/", "。"} {
		line = strings.TrimPrefix(line, prefix)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil
	}

	word, args, _ := strings.Cut(line, " ")
	req := request{user: user, name: strings.ToLower(word), args: strings.TrimSpace(args)}
	h, ok := r.handlers[req.name]
	if !ok {
		return "", &unknownCommandError{word: word}
	}
	return h(ctx, req)
}

// Describe renders err as a localized reply line.
func (r *Router) Describe(err error) string {
	p := r.printer

	var usage *usageError
	if errors.As(err, &usage) {
		return usage.text
	}
	var de *dice.Error
	if errors.As(err, &de) {
		switch {
		case errors.Is(de, dice.ErrUnparseableExpression):
			return p.Sprintf("error.prefix", p.Sprintf("error.unparseable", de.Text))
		case errors.Is(de, dice.ErrInvalidKeepCount):
			return p.Sprintf("error.prefix", p.Sprintf("error.keep", strconv.Itoa(de.Value), strconv.Itoa(de.Limit)))
		case errors.Is(de, dice.ErrDiceCountExceeded):
			return p.Sprintf("error.prefix", p.Sprintf("error.count", strconv.Itoa(de.Value), strconv.Itoa(de.Limit)))
		case errors.Is(de, dice.ErrValueOutOfRange):
			return p.Sprintf("error.prefix", p.Sprintf("error.range", de.Text))
		case errors.Is(de, dice.ErrDiceSidesExceeded):
			return p.Sprintf("error.prefix", p.Sprintf("error.sides", strconv.Itoa(de.Value), strconv.Itoa(de.Limit)))
		}
	}
	var te *templateError
	if errors.As(err, &te) {
		return p.Sprintf("error.prefix", p.Sprintf("error.template", te.key, strings.Join(r.templates.Keys(), ", ")))
	}
	switch {
	case errors.Is(err, dice.ErrEmptyExpression):
		return p.Sprintf("error.prefix", p.Sprintf("error.empty"))
	case errors.Is(err, check.ErrInvalidDifficulty):
		return p.Sprintf("error.prefix", p.Sprintf("error.difficulty"))
	}
	var uc *unknownCommandError
	if errors.As(err, &uc) {
		return p.Sprintf("error.prefix", p.Sprintf("error.command", uc.word))
	}
	return p.Sprintf("error.prefix", err.Error())
}

// Active returns user's active character.
func (r *Router) Active(ctx context.Context, user string) (sheet.Character, bool, error) {
	return r.store.Get(ctx, user)
}

// displayName is the active character's name, else the user id, else a
// localized "you".
func (r *Router) displayName(ctx context.Context, user string) (string, error) {
	ch, ok, err := r.store.Get(ctx, user)
	if err != nil {
		return "", err
	}
	if ok && ch.Name != "" {
		return ch.Name, nil
	}
	if user != "" {
		return user, nil
	}
	return r.printer.Sprintf("user.anonymous"), nil
}

type unknownCommandError struct {
	word string
}

func (e *unknownCommandError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnknownCommand, e.word)
}

func (e *unknownCommandError) Unwrap() error { return ErrUnknownCommand }

// usageError carries a localized usage line.
type usageError struct {
	text string
}

func (e *usageError) Error() string { return e.text }

func (e *usageError) Unwrap() error { return ErrUsage }

func (r *Router) usage(key string) error {
	return &usageError{text: r.printer.Sprintf(key)}
}

// templateError names a template key the registry does not know.
type templateError struct {
	key string
	err error
}

func (e *templateError) Error() string { return e.err.Error() }

func (e *templateError) Unwrap() error { return e.err }

// sanitizeName drops characters that would confuse chat markup.
func sanitizeName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '[', ']', '{', '}':
			return -1
		}
		return r
	}, s)
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) > 32 {
		s = string([]rune(s)[:32])
	}
	return s
}
