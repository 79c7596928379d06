package command

import (
	"context"

	"trpgdice/internal/dice"
)

// expression returns the command's argument, or the engine's default die.
func (r *Router) expression(req request) string {
	if req.args == "" {
		return r.engine.DefaultExpression()
	}
	return req.args
}

func (r *Router) roll(ctx context.Context, req request) (string, error) {
	out, err := r.engine.Roll(r.expression(req))
	if err != nil {
		return "", err
	}
	name, err := r.displayName(ctx, req.user)
	if err != nil {
		return "", err
	}
	reply := r.printer.Sprintf("roll.result", name, out.String())
	switch {
	case out.IsCriticalSuccess():
		reply += r.printer.Sprintf("roll.critical_success")
	case out.IsCriticalFailure():
		reply += r.printer.Sprintf("roll.critical_failure")
	}
	return reply, nil
}

func (r *Router) hiddenRoll(ctx context.Context, req request) (string, error) {
	out, err := r.engine.Roll(r.expression(req))
	if err != nil {
		return "", err
	}
	name, err := r.displayName(ctx, req.user)
	if err != nil {
		return "", err
	}
	return r.printer.Sprintf("roll.hidden", name, out.Summary()), nil
}

func (r *Router) advantage(ctx context.Context, req request) (string, error) {
	return r.rollTwice(ctx, req, "roll.advantage", r.engine.RollAdvantage)
}

func (r *Router) disadvantage(ctx context.Context, req request) (string, error) {
	return r.rollTwice(ctx, req, "roll.disadvantage", r.engine.RollDisadvantage)
}

func (r *Router) rollTwice(ctx context.Context, req request, key string, roll func(string) (dice.Outcome, error)) (string, error) {
	out, err := roll(r.expression(req))
	if err != nil {
		return "", err
	}
	name, err := r.displayName(ctx, req.user)
	if err != nil {
		return "", err
	}
	return r.printer.Sprintf(key, name, out.String()), nil
}
