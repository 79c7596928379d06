package command

import "context"

// action handles "me <action>", narrating what the character does.
func (r *Router) action(ctx context.Context, req request) (string, error) {
	if req.args == "" {
		return "", r.usage("action.usage")
	}
	name, err := r.displayName(ctx, req.user)
	if err != nil {
		return "", err
	}
	return r.printer.Sprintf("action.result", name, req.args), nil
}

func (r *Router) help(context.Context, request) (string, error) {
	return r.printer.Sprintf("help"), nil
}
