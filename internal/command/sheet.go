package command

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"trpgdice/internal/sheet"
)

const defaultTemplate = "coc7"

// sheet handles "st" and its subcommands:
//
//	st | st show          show the active character
//	st new <name>         start a blank character on the default template
//	st temp <template>    switch the active character's template
//	st init               roll the active character from its template
//	st del                drop the active character
//	st <template> [name]  roll a new character in one step
func (r *Router) sheet(ctx context.Context, req request) (string, error) {
	sub, rest, _ := strings.Cut(req.args, " ")
	rest = strings.TrimSpace(rest)
	switch strings.ToLower(sub) {
	case "", "show":
		return r.showSheet(ctx, req)
	case "new":
		return r.newCharacter(ctx, req.user, rest)
	case "temp":
		return r.switchTemplate(ctx, req.user, rest)
	case "init":
		ch, ok, err := r.store.Get(ctx, req.user)
		if err != nil {
			return "", err
		}
		if !ok {
			return r.printer.Sprintf("sheet.none"), nil
		}
		return r.generate(ctx, req.user, ch.Template, ch.Name)
	case "del":
		return r.deleteCharacter(ctx, req.user)
	}
	if _, err := r.templates.Get(sub); err != nil {
		return "", r.usage("sheet.usage")
	}
	return r.generate(ctx, req.user, sub, rest)
}

func (r *Router) showSheet(ctx context.Context, req request) (string, error) {
	ch, ok, err := r.store.Get(ctx, req.user)
	if err != nil {
		return "", err
	}
	if !ok {
		return r.printer.Sprintf("sheet.none"), nil
	}
	lines := []string{r.printer.Sprintf("sheet.header", ch.Name, ch.System, ch.Template)}
	if len(ch.Attributes) > 0 {
		lines = append(lines, r.printer.Sprintf("sheet.attributes", joinStats(ch.Attributes)))
	}
	if len(ch.Skills) > 0 {
		lines = append(lines, r.printer.Sprintf("sheet.skills", joinStats(ch.Skills)))
	}
	return strings.Join(lines, "\n"), nil
}

func (r *Router) newCharacter(ctx context.Context, user, name string) (string, error) {
	name = sanitizeName(name)
	if name == "" {
		return "", r.usage("sheet.empty_name")
	}
	tpl, err := r.template(defaultTemplate)
	if err != nil {
		return "", err
	}
	ch := sheet.Character{
		ID:        r.store.NewID(),
		Name:      name,
		System:    tpl.System,
		Template:  tpl.Key,
		CreatedAt: r.now(),
	}
	if err := r.store.Put(ctx, user, ch); err != nil {
		return "", err
	}
	return r.printer.Sprintf("sheet.created", name), nil
}

func (r *Router) switchTemplate(ctx context.Context, user, key string) (string, error) {
	if key == "" {
		return "", r.usage("sheet.usage")
	}
	tpl, err := r.template(key)
	if err != nil {
		return "", err
	}
	ch, ok, err := r.store.Get(ctx, user)
	if err != nil {
		return "", err
	}
	if !ok {
		return r.printer.Sprintf("sheet.none"), nil
	}
	ch.System = tpl.System
	ch.Template = tpl.Key
	if err := r.store.Put(ctx, user, ch); err != nil {
		return "", err
	}
	return r.printer.Sprintf("sheet.switched", ch.Name, tpl.Key), nil
}

func (r *Router) deleteCharacter(ctx context.Context, user string) (string, error) {
	ch, ok, err := r.store.Get(ctx, user)
	if err != nil {
		return "", err
	}
	if !ok {
		return r.printer.Sprintf("sheet.none"), nil
	}
	if err := r.store.Delete(ctx, user); err != nil {
		return "", err
	}
	return r.printer.Sprintf("sheet.deleted", ch.Name), nil
}

func (r *Router) generate(ctx context.Context, user, key, name string) (string, error) {
	tpl, err := r.template(key)
	if err != nil {
		return "", err
	}
	name = sanitizeName(name)
	if name == "" {
		if cur, ok, err := r.store.Get(ctx, user); err != nil {
			return "", err
		} else if ok {
			name = cur.Name
		}
	}
	if name == "" {
		name = user
	}
	ch, err := sheet.Generate(r.engine, tpl, name)
	if err != nil {
		return "", err
	}
	ch.CreatedAt = r.now()
	if err := r.store.Put(ctx, user, ch); err != nil {
		return "", err
	}
	return r.printer.Sprintf("sheet.generated", ch.Name, tpl.Key), nil
}

func (r *Router) template(key string) (*sheet.Template, error) {
	tpl, err := r.templates.Get(key)
	if errors.Is(err, sheet.ErrUnknownTemplate) {
		return nil, &templateError{key: key, err: err}
	}
	return tpl, err
}

func joinStats(stats []sheet.Stat) string {
	parts := make([]string, len(stats))
	for i, s := range stats {
		parts[i] = s.Name + ":" + strconv.Itoa(s.Value)
	}
	return strings.Join(parts, " ")
}
