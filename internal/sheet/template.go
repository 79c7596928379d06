package sheet

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"trpgdice/internal/dice"
	"trpgdice/internal/formula"
)

//go:embed templates/*.yaml
var builtinFS embed.FS

// ErrUnknownTemplate indicates a template key that is not registered.
var ErrUnknownTemplate = errors.New("unknown template")

// LoadTemplate loads a template from a YAML file. Dice rules are checked
// against engine's limits; a nil engine uses the default limits.
func LoadTemplate(path string, engine *dice.Engine) (*Template, error) {
	cleanPath := filepath.Clean(path)
	b, err := os.ReadFile(cleanPath) //nolint:gosec // path is cleaned and supplied by the operator
	if err != nil {
		return nil, err
	}
	return parseTemplate(b, strings.TrimSuffix(filepath.Base(cleanPath), filepath.Ext(cleanPath)), engine)
}

func parseTemplate(b []byte, fallbackKey string, engine *dice.Engine) (*Template, error) {
	var t Template
	if err := yaml.Unmarshal(b, &t); err != nil {
		return nil, err
	}
	if t.Key == "" {
		t.Key = fallbackKey
	}
	t.Key = strings.ToLower(t.Key)
	if err := t.Validate(engine); err != nil {
		return nil, fmt.Errorf("template %s: %w", t.Key, err)
	}
	return &t, nil
}

// Validate checks that every dice expression and formula in t parses.
// Dice are read the way engine rolls them, lone integers and limits
// included.
func (t *Template) Validate(engine *dice.Engine) error {
	if engine == nil {
		engine = dice.New(dice.DefaultConfig())
	}
	if t.Key == "" {
		return errors.New("missing key")
	}
	if t.System == "" {
		return errors.New("missing system")
	}
	check := func(kind string, r Rule) error {
		if r.Name == "" {
			return fmt.Errorf("%s without a name", kind)
		}
		if r.Value != nil {
			return nil
		}
		if r.Dice != "" {
			if _, err := engine.Parse(r.Dice); err != nil {
				return fmt.Errorf("%s %s: %w", kind, r.Name, err)
			}
			return nil
		}
		if r.Formula != "" {
			if _, err := formula.Parse(r.Formula); err != nil {
				return fmt.Errorf("%s %s: %w", kind, r.Name, err)
			}
			return nil
		}
		return fmt.Errorf("%s %s has no value, dice or formula", kind, r.Name)
	}
	for _, r := range t.Attributes {
		if err := check("attribute", r); err != nil {
			return err
		}
	}
	for _, r := range t.Skills {
		if err := check("skill", r); err != nil {
			return err
		}
	}
	for _, d := range t.Mapping {
		if d.Name == "" {
			return errors.New("mapping without a name")
		}
		if _, err := formula.Parse(d.Formula); err != nil {
			return fmt.Errorf("mapping %s: %w", d.Name, err)
		}
	}
	return nil
}

// FindSkill resolves name, or one of its aliases, to the canonical name.
// Matching ignores case and surrounding space.
func (t *Template) FindSkill(name string) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(name))
	if want == "" {
		return "", false
	}
	canon := make([]string, 0, len(t.Synonyms))
	for c := range t.Synonyms {
		canon = append(canon, c)
	}
	sort.Strings(canon)
	for _, c := range canon {
		if strings.ToLower(c) == want {
			return c, true
		}
		for _, alias := range t.Synonyms[c] {
			if strings.ToLower(alias) == want {
				return c, true
			}
		}
	}
	return "", false
}

// Registry holds templates by key.
type Registry struct {
	engine    *dice.Engine
	templates map[string]*Template
}

// NewRegistry returns a registry preloaded with the built-in templates.
// Templates are validated against engine, which should be the one that
// later generates characters from them.
func NewRegistry(engine *dice.Engine) (*Registry, error) {
	if engine == nil {
		engine = dice.New(dice.DefaultConfig())
	}
	r := &Registry{engine: engine, templates: map[string]*Template{}}
	entries, err := builtinFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		b, err := builtinFS.ReadFile("templates/" + e.Name())
		if err != nil {
			return nil, err
		}
		t, err := parseTemplate(b, strings.TrimSuffix(e.Name(), ".yaml"), engine)
		if err != nil {
			return nil, err
		}
		r.Add(t)
	}
	return r, nil
}

// Add registers t, replacing any template with the same key.
func (r *Registry) Add(t *Template) {
	r.templates[strings.ToLower(t.Key)] = t
}

// LoadDir adds every *.yaml template in dir, overriding built-ins with the
// same key.
func (r *Registry) LoadDir(dir string) error {
	paths, err := filepath.Glob(filepath.Join(filepath.Clean(dir), "*.yaml"))
	if err != nil {
		return err
	}
	for _, p := range paths {
		t, err := LoadTemplate(p, r.engine)
		if err != nil {
			return fmt.Errorf("load %s: %w", p, err)
		}
		r.Add(t)
	}
	return nil
}

// Get returns the template for key.
func (r *Registry) Get(key string) (*Template, error) {
	t, ok := r.templates[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, key)
	}
	return t, nil
}

// ForSystem returns the first template, by key, whose System is system.
func (r *Registry) ForSystem(system string) (*Template, bool) {
	for _, k := range r.Keys() {
		if strings.EqualFold(r.templates[k].System, system) {
			return r.templates[k], true
		}
	}
	return nil, false
}

// Keys lists the registered template keys in order.
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.templates))
	for k := range r.templates {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
