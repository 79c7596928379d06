package command

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the locale every other catalog must match key for key.
const BaseLocale = "en"

//go:embed locales/*.yaml
var localeFS embed.FS

type localeFile struct {
	Locale   string            `yaml:"locale"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds reply messages per locale.
type Catalog struct {
	builder *catalog.Builder
	locales map[string]map[string]string
	tags    []language.Tag // BaseLocale first
	matcher language.Matcher
}

// LoadCatalog loads the embedded reply catalogs.
func LoadCatalog() (*Catalog, error) {
	return LoadCatalogFS(localeFS)
}

// LoadCatalogFS loads locales/*.yaml from fsys. Each file names its locale,
// which must match the file name, and every locale must define exactly the
// keys of BaseLocale.
func LoadCatalogFS(fsys fs.FS) (*Catalog, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no catalog files found")
	}
	sort.Strings(paths)

	c := &Catalog{
		builder: catalog.NewBuilder(catalog.Fallback(language.Make(BaseLocale))),
		locales: map[string]map[string]string{},
	}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		var file localeFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := c.add(p, file); err != nil {
			return nil, err
		}
	}

	base, ok := c.locales[BaseLocale]
	if !ok {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	for locale, msgs := range c.locales {
		if missing := missingKeys(base, msgs); len(missing) > 0 {
			return nil, fmt.Errorf("catalog %s: missing keys %s", locale, strings.Join(missing, ", "))
		}
		if extra := missingKeys(msgs, base); len(extra) > 0 {
			return nil, fmt.Errorf("catalog %s: keys not in %s: %s", locale, BaseLocale, strings.Join(extra, ", "))
		}
	}

	c.tags = []language.Tag{language.Make(BaseLocale)}
	for _, l := range c.Locales() {
		if l != BaseLocale {
			c.tags = append(c.tags, language.Make(l))
		}
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

func (c *Catalog) add(p string, file localeFile) error {
	locale := strings.TrimSpace(file.Locale)
	if locale == "" {
		return fmt.Errorf("catalog %s: locale is required", p)
	}
	if want := strings.TrimSuffix(path.Base(p), path.Ext(p)); locale != want {
		return fmt.Errorf("catalog %s: locale %q must match file name %q", p, locale, want)
	}
	if _, dup := c.locales[locale]; dup {
		return fmt.Errorf("catalog %s: locale %q already defined", p, locale)
	}
	if file.Messages == nil {
		return fmt.Errorf("catalog %s: messages map is required", p)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("catalog %s: parse locale tag %q: %w", p, locale, err)
	}

	keys := make([]string, 0, len(file.Messages))
	for k := range file.Messages {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := c.builder.SetString(tag, k, file.Messages[k]); err != nil {
			return fmt.Errorf("catalog %s: key %q: %w", p, k, err)
		}
	}
	c.locales[locale] = file.Messages
	return nil
}

// Locales lists the loaded locales in order.
func (c *Catalog) Locales() []string {
	out := make([]string, 0, len(c.locales))
	for l := range c.locales {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Printer returns a printer for the loaded locale that best matches tag,
// BaseLocale when none does.
func (c *Catalog) Printer(tag language.Tag) *message.Printer {
	_, i, _ := c.matcher.Match(tag)
	return message.NewPrinter(c.tags[i], message.Catalog(c.builder))
}

// missingKeys lists keys of want absent from have.
func missingKeys(want, have map[string]string) []string {
	var out []string
	for k := range want {
		if _, ok := have[k]; !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
