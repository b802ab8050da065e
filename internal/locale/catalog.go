package locale

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localeFS embed.FS

// Catalog maps (language, message key) to response templates. It is
// loaded once at startup and read-only afterwards, so lookups need no
// locking.
type Catalog struct {
	messages        map[string]map[string]string
	defaultLanguage string
	log             *zap.Logger
}

// NewCatalog loads every embedded locale file. defaultLanguage is used
// whenever a requested language has no catalog of its own.
func NewCatalog(defaultLanguage string, log *zap.Logger) (*Catalog, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded locales: %w", err)
	}

	messages := make(map[string]map[string]string, len(entries))
	for _, entry := range entries {
		data, err := localeFS.ReadFile("locales/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read locale %s: %w", entry.Name(), err)
		}

		var catalog map[string]string
		if err := yaml.Unmarshal(data, &catalog); err != nil {
			return nil, fmt.Errorf("failed to parse locale %s: %w", entry.Name(), err)
		}

		lang := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		messages[lang] = catalog
	}

	if _, ok := messages[defaultLanguage]; !ok {
		return nil, fmt.Errorf("default language %q has no catalog", defaultLanguage)
	}

	log.Info("Localization catalogs loaded",
		zap.Int("languages", len(messages)),
		zap.String("default_language", defaultLanguage),
	)

	return &Catalog{
		messages:        messages,
		defaultLanguage: defaultLanguage,
		log:             log,
	}, nil
}

// DefaultLanguage returns the fallback language code.
func (c *Catalog) DefaultLanguage() string {
	return c.defaultLanguage
}

// Resolve returns the template for key in the given language, falling
// back to the default language when the language is unknown. An unknown
// key resolves to the empty string.
func (c *Catalog) Resolve(language, key string) string {
	catalog, ok := c.messages[language]
	if !ok {
		catalog = c.messages[c.defaultLanguage]
	}
	return catalog[key]
}

// Render substitutes every named placeholder present in subs into the
// template. Placeholders without a supplied value are left literally in
// the output; this tolerant policy is deliberate.
func (c *Catalog) Render(template string, subs map[string]string) string {
	out := template
	for name, value := range subs {
		out = strings.ReplaceAll(out, "{"+name+"}", value)
	}
	return out
}

// Message resolves and renders in one step.
func (c *Catalog) Message(language, key string, subs map[string]string) string {
	return c.Render(c.Resolve(language, key), subs)
}
