// Package i18n resolves dotted translation keys against nested per-locale
// string trees and paints translated text into a page.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// Tree is one locale's namespaces. Leaves are strings; inner nodes are Trees.
type Tree = map[string]any

// LocaleTable maps locale codes to their trees.
type LocaleTable map[string]Tree

// Catalog is an immutable set of locale trees plus the default locale.
type Catalog struct {
	table         LocaleTable
	defaultLocale string
	codes         []string
	matcher       language.Matcher
}

// LoadCatalog loads the embedded locales/<code>.toml files.
func LoadCatalog(defaultLocale string) (*Catalog, error) {
	return LoadCatalogFS(localeFS, "locales", defaultLocale)
}

// LoadCatalogFS loads every <code>.toml file under dir.
func LoadCatalogFS(fsys fs.FS, dir, defaultLocale string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("i18n: read %s: %w", dir, err)
	}
	table := LocaleTable{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".toml" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", name, err)
		}
		tree := Tree{}
		if err := toml.Unmarshal(data, &tree); err != nil {
			return nil, fmt.Errorf("i18n: decode %s: %w", name, err)
		}
		table[strings.TrimSuffix(name, ".toml")] = tree
	}
	return NewCatalog(table, defaultLocale)
}

// NewCatalog builds a catalog; the default locale must be present.
func NewCatalog(table LocaleTable, defaultLocale string) (*Catalog, error) {
	if _, ok := table[defaultLocale]; !ok {
		return nil, fmt.Errorf("i18n: default locale %q not loaded", defaultLocale)
	}

	codes := make([]string, 0, len(table))
	for code := range table {
		if code != defaultLocale {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	codes = append([]string{defaultLocale}, codes...)

	// The matcher treats the first tag as the fallback, so the default goes first.
	tags := make([]language.Tag, 0, len(codes))
	for _, code := range codes {
		tag, err := language.Parse(code)
		if err != nil {
			tag = language.Und
		}
		tags = append(tags, tag)
	}

	return &Catalog{
		table:         table,
		defaultLocale: defaultLocale,
		codes:         codes,
		matcher:       language.NewMatcher(tags),
	}, nil
}

// Default returns the default locale code.
func (c *Catalog) Default() string {
	return c.defaultLocale
}

// Locales returns the known locale codes, default first.
func (c *Catalog) Locales() []string {
	return append([]string(nil), c.codes...)
}

// Has reports whether code is a known locale.
func (c *Catalog) Has(code string) bool {
	_, ok := c.table[code]
	return ok
}

// Lookup walks the tree of locale along the dot-separated key.
// It reports false for a missing locale, a missing segment, a non-string
// leaf or an empty string.
func (c *Catalog) Lookup(locale, key string) (string, bool) {
	tree, ok := c.table[locale]
	if !ok || key == "" {
		return "", false
	}
	var node any = tree
	for _, segment := range strings.Split(key, ".") {
		branch, ok := node.(map[string]any)
		if !ok {
			return "", false
		}
		node, ok = branch[segment]
		if !ok {
			return "", false
		}
	}
	s, ok := node.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Keys returns every leaf key path of locale, sorted.
func (c *Catalog) Keys(locale string) []string {
	var keys []string
	var walk func(prefix string, tree map[string]any)
	walk = func(prefix string, tree map[string]any) {
		for name, node := range tree {
			key := name
			if prefix != "" {
				key = prefix + "." + name
			}
			switch v := node.(type) {
			case map[string]any:
				walk(key, v)
			case string:
				keys = append(keys, key)
			}
		}
	}
	if tree, ok := c.table[locale]; ok {
		walk("", tree)
	}
	sort.Strings(keys)
	return keys
}

// Missing lists, per locale, the default-locale keys that locale cannot
// resolve. Locales with full coverage are omitted.
func (c *Catalog) Missing() map[string][]string {
	out := map[string][]string{}
	keys := c.Keys(c.defaultLocale)
	for _, code := range c.codes[1:] {
		for _, key := range keys {
			if _, ok := c.Lookup(code, key); !ok {
				out[code] = append(out[code], key)
			}
		}
	}
	return out
}

// Match picks the best known locale for an Accept-Language header value,
// falling back to the default.
func (c *Catalog) Match(acceptLanguage string) string {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return c.defaultLocale
	}
	_, idx, conf := c.matcher.Match(tags...)
	if conf == language.No || idx < 0 || idx >= len(c.codes) {
		return c.defaultLocale
	}
	return c.codes[idx]
}
