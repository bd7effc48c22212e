package i18n

import (
	"sort"
	"strings"

	"github.com/LocNguyenSGU/portfolio/internal/dom"
)

// LocaleStore persists the active locale between visits.
type LocaleStore interface {
	SaveLocale(code string)
}

// Resolver is the per-visit translation context: one active locale, an
// optional bound document to repaint, and locale-change subscribers.
type Resolver struct {
	catalog     *Catalog
	locale      string
	store       LocaleStore
	doc         *dom.Document
	subscribers map[int]func(locale string)
	nextID      int
}

// NewResolver starts at locale, or at the catalog default when locale is
// unknown. store may be nil.
func NewResolver(catalog *Catalog, locale string, store LocaleStore) *Resolver {
	if catalog != nil && !catalog.Has(locale) {
		locale = catalog.Default()
	}
	return &Resolver{
		catalog:     catalog,
		locale:      locale,
		store:       store,
		subscribers: map[int]func(string){},
	}
}

// Locale returns the active locale code.
func (r *Resolver) Locale() string {
	return r.locale
}

// Locales returns the known locale codes.
func (r *Resolver) Locales() []string {
	if r.catalog == nil {
		return nil
	}
	return r.catalog.Locales()
}

// Resolve returns the translation for a dotted key, or the key itself when
// anything along the path is missing.
func (r *Resolver) Resolve(key string) string {
	if r == nil || r.catalog == nil {
		return key
	}
	if s, ok := r.catalog.Lookup(r.locale, key); ok {
		return s
	}
	return key
}

// Format resolves key and substitutes {name} placeholders. Only the first
// occurrence of each placeholder is replaced.
func (r *Resolver) Format(key string, vars map[string]string) string {
	text := r.Resolve(key)
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		text = strings.Replace(text, "{"+name+"}", vars[name], 1)
	}
	return text
}

// Bind attaches the document that SetLocale repaints.
func (r *Resolver) Bind(doc *dom.Document) {
	r.doc = doc
}

// Paint paints the bound document, if any.
func (r *Resolver) Paint() {
	if r.doc != nil {
		Paint(r.doc, r)
	}
}

// Subscribe registers fn to run after every successful locale change. The
// returned func removes the subscription.
func (r *Resolver) Subscribe(fn func(locale string)) func() {
	id := r.nextID
	r.nextID++
	r.subscribers[id] = fn
	return func() { delete(r.subscribers, id) }
}

// SetLocale switches to code, persists it, repaints the bound document and
// notifies subscribers. Unknown codes are ignored. It reports whether the
// locale was accepted.
func (r *Resolver) SetLocale(code string) bool {
	if r.catalog == nil || !r.catalog.Has(code) {
		return false
	}
	r.locale = code
	if r.store != nil {
		r.store.SaveLocale(code)
	}
	r.Paint()

	ids := make([]int, 0, len(r.subscribers))
	for id := range r.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		r.subscribers[id](code)
	}
	return true
}
