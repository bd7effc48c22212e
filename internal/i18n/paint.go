package i18n

import "github.com/LocNguyenSGU/portfolio/internal/dom"

// Target is the property of an element that receives a translation.
type Target int

const (
	TargetText Target = iota
	TargetValue
	TargetPlaceholder
)

// Language toggle buttons, marked active for the current locale.
const toggleIDPrefix = "lang-"

// PaintTarget chooses where a translated string goes for an element of the
// given tag. An explicit placeholder marker wins; input elements take the
// value attribute; everything else (textarea included, whose value is its
// content) takes text.
func PaintTarget(tag string, placeholder bool) Target {
	switch {
	case placeholder:
		return TargetPlaceholder
	case tag == "input":
		return TargetValue
	default:
		return TargetText
	}
}

// Paint writes the translation of every [data-i18n] element, sets the page
// language and flags the active language toggle.
func Paint(doc *dom.Document, r *Resolver) {
	for _, el := range doc.TranslationTargets() {
		key, _ := el.Attr(dom.AttrI18n)
		text := r.Resolve(key)
		switch PaintTarget(el.Tag(), el.HasAttr(dom.AttrI18nPlaceholder)) {
		case TargetPlaceholder:
			el.SetAttr("placeholder", text)
		case TargetValue:
			el.SetAttr("value", text)
		default:
			el.SetText(text)
		}
	}

	if root := doc.Root(); root != nil {
		root.SetAttr("lang", r.Locale())
	}
	for _, code := range r.Locales() {
		btn := doc.ByID(toggleIDPrefix + code)
		if btn == nil {
			continue
		}
		if code == r.Locale() {
			btn.AddClass("active")
		} else {
			btn.RemoveClass("active")
		}
	}
}
