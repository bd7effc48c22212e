// Package dom wraps goquery behind a small typed accessor layer. The data-*
// attribute names below are the contract content authors write against.
package dom

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Contract attributes.
const (
	AttrI18n            = "data-i18n"
	AttrI18nPlaceholder = "data-i18n-placeholder"
	AttrProjectID       = "data-project-id"
	AttrCategory        = "data-category"
	AttrSkill           = "data-skill"
	AttrContactType     = "data-contact-type"
	AttrCareerCompany   = "data-career-company"
	AttrCareerPosition  = "data-career-position"
)

const (
	sectionSelector = "section[id]"
	skillSelector   = "[" + AttrSkill + "], .skill, .skill-tag"
)

// Document is a parsed HTML page.
type Document struct {
	doc *goquery.Document
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{doc: doc}, nil
}

// ParseString is Parse for an in-memory page.
func ParseString(html string) (*Document, error) {
	return Parse(strings.NewReader(html))
}

// Render writes the whole document.
func (d *Document) Render(w io.Writer) error {
	return goquery.Render(w, d.doc.Selection)
}

// HTML returns the serialized document.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Root returns the <html> element.
func (d *Document) Root() *Element {
	return wrap(d.doc.Find("html").First())
}

// Main returns the <main> element, or nil.
func (d *Document) Main() *Element {
	return wrap(d.doc.Find("main").First())
}

// Container is the parent of the top-level content sections: <main>, else
// [role=main], else <body>.
func (d *Document) Container() *Element {
	for _, sel := range []string{"main", `[role="main"]`, "body"} {
		if el := wrap(d.doc.Find(sel).First()); el != nil {
			return el
		}
	}
	return nil
}

// Sections returns the direct section[id] children of the container in
// document order.
func (d *Document) Sections() []*Element {
	c := d.Container()
	if c == nil {
		return nil
	}
	return wrapAll(c.sel.ChildrenFiltered(sectionSelector))
}

// ByID returns the element with the given id, or nil.
func (d *Document) ByID(id string) *Element {
	return wrap(d.doc.Find("#" + id).First())
}

// Projects returns every element carrying a project identifier.
func (d *Document) Projects() []*Element {
	return d.FindAll("[" + AttrProjectID + "]")
}

// SkillCandidates returns every element that may name a skill.
func (d *Document) SkillCandidates() []*Element {
	return d.FindAll(skillSelector)
}

// TranslationTargets returns every element tagged with a translation key.
func (d *Document) TranslationTargets() []*Element {
	return d.FindAll("[" + AttrI18n + "]")
}

// FindAll returns the elements matching selector in document order.
func (d *Document) FindAll(selector string) []*Element {
	return wrapAll(d.doc.Find(selector))
}

func wrap(sel *goquery.Selection) *Element {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	return &Element{sel: sel}
}

func wrapAll(sel *goquery.Selection) []*Element {
	out := make([]*Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, &Element{sel: s})
	})
	return out
}
