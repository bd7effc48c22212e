package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Element is a single node of a Document.
type Element struct {
	sel *goquery.Selection
}

// Tag returns the lower-case element name.
func (e *Element) Tag() string {
	return strings.ToLower(goquery.NodeName(e.sel))
}

func (e *Element) ID() string {
	return e.sel.AttrOr("id", "")
}

func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e *Element) HasAttr(name string) bool {
	_, ok := e.sel.Attr(name)
	return ok
}

func (e *Element) SetAttr(name, value string) {
	e.sel.SetAttr(name, value)
}

func (e *Element) RemoveAttr(name string) {
	e.sel.RemoveAttr(name)
}

func (e *Element) HasClass(class string) bool {
	return e.sel.HasClass(class)
}

func (e *Element) AddClass(class ...string) {
	e.sel.AddClass(class...)
}

func (e *Element) RemoveClass(class ...string) {
	e.sel.RemoveClass(class...)
}

// Text returns the combined text content.
func (e *Element) Text() string {
	return e.sel.Text()
}

// SetText replaces the children with a single text node.
func (e *Element) SetText(text string) {
	e.sel.SetText(text)
}

// SetInnerHTML replaces the children with parsed markup.
func (e *Element) SetInnerHTML(html string) {
	e.sel.SetHtml(html)
}

// AppendHTML parses markup and appends it as the last children.
func (e *Element) AppendHTML(html string) {
	e.sel.AppendHtml(html)
}

// Append moves child to the end of e's children.
func (e *Element) Append(child *Element) {
	e.sel.AppendSelection(child.sel)
}

// Children returns the element children matching selector.
func (e *Element) Children(selector string) []*Element {
	return wrapAll(e.sel.ChildrenFiltered(selector))
}

// OuterHTML serializes the element itself.
func (e *Element) OuterHTML() (string, error) {
	return goquery.OuterHtml(e.sel)
}

// Style returns the inline value of a CSS property.
func (e *Element) Style(prop string) string {
	for _, d := range parseStyle(e.sel.AttrOr("style", "")) {
		if d.prop == prop {
			return d.value
		}
	}
	return ""
}

// SetStyle sets one inline CSS property, keeping the others in place.
func (e *Element) SetStyle(prop, value string) {
	decls := parseStyle(e.sel.AttrOr("style", ""))
	found := false
	for i := range decls {
		if decls[i].prop == prop {
			decls[i].value = value
			found = true
		}
	}
	if !found {
		decls = append(decls, decl{prop: prop, value: value})
	}
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.prop+": "+d.value)
	}
	e.sel.SetAttr("style", strings.Join(parts, "; ")+";")
}

type decl struct {
	prop  string
	value string
}

func parseStyle(style string) []decl {
	var out []decl
	for _, part := range strings.Split(style, ";") {
		prop, value, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		out = append(out, decl{prop: prop, value: strings.TrimSpace(value)})
	}
	return out
}
