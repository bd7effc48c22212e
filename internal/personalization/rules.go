package personalization

import (
	"sort"
	"strings"

	"github.com/LocNguyenSGU/portfolio/internal/dom"
)

// Marker classes and badge.
const (
	FeaturedClass = "personalized-featured"
	SkillClass    = "personalized-skill"
	BadgeClass    = "personalization-badge"

	DefaultBadgeLabel = "⭐ Featured for you"

	badgeStyle   = "position: absolute; top: 10px; right: 10px; background: #FFD700; color: #000; padding: 4px 8px; border-radius: 4px; font-size: 12px; font-weight: bold; z-index: 10;"
	primaryColor = "#2563EB"
)

// PriorityOrder returns the indices of ids sorted by their position in
// priority. Ids not listed keep their relative order after all listed ones.
func PriorityOrder(ids, priority []string) []int {
	rank := make(map[string]int, len(priority))
	for i, id := range priority {
		if _, seen := rank[id]; !seen {
			rank[id] = i
		}
	}
	rankOf := func(id string) int {
		if r, ok := rank[id]; ok {
			return r
		}
		return len(priority)
	}

	order := make([]int, len(ids))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return rankOf(ids[order[a]]) < rankOf(ids[order[b]])
	})
	return order
}

// ReorderSections moves the container's sections into priority order.
func ReorderSections(doc *dom.Document, priority []string) {
	if len(priority) == 0 {
		return
	}
	container := doc.Container()
	if container == nil {
		return
	}
	sections := doc.Sections()
	ids := make([]string, len(sections))
	for i, s := range sections {
		ids[i] = s.ID()
	}
	for _, i := range PriorityOrder(ids, priority) {
		container.Append(sections[i])
	}
}

// MarkFeatured flags every project whose identifier is in featured and
// gives it a single badge. Elements that already carry a badge are left
// alone, so repeated calls do not stack badges. It returns the number of
// newly marked elements.
func MarkFeatured(doc *dom.Document, featured []string, label string) int {
	if len(featured) == 0 {
		return 0
	}
	if label == "" {
		label = DefaultBadgeLabel
	}
	set := make(map[string]bool, len(featured))
	for _, id := range featured {
		set[id] = true
	}

	marked := 0
	for _, el := range doc.Projects() {
		id, _ := el.Attr(dom.AttrProjectID)
		if !set[id] || len(el.Children("."+BadgeClass)) > 0 {
			continue
		}
		el.AddClass(FeaturedClass)
		el.SetStyle("order", "-1")
		if pos := el.Style("position"); pos != "absolute" && pos != "fixed" {
			el.SetStyle("position", "relative")
		}
		el.AppendHTML(`<div class="` + BadgeClass + `" style="` + badgeStyle + `"></div>`)
		badges := el.Children("." + BadgeClass)
		badges[len(badges)-1].SetText(label)
		marked++
	}
	return marked
}

// SkillMatches reports whether a candidate skill and a target overlap in
// either direction, ignoring case.
func SkillMatches(candidate, target string) bool {
	c := strings.ToLower(candidate)
	t := strings.ToLower(target)
	return strings.Contains(c, t) || strings.Contains(t, c)
}

// MarkSkills emphasizes every skill element matching any of skills. The
// identifier is the data-skill attribute, else the trimmed lower-cased
// text. It returns the number of emphasized elements.
func MarkSkills(doc *dom.Document, skills []string) int {
	if len(skills) == 0 {
		return 0
	}
	marked := 0
	for _, el := range doc.SkillCandidates() {
		id, ok := el.Attr(dom.AttrSkill)
		if !ok || id == "" {
			id = strings.ToLower(strings.TrimSpace(el.Text()))
		}
		if id == "" {
			continue
		}
		for _, s := range skills {
			if s == "" || !SkillMatches(id, s) {
				continue
			}
			el.AddClass(SkillClass)
			el.SetStyle("font-weight", "bold")
			el.SetStyle("color", primaryColor)
			marked++
			break
		}
	}
	return marked
}

// ApplyRules runs the three DOM steps in order.
func ApplyRules(doc *dom.Document, rules RuleSet, badgeLabel string) {
	ReorderSections(doc, rules.PrioritySections)
	MarkFeatured(doc, rules.FeaturedItems, badgeLabel)
	MarkSkills(doc, rules.HighlightSkills)
}
