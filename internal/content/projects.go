// Package content holds the portfolio's projects and career history and
// renders them into page fragments.
package content

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Now marks a project that is still running.
const Now = "Now"

const projectDateLayout = "02/01/2006"

// Project is one portfolio entry. Dates are dd/mm/yyyy or Now.
type Project struct {
	ID          string
	Type        string
	StartDate   string
	EndDate     string
	Title       string
	Description string
	TechStack   []string
	Role        string
	WhatLearned string
	Link        string
	Score       string
	Hackathon   string
	Category    string
	Impressive  bool
}

// Ongoing reports whether the project has no end date yet.
func (p Project) Ongoing() bool {
	return p.EndDate == Now
}

// Filter selects which projects are listed.
type Filter string

const (
	FilterAll        Filter = "all"
	FilterImpressive Filter = "impressive"
)

// ParseFilter maps a query value to a Filter, defaulting to all.
func ParseFilter(s string) Filter {
	if Filter(strings.ToLower(strings.TrimSpace(s))) == FilterImpressive {
		return FilterImpressive
	}
	return FilterAll
}

// ParseProjectDate parses dd/mm/yyyy; Now yields now.
func ParseProjectDate(s string, now time.Time) (time.Time, error) {
	if s == Now {
		return now, nil
	}
	t, err := time.Parse(projectDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("content: project date %q: %w", s, err)
	}
	return t, nil
}

// MonthsBetween counts calendar months from start to end, ignoring days.
func MonthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
}

// SortProjects returns projects ordered by start date, newest first. Equal
// dates keep their listed order; unparseable dates sort last.
func SortProjects(projects []Project, now time.Time) []Project {
	out := append([]Project(nil), projects...)
	key := func(p Project) int64 {
		t, err := ParseProjectDate(p.StartDate, now)
		if err != nil {
			return -1 << 62
		}
		return t.Unix()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return key(out[i]) > key(out[j])
	})
	return out
}

// FilterProjects applies f.
func FilterProjects(projects []Project, f Filter) []Project {
	if f != FilterImpressive {
		return projects
	}
	var out []Project
	for _, p := range projects {
		if p.Impressive {
			out = append(out, p)
		}
	}
	return out
}

// SplitColumns deals projects alternately into two timeline columns.
func SplitColumns(projects []Project) (left, right []Project) {
	for i, p := range projects {
		if i%2 == 0 {
			left = append(left, p)
		} else {
			right = append(right, p)
		}
	}
	return left, right
}

var shortMonths = [...]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// FormatProjectDate renders dd/mm/yyyy as "Mon yyyy" and Now in the
// visitor's language.
func FormatProjectDate(s string, tr Translator) string {
	if s == Now {
		return tr.Resolve("projects.now")
	}
	t, err := time.Parse(projectDateLayout, s)
	if err != nil {
		return s
	}
	return shortMonths[t.Month()-1] + " " + strconv.Itoa(t.Year())
}

// ProjectDuration is the length of a project in months.
func ProjectDuration(p Project, now time.Time, tr Translator) string {
	start, err := ParseProjectDate(p.StartDate, now)
	if err != nil {
		return ""
	}
	end, err := ParseProjectDate(p.EndDate, now)
	if err != nil {
		return ""
	}
	if months := MonthsBetween(start, end); months > 0 {
		return strconv.Itoa(months) + " " + tr.Resolve("career.months")
	}
	return tr.Resolve("career.lessThan")
}

var categoryBadges = map[string]string{
	"School Project":   "bg-blue-100 dark:bg-blue-900/30 text-blue-700 dark:text-blue-400",
	"Personal":         "bg-purple-100 dark:bg-purple-900/30 text-purple-700 dark:text-purple-400",
	"Team Project":     "bg-green-100 dark:bg-green-900/30 text-green-700 dark:text-green-400",
	"Research Project": "bg-amber-100 dark:bg-amber-900/30 text-amber-700 dark:text-amber-400",
	"Hackathon":        "bg-red-100 dark:bg-red-900/30 text-red-700 dark:text-red-400",
	"Thesis Project":   "bg-indigo-100 dark:bg-indigo-900/30 text-indigo-700 dark:text-indigo-400",
}

// CategoryBadgeClass returns the badge colours for a category.
func CategoryBadgeClass(category string) string {
	if c, ok := categoryBadges[category]; ok {
		return c
	}
	return "bg-slate-100 dark:bg-slate-700 text-slate-700 dark:text-slate-300"
}

var categoryKeys = map[string]string{
	"School Project":   "projects.categories.school",
	"Personal":         "projects.categories.personal",
	"Team Project":     "projects.categories.team",
	"Research Project": "projects.categories.research",
	"Hackathon":        "projects.categories.hackathon",
	"Thesis Project":   "projects.categories.thesis",
}

// CategoryLabel translates a category, falling back to its raw name.
func CategoryLabel(category string, tr Translator) string {
	if key, ok := categoryKeys[category]; ok {
		return tr.Resolve(key)
	}
	return category
}
