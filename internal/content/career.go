package content

import (
	"fmt"
	"strconv"
	"time"
)

// Present marks the current job.
const Present = "Present"

const careerDateLayout = "Jan 2006"

// CareerEntry is one job. Dates are "Mon yyyy" or Present.
type CareerEntry struct {
	Title          string
	Company        string
	StartDate      string
	EndDate        string
	Duration       string
	Description    string
	Responsibility string
	TechStack      []string
	CompanyURL     string
	Type           string
}

// Current reports whether the job is ongoing.
func (c CareerEntry) Current() bool {
	return c.EndDate == Present
}

func parseCareerDate(s string, now time.Time) (time.Time, error) {
	if s == Present {
		return now, nil
	}
	t, err := time.Parse(careerDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("content: career date %q: %w", s, err)
	}
	return t, nil
}

// CareerDuration spells out how long a job lasted in the visitor's
// language, e.g. "1 year 3 months". A fixed Duration wins.
func CareerDuration(c CareerEntry, now time.Time, tr Translator) string {
	if c.Duration != "" {
		return c.Duration
	}
	start, err := parseCareerDate(c.StartDate, now)
	if err != nil {
		return ""
	}
	end, err := parseCareerDate(c.EndDate, now)
	if err != nil {
		return ""
	}

	months := MonthsBetween(start, end)
	switch {
	case months < 1:
		return tr.Resolve("career.lessThan")
	case months == 1:
		return "1 " + tr.Resolve("career.month")
	case months < 12:
		return strconv.Itoa(months) + " " + tr.Resolve("career.months")
	}

	years, rest := months/12, months%12
	out := strconv.Itoa(years) + " " + unit(years, "career.year", "career.years", tr)
	if rest > 0 {
		out += " " + strconv.Itoa(rest) + " " + unit(rest, "career.month", "career.months", tr)
	}
	return out
}

func unit(n int, one, many string, tr Translator) string {
	if n == 1 {
		return tr.Resolve(one)
	}
	return tr.Resolve(many)
}

var careerTypeKeys = map[string]string{
	"internship": "career.internship",
	"fulltime":   "career.fulltime",
	"parttime":   "career.parttime",
	"freelance":  "career.freelance",
}

// CareerTypeLabel translates an employment type.
func CareerTypeLabel(kind string, tr Translator) string {
	if key, ok := careerTypeKeys[kind]; ok {
		return tr.Resolve(key)
	}
	return kind
}
