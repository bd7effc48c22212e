package admin

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/LocNguyenSGU/portfolio/internal/store"
)

// MaxChartEvents caps the events bar chart.
const MaxChartEvents = 10

// Report is everything the dashboard shows: the remote API's view plus the
// server's own visitor and event counts.
type Report struct {
	Remote      *Dashboard
	Local       *store.VisitorStats
	LocalEvents []store.EventCount
	GeneratedAt time.Time
}

// Stats are the headline numbers.
type Stats struct {
	TotalUsers       int   `json:"total_users"`
	Segments         int   `json:"segments"`
	TotalEvents      int   `json:"total_events"`
	TotalRules       int   `json:"total_rules"`
	TotalVisitors    int64 `json:"total_visitors"`
	UniqueVisitors   int64 `json:"unique_visitors"`
	VisitorsToday    int64 `json:"visitors_today"`
	VisitorsThisWeek int64 `json:"visitors_this_week"`
}

// Chart is a labelled series ready for Chart.js.
type Chart struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// Stats summarizes r. Missing parts count as zero.
func (r *Report) Stats() Stats {
	var s Stats
	if d := r.Remote; d != nil {
		s.TotalUsers = d.Segments.TotalUsers
		s.Segments = len(d.Segments.Distribution)
		s.TotalEvents = d.Events.TotalEvents
		s.TotalRules = d.Rules.TotalRules
	}
	if l := r.Local; l != nil {
		s.TotalVisitors = l.TotalVisitors
		s.UniqueVisitors = l.UniqueVisitors
		s.VisitorsToday = l.VisitorsToday
		s.VisitorsThisWeek = l.VisitorsThisWeek
	}
	return s
}

// SegmentChart is the segment distribution ordered by segment name.
func (r *Report) SegmentChart() Chart {
	if r.Remote == nil {
		return Chart{Labels: []string{}, Values: []int{}}
	}
	return chartFrom(r.Remote.Segments.Distribution, func(a, b entry) bool { return a.key < b.key }, 0)
}

// EventsChart is the top events, most frequent first, capped at
// MaxChartEvents.
func (r *Report) EventsChart() Chart {
	if r.Remote == nil {
		return Chart{Labels: []string{}, Values: []int{}}
	}
	return chartFrom(r.Remote.Events.TopEvents, func(a, b entry) bool {
		if a.value != b.value {
			return a.value > b.value
		}
		return a.key < b.key
	}, MaxChartEvents)
}

type entry struct {
	key   string
	value int
}

func chartFrom(m map[string]int, less func(a, b entry) bool, limit int) Chart {
	entries := make([]entry, 0, len(m))
	for k, v := range m {
		entries = append(entries, entry{k, v})
	}
	sort.Slice(entries, func(i, j int) bool { return less(entries[i], entries[j]) })
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	c := Chart{Labels: make([]string, len(entries)), Values: make([]int, len(entries))}
	for i, e := range entries {
		c.Labels[i] = ChartLabel(e.key)
		c.Values[i] = e.value
	}
	return c
}

// ChartLabel replaces the first underscore of a key with a space, so
// "job_seeker" reads "job seeker".
func ChartLabel(key string) string {
	return strings.Replace(key, "_", " ", 1)
}

// FormatCount groups digits the way tag's locale does.
func FormatCount(tag language.Tag, n int64) string {
	return message.NewPrinter(tag).Sprintf("%d", n)
}
