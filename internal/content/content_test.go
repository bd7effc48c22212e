package content

import (
	"strings"
	"testing"
	"time"

	"github.com/LocNguyenSGU/portfolio/internal/dom"
	"github.com/LocNguyenSGU/portfolio/internal/i18n"
)

var fixedNow = time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC)

func resolver(t *testing.T, locale string) *i18n.Resolver {
	t.Helper()
	c, err := i18n.LoadCatalog("vi")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	return i18n.NewResolver(c, locale, nil)
}

func TestSortAndFilterProjects(t *testing.T) {
	t.Parallel()

	projects := []Project{
		{ID: "old", StartDate: "01/01/2023"},
		{ID: "new", StartDate: "01/06/2025", Impressive: true},
		{ID: "mid-a", StartDate: "01/01/2024", Impressive: true},
		{ID: "mid-b", StartDate: "01/01/2024"},
		{ID: "broken", StartDate: "yesterday"},
	}
	sorted := SortProjects(projects, fixedNow)
	var ids []string
	for _, p := range sorted {
		ids = append(ids, p.ID)
	}
	if got := strings.Join(ids, ","); got != "new,mid-a,mid-b,old,broken" {
		t.Fatalf("sorted = %s", got)
	}
	if projects[0].ID != "old" {
		t.Fatal("SortProjects mutated its input")
	}

	impressive := FilterProjects(sorted, FilterImpressive)
	if len(impressive) != 2 || impressive[0].ID != "new" {
		t.Fatalf("impressive = %v", impressive)
	}
	if len(FilterProjects(sorted, FilterAll)) != 5 {
		t.Fatal("FilterAll dropped projects")
	}

	left, right := SplitColumns(sorted)
	if len(left) != 3 || len(right) != 2 || right[0].ID != "mid-a" {
		t.Fatalf("columns = %v / %v", left, right)
	}
}

func TestParseFilter(t *testing.T) {
	t.Parallel()

	if ParseFilter(" Impressive ") != FilterImpressive || ParseFilter("anything") != FilterAll || ParseFilter("") != FilterAll {
		t.Fatal("ParseFilter mismatch")
	}
}

func TestDurations(t *testing.T) {
	t.Parallel()

	en := resolver(t, "en")
	vi := resolver(t, "vi")

	tests := []struct {
		start, end string
		tr         Translator
		want       string
	}{
		{"Jan 2026", Present, en, "< 1 month"},
		{"Dec 2025", Present, en, "1 month"},
		{"Sep 2025", Present, en, "4 months"},
		{"Jan 2025", Present, en, "1 year"},
		{"Oct 2023", "Jan 2026", en, "2 years 3 months"},
		{"Sep 2025", Present, vi, "4 tháng"},
		{"Nov 2024", "Jan 2026", vi, "1 năm 2 tháng"},
	}
	for _, tt := range tests {
		c := CareerEntry{StartDate: tt.start, EndDate: tt.end}
		if got := CareerDuration(c, fixedNow, tt.tr); got != tt.want {
			t.Fatalf("CareerDuration(%s..%s) = %q, want %q", tt.start, tt.end, got, tt.want)
		}
	}

	p := Project{StartDate: "01/07/2025", EndDate: Now}
	if got := ProjectDuration(p, fixedNow, en); got != "6 months" {
		t.Fatalf("ProjectDuration = %q", got)
	}
	p = Project{StartDate: "01/07/2023", EndDate: "20/07/2023"}
	if got := ProjectDuration(p, fixedNow, vi); got != "< 1 tháng" {
		t.Fatalf("ProjectDuration(short) = %q", got)
	}
	if got := FormatProjectDate("23/02/2025", en); got != "Feb 2025" {
		t.Fatalf("FormatProjectDate = %q", got)
	}
	if got := FormatProjectDate(Now, vi); got != "Hiện tại" {
		t.Fatalf("FormatProjectDate(Now) = %q", got)
	}
}

const shell = `<html><body><main>
<button id="filter-all" class="bg-white"></button><button id="filter-impressive" class="bg-primary text-white"></button>
<p id="project-count"></p>
<div id="projects-container"></div>
<div id="career-container"></div>
</main></body></html>`

func TestRenderIntoAndFollowLocale(t *testing.T) {
	t.Parallel()

	doc, err := dom.ParseString(shell)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	res := resolver(t, "vi")
	res.Bind(doc)

	r := NewRenderer(res, func() time.Time { return fixedNow })
	if err := r.RenderInto(doc, FilterAll); err != nil {
		t.Fatalf("RenderInto: %v", err)
	}
	var followErr error
	r.Follow(res, doc, FilterAll, func(err error) { followErr = err })

	if got := doc.ByID(ProjectCountID).Text(); got != "Tất cả 11 dự án" {
		t.Fatalf("count = %q", got)
	}
	if n := len(doc.Projects()); n != len(Projects) {
		t.Fatalf("rendered %d projects, want %d", n, len(Projects))
	}
	if !doc.ByID(FilterAllID).HasClass("bg-primary") || doc.ByID(FilterImpressiveID).HasClass("bg-primary") {
		t.Fatal("filter buttons not flagged")
	}
	if len(doc.FindAll("[data-career-company]")) != len(Career) {
		t.Fatal("career entries missing")
	}

	res.SetLocale("en")
	if followErr != nil {
		t.Fatalf("follow: %v", followErr)
	}
	if got := doc.ByID(ProjectCountID).Text(); got != "All 11 projects" {
		t.Fatalf("count after switch = %q", got)
	}
	html, _ := doc.HTML()
	if !strings.Contains(html, "What I Learned") {
		t.Fatal("project cards not re-rendered in English")
	}
}

func TestRenderImpressiveAndEmpty(t *testing.T) {
	t.Parallel()

	en := resolver(t, "en")
	r := NewRendererFor(en, func() time.Time { return fixedNow }, []Project{{ID: "a", StartDate: "01/01/2024", EndDate: "01/03/2024"}}, nil)
	if got := r.ProjectCount(FilterImpressive); got != "0 impressive projects" {
		t.Fatalf("ProjectCount = %q", got)
	}
	html, err := r.ProjectsHTML(FilterImpressive)
	if err != nil {
		t.Fatalf("ProjectsHTML: %v", err)
	}
	if !strings.Contains(html, "No projects found.") {
		t.Fatalf("empty html = %s", html)
	}
}
