package personalization

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/LocNguyenSGU/portfolio/internal/analytics"
	"github.com/LocNguyenSGU/portfolio/internal/dom"
)

const page = `<!DOCTYPE html><html><body><main>
<section id="hero"></section>
<section id="skills">
  <span data-skill="Spring Boot">Spring Boot</span>
  <span class="skill-tag"> PostgreSQL </span>
  <span class="skill">Docker</span>
</section>
<section id="projects">
  <div data-project-id="calligo"></div>
  <div data-project-id="sgu-test" style="position: absolute"></div>
  <div data-project-id="music-player"></div>
</section>
<section id="career"></section>
<section id="about"></section>
</main></body></html>`

func parse(t *testing.T) *dom.Document {
	t.Helper()
	doc, err := dom.ParseString(page)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	return doc
}

func sectionIDs(doc *dom.Document) []string {
	var ids []string
	for _, s := range doc.Sections() {
		ids = append(ids, s.ID())
	}
	return ids
}

func TestPriorityOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ids      []string
		priority []string
		want     []int
	}{
		{[]string{"hero", "skills", "projects", "career", "about"}, []string{"projects", "about"}, []int{2, 4, 0, 1, 3}},
		{[]string{"a", "b"}, nil, []int{0, 1}},
		{[]string{"a", "b", "c"}, []string{"c", "missing", "c", "a"}, []int{2, 0, 1}},
	}
	for _, tt := range tests {
		if got := PriorityOrder(tt.ids, tt.priority); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("PriorityOrder(%v, %v) = %v, want %v", tt.ids, tt.priority, got, tt.want)
		}
	}
}

func TestReorderSections(t *testing.T) {
	t.Parallel()

	doc := parse(t)
	ReorderSections(doc, []string{"projects", "about"})

	want := []string{"projects", "about", "hero", "skills", "career"}
	if got := sectionIDs(doc); !reflect.DeepEqual(got, want) {
		t.Fatalf("sections = %v, want %v", got, want)
	}
}

func TestMarkFeaturedIsIdempotent(t *testing.T) {
	t.Parallel()

	doc := parse(t)
	featured := []string{"calligo", "sgu-test"}
	if n := MarkFeatured(doc, featured, ""); n != 2 {
		t.Fatalf("first MarkFeatured = %d, want 2", n)
	}
	if n := MarkFeatured(doc, featured, ""); n != 0 {
		t.Fatalf("second MarkFeatured = %d, want 0", n)
	}

	for _, el := range doc.Projects() {
		id, _ := el.Attr(dom.AttrProjectID)
		badges := el.Children("." + BadgeClass)
		switch id {
		case "music-player":
			if len(badges) != 0 || el.HasClass(FeaturedClass) {
				t.Fatalf("%s marked unexpectedly", id)
			}
		default:
			if len(badges) != 1 {
				t.Fatalf("%s has %d badges, want 1", id, len(badges))
			}
			if badges[0].Text() != DefaultBadgeLabel {
				t.Fatalf("badge text = %q", badges[0].Text())
			}
			if el.Style("order") != "-1" {
				t.Fatalf("%s order = %q", id, el.Style("order"))
			}
		}
		if id == "calligo" && el.Style("position") != "relative" {
			t.Fatalf("calligo position = %q, want relative", el.Style("position"))
		}
		if id == "sgu-test" && el.Style("position") != "absolute" {
			t.Fatalf("sgu-test position = %q, want absolute", el.Style("position"))
		}
	}
}

func TestMarkSkillsBidirectional(t *testing.T) {
	t.Parallel()

	doc := parse(t)
	// "spring" is contained in the candidate; "postgresql database" contains
	// the candidate; "kubernetes" matches nothing.
	n := MarkSkills(doc, []string{"spring", "PostgreSQL database", "kubernetes", ""})
	if n != 2 {
		t.Fatalf("MarkSkills = %d, want 2", n)
	}
	for _, el := range doc.SkillCandidates() {
		want := !strings.Contains(el.Text(), "Docker")
		if got := el.HasClass(SkillClass); got != want {
			t.Fatalf("%q emphasized = %v, want %v", el.Text(), got, want)
		}
		if want && el.Style("font-weight") != "bold" {
			t.Fatalf("%q not bold", el.Text())
		}
	}
}

type fetcherFunc func(ctx context.Context, visitorID string) (RuleSet, error)

func (f fetcherFunc) Fetch(ctx context.Context, visitorID string) (RuleSet, error) {
	return f(ctx, visitorID)
}

type memorySink struct {
	events []analytics.Event
}

func (s *memorySink) Emit(_ context.Context, e analytics.Event) error {
	s.events = append(s.events, e)
	return nil
}

func TestApplierHTTP500LeavesDocumentUntouched(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	doc := parse(t)
	before, _ := doc.HTML()
	sink := &memorySink{}

	a := NewApplier(NewClient(srv.URL, srv.Client()), analytics.NewEmitter(sink, nil))
	if got := a.Run(context.Background(), doc, "v1"); got != FailedSilently {
		t.Fatalf("state = %v, want failed_silently", got)
	}
	after, _ := doc.HTML()
	if before != after {
		t.Fatal("document mutated after failed fetch")
	}
	if calls.Load() != 1 || len(sink.events) != 0 {
		t.Fatalf("calls=%d events=%d, want 1 and 0", calls.Load(), len(sink.events))
	}
}

func TestApplierAppliesOnceAndEmits(t *testing.T) {
	t.Parallel()

	var gotQuery atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/personalization" {
			http.NotFound(w, r)
			return
		}
		gotQuery.Store(r.URL.Query().Get("user_id"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"segment":"RECRUITER","priority_sections":["projects","about"],"featured_projects":["calligo"]}`))
	}))
	defer srv.Close()

	doc := parse(t)
	sink := &memorySink{}
	a := NewApplier(NewClient(srv.URL+"/api/", nil), analytics.NewEmitter(sink, nil), WithBadgeLabel("Featured"))

	if a.State() != Idle {
		t.Fatalf("initial state = %v", a.State())
	}
	if got := a.Run(context.Background(), doc, "GA1 & co"); got != Applied {
		t.Fatalf("state = %v, want applied", got)
	}
	if got, _ := gotQuery.Load().(string); got != "GA1 & co" {
		t.Fatalf("user_id = %q", got)
	}
	if a.Segment() != "RECRUITER" {
		t.Fatalf("Segment() = %q", a.Segment())
	}
	if got := sectionIDs(doc); got[0] != "projects" || got[1] != "about" {
		t.Fatalf("sections = %v", got)
	}
	if len(sink.events) != 1 || sink.events[0].Name != analytics.EventPersonalizationApplied {
		t.Fatalf("events = %+v", sink.events)
	}
	if sink.events[0].VisitorID != "GA1 & co" {
		t.Fatalf("event visitor = %q", sink.events[0].VisitorID)
	}

	// A second run on the same page load neither refetches nor re-emits.
	a.Run(context.Background(), doc, "GA1 & co")
	if len(sink.events) != 1 {
		t.Fatalf("events after rerun = %d", len(sink.events))
	}
}

func TestApplierTransportFailure(t *testing.T) {
	t.Parallel()

	doc := parse(t)
	failing := fetcherFunc(func(context.Context, string) (RuleSet, error) {
		return RuleSet{}, &FetchError{Err: errors.New("connection refused")}
	})
	a := NewApplier(failing, nil)
	if got := a.Run(context.Background(), doc, "v"); got != FailedSilently {
		t.Fatalf("state = %v", got)
	}
}

func TestClientDefaultsMissingFields(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"segment":"CASUAL"}`))
	}))
	defer srv.Close()

	rules, err := NewClient(srv.URL, nil).Fetch(context.Background(), "v")
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if rules.PrioritySections == nil || rules.FeaturedItems == nil || rules.HighlightSkills == nil {
		t.Fatalf("rules = %+v, want empty slices", rules)
	}

	var fe *FetchError
	_, err = NewClient("http://127.0.0.1:0", nil).Fetch(context.Background(), "v")
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FetchError", err)
	}
}
