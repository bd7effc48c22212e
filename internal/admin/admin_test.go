package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/language"

	"github.com/LocNguyenSGU/portfolio/internal/store"
)

const testToken = "good-token"

func fakeAPI(t *testing.T, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/admin/login", func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || r.Method != http.MethodPost {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		if req.Username != "admin" || req.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Incorrect username or password"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"` + testToken + `","token_type":"bearer"}`))
	})
	authed := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if hits != nil {
				hits.Add(1)
			}
			if r.Header.Get("Authorization") != "Bearer "+testToken {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"detail":"Not authenticated"}`))
				return
			}
			_, _ = w.Write([]byte(body))
		}
	}
	mux.HandleFunc("/api/admin/segments", authed(`{"total_users":42,"distribution":{"recruiter":20,"job_seeker":12,"student":10}}`))
	mux.HandleFunc("/api/admin/events", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("hours") != "24" {
			http.Error(w, "hours", http.StatusBadRequest)
			return
		}
		authed(`{"total_events":130,"top_events":{"project_click":70,"section_view":50,"skill_hover":10}}`)(w, r)
	})
	mux.HandleFunc("/api/admin/rules", authed(`{"total_rules":3}`))
	mux.HandleFunc("/api/admin/insights", authed(`{"insights":[{"segment":"recruiter","reasoning":"Recruiters open projects first","xai_explanation":{"what":"w","why":"y","so_what":"s","recommendation":"r"}},{"summary":"Traffic is steady"}]}`))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestLogin(t *testing.T) {
	t.Parallel()

	srv := fakeAPI(t, nil)
	c := NewClient(srv.URL+"/", srv.Client())

	token, err := c.Login(context.Background(), "admin", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token != testToken {
		t.Fatalf("token = %q", token)
	}

	_, err = c.Login(context.Background(), "admin", "wrong")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Detail != "Incorrect username or password" || !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("apiErr = %+v", apiErr)
	}
}

func TestDashboard(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := fakeAPI(t, &hits)
	c := NewClient(srv.URL, srv.Client())

	d, err := c.Dashboard(context.Background(), testToken)
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if hits.Load() != 4 {
		t.Fatalf("hits = %d, want 4", hits.Load())
	}
	if d.Segments.TotalUsers != 42 || d.Events.TotalEvents != 130 || d.Rules.TotalRules != 3 {
		t.Fatalf("dashboard = %+v", d)
	}
	if len(d.Insights.Insights) != 2 || d.Insights.Insights[0].Explanation.SoWhat != "s" {
		t.Fatalf("insights = %+v", d.Insights)
	}
	if in := d.Insights.Insights[1]; in.Title() != "General Insight" || in.Text() != "Traffic is steady" {
		t.Fatalf("fallbacks = %q / %q", in.Title(), in.Text())
	}
}

func TestDashboardUnauthorized(t *testing.T) {
	t.Parallel()

	srv := fakeAPI(t, nil)
	_, err := NewClient(srv.URL, srv.Client()).Dashboard(context.Background(), "stale")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
}

func TestDashboardServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL, srv.Client()).Dashboard(context.Background(), testToken)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("err = %v", err)
	}
	if errors.Is(err, ErrUnauthorized) {
		t.Fatal("502 must not read as unauthorized")
	}
}

func signed(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestCookieMaxAge(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		token   string
		want    int
		wantErr error
	}{
		{"exp in an hour", signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour))}), 3600, nil},
		{"no exp", signed(t, jwt.RegisteredClaims{Subject: "admin"}), 86400, nil},
		{"opaque", "not-a-jwt", 86400, nil},
		{"expired", signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))}), 0, ErrTokenExpired},
	}
	for _, tt := range tests {
		got, err := CookieMaxAge(tt.token, now)
		if !errors.Is(err, tt.wantErr) {
			t.Fatalf("%s: err = %v, want %v", tt.name, err, tt.wantErr)
		}
		if got != tt.want {
			t.Fatalf("%s: max age = %d, want %d", tt.name, got, tt.want)
		}
	}

	// Less than a second left would round to Max-Age 0.
	almost := signed(t, jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(now.Add(time.Second))})
	if got, err := CookieMaxAge(almost, now.Add(500*time.Millisecond)); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("sub-second token: max age = %d, err = %v, want ErrTokenExpired", got, err)
	}
	if got, err := CookieMaxAge(almost, now); err != nil || got != 1 {
		t.Fatalf("one second left: max age = %d, err = %v, want 1", got, err)
	}
}

func sampleReport() *Report {
	return &Report{
		Remote: &Dashboard{
			Segments: Segments{TotalUsers: 42, Distribution: map[string]int{"recruiter": 20, "job_seeker_extra": 12}},
			Events:   Events{TotalEvents: 5, TopEvents: map[string]int{"b": 2, "a": 2, "c": 1}},
			Rules:    Rules{TotalRules: 3},
			Insights: Insights{Insights: []Insight{{Segment: "recruiter", Reasoning: "r", Explanation: &Explanation{What: "w"}}}},
		},
		Local:       &store.VisitorStats{TotalVisitors: 9, UniqueVisitors: 4},
		LocalEvents: []store.EventCount{{Name: "project_click", Count: 7}},
		GeneratedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestReportCharts(t *testing.T) {
	t.Parallel()

	r := sampleReport()
	seg := r.SegmentChart()
	if strings.Join(seg.Labels, "|") != "job seeker_extra|recruiter" {
		t.Fatalf("segment labels = %v", seg.Labels)
	}
	ev := r.EventsChart()
	if strings.Join(ev.Labels, "|") != "a|b|c" || ev.Values[0] != 2 {
		t.Fatalf("events chart = %+v", ev)
	}

	top := map[string]int{}
	for i := 0; i < 15; i++ {
		top[string(rune('a'+i))] = i
	}
	r.Remote.Events.TopEvents = top
	if n := len(r.EventsChart().Labels); n != MaxChartEvents {
		t.Fatalf("events chart has %d bars, want %d", n, MaxChartEvents)
	}

	s := r.Stats()
	if s.TotalUsers != 42 || s.Segments != 2 || s.TotalRules != 3 || s.TotalVisitors != 9 {
		t.Fatalf("stats = %+v", s)
	}
	empty := (&Report{}).Stats()
	if empty != (Stats{}) {
		t.Fatalf("empty stats = %+v", empty)
	}
}

func TestFormatCount(t *testing.T) {
	t.Parallel()

	if got := FormatCount(language.English, 1234567); got != "1,234,567" {
		t.Fatalf("FormatCount = %q", got)
	}
}

func TestWriteWorkbook(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := WriteWorkbook(&buf, sampleReport()); err != nil {
		t.Fatalf("WriteWorkbook: %v", err)
	}
	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	want := []string{SheetSummary, SheetSegments, SheetEvents, SheetLocalEvents, SheetInsights}
	if got := f.GetSheetList(); strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("sheets = %v, want %v", got, want)
	}
	rows, err := f.GetRows(SheetSegments)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 3 || rows[2][0] != "recruiter" || rows[2][1] != "20" {
		t.Fatalf("segments rows = %v", rows)
	}
	local, _ := f.GetRows(SheetLocalEvents)
	if len(local) != 2 || local[1][0] != "project_click" || local[1][1] != "7" {
		t.Fatalf("site events rows = %v", local)
	}
	total, _ := f.GetCellValue(SheetSummary, "B3")
	if total != "42" {
		t.Fatalf("summary total_users = %q", total)
	}
}
