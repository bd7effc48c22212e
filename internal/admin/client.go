// Package admin talks to the personalization backend's admin API and shapes
// its answers for the dashboard.
package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrUnauthorized is matched by any APIError carrying a 401.
var ErrUnauthorized = errors.New("admin: unauthorized")

// APIError is a non-2xx answer from the admin API.
type APIError struct {
	Endpoint   string
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("admin: %s: %d %s", e.Endpoint, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("admin: %s: %d %s", e.Endpoint, e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *APIError) Is(target error) bool {
	return target == ErrUnauthorized && e.StatusCode == http.StatusUnauthorized
}

// Segments is the answer of /api/admin/segments.
type Segments struct {
	TotalUsers   int            `json:"total_users"`
	Distribution map[string]int `json:"distribution"`
}

// Events is the answer of /api/admin/events.
type Events struct {
	TotalEvents int            `json:"total_events"`
	TopEvents   map[string]int `json:"top_events"`
}

// Rules is the answer of /api/admin/rules.
type Rules struct {
	TotalRules int `json:"total_rules"`
}

// Explanation is the structured reasoning attached to an insight.
type Explanation struct {
	What           string `json:"what"`
	Why            string `json:"why"`
	SoWhat         string `json:"so_what"`
	Recommendation string `json:"recommendation"`
}

// Insight is one analysis result.
type Insight struct {
	Segment     string       `json:"segment"`
	Reasoning   string       `json:"reasoning"`
	Summary     string       `json:"summary"`
	Explanation *Explanation `json:"xai_explanation,omitempty"`
}

// Title falls back to a generic heading for unsegmented insights.
func (i Insight) Title() string {
	if i.Segment == "" {
		return "General Insight"
	}
	return i.Segment
}

// Text prefers the reasoning over the summary.
func (i Insight) Text() string {
	if i.Reasoning != "" {
		return i.Reasoning
	}
	return i.Summary
}

// Insights is the answer of /api/admin/insights.
type Insights struct {
	Insights []Insight `json:"insights"`
}

// Dashboard bundles the four admin answers.
type Dashboard struct {
	Segments Segments
	Events   Events
	Rules    Rules
	Insights Insights
}

// Client calls the admin API.
type Client struct {
	baseURL string
	hc      *http.Client
}

// NewClient returns a client for the API rooted at baseURL. A nil hc gets a
// client with a 10s timeout.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), hc: hc}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
}

// Login exchanges credentials for an access token.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return "", fmt.Errorf("admin: encode login: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/admin/login", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("admin: build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var out loginResponse
	if err := c.do(req, "/api/admin/login", &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errors.New("admin: login: empty access token")
	}
	return out.AccessToken, nil
}

// Dashboard fetches segments, the last 24 hours of events, rules and
// insights concurrently. The first failure cancels the rest.
func (c *Client) Dashboard(ctx context.Context, token string) (*Dashboard, error) {
	var d Dashboard
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.get(ctx, token, "/api/admin/segments", &d.Segments) })
	g.Go(func() error { return c.get(ctx, token, "/api/admin/events?hours=24", &d.Events) })
	g.Go(func() error { return c.get(ctx, token, "/api/admin/rules", &d.Rules) })
	g.Go(func() error { return c.get(ctx, token, "/api/admin/insights", &d.Insights) })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) get(ctx context.Context, token, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("admin: build request %s: %w", endpoint, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, endpoint, out)
}

func (c *Client) do(req *http.Request, endpoint string, out any) error {
	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("admin: %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode}
		var body struct {
			Detail string `json:"detail"`
		}
		if data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil && json.Unmarshal(data, &body) == nil {
			apiErr.Detail = body.Detail
		}
		return apiErr
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("admin: decode %s: %w", endpoint, err)
	}
	return nil
}
