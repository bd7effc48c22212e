// Package personalization fetches segment rules for a visitor and applies
// them to the rendered page.
package personalization

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// RuleSet is the backend's answer for one visitor.
type RuleSet struct {
	Segment          string   `json:"segment"`
	PrioritySections []string `json:"priority_sections"`
	FeaturedItems    []string `json:"featured_projects"`
	HighlightSkills  []string `json:"highlight_skills"`
	Reasoning        string   `json:"reasoning,omitempty"`
}

func (r *RuleSet) normalize() {
	if r.PrioritySections == nil {
		r.PrioritySections = []string{}
	}
	if r.FeaturedItems == nil {
		r.FeaturedItems = []string{}
	}
	if r.HighlightSkills == nil {
		r.HighlightSkills = []string{}
	}
}

// FetchError reports a transport failure or a non-2xx status.
type FetchError struct {
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("personalization: status %d", e.StatusCode)
	}
	return fmt.Sprintf("personalization: %v", e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Fetcher returns the rule set for a visitor.
type Fetcher interface {
	Fetch(ctx context.Context, visitorID string) (RuleSet, error)
}

// Client calls GET <base>/personalization?user_id=<id>.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient builds a client. A nil http.Client means http.DefaultClient.
func NewClient(baseURL string, hc *http.Client) *Client {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Fetch issues exactly one request. It does not retry.
func (c *Client) Fetch(ctx context.Context, visitorID string) (RuleSet, error) {
	endpoint := c.baseURL + "/personalization?" + url.Values{"user_id": {visitorID}}.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return RuleSet{}, &FetchError{Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return RuleSet{}, &FetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return RuleSet{}, &FetchError{StatusCode: resp.StatusCode}
	}

	var rules RuleSet
	if err := json.NewDecoder(resp.Body).Decode(&rules); err != nil {
		return RuleSet{}, &FetchError{Err: fmt.Errorf("decode rules: %w", err)}
	}
	rules.normalize()
	return rules, nil
}
