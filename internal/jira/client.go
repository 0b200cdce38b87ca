// Package jira implements the minimal Jira Cloud client used to fetch
// recently resolved issues for the current account.
package jira

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxResults bounds the search to a single page. Result sets larger
// than one page are truncated; the sync does not paginate.
const maxResults = 100

// searchJQL selects issues assigned to the current account, closed in
// one of the terminal statuses, and resolved within the last 30 days.
const searchJQL = `assignee WAS currentUser() AND status IN (Done, Closed, Resolved) AND resolved >= -30d`

// Issue is one issue from a search response, reduced to the fields the
// sync needs.
type Issue struct {
	Key            string
	Summary        string
	ResolutionDate *time.Time
	URL            string
}

// StatusError is a non-2xx response from Jira.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("jira returned status %d", e.StatusCode)
}

// Client talks to one Jira Cloud site using basic auth
// (email + API token).
type Client struct {
	baseURL string
	email   string
	token   string
	client  *http.Client
}

// NewClient creates a client for the given site.
//
// baseURL is the site root (e.g. https://company.atlassian.net);
// a trailing slash is tolerated.
func NewClient(baseURL, email, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		email:   email,
		token:   token,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// searchRequest is the POST body for /rest/api/3/search/jql.
type searchRequest struct {
	JQL        string   `json:"jql"`
	MaxResults int      `json:"maxResults"`
	Fields     []string `json:"fields"`
}

// searchResponse is the subset of the search payload the sync reads.
type searchResponse struct {
	Issues []struct {
		Key    string `json:"key"`
		Fields struct {
			Summary        string  `json:"summary"`
			ResolutionDate *string `json:"resolutiondate"`
		} `json:"fields"`
	} `json:"issues"`
}

// SearchResolved fetches one page of recently resolved issues assigned
// to the configured account.
//
// Any non-2xx response aborts with a *StatusError carrying the status
// code; no retry is attempted.
func (c *Client) SearchResolved(ctx context.Context) ([]Issue, error) {
	body, err := json.Marshal(searchRequest{
		JQL:        searchJQL,
		MaxResults: maxResults,
		Fields:     []string{"summary", "resolutiondate", "status"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/rest/api/3/search/jql", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}

	auth := base64.StdEncoding.EncodeToString([]byte(c.email + ":" + c.token))
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jira request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	issues := make([]Issue, 0, len(payload.Issues))
	for _, raw := range payload.Issues {
		issue := Issue{
			Key:     raw.Key,
			Summary: raw.Fields.Summary,
			URL:     fmt.Sprintf("%s/browse/%s", c.baseURL, raw.Key),
		}
		if raw.Fields.ResolutionDate != nil {
			if t, err := parseJiraTime(*raw.Fields.ResolutionDate); err == nil {
				issue.ResolutionDate = &t
			}
		}
		issues = append(issues, issue)
	}

	return issues, nil
}

// parseJiraTime accepts both RFC 3339 and Jira's compact offset format
// (2024-03-01T10:00:00.000+0000).
func parseJiraTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05.000-0700", s)
}
