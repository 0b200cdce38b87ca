package jira

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchResolved_RequestShape(t *testing.T) {
	var gotPath, gotMethod, gotAuth string
	var gotBody searchRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		_, _ = w.Write([]byte(`{"issues":[]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "me@example.com", "secret")
	if _, err := client.SearchResolved(context.Background()); err != nil {
		t.Fatalf("SearchResolved() failed: %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotPath != "/rest/api/3/search/jql" {
		t.Errorf("path = %s, want /rest/api/3/search/jql", gotPath)
	}

	wantAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("me@example.com:secret"))
	if gotAuth != wantAuth {
		t.Errorf("Authorization = %q, want %q", gotAuth, wantAuth)
	}

	if gotBody.MaxResults != 100 {
		t.Errorf("maxResults = %d, want 100", gotBody.MaxResults)
	}
	if gotBody.JQL != searchJQL {
		t.Errorf("jql = %q, want the fixed clause", gotBody.JQL)
	}
	if len(gotBody.Fields) != 3 {
		t.Errorf("fields = %v, want summary/resolutiondate/status", gotBody.Fields)
	}
}

func TestSearchResolved_ParsesIssues(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"issues": [
				{"key": "X-9", "fields": {"summary": "Fix login bug", "resolutiondate": "2024-03-01T10:00:00.000+0000"}},
				{"key": "X-10", "fields": {"summary": "No date", "resolutiondate": null}}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "me@example.com", "secret")
	issues, err := client.SearchResolved(context.Background())
	if err != nil {
		t.Fatalf("SearchResolved() failed: %v", err)
	}

	if len(issues) != 2 {
		t.Fatalf("got %d issues, want 2", len(issues))
	}

	if issues[0].Key != "X-9" {
		t.Errorf("Key = %q, want X-9", issues[0].Key)
	}
	if issues[0].Summary != "Fix login bug" {
		t.Errorf("Summary = %q", issues[0].Summary)
	}
	if issues[0].ResolutionDate == nil {
		t.Error("ResolutionDate is nil, want parsed time")
	} else if got := issues[0].ResolutionDate.Format("2006-01-02"); got != "2024-03-01" {
		t.Errorf("ResolutionDate day = %s, want 2024-03-01", got)
	}
	if want := server.URL + "/browse/X-9"; issues[0].URL != want {
		t.Errorf("URL = %q, want %q", issues[0].URL, want)
	}

	if issues[1].ResolutionDate != nil {
		t.Errorf("ResolutionDate = %v, want nil for null resolutiondate", issues[1].ResolutionDate)
	}
}

func TestSearchResolved_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer server.Close()

	client := NewClient(server.URL, "me@example.com", "wrong")
	_, err := client.SearchResolved(context.Background())
	if err == nil {
		t.Fatal("SearchResolved() should fail on 401")
	}

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("StatusCode = %d, want 401", statusErr.StatusCode)
	}
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	client := NewClient("https://x.atlassian.net/", "e", "t")
	if client.baseURL != "https://x.atlassian.net" {
		t.Errorf("baseURL = %q, want trailing slash trimmed", client.baseURL)
	}
}
