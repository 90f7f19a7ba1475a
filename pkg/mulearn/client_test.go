package mulearn

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMessageUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "object with general list",
			input: `{"general":["first","second"]}`,
			want:  []string{"first", "second"},
		},
		{
			name:  "bare string",
			input: `"something went wrong"`,
			want:  []string{"something went wrong"},
		},
		{
			name:  "string list",
			input: `["a","b"]`,
			want:  []string{"a", "b"},
		},
		{
			name:  "null",
			input: `null`,
			want:  nil,
		},
		{
			name:  "empty string",
			input: `""`,
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Message
			if err := json.Unmarshal([]byte(tt.input), &m); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(m.General) != len(tt.want) {
				t.Fatalf("got %v, want %v", m.General, tt.want)
			}
			for i := range tt.want {
				if m.General[i] != tt.want[i] {
					t.Fatalf("got %v, want %v", m.General, tt.want)
				}
			}
		})
	}
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"hasError":false,"statusCode":200,"response":[]}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := c.ListJobs(context.Background(), "token-123", "company-1"); err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if gotAuth != "Bearer token-123" {
		t.Fatalf("Authorization = %q, want %q", gotAuth, "Bearer token-123")
	}
}

func TestClientErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"hasError":true,"statusCode":400,"message":{"general":["invalid credentials"]}}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = c.LoginCompany(context.Background(), "a@b.com", "nope")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != 400 {
		t.Fatalf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Messages[0] != "invalid credentials" {
		t.Fatalf("Messages = %v", apiErr.Messages)
	}
}

func TestListJobsReshapesWirePayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("company_id"); got != "co-9" {
			t.Errorf("company_id = %q, want co-9", got)
		}
		_, _ = w.Write([]byte(`{
			"hasError": false,
			"statusCode": 200,
			"response": [{
				"id": "job-1",
				"title": "Backend Engineer",
				"company_id": "co-9",
				"salary_range": "10-15 LPA",
				"job_type": "Full-time",
				"interest_groups": "Backend",
				"minimum_karma": 500,
				"opening_type": "General",
				"created_at": "2025-05-01"
			}]
		}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	offers, err := c.ListJobs(context.Background(), "tok", "co-9")
	if err != nil {
		t.Fatalf("list jobs: %v", err)
	}
	if len(offers) != 1 {
		t.Fatalf("got %d offers, want 1", len(offers))
	}
	offer := offers[0]
	if offer.ID != "job-1" || offer.Title != "Backend Engineer" {
		t.Fatalf("unexpected offer: %+v", offer)
	}
	if offer.MinKarma != 500 {
		t.Fatalf("MinKarma = %d, want 500", offer.MinKarma)
	}
	if offer.OpeningType != OpeningGeneral {
		t.Fatalf("OpeningType = %q, want General", offer.OpeningType)
	}
}

func TestListEligibleCandidatesSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"hasError":true,"statusCode":404,"message":{"general":["No matching tasks found for this job"]}}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	listing, err := c.ListEligibleCandidates(context.Background(), "tok", "job-1")
	if err != nil {
		t.Fatalf("expected sentinel handling, got error: %v", err)
	}
	if len(listing.Candidates) != 0 {
		t.Fatalf("expected no candidates, got %d", len(listing.Candidates))
	}
	if listing.Sentinel == "" {
		t.Fatal("expected sentinel message to be preserved")
	}
}

func TestListEligibleCandidatesDecodesListing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"hasError": false,
			"statusCode": 200,
			"response": {
				"job_info": {"id": "job-1", "title": "Backend Engineer", "minimum_karma": 500},
				"data": [{
					"id": "stu-1",
					"full_name": "Asha Nair",
					"muid": "asha@mulearn",
					"karma": 1200,
					"application_status": "invited",
					"application_timeline": {"invited_at": "2025-05-02T10:00:00Z"}
				}],
				"pagination": {"count": 1, "totalPages": 1, "isNext": false, "isPrev": false}
			}
		}`))
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	listing, err := c.ListEligibleCandidates(context.Background(), "tok", "job-1")
	if err != nil {
		t.Fatalf("list eligible candidates: %v", err)
	}
	if listing.JobInfo.ID != "job-1" {
		t.Fatalf("JobInfo.ID = %q", listing.JobInfo.ID)
	}
	if len(listing.Candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(listing.Candidates))
	}
	cand := listing.Candidates[0]
	if cand.ApplicationStatus != ApplicationInvited {
		t.Fatalf("ApplicationStatus = %q", cand.ApplicationStatus)
	}
	if cand.Timeline.InvitedAt == "" {
		t.Fatal("expected invited_at to be decoded")
	}
}

func TestLeaderboardSearchTooShort(t *testing.T) {
	c, err := New("http://example.invalid")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if _, err := c.Leaderboard(context.Background(), LeaderboardQuery{Search: "ab"}); err == nil {
		t.Fatal("expected error for two-character search")
	}
}

func TestDecideApplicationValidation(t *testing.T) {
	c, err := New("http://example.invalid")
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	if err := c.DecideApplication(context.Background(), "tok", "", DecisionAccepted); err == nil {
		t.Fatal("expected error for missing application id")
	}
	if err := c.DecideApplication(context.Background(), "tok", "app-1", Decision("maybe")); err == nil {
		t.Fatal("expected error for invalid decision")
	}
}
