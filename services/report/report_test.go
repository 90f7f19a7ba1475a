package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"launchpad/pkg/mulearn"
)

func fixedNow() time.Time {
	return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
}

func TestHireRequestRows(t *testing.T) {
	requests := []mulearn.HireRequest{
		{
			ApplicationID: "app-1",
			Status:        "interview_scheduled",
			Job:           mulearn.JobOffer{ID: "job-1", Title: "Backend Engineer"},
			Student:       mulearn.Candidate{ID: "c-1", FullName: "Anand", Email: "anand@example.com"},
			Timeline:      mulearn.ApplicationTimeline{InvitedAt: "2025-05-01T10:00:00Z"},
			Interview:     &mulearn.InterviewDetails{Date: "2025-06-05", Time: "14:00"},
		},
		{
			ApplicationID: "app-2",
			Status:        "invited",
			Job:           mulearn.JobOffer{ID: "job-1", Title: "Backend Engineer"},
			Student:       mulearn.Candidate{ID: "c-2", FullName: "Binu"},
		},
	}

	rows := HireRequestRows(requests)
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "application_id" {
		t.Fatalf("missing header row: %v", rows[0])
	}
	if rows[1][1] != "interview_scheduled" || rows[1][9] != "2025-06-05" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if rows[2][9] != "" {
		t.Fatalf("row without interview should have empty date, got %q", rows[2][9])
	}
}

func TestHireSummary(t *testing.T) {
	requests := []mulearn.HireRequest{
		{
			Status:    "interview_scheduled",
			Job:       mulearn.JobOffer{ID: "job-1", Title: "Backend Engineer"},
			Student:   mulearn.Candidate{FullName: "Anand"},
			Interview: &mulearn.InterviewDetails{Date: "2025-06-05", Time: "14:00"},
		},
		{
			Status:  "accepted",
			Job:     mulearn.JobOffer{ID: "job-1", Title: "Backend Engineer"},
			Student: mulearn.Candidate{FullName: "Binu"},
		},
		{
			Status:  "invited",
			Job:     mulearn.JobOffer{ID: "job-2", Title: "Designer"},
			Student: mulearn.Candidate{FullName: "Chitra"},
		},
	}

	out, err := HireSummary("job-1", requests, fixedNow)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if !strings.Contains(out, "Backend Engineer") {
		t.Errorf("missing job title:\n%s", out)
	}
	if !strings.Contains(out, "Anand") || !strings.Contains(out, "Binu") {
		t.Errorf("missing candidates:\n%s", out)
	}
	if strings.Contains(out, "Chitra") {
		t.Errorf("other job's candidate leaked in:\n%s", out)
	}
	if !strings.Contains(out, "interviewing=1") || !strings.Contains(out, "hired=1") {
		t.Errorf("wrong counts:\n%s", out)
	}
}

func TestLeaderboardDigest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"hasError": false,
			"statusCode": 200,
			"response": {
				"data": [
					{"rank": 1, "full_name": "Anand", "karma": 4200, "org": "CET"},
					{"rank": 2, "full_name": "Binu", "karma": 3100, "org": "MEC"}
				],
				"pagination": {"count": 2, "totalPages": 1}
			}
		}`))
	}))
	defer srv.Close()

	client, err := mulearn.New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	out, err := LeaderboardDigest(context.Background(), DigestConfig{
		Upstream: client,
		Now:      fixedNow,
	})
	if err != nil {
		t.Fatalf("digest: %v", err)
	}

	if !strings.Contains(out, "1. Anand (4200 karma) - CET") {
		t.Errorf("missing first row:\n%s", out)
	}
	if !strings.Contains(out, "2. Binu") {
		t.Errorf("missing second row:\n%s", out)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "launchpadctl.yaml")
	content := "api_base_url: https://mulearn.org/api/v1\nbucket: launchpad-reports\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIBaseURL != "https://mulearn.org/api/v1" || cfg.Bucket != "launchpad-reports" {
		t.Fatalf("unexpected config: %+v", cfg)
	}

	if _, err := LoadFile(""); err != nil {
		t.Fatalf("empty path should not error: %v", err)
	}
}
