package gateway

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"launchpad/pkg/mulearn"
	"launchpad/services/hiredesk"
)

func TestBuildCandidateViews(t *testing.T) {
	ledger := hiredesk.NewLedger()
	job := mulearn.JobOffer{ID: "job-1", Title: "Backend Engineer"}
	candidates := []mulearn.Candidate{
		{ID: "c-1", FullName: "Anand", ApplicationStatus: mulearn.ApplicationInvited},
		{ID: "c-2", FullName: "Binu"},
		{ID: "c-3", FullName: "Chitra", ApplicationStatus: mulearn.ApplicationInterviewScheduled, ApplicationID: "app-3"},
	}

	views := buildCandidateViews(ledger, job, candidates)
	if len(views) != 3 {
		t.Fatalf("got %d views, want 3", len(views))
	}

	if views[0].Status != hiredesk.StatusPending {
		t.Errorf("invited candidate status = %q, want pending", views[0].Status)
	}
	if views[0].InviteID == "" {
		t.Error("invited candidate should have a ledger entry")
	}
	if views[1].Status != hiredesk.StatusNoInvite {
		t.Errorf("untouched candidate status = %q, want no_invite", views[1].Status)
	}
	if views[1].InviteID != "" {
		t.Error("untouched candidate should not have a ledger entry")
	}
	if views[2].Status != hiredesk.StatusInterview {
		t.Errorf("scheduled candidate status = %q, want interview", views[2].Status)
	}
}

func TestBuildCandidateViewsLocalRejectionWins(t *testing.T) {
	ledger := hiredesk.NewLedger()
	job := mulearn.JobOffer{ID: "job-1"}
	candidates := []mulearn.Candidate{
		{ID: "c-1", ApplicationStatus: mulearn.ApplicationInvited},
	}

	views := buildCandidateViews(ledger, job, candidates)
	if _, ok := ledger.Patch(views[0].InviteID, func(inv *hiredesk.JobInvite) {
		inv.Status = hiredesk.StatusRejected
	}); !ok {
		t.Fatal("patch failed")
	}

	views = buildCandidateViews(ledger, job, candidates)
	if views[0].Status != hiredesk.StatusRejected {
		t.Fatalf("status = %q, want rejected", views[0].Status)
	}
}

func TestLedgerStoreSweep(t *testing.T) {
	store := newLedgerStore()
	staleID := uuid.New()
	freshID := uuid.New()

	store.get(staleID)
	store.mu.Lock()
	store.lastUsed[staleID] = time.Now().Add(-2 * time.Hour)
	store.mu.Unlock()
	store.get(freshID)

	if dropped := store.sweep(time.Hour); dropped != 1 {
		t.Fatalf("dropped = %d, want 1", dropped)
	}

	store.mu.Lock()
	_, staleAlive := store.ledgers[staleID]
	_, freshAlive := store.ledgers[freshID]
	store.mu.Unlock()

	if staleAlive {
		t.Error("stale ledger survived sweep")
	}
	if !freshAlive {
		t.Error("fresh ledger was swept")
	}
}

func TestLedgerStoreGetIsStable(t *testing.T) {
	store := newLedgerStore()
	id := uuid.New()

	first := store.get(id)
	first.Append(hiredesk.JobInvite{CandidateID: "c-1", JobID: "job-1"})

	second := store.get(id)
	if second.Len() != 1 {
		t.Fatalf("ledger not shared across gets: len = %d", second.Len())
	}
}

func TestRespondActionErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", hiredesk.ErrNotFound, http.StatusNotFound},
		{"missing application id", hiredesk.ErrMissingApplicationID, http.StatusConflict},
		{"upstream envelope", &mulearn.APIError{StatusCode: 401, Messages: []string{"bad token"}}, http.StatusUnauthorized},
		{"upstream bogus status", &mulearn.APIError{StatusCode: 200}, http.StatusBadGateway},
		{"transport", errors.New("dial tcp: refused"), http.StatusBadGateway},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respondActionError(rec, tc.err)
			if rec.Code != tc.status {
				t.Fatalf("status = %d, want %d", rec.Code, tc.status)
			}
		})
	}
}

func TestParseUserType(t *testing.T) {
	if _, err := parseUserType("company"); err != nil {
		t.Errorf("company: %v", err)
	}
	if _, err := parseUserType("recruiter"); err != nil {
		t.Errorf("recruiter: %v", err)
	}
	if _, err := parseUserType("student"); err == nil {
		t.Error("student should be rejected")
	}
}

func TestComputeStats(t *testing.T) {
	requests := []mulearn.HireRequest{
		{Status: mulearn.ApplicationInvited},
		{Status: mulearn.ApplicationApplied},
		{Status: mulearn.ApplicationInterviewScheduled},
		{Status: mulearn.ApplicationAccepted},
	}

	stats := computeStats(requests)
	if stats.TotalApplications != 4 {
		t.Fatalf("total = %d, want 4", stats.TotalApplications)
	}
	if stats.Invited != 2 || stats.Interviewing != 1 || stats.Hired != 1 {
		t.Fatalf("unexpected breakdown: %+v", stats)
	}
	if stats.HiringRate != 25 {
		t.Fatalf("hiring rate = %v, want 25", stats.HiringRate)
	}

	if empty := computeStats(nil); empty.HiringRate != 0 {
		t.Fatalf("empty rate = %v, want 0", empty.HiringRate)
	}
}

func TestSanitizeField(t *testing.T) {
	if got := sanitizeField("  <script>alert(1)</script>Backend  "); got != "Backend" {
		t.Fatalf("sanitizeField = %q, want Backend", got)
	}
	if got := sanitizeField("10-15 LPA"); got != "10-15 LPA" {
		t.Fatalf("sanitizeField = %q", got)
	}
}
