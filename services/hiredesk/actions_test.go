package hiredesk_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"launchpad/pkg/mulearn"
	"launchpad/services/hiredesk"
)

type recordingBus struct {
	subjects []string
}

func (b *recordingBus) Publish(_ context.Context, subject string, _ any) error {
	b.subjects = append(b.subjects, subject)
	return nil
}

type recordingCache struct {
	groups []string
}

func (c *recordingCache) Invalidate(_ context.Context, groups ...string) error {
	c.groups = append(c.groups, groups...)
	return nil
}

// upstreamStub answers every request with the given envelope and counts calls.
func upstreamStub(t *testing.T, body string, calls *atomic.Int64) *mulearn.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls != nil {
			calls.Add(1)
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client, err := mulearn.New(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

const okEnvelope = `{"hasError":false,"statusCode":200,"response":{}}`
const failEnvelope = `{"hasError":true,"statusCode":500,"message":{"general":["backend exploded"]}}`

func TestSendInviteAppendsAndInvalidates(t *testing.T) {
	bus := &recordingBus{}
	cache := &recordingCache{}
	actions, err := hiredesk.NewActions(upstreamStub(t, okEnvelope, nil), bus, cache)
	if err != nil {
		t.Fatalf("new actions: %v", err)
	}

	ledger := hiredesk.NewLedger()
	entry, err := actions.SendInvite(context.Background(), "tok", ledger, syncJob, mulearn.Candidate{
		ID:       "stu-1",
		FullName: "Asha Nair",
	})
	if err != nil {
		t.Fatalf("send invite: %v", err)
	}

	if entry.Status != hiredesk.StatusPending {
		t.Fatalf("Status = %q, want pending", entry.Status)
	}
	if ledger.Len() != 1 {
		t.Fatalf("ledger has %d entries, want 1", ledger.Len())
	}
	if len(bus.subjects) != 1 || bus.subjects[0] != hiredesk.SubjectInviteSent {
		t.Fatalf("published subjects = %v", bus.subjects)
	}

	wantGroups := map[string]bool{
		hiredesk.GroupEligibleCandidates("job-1"): false,
		hiredesk.GroupHireRequests:                false,
	}
	for _, g := range cache.groups {
		if _, ok := wantGroups[g]; ok {
			wantGroups[g] = true
		}
	}
	for g, seen := range wantGroups {
		if !seen {
			t.Fatalf("cache group %q was not invalidated (got %v)", g, cache.groups)
		}
	}
}

func TestSendInviteFailureLeavesLedgerUntouched(t *testing.T) {
	actions, err := hiredesk.NewActions(upstreamStub(t, failEnvelope, nil), nil, nil)
	if err != nil {
		t.Fatalf("new actions: %v", err)
	}

	ledger := hiredesk.NewLedger()
	_, err = actions.SendInvite(context.Background(), "tok", ledger, syncJob, mulearn.Candidate{ID: "stu-1"})
	if err == nil {
		t.Fatal("expected upstream failure")
	}
	if ledger.Len() != 0 {
		t.Fatalf("ledger has %d entries after failed invite, want 0", ledger.Len())
	}
}

func TestSendInviteTwicePatchesInsteadOfDuplicating(t *testing.T) {
	actions, err := hiredesk.NewActions(upstreamStub(t, okEnvelope, nil), nil, nil)
	if err != nil {
		t.Fatalf("new actions: %v", err)
	}

	ledger := hiredesk.NewLedger()
	candidate := mulearn.Candidate{ID: "stu-1", FullName: "Asha Nair"}

	first, err := actions.SendInvite(context.Background(), "tok", ledger, syncJob, candidate)
	if err != nil {
		t.Fatalf("first invite: %v", err)
	}
	second, err := actions.SendInvite(context.Background(), "tok", ledger, syncJob, candidate)
	if err != nil {
		t.Fatalf("second invite: %v", err)
	}

	if ledger.Len() != 1 {
		t.Fatalf("ledger has %d entries, want 1", ledger.Len())
	}
	if first.ID != second.ID {
		t.Fatalf("second invite created a new entry: %q vs %q", first.ID, second.ID)
	}
}

func TestScheduleInterviewRequiresApplicationID(t *testing.T) {
	var calls atomic.Int64
	actions, err := hiredesk.NewActions(upstreamStub(t, okEnvelope, &calls), nil, nil)
	if err != nil {
		t.Fatalf("new actions: %v", err)
	}

	ledger := hiredesk.NewLedger()
	entry, _ := ledger.Append(hiredesk.JobInvite{
		CandidateID: "stu-1",
		JobID:       "job-1",
		Status:      hiredesk.StatusPending,
	})

	_, err = actions.ScheduleInterview(context.Background(), "tok", ledger, entry.ID, mulearn.InterviewDetails{
		Date: "2025-06-01", Time: "10:00", Platform: "Meet", Link: "https://meet.example.com/x",
	})
	if !errors.Is(err, hiredesk.ErrMissingApplicationID) {
		t.Fatalf("err = %v, want ErrMissingApplicationID", err)
	}
	if calls.Load() != 0 {
		t.Fatalf("upstream was called %d times, want 0", calls.Load())
	}

	after, _ := ledger.Get(entry.ID)
	if after.Status != hiredesk.StatusPending {
		t.Fatalf("Status = %q, want pending (ledger must be unchanged)", after.Status)
	}
}

func TestScheduleInterviewPatchesEntry(t *testing.T) {
	actions, err := hiredesk.NewActions(upstreamStub(t, okEnvelope, nil), nil, nil)
	if err != nil {
		t.Fatalf("new actions: %v", err)
	}

	ledger := hiredesk.NewLedger()
	entry, _ := ledger.Append(hiredesk.JobInvite{
		CandidateID:   "stu-1",
		JobID:         "job-1",
		ApplicationID: "app-1",
		Status:        hiredesk.StatusAccepted,
	})

	updated, err := actions.ScheduleInterview(context.Background(), "tok", ledger, entry.ID, mulearn.InterviewDetails{
		Date: "2025-06-01", Time: "10:00", Platform: "Meet", Link: "https://meet.example.com/x",
	})
	if err != nil {
		t.Fatalf("schedule interview: %v", err)
	}
	if updated.Status != hiredesk.StatusInterview {
		t.Fatalf("Status = %q, want interview", updated.Status)
	}
	if updated.InterviewDate != "2025-06-01" || updated.InterviewPlatform != "Meet" {
		t.Fatalf("interview fields not set: %+v", updated)
	}
}

func TestHireAndReject(t *testing.T) {
	tests := []struct {
		name string
		call func(a *hiredesk.Actions, ledger *hiredesk.Ledger, id string) (hiredesk.JobInvite, error)
		want hiredesk.Status
	}{
		{
			name: "hire",
			call: func(a *hiredesk.Actions, l *hiredesk.Ledger, id string) (hiredesk.JobInvite, error) {
				return a.Hire(context.Background(), "tok", l, id)
			},
			want: hiredesk.StatusHired,
		},
		{
			name: "reject",
			call: func(a *hiredesk.Actions, l *hiredesk.Ledger, id string) (hiredesk.JobInvite, error) {
				return a.Reject(context.Background(), "tok", l, id)
			},
			want: hiredesk.StatusRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions, err := hiredesk.NewActions(upstreamStub(t, okEnvelope, nil), nil, nil)
			if err != nil {
				t.Fatalf("new actions: %v", err)
			}

			ledger := hiredesk.NewLedger()
			entry, _ := ledger.Append(hiredesk.JobInvite{
				CandidateID:   "stu-1",
				JobID:         "job-1",
				ApplicationID: "app-1",
				Status:        hiredesk.StatusInterview,
			})

			updated, err := tt.call(actions, ledger, entry.ID)
			if err != nil {
				t.Fatalf("%s: %v", tt.name, err)
			}
			if updated.Status != tt.want {
				t.Fatalf("Status = %q, want %q", updated.Status, tt.want)
			}
		})
	}
}

func TestDecideFailureLeavesStatus(t *testing.T) {
	actions, err := hiredesk.NewActions(upstreamStub(t, failEnvelope, nil), nil, nil)
	if err != nil {
		t.Fatalf("new actions: %v", err)
	}

	ledger := hiredesk.NewLedger()
	entry, _ := ledger.Append(hiredesk.JobInvite{
		CandidateID:   "stu-1",
		JobID:         "job-1",
		ApplicationID: "app-1",
		Status:        hiredesk.StatusInterview,
	})

	if _, err := actions.Hire(context.Background(), "tok", ledger, entry.ID); err == nil {
		t.Fatal("expected upstream failure")
	}

	after, _ := ledger.Get(entry.ID)
	if after.Status != hiredesk.StatusInterview {
		t.Fatalf("Status = %q, want interview (unchanged)", after.Status)
	}
}

func TestActionsOnUnknownInvite(t *testing.T) {
	actions, err := hiredesk.NewActions(upstreamStub(t, okEnvelope, nil), nil, nil)
	if err != nil {
		t.Fatalf("new actions: %v", err)
	}

	ledger := hiredesk.NewLedger()
	if _, err := actions.Hire(context.Background(), "tok", ledger, "missing"); !errors.Is(err, hiredesk.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
