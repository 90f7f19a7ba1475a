package hiredesk_test

import (
	"testing"

	"launchpad/pkg/mulearn"
	"launchpad/services/hiredesk"
)

func TestCandidateStatus(t *testing.T) {
	tests := []struct {
		name      string
		candidate mulearn.Candidate
		invite    *hiredesk.JobInvite
		want      hiredesk.Status
	}{
		{
			name:      "no status means no invite",
			candidate: mulearn.Candidate{},
			want:      hiredesk.StatusNoInvite,
		},
		{
			name:      "not_invited means no invite",
			candidate: mulearn.Candidate{ApplicationStatus: "not_invited"},
			want:      hiredesk.StatusNoInvite,
		},
		{
			name:      "invited maps to pending",
			candidate: mulearn.Candidate{ApplicationStatus: "invited"},
			want:      hiredesk.StatusPending,
		},
		{
			name: "applied with timestamp maps to accepted",
			candidate: mulearn.Candidate{
				ApplicationStatus: "applied",
				Timeline:          mulearn.ApplicationTimeline{AppliedAt: "2025-05-02T10:00:00Z"},
			},
			want: hiredesk.StatusAccepted,
		},
		{
			name:      "applied without timestamp falls through to no invite",
			candidate: mulearn.Candidate{ApplicationStatus: "applied"},
			want:      hiredesk.StatusNoInvite,
		},
		{
			name:      "interview_scheduled maps to interview",
			candidate: mulearn.Candidate{ApplicationStatus: "interview_scheduled"},
			want:      hiredesk.StatusInterview,
		},
		{
			name:      "accepted maps to hired",
			candidate: mulearn.Candidate{ApplicationStatus: "accepted"},
			want:      hiredesk.StatusHired,
		},
		{
			name:      "unknown status maps to no invite",
			candidate: mulearn.Candidate{ApplicationStatus: "on_hold"},
			want:      hiredesk.StatusNoInvite,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hiredesk.CandidateStatus(tt.candidate, tt.invite)
			if got != tt.want {
				t.Fatalf("CandidateStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCandidateStatusLocalRejectionWins(t *testing.T) {
	rejected := &hiredesk.JobInvite{Status: hiredesk.StatusRejected}

	// The override beats every upstream status, including advancement the
	// upstream reported after the local rejection.
	upstreamStatuses := []string{"invited", "applied", "interview_scheduled", "accepted", ""}
	for _, status := range upstreamStatuses {
		candidate := mulearn.Candidate{
			ApplicationStatus: status,
			Timeline:          mulearn.ApplicationTimeline{AppliedAt: "2025-05-02T10:00:00Z"},
		}
		if got := hiredesk.CandidateStatus(candidate, rejected); got != hiredesk.StatusRejected {
			t.Errorf("CandidateStatus(status=%q, rejected invite) = %q, want rejected", status, got)
		}
	}
}

func TestCandidateStatusNonRejectedInviteDoesNotOverride(t *testing.T) {
	pending := &hiredesk.JobInvite{Status: hiredesk.StatusPending}
	candidate := mulearn.Candidate{ApplicationStatus: "interview_scheduled"}

	if got := hiredesk.CandidateStatus(candidate, pending); got != hiredesk.StatusInterview {
		t.Fatalf("CandidateStatus() = %q, want interview (ledger entry must not mask upstream advancement)", got)
	}
}

func TestParseStatus(t *testing.T) {
	valid := []string{"no_invite", "pending", "accepted", "interview", "hired", "rejected"}
	for _, s := range valid {
		got, err := hiredesk.ParseStatus(s)
		if err != nil {
			t.Errorf("ParseStatus(%q) returned unexpected error: %v", s, err)
		}
		if string(got) != s {
			t.Errorf("ParseStatus(%q) = %q, want %q", s, got, s)
		}
	}

	if _, err := hiredesk.ParseStatus("offer"); err == nil {
		t.Error("ParseStatus(\"offer\") expected error, got nil")
	}
	if _, err := hiredesk.ParseStatus(""); err == nil {
		t.Error("ParseStatus(\"\") expected error, got nil")
	}
}
