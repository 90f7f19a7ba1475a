// Package hiredesk holds the hiring-desk core: the per-session invite ledger,
// the candidate status reconciliation rules, and the action handlers that
// mutate upstream state and mirror it locally.
//
// Display status for a (candidate, job) pair:
//
//	no_invite ──► pending ──► accepted ──► interview ──► hired
//	                  │             │            │
//	                  └─────────────┴────────────┴──► rejected
//
// The upstream is authoritative for everything except rejection, which only
// exists as a local ledger marking in this flow.
package hiredesk

import (
	"fmt"

	"launchpad/pkg/mulearn"
)

// Status is the single display status derived for a candidate on a job.
type Status string

const (
	StatusNoInvite  Status = "no_invite"
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusInterview Status = "interview"
	StatusHired     Status = "hired"
	StatusRejected  Status = "rejected"
)

// ParseStatus converts a raw string to a Status, returning an error for
// unknown values.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusNoInvite, StatusPending, StatusAccepted, StatusInterview, StatusHired, StatusRejected:
		return st, nil
	}
	return "", fmt.Errorf("unknown hire status %q", s)
}

// CandidateStatus reconciles the upstream's application status with the local
// ledger entry for the same (candidate, job) pair. A local rejected marking
// always wins; otherwise the upstream fields decide, in this exact order:
//
//  1. interview_scheduled            → interview
//  2. applied with applied_at set    → accepted
//  3. invited                        → pending
//  4. accepted                       → hired
//  5. anything else                  → no_invite
//
// An "applied" status with no applied_at timestamp deliberately falls through
// to no_invite, matching upstream behaviour.
func CandidateStatus(candidate mulearn.Candidate, invite *JobInvite) Status {
	if invite != nil && invite.Status == StatusRejected {
		return StatusRejected
	}
	switch {
	case candidate.ApplicationStatus == mulearn.ApplicationInterviewScheduled:
		return StatusInterview
	case candidate.ApplicationStatus == mulearn.ApplicationApplied && candidate.Timeline.AppliedAt != "":
		return StatusAccepted
	case candidate.ApplicationStatus == mulearn.ApplicationInvited:
		return StatusPending
	case candidate.ApplicationStatus == mulearn.ApplicationAccepted:
		return StatusHired
	default:
		return StatusNoInvite
	}
}

// seededStatus derives the status for a ledger entry synthesized from an
// upstream candidate record: the CandidateStatus rules restricted to the
// status/timeline inspection, with no local override in play.
func seededStatus(candidate mulearn.Candidate) Status {
	switch {
	case candidate.ApplicationStatus == mulearn.ApplicationInterviewScheduled:
		return StatusInterview
	case candidate.Timeline.AppliedAt != "":
		return StatusAccepted
	default:
		return StatusPending
	}
}

// impliesRelationship reports whether the upstream status means an invite
// relationship already exists and must be mirrored locally.
func impliesRelationship(applicationStatus string) bool {
	switch applicationStatus {
	case mulearn.ApplicationInvited, mulearn.ApplicationInterviewScheduled, mulearn.ApplicationApplied:
		return true
	}
	return false
}
