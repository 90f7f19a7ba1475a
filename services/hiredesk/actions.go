package hiredesk

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"launchpad/pkg/mulearn"
)

// ErrNotFound is returned when a referenced ledger entry does not exist.
var ErrNotFound = errors.New("hiredesk: invite not found")

// ErrMissingApplicationID is returned when an action requires an upstream
// application id the candidate does not have yet. Callers should disable the
// action rather than retry.
var ErrMissingApplicationID = errors.New("hiredesk: candidate has no application id")

// Publisher emits hire lifecycle events. Failures are non-fatal.
type Publisher interface {
	Publish(ctx context.Context, subject string, v any) error
}

// Invalidator marks cached query groups stale so the next read re-fetches.
type Invalidator interface {
	Invalidate(ctx context.Context, groups ...string) error
}

// Event subjects published on the bus.
const (
	SubjectInviteSent         = "launchpad.invites.sent"
	SubjectInterviewScheduled = "launchpad.interviews.scheduled"
	SubjectDecisionRecorded   = "launchpad.decisions.recorded"
)

// GroupHireRequests is the cache group for hire-request listings.
const GroupHireRequests = "hire-requests"

// GroupEligibleCandidates is the cache group for one job's eligible-candidate
// listing.
func GroupEligibleCandidates(jobID string) string {
	return "eligible-candidates:" + jobID
}

// Actions executes hire mutations: upstream call first, then the optimistic
// ledger update, then cache invalidation so the next fetch can correct any
// divergence. A failed upstream call leaves the ledger untouched.
type Actions struct {
	upstream *mulearn.Client
	bus      Publisher
	cache    Invalidator
}

// NewActions wires the action handlers. bus and cache may be nil.
func NewActions(upstream *mulearn.Client, bus Publisher, cache Invalidator) (*Actions, error) {
	if upstream == nil {
		return nil, errors.New("hiredesk: upstream client is required")
	}
	return &Actions{upstream: upstream, bus: bus, cache: cache}, nil
}

// SendInvite invites a candidate to a job and mirrors the new relationship in
// the ledger with status pending. If the pair already has an entry it is
// patched back to pending instead of duplicated.
func (a *Actions) SendInvite(ctx context.Context, token string, ledger *Ledger, job mulearn.JobOffer, candidate mulearn.Candidate) (JobInvite, error) {
	if err := a.upstream.SendInvitations(ctx, token, job.ID, []string{candidate.ID}); err != nil {
		return JobInvite{}, fmt.Errorf("send invite: %w", err)
	}

	invite := JobInvite{
		CandidateID:    candidate.ID,
		JobID:          job.ID,
		CandidateName:  candidate.FullName,
		CandidateEmail: candidate.Email,

		Title:           job.Title,
		CompanyID:       job.CompanyID,
		SalaryRange:     job.SalaryRange,
		Location:        job.Location,
		Experience:      job.Experience,
		Skills:          job.Skills,
		JobType:         job.JobType,
		InterestGroups:  job.InterestGroups,
		MinKarma:        job.MinKarma,
		TaskID:          job.TaskID,
		TaskDescription: job.TaskDescription,
		TaskHashtag:     job.TaskHashtag,
		TaskVerified:    job.TaskVerified,
		OpeningType:     job.OpeningType,

		Status: StatusPending,
	}

	entry, inserted := ledger.Append(invite)
	if !inserted {
		entry, _ = ledger.Patch(entry.ID, func(inv *JobInvite) {
			inv.Status = StatusPending
		})
	}

	a.invalidate(ctx, GroupEligibleCandidates(job.ID), GroupHireRequests)
	a.publish(ctx, SubjectInviteSent, map[string]any{
		"invite_id":    entry.ID,
		"job_id":       job.ID,
		"candidate_id": candidate.ID,
		"status":       entry.Status,
	})
	return entry, nil
}

// ScheduleInterview records interview details upstream and moves the invite
// to status interview. The invite must carry an application id.
func (a *Actions) ScheduleInterview(ctx context.Context, token string, ledger *Ledger, inviteID string, details mulearn.InterviewDetails) (JobInvite, error) {
	entry, ok := ledger.Get(inviteID)
	if !ok {
		return JobInvite{}, ErrNotFound
	}
	if entry.ApplicationID == "" {
		return JobInvite{}, ErrMissingApplicationID
	}

	details.ApplicationID = entry.ApplicationID
	if err := a.upstream.ScheduleInterview(ctx, token, details); err != nil {
		return JobInvite{}, fmt.Errorf("schedule interview: %w", err)
	}

	entry, _ = ledger.Patch(inviteID, func(inv *JobInvite) {
		inv.Status = StatusInterview
		inv.InterviewDate = details.Date
		inv.InterviewTime = details.Time
		inv.InterviewPlatform = details.Platform
		inv.InterviewLink = details.Link
	})

	a.invalidate(ctx, GroupEligibleCandidates(entry.JobID), GroupHireRequests)
	a.publish(ctx, SubjectInterviewScheduled, map[string]any{
		"invite_id":      entry.ID,
		"application_id": entry.ApplicationID,
		"interview_date": details.Date,
		"interview_time": details.Time,
	})
	return entry, nil
}

// Hire records an accepted final decision for the invite's application.
func (a *Actions) Hire(ctx context.Context, token string, ledger *Ledger, inviteID string) (JobInvite, error) {
	return a.decide(ctx, token, ledger, inviteID, mulearn.DecisionAccepted, StatusHired)
}

// Reject records a rejected final decision for the invite's application.
func (a *Actions) Reject(ctx context.Context, token string, ledger *Ledger, inviteID string) (JobInvite, error) {
	return a.decide(ctx, token, ledger, inviteID, mulearn.DecisionRejected, StatusRejected)
}

func (a *Actions) decide(ctx context.Context, token string, ledger *Ledger, inviteID string, decision mulearn.Decision, next Status) (JobInvite, error) {
	entry, ok := ledger.Get(inviteID)
	if !ok {
		return JobInvite{}, ErrNotFound
	}
	if entry.ApplicationID == "" {
		return JobInvite{}, ErrMissingApplicationID
	}

	if err := a.upstream.DecideApplication(ctx, token, entry.ApplicationID, decision); err != nil {
		return JobInvite{}, fmt.Errorf("decide application: %w", err)
	}

	entry, _ = ledger.Patch(inviteID, func(inv *JobInvite) {
		inv.Status = next
	})

	a.invalidate(ctx, GroupEligibleCandidates(entry.JobID), GroupHireRequests)
	a.publish(ctx, SubjectDecisionRecorded, map[string]any{
		"invite_id":      entry.ID,
		"application_id": entry.ApplicationID,
		"decision":       decision,
		"status":         entry.Status,
	})
	return entry, nil
}

func (a *Actions) publish(ctx context.Context, subject string, payload any) {
	if a.bus == nil {
		return
	}
	if err := a.bus.Publish(ctx, subject, payload); err != nil {
		log.Warn().Err(err).Str("subject", subject).Msg("publish hire event")
	}
}

func (a *Actions) invalidate(ctx context.Context, groups ...string) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Invalidate(ctx, groups...); err != nil {
		log.Warn().Err(err).Strs("groups", groups).Msg("invalidate cache groups")
	}
}
