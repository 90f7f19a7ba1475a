package hiredesk

import (
	"time"

	"launchpad/pkg/mulearn"
)

// Sync walks a fresh eligible-candidates listing for the given job and makes
// sure every candidate whose upstream status implies an existing relationship
// (invited, interview_scheduled, applied) has a ledger entry. Existing entries
// are never mutated: status advancement is picked up by CandidateStatus
// reading the candidate record directly. Re-running Sync on the same inputs
// inserts nothing, so it is safe to call on every refresh.
//
// It returns the number of entries synthesized.
func Sync(ledger *Ledger, job mulearn.JobOffer, candidates []mulearn.Candidate) int {
	synthesized := 0
	for _, candidate := range candidates {
		if !impliesRelationship(candidate.ApplicationStatus) {
			continue
		}
		if _, exists := ledger.Find(candidate.ID, job.ID); exists {
			continue
		}

		invite := JobInvite{
			CandidateID:    candidate.ID,
			JobID:          job.ID,
			ApplicationID:  candidate.ApplicationID,
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

			Status:   seededStatus(candidate),
			SentDate: sentDate(candidate.Timeline),
			Links:    candidate.Links,
		}

		if _, inserted := ledger.Append(invite); inserted {
			synthesized++
		}
	}
	return synthesized
}

// sentDate prefers the upstream invited_at timestamp, falling back to now for
// entries inferred without one.
func sentDate(timeline mulearn.ApplicationTimeline) time.Time {
	if timeline.InvitedAt != "" {
		if ts, err := time.Parse(time.RFC3339, timeline.InvitedAt); err == nil {
			return ts.UTC()
		}
	}
	return time.Now().UTC()
}
