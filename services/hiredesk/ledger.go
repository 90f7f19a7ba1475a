package hiredesk

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"launchpad/pkg/mulearn"
)

// JobInvite mirrors one hiring relationship between a candidate and a job.
// Job display fields are denormalized copies taken from the offer at creation
// time; CandidateID/JobID/ApplicationID may be empty on entries built from
// partial upstream data.
type JobInvite struct {
	ID            string `json:"id"`
	CandidateID   string `json:"candidate_id,omitempty"`
	JobID         string `json:"job_id,omitempty"`
	ApplicationID string `json:"application_id,omitempty"`

	CandidateName  string `json:"candidate_name"`
	CandidateEmail string `json:"candidate_email,omitempty"`

	Title           string `json:"title"`
	CompanyID       string `json:"company_id"`
	SalaryRange     string `json:"salary_range,omitempty"`
	Location        string `json:"location,omitempty"`
	Experience      string `json:"experience,omitempty"`
	Skills          string `json:"skills,omitempty"`
	JobType         string `json:"job_type,omitempty"`
	InterestGroups  string `json:"interest_groups"`
	MinKarma        int    `json:"min_karma"`
	TaskID          string `json:"task_id,omitempty"`
	TaskDescription string `json:"task_description,omitempty"`
	TaskHashtag     string `json:"task_hashtag,omitempty"`
	TaskVerified    bool   `json:"task_verified,omitempty"`
	OpeningType     string `json:"opening_type,omitempty"`

	Status    Status    `json:"status"`
	SentDate  time.Time `json:"sent_date"`
	UpdatedAt time.Time `json:"updated_at"`

	InterviewDate     string `json:"interview_date,omitempty"`
	InterviewTime     string `json:"interview_time,omitempty"`
	InterviewPlatform string `json:"interview_platform,omitempty"`
	InterviewLink     string `json:"interview_link,omitempty"`

	Links mulearn.CandidateLinks `json:"candidate_links,omitempty"`
}

// Ledger is the in-memory, session-scoped ordered list of JobInvite records.
// It is seeded by invite actions and by the sync pass over eligible-candidate
// listings, and holds at most one entry per (candidate, job) pair. Entries
// live for the lifetime of the session; nothing is persisted.
type Ledger struct {
	mu      sync.RWMutex
	entries []JobInvite
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Find returns the entry for the (candidate, job) pair, if any.
func (l *Ledger) Find(candidateID, jobID string) (JobInvite, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, entry := range l.entries {
		if entry.CandidateID == candidateID && entry.JobID == jobID {
			return entry, true
		}
	}
	return JobInvite{}, false
}

// Get returns the entry with the given ledger id.
func (l *Ledger) Get(id string) (JobInvite, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, entry := range l.entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return JobInvite{}, false
}

// Append inserts an entry, assigning a ledger id when missing. When an entry
// for the same (candidate, job) pair already exists the ledger is left
// untouched and the existing entry is returned with inserted=false.
func (l *Ledger) Append(invite JobInvite) (entry JobInvite, inserted bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if invite.CandidateID != "" && invite.JobID != "" {
		for _, existing := range l.entries {
			if existing.CandidateID == invite.CandidateID && existing.JobID == invite.JobID {
				return existing, false
			}
		}
	}

	if invite.ID == "" {
		invite.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	if invite.SentDate.IsZero() {
		invite.SentDate = now
	}
	if invite.UpdatedAt.IsZero() {
		invite.UpdatedAt = now
	}

	l.entries = append(l.entries, invite)
	return invite, true
}

// Patch applies fn to the entry with the given id under the ledger lock and
// stamps UpdatedAt. It reports whether the entry existed.
func (l *Ledger) Patch(id string, fn func(*JobInvite)) (JobInvite, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.entries {
		if l.entries[i].ID == id {
			fn(&l.entries[i])
			l.entries[i].UpdatedAt = time.Now().UTC()
			return l.entries[i], true
		}
	}
	return JobInvite{}, false
}

// Entries returns a copy of the ledger in insertion order.
func (l *Ledger) Entries() []JobInvite {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]JobInvite, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
