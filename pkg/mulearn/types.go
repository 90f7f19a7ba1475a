package mulearn

// JobOffer is a posted position, reshaped from the upstream list-jobs payload.
type JobOffer struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	CompanyID       string `json:"company_id"`
	SalaryRange     string `json:"salary_range,omitempty"`
	Location        string `json:"location,omitempty"`
	Experience      string `json:"experience,omitempty"`
	Skills          string `json:"skills,omitempty"`
	JobType         string `json:"job_type,omitempty"`
	InterestGroups  string `json:"interest_groups"`
	MinKarma        int    `json:"minimum_karma"`
	TaskID          string `json:"task_id,omitempty"`
	TaskDescription string `json:"task_description,omitempty"`
	TaskHashtag     string `json:"task_hashtag,omitempty"`
	TaskVerified    bool   `json:"task_verified,omitempty"`
	CreatedAt       string `json:"created_at"`
	OpeningType     string `json:"opening_type,omitempty"`
}

// Job type values accepted by the upstream API.
const (
	JobTypeFullTime  = "Full-time"
	JobTypePartTime  = "Part-time"
	JobTypeContract  = "Contract"
	JobTypeFreelance = "Freelance"
)

// Opening type values.
const (
	OpeningGeneral = "General"
	OpeningTask    = "Task"
)

// InterestGroup is a named skill/domain category used for job-candidate matching.
type InterestGroup struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// KarmaDistribution breaks a candidate's karma down by task type.
type KarmaDistribution struct {
	TaskType string `json:"task_type"`
	Karma    int    `json:"karma"`
}

// ApplicationTimeline carries the timestamps the upstream records for an
// application. Values are RFC 3339 strings; empty means the event has not
// happened.
type ApplicationTimeline struct {
	InvitedAt string `json:"invited_at,omitempty"`
	AppliedAt string `json:"applied_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// CandidateLinks holds URLs a candidate attached to their application.
type CandidateLinks struct {
	Resume      string `json:"resume_link,omitempty"`
	LinkedIn    string `json:"linkedin_link,omitempty"`
	Portfolio   string `json:"portfolio_link,omitempty"`
	CoverLetter string `json:"cover_letter,omitempty"`
	Other       string `json:"other_link,omitempty"`
}

// Candidate is a μLearner eligible for a job offer. ApplicationID is set only
// once the upstream has processed an application for this candidate; callers
// must treat its absence as "not actionable".
type Candidate struct {
	ID                string              `json:"id"`
	FullName          string              `json:"full_name"`
	Email             string              `json:"email"`
	MUID              string              `json:"muid"`
	ProfilePic        string              `json:"profile_pic,omitempty"`
	Karma             int                 `json:"karma"`
	Level             string              `json:"level"`
	CollegeName       string              `json:"college_name"`
	InterestGroups    []InterestGroup     `json:"interest_groups"`
	Roles             []string            `json:"roles"`
	Rank              int                 `json:"rank"`
	KarmaDistribution []KarmaDistribution `json:"karma_distribution"`
	ApplicationStatus string              `json:"application_status,omitempty"`
	Timeline          ApplicationTimeline `json:"application_timeline,omitempty"`
	Links             CandidateLinks      `json:"candidate_links,omitempty"`
	ApplicationID     string              `json:"application_id,omitempty"`
}

// Application status strings the upstream reports on candidates. The set is
// open ended; unknown values are passed through untouched.
const (
	ApplicationNotInvited         = "not_invited"
	ApplicationInvited            = "invited"
	ApplicationApplied            = "applied"
	ApplicationInterviewScheduled = "interview_scheduled"
	ApplicationAccepted           = "accepted"
)

// Pagination mirrors the upstream pagination block.
type Pagination struct {
	Count      int    `json:"count"`
	TotalPages int    `json:"totalPages"`
	IsNext     bool   `json:"isNext"`
	IsPrev     bool   `json:"isPrev"`
	NextPage   string `json:"nextPage,omitempty"`
}

// JobInfo is the job echo returned alongside an eligible-candidates listing.
type JobInfo struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	MinimumKarma   int    `json:"minimum_karma"`
	Domain         string `json:"domain"`
	InterestGroups string `json:"interest_groups"`
}

// EligibleCandidates is the full listing for one job: the candidates, a job
// echo, and pagination metadata. Sentinel holds the upstream's domain message
// ("no matching tasks" and friends) when the list is empty for a reason other
// than exhaustion.
type EligibleCandidates struct {
	JobInfo    JobInfo     `json:"job_info"`
	Candidates []Candidate `json:"data"`
	Pagination Pagination  `json:"pagination"`
	Sentinel   string      `json:"-"`
}

// HireRequest is one entry of the upstream hire-requests listing: an
// application joined with its job and student info.
type HireRequest struct {
	ApplicationID string              `json:"application_id"`
	Status        string              `json:"status"`
	Job           JobOffer            `json:"job_info"`
	Student       Candidate           `json:"student_info"`
	Timeline      ApplicationTimeline `json:"timeline"`
	Links         CandidateLinks      `json:"application_details"`
	Interview     *InterviewDetails   `json:"interview_details,omitempty"`
}

// InterviewDetails carries the scheduling fields for an interview.
type InterviewDetails struct {
	ApplicationID string `json:"application_id"`
	Date          string `json:"interview_date"`
	Time          string `json:"interview_time"`
	Platform      string `json:"interview_platform"`
	Link          string `json:"interview_link"`
}

// LeaderboardStudent is one ranked row of the Launchpad leaderboard.
type LeaderboardStudent struct {
	Rank        int    `json:"rank"`
	FullName    string `json:"full_name"`
	ActualKarma int    `json:"actual_karma"`
	Karma       int    `json:"karma"`
	Org         string `json:"org"`
	District    string `json:"district_name"`
	State       string `json:"state"`
	LaunchpadID string `json:"launchpad_id"`
}

// Leaderboard is a page of ranked students.
type Leaderboard struct {
	Students   []LeaderboardStudent `json:"data"`
	Pagination Pagination           `json:"pagination"`
}

// Company is the profile returned by company-info.
type Company struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Website    string `json:"website,omitempty"`
	IsVerified bool   `json:"is_verified"`
	POCName    string `json:"poc_name,omitempty"`
	POCEmail   string `json:"poc_email,omitempty"`
	POCPhone   string `json:"poc_phone,omitempty"`
}

// Recruiter is the profile returned by recruiter-info.
type Recruiter struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"`
}

// VerifiedCompany is one row of the public verified-company listing.
type VerifiedCompany struct {
	Name    string `json:"name"`
	Website string `json:"website"`
}
