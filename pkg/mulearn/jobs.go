package mulearn

import (
	"context"
	"net/url"
)

// AddJob is the create-job payload.
type AddJob struct {
	Company        string   `json:"company"`
	Recruiter      string   `json:"recruiter,omitempty"`
	Title          string   `json:"title"`
	Skills         string   `json:"skills"`
	Experience     string   `json:"experience"`
	Domain         string   `json:"domain"`
	Location       string   `json:"location"`
	SalaryRange    string   `json:"salary_range"`
	JobType        string   `json:"job_type"`
	MinimumKarma   int      `json:"minimum_karma"`
	InterestGroups []string `json:"interest_groups"`
	OpeningType    string   `json:"opening_type"`
}

// CreateJob posts a new job offer on behalf of the token's company.
func (c *Client) CreateJob(ctx context.Context, token string, job AddJob) error {
	return c.post(ctx, "/launchpad/add-job/", token, job, nil)
}

// jobOfferWire is the raw list-jobs row; ListJobs reshapes it into JobOffer.
type jobOfferWire struct {
	ID              string `json:"id"`
	Title           string `json:"title"`
	CompanyID       string `json:"company_id"`
	SalaryRange     string `json:"salary_range"`
	Location        string `json:"location"`
	Experience      string `json:"experience"`
	Skills          string `json:"skills"`
	JobType         string `json:"job_type"`
	InterestGroups  string `json:"interest_groups"`
	MinimumKarma    int    `json:"minimum_karma"`
	TaskID          string `json:"task_id"`
	TaskDescription string `json:"task_description"`
	TaskHashtag     string `json:"task_hashtag"`
	TaskVerified    bool   `json:"task_verified"`
	CreatedAt       string `json:"created_at"`
	OpeningType     string `json:"opening_type"`
}

// ListJobs returns the job offers posted by the given company.
func (c *Client) ListJobs(ctx context.Context, token, companyID string) ([]JobOffer, error) {
	query := url.Values{"company_id": {companyID}}

	var rows []jobOfferWire
	if err := c.get(ctx, "/launchpad/list-jobs/", token, query, &rows); err != nil {
		return nil, err
	}

	offers := make([]JobOffer, 0, len(rows))
	for _, row := range rows {
		opening := row.OpeningType
		if opening == "" {
			opening = OpeningGeneral
			if row.TaskID != "" {
				opening = OpeningTask
			}
		}
		offers = append(offers, JobOffer{
			ID:              row.ID,
			Title:           row.Title,
			CompanyID:       row.CompanyID,
			SalaryRange:     row.SalaryRange,
			Location:        row.Location,
			Experience:      row.Experience,
			Skills:          row.Skills,
			JobType:         row.JobType,
			InterestGroups:  row.InterestGroups,
			MinKarma:        row.MinimumKarma,
			TaskID:          row.TaskID,
			TaskDescription: row.TaskDescription,
			TaskHashtag:     row.TaskHashtag,
			TaskVerified:    row.TaskVerified,
			CreatedAt:       row.CreatedAt,
			OpeningType:     opening,
		})
	}
	return offers, nil
}

// ListVerifiedCompanies returns the public list of verified companies.
// The upstream path keeps its historical spelling.
func (c *Client) ListVerifiedCompanies(ctx context.Context) ([]VerifiedCompany, error) {
	var out []VerifiedCompany
	err := c.get(ctx, "/launchpad/company-list-verifed/", "", nil, &out)
	return out, err
}

// ListInterestGroups returns the platform's interest group catalogue.
func (c *Client) ListInterestGroups(ctx context.Context, token string) ([]InterestGroup, error) {
	var out struct {
		InterestGroup []InterestGroup `json:"interestGroup"`
	}
	if err := c.get(ctx, "/dashboard/ig/list/", token, nil, &out); err != nil {
		return nil, err
	}
	return out.InterestGroup, nil
}
