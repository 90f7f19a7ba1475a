package gateway

import (
	"errors"
	"net/http"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"launchpad/pkg/mulearn"
)

// Free-text job fields pass through a strict sanitizer before being sent
// upstream, since they come straight out of a browser form.
var jobFieldPolicy = bluemonday.StrictPolicy()

func sanitizeField(s string) string {
	return strings.TrimSpace(jobFieldPolicy.Sanitize(s))
}

func (g *Gateway) handleListJobs(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	companyID := r.URL.Query().Get("company_id")
	if companyID == "" {
		companyID = session.UserID
	}

	jobs, err := g.upstream.ListJobs(r.Context(), session.AccessToken, companyID)
	if err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

func (g *Gateway) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	var req mulearn.AddJob
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}

	req.Title = sanitizeField(req.Title)
	req.Skills = sanitizeField(req.Skills)
	req.Experience = sanitizeField(req.Experience)
	req.Domain = sanitizeField(req.Domain)
	req.Location = sanitizeField(req.Location)
	req.SalaryRange = sanitizeField(req.SalaryRange)

	if req.Title == "" {
		respondError(w, http.StatusBadRequest, errors.New("title is required"))
		return
	}
	if len(req.InterestGroups) == 0 {
		respondError(w, http.StatusBadRequest, errors.New("at least one interest group is required"))
		return
	}
	switch req.JobType {
	case mulearn.JobTypeFullTime, mulearn.JobTypePartTime, mulearn.JobTypeContract, mulearn.JobTypeFreelance:
	default:
		respondError(w, http.StatusBadRequest, errors.New("invalid job_type"))
		return
	}
	if req.Company == "" {
		req.Company = session.UserID
	}
	if req.OpeningType == "" {
		req.OpeningType = mulearn.OpeningGeneral
	}

	if err := g.upstream.CreateJob(r.Context(), session.AccessToken, req); err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]any{"ok": true})
}

func (g *Gateway) handleVerifiedCompanies(w http.ResponseWriter, r *http.Request) {
	companies, err := g.upstream.ListVerifiedCompanies(r.Context())
	if err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"companies": companies})
}

func (g *Gateway) handleInterestGroups(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	groups, err := g.upstream.ListInterestGroups(r.Context(), session.AccessToken)
	if err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{"interest_groups": groups})
}
