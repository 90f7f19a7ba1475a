package gateway

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"launchpad/pkg/mulearn"
	"launchpad/services/hiredesk"
)

const listingCacheKey = "listing"

// candidateView is a candidate row annotated with the reconciled display
// status and, when present, its ledger entry id.
type candidateView struct {
	mulearn.Candidate
	Status   hiredesk.Status `json:"status"`
	InviteID string          `json:"invite_id,omitempty"`
}

// buildCandidateViews syncs the listing into the ledger, then annotates every
// candidate with the status reconciled from upstream and local state.
func buildCandidateViews(ledger *hiredesk.Ledger, job mulearn.JobOffer, candidates []mulearn.Candidate) []candidateView {
	hiredesk.Sync(ledger, job, candidates)

	views := make([]candidateView, 0, len(candidates))
	for _, candidate := range candidates {
		view := candidateView{Candidate: candidate}

		var invite *hiredesk.JobInvite
		if entry, ok := ledger.Find(candidate.ID, job.ID); ok {
			invite = &entry
			view.InviteID = entry.ID
		}
		view.Status = hiredesk.CandidateStatus(candidate, invite)
		views = append(views, view)
	}
	return views
}

func jobOfferFromInfo(info mulearn.JobInfo) mulearn.JobOffer {
	return mulearn.JobOffer{
		ID:             info.ID,
		Title:          info.Title,
		MinKarma:       info.MinimumKarma,
		InterestGroups: info.InterestGroups,
	}
}

func (g *Gateway) handleEligibleCandidates(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())
	jobID := chi.URLParam(r, "jobID")
	if jobID == "" {
		respondError(w, http.StatusBadRequest, errors.New("job id is required"))
		return
	}

	group := hiredesk.GroupEligibleCandidates(jobID)
	var listing mulearn.EligibleCandidates
	hit := false
	if g.cache != nil {
		var err error
		hit, err = g.cache.Get(r.Context(), group, listingCacheKey, &listing)
		if err != nil {
			log.Warn().Err(err).Str("job_id", jobID).Msg("candidate listing cache read")
		}
		observeCache("eligible_candidates", hit)
	}

	if !hit {
		var err error
		listing, err = g.upstream.ListEligibleCandidates(r.Context(), session.AccessToken, jobID)
		if err != nil {
			respondActionError(w, err)
			return
		}
		if g.cache != nil && listing.Sentinel == "" {
			if err := g.cache.Set(r.Context(), group, listingCacheKey, listing); err != nil {
				log.Warn().Err(err).Str("job_id", jobID).Msg("candidate listing cache write")
			}
		}
	}

	ledger := g.ledgers.get(session.ID)
	views := buildCandidateViews(ledger, jobOfferFromInfo(listing.JobInfo), listing.Candidates)

	respondJSON(w, http.StatusOK, map[string]any{
		"job_info":   listing.JobInfo,
		"candidates": views,
		"pagination": listing.Pagination,
		"sentinel":   listing.Sentinel,
	})
}

func (g *Gateway) handleSendInvite(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())
	jobID := chi.URLParam(r, "jobID")
	candidateID := chi.URLParam(r, "candidateID")
	if jobID == "" || candidateID == "" {
		respondError(w, http.StatusBadRequest, errors.New("job id and candidate id are required"))
		return
	}

	// The invite needs the job and candidate records for the denormalized
	// ledger fields; both come from the same listing the recruiter is viewing.
	listing, err := g.upstream.ListEligibleCandidates(r.Context(), session.AccessToken, jobID)
	if err != nil {
		respondActionError(w, err)
		return
	}

	var candidate *mulearn.Candidate
	for i := range listing.Candidates {
		if listing.Candidates[i].ID == candidateID {
			candidate = &listing.Candidates[i]
			break
		}
	}
	if candidate == nil {
		respondError(w, http.StatusNotFound, errors.New("candidate not eligible for this job"))
		return
	}

	ledger := g.ledgers.get(session.ID)
	entry, err := g.actions.SendInvite(r.Context(), session.AccessToken, ledger, jobOfferFromInfo(listing.JobInfo), *candidate)
	if err != nil {
		respondActionError(w, err)
		return
	}

	metricInvitesSent.Inc()
	g.recordHireEvent(r.Context(), session, auditInviteSent, jobID, candidateID, entry.ApplicationID, map[string]any{
		"invite_id": entry.ID,
		"status":    string(entry.Status),
	})

	respondJSON(w, http.StatusOK, map[string]any{"invite": entry})
}

func (g *Gateway) handleListInvites(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())
	ledger := g.ledgers.get(session.ID)
	respondJSON(w, http.StatusOK, map[string]any{"invites": ledger.Entries()})
}
