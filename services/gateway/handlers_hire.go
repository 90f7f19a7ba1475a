package gateway

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"launchpad/pkg/mulearn"
	"launchpad/services/hiredesk"
)

func (g *Gateway) handleScheduleInterview(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())
	inviteID := chi.URLParam(r, "inviteID")

	var req struct {
		Date     string `json:"interview_date"`
		Time     string `json:"interview_time"`
		Platform string `json:"interview_platform"`
		Link     string `json:"interview_link"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err)
		return
	}
	if req.Date == "" || req.Time == "" {
		respondError(w, http.StatusBadRequest, errors.New("interview_date and interview_time are required"))
		return
	}

	ledger := g.ledgers.get(session.ID)
	entry, err := g.actions.ScheduleInterview(r.Context(), session.AccessToken, ledger, inviteID, mulearn.InterviewDetails{
		Date:     req.Date,
		Time:     req.Time,
		Platform: req.Platform,
		Link:     req.Link,
	})
	if err != nil {
		respondActionError(w, err)
		return
	}

	metricInterviewsScheduled.Inc()
	g.recordHireEvent(r.Context(), session, auditInterviewScheduled, entry.JobID, entry.CandidateID, entry.ApplicationID, map[string]any{
		"invite_id":      entry.ID,
		"interview_date": req.Date,
		"interview_time": req.Time,
	})

	respondJSON(w, http.StatusOK, map[string]any{"invite": entry})
}

func (g *Gateway) handleHire(w http.ResponseWriter, r *http.Request) {
	g.decide(w, r, mulearn.DecisionAccepted)
}

func (g *Gateway) handleReject(w http.ResponseWriter, r *http.Request) {
	g.decide(w, r, mulearn.DecisionRejected)
}

func (g *Gateway) decide(w http.ResponseWriter, r *http.Request, decision mulearn.Decision) {
	session, _ := sessionFromContext(r.Context())
	inviteID := chi.URLParam(r, "inviteID")
	ledger := g.ledgers.get(session.ID)

	var entry hiredesk.JobInvite
	var err error
	action := auditDecisionAccepted
	if decision == mulearn.DecisionAccepted {
		entry, err = g.actions.Hire(r.Context(), session.AccessToken, ledger, inviteID)
	} else {
		action = auditDecisionRejected
		entry, err = g.actions.Reject(r.Context(), session.AccessToken, ledger, inviteID)
	}
	if err != nil {
		respondActionError(w, err)
		return
	}

	metricDecisions.WithLabelValues(string(decision)).Inc()
	g.recordHireEvent(r.Context(), session, action, entry.JobID, entry.CandidateID, entry.ApplicationID, map[string]any{
		"invite_id": entry.ID,
		"status":    string(entry.Status),
	})

	respondJSON(w, http.StatusOK, map[string]any{"invite": entry})
}

func (g *Gateway) handleHireRequests(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())
	statusFilter := r.URL.Query().Get("status")

	cacheKey := "all"
	if statusFilter != "" {
		cacheKey = statusFilter
	}

	var requests []mulearn.HireRequest
	hit := false
	if g.cache != nil {
		var err error
		hit, err = g.cache.Get(r.Context(), hiredesk.GroupHireRequests, cacheKey, &requests)
		if err != nil {
			log.Warn().Err(err).Msg("hire requests cache read")
		}
		observeCache("hire_requests", hit)
	}

	if !hit {
		var err error
		requests, err = g.upstream.ListHireRequests(r.Context(), session.AccessToken, statusFilter)
		if err != nil {
			respondActionError(w, err)
			return
		}
		if g.cache != nil {
			if err := g.cache.Set(r.Context(), hiredesk.GroupHireRequests, cacheKey, requests); err != nil {
				log.Warn().Err(err).Msg("hire requests cache write")
			}
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{"hire_requests": requests})
}
