package gateway

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"launchpad/pkg/mulearn"
	"launchpad/services/report"
)

// hiringStats are the dashboard card numbers derived from the hire-request
// listing.
type hiringStats struct {
	TotalApplications int     `json:"total_applications"`
	Invited           int     `json:"invited"`
	Interviewing      int     `json:"interviewing"`
	Hired             int     `json:"hired"`
	Rejected          int     `json:"rejected"`
	HiringRate        float64 `json:"hiring_rate"`
}

func computeStats(requests []mulearn.HireRequest) hiringStats {
	stats := hiringStats{TotalApplications: len(requests)}
	for _, req := range requests {
		switch req.Status {
		case mulearn.ApplicationInvited, mulearn.ApplicationApplied:
			stats.Invited++
		case mulearn.ApplicationInterviewScheduled:
			stats.Interviewing++
		case mulearn.ApplicationAccepted:
			stats.Hired++
		case "rejected":
			stats.Rejected++
		}
	}
	if stats.TotalApplications > 0 {
		stats.HiringRate = float64(stats.Hired) / float64(stats.TotalApplications) * 100
	}
	return stats
}

func (g *Gateway) handleStats(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())

	requests, err := g.upstream.ListHireRequests(r.Context(), session.AccessToken, "")
	if err != nil {
		respondActionError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, computeStats(requests))
}

// handleExportHireRequests streams the hire-request listing as a CSV
// download. The heavier zstd-to-S3 export lives in launchpadctl.
func (g *Gateway) handleExportHireRequests(w http.ResponseWriter, r *http.Request) {
	session, _ := sessionFromContext(r.Context())
	statusFilter := r.URL.Query().Get("status")

	requests, err := g.upstream.ListHireRequests(r.Context(), session.AccessToken, statusFilter)
	if err != nil {
		respondActionError(w, err)
		return
	}

	filename := fmt.Sprintf("hire-requests-%s.csv", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	writer := csv.NewWriter(w)
	_ = writer.WriteAll(report.HireRequestRows(requests))
}
